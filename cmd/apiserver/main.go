// Package main runs the advisor REST API server with optional roster
// hot-reload.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arenalab/arena-advisor/internal/advisor"
	"github.com/arenalab/arena-advisor/internal/api"
	"github.com/arenalab/arena-advisor/internal/api/websocket"
	"github.com/arenalab/arena-advisor/internal/config"
	"github.com/arenalab/arena-advisor/internal/roster"
	"github.com/arenalab/arena-advisor/internal/storage"
)

var (
	host       = flag.String("host", "", "Bind address (default: config server.host)")
	port       = flag.Int("port", 0, "Listen port (default: config server.port)")
	rosterPath = flag.String("roster", "", "Path to the roster JSON file (default: config roster.file_path)")
	watch      = flag.Bool("watch", true, "Reload the roster on file changes")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *rosterPath != "" {
		cfg.Roster.FilePath = *rosterPath
	}

	chars, err := loadRoster(cfg)
	if err != nil {
		log.Fatalf("Failed to load roster: %v", err)
	}
	log.Printf("Loaded %d characters", len(chars))

	service := advisor.NewService(chars)
	server := api.NewServer(&api.Config{Host: cfg.Server.Host, Port: cfg.Server.Port}, service)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *watch && cfg.Roster.WatchChanges && cfg.Roster.FilePath != "" {
		startWatcher(ctx, cfg, service, server.WebSocketHub())
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}
	fmt.Printf("Arena Advisor API running at http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("API server stopped.")
}

// loadRoster reads the configured roster file, falling back to the
// local character cache populated by ingest.
func loadRoster(cfg *config.Config) ([]roster.Character, error) {
	if cfg.Roster.FilePath != "" {
		return roster.LoadFile(cfg.Roster.FilePath)
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}

	dbCfg := storage.DefaultConfig(filepath.Join(dataDir, "advisor.db"))
	dbCfg.AutoMigrate = true
	db, err := storage.Open(dbCfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	chars, err := db.AllCharacters(context.Background())
	if err != nil {
		return nil, err
	}
	if len(chars) == 0 {
		return nil, fmt.Errorf("no roster configured and the character cache is empty; run 'arena-advisor ingest' first")
	}
	return chars, nil
}

// startWatcher reloads the advisor service when the roster file changes
// and notifies WebSocket clients.
func startWatcher(ctx context.Context, cfg *config.Config, service *advisor.Service, hub *websocket.Hub) {
	debounce, err := cfg.GetReloadDebounce()
	if err != nil {
		log.Fatalf("Invalid reload debounce: %v", err)
	}

	watcher, err := roster.NewWatcher(roster.WatcherConfig{
		Path:     cfg.Roster.FilePath,
		Debounce: debounce,
		ReloadCallback: func(chars []roster.Character) {
			service.ReloadRoster(chars)
			hub.BroadcastEvent(websocket.Event{
				Type: websocket.EventRosterReloaded,
				Data: map[string]int{"characters": len(chars)},
			})
		},
	})
	if err != nil {
		log.Fatalf("Failed to create roster watcher: %v", err)
	}

	go watcher.Start(ctx)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/arenalab/arena-advisor/internal/advisor"
	"github.com/arenalab/arena-advisor/internal/charts"
	"github.com/arenalab/arena-advisor/internal/config"
	"github.com/arenalab/arena-advisor/internal/ingest"
	"github.com/arenalab/arena-advisor/internal/meta"
	"github.com/arenalab/arena-advisor/internal/roster"
	"github.com/arenalab/arena-advisor/internal/storage"
)

// loadService builds an advisor service from the roster flag, the
// configured roster file, or the local character cache, in that order.
func loadService(rosterPath string) *advisor.Service {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if rosterPath == "" {
		rosterPath = cfg.Roster.FilePath
	}

	if rosterPath != "" {
		chars, err := roster.LoadFile(rosterPath)
		if err != nil {
			log.Fatalf("Failed to load roster %s: %v", rosterPath, err)
		}
		return advisor.NewService(chars)
	}

	// No roster file: fall back to the ingest cache.
	dataDir, err := cfg.DataDir()
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}

	dbCfg := storage.DefaultConfig(filepath.Join(dataDir, "advisor.db"))
	dbCfg.AutoMigrate = true
	db, err := storage.Open(dbCfg)
	if err != nil {
		log.Fatalf("Failed to open character cache: %v", err)
	}
	defer func() { _ = db.Close() }()

	chars, err := db.AllCharacters(context.Background())
	if err != nil {
		log.Fatalf("Failed to read character cache: %v", err)
	}
	if len(chars) == 0 {
		log.Fatal("No roster available. Pass -roster or run 'arena-advisor ingest' first.")
	}
	return advisor.NewService(chars)
}

func runAnalyzeCommand(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	rosterPath := fs.String("roster", "", "Path to the roster JSON file")
	teamIDs := fs.String("team", "", "Comma-separated character ids")
	_ = fs.Parse(args)

	ids := parseIDs(*teamIDs)
	if len(ids) == 0 {
		log.Fatal("analyze requires -team with at least one character id")
	}

	svc := loadService(*rosterPath)
	analysis, err := svc.AnalyzeTeam(ids)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	displayTeamAnalysis(analysis, memberNames(svc, ids))
}

func runSuggestCommand(args []string) {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	rosterPath := fs.String("roster", "", "Path to the roster JSON file")
	teamIDs := fs.String("team", "", "Comma-separated character ids of the partial team")
	count := fs.Int("count", 5, "Number of suggestions")
	_ = fs.Parse(args)

	ids := parseIDs(*teamIDs)
	if len(ids) == 0 {
		log.Fatal("suggest requires -team with one or two character ids")
	}

	svc := loadService(*rosterPath)
	suggestions, err := svc.Suggestions(ids, *count)
	if err != nil {
		log.Fatalf("Suggestion failed: %v", err)
	}

	displaySuggestions(suggestions, memberNames(svc, ids))
}

func runCounterCommand(args []string) {
	fs := flag.NewFlagSet("counter", flag.ExitOnError)
	rosterPath := fs.String("roster", "", "Path to the roster JSON file")
	enemyIDs := fs.String("enemy", "", "Comma-separated enemy character ids")
	teamIDs := fs.String("team", "", "Comma-separated ids of your current team (optional)")
	count := fs.Int("count", 5, "Number of counter picks")
	_ = fs.Parse(args)

	enemy := parseIDs(*enemyIDs)
	if len(enemy) == 0 {
		log.Fatal("counter requires -enemy with at least one character id")
	}

	svc := loadService(*rosterPath)
	counters, err := svc.Counters(enemy, parseIDs(*teamIDs), *count)
	if err != nil {
		log.Fatalf("Counter recommendation failed: %v", err)
	}

	displayCounters(counters, memberNames(svc, enemy))
}

func runMetaCommand(args []string) {
	fs := flag.NewFlagSet("meta", flag.ExitOnError)
	rosterPath := fs.String("roster", "", "Path to the roster JSON file")
	ownedIDs := fs.String("owned", "", "Comma-separated owned character ids (empty = all)")
	maxAvgCost := fs.Float64("max-avg-cost", 0, "Max average energy cost (0 = unlimited)")
	minFlexibility := fs.Float64("min-flexibility", 0, "Min energy flexibility rating (0 = unlimited)")
	_ = fs.Parse(args)

	svc := loadService(*rosterPath)
	svc.SetOwned(parseIDs(*ownedIDs))

	teams := svc.MetaTeams(meta.Filters{
		MaxAvgCost:     *maxAvgCost,
		MinFlexibility: *minFlexibility,
	})
	displayMetaTeams(teams)
}

func runIngestCommand(args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	url := fs.String("url", "", "Character dataset URL (default: configured ingest base_url)")
	timeout := fs.Duration("timeout", 5*time.Minute, "Overall ingest timeout")
	_ = fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	baseURL := *url
	if baseURL == "" {
		baseURL = cfg.Ingest.BaseURL
	}
	if baseURL == "" {
		log.Fatal("ingest requires -url or ingest.base_url in the config")
	}

	reqTimeout, err := cfg.GetIngestTimeout()
	if err != nil {
		log.Fatalf("Invalid ingest timeout in config: %v", err)
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}

	dbCfg := storage.DefaultConfig(filepath.Join(dataDir, "advisor.db"))
	dbCfg.AutoMigrate = true
	db, err := storage.Open(dbCfg)
	if err != nil {
		log.Fatalf("Failed to open character cache: %v", err)
	}
	defer func() { _ = db.Close() }()

	client := ingest.NewClient(ingest.Config{
		BaseURL:    baseURL,
		RatePerSec: cfg.Ingest.RatePerSec,
		Timeout:    reqTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	count, err := ingest.Sync(ctx, client, db)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}
	fmt.Printf("Ingested %d characters into %s\n", count, dbCfg.Path)
}

func runReportCommand(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	rosterPath := fs.String("roster", "", "Path to the roster JSON file")
	teamIDs := fs.String("team", "", "Comma-separated character ids")
	output := fs.String("out", "team-report.html", "Output HTML file")
	openAfter := fs.Bool("open", false, "Open the report in the default browser")
	_ = fs.Parse(args)

	ids := parseIDs(*teamIDs)
	if len(ids) == 0 {
		log.Fatal("report requires -team with at least one character id")
	}

	svc := loadService(*rosterPath)
	analysis, err := svc.AnalyzeTeam(ids)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	names := memberNames(svc, ids)
	if err := charts.RenderTeamReport(analysis, names, *output); err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
	fmt.Printf("Report written to %s\n", *output)

	if *openAfter {
		if err := charts.OpenInBrowser(*output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open browser: %v\n", err)
		}
	}
}

// Package config manages application configuration stored as TOML under
// ~/.arena-advisor/.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Roster file configuration
	Roster RosterConfig `toml:"roster"`

	// API server configuration
	Server ServerConfig `toml:"server"`

	// Remote roster ingest configuration
	Ingest IngestConfig `toml:"ingest"`

	// Team generation configuration
	Meta MetaConfig `toml:"meta"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// RosterConfig contains roster loading and reload settings.
type RosterConfig struct {
	FilePath       string `toml:"file_path"`       // Path to the character roster JSON
	WatchChanges   bool   `toml:"watch_changes"`   // Reload the roster on file changes
	ReloadDebounce string `toml:"reload_debounce"` // Debounce for change events (e.g., "500ms")
}

// ServerConfig contains HTTP API server settings.
type ServerConfig struct {
	Host string `toml:"host"` // Bind address
	Port int    `toml:"port"` // Listen port
}

// IngestConfig contains remote roster fetch settings.
type IngestConfig struct {
	BaseURL     string  `toml:"base_url"`     // Character data endpoint
	RatePerSec  float64 `toml:"rate_per_sec"` // Max requests per second
	Timeout     string  `toml:"timeout"`      // Per-request timeout (e.g., "15s")
	DatabaseDir string  `toml:"database_dir"` // Directory for the local character database
}

// MetaConfig contains team generation defaults.
type MetaConfig struct {
	MaxAvgCost     float64 `toml:"max_avg_cost"`    // Max average energy cost (0 = unlimited)
	MinFlexibility float64 `toml:"min_flexibility"` // Min energy flexibility rating (0 = unlimited)
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Roster: RosterConfig{
			FilePath:       "",
			WatchChanges:   true,
			ReloadDebounce: "500ms",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8585,
		},
		Ingest: IngestConfig{
			BaseURL:     "",
			RatePerSec:  2,
			Timeout:     "15s",
			DatabaseDir: "",
		},
		Meta: MetaConfig{
			MaxAvgCost:     0,
			MinFlexibility: 0,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".arena-advisor")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// DataDir returns the directory for application data, creating it if
// needed. The ingest database lives here unless configured elsewhere.
func (c *Config) DataDir() (string, error) {
	if c.Ingest.DatabaseDir != "" {
		if err := os.MkdirAll(c.Ingest.DatabaseDir, 0o755); err != nil {
			return "", fmt.Errorf("create data directory: %w", err)
		}
		return c.Ingest.DatabaseDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".arena-advisor", "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Roster.ReloadDebounce); err != nil {
		return fmt.Errorf("invalid reload debounce %q: %w", c.Roster.ReloadDebounce, err)
	}

	if _, err := time.ParseDuration(c.Ingest.Timeout); err != nil {
		return fmt.Errorf("invalid ingest timeout %q: %w", c.Ingest.Timeout, err)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Ingest.RatePerSec <= 0 {
		return fmt.Errorf("ingest rate must be positive: %f", c.Ingest.RatePerSec)
	}

	if c.Meta.MaxAvgCost < 0 {
		return fmt.Errorf("max average cost cannot be negative: %f", c.Meta.MaxAvgCost)
	}

	return nil
}

// GetReloadDebounce returns the roster reload debounce as a duration.
func (c *Config) GetReloadDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Roster.ReloadDebounce)
}

// GetIngestTimeout returns the ingest request timeout as a duration.
func (c *Config) GetIngestTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Ingest.Timeout)
}

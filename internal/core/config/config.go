// Package config handles configuration loading and validation for gab.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDatabase is the database file name used when none is configured.
const DefaultDatabase = "chat_history.db"

// Config holds the application configuration.
type Config struct {
	// Database is the SQLite file. Relative paths resolve against DataDir.
	Database string `yaml:"database" validate:"required"`
	// RefreshInterval is the period of the timer that re-activates the chat view.
	RefreshInterval time.Duration `yaml:"refresh_interval" validate:"gte=100ms,lte=1m"`
	// SidebarWidth is the width of the active users sidebar in cells.
	SidebarWidth int `yaml:"sidebar_width" validate:"gte=10,lte=60"`
	// Title is shown in the chat header.
	Title string `yaml:"title" validate:"required,max=40"`

	DataDir string `yaml:"-"` // set by caller, not from config file
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Database:        DefaultDatabase,
		RefreshInterval: time.Second,
		SidebarWidth:    20,
		Title:           "Chat",
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Database == "" {
		c.Database = defaults.Database
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = defaults.RefreshInterval
	}
	if c.SidebarWidth == 0 {
		c.SidebarWidth = defaults.SidebarWidth
	}
	if c.Title == "" {
		c.Title = defaults.Title
	}
}

// DatabasePath returns the absolute or data-dir relative database file path.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) || c.DataDir == "" {
		return c.Database
	}
	return filepath.Join(c.DataDir, c.Database)
}

// Package config provides configuration management for figedit.
//
// The config file only tunes the editor around the figure files; it never
// changes how a figure is encoded.
//
// Config file locations (priority order):
//  1. $FIGEDIT_CONFIG
//  2. ./figedit.yaml
//  3. $XDG_CONFIG_HOME/figedit/config.yaml
//  4. ~/.config/figedit/config.yaml
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultLogLevel     = "info"
	defaultHistoryLimit = 20
	defaultDebounce     = 500 * time.Millisecond
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Log:     LogConfig{Level: defaultLogLevel},
		History: HistoryConfig{
			Enabled: false,
			Path:    DefaultHistoryPath(),
			Limit:   defaultHistoryLimit,
		},
		Watch: WatchConfig{Debounce: Duration(defaultDebounce)},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath()
	}
	if c.History.Limit <= 0 {
		c.History.Limit = defaultHistoryLimit
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = Duration(defaultDebounce)
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Log level: %s\n", c.Log.Level)
	if c.History.Enabled {
		summary += fmt.Sprintf("History: %s (list %d)\n", c.History.Path, c.History.Limit)
	} else {
		summary += "History: disabled\n"
	}
	summary += fmt.Sprintf("Watch debounce: %s", c.Watch.Debounce.Duration())
	return summary
}

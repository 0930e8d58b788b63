package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.History.Enabled {
		t.Error("History should be disabled by default")
	}
	if cfg.History.Path == "" {
		t.Error("History.Path should not be empty")
	}
	if cfg.History.Limit != 20 {
		t.Errorf("History.Limit = %d, want 20", cfg.History.Limit)
	}
	if got := cfg.Watch.Debounce.Duration(); got != 500*time.Millisecond {
		t.Errorf("Watch.Debounce = %s, want 500ms", got)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "figedit.yaml")

	content := `
log:
  level: DEBUG
history:
  enabled: true
  path: /tmp/figedit-history.db
watch:
  debounce: 2s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, gotPath, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if gotPath != path {
		t.Errorf("path = %q, want %q", gotPath, path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/figedit-history.db" {
		t.Errorf("History = %+v", cfg.History)
	}
	// Defaults applied to missing values
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.History.Limit != 20 {
		t.Errorf("History.Limit = %d, want 20", cfg.History.Limit)
	}
	if got := cfg.Watch.Debounce.Duration(); got != 2*time.Second {
		t.Errorf("Watch.Debounce = %s, want 2s", got)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := LoadFromPath(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("watch:\n  debounce: soon\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := LoadFromPath(bad); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.History.Enabled = true
	cfg.History.Limit = 5
	cfg.Watch.Debounce = Duration(time.Second)

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if !loaded.History.Enabled || loaded.History.Limit != 5 {
		t.Errorf("History = %+v", loaded.History)
	}
	if loaded.Watch.Debounce.Duration() != time.Second {
		t.Errorf("Watch.Debounce = %s, want 1s", loaded.Watch.Debounce.Duration())
	}
}

func TestFindConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(EnvConfigPath, path)
	if got := FindConfigPath(); got != path {
		t.Errorf("FindConfigPath() = %q, want %q", got, path)
	}
}

func TestFindConfigPathXDG(t *testing.T) {
	xdg := t.TempDir()
	path := filepath.Join(xdg, ConfigDirName, "config.yaml")
	if err := EnsureConfigDir(path); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	if got := FindConfigPath(); got != path {
		t.Errorf("FindConfigPath() = %q, want %q", got, path)
	}
}

func TestDefaultHistoryPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultHistoryPath(); got != filepath.Join("/data", "figedit", "history.db") {
		t.Errorf("DefaultHistoryPath() = %q", got)
	}

	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/u")
	if got := DefaultHistoryPath(); got != filepath.Join("/home/u", ".local", "share", "figedit", "history.db") {
		t.Errorf("DefaultHistoryPath() = %q", got)
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Summary(); got == "" {
		t.Error("Summary() should not be empty")
	}
}

package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./showfinder.db" {
			t.Errorf("expected database path ./showfinder.db, got %s", config.Database.Path)
		}

		if config.Catalog.BaseURL != "https://api.tvmaze.com" {
			t.Errorf("expected catalog base URL https://api.tvmaze.com, got %s", config.Catalog.BaseURL)
		}

		if config.View.PageSize != 12 {
			t.Errorf("expected page size 12, got %d", config.View.PageSize)
		}

		if config.View.TrendingLimit != 60 {
			t.Errorf("expected trending limit 60, got %d", config.View.TrendingLimit)
		}

		if config.Catalog.Timeout() != 15*time.Second {
			t.Errorf("expected timeout 15s, got %v", config.Catalog.Timeout())
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[catalog]
base_url = "http://localhost:9090"
timeout_seconds = 3

[view]
page_size = 24

[database]
path = "/custom/path.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Catalog.BaseURL != "http://localhost:9090" {
			t.Errorf("expected base URL http://localhost:9090, got %s", config.Catalog.BaseURL)
		}

		if config.View.PageSize != 24 {
			t.Errorf("expected page size 24, got %d", config.View.PageSize)
		}

		if config.View.TrendingLimit != 60 {
			t.Errorf("expected unset trending limit to keep default 60, got %d", config.View.TrendingLimit)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig rejects invalid values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[view]\npage_size = 0\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

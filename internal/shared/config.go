package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	View     ViewConfig     `toml:"view"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// CatalogConfig contains settings for the remote show catalog (TVmaze).
type CatalogConfig struct {
	BaseURL           string  `toml:"base_url"`
	UserAgent         string  `toml:"user_agent"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	CacheSize         int     `toml:"cache_size"`
	CacheTTLMinutes   int     `toml:"cache_ttl_minutes"`
}

// ViewConfig contains result view settings.
type ViewConfig struct {
	PageSize      int `toml:"page_size"`
	TrendingPage  int `toml:"trending_page"`
	TrendingLimit int `toml:"trending_limit"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Timeout returns the catalog request timeout as a [time.Duration].
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the detail cache entry lifetime as a [time.Duration].
func (c CatalogConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports an [ErrInvalidConfig] error for values the client cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Catalog.BaseURL == "":
		return fmt.Errorf("%w: catalog.base_url is empty", ErrInvalidConfig)
	case c.Catalog.TimeoutSeconds < 0:
		return fmt.Errorf("%w: catalog.timeout_seconds must not be negative", ErrInvalidConfig)
	case c.Catalog.RequestsPerSecond < 0:
		return fmt.Errorf("%w: catalog.requests_per_second must not be negative", ErrInvalidConfig)
	case c.View.PageSize <= 0:
		return fmt.Errorf("%w: view.page_size must be positive", ErrInvalidConfig)
	case c.View.TrendingLimit <= 0:
		return fmt.Errorf("%w: view.trending_limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidArgument, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

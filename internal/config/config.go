package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration settings.
type Config struct {
	Environment string `envconfig:"ENV" default:"development"`

	CatalogURL string `envconfig:"CATALOG_URL" default:"https://assets.tcgp-data.net/catalog.json"`
	BaseURL    string `envconfig:"BASE_URL" default:"https://assets.tcgp-data.net/cards"`
	Locales    string `envconfig:"LOCALES" default:"en"`

	Concurrency  int           `envconfig:"CONCURRENCY" default:"5"`
	RetryCount   int           `envconfig:"RETRY_COUNT" default:"3"`
	RetryDelay   time.Duration `envconfig:"RETRY_DELAY" default:"500ms"`
	RequestDelay time.Duration `envconfig:"REQUEST_DELAY" default:"200ms"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	DataDir   string `envconfig:"DATA_DIR" default:"./data"`
	CacheFile string `envconfig:"CACHE_FILE" default:"./data/catalog.cache.json"`

	MetricsAddr     string        `envconfig:"METRICS_ADDR" default:""`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Validate checks the configuration for invalid or missing values.
// Returns an error describing the first invalid setting found.
func (c *Config) Validate() error {
	if c.CatalogURL == "" {
		return fmt.Errorf("catalog URL cannot be empty")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if c.Locales == "" {
		return fmt.Errorf("locales cannot be empty")
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1: %d", c.Concurrency)
	}
	if c.RetryCount < 1 {
		return fmt.Errorf("retry count must be at least 1: %d", c.RetryCount)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative: %s", c.RetryDelay)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request delay cannot be negative: %s", c.RequestDelay)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive: %s", c.HTTPTimeout)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if c.CacheFile == "" {
		return fmt.Errorf("cache file cannot be empty")
	}

	return nil
}

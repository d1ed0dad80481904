package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		CatalogURL:   "https://assets.tcgp-data.net/catalog.json",
		BaseURL:      "https://assets.tcgp-data.net/cards",
		Locales:      "en,ja",
		Concurrency:  5,
		RetryCount:   3,
		RetryDelay:   500 * time.Millisecond,
		RequestDelay: 200 * time.Millisecond,
		HTTPTimeout:  30 * time.Second,
		DataDir:      "./data",
		CacheFile:    "./data/catalog.cache.json",
	}
}

func TestConfig_ValidateOK(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty catalog URL", func(c *Config) { c.CatalogURL = "" }},
		{"empty base URL", func(c *Config) { c.BaseURL = "" }},
		{"empty locales", func(c *Config) { c.Locales = "" }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }},
		{"zero retry count", func(c *Config) { c.RetryCount = 0 }},
		{"negative retry delay", func(c *Config) { c.RetryDelay = -time.Second }},
		{"negative request delay", func(c *Config) { c.RequestDelay = -time.Second }},
		{"zero HTTP timeout", func(c *Config) { c.HTTPTimeout = 0 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty cache file", func(c *Config) { c.CacheFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.TopK)
	assert.Equal(t, 10, cfg.Scraper.MaxListings)
	assert.True(t, cfg.Scraper.Headless)
	assert.Equal(t, DefaultUserAgent, cfg.Scraper.UserAgent)
	assert.InDelta(t, 28.6139, cfg.Location.Latitude, 1e-9)
	assert.InDelta(t, 77.2090, cfg.Location.Longitude, 1e-9)
	assert.ElementsMatch(t, []string{"Amazon", "Flipkart"}, cfg.Categories["products"])
	assert.ElementsMatch(t, []string{"Swiggy", "Blinkit", "Zepto"}, cfg.Categories["grocery"])
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PRICECOMPARE_SERVER_PORT", "9191")
	t.Setenv("PRICECOMPARE_SCRAPER_MAX_LISTINGS", "4")
	t.Setenv("PRICECOMPARE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Scraper.MaxListings)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigFileAddsCategory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := `
categories:
  products: [Amazon, Flipkart]
  grocery: [Swiggy, Blinkit, Zepto]
  essentials: [Amazon, Blinkit]
server:
  top_k: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Server.TopK)
	assert.Equal(t, []string{"Amazon", "Blinkit"}, cfg.Categories["essentials"])
	assert.Len(t, cfg.Categories, 3)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{TopK: 5},
			Scraper:    ScraperConfig{MaxListings: 10, MaxBrowsers: 2, SessionTimeoutSecs: 60},
			Categories: DefaultCategories(),
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero top k", func(c *Config) { c.Server.TopK = 0 }},
		{"zero max listings", func(c *Config) { c.Scraper.MaxListings = 0 }},
		{"zero browsers", func(c *Config) { c.Scraper.MaxBrowsers = 0 }},
		{"zero session timeout", func(c *Config) { c.Scraper.SessionTimeoutSecs = 0 }},
		{"no categories", func(c *Config) { c.Categories = nil }},
		{"empty category", func(c *Config) { c.Categories["hotels"] = nil }},
		{"unknown platform", func(c *Config) { c.Categories["hotels"] = []string{"Airbnb"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"price-aggregator/models"
)

// DefaultUserAgent is presented by every browser session unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig        `mapstructure:"server"`
	Scraper    ScraperConfig       `mapstructure:"scraper"`
	Location   LocationConfig      `mapstructure:"location"`
	Categories map[string][]string `mapstructure:"categories"`
	Log        LogConfig           `mapstructure:"log"`
}

// ServerConfig configures the HTTP query boundary.
type ServerConfig struct {
	Port                int      `mapstructure:"port"`
	TopK                int      `mapstructure:"top_k"`
	AllowedOrigins      []string `mapstructure:"allowed_origins"`
	ShutdownTimeoutSecs int      `mapstructure:"shutdown_timeout_secs"`
}

// ScraperConfig configures browser sessions shared by all adapters.
type ScraperConfig struct {
	ChromeBin          string `mapstructure:"chrome_bin"`
	Headless           bool   `mapstructure:"headless"`
	MaxBrowsers        int    `mapstructure:"max_browsers"`
	MaxListings        int    `mapstructure:"max_listings"`
	SessionTimeoutSecs int    `mapstructure:"session_timeout_secs"`
	UserAgent          string `mapstructure:"user_agent"`
}

// SessionTimeout bounds a single adapter invocation.
func (s ScraperConfig) SessionTimeout() time.Duration {
	return time.Duration(s.SessionTimeoutSecs) * time.Second
}

// LocationConfig is the delivery location pre-seeded for quick-commerce sites.
type LocationConfig struct {
	ID        string  `mapstructure:"id"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Address   string  `mapstructure:"address"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .env (if present), an optional config.yaml and PRICECOMPARE_*
// environment variables, and returns a validated Config.
func Load() (*Config, error) {
	// .env is optional; system env vars are used when it is absent.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PRICECOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.top_k", 5)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_secs", 10)

	v.SetDefault("scraper.chrome_bin", "")
	v.SetDefault("scraper.headless", true)
	v.SetDefault("scraper.max_browsers", 6)
	v.SetDefault("scraper.max_listings", 10)
	v.SetDefault("scraper.session_timeout_secs", 120)
	v.SetDefault("scraper.user_agent", DefaultUserAgent)

	// Connaught Place, New Delhi.
	v.SetDefault("location.id", "2a52f8a8-b6b3-4672-9cc8-8339f0b83b3e")
	v.SetDefault("location.latitude", 28.6139)
	v.SetDefault("location.longitude", 77.2090)
	v.SetDefault("location.address", "Connaught Place, New Delhi, Delhi, India")

	v.SetDefault("categories", DefaultCategories())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// DefaultCategories maps each category to the platforms that serve it.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"products": {string(models.Amazon), string(models.Flipkart)},
		"grocery":  {string(models.Swiggy), string(models.Blinkit), string(models.Zepto)},
	}
}

// Validate checks limits and the category mapping.
func (c *Config) Validate() error {
	if c.Server.TopK < 1 {
		return eris.Errorf("config: server.top_k must be positive, got %d", c.Server.TopK)
	}
	if c.Scraper.MaxListings < 1 {
		return eris.Errorf("config: scraper.max_listings must be positive, got %d", c.Scraper.MaxListings)
	}
	if c.Scraper.MaxBrowsers < 1 {
		return eris.Errorf("config: scraper.max_browsers must be positive, got %d", c.Scraper.MaxBrowsers)
	}
	if c.Scraper.SessionTimeoutSecs < 1 {
		return eris.Errorf("config: scraper.session_timeout_secs must be positive, got %d", c.Scraper.SessionTimeoutSecs)
	}
	if len(c.Categories) == 0 {
		return eris.New("config: at least one category is required")
	}
	for name, platforms := range c.Categories {
		if len(platforms) == 0 {
			return eris.Errorf("config: category %q has no platforms", name)
		}
		for _, p := range platforms {
			if _, ok := models.ParsePlatform(p); !ok {
				return eris.Errorf("config: category %q references unknown platform %q", name, p)
			}
		}
	}
	return nil
}

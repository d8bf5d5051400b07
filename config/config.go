package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Feed
	FeedURLs     []string
	FetchTimeout time.Duration
	MaxRetries   int

	// Politeness
	RatePerSecond float64
	RateBurst     int
	DelayProfile  string // "cautious", "normal", "aggressive"
	RespectRobots bool

	// Store
	StoreDSN string // Postgres DSN, or "memory"

	// Logging
	LogLevel string

	// HTTP server
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults. The feed URL
// list covers the provider's current export path plus the historical ones
// that still answer intermittently.
func DefaultConfig() *Config {
	return &Config{
		FeedURLs: []string{
			"https://www.melodikamuzik.com/TicimaxXml/B8E1F2A3",
			"https://www.melodikamuzik.com/XMLExport/UrunXml",
			"https://melodikamuzik.com/xml/urunler.xml",
		},
		FetchTimeout:  60 * time.Second,
		MaxRetries:    2,
		RatePerSecond: 2.0,
		RateBurst:     3,
		DelayProfile:  "aggressive",
		RespectRobots: false,
		StoreDSN:      "memory",
		LogLevel:      "info",
		HTTPPort:      "8080",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from
// environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("MELODIKA_FEED_URLS"); v != "" {
		var urls []string
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) > 0 {
			c.FeedURLs = urls
		}
	}
	if v := os.Getenv("MELODIKA_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.FetchTimeout = d
		}
	}
	if v := os.Getenv("MELODIKA_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("MELODIKA_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("MELODIKA_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("MELODIKA_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("MELODIKA_RESPECT_ROBOTS"); v == "true" {
		c.RespectRobots = true
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.StoreDSN = v
	}
	if v := os.Getenv("MELODIKA_STORE_DSN"); v != "" {
		c.StoreDSN = v
	}
	if v := os.Getenv("MELODIKA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("MELODIKA_API_KEY"); v != "" {
		c.APIKey = v
	}
}

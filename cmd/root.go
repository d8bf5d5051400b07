package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/melodika/melodika-sync/config"
	"github.com/melodika/melodika-sync/internal/feed"
	"github.com/melodika/melodika-sync/internal/httputil"
	"github.com/melodika/melodika-sync/internal/pipeline"
	"github.com/melodika/melodika-sync/internal/polite"
	"github.com/melodika/melodika-sync/internal/store"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "melodika",
	Short: "Melodika catalog sync - product feed ingestion CLI & MCP server",
	Long:  "Synchronizes the Melodika storefront catalog from the supplier XML feed into the record store.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSlice("feed-url", nil, "Candidate feed URL (repeatable, tried in order)")
	rootCmd.PersistentFlags().String("store", "", "Store DSN: Postgres DSN or 'memory'")
	rootCmd.PersistentFlags().String("delay-profile", "", "Delay profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().Bool("respect-robots", false, "Respect robots.txt rules")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetStringSlice("feed-url"); len(v) > 0 {
		cfg.FeedURLs = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("store"); v != "" {
		cfg.StoreDSN = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("delay-profile"); v != "" {
		cfg.DelayProfile = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("respect-robots"); v {
		cfg.RespectRobots = true
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}

	logger = newLogger(cfg.LogLevel)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// buildHTTPClient creates the polite-transport HTTP client from config.
func buildHTTPClient() *http.Client {
	baseTransport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
	}

	robots := polite.NewRobotsChecker(&http.Client{}, cfg.RespectRobots)

	transport := &polite.Transport{
		Base:        baseTransport,
		Fingerprint: polite.NewFingerprintPool(),
		Robots:      robots,
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		Delay:       polite.NewDelay(polite.DelayProfile(cfg.DelayProfile)),
	}

	return httputil.NewHTTPClient(transport)
}

// openStore opens the configured record store.
func openStore() (store.Store, error) {
	st, err := store.Open(cfg.StoreDSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// buildPipeline wires the sync pipeline over the given store.
func buildPipeline(st store.Store) *pipeline.Pipeline {
	fetcher := feed.New(buildHTTPClient(), cfg.FeedURLs, cfg.FetchTimeout, cfg.MaxRetries, logger)
	return pipeline.New(fetcher, st, logger)
}

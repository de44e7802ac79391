// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	GridStatusURL string
	NewsURL       string
	FetchTimeout  time.Duration
	UserAgent     string

	DatabaseURL string

	// Change-notification publishing (optional).
	NotifyEnabled bool
	KafkaBrokers  []string
	NotifyTopic   string

	// In-process scheduling (optional). Empty disables the cron runner; the
	// HTTP trigger endpoints remain the primary entry points.
	ScrapeSchedule string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first if present;
// its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GridStatusURL: envOrDefault("GRID_STATUS_URL", "https://www.niggrid.org/"),
		NewsURL:       envOrDefault("NEWS_URL", "https://nerc.gov.ng/media-library/news"),
		FetchTimeout:  fetchTimeout,
		UserAgent:     os.Getenv("SCRAPE_USER_AGENT"),

		DatabaseURL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/gridwatch?sslmode=disable"),

		NotifyEnabled: os.Getenv("NOTIFY_ENABLED") == "true",
		KafkaBrokers:  splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		NotifyTopic:   envOrDefault("NOTIFY_TOPIC", "grid-data-updates"),

		ScrapeSchedule: os.Getenv("SCRAPE_SCHEDULE"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.GridStatusURL == "" {
		return nil, errors.New("GRID_STATUS_URL is required")
	}
	if cfg.NewsURL == "" {
		return nil, errors.New("NEWS_URL is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.NotifyEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("NOTIFY_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values. Timeouts,
// delays and pool sizes are fixed at start time; there is no runtime
// reconfiguration.
type Config struct {
	Port            string
	OpenAIAPIKey    string
	FetchTimeout    time.Duration
	CourtesyDelay   time.Duration
	BatchDeadline   time.Duration
	ScrapeWorkers   int
	PhoneRegion     string
	LogLevel        string
	RateLimitScrape RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
// An empty OPENAI_API_KEY switches the service to per-request credentials.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		FetchTimeout:  parseDuration(getEnv("FETCH_TIMEOUT", "10s"), 10*time.Second),
		CourtesyDelay: parseDuration(getEnv("COURTESY_DELAY", "1s"), time.Second),
		BatchDeadline: parseDuration(getEnv("BATCH_DEADLINE", "12s"), 12*time.Second),
		ScrapeWorkers: parseInt(getEnv("SCRAPE_WORKERS", "3"), 3),
		PhoneRegion:   getEnv("PHONE_REGION", "US"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SCRAPE", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SCRAPE value: %w", err)
	}
	cfg.RateLimitScrape = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for configuration values.
const (
	DefaultSnapshotPath  = "data/snapshot.json"
	DefaultDBPath        = "data/scanner.db"
	DefaultPort          = "8080"
	DefaultBankroll      = 100.0
	DefaultMinROIPct     = 0.0
	DefaultMinEdgePct    = 1.0
	DefaultMinPrice      = 1.01
	DefaultMaxPrice      = 1000.0
	DefaultPollInterval  = 60 * time.Second
	DefaultAlertCooldown = 5 * time.Minute
	DefaultMinBookCount  = 2
)

// Config holds all application configuration.
type Config struct {
	SnapshotPath string
	DBPath       string
	Port         string

	// BookPriority breaks best-price ties; earlier entries win.
	BookPriority []string

	// SpreadLines, when non-empty, restricts spread quotes to these
	// lines. Empty means no filtering.
	SpreadLines []float64

	// StaleAfter drops quotes older than the cutoff; zero disables.
	StaleAfter time.Duration

	Bankroll   float64
	MinROIPct  float64
	MinEdgePct float64
	MinPrice   float64
	MaxPrice   float64

	MinBookCount  int
	PollInterval  time.Duration
	AlertCooldown time.Duration
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		SnapshotPath:  DefaultSnapshotPath,
		DBPath:        DefaultDBPath,
		Port:          DefaultPort,
		Bankroll:      DefaultBankroll,
		MinROIPct:     DefaultMinROIPct,
		MinEdgePct:    DefaultMinEdgePct,
		MinPrice:      DefaultMinPrice,
		MaxPrice:      DefaultMaxPrice,
		MinBookCount:  DefaultMinBookCount,
		PollInterval:  DefaultPollInterval,
		AlertCooldown: DefaultAlertCooldown,
	}

	if v := os.Getenv("SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.BookPriority = splitCSV(os.Getenv("BOOK_PRIORITY"))

	if v := os.Getenv("SPREAD_LINES"); v != "" {
		for _, part := range splitCSV(v) {
			if f, err := strconv.ParseFloat(part, 64); err == nil {
				cfg.SpreadLines = append(cfg.SpreadLines, f)
			}
		}
	}

	if v := os.Getenv("STALE_AFTER_MIN"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.StaleAfter = time.Duration(m) * time.Minute
		}
	}

	if v := os.Getenv("BANKROLL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Bankroll = f
		}
	}

	if v := os.Getenv("MIN_ROI_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinROIPct = f
		}
	}

	if v := os.Getenv("MIN_EDGE_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinEdgePct = f
		}
	}

	if v := os.Getenv("MIN_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinPrice = f
		}
	}

	if v := os.Getenv("MAX_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxPrice = f
		}
	}

	if v := os.Getenv("MIN_BOOK_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinBookCount = n
		}
	}

	if v := os.Getenv("POLL_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("ALERT_COOLDOWN_MIN"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.AlertCooldown = time.Duration(m) * time.Minute
		}
	}

	return cfg
}

// Validate checks that configuration values are within acceptable ranges.
// A non-positive bankroll is the one input the pipeline refuses to run
// with; malformed odds data is filtered downstream, never fatal.
func Validate(cfg Config) error {
	if cfg.Bankroll <= 0 {
		return fmt.Errorf("BANKROLL must be positive, got %f", cfg.Bankroll)
	}
	if cfg.MinPrice <= 1.0 {
		return fmt.Errorf("MIN_PRICE must exceed 1.0, got %f", cfg.MinPrice)
	}
	if cfg.MaxPrice <= cfg.MinPrice {
		return fmt.Errorf("MAX_PRICE must exceed MIN_PRICE, got %f", cfg.MaxPrice)
	}
	if cfg.MinROIPct < 0 {
		return fmt.Errorf("MIN_ROI_PCT must be non-negative, got %f", cfg.MinROIPct)
	}
	if cfg.MinBookCount < 1 {
		return fmt.Errorf("MIN_BOOK_COUNT must be at least 1, got %d", cfg.MinBookCount)
	}
	if cfg.StaleAfter < 0 {
		return fmt.Errorf("STALE_AFTER_MIN must be non-negative, got %v", cfg.StaleAfter)
	}
	if cfg.PollInterval < time.Second {
		return fmt.Errorf("POLL_INTERVAL_MS must be at least 1000ms, got %v", cfg.PollInterval)
	}
	return nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

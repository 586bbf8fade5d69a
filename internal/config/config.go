// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/deusflow/thumbfill/internal/retry"
)

type Config struct {
	// Batch settings
	Jobs   int  // documents processed in parallel
	DryRun bool // report only, never write files

	// Candidate pool
	FeedsConfigPath string   // YAML list of saved RSS snapshots, optional
	NewsFiles       []string // extra report files whose news join the pool

	// Ledger settings
	LedgerPath           string
	LedgerRetentionHours int
	DatabaseURL          string // when set, runs are recorded in PostgreSQL

	// DB connection
	RetryAttempts int
	RetryDelay    time.Duration

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Jobs:                 1,
		LedgerPath:           "thumbfill_runs.json",
		LedgerRetentionHours: 24 * 30,
		RetryAttempts:        3,
		RetryDelay:           2 * time.Second,
	}

	cfg.FeedsConfigPath = os.Getenv("THUMBFILL_FEEDS")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.LedgerPath = getEnvOrDefault("THUMBFILL_LEDGER_PATH", cfg.LedgerPath)
	cfg.LedgerRetentionHours = getEnvIntOrDefault("THUMBFILL_LEDGER_RETENTION_HOURS", cfg.LedgerRetentionHours)
	cfg.RetryAttempts = getEnvIntOrDefault("THUMBFILL_DB_RETRY_ATTEMPTS", cfg.RetryAttempts)

	if v := os.Getenv("THUMBFILL_JOBS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.Jobs = val
		}
	}
	if v := os.Getenv("THUMBFILL_DB_RETRY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.RetryDelay = d
		}
	}
	if os.Getenv("THUMBFILL_DRY_RUN") == "true" {
		cfg.DryRun = true
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// Retry returns the policy for connecting to the ledger database.
func (c *Config) Retry() retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts: c.RetryAttempts,
		Delay:       c.RetryDelay,
		Backoff:     true,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1")
	}
	if c.LedgerRetentionHours < 1 {
		return fmt.Errorf("THUMBFILL_LEDGER_RETENTION_HOURS must be positive")
	}
	if c.DatabaseURL == "" && c.LedgerPath == "" {
		return fmt.Errorf("THUMBFILL_LEDGER_PATH or DATABASE_URL is required")
	}
	return nil
}

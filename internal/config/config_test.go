package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"THUMBFILL_FEEDS", "DATABASE_URL", "THUMBFILL_LEDGER_PATH", "THUMBFILL_LEDGER_RETENTION_HOURS",
		"THUMBFILL_DB_RETRY_ATTEMPTS", "THUMBFILL_JOBS", "THUMBFILL_DB_RETRY_DELAY", "THUMBFILL_DRY_RUN", "DEBUG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Jobs)
	assert.Equal(t, "thumbfill_runs.json", cfg.LedgerPath)
	assert.Equal(t, 720, cfg.LedgerRetentionHours)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 3, cfg.Retry().MaxAttempts)
	assert.True(t, cfg.Retry().Backoff)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("THUMBFILL_JOBS", "4")
	t.Setenv("THUMBFILL_FEEDS", "configs/feeds.yaml")
	t.Setenv("THUMBFILL_DB_RETRY_DELAY", "500ms")
	t.Setenv("THUMBFILL_DRY_RUN", "true")
	t.Setenv("DATABASE_URL", "postgres://localhost/thumbfill")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "configs/feeds.yaml", cfg.FeedsConfigPath)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "postgres://localhost/thumbfill", cfg.DatabaseURL)
}

func TestLoad_IgnoresBadJobs(t *testing.T) {
	clearEnv(t)
	t.Setenv("THUMBFILL_JOBS", "zero")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Jobs)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Jobs: 1, LedgerRetentionHours: 1, LedgerPath: "x.json"}
	assert.NoError(t, cfg.Validate())

	cfg.Jobs = 0
	assert.Error(t, cfg.Validate())

	cfg = &Config{Jobs: 1, LedgerRetentionHours: 0, LedgerPath: "x.json"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Jobs: 1, LedgerRetentionHours: 1}
	assert.Error(t, cfg.Validate())
}

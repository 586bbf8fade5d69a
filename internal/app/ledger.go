package app

import (
	"context"

	"github.com/deusflow/thumbfill/internal/config"
	"github.com/deusflow/thumbfill/internal/logger"
	"github.com/deusflow/thumbfill/internal/storage"
)

// Ledger records processed files. Implemented by storage.FileLedger and
// storage.PostgresLedger.
type Ledger interface {
	Record(ctx context.Context, rec storage.RunRecord) error
	Recent(ctx context.Context, limit int) ([]storage.RunRecord, error)
	Close() error
}

var (
	_ Ledger = (*storage.FileLedger)(nil)
	_ Ledger = (*storage.PostgresLedger)(nil)
)

// OpenLedger prefers PostgreSQL when DATABASE_URL is set and falls back to
// the JSON file ledger when the database is unreachable.
func OpenLedger(ctx context.Context, cfg *config.Config) (Ledger, error) {
	if cfg.DatabaseURL != "" {
		pl, err := storage.NewPostgresLedger(ctx, cfg.DatabaseURL, cfg.LedgerRetentionHours, cfg.Retry())
		if err == nil {
			if err := pl.Cleanup(ctx); err != nil {
				logger.Warn("ledger cleanup failed", "error", err)
			}
			return pl, nil
		}
		logger.Warn("postgres ledger unavailable, using file ledger", "error", err, "path", cfg.LedgerPath)
	}
	return storage.OpenFileLedger(cfg.LedgerPath, cfg.LedgerRetentionHours)
}

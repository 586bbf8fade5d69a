package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/deusflow/thumbfill/internal/logger"
	"github.com/deusflow/thumbfill/internal/retry"
)

// PostgresLedger keeps run records in PostgreSQL
type PostgresLedger struct {
	db             *sql.DB
	retentionHours int
}

// NewPostgresLedger connects to the database, retrying the ping, and makes
// sure the schema exists
func NewPostgresLedger(ctx context.Context, connectionString string, retentionHours int, rc retry.RetryConfig) (*PostgresLedger, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	err = retry.WithRetry(ctx, rc, func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pl, err := NewPostgresLedgerFromDB(ctx, db, retentionHours)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("postgres ledger connected")
	return pl, nil
}

// NewPostgresLedgerFromDB wraps an open database handle
func NewPostgresLedgerFromDB(ctx context.Context, db *sql.DB, retentionHours int) (*PostgresLedger, error) {
	pl := &PostgresLedger{
		db:             db,
		retentionHours: retentionHours,
	}

	// Initialize schema
	if err := pl.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return pl, nil
}

// initSchema creates the necessary tables if they don't exist
func (pl *PostgresLedger) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS thumbfill_runs (
		id SERIAL PRIMARY KEY,
		file TEXT NOT NULL,
		digest VARCHAR(64) NOT NULL,
		checked INTEGER NOT NULL DEFAULT 0,
		fixed INTEGER NOT NULL DEFAULT 0,
		empty_to_null INTEGER NOT NULL DEFAULT 0,
		saved BOOLEAN NOT NULL DEFAULT FALSE,
		dry_run BOOLEAN NOT NULL DEFAULT FALSE,
		ran_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_thumbfill_runs_ran_at ON thumbfill_runs(ran_at);
	CREATE INDEX IF NOT EXISTS idx_thumbfill_runs_file ON thumbfill_runs(file);
	`

	if _, err := pl.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Debug("ledger schema initialized")
	return nil
}

// Record stores one run record
func (pl *PostgresLedger) Record(ctx context.Context, rec RunRecord) error {
	if rec.RanAt.IsZero() {
		rec.RanAt = time.Now()
	}

	query := `
		INSERT INTO thumbfill_runs (file, digest, checked, fixed, empty_to_null, saved, dry_run, ran_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pl.db.ExecContext(ctx, query,
		rec.File, rec.Digest, rec.Checked, rec.Fixed, rec.EmptyToNull, rec.Saved, rec.DryRun, rec.RanAt)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// Recent returns the newest records within the retention window
func (pl *PostgresLedger) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	cutoff := time.Now().Add(-time.Duration(pl.retentionHours) * time.Hour)

	query := `
		SELECT file, digest, checked, fixed, empty_to_null, saved, dry_run, ran_at
		FROM thumbfill_runs
		WHERE ran_at > $1
		ORDER BY ran_at DESC
		LIMIT $2
	`

	rows, err := pl.db.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		err := rows.Scan(&rec.File, &rec.Digest, &rec.Checked, &rec.Fixed, &rec.EmptyToNull, &rec.Saved, &rec.DryRun, &rec.RanAt)
		if err != nil {
			logger.Warn("error scanning run row", "error", err)
			continue
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Cleanup removes records older than the retention window
func (pl *PostgresLedger) Cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-time.Duration(pl.retentionHours) * time.Hour)

	result, err := pl.db.ExecContext(ctx, `DELETE FROM thumbfill_runs WHERE ran_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		logger.Info("cleaned up old run records", "rows", rows)
	}

	return nil
}

// Close closes the database connection
func (pl *PostgresLedger) Close() error {
	if pl.db != nil {
		return pl.db.Close()
	}
	return nil
}

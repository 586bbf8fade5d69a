package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"
)

// FileLedger keeps run records in a JSON file
type FileLedger struct {
	filePath       string
	retentionHours int
	records        []RunRecord
	mu             sync.RWMutex
}

// NewFileLedger creates a new file ledger instance
func NewFileLedger(filePath string, retentionHours int) *FileLedger {
	return &FileLedger{
		filePath:       filePath,
		retentionHours: retentionHours,
	}
}

// OpenFileLedger creates a ledger and loads existing records from disk
func OpenFileLedger(filePath string, retentionHours int) (*FileLedger, error) {
	fl := NewFileLedger(filePath, retentionHours)
	if err := fl.Load(); err != nil {
		return nil, err
	}
	return fl, nil
}

// Load loads existing records from file, dropping expired ones
func (fl *FileLedger) Load() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	data, err := os.ReadFile(fl.filePath)
	if os.IsNotExist(err) {
		// File doesn't exist, start with empty ledger
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read ledger file: %w", err)
	}

	if len(data) == 0 {
		return nil // Empty file
	}

	var records []RunRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to unmarshal ledger: %w", err)
	}

	cutoff := fl.cutoff()
	fl.records = fl.records[:0]
	for _, rec := range records {
		if rec.RanAt.After(cutoff) {
			fl.records = append(fl.records, rec)
		}
	}

	return nil
}

// Save writes current records to file
func (fl *FileLedger) Save() error {
	fl.mu.RLock()
	records := make([]RunRecord, len(fl.records))
	copy(records, fl.records)
	fl.mu.RUnlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	if err := os.WriteFile(fl.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}

	return nil
}

// Record appends a run record. It is persisted on Save or Close.
func (fl *FileLedger) Record(_ context.Context, rec RunRecord) error {
	if rec.RanAt.IsZero() {
		rec.RanAt = time.Now()
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.records = append(fl.records, rec)
	return nil
}

// Recent returns the newest records within the retention window
func (fl *FileLedger) Recent(_ context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	fl.mu.RLock()
	cutoff := fl.cutoff()
	var out []RunRecord
	for _, rec := range fl.records {
		if rec.RanAt.After(cutoff) {
			out = append(out, rec)
		}
	}
	fl.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RanAt.After(out[j].RanAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close persists the ledger
func (fl *FileLedger) Close() error {
	return fl.Save()
}

// GetStats returns ledger statistics
func (fl *FileLedger) GetStats() map[string]int {
	fl.mu.RLock()
	defer fl.mu.RUnlock()

	fixed := 0
	for _, rec := range fl.records {
		fixed += rec.Fixed
	}
	return map[string]int{
		"total_runs":  len(fl.records),
		"total_fixed": fixed,
	}
}

func (fl *FileLedger) cutoff() time.Time {
	return time.Now().Add(-time.Duration(fl.retentionHours) * time.Hour)
}

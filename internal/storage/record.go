package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RunRecord is one processed report file in the run ledger.
type RunRecord struct {
	File        string    `json:"file"`
	Digest      string    `json:"digest"`
	Checked     int       `json:"checked"`
	Fixed       int       `json:"fixed"`
	EmptyToNull int       `json:"empty_to_null"`
	Saved       bool      `json:"saved"`
	DryRun      bool      `json:"dry_run"`
	RanAt       time.Time `json:"ran_at"`
}

// Digest creates a short stable hash of file content
func Digest(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])[:16] // Use first 16 characters
}

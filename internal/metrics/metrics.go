package metrics

import (
	"sync"
	"time"
)

// Metrics collects counters for one batch run. Safe for concurrent use.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	DocumentsProcessed int64
	DocumentsSaved     int64
	DocumentsFailed    int64
	ItemsChecked       int64
	ThumbnailsFixed    int64
	EmptyToNull        int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	StartedAt time.Time
	LastError string
}

func New() *Metrics {
	return &Metrics{StartedAt: time.Now()}
}

func (m *Metrics) RecordDocument(checked, fixed, emptyToNull int, saved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DocumentsProcessed++
	m.ItemsChecked += int64(checked)
	m.ThumbnailsFixed += int64(fixed)
	m.EmptyToNull += int64(emptyToNull)
	if saved {
		m.DocumentsSaved++
	}
}

func (m *Metrics) RecordFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DocumentsFailed++
	if err != nil {
		m.LastError = err.Error()
	}
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"documents_processed":        m.DocumentsProcessed,
		"documents_saved":            m.DocumentsSaved,
		"documents_failed":           m.DocumentsFailed,
		"items_checked":              m.ItemsChecked,
		"thumbnails_fixed":           m.ThumbnailsFixed,
		"empty_to_null":              m.EmptyToNull,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"started_at":                 m.StartedAt.Format(time.RFC3339),
		"last_error":                 m.LastError,
	}
}

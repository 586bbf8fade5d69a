package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordDocument(3, 1, 1, true)
		}()
	}
	wg.Wait()
	m.RecordDocument(2, 0, 0, false)
	m.RecordFailure(errors.New("bad file"))

	stats := m.GetStats()
	assert.Equal(t, int64(11), stats["documents_processed"])
	assert.Equal(t, int64(10), stats["documents_saved"])
	assert.Equal(t, int64(1), stats["documents_failed"])
	assert.Equal(t, int64(32), stats["items_checked"])
	assert.Equal(t, int64(10), stats["thumbnails_fixed"])
	assert.Equal(t, "bad file", stats["last_error"])
}

func TestMetrics_ProcessingTime(t *testing.T) {
	m := New()
	m.RecordProcessingTime(10 * time.Millisecond)
	m.RecordProcessingTime(30 * time.Millisecond)

	stats := m.GetStats()
	assert.Equal(t, int64(30), stats["last_processing_time_ms"])
	assert.Equal(t, int64(20), stats["average_processing_time_ms"])
}

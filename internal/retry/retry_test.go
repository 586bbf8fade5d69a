package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_GivesUp(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := WithRetry(context.Background(), RetryConfig{MaxAttempts: 2, Delay: time.Millisecond, Backoff: true}, func() error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestWithRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), RetryConfig{}, func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, RetryConfig{MaxAttempts: 5, Delay: time.Hour}, func() error {
		return errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

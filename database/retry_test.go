package database

import (
	"burnshop_server/lib"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.False(t, isRetryableError(context.Canceled))
	assert.False(t, isRetryableError(fmt.Errorf("order: %w", lib.ErrNotFound)))
	assert.False(t, isRetryableError(lib.NewValidationError("status", "is terminal")))
	assert.False(t, isRetryableError(errors.New("syntax error at or near SELEC")))

	assert.True(t, isRetryableError(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.True(t, isRetryableError(errors.New("read tcp: connection reset by peer")))
}

func TestRetryWithBackoff(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2, EnableRetry: true}

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return sqlite3.Error{Code: sqlite3.ErrBusy}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return lib.ErrConflict
	})
	assert.ErrorIs(t, err, lib.ErrConflict)
	assert.Equal(t, 1, calls, "domain errors are not retried")

	calls = 0
	cfg.EnableRetry = false
	_ = RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return sqlite3.Error{Code: sqlite3.ErrBusy}
	})
	assert.Equal(t, 1, calls)
}

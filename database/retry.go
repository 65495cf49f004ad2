package database

import (
	"burnshop_server/lib"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// RetryConfig defines retry behavior
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	EnableRetry  bool
}

// DefaultRetryConfig returns sensible defaults for retry behavior
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		EnableRetry:  true,
	}
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry context errors (timeout, cancellation)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, sql.ErrNoRows) {
		return false
	}

	// Domain errors returned from inside a transaction
	for _, domainErr := range []error{lib.ErrNotFound, lib.ErrValidation, lib.ErrReference, lib.ErrConflict, lib.ErrForbidden} {
		if errors.Is(err, domainErr) {
			return false
		}
	}

	if code := lib.SQLState(err); code != "" {
		switch code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"57P03": // cannot_connect_now
			return true
		}
		// connection_exception (08xxx) and insufficient_resources (53xxx) are transient;
		// integrity (23xxx), syntax (42xxx) and the rest are not
		return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "53")
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}

	// Check error message for common transient issues
	errMsg := strings.ToLower(err.Error())

	for _, transient := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"eof",
		"connection closed",
		"bad connection",
		"too many clients",
		"server is not accepting",
		"temporary failure",
	} {
		if strings.Contains(errMsg, transient) {
			return true
		}
	}

	return false
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func RetryWithBackoff(ctx context.Context, config RetryConfig, operation func() error) error {
	if !config.EnableRetry {
		return operation()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return err
		}

		if attempt >= config.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * config.Multiplier)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}
	}

	return lastErr
}

// WithRetry wraps a database operation with retry logic
func WithRetry(ctx context.Context, fn func() error) error {
	return RetryWithBackoff(ctx, DefaultRetryConfig(), fn)
}

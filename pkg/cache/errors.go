package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrBackend is returned when a remote backend cannot be reached.
	ErrBackend = errors.New("cache backend unavailable")

	// ErrUnknownBackend is returned by [Open] for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is marked transient.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryDelay is the first backoff delay of [RetryWithBackoff]; it doubles per attempt.
var RetryDelay = 100 * time.Millisecond

// RetryWithBackoff calls fn up to 3 times while it returns retryable errors.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := RetryDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

package apperrors

import (
	"context"
	"errors"
	"time"

	"github.com/cloudflare/backoff"
)

// Default retry envelope for retriable Database errors, per §7: base 1-2s,
// cap 10-30s, factor 2, jitter is handled internally by backoff.New.
const (
	defaultBaseInterval = 1 * time.Second
	defaultMaxInterval  = 10 * time.Second
)

// Retry runs fn, retrying on a retriable *Error using exponential backoff
// with jitter (grounded on xataio/pgroll's pkg/db retry-on-lock-timeout
// pattern). It stops and returns the last error once fn returns a
// non-retriable error, ctx is cancelled, or maxAttempts is exhausted.
func Retry(ctx context.Context, maxAttempts int, fn func(ctx context.Context) error) error {
	b := backoff.New(defaultMaxInterval, defaultBaseInterval)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		var appErr *Error
		if !errors.As(lastErr, &appErr) || !appErr.Retriable {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.Duration()):
		}
	}
	return lastErr
}

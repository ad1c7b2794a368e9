package retry

import (
	"context"
	"time"
)

// Do calls fn until it succeeds, returns a non-transient error, or the
// attempts are exhausted. It respects context cancellation during backoff
// waits and returns the last error when all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < attempts-1 {
			timer := time.NewTimer(cfg.Delay(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return zero, lastErr
}

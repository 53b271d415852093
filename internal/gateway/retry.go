package gateway

import (
	"context"
	"math"
	"time"
)

// WithRetry invokes fn up to attempts times, sleeping base*2^attempt
// between failures and returning the last error once attempts are
// exhausted. No jitter and no shared retry budget: this is simple
// bounded backoff, not a resilience layer. Attempts below 1 are treated
// as 1 so fn always runs at least once.
func WithRetry[T any](ctx context.Context, attempts int, baseDelay time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * baseDelay
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return zero, lastErr
}

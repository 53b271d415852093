package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), 3, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRunsAtLeastOnce(t *testing.T) {
	for _, attempts := range []int{0, -1} {
		calls := 0
		result, err := WithRetry(context.Background(), attempts, time.Millisecond, func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})

		assert.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
	}
}

func TestWithRetryRecoversAfterFailure(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), 3, time.Millisecond, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestWithRetryExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), 3, time.Millisecond, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("permanent")
	})

	assert.Error(t, err)
	assert.Equal(t, "permanent", err.Error())
	assert.Equal(t, 3, calls)
}

func TestWithRetryExponentialBackoff(t *testing.T) {
	base := 10 * time.Millisecond
	start := time.Now()
	calls := 0
	_, err := WithRetry(context.Background(), 3, base, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("always")
	})
	elapsed := time.Since(start)

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
	// Two sleeps: base*2^0 + base*2^1 = 30ms minimum.
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestWithRetryRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := WithRetry(ctx, 3, time.Second, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "should not retry once the context is cancelled")
}

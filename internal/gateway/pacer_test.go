package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacerFirstWaitDoesNotBlock(t *testing.T) {
	pacer := NewPacer(time.Second)

	start := time.Now()
	err := pacer.Wait(context.Background())

	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPacerEnforcesMinimumSpacing(t *testing.T) {
	interval := 20 * time.Millisecond
	pacer := NewPacer(interval)

	start := time.Now()
	for i := 0; i < 3; i++ {
		err := pacer.Wait(context.Background())
		assert.NoError(t, err)
	}
	elapsed := time.Since(start)

	// Three dispatches: the second and third must each wait one interval.
	assert.GreaterOrEqual(t, elapsed, 2*interval)
}

func TestPacerRespectsContextCancellation(t *testing.T) {
	pacer := NewPacer(time.Minute)
	assert.NoError(t, pacer.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := pacer.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package dispatch_test

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsymba/refurbwatch/internal/dispatch"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPool_ExecutesSubmittedTasks(t *testing.T) {
	pool := dispatch.NewPool(discardLogger(), 2, 8)

	var executed atomic.Int32
	for range 5 {
		accepted := pool.Submit(func() {
			executed.Add(1)
		})
		assert.True(t, accepted)
	}

	pool.Stop()

	assert.Equal(t, int32(5), executed.Load())
}

func TestPool_DropsTasksWhenQueueIsFull(t *testing.T) {
	pool := dispatch.NewPool(discardLogger(), 1, 1)

	release := make(chan struct{})
	started := make(chan struct{})

	// Occupy the single worker so further tasks pile up in the queue.
	assert.True(t, pool.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	// Fills the queue slot.
	assert.True(t, pool.Submit(func() {}))

	// Queue is full now, this one must be dropped without blocking.
	assert.False(t, pool.Submit(func() {}))

	close(release)
	pool.Stop()
}

func TestPool_StopWaitsForDrain(t *testing.T) {
	pool := dispatch.NewPool(discardLogger(), 1, 4)

	var executed atomic.Int32
	for range 4 {
		pool.Submit(func() {
			executed.Add(1)
		})
	}

	pool.Stop()

	assert.Equal(t, int32(4), executed.Load())
}

package host

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker(t *testing.T) {
	t.Run("rejects invalid frame rates", func(t *testing.T) {
		_, err := NewTicker(0)
		assert.Error(t, err)
	})

	t.Run("runs callbacks until the context is done", func(t *testing.T) {
		ticker, err := NewTicker(200)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Millisecond, ticker.Interval())

		var runs atomic.Int32
		var last atomic.Int64

		var cb FrameCallback
		cb = func(ts time.Duration) {
			runs.Add(1)
			last.Store(int64(ts))
			ticker.RequestFrame(cb)
		}
		ticker.RequestFrame(cb)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err = ticker.Run(ctx)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Greater(t, runs.Load(), int32(1))
		assert.Positive(t, last.Load())
		assert.Equal(t, uint64(runs.Load()), ticker.Frames())
	})

	t.Run("survives panicking callbacks", func(t *testing.T) {
		ticker, err := NewTicker(200)
		require.NoError(t, err)

		var runs atomic.Int32
		ticker.RequestFrame(func(time.Duration) { panic("boom") })

		var cb FrameCallback
		cb = func(time.Duration) {
			runs.Add(1)
			ticker.RequestFrame(cb)
		}
		ticker.RequestFrame(cb)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_ = ticker.Run(ctx)

		assert.Greater(t, runs.Load(), int32(1))
	})

	t.Run("cannot run twice at once", func(t *testing.T) {
		ticker, err := NewTicker(60)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- ticker.Run(ctx) }()

		require.Eventually(t, func() bool { return ticker.running.Load() }, time.Second, time.Millisecond)
		assert.ErrorIs(t, ticker.Run(ctx), ErrTickerRunning)

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}

package host

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var ErrTickerRunning = errors.New("host: ticker is already running")

// Ticker is a host driven by a time.Ticker. Callbacks run on the goroutine calling Run.
type Ticker struct {
	interval time.Duration
	queue    frameQueue

	running atomic.Bool
	frames  atomic.Uint64

	log zerolog.Logger
}

type TickerOption func(*Ticker)

// WithLogger sets the logger used to report panicking callbacks.
func WithLogger(log zerolog.Logger) TickerOption {
	return func(t *Ticker) { t.log = log }
}

// NewTicker creates a host firing fps frames per second.
func NewTicker(fps int, opts ...TickerOption) (*Ticker, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("host: invalid frame rate %d", fps)
	}

	t := &Ticker{
		interval: time.Second / time.Duration(fps),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

func (t *Ticker) RequestFrame(cb FrameCallback) uint64 {
	return t.queue.Enqueue(cb)
}

func (t *Ticker) CancelFrame(id uint64) {
	t.queue.Cancel(id)
}

func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Frames returns the number of ticks that ran at least one callback.
func (t *Ticker) Frames() uint64 {
	return t.frames.Load()
}

// Run fires frames until ctx is done. Timestamps are measured from the call to Run.
func (t *Ticker) Run(ctx context.Context) error {
	if !t.running.CompareAndSwap(false, true) {
		return ErrTickerRunning
	}
	defer t.running.Store(false)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	start := time.Now()

	t.log.Debug().Dur("interval", t.interval).Msg("ticker started")

	for {
		select {
		case <-ctx.Done():
			t.log.Debug().Uint64("frames", t.frames.Load()).Msg("ticker stopped")
			return ctx.Err()
		case now := <-ticker.C:
			if t.queue.RunFrame(now.Sub(start), t.invoke) > 0 {
				t.frames.Add(1)
			}
		}
	}
}

func (t *Ticker) invoke(cb FrameCallback, timestamp time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error().Interface("panic", r).Dur("timestamp", timestamp).Msg("frame callback panicked")
		}
	}()

	cb(timestamp)
}

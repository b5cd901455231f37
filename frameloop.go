// Package frameloop schedules animation frames for any number of independent
// rendering surfaces ("roots") on top of one host frame primitive.
//
// Each root renders on every frame (FrameloopAlways), only while it has pending
// frames (FrameloopDemand) or only when advanced manually (FrameloopNever).
// The loop goes idle as soon as no root needs another frame and is restarted by
// the next invalidation.
package frameloop

import (
	"time"

	"github.com/AnatoleLucet/frameloop/internal"
)

type (
	Frameloop     = internal.Frameloop
	State         = internal.State
	Internal      = internal.Internal
	Clock         = internal.Clock
	Size          = internal.Size
	Store         = internal.Store
	RootStore     = internal.RootStore
	RootOptions   = internal.RootOptions
	Renderer      = internal.Renderer
	Presenter     = internal.Presenter
	XRFrame       = internal.XRFrame
	FrameContext  = internal.FrameContext
	FrameCallback = internal.FrameCallback
	Subscription  = internal.Subscription
	Phase         = internal.Phase
	PanicError    = internal.PanicError

	// Host is the frame-scheduling primitive a scheduler runs on, see package host.
	Host = internal.Host
)

const (
	FrameloopAlways = internal.FrameloopAlways
	FrameloopDemand = internal.FrameloopDemand
	FrameloopNever  = internal.FrameloopNever

	PhaseBefore = internal.PhaseBefore
	PhaseAfter  = internal.PhaseAfter
	PhaseTail   = internal.PhaseTail

	// MaxFrames is the most frames a root can have pending.
	MaxFrames = internal.MaxFrames
)

var ErrPanic = internal.ErrPanic

// NewRootStore creates the default store of a root.
func NewRootStore(opts RootOptions) *RootStore {
	return internal.NewRootStore(opts)
}

// NewClock creates a clock reading the wall time.
func NewClock() *Clock {
	return internal.NewClock()
}

// NewClockWithSource creates a clock reading the time from now.
func NewClockWithSource(now func() time.Time) *Clock {
	return internal.NewClockWithSource(now)
}

func ParseFrameloop(s string) (Frameloop, error) {
	return internal.ParseFrameloop(s)
}

// Scheduler drives the roots registered under handles of type K.
// One scheduler is meant to be shared by every surface of a process.
type Scheduler[K comparable] struct {
	scheduler *internal.Scheduler[K]
}

// New creates a scheduler running on host.
func New[K comparable](host Host, opts ...Option) *Scheduler[K] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := internal.NewScheduler[K](host, o.logger)
	for _, fn := range o.errorHandlers {
		s.Catcher().OnError(fn)
	}

	return &Scheduler[K]{s}
}

// AddRoot registers the store of a root under key.
// The root is not rendered until it is invalidated or advanced.
func (s *Scheduler[K]) AddRoot(key K, store Store) { s.scheduler.SetRoot(key, store) }

// RemoveRoot forgets the root. Pending invalidations of it become no-ops.
func (s *Scheduler[K]) RemoveRoot(key K) { s.scheduler.DeleteRoot(key) }

// Root returns the store registered under key.
func (s *Scheduler[K]) Root(key K) (Store, bool) { return s.scheduler.Root(key) }

// Subscribe calls cb on every rendered frame of the root.
// A positive priority takes over rendering of the root while subscribed.
// Subscribing to an unknown root returns a no-op unsubscribe.
func (s *Scheduler[K]) Subscribe(key K, cb FrameCallback, priority int) func() {
	unsubscribe, _ := s.scheduler.Subscribe(key, cb, priority)
	return unsubscribe
}

// AddEffect adds a callback called at the start of each frame.
func (s *Scheduler[K]) AddEffect(fn func(timestamp time.Duration)) func() {
	return s.scheduler.AddEffect(PhaseBefore, fn)
}

// AddAfterEffect adds a callback called at the end of each frame.
func (s *Scheduler[K]) AddAfterEffect(fn func(timestamp time.Duration)) func() {
	return s.scheduler.AddEffect(PhaseAfter, fn)
}

// AddTail adds a callback called when the loop stops rendering.
func (s *Scheduler[K]) AddTail(fn func(timestamp time.Duration)) func() {
	return s.scheduler.AddEffect(PhaseTail, fn)
}

// FlushGlobalEffects runs every effect of the phase.
func (s *Scheduler[K]) FlushGlobalEffects(phase Phase, timestamp time.Duration) {
	s.scheduler.FlushEffects(phase, timestamp)
}

// Invalidate requests one more frame for the given roots, or for every root if none is given.
func (s *Scheduler[K]) Invalidate(roots ...K) {
	s.InvalidateFrames(1, roots...)
}

// InvalidateFrames requests frames more frames for the given roots, or for every root if none is given.
// Pending frames never exceed MaxFrames. Roots in FrameloopNever mode are left untouched.
func (s *Scheduler[K]) InvalidateFrames(frames int, roots ...K) {
	if len(roots) == 0 {
		s.scheduler.InvalidateAll(frames)
		return
	}

	for _, root := range roots {
		s.scheduler.Invalidate(root, frames)
	}
}

// Advance renders every root synchronously, regardless of whether they are due.
// Useful to drive FrameloopNever roots by hand.
func (s *Scheduler[K]) Advance(timestamp time.Duration, opts ...AdvanceOption) {
	o := newAdvanceOptions(opts)
	s.scheduler.Advance(timestamp, o.globalEffects, nil, nil)
}

// AdvanceRoot renders a single root synchronously. Unknown roots are ignored.
func (s *Scheduler[K]) AdvanceRoot(timestamp time.Duration, key K, opts ...AdvanceOption) {
	o := newAdvanceOptions(opts)
	s.scheduler.Advance(timestamp, o.globalEffects, &key, o.frame)
}

// Loop runs one driven frame. Hosts call it, and calling it once bootstraps the loop.
func (s *Scheduler[K]) Loop(timestamp time.Duration) { s.scheduler.Loop(timestamp) }

// Running reports whether a frame is currently requested from the host.
func (s *Scheduler[K]) Running() bool { return s.scheduler.Running() }

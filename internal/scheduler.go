package internal

import (
	"time"

	"github.com/rs/zerolog"
)

// Host is the frame-scheduling primitive of the environment.
// It calls back once per registration, on the next frame.
type Host interface {
	RequestFrame(cb func(timestamp time.Duration)) uint64
	// CancelFrame drops a registration. Unknown or already run handles are ignored.
	CancelFrame(handle uint64)
}

type Scheduler[K comparable] struct {
	guard Guard

	host     Host
	roots    *Roots[K]
	effects  *Effects
	renderer *FrameRenderer
	catcher  *Catcher

	// true while a host callback is outstanding
	running bool
	// handle of the outstanding host callback
	handle uint64

	log zerolog.Logger
}

func NewScheduler[K comparable](host Host, log zerolog.Logger) *Scheduler[K] {
	catcher := NewCatcher(log)

	return &Scheduler[K]{
		host:     host,
		roots:    NewRoots[K](),
		effects:  NewEffects(catcher),
		renderer: NewFrameRenderer(catcher),
		catcher:  catcher,
		log:      log,
	}
}

func (s *Scheduler[K]) Catcher() *Catcher {
	return s.catcher
}

func (s *Scheduler[K]) Running() bool {
	s.guard.Lock()
	defer s.guard.Unlock()

	return s.running
}

func (s *Scheduler[K]) SetRoot(key K, store Store) {
	s.guard.Lock()
	defer s.guard.Unlock()

	s.roots.Set(key, store)
}

func (s *Scheduler[K]) DeleteRoot(key K) {
	s.guard.Lock()
	defer s.guard.Unlock()

	s.roots.Delete(key)
}

func (s *Scheduler[K]) Root(key K) (Store, bool) {
	s.guard.Lock()
	defer s.guard.Unlock()

	return s.roots.Get(key)
}

// Subscribe registers cb on the root stored under key.
// It returns a no-op unsubscribe and false if the root is unknown.
func (s *Scheduler[K]) Subscribe(key K, cb FrameCallback, priority int) (func(), bool) {
	s.guard.Lock()
	defer s.guard.Unlock()

	store, ok := s.roots.Get(key)
	if !ok {
		return func() {}, false
	}

	remove := store.Get().Internal.Subscribe(store, cb, priority)
	return func() {
		s.guard.Lock()
		defer s.guard.Unlock()

		remove()
	}, true
}

func (s *Scheduler[K]) AddEffect(phase Phase, fn EffectCallback) func() {
	s.guard.Lock()
	defer s.guard.Unlock()

	remove := s.effects.Register(phase, fn)
	return func() {
		s.guard.Lock()
		defer s.guard.Unlock()

		remove()
	}
}

func (s *Scheduler[K]) FlushEffects(phase Phase, timestamp time.Duration) {
	s.guard.Lock()
	defer s.guard.Unlock()

	s.effects.Flush(phase, timestamp)
}

// Loop runs one driven frame. It is the callback handed to the host.
func (s *Scheduler[K]) Loop(timestamp time.Duration) {
	s.guard.Lock()
	defer s.guard.Unlock()

	// a direct call while a frame is already requested must not leave two registrations behind
	if s.running {
		s.host.CancelFrame(s.handle)
	}

	// register the next frame before doing any work so a failing frame cannot stop the loop
	s.handle = s.host.RequestFrame(s.Loop)
	s.running = true

	repeat := 0

	s.effects.Flush(PhaseBefore, timestamp)

	s.roots.Each(func(_ K, store Store) {
		state := store.Get()
		if state.Eligible() {
			repeat += s.renderer.RenderRoot(timestamp, state, nil)
		}
	})

	s.effects.Flush(PhaseAfter, timestamp)

	// stop the loop if nothing invalidated it
	if repeat == 0 {
		s.effects.Flush(PhaseTail, timestamp)

		s.running = false
		s.host.CancelFrame(s.handle)

		s.log.Debug().Dur("timestamp", timestamp).Msg("frameloop idle")
	}
}

// Invalidate requests frames more frames for the root stored under key.
// Unknown roots are ignored.
func (s *Scheduler[K]) Invalidate(key K, frames int) {
	s.guard.Lock()
	defer s.guard.Unlock()

	if store, ok := s.roots.Get(key); ok {
		s.invalidate(store, frames)
	}
}

// InvalidateAll requests frames more frames for every root.
func (s *Scheduler[K]) InvalidateAll(frames int) {
	s.guard.Lock()
	defer s.guard.Unlock()

	s.roots.Each(func(_ K, store Store) {
		s.invalidate(store, frames)
	})
}

func (s *Scheduler[K]) invalidate(store Store, frames int) {
	state := store.Get()
	if isPresenting(state.GL) || !state.Internal.Active || state.Frameloop == FrameloopNever {
		return
	}

	state.Internal.Frames = min(MaxFrames, state.Internal.Frames+max(0, frames))

	// restart the loop if it went idle
	if !s.running {
		s.running = true
		s.handle = s.host.RequestFrame(s.Loop)

		s.log.Debug().Int("frames", state.Internal.Frames).Msg("frameloop started")
	}
}

// Advance renders outside of the driven loop, ignoring whether roots are due.
// It renders the root stored under key, or every root if key is nil.
func (s *Scheduler[K]) Advance(timestamp time.Duration, runGlobalEffects bool, key *K, frame XRFrame) {
	s.guard.Lock()
	defer s.guard.Unlock()

	var store Store
	if key != nil {
		var ok bool
		if store, ok = s.roots.Get(*key); !ok {
			return
		}
	}

	if runGlobalEffects {
		s.effects.Flush(PhaseBefore, timestamp)
	}

	if store == nil {
		s.roots.Each(func(_ K, store Store) {
			s.renderer.RenderRoot(timestamp, store.Get(), nil)
		})
	} else {
		s.renderer.RenderRoot(timestamp, store.Get(), frame)
	}

	if runGlobalEffects {
		s.effects.Flush(PhaseAfter, timestamp)
	}
}

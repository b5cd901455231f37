package internal

import (
	"fmt"
	"time"
)

// FrameRenderer renders a single frame of a root.
type FrameRenderer struct {
	catcher *Catcher
}

func NewFrameRenderer(catcher *Catcher) *FrameRenderer {
	return &FrameRenderer{catcher}
}

// RenderRoot advances the root's clock, runs its subscribers, renders it and
// consumes one pending frame. It returns how many more frames the root wants.
func (r *FrameRenderer) RenderRoot(timestamp time.Duration, state State, frame XRFrame) int {
	var delta time.Duration
	if state.Frameloop == FrameloopNever {
		// the caller drives the clock
		delta = state.Clock.Step(timestamp)
	} else {
		delta = state.Clock.Delta()
	}

	state.Internal.Subscribers.Each(func(sub *Subscription) {
		snapshot := state
		if sub.Store != nil {
			snapshot = sub.Store.Get()
		}

		ctx := FrameContext{State: snapshot, Delta: delta, Frame: frame}
		r.catcher.Run(func() { sub.Callback(ctx) })
	})

	if state.Internal.Priority == 0 && state.GL != nil {
		r.catcher.Run(func() {
			if err := state.GL.Render(state.Scene, state.Camera); err != nil {
				r.catcher.Report(fmt.Errorf("render: %w", err))
			}
		})
	}

	state.Internal.Frames = max(0, state.Internal.Frames-1)

	if state.Frameloop == FrameloopAlways {
		return 1
	}
	return state.Internal.Frames
}

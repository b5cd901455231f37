package frameloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AnatoleLucet/frameloop/host"
)

func TestAdvance(t *testing.T) {
	t.Run("steps the clock of never roots", func(t *testing.T) {
		deltas := []time.Duration{}

		m := host.NewManual()
		s := New[string](m)

		gl := &recorder{}
		store := newRoot(FrameloopNever, gl)
		s.AddRoot("a", store)
		s.Subscribe("a", func(ctx FrameContext) { deltas = append(deltas, ctx.Delta) }, 0)

		s.AdvanceRoot(2*time.Second, "a")
		s.AdvanceRoot(3500*time.Millisecond, "a")

		assert.Equal(t, 2, gl.renders)
		assert.Equal(t, []time.Duration{2 * time.Second, 1500 * time.Millisecond}, deltas)
		assert.Equal(t, 3500*time.Millisecond, store.Get().Clock.Elapsed)
		assert.Equal(t, 2*time.Second, store.Get().Clock.Old)
	})

	t.Run("ignores whether roots are due", func(t *testing.T) {
		log := []string{}

		m := host.NewManual()
		s := New[string](m)

		s.AddRoot("demand", newRoot(FrameloopDemand, &recorder{name: "demand", log: &log}))
		s.AddRoot("never", newRoot(FrameloopNever, &recorder{name: "never", log: &log}))

		s.Advance(frame)

		assert.Equal(t, []string{"render demand", "render never"}, log)
	})

	t.Run("does not start the loop", func(t *testing.T) {
		m := host.NewManual()
		s := New[string](m)

		s.AddRoot("a", newRoot(FrameloopDemand, nil))

		s.Advance(frame)
		s.AdvanceRoot(frame, "a")

		assert.False(t, s.Running())
		assert.Equal(t, 0, m.Pending())
	})

	t.Run("does not stop the loop", func(t *testing.T) {
		m := host.NewManual()
		s := New[string](m)

		store := newRoot(FrameloopDemand, nil)
		s.AddRoot("a", store)

		s.Invalidate("a")
		s.AdvanceRoot(frame, "a")

		// the advance consumed the pending frame, the loop still owns its registration
		assert.Equal(t, 0, store.Get().Internal.Frames)
		assert.True(t, s.Running())
		assert.Equal(t, 1, m.Pending())

		m.Step(2 * frame)
		assert.False(t, s.Running())
	})

	t.Run("runs global effects unless told otherwise", func(t *testing.T) {
		log := []string{}

		m := host.NewManual()
		s := New[string](m)

		s.AddRoot("a", newRoot(FrameloopNever, &recorder{name: "a", log: &log}))
		s.AddEffect(func(time.Duration) { log = append(log, "before") })
		s.AddAfterEffect(func(time.Duration) { log = append(log, "after") })
		s.AddTail(func(time.Duration) { log = append(log, "tail") })

		s.AdvanceRoot(frame, "a")
		s.AdvanceRoot(2*frame, "a", WithoutGlobalEffects())

		assert.Equal(t, []string{"before", "render a", "after", "render a"}, log)
	})

	t.Run("hands the external frame to subscribers", func(t *testing.T) {
		var got XRFrame

		m := host.NewManual()
		s := New[string](m)

		s.AddRoot("a", newRoot(FrameloopNever, nil))
		s.Subscribe("a", func(ctx FrameContext) { got = ctx.Frame }, 0)

		s.AdvanceRoot(frame, "a", WithFrame("xr-frame"))

		assert.Equal(t, "xr-frame", got)
	})

	t.Run("ignores unknown roots", func(t *testing.T) {
		log := []string{}

		m := host.NewManual()
		s := New[string](m)

		s.AddRoot("a", newRoot(FrameloopNever, &recorder{name: "a", log: &log}))
		s.AddEffect(func(time.Duration) { log = append(log, "before") })

		s.AdvanceRoot(frame, "missing")

		assert.Empty(t, log)
	})
}

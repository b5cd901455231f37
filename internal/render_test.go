package internal

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingRenderer struct {
	renders int
}

func (r *countingRenderer) Render(scene, camera any) error {
	r.renders++
	return nil
}

func TestRenderRoot(t *testing.T) {
	renderer := NewFrameRenderer(NewCatcher(zerolog.Nop()))

	t.Run("always roots ask for another frame", func(t *testing.T) {
		gl := &countingRenderer{}
		store := NewRootStore(RootOptions{Frameloop: FrameloopAlways, GL: gl})

		assert.Equal(t, 1, renderer.RenderRoot(0, store.Get(), nil))
		assert.Equal(t, 1, gl.renders)
		assert.Equal(t, 0, store.Get().Internal.Frames)
	})

	t.Run("demand roots return their remaining frames", func(t *testing.T) {
		store := NewRootStore(RootOptions{Frameloop: FrameloopDemand})
		store.Get().Internal.Frames = 2

		assert.Equal(t, 1, renderer.RenderRoot(0, store.Get(), nil))
		assert.Equal(t, 0, renderer.RenderRoot(0, store.Get(), nil))
		assert.Equal(t, 0, renderer.RenderRoot(0, store.Get(), nil))
	})

	t.Run("content-only roots are not rendered", func(t *testing.T) {
		ran := false
		store := NewRootStore(RootOptions{Frameloop: FrameloopDemand})
		store.Subscribe(func(FrameContext) { ran = true }, 0)

		assert.NotPanics(t, func() { renderer.RenderRoot(0, store.Get(), nil) })
		assert.True(t, ran)
	})

	t.Run("never roots follow the timestamp", func(t *testing.T) {
		var delta time.Duration
		store := NewRootStore(RootOptions{Frameloop: FrameloopNever})
		store.Subscribe(func(ctx FrameContext) { delta = ctx.Delta }, 0)

		renderer.RenderRoot(time.Second, store.Get(), nil)
		assert.Equal(t, time.Second, delta)

		renderer.RenderRoot(1250*time.Millisecond, store.Get(), nil)
		assert.Equal(t, 250*time.Millisecond, delta)
	})
}

func TestEligible(t *testing.T) {
	store := NewRootStore(RootOptions{Frameloop: FrameloopDemand})
	assert.False(t, store.Get().Eligible())

	store.Get().Internal.Frames = 1
	assert.True(t, store.Get().Eligible())

	store.SetActive(false)
	assert.False(t, store.Get().Eligible())

	store.SetActive(true)
	store.SetFrameloop(FrameloopAlways)
	store.Get().Internal.Frames = 0
	assert.True(t, store.Get().Eligible())
}

func TestParseFrameloop(t *testing.T) {
	mode, err := ParseFrameloop(" Demand ")
	assert.NoError(t, err)
	assert.Equal(t, FrameloopDemand, mode)

	mode, err = ParseFrameloop("")
	assert.NoError(t, err)
	assert.Equal(t, FrameloopAlways, mode)

	_, err = ParseFrameloop("sometimes")
	assert.Error(t, err)
}

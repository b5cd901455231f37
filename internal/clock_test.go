package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time { return f.now }

func (f *fakeTime) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestClock(t *testing.T) {
	t.Run("auto starts on the first delta", func(t *testing.T) {
		ft := &fakeTime{now: time.Unix(100, 0)}
		c := NewClockWithSource(ft.Now)

		assert.False(t, c.Running())
		assert.Equal(t, time.Duration(0), c.Delta())
		assert.True(t, c.Running())

		ft.Advance(16 * time.Millisecond)
		assert.Equal(t, 16*time.Millisecond, c.Delta())

		ft.Advance(4 * time.Millisecond)
		assert.Equal(t, 4*time.Millisecond, c.Delta())
		assert.Equal(t, 20*time.Millisecond, c.Elapsed)
		assert.Equal(t, 20*time.Millisecond, c.Old)
	})

	t.Run("stopped clocks do not move", func(t *testing.T) {
		ft := &fakeTime{now: time.Unix(100, 0)}
		c := NewClockWithSource(ft.Now)

		c.Start()
		ft.Advance(time.Second)
		c.Stop()
		assert.Equal(t, time.Second, c.Elapsed)

		ft.Advance(time.Second)
		assert.Equal(t, time.Duration(0), c.Delta())
		assert.Equal(t, time.Second, c.Elapsed)
	})

	t.Run("steps to an external time", func(t *testing.T) {
		c := NewClockWithSource((&fakeTime{}).Now)

		assert.Equal(t, 2*time.Second, c.Step(2*time.Second))
		assert.Equal(t, 500*time.Millisecond, c.Step(2500*time.Millisecond))
		assert.Equal(t, 2*time.Second, c.Old)
		assert.Equal(t, 2500*time.Millisecond, c.Elapsed)
	})
}

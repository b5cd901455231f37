package internal

import "time"

// Clock tracks the time of one root.
// Elapsed and Old are both measured from the moment the clock was started.
type Clock struct {
	AutoStart bool

	// total time accumulated by the clock
	Elapsed time.Duration
	// time of the previous Delta call
	Old time.Duration

	start   time.Time
	running bool

	now func() time.Time
}

func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource creates a clock reading the time from now.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{
		AutoStart: true,
		now:       now,
	}
}

func (c *Clock) Start() {
	c.start = c.now()
	c.Old = 0
	c.Elapsed = 0
	c.running = true
}

func (c *Clock) Stop() {
	c.ElapsedTime()
	c.running = false
	c.AutoStart = false
}

func (c *Clock) Running() bool {
	return c.running
}

// ElapsedTime updates the clock and returns its total elapsed time.
func (c *Clock) ElapsedTime() time.Duration {
	c.Delta()
	return c.Elapsed
}

// Delta returns the time since the previous call.
// The first call of an auto-started clock starts it and returns 0.
func (c *Clock) Delta() time.Duration {
	if c.AutoStart && !c.running {
		c.Start()
		return 0
	}
	if !c.running {
		return 0
	}

	now := c.now().Sub(c.start)
	diff := now - c.Old
	c.Old = now
	c.Elapsed += diff

	return diff
}

// Step moves the clock to the externally driven time ts, bypassing its own accumulation.
func (c *Clock) Step(ts time.Duration) time.Duration {
	delta := ts - c.Elapsed
	c.Old = c.Elapsed
	c.Elapsed = ts
	return delta
}

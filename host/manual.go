// Package host provides the frame-scheduling primitives a scheduler runs on.
package host

import "time"

// Manual is a host whose frames are stepped explicitly.
// It is what tests and headless tools drive a scheduler with.
type Manual struct {
	queue frameQueue
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) RequestFrame(cb FrameCallback) uint64 {
	return m.queue.Enqueue(cb)
}

func (m *Manual) CancelFrame(id uint64) {
	m.queue.Cancel(id)
}

// Pending returns the number of callbacks waiting for the next frame.
func (m *Manual) Pending() int {
	return m.queue.Len()
}

// Step runs one frame at timestamp and returns how many callbacks ran.
func (m *Manual) Step(timestamp time.Duration) int {
	return m.queue.RunFrame(timestamp, invoke)
}

package host

import (
	"sync"
	"time"
)

type FrameCallback = func(timestamp time.Duration)

type request struct {
	id       uint64
	cb       FrameCallback
	canceled bool
}

// frameQueue holds the callbacks requested for the next frame.
type frameQueue struct {
	mu sync.Mutex

	next     uint64
	requests []*request

	// requests of the frame currently running
	inflight []*request
}

func (q *frameQueue) Enqueue(cb FrameCallback) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	// ids start at 1 so that 0 never names a live request
	q.next++
	q.requests = append(q.requests, &request{id: q.next, cb: cb})

	return q.next
}

func (q *frameQueue) Cancel(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, r := range q.requests {
		if r.id == id {
			q.requests = append(q.requests[:i], q.requests[i+1:]...)
			return
		}
	}

	// a callback of the running frame that has not run yet
	for _, r := range q.inflight {
		if r.id == id {
			r.canceled = true
			return
		}
	}
}

func (q *frameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.requests)
}

// RunFrame runs every request pending when it is called and returns how many ran.
// Requests enqueued while they run belong to the next frame.
func (q *frameQueue) RunFrame(timestamp time.Duration, run func(FrameCallback, time.Duration)) int {
	q.mu.Lock()
	batch := q.requests
	q.requests = nil
	q.inflight = batch
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.inflight = nil
		q.mu.Unlock()
	}()

	ran := 0
	for _, r := range batch {
		q.mu.Lock()
		canceled := r.canceled
		r.canceled = true
		q.mu.Unlock()

		if canceled {
			continue
		}

		run(r.cb, timestamp)
		ran++
	}

	return ran
}

func invoke(cb FrameCallback, timestamp time.Duration) {
	cb(timestamp)
}

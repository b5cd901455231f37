//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// Guard serialises access to a scheduler across goroutines.
// The goroutine holding it may lock it again, which lets frame callbacks
// call back into the scheduler that is running them.
type Guard struct {
	mu sync.Mutex

	// goroutine currently holding mu, guarded by state
	owner int64
	depth int

	state sync.Mutex
}

func (g *Guard) Lock() {
	gid := goid.Get()

	g.state.Lock()
	if g.owner == gid {
		g.depth++
		g.state.Unlock()
		return
	}
	g.state.Unlock()

	g.mu.Lock()

	g.state.Lock()
	g.owner = gid
	g.depth = 1
	g.state.Unlock()
}

func (g *Guard) Unlock() {
	g.state.Lock()
	g.depth--
	if g.depth > 0 {
		g.state.Unlock()
		return
	}
	g.owner = 0
	g.state.Unlock()

	g.mu.Unlock()
}

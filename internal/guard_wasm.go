//go:build wasm

package internal

// Guard only tracks nesting on wasm, where callbacks all run on the js event loop.
type Guard struct {
	depth int
}

func (g *Guard) Lock() {
	g.depth++
}

func (g *Guard) Unlock() {
	g.depth--
}

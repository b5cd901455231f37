//go:build js && wasm

package host

import (
	"sync"
	"syscall/js"
	"time"
)

// Browser schedules frames with the window's requestAnimationFrame.
type Browser struct {
	mu sync.Mutex

	window js.Value
	funcs  map[uint64]js.Func
}

func NewBrowser() *Browser {
	return &Browser{
		window: js.Global(),
		funcs:  make(map[uint64]js.Func),
	}
}

func (b *Browser) RequestFrame(cb FrameCallback) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	var id uint64
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		b.release(id)

		// requestAnimationFrame hands over a DOMHighResTimeStamp in milliseconds
		var ms float64
		if len(args) > 0 {
			ms = args[0].Float()
		}
		cb(time.Duration(ms * float64(time.Millisecond)))

		return nil
	})

	id = uint64(b.window.Call("requestAnimationFrame", fn).Int())
	b.funcs[id] = fn

	return id
}

func (b *Browser) CancelFrame(id uint64) {
	if b.release(id) {
		b.window.Call("cancelAnimationFrame", float64(id))
	}
}

func (b *Browser) release(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	fn, ok := b.funcs[id]
	if !ok {
		return false
	}
	delete(b.funcs, id)
	fn.Release()

	return true
}

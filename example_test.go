package frameloop_test

import (
	"fmt"
	"time"

	"github.com/AnatoleLucet/frameloop"
	"github.com/AnatoleLucet/frameloop/host"
)

type printer struct{}

func (printer) Render(scene, camera any) error {
	fmt.Println("render")
	return nil
}

func ExampleScheduler_Invalidate() {
	m := host.NewManual()
	loop := frameloop.New[string](m)

	loop.AddRoot("main", frameloop.NewRootStore(frameloop.RootOptions{
		Frameloop: frameloop.FrameloopDemand,
		GL:        printer{},
	}))
	loop.AddTail(func(time.Duration) { fmt.Println("idle") })

	loop.InvalidateFrames(2, "main")
	for i := 1; m.Pending() > 0; i++ {
		m.Step(time.Duration(i) * 16 * time.Millisecond)
	}

	fmt.Println(loop.Running())

	// Output:
	// render
	// render
	// idle
	// false
}

func ExampleScheduler_AdvanceRoot() {
	m := host.NewManual()
	loop := frameloop.New[string](m)

	store := frameloop.NewRootStore(frameloop.RootOptions{
		Frameloop: frameloop.FrameloopNever,
		GL:        printer{},
		Clock:     frameloop.NewClock(),
	})
	loop.AddRoot("main", store)
	loop.Subscribe("main", func(frame frameloop.FrameContext) {
		fmt.Println("delta", frame.Delta)
	}, 0)

	loop.AdvanceRoot(10*time.Millisecond, "main")
	loop.AdvanceRoot(25*time.Millisecond, "main")

	fmt.Println(m.Pending())

	// Output:
	// delta 10ms
	// render
	// delta 15ms
	// render
	// 0
}

package internal

import (
	"fmt"
	"time"
)

type Phase int

const (
	// PhaseBefore runs at the start of every frame, before any root renders.
	PhaseBefore Phase = iota
	// PhaseAfter runs once every root of the frame has rendered.
	PhaseAfter
	// PhaseTail runs once when the loop goes idle.
	PhaseTail
)

func (p Phase) String() string {
	switch p {
	case PhaseBefore:
		return "before"
	case PhaseAfter:
		return "after"
	case PhaseTail:
		return "tail"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type EffectCallback func(timestamp time.Duration)

type effectEntry struct {
	callback EffectCallback
}

// Effects holds the global effects of a scheduler, one ordered registry per phase.
type Effects struct {
	phases  map[Phase]*Registry[*effectEntry]
	catcher *Catcher
}

func NewEffects(catcher *Catcher) *Effects {
	phases := make(map[Phase]*Registry[*effectEntry])
	phases[PhaseBefore] = NewRegistry[*effectEntry]()
	phases[PhaseAfter] = NewRegistry[*effectEntry]()
	phases[PhaseTail] = NewRegistry[*effectEntry]()

	return &Effects{phases, catcher}
}

// Register adds fn to the given phase and returns its unsubscribe function.
func (e *Effects) Register(phase Phase, fn EffectCallback) func() {
	effects, ok := e.phases[phase]
	if !ok {
		panic(fmt.Sprintf("frameloop: unknown effect %s", phase))
	}

	// each registration gets its own entry, even for the same callback
	return effects.Add(&effectEntry{callback: fn})
}

// Flush runs every effect of the phase in registration order.
func (e *Effects) Flush(phase Phase, timestamp time.Duration) {
	effects, ok := e.phases[phase]
	if !ok || effects.Len() == 0 {
		return
	}

	effects.Each(func(entry *effectEntry) {
		e.catcher.Run(func() { entry.callback(timestamp) })
	})
}

// Len returns the number of effects registered on the phase.
func (e *Effects) Len(phase Phase) int {
	if effects, ok := e.phases[phase]; ok {
		return effects.Len()
	}
	return 0
}

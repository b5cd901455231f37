package internal

import (
	"fmt"
	"strings"
	"time"
)

// MaxFrames caps the number of pending frames of a root, one second at 60Hz.
const MaxFrames = 60

type Frameloop string

const (
	// FrameloopAlways renders on every driven frame.
	FrameloopAlways Frameloop = "always"
	// FrameloopDemand renders only while frames are pending.
	FrameloopDemand Frameloop = "demand"
	// FrameloopNever renders only through a manual advance.
	FrameloopNever Frameloop = "never"
)

func ParseFrameloop(s string) (Frameloop, error) {
	switch mode := Frameloop(strings.ToLower(strings.TrimSpace(s))); mode {
	case FrameloopAlways, FrameloopDemand, FrameloopNever:
		return mode, nil
	case "":
		return FrameloopAlways, nil
	default:
		return "", fmt.Errorf("unknown frameloop %q", s)
	}
}

// Renderer draws a scene through a camera.
type Renderer interface {
	Render(scene, camera any) error
}

// Presenter is implemented by renderers that can hand the surface over to an
// external presentation session (XR). While presenting, the scheduler does not drive the root.
type Presenter interface {
	IsPresenting() bool
}

func isPresenting(gl Renderer) bool {
	if p, ok := gl.(Presenter); ok {
		return p.IsPresenting()
	}
	return false
}

// XRFrame is an opaque frame handed over by an external presentation session.
type XRFrame any

type Size struct {
	Width  int
	Height int
}

// FrameContext is what a subscriber receives on each rendered frame.
type FrameContext struct {
	State

	Delta time.Duration
	Frame XRFrame
}

type FrameCallback func(ctx FrameContext)

type Subscription struct {
	Callback FrameCallback
	Priority int

	// store of the root the subscription belongs to
	Store Store
}

type Internal struct {
	// false once the root has been torn down
	Active bool

	// pending frames, in [0, MaxFrames]
	Frames int

	// number of subscribers that took over rendering
	Priority int

	Subscribers *Registry[*Subscription]

	owner *Owner
}

func NewInternal() *Internal {
	return &Internal{
		Active:      true,
		Subscribers: NewRegistry[*Subscription](),
		owner:       NewOwner(),
	}
}

// Dispose tears the root down: it is deactivated and every subscription is removed.
func (in *Internal) Dispose() {
	in.Active = false
	in.owner.Dispose()
}

// Subscribe registers cb to run on every rendered frame of the root.
// A positive priority takes over rendering from the scheduler while subscribed.
func (in *Internal) Subscribe(store Store, cb FrameCallback, priority int) func() {
	if priority > 0 {
		in.Priority++
	}

	remove := in.Subscribers.Insert(&Subscription{Callback: cb, Priority: priority, Store: store}, priority)

	removed := false
	var forget func()
	unsubscribe := func() {
		if removed {
			return
		}
		removed = true

		if priority > 0 {
			in.Priority--
		}
		remove()
		if forget != nil {
			forget()
		}
	}
	forget = in.owner.OnCleanup(unsubscribe)

	return unsubscribe
}

// State is a snapshot of a root.
// Clock and Internal are shared with the store, everything else is a copy.
type State struct {
	Clock     *Clock
	Frameloop Frameloop
	Internal  *Internal

	// nil for content-only roots
	GL Renderer

	Camera any
	Scene  any
	Size   Size
}

// Eligible reports whether a driven frame should render the root.
func (s State) Eligible() bool {
	return s.Internal.Active &&
		(s.Frameloop == FrameloopAlways || s.Internal.Frames > 0) &&
		!isPresenting(s.GL)
}

type Store interface {
	Get() State
}

type RootOptions struct {
	Frameloop Frameloop
	GL        Renderer
	Camera    any
	Scene     any
	Size      Size
	Clock     *Clock
}

// RootStore is the default Store of a root.
type RootStore struct {
	state State
}

func NewRootStore(opts RootOptions) *RootStore {
	if opts.Frameloop == "" {
		opts.Frameloop = FrameloopAlways
	}
	if opts.Clock == nil {
		opts.Clock = NewClock()
	}

	return &RootStore{
		state: State{
			Clock:     opts.Clock,
			Frameloop: opts.Frameloop,
			Internal:  NewInternal(),
			GL:        opts.GL,
			Camera:    opts.Camera,
			Scene:     opts.Scene,
			Size:      opts.Size,
		},
	}
}

func (s *RootStore) Get() State {
	return s.state
}

func (s *RootStore) SetFrameloop(mode Frameloop) {
	s.state.Frameloop = mode
}

func (s *RootStore) SetActive(active bool) {
	s.state.Internal.Active = active
}

// Dispose tears the root down. The scheduler skips it from then on.
func (s *RootStore) Dispose() {
	s.state.Internal.Dispose()
}

func (s *RootStore) SetCamera(camera any) {
	s.state.Camera = camera
}

func (s *RootStore) SetSize(size Size) {
	s.state.Size = size
}

// Subscribe registers cb on the root owned by this store.
func (s *RootStore) Subscribe(cb FrameCallback, priority int) func() {
	return s.state.Internal.Subscribe(s, cb, priority)
}

package internal

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var ErrPanic = errors.New("frameloop: callback panicked")

// PanicError wraps a value recovered from a panicking callback.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPanic, e.Value)
}

func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrPanic, err}
	}
	return []error{ErrPanic}
}

// Catcher is the error channel of a scheduler.
// Failures of user callbacks are reported here instead of unwinding the frame.
type Catcher struct {
	// error handlers
	catchers []func(error)

	log zerolog.Logger
}

func NewCatcher(log zerolog.Logger) *Catcher {
	return &Catcher{
		catchers: make([]func(error), 0),
		log:      log,
	}
}

func (c *Catcher) OnError(fn func(error)) {
	c.catchers = append(c.catchers, fn)
}

// Run calls fn, reporting a panic as a *PanicError.
func (c *Catcher) Run(fn func()) {
	defer c.recover()
	fn()
}

func (c *Catcher) recover() {
	if r := recover(); r != nil {
		c.Report(&PanicError{Value: r})
	}
}

// Report forwards err to every handler, or logs it if there is none.
func (c *Catcher) Report(err error) {
	if err == nil {
		return
	}

	if len(c.catchers) == 0 {
		c.log.Error().Err(err).Msg("frame callback failed")
		return
	}

	for _, catcher := range c.catchers {
		catcher(err)
	}
}

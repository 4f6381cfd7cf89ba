// Package trap implements the single recovery boundary of a deparse call.
//
// Collaborators abort a call by calling Raise, which records the fault in
// the per-call Channel and unwinds the stack. Attempt is the only place
// that recovers; it converts the unwinding back into an ordinary return
// value. Panics that did not originate from Raise are not faults and keep
// propagating.
package trap

import (
	stderrors "errors"

	"github.com/wippyai/deparse/errors"
)

// abort is the panic payload used by Raise. It is unexported so that no
// foreign panic can be mistaken for a fault.
type abort struct {
	err *errors.Error
}

// Channel is the diagnostic state of one call: the context frames that are
// currently open and the most recent fault. It is not safe for concurrent
// use; each call owns its own Channel.
type Channel struct {
	frames []string
	last   *errors.Error
}

// Push opens a context frame.
func (c *Channel) Push(frame string) {
	c.frames = append(c.frames, frame)
}

// Pop closes the innermost context frame.
func (c *Channel) Pop() {
	if n := len(c.frames); n > 0 {
		c.frames[n-1] = ""
		c.frames = c.frames[:n-1]
	}
}

// Depth returns the number of open context frames.
func (c *Channel) Depth() int {
	return len(c.frames)
}

// Frames returns the open context frames, outermost first.
func (c *Channel) Frames() []string {
	return c.frames
}

// Last returns the most recently raised fault, or nil.
func (c *Channel) Last() *errors.Error {
	return c.last
}

// Flush discards all diagnostic state.
func (c *Channel) Flush() {
	clear(c.frames)
	c.frames = c.frames[:0]
	c.last = nil
}

// Raise records err in c and aborts the current call. The open context
// frames are attached to err unless it already carries its own. A nil err
// is raised as an internal render fault. Raise never returns.
func Raise(c *Channel, err *errors.Error) {
	if err == nil {
		err = errors.Internal(errors.PhaseRender, nil)
		err.File, err.Func, err.Line = errors.Locate(1)
	}
	if c != nil {
		if err.Context == nil && len(c.frames) > 0 {
			err.Context = append([]string(nil), c.frames...)
		}
		c.last = err
	}
	panic(abort{err: err})
}

// Fail raises err, converting foreign error values into an internal fault
// of the given phase.
func Fail(c *Channel, phase errors.Phase, err error) {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		e = errors.Internal(phase, err)
		e.File, e.Func, e.Line = errors.Locate(1)
	}
	Raise(c, e)
}

// Attempt runs body and reports either its result or the fault it raised.
// No fault propagates past Attempt. Any other panic is re-raised.
func Attempt[T any](body func() T) (out T, fault *errors.Error) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			var zero T
			out, fault = zero, a.err
		}
	}()
	return body(), nil
}

package reactive

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrTrackerUnderflow is raised when the tracker stack is popped while empty.
	ErrTrackerUnderflow = errors.New("reactive: tracker stack underflow")
	// ErrTrackerMismatch is raised when a frame is popped by someone who did not push it.
	ErrTrackerMismatch = errors.New("reactive: tracker stack mismatch")
	// ErrFlushLimit is raised when a flush keeps scheduling work, usually an
	// effect that writes a signal it also reads.
	ErrFlushLimit = errors.New("reactive: flush did not settle")
	// ErrDisposed is returned when using a signal or scope after disposal.
	ErrDisposed = errors.New("reactive: use after dispose")
	// ErrNoOwner is returned by operations that need an owning scope.
	ErrNoOwner = errors.New("reactive: no owner")
)

// errorsKey is where OnError handlers live in an owner's values.
var errorsKey = xxhash.Sum64String("maple.reactive.errors")

// PanicError wraps a value recovered from a panicking computation.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("reactive: computation panicked: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func isInvariant(err error) bool {
	return errors.Is(err, ErrTrackerUnderflow) ||
		errors.Is(err, ErrTrackerMismatch) ||
		errors.Is(err, ErrFlushLimit)
}

// OnError registers fn on the current owner. A panic raised by a computation
// owned by it, or by any descendant, is handed to the nearest handler instead
// of unwinding the caller.
func OnError(rt *Runtime, fn func(err error)) error {
	o := rt.top().owner
	if o == nil {
		rt.logger.Warn("OnError called without an owner, handler ignored")
		return ErrNoOwner
	}
	handlers, _ := o.value(errorsKey).([]func(error))
	o.setValue(errorsKey, append(handlers, fn))
	return nil
}

// guard runs fn and routes a panic to the OnError handlers visible from o.
// Invariant violations are never swallowed.
func (rt *Runtime) guard(o *owner, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if ok && isInvariant(err) {
			panic(r)
		}
		perr := &PanicError{Value: r}
		if !o.handle(perr) {
			panic(r)
		}
	}()
	fn()
}

func (o *owner) handle(err error) bool {
	for cur := o; cur != nil; cur = cur.parent {
		handlers, _ := cur.values[errorsKey].([]func(error))
		if len(handlers) == 0 {
			continue
		}
		for _, h := range handlers {
			h(err)
		}
		return true
	}
	return false
}

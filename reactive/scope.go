package reactive

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Scope is a lifetime boundary that is not re-executed. Everything created
// inside Run belongs to it and is torn down, depth first, by Dispose.
type Scope struct {
	owner
	ulid ulid.ULID
}

func (rt *Runtime) newScope(attach bool) *Scope {
	s := &Scope{
		ulid: ulid.MustNew(ulid.Timestamp(time.Now()), rt.entropy),
	}
	s.owner.init(rt, rt.top().owner, attach)
	return s
}

// CreateRoot runs fn inside a new detached scope. The root is not disposed
// along with the current owner, the caller disposes it, either through the
// returned scope or the dispose function handed to fn. Context lookups and
// OnError handlers still reach the owner that was current at creation.
func CreateRoot(rt *Runtime, fn func(dispose func())) *Scope {
	s := rt.newScope(false)
	s.Run(func() {
		fn(s.Dispose)
	})
	return s
}

// CreateScope runs fn inside a new scope owned by the current owner, so it is
// disposed with it. It can also be disposed on its own.
func CreateScope(rt *Runtime, fn func()) *Scope {
	s := rt.newScope(true)
	s.Run(fn)
	return s
}

// ID returns the scope's identifier, ordered by creation time.
func (s *Scope) ID() ulid.ULID {
	return s.ulid
}

// Run executes fn with the scope as owner and no listener. Signals, effects
// and cleanups created by fn belong to the scope.
func (s *Scope) Run(fn func()) error {
	if s.disposed {
		return ErrDisposed
	}
	rt := s.rt
	rt.guard(&s.owner, func() {
		rt.with(frame{owner: &s.owner}, fn)
	})
	rt.maybeFlush()
	return nil
}

// Dispose tears down everything the scope owns. Writes made by cleanups are
// flushed once disposal is complete. Disposing twice is a no-op.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	Batch(s.rt, s.owner.dispose)
}

// Disposed reports whether Dispose has run.
func (s *Scope) Disposed() bool {
	return s.disposed
}

package reactive

// Reader is anything whose value can be read reactively.
type Reader[T any] interface {
	// Get returns the value and, inside a computation, subscribes it.
	Get() T
	// Peek returns the value without subscribing.
	Peek() T
}

// Signal is a reactive cell. Its value only changes through Set or Update.
type Signal[T any] struct {
	rt    *Runtime
	src   *source
	value T
}

// CreateSignal allocates a signal owned by the current owner, if any.
func CreateSignal[T any](rt *Runtime, value T) *Signal[T] {
	return &Signal[T]{
		rt:    rt,
		src:   rt.newSource(),
		value: value,
	}
}

// Get returns the current value, subscribing the running computation.
// After disposal Get keeps returning the last value but no longer subscribes.
func (s *Signal[T]) Get() T {
	s.src.read()
	return s.value
}

// TryGet is Get that reports ErrDisposed once the owning scope is gone.
func (s *Signal[T]) TryGet() (T, error) {
	v := s.Get()
	if s.src.disposed {
		return v, ErrDisposed
	}
	return v, nil
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	if c := s.src.memo; c != nil && c.dirty && !c.running && !c.disposed {
		s.rt.untracked(func() { s.src.read() })
	}
	return s.value
}

// Set replaces the value and notifies every subscriber, even when the new
// value equals the old one. Outside a batch all subscribers have re-run by
// the time Set returns, unless Set itself was called from a running
// computation, in which case they run once it settles.
func (s *Signal[T]) Set(value T) {
	s.value = value
	s.rt.instr.SignalWritten()
	s.src.notify()
}

// Update sets the value to fn applied to the current value, read untracked.
func (s *Signal[T]) Update(fn func(prev T) T) {
	s.Set(fn(s.value))
}

// Disposed reports whether the signal's owner has been disposed.
func (s *Signal[T]) Disposed() bool {
	return s.src.disposed
}

// ReadonlySignal exposes a signal without Set, it is what memos return.
type ReadonlySignal[T any] struct {
	sig *Signal[T]
}

// Get returns the current value, subscribing the running computation.
func (r *ReadonlySignal[T]) Get() T {
	return r.sig.Get()
}

// Peek returns the current value without subscribing.
func (r *ReadonlySignal[T]) Peek() T {
	return r.sig.Peek()
}

// Disposed reports whether the underlying computation has been disposed.
func (r *ReadonlySignal[T]) Disposed() bool {
	return r.sig.src.disposed
}

package reactive

// CreateMemo derives a read-only signal from fn. The memo recomputes eagerly
// when a dependency is set, and a read that lands while it is still queued
// recomputes it first, so Get never observes a stale result.
//
// A memo notifies its subscribers on every recomputation. Use CreateSelector
// to only notify on change.
func CreateMemo[T any](rt *Runtime, fn func() T) *ReadonlySignal[T] {
	return createMemo(rt, fn, nil)
}

// CreateSelector is CreateMemo with an equality check: subscribers are only
// notified when equal reports the new value differs from the previous one.
func CreateSelector[T any](rt *Runtime, fn func() T, equal func(a, b T) bool) *ReadonlySignal[T] {
	return createMemo(rt, fn, equal)
}

// Equal is an equality function for comparable types.
func Equal[T comparable](a, b T) bool {
	return a == b
}

func createMemo[T any](rt *Runtime, fn func() T, equal func(a, b T) bool) *ReadonlySignal[T] {
	// the backing source belongs to the caller's owner, not to the memo,
	// otherwise every recomputation would dispose it
	sig := &Signal[T]{rt: rt, src: rt.newSource()}

	initialized := false
	c := rt.newComputation(func() {
		// set before fn so a first run that panics still counts
		first := !initialized
		initialized = true
		next := fn()
		if first {
			sig.value = next
			return
		}
		if equal != nil && equal(sig.value, next) {
			return
		}
		sig.value = next
		sig.src.notify()
	})
	sig.src.memo = c

	rt.runComputation(c)
	rt.maybeFlush()
	return &ReadonlySignal[T]{sig: sig}
}

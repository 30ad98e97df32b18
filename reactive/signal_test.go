package reactive_test

import (
	"testing"

	"github.com/delaneyj/maple/internal/testutil"
	"github.com/delaneyj/maple/reactive"
	"github.com/stretchr/testify/assert"
)

func newRuntime(t *testing.T, opts ...reactive.Option) *reactive.Runtime {
	t.Helper()
	opts = append([]reactive.Option{reactive.WithLogger(testutil.NewTestLogger(t))}, opts...)
	return reactive.NewRuntime(opts...)
}

func TestSignalImmediateLog(t *testing.T) {
	rt := newRuntime(t)
	s := reactive.CreateSignal(rt, 0)

	var log []int
	reactive.CreateEffect(rt, func() {
		log = append(log, s.Get())
	})

	s.Set(1)
	s.Set(2)
	assert.Equal(t, []int{0, 1, 2}, log)
	assert.Equal(t, 0, rt.Depth())
	assert.Equal(t, 0, rt.Pending())
}

func TestSignalSetSameValueStillNotifies(t *testing.T) {
	rt := newRuntime(t)
	s := reactive.CreateSignal(rt, "a")

	runs := 0
	reactive.CreateEffect(rt, func() {
		s.Get()
		runs++
	})

	s.Set("a")
	s.Set("a")
	assert.Equal(t, 3, runs)
}

func TestSignalReadOutsideComputation(t *testing.T) {
	rt := newRuntime(t)
	s := reactive.CreateSignal(rt, 42)

	assert.False(t, rt.Tracking())
	assert.Equal(t, 42, s.Get())
	assert.Equal(t, 42, s.Peek())

	s.Update(func(prev int) int { return prev + 1 })
	assert.Equal(t, 43, s.Get())
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	rt := newRuntime(t)
	a := reactive.CreateSignal(rt, 1)
	b := reactive.CreateSignal(rt, 1)

	runs := 0
	reactive.CreateEffect(rt, func() {
		a.Get()
		b.Peek()
		reactive.Untrack(rt, func() int {
			return b.Get()
		})
		runs++
	})

	b.Set(2)
	assert.Equal(t, 1, runs)
	a.Set(2)
	assert.Equal(t, 2, runs)
}

/*
a -> E1 (writes b)
b -> E2
*/
func TestSignalSetInsideEffectSettlesBeforeReturn(t *testing.T) {
	rt := newRuntime(t)
	a := reactive.CreateSignal(rt, 0)
	b := reactive.CreateSignal(rt, 0)

	reactive.CreateEffect(rt, func() {
		b.Set(a.Get() * 2)
	})

	var seen []int
	reactive.CreateEffect(rt, func() {
		seen = append(seen, b.Get())
	})

	a.Set(1)
	assert.Equal(t, []int{0, 2}, seen)
	assert.Equal(t, 2, b.Peek())
}

func TestSignalEffectsRunInCreationOrder(t *testing.T) {
	rt := newRuntime(t)
	s := reactive.CreateSignal(rt, 0)

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		reactive.CreateEffect(rt, func() {
			if s.Get() > 0 {
				order = append(order, name)
			}
		})
	}

	s.Set(1)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

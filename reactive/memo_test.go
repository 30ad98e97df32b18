package reactive_test

import (
	"testing"

	"github.com/delaneyj/maple/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoSum(t *testing.T) {
	rt := newRuntime(t)
	a := reactive.CreateSignal(rt, 1)
	b := reactive.CreateSignal(rt, 2)

	runs := 0
	m := reactive.CreateMemo(rt, func() int {
		runs++
		return a.Get() + b.Get()
	})
	assert.Equal(t, 3, m.Get())
	assert.Equal(t, 1, runs)

	a.Set(10)
	assert.Equal(t, 12, m.Get())
	b.Set(20)
	assert.Equal(t, 30, m.Get())
	assert.Equal(t, 3, runs)

	reactive.Batch(rt, func() {
		a.Set(100)
		b.Set(200)
	})
	assert.Equal(t, 300, m.Get())
	assert.Equal(t, 4, runs)
}

func TestMemoTwoSignals(t *testing.T) {
	rt := newRuntime(t)
	a := reactive.CreateSignal(rt, 7)
	b := reactive.CreateSignal(rt, 1)

	callCount := 0
	c := reactive.CreateMemo(rt, func() int {
		callCount++
		return a.Get() * b.Get()
	})

	a.Set(2)
	assert.Equal(t, 2, c.Get())

	b.Set(3)
	assert.Equal(t, 6, c.Get())

	assert.Equal(t, 3, callCount)
	c.Get()
	assert.Equal(t, 3, callCount)
}

func TestMemoDependentMemo(t *testing.T) {
	rt := newRuntime(t)
	a := reactive.CreateSignal(rt, 7)
	b := reactive.CreateSignal(rt, 1)

	callCount1 := 0
	c := reactive.CreateMemo(rt, func() int {
		callCount1++
		return a.Get() * b.Get()
	})

	callCount2 := 0
	d := reactive.CreateMemo(rt, func() int {
		callCount2++
		return c.Get() + 1
	})

	assert.Equal(t, 8, d.Get())
	assert.Equal(t, 1, callCount1)
	assert.Equal(t, 1, callCount2)

	a.Set(3)
	assert.Equal(t, 4, d.Get())
	assert.Equal(t, 2, callCount1)
	assert.Equal(t, 2, callCount2)
}

func TestMemoDropAbaUpdates(t *testing.T) {
	rt := newRuntime(t)

	//     A
	//   / |
	//  B  |
	//   \ |
	//     C
	//     |
	//     D
	a := reactive.CreateSignal(rt, 2)
	b := reactive.CreateMemo(rt, func() int {
		return a.Get() - 1
	})
	c := reactive.CreateMemo(rt, func() int {
		return a.Get() + b.Get()
	})
	callCount := 0
	d := reactive.CreateMemo(rt, func() int {
		callCount++
		return c.Get()
	})

	assert.Equal(t, 3, d.Get())
	assert.Equal(t, 1, callCount)

	a.Set(4)
	assert.Equal(t, 7, d.Get())
	assert.Equal(t, 2, callCount)
}

func TestMemoDiamondUpdatesOnce(t *testing.T) {
	rt := newRuntime(t)

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	a := reactive.CreateSignal(rt, "a")
	b := reactive.CreateMemo(rt, func() string {
		return a.Get()
	})
	c := reactive.CreateMemo(rt, func() string {
		return a.Get()
	})

	callCount := 0
	d := reactive.CreateMemo(rt, func() string {
		callCount++
		return b.Get() + " " + c.Get()
	})

	assert.Equal(t, "a a", d.Get())
	assert.Equal(t, 1, callCount)
	callCount = 0

	a.Set("aa")
	assert.Equal(t, "aa aa", d.Get())
	assert.Equal(t, 1, callCount)
}

func TestMemoJaggedDiamondTails(t *testing.T) {
	rt := newRuntime(t)

	//     A
	//   /   \
	//  B     C
	//  |     |
	//  |     D
	//   \   /
	//     E
	//   /   \
	//  F     G
	a := reactive.CreateSignal(rt, "a")
	b := reactive.CreateMemo(rt, func() string {
		return a.Get()
	})
	c := reactive.CreateMemo(rt, func() string {
		return a.Get()
	})
	d := reactive.CreateMemo(rt, func() string {
		return c.Get()
	})

	var order []string
	eCallCount := 0
	e := reactive.CreateMemo(rt, func() string {
		v := b.Get() + " " + d.Get()
		eCallCount++
		order = append(order, "e")
		return v
	})
	fCallCount := 0
	f := reactive.CreateMemo(rt, func() string {
		v := e.Get()
		fCallCount++
		order = append(order, "f")
		return v
	})
	gCallCount := 0
	g := reactive.CreateMemo(rt, func() string {
		v := e.Get()
		gCallCount++
		order = append(order, "g")
		return v
	})

	require.Equal(t, "a a", f.Get())
	require.Equal(t, "a a", g.Get())
	eCallCount, fCallCount, gCallCount = 0, 0, 0
	order = nil

	for _, v := range []string{"b", "c"} {
		a.Set(v)
		require.Equal(t, v+" "+v, e.Get())
		require.Equal(t, v+" "+v, f.Get())
		require.Equal(t, v+" "+v, g.Get())
		require.Equal(t, 1, eCallCount)
		require.Equal(t, 1, fCallCount)
		require.Equal(t, 1, gCallCount)
		// top to bottom, left to right
		require.Equal(t, []string{"e", "f", "g"}, order)
		eCallCount, fCallCount, gCallCount = 0, 0, 0
		order = nil
	}
}

func TestSelectorBailsOutIfResultIsTheSame(t *testing.T) {
	rt := newRuntime(t)

	// A -> *B -> C
	a := reactive.CreateSignal(rt, "a")
	b := reactive.CreateSelector(rt, func() string {
		a.Get()
		return "foo"
	}, reactive.Equal[string])

	callCount := 0
	c := reactive.CreateMemo(rt, func() string {
		callCount++
		return b.Get()
	})

	assert.Equal(t, "foo", c.Get())
	assert.Equal(t, 1, callCount)

	a.Set("aa")
	assert.Equal(t, "foo", c.Get())
	assert.Equal(t, 1, callCount)
}

func TestSelectorSubsUpdateEvenIfOneDepUnmarksIt(t *testing.T) {
	rt := newRuntime(t)

	//     A
	//   /   \
	//  B     *C <- returns same value every time
	//   \   /
	//     D
	a := reactive.CreateSignal(rt, "a")
	b := reactive.CreateMemo(rt, func() string {
		return a.Get()
	})
	c := reactive.CreateSelector(rt, func() string {
		a.Get()
		return "c"
	}, reactive.Equal[string])
	dCallCount := 0
	d := reactive.CreateMemo(rt, func() string {
		dCallCount++
		return b.Get() + " " + c.Get()
	})

	assert.Equal(t, "a c", d.Get())
	assert.Equal(t, 1, dCallCount)

	a.Set("aa")
	assert.Equal(t, "aa c", d.Get())
	assert.Equal(t, 2, dCallCount)
}

func TestSelectorSubsSkipIfAllDepsUnmarkIt(t *testing.T) {
	rt := newRuntime(t)

	//     A
	//   /   \
	// *B     *C
	//   \   /
	//     D
	a := reactive.CreateSignal(rt, "a")
	b := reactive.CreateSelector(rt, func() string {
		a.Get()
		return "b"
	}, reactive.Equal[string])
	c := reactive.CreateSelector(rt, func() string {
		a.Get()
		return "c"
	}, reactive.Equal[string])
	dCallCount := 0
	d := reactive.CreateMemo(rt, func() string {
		dCallCount++
		return b.Get() + " " + c.Get()
	})

	assert.Equal(t, "b c", d.Get())
	assert.Equal(t, 1, dCallCount)
	dCallCount = 0

	a.Set("aa")
	assert.Equal(t, 0, dCallCount)
}

func TestSelectorOnlyNotifiesOnChange(t *testing.T) {
	rt := newRuntime(t)
	selected := reactive.CreateSignal(rt, 0)
	isFirst := reactive.CreateSelector(rt, func() bool {
		return selected.Get() == 1
	}, reactive.Equal[bool])

	var seen []bool
	reactive.CreateEffect(rt, func() {
		seen = append(seen, isFirst.Get())
	})

	selected.Set(2)
	selected.Set(3)
	assert.Equal(t, []bool{false}, seen)

	selected.Set(1)
	selected.Set(2)
	assert.Equal(t, []bool{false, true, false}, seen)
}

/*
a -> A --\
          AB (reads B only when A is zero)
b -> B --/
*/
func TestMemoDynamicDependencies(t *testing.T) {
	rt := newRuntime(t)
	a := reactive.CreateSignal(rt, 1)
	b := reactive.CreateSignal(rt, 1)

	cA, cB, cAB := 0, 0, 0
	memoA := reactive.CreateMemo(rt, func() int {
		cA++
		return a.Get()
	})
	memoB := reactive.CreateMemo(rt, func() int {
		cB++
		return b.Get()
	})
	memoAB := reactive.CreateMemo(rt, func() int {
		cAB++
		if v := memoA.Get(); v != 0 {
			return v
		}
		return memoB.Get()
	})

	assert.Equal(t, 1, memoAB.Get())
	assert.Equal(t, []int{1, 1, 1}, []int{cA, cB, cAB})

	a.Set(2)
	assert.Equal(t, 2, memoAB.Get())
	assert.Equal(t, []int{2, 1, 2}, []int{cA, cB, cAB})

	b.Set(3)
	assert.Equal(t, 2, memoAB.Get())
	assert.Equal(t, []int{2, 2, 2}, []int{cA, cB, cAB})

	a.Set(0)
	assert.Equal(t, 3, memoAB.Get())
	assert.Equal(t, []int{3, 2, 3}, []int{cA, cB, cAB})

	b.Set(4)
	assert.Equal(t, 4, memoAB.Get())
	assert.Equal(t, []int{3, 3, 4}, []int{cA, cB, cAB})
}

func TestMemoReadByEarlierEffectIsNeverStale(t *testing.T) {
	rt := newRuntime(t)
	s := reactive.CreateSignal(rt, 1)

	var double *reactive.ReadonlySignal[int]
	var pairs [][2]int
	reactive.CreateEffect(rt, func() {
		v := s.Get()
		if double == nil {
			return
		}
		pairs = append(pairs, [2]int{v, double.Get()})
	})

	memoRuns := 0
	double = reactive.CreateMemo(rt, func() int {
		memoRuns++
		return s.Get() * 2
	})

	s.Set(2)
	s.Set(3)
	assert.Equal(t, [][2]int{{2, 4}, {3, 6}}, pairs)
	assert.Equal(t, 3, memoRuns)
}

func TestMemoDisposedWithOwner(t *testing.T) {
	rt := newRuntime(t)
	s := reactive.CreateSignal(rt, 1)

	runs := 0
	var m *reactive.ReadonlySignal[int]
	root := reactive.CreateRoot(rt, func(dispose func()) {
		m = reactive.CreateMemo(rt, func() int {
			runs++
			return s.Get() + 1
		})
	})
	assert.Equal(t, 2, m.Get())
	assert.False(t, m.Disposed())

	root.Dispose()
	assert.True(t, m.Disposed())

	s.Set(5)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 2, m.Get())
}

func TestMemoUntrackedReadDoesNotSubscribe(t *testing.T) {
	rt := newRuntime(t)
	src := reactive.CreateSignal(rt, 0)
	runs := 0
	c := reactive.CreateMemo(rt, func() int {
		runs++
		return reactive.Untrack(rt, src.Get)
	})
	assert.Equal(t, 0, c.Get())

	src.Set(1)
	assert.Equal(t, 0, c.Get())
	assert.Equal(t, 1, runs)
}

package reactive

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// A computation is an owner that can be re-executed. Its dependency set is
// rebuilt from scratch on every run.
type computation struct {
	owner

	fn      func()
	sources mapset.Set[*source]

	dirty   bool
	queued  bool
	running bool
}

func (rt *Runtime) newComputation(fn func()) *computation {
	c := &computation{
		fn:      fn,
		sources: mapset.NewThreadUnsafeSet[*source](),
	}
	c.comp = c
	parent := rt.top().owner
	if parent == nil {
		rt.logger.Warn("computation created outside a root, it will only be disposed manually")
	}
	c.owner.init(rt, parent, true)
	return c
}

// unlink removes every dependency edge of the computation.
func (c *computation) unlink() {
	for _, s := range c.sources.ToSlice() {
		s.subs.Remove(c)
	}
	c.sources.Clear()
}

// runComputation disposes what the previous run created, then executes the
// body with the computation as both listener and owner.
func (rt *Runtime) runComputation(c *computation) {
	if c.disposed {
		return
	}
	c.dirty = false
	c.clean()

	start := time.Now()
	rt.running++
	c.running = true
	defer func() {
		c.running = false
		rt.running--
		rt.instr.EffectRan(time.Since(start))
	}()

	rt.guard(&c.owner, func() {
		rt.with(frame{listener: c, owner: &c.owner}, c.fn)
	})
}

// CreateEffect runs fn immediately and again whenever a signal it read on
// its last run is set. Effects created inside fn are owned by this effect and
// disposed before each re-run. The returned function disposes the effect.
func CreateEffect(rt *Runtime, fn func()) (dispose func()) {
	c := rt.newComputation(fn)
	rt.runComputation(c)
	rt.maybeFlush()
	return func() {
		Batch(rt, c.dispose)
	}
}

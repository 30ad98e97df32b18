package reactive

import (
	"fmt"
	"time"
)

// enqueue marks c dirty and appends it to the pending queue once.
func (rt *Runtime) enqueue(c *computation) {
	if c.disposed {
		return
	}
	c.dirty = true
	if c.queued {
		return
	}
	c.queued = true
	rt.queue = append(rt.queue, c)
}

// maybeFlush drains the queue unless a batch is open, a flush is already in
// progress or a computation is executing. In the last two cases the
// outermost caller drains it.
func (rt *Runtime) maybeFlush() {
	if rt.batchDepth > 0 || rt.flushing || rt.running > 0 {
		return
	}
	if len(rt.queue) == 0 {
		return
	}
	rt.flush()
}

// flush runs queued computations in the order they were first marked dirty
// until nothing is left. Writes made by a running computation append to the
// same queue instead of recursing.
func (rt *Runtime) flush() {
	rt.flushing = true
	start := time.Now()
	runs := 0
	i := 0
	defer func() {
		for _, c := range rt.queue[i:] {
			if c != nil {
				c.queued = false
			}
		}
		clear(rt.queue)
		rt.queue = rt.queue[:0]
		rt.flushing = false

		d := time.Since(start)
		rt.instr.Flushed(runs, d)
		rt.debug("flushed", "runs", runs, "duration", d)
	}()

	for ; i < len(rt.queue); i++ {
		c := rt.queue[i]
		rt.queue[i] = nil
		c.queued = false
		if c.disposed || !c.dirty {
			continue
		}
		runs++
		if runs > rt.flushLimit {
			panic(fmt.Errorf("%w: more than %d runs", ErrFlushLimit, rt.flushLimit))
		}
		rt.runComputation(c)
	}
}

// Batch defers notifications until fn returns. Every computation made dirty
// inside runs exactly once when the outermost batch exits, seeing the final
// values. Batches nest.
func Batch(rt *Runtime, fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		rt.maybeFlush()
	}()
	fn()
}

// Untrack runs fn without subscribing the current computation to anything fn
// reads. Ownership is unchanged.
func Untrack[T any](rt *Runtime, fn func() T) T {
	var v T
	rt.untracked(func() {
		v = fn()
	})
	return v
}

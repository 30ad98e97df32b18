// Package reactive is a fine grained signal graph: signals hold values,
// computations re-run when the signals they read change, and owners dispose
// whatever was created under them.
package reactive

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

const defaultFlushLimit = 100_000

// A frame is one entry of the tracker stack: who is listening to reads and
// who owns anything created right now.
type frame struct {
	listener *computation
	owner    *owner
}

// Runtime is the reactive context every primitive is created against.
// It holds the dependency tracker stack, the batch depth and the queue of
// dirty computations waiting for a flush.
//
// A Runtime is single threaded: all reads, writes, effect runs and disposals
// must happen on the goroutine that uses it.
type Runtime struct {
	stack      []frame
	batchDepth int
	flushing   bool
	running    int
	queue      []*computation
	nextID     uint64

	flushLimit int
	logger     *slog.Logger
	instr      Instrumentation
	entropy    *ulid.MonotonicEntropy
}

// NewRuntime creates an empty reactive context.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		flushLimit: defaultFlushLimit,
		logger:     slog.New(slog.DiscardHandler),
		instr:      nopInstrumentation{},
		entropy:    ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Depth reports the number of frames on the tracker stack.
// It is zero whenever no computation, root or untracked block is executing.
func (rt *Runtime) Depth() int {
	return len(rt.stack)
}

// Pending reports the number of computations queued for the next flush.
func (rt *Runtime) Pending() int {
	return len(rt.queue)
}

// Tracking reports whether a signal read right now would register a dependency.
func (rt *Runtime) Tracking() bool {
	return rt.top().listener != nil
}

func (rt *Runtime) id() uint64 {
	rt.nextID++
	return rt.nextID
}

func (rt *Runtime) top() frame {
	if len(rt.stack) == 0 {
		return frame{}
	}
	return rt.stack[len(rt.stack)-1]
}

func (rt *Runtime) push(f frame) int {
	rt.stack = append(rt.stack, f)
	return len(rt.stack)
}

func (rt *Runtime) pop(depth int) {
	n := len(rt.stack)
	if n == 0 {
		panic(ErrTrackerUnderflow)
	}
	if n != depth {
		panic(fmt.Errorf("%w: expected depth %d, got %d", ErrTrackerMismatch, depth, n))
	}
	rt.stack[n-1] = frame{}
	rt.stack = rt.stack[:n-1]
}

// with runs fn with f on top of the tracker stack. The frame is popped even
// if fn panics.
func (rt *Runtime) with(f frame, fn func()) {
	depth := rt.push(f)
	defer rt.pop(depth)
	fn()
}

func (rt *Runtime) untracked(fn func()) {
	rt.with(frame{owner: rt.top().owner}, fn)
}

func (rt *Runtime) debug(msg string, args ...any) {
	if rt.logger.Enabled(context.Background(), slog.LevelDebug) {
		rt.logger.Debug(msg, args...)
	}
}

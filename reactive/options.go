package reactive

import (
	"log/slog"
	"time"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for debug and warning output.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithInstrumentation sets the hooks notified about writes, runs, disposals
// and flushes.
func WithInstrumentation(instr Instrumentation) Option {
	return func(rt *Runtime) {
		if instr != nil {
			rt.instr = instr
		}
	}
}

// WithFlushLimit bounds the number of computation runs a single flush may
// perform before it panics with ErrFlushLimit. Zero or negative keeps the
// default.
func WithFlushLimit(limit int) Option {
	return func(rt *Runtime) {
		if limit > 0 {
			rt.flushLimit = limit
		}
	}
}

// Instrumentation receives runtime events. Implementations must be cheap,
// they are called on the hot path.
type Instrumentation interface {
	SignalWritten()
	EffectRan(d time.Duration)
	ScopeDisposed()
	Flushed(runs int, d time.Duration)
}

type nopInstrumentation struct{}

func (nopInstrumentation) SignalWritten()             {}
func (nopInstrumentation) EffectRan(time.Duration)    {}
func (nopInstrumentation) ScopeDisposed()             {}
func (nopInstrumentation) Flushed(int, time.Duration) {}

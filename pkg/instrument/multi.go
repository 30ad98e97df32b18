package instrument

import (
	"time"

	"github.com/delaneyj/maple/reactive"
)

type multi []reactive.Instrumentation

// Multi fans every event out to each of instrs, in order. Nil entries are
// skipped.
func Multi(instrs ...reactive.Instrumentation) reactive.Instrumentation {
	m := make(multi, 0, len(instrs))
	for _, in := range instrs {
		if in != nil {
			m = append(m, in)
		}
	}
	return m
}

func (m multi) SignalWritten() {
	for _, in := range m {
		in.SignalWritten()
	}
}

func (m multi) EffectRan(d time.Duration) {
	for _, in := range m {
		in.EffectRan(d)
	}
}

func (m multi) ScopeDisposed() {
	for _, in := range m {
		in.ScopeDisposed()
	}
}

func (m multi) Flushed(runs int, d time.Duration) {
	for _, in := range m {
		in.Flushed(runs, d)
	}
}

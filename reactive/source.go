package reactive

import (
	"cmp"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// A source is the untyped half of every signal: the subscriber set and the
// memo computation feeding it, if any. Subscribers are non-owning back
// references, the owner of a computation is what keeps it alive.
type source struct {
	rt       *Runtime
	id       uint64
	subs     mapset.Set[*computation]
	memo     *computation
	disposed bool
}

func (rt *Runtime) newSource() *source {
	s := &source{
		rt:   rt,
		id:   rt.id(),
		subs: mapset.NewThreadUnsafeSet[*computation](),
	}
	if o := rt.top().owner; o != nil && !o.disposed {
		o.signals = append(o.signals, s)
	}
	return s
}

// read brings a memo up to date if it is waiting in the queue, then links
// the current listener.
func (s *source) read() {
	if c := s.memo; c != nil && c.dirty && !c.running && !c.disposed {
		s.rt.runComputation(c)
		s.rt.maybeFlush()
	}
	s.track()
}

func (s *source) track() {
	if s.disposed {
		return
	}
	l := s.rt.top().listener
	if l == nil || l.disposed {
		return
	}
	s.subs.Add(l)
	l.sources.Add(s)
}

// notify marks every subscriber dirty. The subscriber set is snapshotted and
// ordered by creation so that runs unsubscribing themselves do not disturb
// the iteration.
func (s *source) notify() {
	if s.disposed || s.subs.Cardinality() == 0 {
		return
	}
	subs := s.subs.ToSlice()
	slices.SortFunc(subs, func(a, b *computation) int {
		return cmp.Compare(a.id, b.id)
	})
	for _, c := range subs {
		s.rt.enqueue(c)
	}
	s.rt.maybeFlush()
}

func (s *source) dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, c := range s.subs.ToSlice() {
		c.sources.Remove(s)
	}
	s.subs.Clear()
}

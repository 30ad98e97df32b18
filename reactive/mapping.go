package reactive

// itemScopes ties per-item scopes to the owner that created the mapping, so
// that they outlive individual recomputations of the mapping memo but not
// the owner itself.
type itemScopes struct {
	rt     *Runtime
	parent *owner
	live   map[*Scope]struct{}
}

func newItemScopes(rt *Runtime) *itemScopes {
	is := &itemScopes{
		rt:     rt,
		parent: rt.top().owner,
		live:   map[*Scope]struct{}{},
	}
	if is.parent != nil {
		is.parent.cleanups = append(is.parent.cleanups, is.disposeAll)
	}
	return is
}

// create runs fn in a fresh detached scope whose context parent is the
// mapping's owner.
func (is *itemScopes) create(fn func()) *Scope {
	var s *Scope
	is.rt.with(frame{owner: is.parent}, func() {
		s = is.rt.newScope(false)
	})
	is.live[s] = struct{}{}
	s.Run(fn)
	return s
}

func (is *itemScopes) dispose(s *Scope) {
	delete(is.live, s)
	s.Dispose()
}

func (is *itemScopes) disposeAll() {
	for s := range is.live {
		s.Dispose()
	}
	clear(is.live)
}

// MapIndexed maps list item by item. Each index keeps its own scope for as
// long as the item at that index stays equal; when it changes, or the list
// shrinks, the scope is disposed and the item mapped again.
func MapIndexed[T comparable, U any](rt *Runtime, list Reader[[]T], fn func(item T, index int) U) *ReadonlySignal[[]U] {
	type slot struct {
		item  T
		value U
		scope *Scope
	}
	scopes := newItemScopes(rt)
	var slots []slot

	return CreateMemo(rt, func() []U {
		items := list.Get()
		next := make([]slot, len(items))
		out := make([]U, len(items))

		for i, item := range items {
			if i < len(slots) && slots[i].item == item {
				next[i] = slots[i]
			} else {
				if i < len(slots) {
					scopes.dispose(slots[i].scope)
				}
				sl := slot{item: item}
				idx := i
				sl.scope = scopes.create(func() {
					sl.value = fn(item, idx)
				})
				next[i] = sl
			}
			out[i] = next[i].value
		}
		for i := len(items); i < len(slots); i++ {
			scopes.dispose(slots[i].scope)
		}

		slots = next
		return out
	})
}

// MapKeyed maps list by key. An item keeps its scope and mapped value for as
// long as its key is present, whatever its position. Items whose key
// disappears are disposed. Duplicate keys each get their own scope.
func MapKeyed[T any, K comparable, U any](rt *Runtime, list Reader[[]T], key func(T) K, fn func(item T) U) *ReadonlySignal[[]U] {
	type entry struct {
		value U
		scope *Scope
	}
	scopes := newItemScopes(rt)
	entries := map[K][]*entry{}

	return CreateMemo(rt, func() []U {
		items := list.Get()
		next := make(map[K][]*entry, len(items))
		out := make([]U, len(items))

		for i, item := range items {
			k := key(item)
			var e *entry
			if prev := entries[k]; len(prev) > 0 {
				e = prev[0]
				entries[k] = prev[1:]
			} else {
				e = &entry{}
				e.scope = scopes.create(func() {
					e.value = fn(item)
				})
			}
			next[k] = append(next[k], e)
			out[i] = e.value
		}
		for _, stale := range entries {
			for _, e := range stale {
				scopes.dispose(e.scope)
			}
		}

		entries = next
		return out
	})
}

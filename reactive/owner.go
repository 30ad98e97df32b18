package reactive

// An owner is a lifetime boundary. It owns the computations, scopes and
// signals created while it was on top of the tracker stack, plus cleanup
// callbacks and context values. Computations and scopes are both owners.
type owner struct {
	rt     *Runtime
	id     uint64
	parent *owner

	// children in creation order
	children []*owner
	signals  []*source
	cleanups []func()
	values   map[uint64]any

	// comp is set when this owner is the owner half of a computation
	comp     *computation
	disposed bool
}

func (o *owner) init(rt *Runtime, parent *owner, attach bool) {
	o.rt = rt
	o.id = rt.id()
	if parent == nil {
		return
	}
	if parent.disposed {
		if attach {
			// nothing could ever dispose it, so it never runs
			o.disposed = true
			rt.logger.Warn("owner created under a disposed parent, it is disposed already", "parent", parent.id)
		} else {
			rt.logger.Warn("owner created under a disposed parent, it will never be disposed automatically", "parent", parent.id)
		}
		return
	}
	o.parent = parent
	if attach {
		parent.children = append(parent.children, o)
	}
}

func (o *owner) removeChild(child *owner) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *owner) value(key uint64) any {
	return o.values[key]
}

func (o *owner) setValue(key uint64, v any) {
	if o.values == nil {
		o.values = map[uint64]any{}
	}
	o.values[key] = v
}

// lookup walks up the owner chain.
func (o *owner) lookup(key uint64) (any, bool) {
	for cur := o; cur != nil; cur = cur.parent {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// clean tears down everything the owner created during its last run:
// children last created first, then owned signals, then dependency edges,
// then cleanups in reverse registration order. The owner itself stays usable.
func (o *owner) clean() {
	o.rt.untracked(func() {
		children := o.children
		o.children = nil
		for i := len(children) - 1; i >= 0; i-- {
			children[i].dispose()
		}

		for _, s := range o.signals {
			s.dispose()
		}
		o.signals = nil

		if o.comp != nil {
			o.comp.unlink()
		}

		cleanups := o.cleanups
		o.cleanups = nil
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		o.values = nil
	})
}

// dispose cleans the owner for good and detaches it from its parent.
// Disposing twice is a no-op.
func (o *owner) dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.clean()
	if o.parent != nil {
		o.parent.removeChild(o)
	}
	o.rt.instr.ScopeDisposed()
	o.rt.debug("disposed owner", "id", o.id)
}

// OnCleanup registers fn to run when the current owner is disposed, or before
// the current computation runs again. Called on an already disposed owner, fn
// runs immediately.
func OnCleanup(rt *Runtime, fn func()) {
	o := rt.top().owner
	if o == nil {
		rt.logger.Warn("OnCleanup called without an owner, cleanup will never run")
		return
	}
	if o.disposed {
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
}

package reactive

// Context passes a value down the owner tree without threading it through
// every call.
type Context[T any] struct {
	rt           *Runtime
	id           uint64
	defaultValue T
}

// CreateContext creates a context whose Use falls back to defaultValue.
func CreateContext[T any](rt *Runtime, defaultValue T) *Context[T] {
	return &Context[T]{
		rt:           rt,
		id:           rt.id(),
		defaultValue: defaultValue,
	}
}

// Provide stores value on the current owner. Values provided by a
// computation are dropped before it re-runs.
func (c *Context[T]) Provide(value T) error {
	o := c.rt.top().owner
	if o == nil {
		return ErrNoOwner
	}
	o.setValue(c.id, value)
	return nil
}

// Use returns the value provided by the nearest owner, or the default.
func (c *Context[T]) Use() T {
	v, ok := c.rt.top().owner.lookup(c.id)
	if !ok {
		return c.defaultValue
	}
	t, ok := v.(T)
	if !ok {
		return c.defaultValue
	}
	return t
}

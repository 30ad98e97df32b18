package dom

import "slices"

// Event is handed to listeners by DispatchEvent.
type Event struct {
	Type   string
	Target *Node
}

type listener struct {
	fn func(*Event)
}

// AddEventListener registers fn for events of the given type and returns a
// function that removes it.
func (n *Node) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	if n.listeners == nil {
		n.listeners = map[string][]*listener{}
	}
	l := &listener{fn: fn}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		n.listeners[typ] = slices.DeleteFunc(n.listeners[typ], func(x *listener) bool {
			return x == l
		})
	}
}

// DispatchEvent synchronously calls the listeners registered on n for typ,
// in registration order.
func (n *Node) DispatchEvent(typ string) {
	ev := &Event{Type: typ, Target: n}
	for _, l := range slices.Clone(n.listeners[typ]) {
		l.fn(ev)
	}
}

// ListenerCount reports how many listeners are registered for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

package dom

import (
	"github.com/delaneyj/maple/reactive"
)

// Child is anything that can be applied to an element under construction:
// nodes, attributes, listeners, refs and dynamic regions.
type Child interface {
	applyTo(parent *Node)
}

type childFunc func(parent *Node)

func (f childFunc) applyTo(parent *Node) { f(parent) }

func (n *Node) applyTo(parent *Node) { parent.AppendChild(n) }

// Element creates an element and applies children in order.
func Element(tag string, children ...Child) *Node {
	n := newElement(tag)
	for _, c := range children {
		if c != nil {
			c.applyTo(n)
		}
	}
	return n
}

// Fragment groups nodes without a wrapper element.
func Fragment(children ...Child) *Node {
	n := &Node{kind: FragmentNode}
	for _, c := range children {
		if c != nil {
			c.applyTo(n)
		}
	}
	return n
}

// Text creates a static text node.
func Text(data string) *Node {
	return &Node{kind: TextNode, data: data}
}

// DynamicText creates a text node kept in sync with fn.
func DynamicText(rt *reactive.Runtime, fn func() string) *Node {
	n := Text("")
	reactive.CreateEffect(rt, func() {
		n.SetData(fn())
	})
	return n
}

// Attr sets a static attribute on the parent element.
func Attr(name, value string) Child {
	return childFunc(func(parent *Node) {
		parent.SetAttribute(name, value)
	})
}

// DynamicAttr keeps the attribute name in sync with fn.
func DynamicAttr(rt *reactive.Runtime, name string, fn func() string) Child {
	return childFunc(func(parent *Node) {
		reactive.CreateEffect(rt, func() {
			parent.SetAttribute(name, fn())
		})
	})
}

// On registers handler for events of type typ. The listener is removed when
// the current owner is disposed.
func On(rt *reactive.Runtime, typ string, handler func(*Event)) Child {
	return childFunc(func(parent *Node) {
		remove := parent.AddEventListener(typ, handler)
		reactive.OnCleanup(rt, remove)
	})
}

// BindValue ties the element's value property to sig in both directions:
// setting sig updates the property, an input event writes the property back.
func BindValue(rt *reactive.Runtime, sig *reactive.Signal[string]) Child {
	return childFunc(func(parent *Node) {
		reactive.CreateEffect(rt, func() {
			parent.SetProperty("value", sig.Get())
		})
		On(rt, "input", func(ev *Event) {
			sig.Set(ev.Target.Property("value"))
		}).applyTo(parent)
	})
}

// NodeRef captures the element it is attached to with Ref.
type NodeRef struct {
	node *Node
}

// NewNodeRef returns an empty reference.
func NewNodeRef() *NodeRef {
	return &NodeRef{}
}

// Get returns the referenced node, nil until the template has been built.
func (r *NodeRef) Get() *Node {
	return r.node
}

// Set points the reference at n.
func (r *NodeRef) Set(n *Node) {
	r.node = n
}

// Ref stores the parent element in r.
func Ref(r *NodeRef) Child {
	return childFunc(func(parent *Node) {
		r.Set(parent)
	})
}

package dom

import (
	"github.com/delaneyj/maple/reactive"
)

// A region is a run of siblings kept in front of an anchor comment. Dynamic
// children and lists rewrite their region instead of the whole parent.
type region struct {
	anchor  *Node
	current []*Node
	// fragments flatten on first insert, remember what they held
	flat map[*Node][]*Node
}

func newRegion(rt *reactive.Runtime, parent *Node) *region {
	r := &region{
		anchor: Comment(""),
		flat:   map[*Node][]*Node{},
	}
	parent.AppendChild(r.anchor)
	reactive.OnCleanup(rt, func() {
		r.replace(nil)
	})
	return r
}

func (r *region) replace(nodes []*Node) {
	for _, n := range r.current {
		n.Remove()
	}

	seen := make(map[*Node][]*Node, len(nodes))
	var next []*Node
	for _, n := range nodes {
		if n == nil {
			continue
		}
		flat, ok := r.flat[n]
		if !ok {
			flat = flatten(n)
		}
		seen[n] = flat
		next = append(next, flat...)
	}
	r.flat = seen

	if parent := r.anchor.parent; parent != nil {
		for _, n := range next {
			parent.InsertBefore(n, r.anchor)
		}
	}
	r.current = next
}

func flatten(n *Node) []*Node {
	if n.kind != FragmentNode {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.children {
		out = append(out, flatten(c)...)
	}
	return out
}

// Dynamic renders whatever fn returns and re-renders when a signal read by
// fn changes. Everything created by the previous render is disposed first.
func Dynamic(rt *reactive.Runtime, fn func() *Node) Child {
	return childFunc(func(parent *Node) {
		r := newRegion(rt, parent)
		reactive.CreateEffect(rt, func() {
			r.replace([]*Node{fn()})
		})
	})
}

// Keyed renders one node per item. Nodes follow their key across reorders
// and are only built again when their key is new.
func Keyed[T any, K comparable](rt *reactive.Runtime, list reactive.Reader[[]T], key func(T) K, fn func(T) *Node) Child {
	return childFunc(func(parent *Node) {
		r := newRegion(rt, parent)
		nodes := reactive.MapKeyed(rt, list, key, fn)
		reactive.CreateEffect(rt, func() {
			r.replace(nodes.Get())
		})
	})
}

// Indexed renders one node per position. A position is only rebuilt when the
// item at that position changes.
func Indexed[T comparable](rt *reactive.Runtime, list reactive.Reader[[]T], fn func(item T, index int) *Node) Child {
	return childFunc(func(parent *Node) {
		r := newRegion(rt, parent)
		nodes := reactive.MapIndexed(rt, list, fn)
		reactive.CreateEffect(rt, func() {
			r.replace(nodes.Get())
		})
	})
}

// RenderTo builds the template returned by fn inside a new root and appends
// it to parent. An empty template leaves a comment placeholder. Disposing the
// returned scope stops every binding and removes the rendered nodes.
func RenderTo(rt *reactive.Runtime, fn func() *Node, parent *Node) *reactive.Scope {
	return reactive.CreateRoot(rt, func(dispose func()) {
		n := fn()
		if n == nil || (n.kind == FragmentNode && len(n.children) == 0) {
			n = Comment("")
		}
		nodes := flatten(n)
		for _, c := range nodes {
			parent.AppendChild(c)
		}
		reactive.OnCleanup(rt, func() {
			for _, c := range nodes {
				c.Remove()
			}
		})
	})
}

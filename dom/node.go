// Package dom is a headless document tree driven by the reactive package.
// It binds signals to text, attributes, properties and child lists the same
// way a browser binder would, which makes templates testable without one.
package dom

import (
	"slices"
	"strings"
)

type Kind uint8

const (
	ElementNode Kind = iota
	TextNode
	CommentNode
	FragmentNode
)

func (k Kind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case FragmentNode:
		return "fragment"
	default:
		return "unknown"
	}
}

type attribute struct {
	name, value string
}

// Node is an element, a text node, a comment or a fragment. Appending a
// fragment moves its children instead of the fragment itself.
type Node struct {
	kind Kind
	tag  string
	data string

	attrs     []attribute
	props     map[string]string
	listeners map[string][]*listener

	parent   *Node
	children []*Node
}

func newElement(tag string) *Node {
	return &Node{kind: ElementNode, tag: strings.ToLower(tag)}
}

// Comment creates a comment node.
func Comment(data string) *Node {
	return &Node{kind: CommentNode, data: data}
}

func (n *Node) Kind() Kind    { return n.kind }
func (n *Node) Tag() string   { return n.tag }
func (n *Node) Parent() *Node { return n.parent }

// Children returns a snapshot of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Data is the content of a text or comment node.
func (n *Node) Data() string {
	return n.data
}

// SetData replaces the content of a text or comment node.
func (n *Node) SetData(data string) {
	n.data = data
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore moves child in front of ref, or to the end when ref is nil.
// A fragment contributes its children and is left empty.
func (n *Node) InsertBefore(child, ref *Node) {
	if child.kind == FragmentNode {
		for _, c := range child.Children() {
			n.InsertBefore(c, ref)
		}
		return
	}
	child.Remove()

	idx := len(n.children)
	if ref != nil {
		if i := slices.Index(n.children, ref); i >= 0 {
			idx = i
		}
	}
	n.children = slices.Insert(n.children, idx, child)
	child.parent = n
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// ReplaceChildren removes every child and appends nodes in order.
func (n *Node) ReplaceChildren(nodes ...*Node) {
	for _, c := range n.Children() {
		c.Remove()
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

// GetAttribute returns the value of name and whether it is set.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// SetAttribute sets name to value, keeping the attribute's original position
// when it already exists.
func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.attrs {
		if a.name == name {
			n.attrs[i].value = value
			return
		}
	}
	n.attrs = append(n.attrs, attribute{name: name, value: value})
}

// RemoveAttribute deletes name, if present.
func (n *Node) RemoveAttribute(name string) {
	n.attrs = slices.DeleteFunc(n.attrs, func(a attribute) bool {
		return a.name == name
	})
}

// Property returns a live property such as an input's value. Properties are
// not serialized.
func (n *Node) Property(name string) string {
	return n.props[name]
}

// SetProperty sets a live property.
func (n *Node) SetProperty(name, value string) {
	if n.props == nil {
		n.props = map[string]string{}
	}
	n.props[name] = value
}

// TextContent concatenates the data of every descendant text node.
func (n *Node) TextContent() string {
	if n.kind == TextNode {
		return n.data
	}
	var sb strings.Builder
	n.walk(func(c *Node) bool {
		if c.kind == TextNode {
			sb.WriteString(c.data)
		}
		return true
	})
	return sb.String()
}

// QuerySelector returns the first descendant, in document order, matching a
// selector of the form "tag", "#id" or "tag#id".
func (n *Node) QuerySelector(selector string) *Node {
	tag, id, _ := strings.Cut(selector, "#")
	tag = strings.ToLower(tag)

	var found *Node
	n.walk(func(c *Node) bool {
		if c.kind != ElementNode {
			return true
		}
		if tag != "" && c.tag != tag {
			return true
		}
		if id != "" {
			if v, ok := c.GetAttribute("id"); !ok || v != id {
				return true
			}
		}
		found = c
		return false
	})
	return found
}

// walk visits descendants depth first until fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	for _, c := range n.children {
		if !fn(c) || !c.walk(fn) {
			return false
		}
	}
	return true
}

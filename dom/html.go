package dom

import (
	"io"

	"github.com/valyala/bytebufferpool"
	qt "github.com/valyala/quicktemplate"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// OuterHTML serializes n and its descendants.
func (n *Node) OuterHTML() string {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	n.WriteOuterHTML(bb)
	return bb.String()
}

// InnerHTML serializes n's descendants.
func (n *Node) InnerHTML() string {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	n.WriteInnerHTML(bb)
	return bb.String()
}

// WriteOuterHTML streams the OuterHTML of n to w.
func (n *Node) WriteOuterHTML(w io.Writer) {
	qw := qt.AcquireWriter(w)
	defer qt.ReleaseWriter(qw)
	n.streamOuter(qw)
}

// WriteInnerHTML streams the InnerHTML of n to w.
func (n *Node) WriteInnerHTML(w io.Writer) {
	qw := qt.AcquireWriter(w)
	defer qt.ReleaseWriter(qw)
	n.streamInner(qw)
}

func (n *Node) streamOuter(qw *qt.Writer) {
	switch n.kind {
	case TextNode:
		qw.E().S(n.data)
	case CommentNode:
		qw.N().S("<!--")
		qw.N().S(n.data)
		qw.N().S("-->")
	case FragmentNode:
		n.streamInner(qw)
	case ElementNode:
		qw.N().S("<")
		qw.N().S(n.tag)
		for _, a := range n.attrs {
			qw.N().S(" ")
			qw.N().S(a.name)
			qw.N().S(`="`)
			qw.E().S(a.value)
			qw.N().S(`"`)
		}
		qw.N().S(">")
		if voidElements[n.tag] {
			return
		}
		n.streamInner(qw)
		qw.N().S("</")
		qw.N().S(n.tag)
		qw.N().S(">")
	}
}

func (n *Node) streamInner(qw *qt.Writer) {
	for _, c := range n.children {
		c.streamOuter(qw)
	}
}

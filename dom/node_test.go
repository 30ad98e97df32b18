package dom_test

import (
	"testing"

	"github.com/delaneyj/maple/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTreeEditing(t *testing.T) {
	list := dom.Element("ul")
	a := dom.Element("li", dom.Text("a"))
	b := dom.Element("li", dom.Text("b"))
	c := dom.Element("li", dom.Text("c"))

	list.AppendChild(a)
	list.AppendChild(c)
	list.InsertBefore(b, c)
	assert.Equal(t, "abc", list.TextContent())
	assert.Same(t, list, b.Parent())

	// moving a node detaches it from its old position
	list.AppendChild(a)
	assert.Equal(t, "bca", list.TextContent())

	b.Remove()
	assert.Nil(t, b.Parent())
	assert.Equal(t, "ca", list.TextContent())

	list.ReplaceChildren(b)
	assert.Equal(t, "<ul><li>b</li></ul>", list.OuterHTML())
	assert.Nil(t, a.Parent())
}

func TestNodeAttributes(t *testing.T) {
	n := dom.Element("DIV", dom.Attr("id", "main"), dom.Attr("class", "x"))
	assert.Equal(t, "div", n.Tag())
	assert.Equal(t, dom.ElementNode, n.Kind())

	n.SetAttribute("id", "other")
	n.SetAttribute("hidden", "")
	assert.Equal(t, `<div id="other" class="x" hidden=""></div>`, n.OuterHTML())

	n.RemoveAttribute("class")
	_, ok := n.GetAttribute("class")
	assert.False(t, ok)

	n.SetProperty("value", "not serialized")
	assert.Equal(t, `<div id="other" hidden=""></div>`, n.OuterHTML())
}

func TestNodeQuerySelector(t *testing.T) {
	doc := dom.Element("html",
		dom.Element("body",
			dom.Comment("skip me"),
			dom.Element("p", dom.Attr("id", "first"), dom.Text("one")),
			dom.Element("section",
				dom.Element("p", dom.Attr("id", "second"), dom.Text("two")),
			),
		),
	)

	first := doc.QuerySelector("p")
	require.NotNil(t, first)
	assert.Equal(t, "one", first.TextContent())
	assert.Equal(t, "two", doc.QuerySelector("#second").TextContent())
	assert.Equal(t, "two", doc.QuerySelector("section").QuerySelector("p").TextContent())
	assert.Nil(t, doc.QuerySelector("p#missing"))
	assert.Nil(t, doc.QuerySelector("html"), "only descendants match")

	assert.Equal(t, "onetwo", doc.TextContent())
	assert.Equal(t, "<!--skip me--><p id=\"first\">one</p><section><p id=\"second\">two</p></section>",
		doc.QuerySelector("body").InnerHTML())
}

func TestNodeEvents(t *testing.T) {
	n := dom.Element("button")

	var got []string
	removeFirst := n.AddEventListener("click", func(ev *dom.Event) {
		assert.Same(t, n, ev.Target)
		got = append(got, "first")
	})
	n.AddEventListener("click", func(ev *dom.Event) {
		got = append(got, "second")
	})

	n.DispatchEvent("click")
	n.DispatchEvent("keydown")
	assert.Equal(t, []string{"first", "second"}, got)

	removeFirst()
	n.DispatchEvent("click")
	assert.Equal(t, []string{"first", "second", "second"}, got)
	assert.Equal(t, 1, n.ListenerCount("click"))
}

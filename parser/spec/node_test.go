package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func element(name string, children ...*Node) *Node {
	n := NewDOMElement(name, Htmlns)
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func TestOuterHTML(t *testing.T) {
	a := element("a", NewTextNode("x < y & z"))
	a.SetAttribute("href", "/?a=1&b=\"2\"")
	a.SetAttribute("class", "link")

	tests := []struct {
		name     string
		node     *Node
		expected string
	}{
		{"attributes keep insertion order", a, `<a href="/?a=1&amp;b=&quot;2&quot;" class="link">x &lt; y &amp; z</a>`},
		{"void element has no end tag", element("br"), "<br>"},
		{"raw text isn't escaped", element("script", NewTextNode("a < b && c")), "<script>a < b && c</script>"},
		{"comment", element("div", NewComment(" c ")), "<div><!-- c --></div>"},
		{"doctype", NewDocTypeNode("html", "", ""), "<!DOCTYPE html>"},
		{"nbsp", NewTextNode("\u00a0"), "&nbsp;"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.node.OuterHTML())
		})
	}
}

func TestInnerHTMLAndText(t *testing.T) {
	root := element("html",
		element("p", NewTextNode("a"), element("b", NewTextNode("b")), NewComment("ignored")),
		NewTextNode("c"),
	)
	assert.Equal(t, "<p>a<b>b</b><!--ignored--></p>c", root.InnerHTML())
	assert.Equal(t, "abc", root.InnerText())
	assert.Equal(t, "c", root.ChildNodes[1].InnerText())
}

func TestNamedNodeMap(t *testing.T) {
	m := NewNamedNodeMap()
	m.SetNamedItem("b", "1")
	m.SetNamedItem("a", "2")
	m.SetNamedItem("b", "3")
	assert.Equal(t, 2, m.Length)
	assert.Equal(t, []string{"b", "a"}, m.Names())

	v, ok := m.GetNamedItem("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok = m.GetNamedItem("c")
	assert.False(t, ok)

	names := m.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"b", "a"}, m.Names())
}

func TestElementAttributes(t *testing.T) {
	e := NewDOMElement("div", Htmlns)
	assert.False(t, e.HasAttributes())
	e.SetAttribute("id", "x")
	assert.True(t, e.HasAttribute("id"))
	assert.Equal(t, "x", e.GetAttribute("id"))
	assert.Equal(t, "", e.GetAttribute("missing"))
	assert.False(t, e.HasAttribute("missing"))
	assert.True(t, e.HasAttributes())
}

func TestIsVoidElement(t *testing.T) {
	for _, name := range []string{"area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "param", "source", "track", "wbr"} {
		assert.True(t, IsVoidElement(name), name)
	}
	for _, name := range []string{"div", "p", "script", "svg", "", "BR"} {
		assert.False(t, IsVoidElement(name), name)
	}
}

func TestNamespaceFor(t *testing.T) {
	assert.Equal(t, Svgns, NamespaceFor("svg", Htmlns))
	assert.Equal(t, Mathmlns, NamespaceFor("math", Htmlns))
	assert.Equal(t, Svgns, NamespaceFor("circle", Svgns))
	assert.Equal(t, Mathmlns, NamespaceFor("mi", Mathmlns))
	assert.Equal(t, Htmlns, NamespaceFor("div", Htmlns))
}

func TestStackOfOpenElements(t *testing.T) {
	var s StackOfOpenElements
	assert.Nil(t, s.CurrentNode())
	assert.Nil(t, s.Pop())

	html, body := element("html"), element("body")
	s.Push(html)
	s.Push(body)
	assert.Same(t, body, s.CurrentNode())
	assert.Same(t, body, s.Pop())
	assert.Same(t, html, s.CurrentNode())
	assert.Len(t, s.NodeList, 1)
}

func TestString(t *testing.T) {
	svg := NewDOMElement("svg", Svgns)
	svg.SetAttribute("width", "1")
	svg.SetAttribute("height", "2")
	root := element("html",
		NewDocTypeNode("html", "-//W3C//DTD HTML 4.01//EN", ""),
		NewComment("c"),
		svg,
		element("p", NewTextNode("hi")),
	)
	require.Len(t, root.ChildNodes, 4)

	expected := `| <html>
|   <!DOCTYPE html "-//W3C//DTD HTML 4.01//EN" "">
|   <!-- c -->
|   <svg svg>
|     height="2"
|     width="1"
|   <p>
|     "hi"`
	assert.Equal(t, expected, root.String())
}

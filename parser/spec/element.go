package spec

import "golang.org/x/net/html/atom"

type Namespace uint

const (
	Htmlns Namespace = iota
	Mathmlns
	Svgns
)

// Element is an individual HTML element that gets added to the tree.
// https://dom.spec.whatwg.org/#interface-element
type Element struct {
	NamespaceURI Namespace
	LocalName    string
	Attributes   *NamedNodeMap
}

func (e *Element) HasAttributes() bool {
	return e.Attributes.Length > 0
}

// GetAttributeNames returns attribute names in the order they were first set.
func (e *Element) GetAttributeNames() []string {
	return e.Attributes.Names()
}

func (e *Element) GetAttribute(qualifiedName string) string {
	v, _ := e.Attributes.GetNamedItem(qualifiedName)
	return v
}

// SetAttribute adds the attribute or overwrites the value of an existing one.
func (e *Element) SetAttribute(qualifiedName, value string) {
	e.Attributes.SetNamedItem(qualifiedName, value)
}

func (e *Element) HasAttribute(qualifiedName string) bool {
	_, ok := e.Attributes.GetNamedItem(qualifiedName)
	return ok
}

// IsVoidElement reports whether an HTML element named name can't have
// children.
// https://html.spec.whatwg.org/multipage/syntax.html#void-elements
func IsVoidElement(name string) bool {
	switch atom.Lookup([]byte(name)) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

// NamespaceFor returns the namespace a start tag named name opens when its
// parent is in parent.
func NamespaceFor(name string, parent Namespace) Namespace {
	switch atom.Lookup([]byte(name)) {
	case atom.Svg:
		return Svgns
	case atom.Math:
		return Mathmlns
	}
	return parent
}

package parser

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/htmllex/parser/spec"
)

// HTMLTreeConstructor folds a token stream into a node tree with a single
// stack of open elements. It doesn't implement insertion modes: an end tag
// has to close the element on top of the stack.
type HTMLTreeConstructor struct {
	root                *spec.Node
	stackOfOpenElements spec.StackOfOpenElements
	// the most recently created element; attribute tokens apply to it
	current *spec.Node
	log     *logrus.Entry
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor whose implicit root
// is an html element.
func NewHTMLTreeConstructor(opts ...Option) *HTMLTreeConstructor {
	c := newHTMLParserConfig(opts)
	root := spec.NewDOMElement("html", spec.Htmlns)
	tc := &HTMLTreeConstructor{
		root:    root,
		current: root,
		log:     c.logger.WithField("component", "tree"),
	}
	tc.stackOfOpenElements.Push(root)
	return tc
}

// Root returns the implicit root element.
func (c *HTMLTreeConstructor) Root() *spec.Node {
	return c.root
}

func (c *HTMLTreeConstructor) getCurrentNode() *spec.Node {
	return c.stackOfOpenElements.CurrentNode()
}

// ProcessToken adds a single token to the tree. The only failure is an end
// tag that doesn't match the element it would close, reported as an
// *UnbalancedTagError.
func (c *HTMLTreeConstructor) ProcessToken(t Token) error {
	switch t.Type {
	case AttributeToken:
		c.current.SetAttribute(t.Name, t.Data)
	case CommentToken:
		c.getCurrentNode().AppendChild(spec.NewComment(t.Data))
	case DoctypeToken:
		c.getCurrentNode().AppendChild(spec.NewDocTypeNode(t.Name, t.PublicIdentifier, t.SystemIdentifier))
	case TextToken:
		c.getCurrentNode().AppendChild(spec.NewTextNode(t.Data))
	case StartTagToken:
		c.insertElement(t)
	case EndTagToken:
		return c.closeElement(t.Name)
	}
	return nil
}

func (c *HTMLTreeConstructor) insertElement(t Token) {
	parent := c.getCurrentNode()
	ns := spec.NamespaceFor(t.Name, parent.Element.NamespaceURI)
	elem := parent.AppendChild(spec.NewDOMElement(t.Name, ns))
	c.current = elem

	switch {
	case ns == spec.Htmlns && spec.IsVoidElement(t.Name):
	case ns != spec.Htmlns && t.SelfClosing:
	default:
		c.stackOfOpenElements.Push(elem)
	}
}

func (c *HTMLTreeConstructor) closeElement(name string) error {
	// the root is never closed by a token
	if len(c.stackOfOpenElements.NodeList) == 1 {
		return errors.WithStack(&UnbalancedTagError{Close: name})
	}
	open := c.getCurrentNode()
	if open.NodeName != name {
		return errors.WithStack(&UnbalancedTagError{Open: open.NodeName, Close: name})
	}
	c.stackOfOpenElements.Pop()
	c.current = c.getCurrentNode()
	return nil
}

// BuildTree replays tokens into a fresh tree and returns its root. It stops
// at the first end tag that doesn't close the open element.
func BuildTree(tokens []Token, opts ...Option) (*spec.Node, error) {
	tc := NewHTMLTreeConstructor(opts...)
	for i, t := range tokens {
		if err := tc.ProcessToken(t); err != nil {
			tc.log.WithError(err).WithField("token", i).Debug("tree construction failed")
			return nil, err
		}
	}
	return tc.Root(), nil
}

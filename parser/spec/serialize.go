package spec

import "strings"

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

func isRawTextParent(n *Node) bool {
	if n == nil || n.NodeType != ElementNode || n.Element.NamespaceURI != Htmlns {
		return false
	}
	switch n.NodeName {
	case "style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext":
		return true
	}
	return false
}

func (n *Node) writeOuterHTML(b *strings.Builder) {
	switch n.NodeType {
	case ElementNode:
		b.WriteString("<" + n.NodeName)
		for _, k := range n.Attributes.Names() {
			v, _ := n.Attributes.GetNamedItem(k)
			b.WriteString(" " + k + "=\"" + escapeString(v, true) + "\"")
		}
		b.WriteString(">")
		if n.Element.NamespaceURI == Htmlns && IsVoidElement(n.NodeName) {
			return
		}
		n.writeInnerHTML(b)
		b.WriteString("</" + n.NodeName + ">")
	case TextNode:
		if isRawTextParent(n.ParentNode) {
			b.WriteString(n.Text.Data)
		} else {
			b.WriteString(escapeString(n.Text.Data, false))
		}
	case CommentNode:
		b.WriteString("<!--" + n.Comment.Data + "-->")
	case DocumentTypeNode:
		b.WriteString("<!DOCTYPE " + n.DocumentType.Name + ">")
	}
}

func (n *Node) writeInnerHTML(b *strings.Builder) {
	for _, child := range n.ChildNodes {
		child.writeOuterHTML(b)
	}
}

// OuterHTML serializes the node and its descendants back to markup.
// Attributes keep the order they were set in.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeOuterHTML(&b)
	return b.String()
}

// InnerHTML serializes the children of the node.
// https://html.spec.whatwg.org/#serialising-html-fragments
func (n *Node) InnerHTML() string {
	var b strings.Builder
	n.writeInnerHTML(&b)
	return b.String()
}

// InnerText concatenates the text of every descendant text node.
func (n *Node) InnerText() string {
	if n.NodeType == TextNode {
		return n.Text.Data
	}
	var b strings.Builder
	for _, child := range n.ChildNodes {
		switch child.NodeType {
		case TextNode:
			b.WriteString(child.Text.Data)
		case ElementNode:
			b.WriteString(child.InnerText())
		}
	}
	return b.String()
}

package spec

import (
	"sort"
	"strings"
)

// NodeType values match the DOM's nodeType constants.
type NodeType uint16

const (
	ElementNode      NodeType = 1
	TextNode         NodeType = 3
	CommentNode      NodeType = 8
	DocumentTypeNode NodeType = 10
)

// NewDOMElement returns an element node with no attributes or children.
func NewDOMElement(name string, namespace Namespace) *Node {
	return &Node{
		NodeType: ElementNode,
		NodeName: name,
		Element: &Element{
			NamespaceURI: namespace,
			LocalName:    name,
			Attributes:   NewNamedNodeMap(),
		},
	}
}

func NewTextNode(text string) *Node {
	return &Node{
		NodeType: TextNode,
		NodeName: "#text",
		Text:     &Text{Data: text},
	}
}

// NewComment returns a comment node with its Data section filled.
func NewComment(data string) *Node {
	return &Node{
		NodeType: CommentNode,
		NodeName: "#comment",
		Comment:  &Comment{Data: data},
	}
}

func NewDocTypeNode(name, pub, sys string) *Node {
	return &Node{
		NodeType: DocumentTypeNode,
		NodeName: name,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: pub,
			SystemID: sys,
		},
	}
}

// Node is a single node of the tree. Children are owned through ChildNodes;
// ParentNode is a back reference only.
// https://dom.whatwg.org/#node
type Node struct {
	NodeType   NodeType
	NodeName   string
	ParentNode *Node
	ChildNodes NodeList

	// Node types
	*Element
	*Text
	*Comment
	*DocumentType
}

// AppendChild adds on as the last child of n.
// https://dom.whatwg.org/#concept-node-append
func (n *Node) AppendChild(on *Node) *Node {
	on.ParentNode = n
	n.ChildNodes = append(n.ChildNodes, on)
	return on
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch node.Element.NamespaceURI {
		case Svgns:
			e += "svg "
		case Mathmlns:
			e += "math "
		}
		e += node.NodeName + ">"
		if !node.HasAttributes() {
			return e
		}
		keys := node.Attributes.Names()
		sort.Strings(keys)
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		for _, name := range keys {
			value, _ := node.Attributes.GetNamedItem(name)
			e += "\n" + spaces + name + "=\"" + value + "\""
		}
		return e
	case TextNode:
		return "\"" + node.Text.Data + "\""
	case CommentNode:
		return "<!-- " + node.Comment.Data + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.DocumentType.Name
		if node.DocumentType.PublicID != "" || node.DocumentType.SystemID != "" {
			d += " \"" + node.DocumentType.PublicID + "\" \"" + node.DocumentType.SystemID + "\""
		}
		return d + ">"
	default:
		return ""
	}
}

func (node *Node) serialize(ident int) string {
	spaces := "| "
	for i := 1; i < ident; i++ {
		spaces += "  "
	}
	ser := spaces + serializeNodeType(node, ident+1) + "\n"
	for _, child := range node.ChildNodes {
		ser += child.serialize(ident + 1)
	}
	return ser
}

// String dumps the tree below node in the html5lib tree construction test
// format, one node per line with attributes sorted by name.
func (node *Node) String() string {
	return strings.TrimRight(node.serialize(1), "\n")
}

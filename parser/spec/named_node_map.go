package spec

// NamedNodeMap holds the attributes of an element. Names are unique; setting
// an existing name replaces its value and keeps its position.
// https://dom.spec.whatwg.org/#interface-namednodemap
type NamedNodeMap struct {
	Length int
	Attrs  map[string]string
	names  []string
}

func NewNamedNodeMap() *NamedNodeMap {
	return &NamedNodeMap{Attrs: map[string]string{}}
}

func (n *NamedNodeMap) GetNamedItem(qn string) (string, bool) {
	v, ok := n.Attrs[qn]
	return v, ok
}

func (n *NamedNodeMap) SetNamedItem(qn, value string) {
	if _, ok := n.Attrs[qn]; !ok {
		n.names = append(n.names, qn)
		n.Length++
	}
	n.Attrs[qn] = value
}

// Names returns a copy of the attribute names in insertion order.
func (n *NamedNodeMap) Names() []string {
	return append([]string(nil), n.names...)
}

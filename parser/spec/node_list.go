package spec

// https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

func (h *NodeList) Pop() *Node {
	if len(*h) == 0 {
		return nil
	}
	popped := (*h)[len(*h)-1]
	*h = (*h)[:len(*h)-1]
	return popped
}

// StackOfOpenElements tracks the elements that have been opened by a start
// tag and not yet closed by an end tag. The bottom entry is the root.
type StackOfOpenElements struct {
	NodeList
}

func (s *StackOfOpenElements) Push(n *Node) {
	s.NodeList = append(s.NodeList, n)
}

// CurrentNode returns the element on top of the stack, or nil when the stack
// is empty.
func (s *StackOfOpenElements) CurrentNode() *Node {
	if len(s.NodeList) == 0 {
		return nil
	}
	return s.NodeList[len(s.NodeList)-1]
}

package spec

// Comment is https://dom.spec.whatwg.org/#interface-comment
type Comment struct {
	Data string
}

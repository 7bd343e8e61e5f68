package spec

// https://dom.spec.whatwg.org/#text
type Text struct {
	Data string
}

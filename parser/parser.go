package parser

import (
	"github.com/pkg/errors"

	"github.com/heathj/htmllex/parser/spec"
)

// Parse tokenizes text and builds a tree from the tokens. Parse errors never
// stop tokenization and are returned alongside the tree; the error result is
// only set when the tokens can't be folded into a tree.
func Parse(text string, opts ...Option) (*spec.Node, []ParseError, error) {
	tokens, parseErrors := Tokenize(text, opts...)
	root, err := BuildTree(tokens, opts...)
	if err != nil {
		return nil, parseErrors, errors.Wrap(err, "building tree")
	}
	return root, parseErrors, nil
}

package parser

import (
	"fmt"
	"strconv"
)

// ParseErrorKind identifies one of the parse errors defined by the HTML
// tokenization algorithm.
// https://html.spec.whatwg.org/multipage/parsing.html#parse-errors
type ParseErrorKind uint

const (
	AbruptClosingOfEmptyComment ParseErrorKind = iota
	AbruptDoctypePublicIdentifier
	AbruptDoctypeSystemIdentifier
	AbsenceOfDigitsInNumericCharacterReference
	CDATAInHTMLContent
	CharacterReferenceOutsideUnicodeRange
	ControlCharacterInInputStream
	ControlCharacterReference
	DuplicateAttribute
	EndTagWithAttributes
	EndTagWithTrailingSolidus
	EOFBeforeTagName
	EOFInCDATA
	EOFInComment
	EOFInDoctype
	EOFInScriptHTMLCommentLikeText
	EOFInTag
	IncorrectlyClosedComment
	IncorrectlyOpenedComment
	InvalidCharacterSequenceAfterDoctypeName
	InvalidFirstCharacterOfTagName
	MissingAttributeValue
	MissingDoctypeName
	MissingDoctypePublicIdentifier
	MissingDoctypeSystemIdentifier
	MissingEndTagName
	MissingQuoteBeforeDoctypePublicIdentifier
	MissingQuoteBeforeDoctypeSystemIdentifier
	MissingSemicolonAfterCharacterReference
	MissingWhitespaceAfterDoctypePublicKeyword
	MissingWhitespaceAfterDoctypeSystemKeyword
	MissingWhitespaceBeforeDoctypeName
	MissingWhitespaceBetweenAttributes
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers
	NestedComment
	NoncharacterCharacterReference
	NoncharacterInInputStream
	NullCharacterReference
	SurrogateCharacterReference
	UnexpectedCharacterAfterDoctypeSystemIdentifier
	UnexpectedCharacterInAttributeName
	UnexpectedCharacterInUnquotedAttributeValue
	UnexpectedEqualsSignBeforeAttributeName
	UnexpectedNullCharacter
	UnexpectedQuestionMarkInsteadOfTagName
	UnexpectedSolidusInTag
	UnknownNamedCharacterReference
)

var parseErrorCodes = [...]string{
	AbruptClosingOfEmptyComment:                               "abrupt-closing-of-empty-comment",
	AbruptDoctypePublicIdentifier:                             "abrupt-doctype-public-identifier",
	AbruptDoctypeSystemIdentifier:                             "abrupt-doctype-system-identifier",
	AbsenceOfDigitsInNumericCharacterReference:                "absence-of-digits-in-numeric-character-reference",
	CDATAInHTMLContent:                                        "cdata-in-html-content",
	CharacterReferenceOutsideUnicodeRange:                     "character-reference-outside-unicode-range",
	ControlCharacterInInputStream:                             "control-character-in-input-stream",
	ControlCharacterReference:                                 "control-character-reference",
	DuplicateAttribute:                                        "duplicate-attribute",
	EndTagWithAttributes:                                      "end-tag-with-attributes",
	EndTagWithTrailingSolidus:                                 "end-tag-with-trailing-solidus",
	EOFBeforeTagName:                                          "eof-before-tag-name",
	EOFInCDATA:                                                "eof-in-cdata",
	EOFInComment:                                              "eof-in-comment",
	EOFInDoctype:                                              "eof-in-doctype",
	EOFInScriptHTMLCommentLikeText:                            "eof-in-script-html-comment-like-text",
	EOFInTag:                                                  "eof-in-tag",
	IncorrectlyClosedComment:                                  "incorrectly-closed-comment",
	IncorrectlyOpenedComment:                                  "incorrectly-opened-comment",
	InvalidCharacterSequenceAfterDoctypeName:                  "invalid-character-sequence-after-doctype-name",
	InvalidFirstCharacterOfTagName:                            "invalid-first-character-of-tag-name",
	MissingAttributeValue:                                     "missing-attribute-value",
	MissingDoctypeName:                                        "missing-doctype-name",
	MissingDoctypePublicIdentifier:                            "missing-doctype-public-identifier",
	MissingDoctypeSystemIdentifier:                            "missing-doctype-system-identifier",
	MissingEndTagName:                                         "missing-end-tag-name",
	MissingQuoteBeforeDoctypePublicIdentifier:                 "missing-quote-before-doctype-public-identifier",
	MissingQuoteBeforeDoctypeSystemIdentifier:                 "missing-quote-before-doctype-system-identifier",
	MissingSemicolonAfterCharacterReference:                   "missing-semicolon-after-character-reference",
	MissingWhitespaceAfterDoctypePublicKeyword:                "missing-whitespace-after-doctype-public-keyword",
	MissingWhitespaceAfterDoctypeSystemKeyword:                "missing-whitespace-after-doctype-system-keyword",
	MissingWhitespaceBeforeDoctypeName:                        "missing-whitespace-before-doctype-name",
	MissingWhitespaceBetweenAttributes:                        "missing-whitespace-between-attributes",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers: "missing-whitespace-between-doctype-public-and-system-identifiers",
	NestedComment:                                             "nested-comment",
	NoncharacterCharacterReference:                            "noncharacter-character-reference",
	NoncharacterInInputStream:                                 "noncharacter-in-input-stream",
	NullCharacterReference:                                    "null-character-reference",
	SurrogateCharacterReference:                               "surrogate-character-reference",
	UnexpectedCharacterAfterDoctypeSystemIdentifier:           "unexpected-character-after-doctype-system-identifier",
	UnexpectedCharacterInAttributeName:                        "unexpected-character-in-attribute-name",
	UnexpectedCharacterInUnquotedAttributeValue:               "unexpected-character-in-unquoted-attribute-value",
	UnexpectedEqualsSignBeforeAttributeName:                   "unexpected-equals-sign-before-attribute-name",
	UnexpectedNullCharacter:                                   "unexpected-null-character",
	UnexpectedQuestionMarkInsteadOfTagName:                    "unexpected-question-mark-instead-of-tag-name",
	UnexpectedSolidusInTag:                                    "unexpected-solidus-in-tag",
	UnknownNamedCharacterReference:                            "unknown-named-character-reference",
}

// String returns the error code used by the HTML standard.
func (k ParseErrorKind) String() string {
	if int(k) < len(parseErrorCodes) {
		return parseErrorCodes[k]
	}
	return "ParseErrorKind(" + strconv.FormatInt(int64(k), 10) + ")"
}

// ParseError records a recoverable tokenization error and the input offset,
// in characters, at which it was detected.
type ParseError struct {
	Kind     ParseErrorKind
	Position int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s at %d", e.Kind, e.Position)
}

// UnbalancedTagError is returned by the tree constructor when an end tag does
// not close the element that is currently open. Open is empty when only the
// document root was left on the stack.
type UnbalancedTagError struct {
	Open  string
	Close string
}

func (e *UnbalancedTagError) Error() string {
	if e.Open == "" {
		return fmt.Sprintf("unbalanced end tag %s: no element is open", e.Close)
	}
	return fmt.Sprintf("unbalanced end tag %s: %s is open", e.Close, e.Open)
}

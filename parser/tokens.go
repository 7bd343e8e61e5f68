package parser

import "strings"

//go:generate stringer -type=TokenType
type TokenType uint

const (
	TextToken TokenType = iota
	StartTagToken
	EndTagToken
	AttributeToken
	CommentToken
	DoctypeToken
)

// Token is a concrete token that has been assembled from the fragments the
// state machine emitted. Attribute tokens directly follow the start tag they
// belong to.
type Token struct {
	Type             TokenType
	Name             string // tag, attribute or doctype name
	Data             string // text, comment or attribute value
	PublicIdentifier string
	SystemIdentifier string
	ForceQuirks      bool
	SelfClosing      bool
}

func StartTag(name string) Token { return Token{Type: StartTagToken, Name: name} }
func EndTag(name string) Token   { return Token{Type: EndTagToken, Name: name} }
func Text(data string) Token     { return Token{Type: TextToken, Data: data} }
func Comment(data string) Token  { return Token{Type: CommentToken, Data: data} }

func Attribute(name, value string) Token {
	return Token{Type: AttributeToken, Name: name, Data: value}
}

func Doctype(name, publicID, systemID string, forceQuirks bool) Token {
	return Token{
		Type:             DoctypeToken,
		Name:             name,
		PublicIdentifier: publicID,
		SystemIdentifier: systemID,
		ForceQuirks:      forceQuirks,
	}
}

type fragmentType uint

const (
	tagOpenFragment fragmentType = iota
	tagNameCharFragment
	tagCloseFragment
	tagSelfCloseFragment
	endTagOpenFragment
	commentOpenFragment
	commentCharFragment
	commentCloseFragment
	attributeOpenFragment
	attributeNameCharFragment
	attributeValueCharFragment
	doctypeOpenFragment
	doctypeNameCharFragment
	doctypePublicIDCharFragment
	doctypeSystemIDCharFragment
	doctypeCloseFragment
	forceQuirksFragment
	charRefOpenFragment
	charRefMultiplyFragment
	charRefAddFragment
	charRefCloseFragment
	characterFragment
	endOfInputFragment
)

// fragment is a single emission of the state machine. r carries the character
// for the *Char fragments and n the base or digit for the character
// reference arithmetic.
type fragment struct {
	kind fragmentType
	r    rune
	n    int
}

func frag(kind fragmentType) fragment { return fragment{kind: kind} }

func charFrag(kind fragmentType, r rune) fragment { return fragment{kind: kind, r: r} }

type attributeBuilder struct {
	name, value strings.Builder
	committed   bool
	dropped     bool
}

type tokenBuilder struct {
	kind        TokenType
	name        strings.Builder
	data        strings.Builder
	publicID    strings.Builder
	systemID    strings.Builder
	selfClosing bool
	forceQuirks bool
	attributes  []*attributeBuilder
	tail        []rune
}

// TokenBuilder routes fragments into builders and keeps them in emission
// order until the end of input, when they are all assembled into tokens.
type TokenBuilder struct {
	builders []*tokenBuilder

	text, tag, comment, doctype *tokenBuilder
	attribute                   *attributeBuilder
	attributeNames              map[string]struct{}

	tempBuffer             []rune
	characterReferenceCode int

	tokens   []Token
	finished bool
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Emit routes each fragment to the builder it belongs to.
func (t *TokenBuilder) Emit(frags ...fragment) {
	for _, f := range frags {
		t.route(f)
	}
}

func (t *TokenBuilder) open(kind TokenType) *tokenBuilder {
	b := &tokenBuilder{kind: kind}
	t.builders = append(t.builders, b)
	t.text = nil
	return b
}

func (t *TokenBuilder) route(f fragment) {
	if t.finished {
		return
	}
	switch f.kind {
	case characterFragment:
		if t.text == nil {
			t.text = &tokenBuilder{kind: TextToken}
			t.builders = append(t.builders, t.text)
		}
		t.text.data.WriteRune(f.r)
		if len(t.text.tail) == textTailSize {
			t.text.tail = append(t.text.tail[:0], t.text.tail[1:]...)
		}
		t.text.tail = append(t.text.tail, f.r)
	case tagOpenFragment:
		t.tag = t.open(StartTagToken)
		t.attribute = nil
		t.attributeNames = map[string]struct{}{}
	case endTagOpenFragment:
		t.tag = t.open(EndTagToken)
		t.attribute = nil
		t.attributeNames = map[string]struct{}{}
	case tagNameCharFragment:
		if t.tag != nil {
			t.tag.name.WriteRune(f.r)
		}
	case tagSelfCloseFragment:
		if t.tag != nil {
			t.tag.selfClosing = true
		}
		t.tag, t.attribute = nil, nil
	case tagCloseFragment:
		t.tag, t.attribute = nil, nil
	case attributeOpenFragment:
		if t.tag != nil {
			t.attribute = &attributeBuilder{}
			t.tag.attributes = append(t.tag.attributes, t.attribute)
		}
	case attributeNameCharFragment:
		if t.attribute != nil {
			t.attribute.name.WriteRune(f.r)
		}
	case attributeValueCharFragment:
		if t.attribute != nil {
			t.attribute.value.WriteRune(f.r)
		}
	case commentOpenFragment:
		t.comment = t.open(CommentToken)
	case commentCharFragment:
		if t.comment != nil {
			t.comment.data.WriteRune(f.r)
		}
	case commentCloseFragment:
		t.comment = nil
	case doctypeOpenFragment:
		t.doctype = t.open(DoctypeToken)
	case doctypeNameCharFragment:
		if t.doctype != nil {
			t.doctype.name.WriteRune(f.r)
		}
	case doctypePublicIDCharFragment:
		if t.doctype != nil {
			t.doctype.publicID.WriteRune(f.r)
		}
	case doctypeSystemIDCharFragment:
		if t.doctype != nil {
			t.doctype.systemID.WriteRune(f.r)
		}
	case forceQuirksFragment:
		if t.doctype != nil {
			t.doctype.forceQuirks = true
		}
	case doctypeCloseFragment:
		t.doctype = nil
	case charRefOpenFragment:
		t.characterReferenceCode = 0
	case charRefMultiplyFragment:
		t.characterReferenceCode = clampCharRef(t.characterReferenceCode * f.n)
	case charRefAddFragment:
		t.characterReferenceCode = clampCharRef(t.characterReferenceCode + f.n)
	case charRefCloseFragment:
	case endOfInputFragment:
		t.finish()
	}
}

// clampCharRef keeps the accumulator just above the Unicode range so long
// runs of digits can't overflow it.
func clampCharRef(code int) int {
	if code > 0x10FFFF {
		return 0x110000
	}
	return code
}

func (t *TokenBuilder) finish() {
	t.text, t.tag, t.comment, t.doctype, t.attribute = nil, nil, nil, nil, nil
	for _, b := range t.builders {
		t.tokens = append(t.tokens, b.assemble()...)
	}
	t.builders = nil
	t.finished = true
}

func (b *tokenBuilder) assemble() []Token {
	switch b.kind {
	case StartTagToken:
		tokens := []Token{{Type: StartTagToken, Name: b.name.String(), SelfClosing: b.selfClosing}}
		for _, a := range b.attributes {
			if a.dropped {
				continue
			}
			tokens = append(tokens, Attribute(a.name.String(), a.value.String()))
		}
		return tokens
	case EndTagToken:
		// end tags never carry attributes or the self-closing flag
		return []Token{EndTag(b.name.String())}
	case CommentToken:
		return []Token{Comment(b.data.String())}
	case DoctypeToken:
		return []Token{Doctype(b.name.String(), b.publicID.String(), b.systemID.String(), b.forceQuirks)}
	default:
		return []Token{Text(b.data.String())}
	}
}

// Tokens returns the assembled tokens. It is empty until the end of input
// fragment has been routed.
func (t *TokenBuilder) Tokens() []Token {
	return t.tokens
}

// CommitAttributeName finishes the name of the current attribute. It reports
// true when the tag already has an attribute with that name, in which case
// the new attribute is dropped.
func (t *TokenBuilder) CommitAttributeName() bool {
	if t.attribute == nil || t.attribute.committed {
		return false
	}
	t.attribute.committed = true
	name := t.attribute.name.String()
	if _, ok := t.attributeNames[name]; ok {
		t.attribute.dropped = true
		return true
	}
	t.attributeNames[name] = struct{}{}
	return false
}

func (t *TokenBuilder) CurrentTagName() string {
	if t.tag == nil {
		return ""
	}
	return t.tag.name.String()
}

func (t *TokenBuilder) CurrentTagIsEnd() bool {
	return t.tag != nil && t.tag.kind == EndTagToken
}

func (t *TokenBuilder) CurrentTagHasAttributes() bool {
	return t.tag != nil && len(t.tag.attributes) > 0
}

// textTailSize is how many trailing characters of a text run are kept for
// TextEndsWith.
const textTailSize = 3

// TextEndsWith reports whether the text run currently being built ends with
// suffix, which can be at most textTailSize characters long.
func (t *TokenBuilder) TextEndsWith(suffix string) bool {
	if t.text == nil {
		return false
	}
	want := []rune(suffix)
	if len(want) > len(t.text.tail) {
		return false
	}
	return string(t.text.tail[len(t.text.tail)-len(want):]) == suffix
}

// TextTail returns up to textTailSize trailing characters of the text run
// currently being built.
func (t *TokenBuilder) TextTail() []rune {
	if t.text == nil {
		return nil
	}
	return t.text.tail
}

// ResetTempBuffer begins a new temporary buffer. Anything read from the
// previous one is invalid afterwards.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer = t.tempBuffer[:0]
}

func (t *TokenBuilder) WriteTempBuffer(r ...rune) {
	t.tempBuffer = append(t.tempBuffer, r...)
}

func (t *TokenBuilder) TempBuffer() []rune {
	return t.tempBuffer
}

func (t *TokenBuilder) GetCharRef() int {
	return t.characterReferenceCode
}

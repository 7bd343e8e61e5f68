package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/atom"
)

// HTMLTokenizer holds state for the various state of the tokenizer.
// A tokenizer reads its input once; use a new one for every document.
type HTMLTokenizer struct {
	done                      bool
	returnState, currentState tokenizerState
	input                     *inputStream
	tokenBuilder              *TokenBuilder
	lastEmittedStartTagName   string
	// open svg and math elements; the tokenizer doesn't switch content
	// models inside them and allows CDATA sections.
	foreignContent []string
	errors         []ParseError
	checkedUpTo    int
	log            *logrus.Entry
}

// NewHTMLTokenizer creates an HTML tokenizer that can be used to process
// an HTML string.
func NewHTMLTokenizer(text string, opts ...Option) *HTMLTokenizer {
	c := newHTMLParserConfig(opts)
	p := &HTMLTokenizer{
		input:        newInputStream(text),
		tokenBuilder: newTokenBuilder(),
		log:          c.logger.WithField("component", "tokenizer"),
	}
	if c.context != "" {
		name := strings.ToLower(c.context)
		p.lastEmittedStartTagName = name
		p.currentState = p.contentModelFor(name)
	}
	return p
}

// Tokenize converts text into tokens. Parse errors never stop tokenization;
// they are returned in the order they were found.
func Tokenize(text string, opts ...Option) ([]Token, []ParseError) {
	return NewHTMLTokenizer(text, opts...).Tokenize()
}

// Tokenize runs the state machine until the end of the input and returns the
// assembled tokens along with every parse error found on the way.
func (p *HTMLTokenizer) Tokenize() ([]Token, []ParseError) {
	for !p.done {
		p.processRune(p.input.Consume())
	}
	return p.tokenBuilder.Tokens(), p.errors
}

func (p *HTMLTokenizer) processRune(r rune) {
	p.checkInputStream(r)
	eof := r == eofRune
	reconsume := true
	for reconsume {
		reconsume, p.currentState = p.stateToParser(p.currentState)(r, eof)
		if p.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
			p.log.Tracef("[TOKEN]rune: %q, mode: %s", r, p.currentState)
		}
	}
}

// checkInputStream reports control characters and noncharacters in the input
// the first time they are consumed.
// https://html.spec.whatwg.org/multipage/parsing.html#preprocessing-the-input-stream
func (p *HTMLTokenizer) checkInputStream(r rune) {
	pos := p.input.Position()
	if r == eofRune || pos < p.checkedUpTo {
		return
	}
	p.checkedUpTo = pos + 1
	code := int(r)
	switch {
	case isNonCharacter(code):
		p.parseError(NoncharacterInInputStream)
	case isControl(code) && !isASCIIWhitespace(code) && code != 0:
		p.parseError(ControlCharacterInInputStream)
	}
}

func (p *HTMLTokenizer) parseError(kind ParseErrorKind) {
	e := ParseError{Kind: kind, Position: p.input.Position()}
	p.errors = append(p.errors, e)
	p.log.WithFields(logrus.Fields{
		"kind":     kind.String(),
		"position": e.Position,
	}).Debug("parse error")
}

func (p *HTMLTokenizer) emit(frags ...fragment) {
	for _, f := range frags {
		if f.kind == endOfInputFragment {
			p.done = true
		}
	}
	p.tokenBuilder.Emit(frags...)
}

func (p *HTMLTokenizer) emitCharacters(rs ...rune) {
	for _, r := range rs {
		p.emit(charFrag(characterFragment, r))
	}
}

func (p *HTMLTokenizer) emitEndOfInput() (bool, tokenizerState) {
	p.emit(frag(endOfInputFragment))
	return false, dataState
}

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case dataLessThanSignWorkaroundState:
		return p.dataLessThanSignWorkaroundStateParser
	case rcDataState:
		return p.rcDataStateParser
	case rawTextState:
		return p.rawTextStateParser
	case scriptDataState:
		return p.scriptDataStateParser
	case plaintextState:
		return p.plaintextStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case rcDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentLessThanSignState:
		return p.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return p.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return p.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return p.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case commentEndBangState:
		return p.commentEndBangStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case cdataSectionState:
		return p.cdataSectionStateParser
	case cdataSectionBracketState:
		return p.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return p.cdataSectionEndStateParser
	case characterReferenceState:
		return p.characterReferenceStateParser
	case namedCharacterReferenceState:
		return p.namedCharacterReferenceStateParser
	case ambiguousAmpersandState:
		return p.ambiguousAmpersandStateParser
	case numericCharacterReferenceState:
		return p.numericCharacterReferenceStateParser
	case hexadecimalCharacterReferenceStartState:
		return p.hexadecimalCharacterReferenceStartStateParser
	case decimalCharacterReferenceStartState:
		return p.decimalCharacterReferenceStartStateParser
	case hexadecimalCharacterReferenceState:
		return p.hexadecimalCharacterReferenceStateParser
	case decimalCharacterReferenceState:
		return p.decimalCharacterReferenceStateParser
	case numericCharacterReferenceEndState:
		return p.numericCharacterReferenceEndStateParser
	}

	return p.dataStateParser
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	// the last two code points of every plane
	return code >= 0 && code <= 0x10FFFF && code&0xFFFE == 0xFFFE
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

func isASCIIUpperAlpha(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILowerAlpha(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIAlpha(r rune) bool      { return isASCIIUpperAlpha(r) || isASCIILowerAlpha(r) }
func isASCIIDigit(r rune) bool      { return r >= '0' && r <= '9' }

func isASCIIAlphanumeric(r rune) bool { return isASCIIAlpha(r) || isASCIIDigit(r) }

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isTagWhitespace matches tab, line feed, form feed and space. Carriage
// returns never reach the state machine.
func isTagWhitespace(r rune) bool {
	switch r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return true
	}
	return false
}

func wasConsumedByAttribute(returnState tokenizerState) bool {
	switch returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

func (p *HTMLTokenizer) emitCharacterReferenceOutput(r rune) {
	if wasConsumedByAttribute(p.returnState) {
		p.emit(charFrag(attributeValueCharFragment, r))
	} else {
		p.emit(charFrag(characterFragment, r))
	}
}

func (p *HTMLTokenizer) flushCodePointsAsCharacterReference() {
	for _, r := range p.tokenBuilder.TempBuffer() {
		p.emitCharacterReferenceOutput(r)
	}
}

// isApprEndTagToken compares the end tag name collected in the temporary
// buffer with the last start tag that was emitted.
func (p *HTMLTokenizer) isApprEndTagToken() bool {
	return p.lastEmittedStartTagName != "" &&
		strings.ToLower(string(p.tokenBuilder.TempBuffer())) == p.lastEmittedStartTagName
}

// openPendingEndTag emits the end tag that was collected in the temporary
// buffer while its name was still in doubt.
func (p *HTMLTokenizer) openPendingEndTag() {
	p.emit(frag(endTagOpenFragment))
	for _, r := range p.tokenBuilder.TempBuffer() {
		p.emit(charFrag(tagNameCharFragment, toASCIILower(r)))
	}
}

// contentModelFor returns the state to continue in after a start tag named
// name has been emitted.
func (p *HTMLTokenizer) contentModelFor(name string) tokenizerState {
	if len(p.foreignContent) > 0 {
		return dataState
	}
	switch atom.Lookup([]byte(name)) {
	case atom.Title, atom.Textarea:
		return rcDataState
	case atom.Style, atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes:
		return rawTextState
	case atom.Script:
		return scriptDataState
	case atom.Plaintext:
		return plaintextState
	default:
		return dataState
	}
}

func (p *HTMLTokenizer) emitCurrentTag(selfClosing bool) tokenizerState {
	name := p.tokenBuilder.CurrentTagName()
	if p.tokenBuilder.CurrentTagIsEnd() {
		if p.tokenBuilder.CurrentTagHasAttributes() {
			p.parseError(EndTagWithAttributes)
		}
		if selfClosing {
			p.parseError(EndTagWithTrailingSolidus)
		}
		p.emit(frag(tagCloseFragment))
		if n := len(p.foreignContent); n > 0 && p.foreignContent[n-1] == name {
			p.foreignContent = p.foreignContent[:n-1]
		}
		return dataState
	}

	if selfClosing {
		p.emit(frag(tagSelfCloseFragment))
	} else {
		p.emit(frag(tagCloseFragment))
	}
	p.lastEmittedStartTagName = name
	next := p.contentModelFor(name)
	switch atom.Lookup([]byte(name)) {
	case atom.Svg, atom.Math:
		if !selfClosing {
			p.foreignContent = append(p.foreignContent, name)
		}
	}
	return next
}

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEndOfInput()
	}
	switch r {
	case '&':
		p.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, dataLessThanSignWorkaroundState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
		return false, dataState
	default:
		p.emitCharacters(r)
		return false, dataState
	}
}

// dataLessThanSignWorkaroundStateParser is not part of the HTML standard.
// Real-world pages put unescaped markup inside text that looks like an
// attribute assignment (`value="<b>`); a `<` directly after an attribute
// name character followed by `="` or `='` that doesn't start an end tag is
// kept as text instead of opening a tag.
func (p *HTMLTokenizer) dataLessThanSignWorkaroundStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r != '/' && p.followsAttributeLikeText() {
		p.emitCharacters('<')
		return true, dataState
	}
	return true, tagOpenState
}

func (p *HTMLTokenizer) followsAttributeLikeText() bool {
	if !p.tokenBuilder.TextEndsWith(`="`) && !p.tokenBuilder.TextEndsWith(`='`) {
		return false
	}
	tail := p.tokenBuilder.TextTail()
	return len(tail) == 3 && isAttributeNameChar(tail[0])
}

func isAttributeNameChar(r rune) bool {
	return isASCIIAlphanumeric(r) || r == '-' || r == '_' || r == ':'
}

func (p *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEndOfInput()
	}
	switch r {
	case '&':
		p.returnState = rcDataState
		return false, characterReferenceState
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
		return false, rcDataState
	default:
		p.emitCharacters(r)
		return false, rcDataState
	}
}

func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.rawContentCase(r, eof, rawTextState, rawTextLessThanSignState)
}

func (p *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.rawContentCase(r, eof, scriptDataState, scriptDataLessThanSignState)
}

// rawContentCase is shared by the RAWTEXT and script data states, which
// differ only in where a '<' leads.
func (p *HTMLTokenizer) rawContentCase(r rune, eof bool, self, lessThanSign tokenizerState) (bool, tokenizerState) {
	if eof {
		return p.emitEndOfInput()
	}
	switch r {
	case '<':
		return false, lessThanSign
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
		return false, self
	default:
		p.emitCharacters(r)
		return false, self
	}
}

func (p *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.emitEndOfInput()
	}
	switch r {
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
	default:
		p.emitCharacters(r)
	}
	return false, plaintextState
}

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(EOFBeforeTagName)
		p.emitCharacters('<')
		return p.emitEndOfInput()
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		p.emit(frag(tagOpenFragment))
		return true, tagNameState
	case r == '?':
		p.parseError(UnexpectedQuestionMarkInsteadOfTagName)
		p.emit(frag(commentOpenFragment))
		return true, bogusCommentState
	default:
		p.parseError(InvalidFirstCharacterOfTagName)
		p.emitCharacters('<')
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(EOFBeforeTagName)
		p.emitCharacters('<', '/')
		return p.emitEndOfInput()
	}
	switch {
	case isASCIIAlpha(r):
		p.emit(frag(endTagOpenFragment))
		return true, tagNameState
	case r == '>':
		p.parseError(MissingEndTagName)
		return false, dataState
	default:
		p.parseError(InvalidFirstCharacterOfTagName)
		p.emit(frag(commentOpenFragment))
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) eofInTag() (bool, tokenizerState) {
	p.parseError(EOFInTag)
	return p.emitEndOfInput()
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInTag()
	}
	switch {
	case isTagWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag(false)
	case isASCIIUpperAlpha(r):
		p.emit(charFrag(tagNameCharFragment, toASCIILower(r)))
	case r == '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(charFrag(tagNameCharFragment, '\uFFFD'))
	default:
		p.emit(charFrag(tagNameCharFragment, r))
	}
	return false, tagNameState
}

// lessThanSignCase handles the RCDATA and RAWTEXT less-than sign states.
func (p *HTMLTokenizer) lessThanSignCase(r rune, eof bool, content, endTagOpen tokenizerState) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, endTagOpen
	}
	p.emitCharacters('<')
	return true, content
}

// endTagOpenCase handles the end tag open states of every raw content model.
func (p *HTMLTokenizer) endTagOpenCase(r rune, eof bool, content, endTagName tokenizerState) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		return true, endTagName
	}
	p.emitCharacters('<', '/')
	return true, content
}

// endTagNameCase handles the end tag name states of every raw content model.
// The name is kept in the temporary buffer and only turned into an end tag
// once it is known to close the element the content belongs to; otherwise
// "</" and the buffer are replayed as text.
func (p *HTMLTokenizer) endTagNameCase(r rune, eof bool, content, self tokenizerState) (bool, tokenizerState) {
	if !eof {
		switch {
		case isTagWhitespace(r) && p.isApprEndTagToken():
			p.openPendingEndTag()
			return false, beforeAttributeNameState
		case r == '/' && p.isApprEndTagToken():
			p.openPendingEndTag()
			return false, selfClosingStartTagState
		case r == '>' && p.isApprEndTagToken():
			p.openPendingEndTag()
			return false, p.emitCurrentTag(false)
		case isASCIIAlpha(r):
			p.tokenBuilder.WriteTempBuffer(r)
			return false, self
		}
	}
	p.emitCharacters('<', '/')
	p.emitCharacters(p.tokenBuilder.TempBuffer()...)
	return true, content
}

func (p *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.lessThanSignCase(r, eof, rcDataState, rcDataEndTagOpenState)
}

func (p *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagOpenCase(r, eof, rcDataState, rcDataEndTagNameState)
}

func (p *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagNameCase(r, eof, rcDataState, rcDataEndTagNameState)
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.lessThanSignCase(r, eof, rawTextState, rawTextEndTagOpenState)
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagOpenCase(r, eof, rawTextState, rawTextEndTagNameState)
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagNameCase(r, eof, rawTextState, rawTextEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '/':
			p.tokenBuilder.ResetTempBuffer()
			return false, scriptDataEndTagOpenState
		case '!':
			p.emitCharacters('<', '!')
			return false, scriptDataEscapeStartState
		}
	}
	p.emitCharacters('<')
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagOpenCase(r, eof, scriptDataState, scriptDataEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagNameCase(r, eof, scriptDataState, scriptDataEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitCharacters('-')
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitCharacters('-')
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) eofInScriptComment() (bool, tokenizerState) {
	p.parseError(EOFInScriptHTMLCommentLikeText)
	return p.emitEndOfInput()
}

func (p *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScriptComment()
	}
	switch r {
	case '-':
		p.emitCharacters('-')
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
	default:
		p.emitCharacters(r)
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScriptComment()
	}
	switch r {
	case '-':
		p.emitCharacters('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
	default:
		p.emitCharacters(r)
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScriptComment()
	}
	switch r {
	case '-':
		p.emitCharacters('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		p.emitCharacters('>')
		return false, scriptDataState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
	default:
		p.emitCharacters(r)
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == '/':
		p.tokenBuilder.ResetTempBuffer()
		return false, scriptDataEscapedEndTagOpenState
	case !eof && isASCIIAlpha(r):
		p.tokenBuilder.ResetTempBuffer()
		p.emitCharacters('<')
		return true, scriptDataDoubleEscapeStartState
	default:
		p.emitCharacters('<')
		return true, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagOpenCase(r, eof, scriptDataEscapedState, scriptDataEscapedEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagNameCase(r, eof, scriptDataEscapedState, scriptDataEscapedEndTagNameState)
}

// doubleEscapeCase drives the double escape start and end states: a script
// tag name seen inside an escaped section toggles between matched and
// unmatched, everything else falls back to fallback.
func (p *HTMLTokenizer) doubleEscapeCase(r rune, eof bool, self, matched, unmatched, fallback tokenizerState) (bool, tokenizerState) {
	switch {
	case eof:
		return true, fallback
	case isTagWhitespace(r) || r == '/' || r == '>':
		p.emitCharacters(r)
		if string(p.tokenBuilder.TempBuffer()) == "script" {
			return false, matched
		}
		return false, unmatched
	case isASCIIAlpha(r):
		p.tokenBuilder.WriteTempBuffer(toASCIILower(r))
		p.emitCharacters(r)
		return false, self
	default:
		return true, fallback
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doubleEscapeCase(r, eof, scriptDataDoubleEscapeStartState,
		scriptDataDoubleEscapedState, scriptDataEscapedState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScriptComment()
	}
	switch r {
	case '-':
		p.emitCharacters('-')
		return false, scriptDataDoubleEscapedDashState
	case '<':
		p.emitCharacters('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
	default:
		p.emitCharacters(r)
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScriptComment()
	}
	switch r {
	case '-':
		p.emitCharacters('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitCharacters('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
	default:
		p.emitCharacters(r)
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInScriptComment()
	}
	switch r {
	case '-':
		p.emitCharacters('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitCharacters('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		p.emitCharacters('>')
		return false, scriptDataState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitCharacters('\uFFFD')
	default:
		p.emitCharacters(r)
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.emitCharacters('/')
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doubleEscapeCase(r, eof, scriptDataDoubleEscapeEndState,
		scriptDataEscapedState, scriptDataDoubleEscapedState, scriptDataDoubleEscapedState)
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof || r == '/' || r == '>':
		return true, afterAttributeNameState
	case isTagWhitespace(r):
		return false, beforeAttributeNameState
	case r == '=':
		p.parseError(UnexpectedEqualsSignBeforeAttributeName)
		p.emit(frag(attributeOpenFragment), charFrag(attributeNameCharFragment, r))
		return false, attributeNameState
	default:
		p.emit(frag(attributeOpenFragment))
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) commitAttributeName() {
	if p.tokenBuilder.CommitAttributeName() {
		p.parseError(DuplicateAttribute)
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof || isTagWhitespace(r) || r == '/' || r == '>':
		p.commitAttributeName()
		return true, afterAttributeNameState
	case r == '=':
		p.commitAttributeName()
		return false, beforeAttributeValueState
	case isASCIIUpperAlpha(r):
		p.emit(charFrag(attributeNameCharFragment, toASCIILower(r)))
	case r == '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(charFrag(attributeNameCharFragment, '\uFFFD'))
	case r == '"' || r == '\'' || r == '<':
		p.parseError(UnexpectedCharacterInAttributeName)
		p.emit(charFrag(attributeNameCharFragment, r))
	default:
		p.emit(charFrag(attributeNameCharFragment, r))
	}
	return false, attributeNameState
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInTag()
	}
	switch {
	case isTagWhitespace(r):
		return false, afterAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		return false, p.emitCurrentTag(false)
	default:
		p.emit(frag(attributeOpenFragment))
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return true, attributeValueUnquotedState
	case isTagWhitespace(r):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		p.parseError(MissingAttributeValue)
		return false, p.emitCurrentTag(false)
	default:
		return true, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) attributeValueQuotedCase(r rune, eof bool, quote rune, self tokenizerState) (bool, tokenizerState) {
	if eof {
		return p.eofInTag()
	}
	switch r {
	case quote:
		return false, afterAttributeValueQuotedState
	case '&':
		p.returnState = self
		return false, characterReferenceState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(charFrag(attributeValueCharFragment, '\uFFFD'))
	default:
		p.emit(charFrag(attributeValueCharFragment, r))
	}
	return false, self
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.attributeValueQuotedCase(r, eof, '"', attributeValueDoubleQuotedState)
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.attributeValueQuotedCase(r, eof, '\'', attributeValueSingleQuotedState)
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInTag()
	}
	switch {
	case isTagWhitespace(r):
		return false, beforeAttributeNameState
	case r == '&':
		p.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case r == '>':
		return false, p.emitCurrentTag(false)
	case r == '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(charFrag(attributeValueCharFragment, '\uFFFD'))
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		p.parseError(UnexpectedCharacterInUnquotedAttributeValue)
		p.emit(charFrag(attributeValueCharFragment, r))
	default:
		p.emit(charFrag(attributeValueCharFragment, r))
	}
	return false, attributeValueUnquotedState
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInTag()
	}
	switch {
	case isTagWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag(false)
	default:
		p.parseError(MissingWhitespaceBetweenAttributes)
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInTag()
	}
	if r == '>' {
		return false, p.emitCurrentTag(true)
	}
	p.parseError(UnexpectedSolidusInTag)
	return true, beforeAttributeNameState
}

func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(frag(commentCloseFragment))
		return p.emitEndOfInput()
	}
	switch r {
	case '>':
		p.emit(frag(commentCloseFragment))
		return false, dataState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(charFrag(commentCharFragment, '\uFFFD'))
	default:
		p.emit(charFrag(commentCharFragment, r))
	}
	return false, bogusCommentState
}

func (p *HTMLTokenizer) emitCommentCharacters(s string) {
	for _, r := range s {
		p.emit(charFrag(commentCharFragment, r))
	}
}

// markupDeclarationOpenStateParser looks past the character after "<!" for
// "--", "DOCTYPE" or "[CDATA[".
func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
	case r == '-' && p.input.IsFollowedBy("-", false):
		p.input.ConsumeN(1)
		p.emit(frag(commentOpenFragment))
		return false, commentStartState
	case (r == 'D' || r == 'd') && p.input.IsFollowedBy("OCTYPE", true):
		p.input.ConsumeN(len("OCTYPE"))
		return false, doctypeState
	case r == '[' && p.input.IsFollowedBy("CDATA[", false):
		p.input.ConsumeN(len("CDATA["))
		if len(p.foreignContent) > 0 {
			return false, cdataSectionState
		}
		p.parseError(CDATAInHTMLContent)
		p.emit(frag(commentOpenFragment))
		p.emitCommentCharacters("[CDATA[")
		return false, bogusCommentState
	}
	p.parseError(IncorrectlyOpenedComment)
	p.emit(frag(commentOpenFragment))
	return true, bogusCommentState
}

func (p *HTMLTokenizer) eofInComment() (bool, tokenizerState) {
	p.parseError(EOFInComment)
	p.emit(frag(commentCloseFragment))
	return p.emitEndOfInput()
}

func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == '-':
		return false, commentStartDashState
	case !eof && r == '>':
		p.parseError(AbruptClosingOfEmptyComment)
		p.emit(frag(commentCloseFragment))
		return false, dataState
	default:
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		p.parseError(AbruptClosingOfEmptyComment)
		p.emit(frag(commentCloseFragment))
		return false, dataState
	default:
		p.emitCommentCharacters("-")
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	switch r {
	case '<':
		p.emitCommentCharacters("<")
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(charFrag(commentCharFragment, '\uFFFD'))
	default:
		p.emit(charFrag(commentCharFragment, r))
	}
	return false, commentState
}

func (p *HTMLTokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == '!':
		p.emitCommentCharacters("!")
		return false, commentLessThanSignBangState
	case !eof && r == '<':
		p.emitCommentCharacters("<")
		return false, commentLessThanSignState
	default:
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r != '>' {
		p.parseError(NestedComment)
	}
	return true, commentEndState
}

func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	if r == '-' {
		return false, commentEndState
	}
	p.emitCommentCharacters("-")
	return true, commentState
}

func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	switch r {
	case '>':
		p.emit(frag(commentCloseFragment))
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		p.emitCommentCharacters("-")
		return false, commentEndState
	default:
		p.emitCommentCharacters("--")
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	switch r {
	case '-':
		p.emitCommentCharacters("--!")
		return false, commentEndDashState
	case '>':
		p.parseError(IncorrectlyClosedComment)
		p.emit(frag(commentCloseFragment))
		return false, dataState
	default:
		p.emitCommentCharacters("--!")
		return true, commentState
	}
}

// eofInDoctype closes the current DOCTYPE in quirks mode at the end of input.
// open is set when no DOCTYPE token has been started yet.
func (p *HTMLTokenizer) eofInDoctype(open bool) (bool, tokenizerState) {
	p.parseError(EOFInDoctype)
	if open {
		p.emit(frag(doctypeOpenFragment))
	}
	p.emit(frag(forceQuirksFragment), frag(doctypeCloseFragment))
	return p.emitEndOfInput()
}

func (p *HTMLTokenizer) closeDoctype(forceQuirks bool) (bool, tokenizerState) {
	if forceQuirks {
		p.emit(frag(forceQuirksFragment))
	}
	p.emit(frag(doctypeCloseFragment))
	return false, dataState
}

func (p *HTMLTokenizer) toBogusDoctype(kind ParseErrorKind, forceQuirks bool) (bool, tokenizerState) {
	p.parseError(kind)
	if forceQuirks {
		p.emit(frag(forceQuirksFragment))
	}
	return true, bogusDoctypeState
}

func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(true)
	case isTagWhitespace(r):
		return false, beforeDoctypeNameState
	case r == '>':
		return true, beforeDoctypeNameState
	default:
		p.parseError(MissingWhitespaceBeforeDoctypeName)
		return true, beforeDoctypeNameState
	}
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(true)
	case isTagWhitespace(r):
		return false, beforeDoctypeNameState
	case isASCIIUpperAlpha(r):
		p.emit(frag(doctypeOpenFragment), charFrag(doctypeNameCharFragment, toASCIILower(r)))
	case r == '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(frag(doctypeOpenFragment), charFrag(doctypeNameCharFragment, '\uFFFD'))
	case r == '>':
		p.parseError(MissingDoctypeName)
		p.emit(frag(doctypeOpenFragment))
		return p.closeDoctype(true)
	default:
		p.emit(frag(doctypeOpenFragment), charFrag(doctypeNameCharFragment, r))
	}
	return false, doctypeNameState
}

func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(false)
	case isTagWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return p.closeDoctype(false)
	case isASCIIUpperAlpha(r):
		p.emit(charFrag(doctypeNameCharFragment, toASCIILower(r)))
	case r == '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(charFrag(doctypeNameCharFragment, '\uFFFD'))
	default:
		p.emit(charFrag(doctypeNameCharFragment, r))
	}
	return false, doctypeNameState
}

func (p *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(false)
	case isTagWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return p.closeDoctype(false)
	case (r == 'P' || r == 'p') && p.input.IsFollowedBy("UBLIC", true):
		p.input.ConsumeN(len("UBLIC"))
		return false, afterDoctypePublicKeywordState
	case (r == 'S' || r == 's') && p.input.IsFollowedBy("YSTEM", true):
		p.input.ConsumeN(len("YSTEM"))
		return false, afterDoctypeSystemKeywordState
	default:
		return p.toBogusDoctype(InvalidCharacterSequenceAfterDoctypeName, true)
	}
}

// afterDoctypeKeywordCase handles the states after the PUBLIC and SYSTEM
// keywords, which only differ in the identifier they lead to.
func (p *HTMLTokenizer) afterDoctypeKeywordCase(r rune, eof bool, beforeIdentifier, doubleQuoted, singleQuoted tokenizerState, missingWhitespace, missingIdentifier, missingQuote ParseErrorKind) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(false)
	case isTagWhitespace(r):
		return false, beforeIdentifier
	case r == '"':
		p.parseError(missingWhitespace)
		return false, doubleQuoted
	case r == '\'':
		p.parseError(missingWhitespace)
		return false, singleQuoted
	case r == '>':
		p.parseError(missingIdentifier)
		return p.closeDoctype(true)
	default:
		return p.toBogusDoctype(missingQuote, true)
	}
}

func (p *HTMLTokenizer) beforeDoctypeIdentifierCase(r rune, eof bool, self, doubleQuoted, singleQuoted tokenizerState, missingIdentifier, missingQuote ParseErrorKind) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(false)
	case isTagWhitespace(r):
		return false, self
	case r == '"':
		return false, doubleQuoted
	case r == '\'':
		return false, singleQuoted
	case r == '>':
		p.parseError(missingIdentifier)
		return p.closeDoctype(true)
	default:
		return p.toBogusDoctype(missingQuote, true)
	}
}

func (p *HTMLTokenizer) doctypeIdentifierCase(r rune, eof bool, quote rune, self, after tokenizerState, kind fragmentType, abrupt ParseErrorKind) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype(false)
	}
	switch r {
	case quote:
		return false, after
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emit(charFrag(kind, '\uFFFD'))
	case '>':
		p.parseError(abrupt)
		return p.closeDoctype(true)
	default:
		p.emit(charFrag(kind, r))
	}
	return false, self
}

func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.afterDoctypeKeywordCase(r, eof, beforeDoctypePublicIdentifierState,
		doctypePublicIdentifierDoubleQuotedState, doctypePublicIdentifierSingleQuotedState,
		MissingWhitespaceAfterDoctypePublicKeyword, MissingDoctypePublicIdentifier, MissingQuoteBeforeDoctypePublicIdentifier)
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.beforeDoctypeIdentifierCase(r, eof, beforeDoctypePublicIdentifierState,
		doctypePublicIdentifierDoubleQuotedState, doctypePublicIdentifierSingleQuotedState,
		MissingDoctypePublicIdentifier, MissingQuoteBeforeDoctypePublicIdentifier)
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifierCase(r, eof, '"', doctypePublicIdentifierDoubleQuotedState,
		afterDoctypePublicIdentifierState, doctypePublicIDCharFragment, AbruptDoctypePublicIdentifier)
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifierCase(r, eof, '\'', doctypePublicIdentifierSingleQuotedState,
		afterDoctypePublicIdentifierState, doctypePublicIDCharFragment, AbruptDoctypePublicIdentifier)
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(false)
	case isTagWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		return p.closeDoctype(false)
	case r == '"':
		p.parseError(MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.parseError(MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		return p.toBogusDoctype(MissingQuoteBeforeDoctypeSystemIdentifier, true)
	}
}

func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(false)
	case isTagWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		return p.closeDoctype(false)
	case r == '"':
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		return p.toBogusDoctype(MissingQuoteBeforeDoctypeSystemIdentifier, true)
	}
}

func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.afterDoctypeKeywordCase(r, eof, beforeDoctypeSystemIdentifierState,
		doctypeSystemIdentifierDoubleQuotedState, doctypeSystemIdentifierSingleQuotedState,
		MissingWhitespaceAfterDoctypeSystemKeyword, MissingDoctypeSystemIdentifier, MissingQuoteBeforeDoctypeSystemIdentifier)
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.beforeDoctypeIdentifierCase(r, eof, beforeDoctypeSystemIdentifierState,
		doctypeSystemIdentifierDoubleQuotedState, doctypeSystemIdentifierSingleQuotedState,
		MissingDoctypeSystemIdentifier, MissingQuoteBeforeDoctypeSystemIdentifier)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifierCase(r, eof, '"', doctypeSystemIdentifierDoubleQuotedState,
		afterDoctypeSystemIdentifierState, doctypeSystemIDCharFragment, AbruptDoctypeSystemIdentifier)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifierCase(r, eof, '\'', doctypeSystemIdentifierSingleQuotedState,
		afterDoctypeSystemIdentifierState, doctypeSystemIDCharFragment, AbruptDoctypeSystemIdentifier)
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.eofInDoctype(false)
	case isTagWhitespace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		return p.closeDoctype(false)
	default:
		// unlike the other doctype errors this one leaves quirks mode alone
		return p.toBogusDoctype(UnexpectedCharacterAfterDoctypeSystemIdentifier, false)
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(frag(doctypeCloseFragment))
		return p.emitEndOfInput()
	}
	switch r {
	case '>':
		return p.closeDoctype(false)
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
	}
	return false, bogusDoctypeState
}

func (p *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(EOFInCDATA)
		return p.emitEndOfInput()
	}
	if r == ']' {
		return false, cdataSectionBracketState
	}
	p.emitCharacters(r)
	return false, cdataSectionState
}

func (p *HTMLTokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == ']' {
		return false, cdataSectionEndState
	}
	p.emitCharacters(']')
	return true, cdataSectionState
}

func (p *HTMLTokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && r == ']':
		p.emitCharacters(']')
		return false, cdataSectionEndState
	case !eof && r == '>':
		return false, dataState
	default:
		p.emitCharacters(']', ']')
		return true, cdataSectionState
	}
}

func (p *HTMLTokenizer) characterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer('&')

	switch {
	case !eof && isASCIIAlphanumeric(r):
		return true, namedCharacterReferenceState
	case !eof && r == '#':
		p.tokenBuilder.WriteTempBuffer(r)
		return false, numericCharacterReferenceState
	default:
		p.flushCodePointsAsCharacterReference()
		return true, p.returnState
	}
}

// namedCharacterReferenceStateParser consumes the longest name in
// charRefTable that the input starts with. r is the first character of the
// candidate name and has already been consumed.
func (p *HTMLTokenizer) namedCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.flushCodePointsAsCharacterReference()
		return true, p.returnState
	}

	candidate := []rune{r}
	for len(candidate) < longestCharRefName-1 && isASCIIAlphanumeric(p.input.Next()) {
		candidate = append(candidate, p.input.Consume())
	}
	if p.input.Next() == ';' {
		candidate = append(candidate, p.input.Consume())
	}

	var (
		match      []rune
		codePoints []rune
	)
	for i := len(candidate); i > 0; i-- {
		if cps, ok := charRefTable[string(candidate[:i])]; ok {
			match, codePoints = candidate[:i], cps
			break
		}
	}

	if match == nil {
		// nothing but the first character counts as consumed; the ambiguous
		// ampersand state gets to see it again.
		p.input.Pushback(len(candidate) - 1)
		p.flushCodePointsAsCharacterReference()
		return true, ambiguousAmpersandState
	}
	p.input.Pushback(len(candidate) - len(match))
	p.tokenBuilder.WriteTempBuffer(match...)

	endsInSemicolon := match[len(match)-1] == ';'
	if !endsInSemicolon && wasConsumedByAttribute(p.returnState) {
		if next := p.input.Next(); next == '=' || isASCIIAlphanumeric(next) {
			p.flushCodePointsAsCharacterReference()
			return false, p.returnState
		}
	}
	if !endsInSemicolon {
		p.parseError(MissingSemicolonAfterCharacterReference)
	}
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer(codePoints...)
	p.flushCodePointsAsCharacterReference()
	return false, p.returnState
}

func (p *HTMLTokenizer) ambiguousAmpersandStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case !eof && isASCIIAlphanumeric(r):
		p.emitCharacterReferenceOutput(r)
		return false, ambiguousAmpersandState
	case !eof && r == ';':
		p.parseError(UnknownNamedCharacterReference)
		return true, p.returnState
	default:
		return true, p.returnState
	}
}

func (p *HTMLTokenizer) numericCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	p.emit(frag(charRefOpenFragment))
	if !eof && (r == 'x' || r == 'X') {
		p.tokenBuilder.WriteTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	}
	return true, decimalCharacterReferenceStartState
}

func (p *HTMLTokenizer) characterReferenceStartCase(isDigit bool, next tokenizerState) (bool, tokenizerState) {
	if isDigit {
		return true, next
	}
	p.parseError(AbsenceOfDigitsInNumericCharacterReference)
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.characterReferenceStartCase(!eof && isASCIIHexDigit(r), hexadecimalCharacterReferenceState)
}

func (p *HTMLTokenizer) decimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.characterReferenceStartCase(!eof && isASCIIDigit(r), decimalCharacterReferenceState)
}

func (p *HTMLTokenizer) addCharRefDigit(base int, digit rune) {
	p.emit(fragment{kind: charRefMultiplyFragment, n: base}, fragment{kind: charRefAddFragment, n: int(digit)})
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
	case isASCIIDigit(r):
		p.addCharRefDigit(16, r-0x30)
		return false, hexadecimalCharacterReferenceState
	case r >= 'A' && r <= 'F':
		p.addCharRefDigit(16, r-0x37)
		return false, hexadecimalCharacterReferenceState
	case r >= 'a' && r <= 'f':
		p.addCharRefDigit(16, r-0x57)
		return false, hexadecimalCharacterReferenceState
	case r == ';':
		return false, numericCharacterReferenceEndState
	}
	p.parseError(MissingSemicolonAfterCharacterReference)
	return true, numericCharacterReferenceEndState
}

func (p *HTMLTokenizer) decimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
	case isASCIIDigit(r):
		p.addCharRefDigit(10, r-0x30)
		return false, decimalCharacterReferenceState
	case r == ';':
		return false, numericCharacterReferenceEndState
	}
	p.parseError(MissingSemicolonAfterCharacterReference)
	return true, numericCharacterReferenceEndState
}

// windows1252Replacements remaps references to C1 controls onto the
// characters Windows-1252 puts at those bytes.
var windows1252Replacements = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

// numericCharacterReferenceEndStateParser never consumes r; it resolves the
// accumulated code and hands r back to the return state.
func (p *HTMLTokenizer) numericCharacterReferenceEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	p.emit(frag(charRefCloseFragment))
	code := p.tokenBuilder.GetCharRef()
	switch {
	case code == 0:
		p.parseError(NullCharacterReference)
		code = 0xFFFD
	case code > 0x10FFFF:
		p.parseError(CharacterReferenceOutsideUnicodeRange)
		code = 0xFFFD
	case isSurrogate(code):
		p.parseError(SurrogateCharacterReference)
		code = 0xFFFD
	case isNonCharacter(code):
		p.parseError(NoncharacterCharacterReference)
	case code == 0x0D || (isControl(code) && !isASCIIWhitespace(code)):
		p.parseError(ControlCharacterReference)
		if replacement, ok := windows1252Replacements[code]; ok {
			code = int(replacement)
		}
	}
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer(rune(code))
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

// a parserStateHandler takes in a rune and a bool representing the end of
// file and returns whether the rune should be reconsumed along with the next
// state to transition to.
type parserStateHandler func(in rune, eof bool) (bool, tokenizerState)

//go:generate stringer -type=tokenizerState
type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
	dataLessThanSignWorkaroundState
)

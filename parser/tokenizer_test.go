package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string            // snippet of HTML to tokenize (should only be one element)
	attrs  map[string]string // attributes expected after the first start tag
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://google.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{"src": "123"}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src test></script>", map[string]string{"src": "", "test": ""}},
	{"<script 'asd></script>", map[string]string{"'asd": ""}},
	{"<script <asd></script>", map[string]string{"<asd": ""}},
	{"<script ABC=123></script>", map[string]string{"abc": "123"}},
	{"<script abc='\u0000123'></script>", map[string]string{"abc": "\uFFFD123"}},
	{"<script abc=></script>", map[string]string{"abc": ""}},
	{"<script\tabc=123></script>", map[string]string{"abc": "123"}},
	{"<a title='&amp;&lt;'>", map[string]string{"title": "&<"}},
	{"<a title='&notit;'>", map[string]string{"title": "&notit;"}},
	{"<a title='&notin;'>", map[string]string{"title": "\u2209"}},
}

// TestTokenizerAttributeAccuracy checks the attribute tokens that follow the
// first start tag.
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		runTestTokenizerAttributeAccuracy(tt, t)
	}
}

func runTestTokenizerAttributeAccuracy(tt tokenizerAttributeAccuracyTestcase, t *testing.T) {
	t.Run(tt.inHTML, func(t *testing.T) {
		t.Parallel()
		tokens, _ := Tokenize(tt.inHTML)
		require.NotEmpty(t, tokens)
		require.Equal(t, StartTagToken, tokens[0].Type)

		attrs := map[string]string{}
		for _, tok := range tokens[1:] {
			if tok.Type != AttributeToken {
				break
			}
			attrs[tok.Name] = tok.Data
		}
		assert.Equal(t, tt.attrs, attrs)
	})
}

type stateTransition struct {
	in        rune           // the rune handed to the state
	reconsume bool           // whether the rune should be handed to the next state
	next      tokenizerState // the state to continue in
}

// TestStateParsers runs every state handler on a single rune with a fresh
// tokenizer. Transitions that depend on earlier input are covered by
// TestParseStatefulness and TestTokenize.
func TestStateParsers(t *testing.T) {
	stateParserTests := map[tokenizerState][]stateTransition{
		dataState: {
			{'&', false, characterReferenceState},
			{'<', false, dataLessThanSignWorkaroundState},
			{'\u0000', false, dataState},
			{'a', false, dataState},
			{'1', false, dataState},
		},
		dataLessThanSignWorkaroundState: {
			{'a', true, tagOpenState},
			{'/', true, tagOpenState},
			{'!', true, tagOpenState},
		},
		rcDataState: {
			{'&', false, characterReferenceState},
			{'<', false, rcDataLessThanSignState},
			{'\u0000', false, rcDataState},
			{'#', false, rcDataState},
		},
		rawTextState: {
			{'<', false, rawTextLessThanSignState},
			{'\u0000', false, rawTextState},
			{'&', false, rawTextState},
		},
		scriptDataState: {
			{'<', false, scriptDataLessThanSignState},
			{'\u0000', false, scriptDataState},
			{'&', false, scriptDataState},
		},
		plaintextState: {
			{'<', false, plaintextState},
			{'\u0000', false, plaintextState},
		},
		tagOpenState: {
			{'!', false, markupDeclarationOpenState},
			{'/', false, endTagOpenState},
			{'a', true, tagNameState},
			{'Z', true, tagNameState},
			{'?', true, bogusCommentState},
			{'1', true, dataState},
		},
		endTagOpenState: {
			{'a', true, tagNameState},
			{'B', true, tagNameState},
			{'>', false, dataState},
			{'#', true, bogusCommentState},
		},
		tagNameState: {
			{'\t', false, beforeAttributeNameState},
			{'\u000A', false, beforeAttributeNameState},
			{'\u000C', false, beforeAttributeNameState},
			{' ', false, beforeAttributeNameState},
			{'/', false, selfClosingStartTagState},
			{'>', false, dataState},
			{'A', false, tagNameState},
			{'\u0000', false, tagNameState},
		},
		rcDataLessThanSignState: {
			{'/', false, rcDataEndTagOpenState},
			{'a', true, rcDataState},
		},
		rcDataEndTagOpenState: {
			{'a', true, rcDataEndTagNameState},
			{'1', true, rcDataState},
		},
		rcDataEndTagNameState: {
			{'A', false, rcDataEndTagNameState},
			{'z', false, rcDataEndTagNameState},
			{'>', true, rcDataState},
			{'#', true, rcDataState},
		},
		rawTextLessThanSignState: {
			{'/', false, rawTextEndTagOpenState},
			{'1', true, rawTextState},
		},
		rawTextEndTagOpenState: {
			{'Z', true, rawTextEndTagNameState},
			{'@', true, rawTextState},
		},
		rawTextEndTagNameState: {
			{'a', false, rawTextEndTagNameState},
			{' ', true, rawTextState},
		},
		scriptDataLessThanSignState: {
			{'/', false, scriptDataEndTagOpenState},
			{'!', false, scriptDataEscapeStartState},
			{'a', true, scriptDataState},
		},
		scriptDataEndTagOpenState: {
			{'z', true, scriptDataEndTagNameState},
			{'$', true, scriptDataState},
		},
		scriptDataEndTagNameState: {
			{'A', false, scriptDataEndTagNameState},
			{'^', true, scriptDataState},
		},
		scriptDataEscapeStartState: {
			{'-', false, scriptDataEscapeStartDashState},
			{'a', true, scriptDataState},
		},
		scriptDataEscapeStartDashState: {
			{'-', false, scriptDataEscapedDashDashState},
			{'@', true, scriptDataState},
		},
		scriptDataEscapedState: {
			{'-', false, scriptDataEscapedDashState},
			{'<', false, scriptDataEscapedLessThanSignState},
			{'\u0000', false, scriptDataEscapedState},
			{'a', false, scriptDataEscapedState},
		},
		scriptDataEscapedDashState: {
			{'-', false, scriptDataEscapedDashDashState},
			{'<', false, scriptDataEscapedLessThanSignState},
			{'a', false, scriptDataEscapedState},
		},
		scriptDataEscapedDashDashState: {
			{'-', false, scriptDataEscapedDashDashState},
			{'<', false, scriptDataEscapedLessThanSignState},
			{'>', false, scriptDataState},
			{'$', false, scriptDataEscapedState},
		},
		scriptDataEscapedLessThanSignState: {
			{'/', false, scriptDataEscapedEndTagOpenState},
			{'a', true, scriptDataDoubleEscapeStartState},
			{'#', true, scriptDataEscapedState},
		},
		scriptDataEscapedEndTagOpenState: {
			{'B', true, scriptDataEscapedEndTagNameState},
			{'#', true, scriptDataEscapedState},
		},
		scriptDataEscapedEndTagNameState: {
			{'b', false, scriptDataEscapedEndTagNameState},
			{'%', true, scriptDataEscapedState},
		},
		scriptDataDoubleEscapeStartState: {
			{'a', false, scriptDataDoubleEscapeStartState},
			{' ', false, scriptDataEscapedState},
			{'1', true, scriptDataEscapedState},
		},
		scriptDataDoubleEscapedState: {
			{'-', false, scriptDataDoubleEscapedDashState},
			{'<', false, scriptDataDoubleEscapedLessThanSignState},
			{'a', false, scriptDataDoubleEscapedState},
		},
		scriptDataDoubleEscapedDashState: {
			{'-', false, scriptDataDoubleEscapedDashDashState},
			{'<', false, scriptDataDoubleEscapedLessThanSignState},
			{'!', false, scriptDataDoubleEscapedState},
		},
		scriptDataDoubleEscapedDashDashState: {
			{'-', false, scriptDataDoubleEscapedDashDashState},
			{'>', false, scriptDataState},
			{'a', false, scriptDataDoubleEscapedState},
		},
		scriptDataDoubleEscapedLessThanSignState: {
			{'/', false, scriptDataDoubleEscapeEndState},
			{'a', true, scriptDataDoubleEscapedState},
		},
		scriptDataDoubleEscapeEndState: {
			{'Z', false, scriptDataDoubleEscapeEndState},
			{'>', false, scriptDataDoubleEscapedState},
			{'@', true, scriptDataDoubleEscapedState},
		},
		beforeAttributeNameState: {
			{' ', false, beforeAttributeNameState},
			{'/', true, afterAttributeNameState},
			{'>', true, afterAttributeNameState},
			{'=', false, attributeNameState},
			{'a', true, attributeNameState},
		},
		attributeNameState: {
			{'\u0009', true, afterAttributeNameState},
			{'/', true, afterAttributeNameState},
			{'>', true, afterAttributeNameState},
			{'=', false, beforeAttributeValueState},
			{'"', false, attributeNameState},
			{'a', false, attributeNameState},
		},
		afterAttributeNameState: {
			{'\u000C', false, afterAttributeNameState},
			{'/', false, selfClosingStartTagState},
			{'=', false, beforeAttributeValueState},
			{'>', false, dataState},
			{'%', true, attributeNameState},
		},
		beforeAttributeValueState: {
			{'\u000A', false, beforeAttributeValueState},
			{'"', false, attributeValueDoubleQuotedState},
			{'\'', false, attributeValueSingleQuotedState},
			{'>', false, dataState},
			{'1', true, attributeValueUnquotedState},
		},
		attributeValueDoubleQuotedState: {
			{'"', false, afterAttributeValueQuotedState},
			{'&', false, characterReferenceState},
			{'\'', false, attributeValueDoubleQuotedState},
		},
		attributeValueSingleQuotedState: {
			{'\'', false, afterAttributeValueQuotedState},
			{'&', false, characterReferenceState},
			{'"', false, attributeValueSingleQuotedState},
		},
		attributeValueUnquotedState: {
			{' ', false, beforeAttributeNameState},
			{'&', false, characterReferenceState},
			{'>', false, dataState},
			{'`', false, attributeValueUnquotedState},
		},
		afterAttributeValueQuotedState: {
			{'\t', false, beforeAttributeNameState},
			{'/', false, selfClosingStartTagState},
			{'>', false, dataState},
			{'A', true, beforeAttributeNameState},
		},
		selfClosingStartTagState: {
			{'>', false, dataState},
			{'a', true, beforeAttributeNameState},
		},
		bogusCommentState: {
			{'>', false, dataState},
			{'\u0000', false, bogusCommentState},
			{'-', false, bogusCommentState},
		},
		commentStartState: {
			{'-', false, commentStartDashState},
			{'>', false, dataState},
			{'A', true, commentState},
		},
		commentStartDashState: {
			{'-', false, commentEndState},
			{'>', false, dataState},
			{'(', true, commentState},
		},
		commentState: {
			{'<', false, commentLessThanSignState},
			{'-', false, commentEndDashState},
			{'\u0000', false, commentState},
			{'A', false, commentState},
		},
		commentLessThanSignState: {
			{'!', false, commentLessThanSignBangState},
			{'<', false, commentLessThanSignState},
			{'*', true, commentState},
		},
		commentLessThanSignBangState: {
			{'-', false, commentLessThanSignBangDashState},
			{'@', true, commentState},
		},
		commentLessThanSignBangDashState: {
			{'-', false, commentLessThanSignBangDashDashState},
			{'!', true, commentEndDashState},
		},
		commentLessThanSignBangDashDashState: {
			{'>', true, commentEndState},
			{'^', true, commentEndState},
		},
		commentEndDashState: {
			{'-', false, commentEndState},
			{'#', true, commentState},
		},
		commentEndState: {
			{'>', false, dataState},
			{'!', false, commentEndBangState},
			{'-', false, commentEndState},
			{'(', true, commentState},
		},
		commentEndBangState: {
			{'-', false, commentEndDashState},
			{'>', false, dataState},
			{'*', true, commentState},
		},
		doctypeState: {
			{' ', false, beforeDoctypeNameState},
			{'>', true, beforeDoctypeNameState},
			{'a', true, beforeDoctypeNameState},
		},
		beforeDoctypeNameState: {
			{'\u0009', false, beforeDoctypeNameState},
			{'Z', false, doctypeNameState},
			{'\u0000', false, doctypeNameState},
			{'>', false, dataState},
		},
		doctypeNameState: {
			{'\u000A', false, afterDoctypeNameState},
			{'>', false, dataState},
			{'*', false, doctypeNameState},
		},
		afterDoctypeNameState: {
			{'\u000C', false, afterDoctypeNameState},
			{'>', false, dataState},
			{'x', true, bogusDoctypeState},
		},
		afterDoctypePublicKeywordState: {
			{' ', false, beforeDoctypePublicIdentifierState},
			{'"', false, doctypePublicIdentifierDoubleQuotedState},
			{'\'', false, doctypePublicIdentifierSingleQuotedState},
			{'>', false, dataState},
			{'&', true, bogusDoctypeState},
		},
		beforeDoctypePublicIdentifierState: {
			{' ', false, beforeDoctypePublicIdentifierState},
			{'"', false, doctypePublicIdentifierDoubleQuotedState},
			{'>', false, dataState},
			{'(', true, bogusDoctypeState},
		},
		doctypePublicIdentifierDoubleQuotedState: {
			{'"', false, afterDoctypePublicIdentifierState},
			{'>', false, dataState},
			{'*', false, doctypePublicIdentifierDoubleQuotedState},
		},
		doctypePublicIdentifierSingleQuotedState: {
			{'\'', false, afterDoctypePublicIdentifierState},
			{'>', false, dataState},
			{'(', false, doctypePublicIdentifierSingleQuotedState},
		},
		afterDoctypePublicIdentifierState: {
			{' ', false, betweenDoctypePublicAndSystemIdentifiersState},
			{'>', false, dataState},
			{'"', false, doctypeSystemIdentifierDoubleQuotedState},
			{'(', true, bogusDoctypeState},
		},
		betweenDoctypePublicAndSystemIdentifiersState: {
			{' ', false, betweenDoctypePublicAndSystemIdentifiersState},
			{'\'', false, doctypeSystemIdentifierSingleQuotedState},
			{'#', true, bogusDoctypeState},
		},
		afterDoctypeSystemKeywordState: {
			{' ', false, beforeDoctypeSystemIdentifierState},
			{'"', false, doctypeSystemIdentifierDoubleQuotedState},
			{'>', false, dataState},
			{'$', true, bogusDoctypeState},
		},
		beforeDoctypeSystemIdentifierState: {
			{' ', false, beforeDoctypeSystemIdentifierState},
			{'\'', false, doctypeSystemIdentifierSingleQuotedState},
			{'*', true, bogusDoctypeState},
		},
		doctypeSystemIdentifierDoubleQuotedState: {
			{'"', false, afterDoctypeSystemIdentifierState},
			{'>', false, dataState},
		},
		doctypeSystemIdentifierSingleQuotedState: {
			{'\'', false, afterDoctypeSystemIdentifierState},
			{'\u0000', false, doctypeSystemIdentifierSingleQuotedState},
		},
		afterDoctypeSystemIdentifierState: {
			{' ', false, afterDoctypeSystemIdentifierState},
			{'>', false, dataState},
			{'#', true, bogusDoctypeState},
		},
		bogusDoctypeState: {
			{'>', false, dataState},
			{'\u0000', false, bogusDoctypeState},
		},
		cdataSectionState: {
			{']', false, cdataSectionBracketState},
			{'^', false, cdataSectionState},
		},
		cdataSectionBracketState: {
			{']', false, cdataSectionEndState},
			{'[', true, cdataSectionState},
		},
		cdataSectionEndState: {
			{']', false, cdataSectionEndState},
			{'>', false, dataState},
			{'A', true, cdataSectionState},
		},
		characterReferenceState: {
			{'a', true, namedCharacterReferenceState},
			{'1', true, namedCharacterReferenceState},
			{'#', false, numericCharacterReferenceState},
			// the return state of a fresh tokenizer is the data state
			{'/', true, dataState},
		},
		ambiguousAmpersandState: {
			{'a', false, ambiguousAmpersandState},
			{';', true, dataState},
			{'@', true, dataState},
		},
		numericCharacterReferenceState: {
			{'x', false, hexadecimalCharacterReferenceStartState},
			{'X', false, hexadecimalCharacterReferenceStartState},
			{'a', true, decimalCharacterReferenceStartState},
		},
		hexadecimalCharacterReferenceStartState: {
			{'b', true, hexadecimalCharacterReferenceState},
			{'p', true, dataState},
		},
		decimalCharacterReferenceStartState: {
			{'0', true, decimalCharacterReferenceState},
			{'A', true, dataState},
		},
		hexadecimalCharacterReferenceState: {
			{'9', false, hexadecimalCharacterReferenceState},
			{'F', false, hexadecimalCharacterReferenceState},
			{'a', false, hexadecimalCharacterReferenceState},
			{';', false, numericCharacterReferenceEndState},
			{']', true, numericCharacterReferenceEndState},
		},
		decimalCharacterReferenceState: {
			{'9', false, decimalCharacterReferenceState},
			{';', false, numericCharacterReferenceEndState},
			{'a', true, numericCharacterReferenceEndState},
		},
		numericCharacterReferenceEndState: {
			{'a', true, dataState},
		},
	}

	for state, transitions := range stateParserTests {
		for _, tt := range transitions {
			runStateParserTest(state, tt, t)
		}
	}
}

func runStateParserTest(state tokenizerState, tt stateTransition, t *testing.T) {
	t.Run(fmt.Sprintf("%s-%#U", state, tt.in), func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer("")
		reconsume, next := p.stateToParser(state)(tt.in, false)
		assert.Equal(t, tt.next, next)
		assert.Equal(t, tt.reconsume, reconsume)
	})
}

type parserStatefulnessTestCase struct {
	inHTML     string                                // the HTML to feed the tokenizer
	startState tokenizerState                        // the state to start in
	testFunc   func(*HTMLTokenizer) (string, string) // returns the observed and the expected value
	setup      func(*HTMLTokenizer)                  // run before any rune is processed
}

func lastBuilder(p *HTMLTokenizer) *tokenBuilder {
	return p.tokenBuilder.builders[len(p.tokenBuilder.builders)-1]
}

func openTag(p *HTMLTokenizer) { p.emit(frag(tagOpenFragment)) }

func openAttribute(p *HTMLTokenizer) {
	p.emit(frag(tagOpenFragment), frag(attributeOpenFragment))
}

func openComment(p *HTMLTokenizer) { p.emit(frag(commentOpenFragment)) }

func openDoctype(p *HTMLTokenizer) { p.emit(frag(doctypeOpenFragment)) }

func tagName(p *HTMLTokenizer) string { return lastBuilder(p).name.String() }

func commentData(p *HTMLTokenizer) string { return lastBuilder(p).data.String() }

func attributeValue(p *HTMLTokenizer) string {
	attrs := lastBuilder(p).attributes
	return attrs[len(attrs)-1].value.String()
}

func attributeName(p *HTMLTokenizer) string {
	attrs := lastBuilder(p).attributes
	return attrs[len(attrs)-1].name.String()
}

func forceQuirks(p *HTMLTokenizer) (string, string) {
	return fmt.Sprintf("%t", lastBuilder(p).forceQuirks), "true"
}

// TestParseStatefulness feeds input to a single starting state without ever
// reaching the end of input, then looks at the builders. The end of input
// would assemble and discard them.
func TestParseStatefulness(t *testing.T) {
	parserStatefulnessTestCases := []parserStatefulnessTestCase{
		{"&", dataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), dataState.String() }, nil},
		{"&", rcDataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), rcDataState.String() }, nil},
		{"&", attributeValueUnquotedState, func(p *HTMLTokenizer) (string, string) {
			return p.returnState.String(), attributeValueUnquotedState.String()
		}, nil},
		{"b", tagOpenState, func(p *HTMLTokenizer) (string, string) { return tagName(p), "b" }, nil},
		{"bAc", tagOpenState, func(p *HTMLTokenizer) (string, string) { return tagName(p), "bac" }, nil},
		{"bA\u0000c", tagOpenState, func(p *HTMLTokenizer) (string, string) { return tagName(p), "ba\uFFFDc" }, nil},
		{"P", endTagOpenState, func(p *HTMLTokenizer) (string, string) { return tagName(p), "p" }, nil},
		{"1", endTagOpenState, func(p *HTMLTokenizer) (string, string) { return commentData(p), "1" }, nil},
		{"<", tagNameState, func(p *HTMLTokenizer) (string, string) { return tagName(p), "<" }, openTag},
		{"Ab", rcDataEndTagNameState, func(p *HTMLTokenizer) (string, string) {
			return string(p.tokenBuilder.TempBuffer()), "Ab"
		}, nil},
		{"U", scriptDataDoubleEscapeStartState, func(p *HTMLTokenizer) (string, string) {
			return string(p.tokenBuilder.TempBuffer()), "u"
		}, nil},
		{"SCRIPT", scriptDataDoubleEscapeEndState, func(p *HTMLTokenizer) (string, string) {
			return string(p.tokenBuilder.TempBuffer()), "script"
		}, nil},
		{"U1", attributeNameState, func(p *HTMLTokenizer) (string, string) { return attributeName(p), "u1" }, openAttribute},
		{"\u0000", attributeNameState, func(p *HTMLTokenizer) (string, string) { return attributeName(p), "\uFFFD" }, openAttribute},
		{"\u0000A", attributeValueDoubleQuotedState, func(p *HTMLTokenizer) (string, string) { return attributeValue(p), "\uFFFDA" }, openAttribute},
		{"a'", attributeValueSingleQuotedState, func(p *HTMLTokenizer) (string, string) { return attributeValue(p), "a" }, openAttribute},
		{"a=b", attributeValueUnquotedState, func(p *HTMLTokenizer) (string, string) { return attributeValue(p), "a=b" }, openAttribute},
		{">", selfClosingStartTagState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%t", lastBuilder(p).selfClosing), "true"
		}, openTag},
		{"\u0000", bogusCommentState, func(p *HTMLTokenizer) (string, string) { return commentData(p), "\uFFFD" }, openComment},
		{"3", commentStartDashState, func(p *HTMLTokenizer) (string, string) { return commentData(p), "-3" }, openComment},
		{"<!", commentState, func(p *HTMLTokenizer) (string, string) { return commentData(p), "<!" }, openComment},
		{"a", commentEndDashState, func(p *HTMLTokenizer) (string, string) { return commentData(p), "-a" }, openComment},
		{"-", commentEndState, func(p *HTMLTokenizer) (string, string) { return commentData(p), "-" }, openComment},
		{"A", commentEndState, func(p *HTMLTokenizer) (string, string) { return commentData(p), "--A" }, openComment},
		{"@", commentEndBangState, func(p *HTMLTokenizer) (string, string) { return commentData(p), "--!@" }, openComment},
		{"HTml", beforeDoctypeNameState, func(p *HTMLTokenizer) (string, string) { return tagName(p), "html" }, nil},
		{"\u0000", beforeDoctypeNameState, func(p *HTMLTokenizer) (string, string) { return tagName(p), "\uFFFD" }, nil},
		{">", beforeDoctypeNameState, forceQuirks, nil},
		{">", beforeDoctypePublicIdentifierState, forceQuirks, openDoctype},
		{"A", afterDoctypePublicIdentifierState, forceQuirks, openDoctype},
		{"A", afterDoctypeSystemIdentifierState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%t", lastBuilder(p).forceQuirks), "false"
		}, openDoctype},
		{"\u0000x", doctypePublicIdentifierDoubleQuotedState, func(p *HTMLTokenizer) (string, string) {
			return lastBuilder(p).publicID.String(), "\uFFFDx"
		}, openDoctype},
		{"a!", doctypeSystemIdentifierSingleQuotedState, func(p *HTMLTokenizer) (string, string) {
			return lastBuilder(p).systemID.String(), "a!"
		}, openDoctype},
		{"a1", ambiguousAmpersandState, func(p *HTMLTokenizer) (string, string) { return attributeValue(p), "a1" }, func(p *HTMLTokenizer) {
			openAttribute(p)
			p.returnState = attributeValueDoubleQuotedState
		}},
		{"x", numericCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return string(p.tokenBuilder.TempBuffer()), "x"
		}, nil},
		{"22", hexadecimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "34"
		}, nil},
		{"fF", hexadecimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "255"
		}, nil},
		{"134", decimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "134"
		}, nil},
		{"99999999999999", decimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "1114112"
		}, nil},
	}

	for _, testcase := range parserStatefulnessTestCases {
		runParserStatefulnessTest(testcase, t)
	}
}

func runParserStatefulnessTest(testcase parserStatefulnessTestCase, t *testing.T) {
	t.Run(fmt.Sprintf("%s-%q", testcase.startState, testcase.inHTML), func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer(testcase.inHTML)
		p.currentState = testcase.startState
		if testcase.setup != nil {
			testcase.setup(p)
		}
		for p.input.HasNext() {
			p.processRune(p.input.Consume())
		}
		answer, expected := testcase.testFunc(p)
		assert.Equal(t, expected, answer)
	})
}

type tokenizerTestCase struct {
	name   string
	in     string
	opts   []Option
	tokens []Token
	errors []ParseError
}

func withSelfClosing(t Token) Token {
	t.SelfClosing = true
	return t
}

// TestTokenize checks complete token and error sequences.
func TestTokenize(t *testing.T) {
	tests := []tokenizerTestCase{
		{
			name: "nested elements",
			in:   "<html><body><div>Hello</div></body></html>",
			tokens: []Token{
				StartTag("html"), StartTag("body"), StartTag("div"), Text("Hello"),
				EndTag("div"), EndTag("body"), EndTag("html"),
			},
		},
		{
			name: "attributes keep source order",
			in:   `<div id="hello" class="world">Hello</div>`,
			tokens: []Token{
				StartTag("div"), Attribute("id", "hello"), Attribute("class", "world"),
				Text("Hello"), EndTag("div"),
			},
		},
		{
			name:   "leading text",
			in:     "Hello<body></body>",
			tokens: []Token{Text("Hello"), StartTag("body"), EndTag("body")},
		},
		{
			name:   "script content is opaque",
			in:     "<script>console.log('<b>')</script>",
			tokens: []Token{StartTag("script"), Text("console.log('<b>')"), EndTag("script")},
		},
		{
			name:   "script with an html comment",
			in:     "<script><!-- x --></script>",
			tokens: []Token{StartTag("script"), Text("<!-- x -->"), EndTag("script")},
		},
		{
			name:   "script end tag inside a double escaped section",
			in:     "<script><!--<script></script>--></script>",
			tokens: []Token{StartTag("script"), Text("<!--<script></script>-->"), EndTag("script")},
		},
		{
			name:   "unterminated script comment",
			in:     "<script><!--",
			tokens: []Token{StartTag("script"), Text("<!--")},
			errors: []ParseError{{EOFInScriptHTMLCommentLikeText, 12}},
		},
		{
			name:   "rcdata resolves references",
			in:     "<title>a<b>&amp;</title>",
			tokens: []Token{StartTag("title"), Text("a<b>&"), EndTag("title")},
		},
		{
			name:   "rcdata ignores other end tags",
			in:     "<textarea></div></textarea>",
			tokens: []Token{StartTag("textarea"), Text("</div>"), EndTag("textarea")},
		},
		{
			name:   "rawtext partial end tag",
			in:     "<style>a</sty</style>",
			tokens: []Token{StartTag("style"), Text("a</sty"), EndTag("style")},
		},
		{
			name:   "rawtext end tag is case insensitive",
			in:     "<xmp><p></XMP>",
			tokens: []Token{StartTag("xmp"), Text("<p>"), EndTag("xmp")},
		},
		{
			name:   "plaintext never ends",
			in:     "<plaintext><a></plaintext>",
			tokens: []Token{StartTag("plaintext"), Text("<a></plaintext>")},
		},
		{
			name:   "initial context",
			in:     "a<b></textarea>c",
			opts:   []Option{WithInitialContext("textarea")},
			tokens: []Token{Text("a<b>"), EndTag("textarea"), Text("c")},
		},
		{
			name:   "named reference",
			in:     "&amp;",
			tokens: []Token{Text("&")},
		},
		{
			name:   "decimal reference",
			in:     "&#65;",
			tokens: []Token{Text("A")},
		},
		{
			name:   "hexadecimal reference",
			in:     "&#x41;",
			tokens: []Token{Text("A")},
		},
		{
			name:   "numeric reference without digits",
			in:     "&#;",
			tokens: []Token{Text("&#;")},
			errors: []ParseError{{AbsenceOfDigitsInNumericCharacterReference, 2}},
		},
		{
			name:   "numeric reference without semicolon",
			in:     "&#65",
			tokens: []Token{Text("A")},
			errors: []ParseError{{MissingSemicolonAfterCharacterReference, 4}},
		},
		{
			name:   "null reference",
			in:     "&#0;",
			tokens: []Token{Text("\uFFFD")},
			errors: []ParseError{{NullCharacterReference, 4}},
		},
		{
			name:   "reference outside unicode",
			in:     "&#x110000;",
			tokens: []Token{Text("\uFFFD")},
			errors: []ParseError{{CharacterReferenceOutsideUnicodeRange, 10}},
		},
		{
			name:   "surrogate reference",
			in:     "&#xD800;",
			tokens: []Token{Text("\uFFFD")},
			errors: []ParseError{{SurrogateCharacterReference, 8}},
		},
		{
			name:   "noncharacter reference",
			in:     "&#xFFFF;",
			tokens: []Token{Text("\uFFFF")},
			errors: []ParseError{{NoncharacterCharacterReference, 8}},
		},
		{
			name:   "windows-1252 reference",
			in:     "&#128;",
			tokens: []Token{Text("\u20AC")},
			errors: []ParseError{{ControlCharacterReference, 6}},
		},
		{
			name:   "substituted reference doesn't leak into the next one",
			in:     "&#x80;&#x41;&#0;B",
			tokens: []Token{Text("\u20ACA\uFFFDB")},
			errors: []ParseError{{ControlCharacterReference, 6}, {NullCharacterReference, 16}},
		},
		{
			name:   "legacy reference in text",
			in:     "&notit;",
			tokens: []Token{Text("\u00ACit;")},
			errors: []ParseError{{MissingSemicolonAfterCharacterReference, 3}},
		},
		{
			name:   "legacy reference in attribute",
			in:     `<a title="&notit;">`,
			tokens: []Token{StartTag("a"), Attribute("title", "&notit;")},
		},
		{
			name:   "unknown named reference",
			in:     "&zzz;",
			tokens: []Token{Text("&zzz;")},
			errors: []ParseError{{UnknownNamedCharacterReference, 4}},
		},
		{
			name:   "two code point reference",
			in:     "&NotEqualTilde;",
			tokens: []Token{Text("\u2242\u0338")},
		},
		{
			name:   "null in data",
			in:     "a\u0000b",
			tokens: []Token{Text("a\uFFFDb")},
			errors: []ParseError{{UnexpectedNullCharacter, 1}},
		},
		{
			name:   "control character in input",
			in:     "a\u0001b",
			tokens: []Token{Text("a\u0001b")},
			errors: []ParseError{{ControlCharacterInInputStream, 1}},
		},
		{
			name:   "newlines are normalized",
			in:     "a\r\nb\rc",
			tokens: []Token{Text("a\nb\nc")},
		},
		{
			name:   "comment",
			in:     "<!-- hi -->",
			tokens: []Token{Comment(" hi ")},
		},
		{
			name:   "empty comment",
			in:     "<!---->",
			tokens: []Token{Comment("")},
		},
		{
			name:   "abruptly closed comment",
			in:     "<!-->",
			tokens: []Token{Comment("")},
			errors: []ParseError{{AbruptClosingOfEmptyComment, 4}},
		},
		{
			name:   "unterminated comment",
			in:     "<!--a",
			tokens: []Token{Comment("a")},
			errors: []ParseError{{EOFInComment, 5}},
		},
		{
			name:   "incorrectly closed comment",
			in:     "<!--a--!>",
			tokens: []Token{Comment("a")},
			errors: []ParseError{{IncorrectlyClosedComment, 8}},
		},
		{
			name:   "nested comment",
			in:     "<!--<!--x-->",
			tokens: []Token{Comment("<!--x")},
			errors: []ParseError{{NestedComment, 8}},
		},
		{
			name:   "processing instruction",
			in:     "<?xml?>",
			tokens: []Token{Comment("?xml?")},
			errors: []ParseError{{UnexpectedQuestionMarkInsteadOfTagName, 1}},
		},
		{
			name:   "doctype",
			in:     "<!DOCTYPE html>",
			tokens: []Token{Doctype("html", "", "", false)},
		},
		{
			name: "doctype with identifiers",
			in:   `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`,
			tokens: []Token{
				Doctype("html", "-//W3C//DTD HTML 4.01//EN", "http://www.w3.org/TR/html4/strict.dtd", false),
			},
		},
		{
			name:   "doctype without name",
			in:     "<!DOCTYPE>",
			tokens: []Token{Doctype("", "", "", true)},
			errors: []ParseError{{MissingDoctypeName, 9}},
		},
		{
			name:   "unterminated doctype",
			in:     "<!doctype html",
			tokens: []Token{Doctype("html", "", "", true)},
			errors: []ParseError{{EOFInDoctype, 14}},
		},
		{
			name:   "cdata in html content",
			in:     "<![CDATA[x]]>",
			tokens: []Token{Comment("[CDATA[x]]")},
			errors: []ParseError{{CDATAInHTMLContent, 8}},
		},
		{
			name:   "cdata in svg",
			in:     "<svg><![CDATA[a<b]]></svg>",
			tokens: []Token{StartTag("svg"), Text("a<b"), EndTag("svg")},
		},
		{
			name: "svg title is not rcdata",
			in:   "<svg><title><b></b></title></svg>",
			tokens: []Token{
				StartTag("svg"), StartTag("title"), StartTag("b"), EndTag("b"),
				EndTag("title"), EndTag("svg"),
			},
		},
		{
			name:   "less-than after a bare equals sign opens a tag",
			in:     "x=<b>",
			tokens: []Token{Text("x="), StartTag("b")},
		},
		{
			name:   "less-than after an opening quote stays text",
			in:     `value="<i>`,
			tokens: []Token{Text(`value="<i>`)},
		},
		{
			name:   "less-than after a single quote stays text",
			in:     "data-x='<i>",
			tokens: []Token{Text("data-x='<i>")},
		},
		{
			name:   "quote without an attribute name opens a tag",
			in:     `a ="<i>`,
			tokens: []Token{Text(`a ="`), StartTag("i")},
		},
		{
			name:   "end tag after an opening quote",
			in:     `x="</b>`,
			tokens: []Token{Text(`x="`), EndTag("b")},
		},
		{
			name:   "self-closing tag",
			in:     "<br/>",
			tokens: []Token{withSelfClosing(StartTag("br"))},
		},
		{
			name:   "duplicate attribute",
			in:     "<a x=1 x=2>",
			tokens: []Token{StartTag("a"), Attribute("x", "1")},
			errors: []ParseError{{DuplicateAttribute, 8}},
		},
		{
			name:   "end tag with attributes",
			in:     "</a b=c>",
			tokens: []Token{EndTag("a")},
			errors: []ParseError{{EndTagWithAttributes, 7}},
		},
		{
			name:   "end tag with trailing solidus",
			in:     "</a/>",
			tokens: []Token{EndTag("a")},
			errors: []ParseError{{EndTagWithTrailingSolidus, 4}},
		},
		{
			name:   "missing end tag name",
			in:     "</>",
			errors: []ParseError{{MissingEndTagName, 2}},
		},
		{
			name:   "eof in tag",
			in:     "<div",
			tokens: []Token{StartTag("div")},
			errors: []ParseError{{EOFInTag, 4}},
		},
		{
			name:   "eof before tag name",
			in:     "<",
			tokens: []Token{Text("<")},
			errors: []ParseError{{EOFBeforeTagName, 1}},
		},
		{
			name:   "invalid first character of tag name",
			in:     "<1>",
			tokens: []Token{Text("<1>")},
			errors: []ParseError{{InvalidFirstCharacterOfTagName, 1}},
		},
		{
			name:   "missing whitespace between attributes",
			in:     `<a b="1"c="2">`,
			tokens: []Token{StartTag("a"), Attribute("b", "1"), Attribute("c", "2")},
			errors: []ParseError{{MissingWhitespaceBetweenAttributes, 8}},
		},
	}

	for _, tt := range tests {
		runTokenizerTest(tt, t)
	}
}

func runTokenizerTest(tt tokenizerTestCase, t *testing.T) {
	t.Run(tt.name, func(t *testing.T) {
		t.Parallel()
		tokens, errs := Tokenize(tt.in, tt.opts...)
		if diff := cmp.Diff(tt.tokens, tokens, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("tokens mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(tt.errors, errs, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestTokenizeIsIdempotent(t *testing.T) {
	in := "<!DOCTYPE html><p class=a>&notit; \u0000<script>if (a<b) {}</script><!--x-->"
	tokens1, errs1 := Tokenize(in)
	tokens2, errs2 := Tokenize(in)
	assert.Equal(t, tokens1, tokens2)
	assert.Equal(t, errs1, errs2)
	assert.NotEmpty(t, errs1)

	p := NewHTMLTokenizer(in)
	tokens3, errs3 := p.Tokenize()
	tokens4, errs4 := p.Tokenize()
	assert.Equal(t, tokens1, tokens3)
	assert.Equal(t, tokens3, tokens4)
	assert.Equal(t, errs3, errs4)
}

func TestParseErrorKindString(t *testing.T) {
	assert.Equal(t, "unexpected-null-character", UnexpectedNullCharacter.String())
	assert.Equal(t, "eof-in-tag at 4", ParseError{Kind: EOFInTag, Position: 4}.Error())
	assert.Equal(t, "ParseErrorKind(999)", ParseErrorKind(999).String())
}

type HTML5Tests struct {
	Tests []HTML5Test `json:"tests"`
}

type HTML5Test struct {
	Description   string          `json:"description"`
	Input         string          `json:"input"`
	Output        [][]interface{} `json:"output"`
	LastStartTag  string          `json:"lastStartTag"`
	InitialStates []string        `json:"initialStates,omitempty"`
	Errors        []struct {
		Code string `json:"code"`
		Line int    `json:"line"`
		Col  int    `json:"col"`
	} `json:"errors,omitempty"`
}

// TestHTML5Lib runs the html5lib-format tokenizer tests under testdata.
// https://github.com/html5lib/html5lib-tests/tree/master/tokenizer
func TestHTML5Lib(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "tokenizer", "*.test"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var tests HTML5Tests
		require.NoError(t, json.Unmarshal(data, &tests), path)
		for _, test := range tests.Tests {
			runHTML5Test(test, t)
		}
	}
}

func getInitState(state string) (tokenizerState, error) {
	switch state {
	case "Data state":
		return dataState, nil
	case "PLAINTEXT state":
		return plaintextState, nil
	case "RCDATA state":
		return rcDataState, nil
	case "RAWTEXT state":
		return rawTextState, nil
	case "Script data state":
		return scriptDataState, nil
	case "CDATA section state":
		return cdataSectionState, nil
	default:
		return dataState, fmt.Errorf("invalid tokenizer state %s", state)
	}
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// html5libOutput converts tokens into the shape the html5lib tests decode to.
// Attribute tokens are folded into the start tag they follow.
func html5libOutput(tokens []Token) [][]interface{} {
	out := [][]interface{}{}
	var attrs map[string]interface{}
	for _, tok := range tokens {
		switch tok.Type {
		case StartTagToken:
			attrs = map[string]interface{}{}
			entry := []interface{}{"StartTag", tok.Name, attrs}
			if tok.SelfClosing {
				entry = append(entry, true)
			}
			out = append(out, entry)
		case AttributeToken:
			attrs[tok.Name] = tok.Data
		case EndTagToken:
			out = append(out, []interface{}{"EndTag", tok.Name})
		case TextToken:
			out = append(out, []interface{}{"Character", tok.Data})
		case CommentToken:
			out = append(out, []interface{}{"Comment", tok.Data})
		case DoctypeToken:
			out = append(out, []interface{}{
				"DOCTYPE", nullable(tok.Name), nullable(tok.PublicIdentifier),
				nullable(tok.SystemIdentifier), !tok.ForceQuirks,
			})
		}
	}
	return out
}

func runHTML5Test(test HTML5Test, t *testing.T) {
	t.Run(test.Description, func(t *testing.T) {
		t.Parallel()
		if len(test.InitialStates) == 0 {
			test.InitialStates = []string{"Data state"}
		}
		var wantErrors []string
		for _, e := range test.Errors {
			wantErrors = append(wantErrors, e.Code)
		}

		for _, initState := range test.InitialStates {
			state, err := getInitState(initState)
			require.NoError(t, err)

			p := NewHTMLTokenizer(test.Input)
			p.currentState = state
			p.lastEmittedStartTagName = test.LastStartTag

			tokens, errs := p.Tokenize()
			if diff := cmp.Diff(test.Output, html5libOutput(tokens)); diff != "" {
				t.Errorf("%s: tokens mismatch (-want +got):\n%s", initState, diff)
			}
			var gotErrors []string
			for _, e := range errs {
				gotErrors = append(gotErrors, e.Kind.String())
			}
			assert.Equal(t, wantErrors, gotErrors, initState)
		}
	})
}

func TestTokenBuilderTextEndsWith(t *testing.T) {
	tb := newTokenBuilder()
	assert.False(t, tb.TextEndsWith("="))
	for _, r := range `a="` {
		tb.Emit(charFrag(characterFragment, r))
	}
	assert.True(t, tb.TextEndsWith(`="`))
	assert.True(t, tb.TextEndsWith(`"`))
	assert.False(t, tb.TextEndsWith("="))
	assert.Equal(t, []rune(`a="`), tb.TextTail())

	tb.Emit(frag(tagOpenFragment))
	assert.False(t, tb.TextEndsWith(`"`), "a new text run starts after a tag")

	tb.Emit(frag(endOfInputFragment))
	assert.Equal(t, []Token{Text(`a="`), StartTag("")}, tb.Tokens())
}

func TestTokenBuilderStripsEndTagAttributes(t *testing.T) {
	tb := newTokenBuilder()
	tb.Emit(frag(endTagOpenFragment), charFrag(tagNameCharFragment, 'p'),
		frag(attributeOpenFragment), charFrag(attributeNameCharFragment, 'x'),
		frag(tagSelfCloseFragment), frag(endOfInputFragment))
	assert.Equal(t, []Token{EndTag("p")}, tb.Tokens())
}

func TestInitialContextIsCaseInsensitive(t *testing.T) {
	tokens, errs := Tokenize("<b></SCRIPT>", WithInitialContext("SCRIPT"))
	assert.Empty(t, errs)
	assert.Equal(t, []Token{Text("<b>"), EndTag("script")}, tokens)
}

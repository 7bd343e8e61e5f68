package parser

import "strings"

// eofRune is returned by the input stream once every character has been consumed.
const eofRune rune = -1

// inputStream is the character source the tokenizer reads from. The whole
// input is held in memory and newlines are normalized before tokenization
// starts.
type inputStream struct {
	input []rune
	pos   int
}

func newInputStream(s string) *inputStream {
	return &inputStream{input: normalizeNewlines([]rune(s))}
}

// normalizeNewlines replaces every CR LF pair and every lone CR with a single LF.
// https://infra.spec.whatwg.org/#normalize-newlines
func normalizeNewlines(in []rune) []rune {
	out := in[:0]
	for i := 0; i < len(in); i++ {
		r := in[i]
		if r == '\u000D' {
			if i+1 < len(in) && in[i+1] == '\u000A' {
				i++
			}
			r = '\u000A'
		}
		out = append(out, r)
	}
	return out
}

// Consume advances by one character and returns it. Past the end of the input
// it returns eofRune, still advancing so that Pushback stays symmetric.
func (s *inputStream) Consume() rune {
	if s.pos >= len(s.input) {
		s.pos++
		return eofRune
	}
	r := s.input[s.pos]
	s.pos++
	return r
}

// ConsumeN advances by n characters and returns the text that was skipped.
func (s *inputStream) ConsumeN(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		r := s.Consume()
		if r == eofRune {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Next returns the next character without consuming it.
func (s *inputStream) Next() rune {
	if s.pos >= len(s.input) {
		return eofRune
	}
	return s.input[s.pos]
}

func (s *inputStream) HasNext() bool {
	return s.pos < len(s.input)
}

// Pushback un-consumes the last n characters.
func (s *inputStream) Pushback(n int) {
	s.pos -= n
	if s.pos < 0 {
		s.pos = 0
	}
}

// IsFollowedBy reports whether the characters after the current position
// match lit. Nothing is consumed.
func (s *inputStream) IsFollowedBy(lit string, ignoreCase bool) bool {
	i := s.pos
	for _, want := range lit {
		if i >= len(s.input) {
			return false
		}
		got := s.input[i]
		if ignoreCase {
			got, want = toASCIILower(got), toASCIILower(want)
		}
		if got != want {
			return false
		}
		i++
	}
	return true
}

// Position is the offset of the most recently consumed character, or the
// length of the input once the end has been reached.
func (s *inputStream) Position() int {
	switch {
	case s.pos <= 0:
		return 0
	case s.pos > len(s.input):
		return len(s.input)
	default:
		return s.pos - 1
	}
}

func toASCIILower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 0x20
	}
	return r
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputStreamConsume(t *testing.T) {
	s := newInputStream("ab")
	assert.True(t, s.HasNext())
	assert.Equal(t, 'a', s.Next())
	assert.Equal(t, 'a', s.Consume())
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, 'b', s.Consume())
	assert.False(t, s.HasNext())
	assert.Equal(t, eofRune, s.Next())
	assert.Equal(t, eofRune, s.Consume())
	assert.Equal(t, 2, s.Position())

	s.Pushback(2)
	assert.Equal(t, 'b', s.Consume())
	assert.Equal(t, 1, s.Position())
}

func TestInputStreamConsumeN(t *testing.T) {
	s := newInputStream("DOCTYPE html")
	assert.Equal(t, "DOCTYPE", s.ConsumeN(7))
	assert.Equal(t, ' ', s.Consume())
	assert.Equal(t, "html", s.ConsumeN(10))
}

func TestInputStreamIsFollowedBy(t *testing.T) {
	tests := []struct {
		in         string
		lit        string
		ignoreCase bool
		expected   bool
	}{
		{"doctype", "DOCTYPE", true, true},
		{"doctype", "DOCTYPE", false, false},
		{"[CDATA[x", "[CDATA[", false, true},
		{"[CDA", "[CDATA[", false, false},
		{"", "-", false, false},
		{"PUBLIC", "public", true, true},
	}
	for _, tt := range tests {
		s := newInputStream(tt.in)
		assert.Equal(t, tt.expected, s.IsFollowedBy(tt.lit, tt.ignoreCase), "%q followed by %q", tt.in, tt.lit)
		assert.Equal(t, 0, s.pos, "IsFollowedBy must not consume")
	}
}

func TestNormalizeNewlines(t *testing.T) {
	tests := map[string]string{
		"a\r\nb":   "a\nb",
		"a\rb":     "a\nb",
		"\r\r\n\n": "\n\n\n",
		"\n":       "\n",
		"":         "",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, string(normalizeNewlines([]rune(in))), "%q", in)
	}
}

func TestPushbackStopsAtStart(t *testing.T) {
	s := newInputStream("x")
	s.Pushback(3)
	assert.Equal(t, 'x', s.Consume())
}

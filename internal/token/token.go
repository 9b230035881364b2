package token

import (
	"zoia/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32 // 1-based
	Col  uint32 // 0-based, в рунах
}

// IsWord reports whether the token is a word.
func (t Token) IsWord() bool { return t.Kind == Word }

// IsSpace reports whether the token is inter-word space.
func (t Token) IsSpace() bool { return t.Kind == Space }

// IsEnd reports whether the token terminates a line or the file.
func (t Token) IsEnd() bool { return t.Kind == Newline || t.Kind == EOF }

// Specials are the characters that cannot appear unescaped inside a word.
const Specials = "\\&*[],=|"

// IsSpecial reports whether b must be escaped to be part of a word.
func IsSpecial(b byte) bool {
	switch b {
	case '\\', '&', '*', '[', ']', ',', '=', '|':
		return true
	default:
		return false
	}
}

// Unescape drops the backslash of every escape sequence in a word text.
func Unescape(text string) string {
	if !containsBackslash(text) {
		return text
	}
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) && IsSpecial(text[i+1]) {
			i++
		}
		out = append(out, text[i])
	}
	return string(out)
}

func containsBackslash(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			return true
		}
	}
	return false
}

package token_test

import (
	"testing"

	"zoia/internal/token"
)

func TestKindPredicates(t *testing.T) {
	for _, k := range []token.Kind{token.Star, token.StarStar, token.StarStarStar} {
		if !k.IsMarkup() {
			t.Errorf("%v should be markup", k)
		}
		if k.IsPunct() {
			t.Errorf("%v must NOT be punct", k)
		}
	}
	for _, k := range []token.Kind{token.LBracket, token.RBracket, token.Comma, token.Equals, token.Pipe} {
		if !k.IsPunct() {
			t.Errorf("%v should be punct", k)
		}
	}
	for _, k := range []token.Kind{token.Word, token.Space, token.Backslash, token.Amp} {
		if k.IsMarkup() || k.IsPunct() {
			t.Errorf("%v is neither markup nor punct", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := token.StarStarStar.String(); got != "StarStarStar" {
		t.Errorf("String() = %q", got)
	}
	if got := token.Kind(200).String(); got != "Kind(?)" {
		t.Errorf("String() of unknown kind = %q", got)
	}
}

func TestUnescape(t *testing.T) {
	tests := map[string]string{
		`romance`:      "romance",
		`romance\,angst`: "romance,angst",
		`a\*b\\c`:      `a*b\c`,
		`trailing\`:    `trailing\`,
		`\x`:           `\x`,
	}
	for in, want := range tests {
		if got := token.Unescape(in); got != want {
			t.Errorf("Unescape(%q) = %q, want %q", in, got, want)
		}
	}
}

package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Word is a run of ordinary characters, possibly with escapes (\,).
	Word
	// Space is a run of spaces and tabs (and newlines inside brackets).
	Space
	// Newline ends a line outside of argument brackets.
	Newline

	// Backslash starts a command or the file header.
	Backslash // \
	// Amp starts an alias.
	Amp // &
	// Star opens or closes italic markup.
	Star // *
	// StarStar opens or closes bold markup.
	StarStar // **
	// StarStarStar opens or closes bold italic markup. Longer runs of
	// stars also lex as StarStarStar; the parser splits them.
	StarStarStar // ***
	// LBracket opens an argument list.
	LBracket // [
	// RBracket closes an argument list.
	RBracket // ]
	// Comma separates arguments.
	Comma // ,
	// Equals separates a keyword from its value.
	Equals // =
	// Pipe marks a command without arguments.
	Pipe // |
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Word:         "Word",
	Space:        "Space",
	Newline:      "Newline",
	Backslash:    "Backslash",
	Amp:          "Amp",
	Star:         "Star",
	StarStar:     "StarStar",
	StarStarStar: "StarStarStar",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Comma:        "Comma",
	Equals:       "Equals",
	Pipe:         "Pipe",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsMarkup reports whether k is one of the emphasis delimiters.
func (k Kind) IsMarkup() bool {
	return k == Star || k == StarStar || k == StarStarStar
}

// IsPunct reports whether k is punctuation of argument lists.
func (k Kind) IsPunct() bool {
	switch k {
	case LBracket, RBracket, Comma, Equals, Pipe:
		return true
	default:
		return false
	}
}

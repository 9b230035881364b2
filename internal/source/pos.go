package source

import "fmt"

// Pos identifies where a syntactic construct starts.
// Line is 1-based and Column is 0-based, both as reported by the lexer.
type Pos struct {
	File   string
	Line   uint32
	Column uint32
}

// IsValid reports whether the position points somewhere (line numbers start at 1).
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

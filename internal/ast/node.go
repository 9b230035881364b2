package ast

import "zoia/internal/source"

// Node is implemented by every AST node.
type Node interface {
	Pos() source.Pos
	Canonical() string
}

// LineElement is one unit of content on a line: a text fragment, alias,
// command, an emphasis group or a grouping of those.
type LineElement interface {
	Node
	lineElement()
}

// Argument is a command or header argument.
type Argument interface {
	Node
	// Value is the argument content.
	Value() *LineElementsNode
	argument()
}

// Base carries the source position shared by all nodes.
type Base struct {
	Position source.Pos
}

// At is a shorthand for Base{Position: pos}.
func At(pos source.Pos) Base {
	return Base{Position: pos}
}

func (b Base) Pos() source.Pos {
	return b.Position
}

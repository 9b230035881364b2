package ast

import "strings"

// LineElementsNode groups emphasis groups and runs of regular elements.
type LineElementsNode struct {
	Base
	Elements []LineElement
}

func (n *LineElementsNode) Canonical() string { return joinCanonical(n.Elements) }
func (*LineElementsNode) lineElement()        {}

// RegularLineElementsNode is a run of text fragments, aliases and commands.
type RegularLineElementsNode struct {
	Base
	Elements []LineElement
}

func (n *RegularLineElementsNode) Canonical() string { return joinCanonical(n.Elements) }
func (*RegularLineElementsNode) lineElement()        {}

// Emphasis wraps exactly one level of regular elements; the grammar does
// not allow emphasis inside emphasis.

type BoldLineElementsNode struct {
	Base
	Inner *RegularLineElementsNode
}

func (n *BoldLineElementsNode) Canonical() string { return wrap("**", n.Inner) }
func (*BoldLineElementsNode) lineElement()        {}

type ItalicLineElementsNode struct {
	Base
	Inner *RegularLineElementsNode
}

func (n *ItalicLineElementsNode) Canonical() string { return wrap("*", n.Inner) }
func (*ItalicLineElementsNode) lineElement()        {}

type BoldItalicLineElementsNode struct {
	Base
	Inner *RegularLineElementsNode
}

func (n *BoldItalicLineElementsNode) Canonical() string { return wrap("***", n.Inner) }
func (*BoldItalicLineElementsNode) lineElement()        {}

func wrap(delim string, inner *RegularLineElementsNode) string {
	if inner == nil {
		return delim + delim
	}
	return delim + inner.Canonical() + delim
}

func joinCanonical(elems []LineElement) string {
	var sb strings.Builder
	for _, e := range elems {
		sb.WriteString(e.Canonical())
	}
	return sb.String()
}

package ast

import "strings"

// HeaderName is the command name of the file header.
const HeaderName = "zoia"

// ZoiaFileNode is the root of a document.
type ZoiaFileNode struct {
	Base
	Header *HeaderNode
	Lines  []*LineNode
}

// Canonical: header, then "\n" and the line for every line.
func (n *ZoiaFileNode) Canonical() string {
	var sb strings.Builder
	if n.Header != nil {
		sb.WriteString(n.Header.Canonical())
	}
	for _, l := range n.Lines {
		sb.WriteByte('\n')
		sb.WriteString(l.Canonical())
	}
	return sb.String()
}

// HeaderNode holds document metadata as arguments of \zoia.
type HeaderNode struct {
	Base
	Arguments []Argument
}

func (n *HeaderNode) Canonical() string {
	return commandCanonical(HeaderName, n.Arguments)
}

// LineNode is a line of prose. Elements is nil for a blank line.
type LineNode struct {
	Base
	Elements *LineElementsNode
}

func (n *LineNode) Canonical() string {
	if n.Elements == nil {
		return ""
	}
	return n.Elements.Canonical()
}

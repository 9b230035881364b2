package ast

import "strings"

// TextFragmentNode is prose text, verbatim including interior spacing and
// escape sequences.
type TextFragmentNode struct {
	Base
	Text string
}

func (n *TextFragmentNode) Canonical() string { return n.Text }
func (*TextFragmentNode) lineElement()        {}

// AliasNode references a named alias (&word).
type AliasNode struct {
	Base
	Word string
}

func (n *AliasNode) Canonical() string { return "&" + n.Word }
func (*AliasNode) lineElement()        {}

// CommandNode is \name| or \name[args]. Keywords may repeat; duplicates are
// a validation concern.
type CommandNode struct {
	Base
	Name      string
	Arguments []Argument
}

func (n *CommandNode) Canonical() string { return commandCanonical(n.Name, n.Arguments) }
func (*CommandNode) lineElement()        {}

// commandCanonical: "\name|" without arguments, otherwise "\name[" with
// every argument followed by ",\n", then "]".
func commandCanonical(name string, args []Argument) string {
	if len(args) == 0 {
		return "\\" + name + "|"
	}
	var sb strings.Builder
	sb.WriteByte('\\')
	sb.WriteString(name)
	sb.WriteByte('[')
	for _, a := range args {
		sb.WriteString(a.Canonical())
		sb.WriteString(",\n")
	}
	sb.WriteByte(']')
	return sb.String()
}

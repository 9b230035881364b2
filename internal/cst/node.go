package cst

import (
	"strconv"
	"strings"

	"zoia/internal/token"
)

// Node is one node of the concrete parse tree.
// For Terminal nodes Tok is the wrapped token; for productions it is the
// first token the production started at.
type Node struct {
	Kind     Kind
	Tok      token.Token
	Children []*Node
}

// Leaf wraps a token.
func Leaf(tok token.Token) *Node {
	return &Node{Kind: Terminal, Tok: tok}
}

// New starts a production at tok.
func New(kind Kind, start token.Token) *Node {
	return &Node{Kind: kind, Tok: start}
}

// Add appends children, skipping nils.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Start returns the starting token: 1-based line, 0-based column.
func (n *Node) Start() token.Token {
	return n.Tok
}

// IsTerminal reports whether n wraps a token of kind k.
func (n *Node) IsTerminal(k token.Kind) bool {
	return n != nil && n.Kind == Terminal && n.Tok.Kind == k
}

// Child returns the first child of the given kind, or nil.
func (n *Node) Child(k Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}

// All returns the children of the given kind in source order.
func (n *Node) All(k Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// Token returns the first terminal child of the given token kind, or nil.
func (n *Node) Token(k token.Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.IsTerminal(k) {
			return c
		}
	}
	return nil
}

// Text returns the source text spanned by n, verbatim.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.Kind == Terminal {
		return n.Tok.Text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.Kind == Terminal {
		sb.WriteString(n.Tok.Text)
		return
	}
	for _, c := range n.Children {
		c.writeText(sb)
	}
}

// String renders n as an s-expression, terminals quoted.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	n.writeTree(&sb)
	return sb.String()
}

func (n *Node) writeTree(sb *strings.Builder) {
	if n.Kind == Terminal {
		if n.Tok.Kind == token.EOF {
			sb.WriteString("<EOF>")
			return
		}
		sb.WriteString(strconv.Quote(n.Tok.Text))
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	for _, c := range n.Children {
		sb.WriteByte(' ')
		c.writeTree(sb)
	}
	sb.WriteByte(')')
}

// Walk visits n and its descendants depth-first; returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

package cst

import "zoia/internal/token"

// Per-production accessors. Each returns nil when the sub-production is
// absent in this node.

func (n *Node) Header() *Node { return n.Child(Header) }

func (n *Node) Lines() []*Node { return n.All(Line) }

func (n *Node) Arguments() *Node { return n.Child(Arguments) }

func (n *Node) ArgumentList() []*Node { return n.All(Argument) }

func (n *Node) LineElements() *Node { return n.Child(LineElements) }

func (n *Node) RegularLineElements() *Node { return n.Child(RegularLineElements) }

func (n *Node) MarkedUpLineElements() *Node { return n.Child(MarkedUpLineElements) }

func (n *Node) BoldItalicLineElements() *Node { return n.Child(BoldItalicLineElements) }

func (n *Node) BoldLineElements() *Node { return n.Child(BoldLineElements) }

func (n *Node) ItalicLineElements() *Node { return n.Child(ItalicLineElements) }

func (n *Node) LineElementList() []*Node { return n.All(LineElement) }

func (n *Node) TextFragment() *Node { return n.Child(TextFragment) }

func (n *Node) Alias() *Node { return n.Child(Alias) }

func (n *Node) Command() *Node { return n.Child(Command) }

func (n *Node) KwdArgument() *Node { return n.Child(KwdArgument) }

func (n *Node) StdArgument() *Node { return n.Child(StdArgument) }

// Word returns the word terminal of a header, command, alias or keyword
// argument.
func (n *Node) Word() *Node { return n.Token(token.Word) }

// Pipe returns the '|' terminal of an argument-less command.
func (n *Node) Pipe() *Node { return n.Token(token.Pipe) }

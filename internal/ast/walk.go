package ast

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *ZoiaFileNode:
		out := make([]Node, 0, len(n.Lines)+1)
		if n.Header != nil {
			out = append(out, n.Header)
		}
		for _, l := range n.Lines {
			out = append(out, l)
		}
		return out
	case *HeaderNode:
		return args(n.Arguments)
	case *CommandNode:
		return args(n.Arguments)
	case *LineNode:
		if n.Elements == nil {
			return nil
		}
		return []Node{n.Elements}
	case *LineElementsNode:
		return elems(n.Elements)
	case *RegularLineElementsNode:
		return elems(n.Elements)
	case *BoldLineElementsNode:
		if n.Inner != nil {
			return []Node{n.Inner}
		}
	case *ItalicLineElementsNode:
		if n.Inner != nil {
			return []Node{n.Inner}
		}
	case *BoldItalicLineElementsNode:
		if n.Inner != nil {
			return []Node{n.Inner}
		}
	case *StdArgumentNode:
		if n.Val != nil {
			return []Node{n.Val}
		}
	case *KwdArgumentNode:
		if n.Val != nil {
			return []Node{n.Val}
		}
	}
	return nil
}

func args(a []Argument) []Node {
	out := make([]Node, len(a))
	for i, x := range a {
		out[i] = x
	}
	return out
}

func elems(e []LineElement) []Node {
	out := make([]Node, len(e))
	for i, x := range e {
		out[i] = x
	}
	return out
}

// Inspect walks the tree depth-first; returning false skips the children.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// KindName is the node type name used in dumps.
func KindName(n Node) string {
	switch n.(type) {
	case *ZoiaFileNode:
		return "ZoiaFile"
	case *HeaderNode:
		return "Header"
	case *LineNode:
		return "Line"
	case *LineElementsNode:
		return "LineElements"
	case *RegularLineElementsNode:
		return "RegularLineElements"
	case *BoldLineElementsNode:
		return "Bold"
	case *ItalicLineElementsNode:
		return "Italic"
	case *BoldItalicLineElementsNode:
		return "BoldItalic"
	case *TextFragmentNode:
		return "TextFragment"
	case *AliasNode:
		return "Alias"
	case *CommandNode:
		return "Command"
	case *StdArgumentNode:
		return "StdArgument"
	case *KwdArgumentNode:
		return "KwdArgument"
	}
	return "Unknown"
}

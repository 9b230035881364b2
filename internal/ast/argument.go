package ast

// StdArgumentNode is a positional argument.
type StdArgumentNode struct {
	Base
	Val *LineElementsNode
}

func (n *StdArgumentNode) Value() *LineElementsNode { return n.Val }
func (n *StdArgumentNode) Canonical() string        { return valueCanonical(n.Val) }
func (*StdArgumentNode) argument()                  {}

// KwdArgumentNode is "keyword = value".
type KwdArgumentNode struct {
	Base
	Keyword string
	Val     *LineElementsNode
}

func (n *KwdArgumentNode) Value() *LineElementsNode { return n.Val }

// Canonical prefixes the positional form of the value with the keyword.
func (n *KwdArgumentNode) Canonical() string { return n.Keyword + " = " + valueCanonical(n.Val) }
func (*KwdArgumentNode) argument()           {}

func valueCanonical(v *LineElementsNode) string {
	if v == nil {
		return ""
	}
	return v.Canonical()
}

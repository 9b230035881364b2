package astconv

import (
	"zoia/internal/ast"
	"zoia/internal/cst"
	"zoia/internal/errs"
)

// visitArgumentsOpt: отсутствующий список аргументов - пустой срез.
func (c *Converter) visitArgumentsOpt(n *cst.Node) ([]ast.Argument, error) {
	if n == nil {
		return []ast.Argument{}, nil
	}
	if err := c.expect(n, cst.Arguments); err != nil {
		return nil, err
	}
	list := n.ArgumentList()
	out := make([]ast.Argument, 0, len(list))
	for _, a := range list {
		arg, err := c.visitArgument(a)
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

// visitArgument: stdArgument, затем kwdArgument.
func (c *Converter) visitArgument(n *cst.Node) (ast.Argument, error) {
	if std := n.StdArgument(); std != nil {
		return c.visitStdArgument(std)
	}
	if kwd := n.KwdArgument(); kwd != nil {
		return c.visitKwdArgument(kwd)
	}
	return nil, errs.Conversionf("unrecognized argument: %s", n)
}

func (c *Converter) visitStdArgument(n *cst.Node) (*ast.StdArgumentNode, error) {
	val, err := c.visitValue(n)
	if err != nil {
		return nil, err
	}
	return &ast.StdArgumentNode{Base: ast.At(c.pos(n)), Val: val}, nil
}

func (c *Converter) visitKwdArgument(n *cst.Node) (*ast.KwdArgumentNode, error) {
	kwd, err := c.word(n)
	if err != nil {
		return nil, err
	}
	val, err := c.visitValue(n)
	if err != nil {
		return nil, err
	}
	return &ast.KwdArgumentNode{Base: ast.At(c.pos(n)), Keyword: kwd, Val: val}, nil
}

func (c *Converter) visitValue(n *cst.Node) (*ast.LineElementsNode, error) {
	le := n.LineElements()
	if le == nil {
		return nil, errs.Conversionf("argument without value: %s", n)
	}
	return c.visitLineElements(le)
}

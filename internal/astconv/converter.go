package astconv

import (
	"zoia/internal/ast"
	"zoia/internal/cst"
	"zoia/internal/errs"
	"zoia/internal/source"
	"zoia/internal/token"
)

// Converter is scoped to one source file. It keeps no state between calls,
// so separate instances may run in parallel.
type Converter struct {
	file string
}

func New(file string) *Converter {
	return &Converter{file: file}
}

// File returns the file identifier recorded in produced positions.
func (c *Converter) File() string {
	return c.file
}

// Convert converts the whole document.
func (c *Converter) Convert(root *cst.Node) (*ast.ZoiaFileNode, error) {
	if root == nil {
		return nil, errs.Conversionf("no parse tree for %s", c.file)
	}
	if bad := firstError(root); bad != nil {
		return nil, errs.Conversionf("parse tree of %s contains a syntax error at %s: %s", c.file, c.pos(bad), bad)
	}
	return c.visitZoiaFile(root)
}

func firstError(root *cst.Node) *cst.Node {
	var bad *cst.Node
	root.Walk(func(n *cst.Node) bool {
		if bad != nil {
			return false
		}
		if n.Kind == cst.Error {
			bad = n
			return false
		}
		return true
	})
	return bad
}

func (c *Converter) pos(n *cst.Node) source.Pos {
	start := n.Start()
	return source.Pos{File: c.file, Line: start.Line, Column: start.Col}
}

func (c *Converter) expect(n *cst.Node, kind cst.Kind) error {
	if n == nil {
		return errs.Conversionf("expected %s, got nothing", kind)
	}
	if n.Kind != kind {
		return errs.Conversionf("expected %s, got %s", kind, n)
	}
	return nil
}

func (c *Converter) visitZoiaFile(n *cst.Node) (*ast.ZoiaFileNode, error) {
	if err := c.expect(n, cst.ZoiaFile); err != nil {
		return nil, err
	}
	header, err := c.visitHeader(n.Header())
	if err != nil {
		return nil, err
	}
	cstLines := n.Lines()
	lines := make([]*ast.LineNode, 0, len(cstLines))
	for _, l := range cstLines {
		line, err := c.visitLine(l)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return &ast.ZoiaFileNode{Base: ast.At(c.pos(n)), Header: header, Lines: lines}, nil
}

func (c *Converter) visitHeader(n *cst.Node) (*ast.HeaderNode, error) {
	if err := c.expect(n, cst.Header); err != nil {
		return nil, err
	}
	args, err := c.visitArgumentsOpt(n.Arguments())
	if err != nil {
		return nil, err
	}
	return &ast.HeaderNode{Base: ast.At(c.pos(n)), Arguments: args}, nil
}

// visitLine: пустая строка даёт LineNode без элементов.
func (c *Converter) visitLine(n *cst.Node) (*ast.LineNode, error) {
	if err := c.expect(n, cst.Line); err != nil {
		return nil, err
	}
	line := &ast.LineNode{Base: ast.At(c.pos(n))}
	if le := n.LineElements(); le != nil {
		elems, err := c.visitLineElements(le)
		if err != nil {
			return nil, err
		}
		line.Elements = elems
	}
	return line, nil
}

func (c *Converter) visitLineElements(n *cst.Node) (*ast.LineElementsNode, error) {
	if err := c.expect(n, cst.LineElements); err != nil {
		return nil, err
	}
	out := &ast.LineElementsNode{Base: ast.At(c.pos(n)), Elements: make([]ast.LineElement, 0, len(n.Children))}
	for _, child := range n.Children {
		var (
			elem ast.LineElement
			err  error
		)
		switch child.Kind {
		case cst.MarkedUpLineElements:
			elem, err = c.visitMarkedUp(child)
		case cst.RegularLineElements:
			elem, err = c.visitRegular(child)
		default:
			err = errs.Conversionf("unrecognized line elements child: %s", child)
		}
		if err != nil {
			return nil, err
		}
		out.Elements = append(out.Elements, elem)
	}
	if len(out.Elements) == 0 {
		return nil, errs.Conversionf("empty line elements at %s", c.pos(n))
	}
	return out, nil
}

func (c *Converter) visitRegular(n *cst.Node) (*ast.RegularLineElementsNode, error) {
	if err := c.expect(n, cst.RegularLineElements); err != nil {
		return nil, err
	}
	out := &ast.RegularLineElementsNode{Base: ast.At(c.pos(n)), Elements: make([]ast.LineElement, 0, len(n.Children))}
	for _, child := range n.Children {
		if child.Kind != cst.LineElement {
			return nil, errs.Conversionf("unrecognized regular line element: %s", child)
		}
		elem, err := c.visitLineElement(child)
		if err != nil {
			return nil, err
		}
		out.Elements = append(out.Elements, elem)
	}
	if len(out.Elements) == 0 {
		return nil, errs.Conversionf("empty regular line elements at %s", c.pos(n))
	}
	return out, nil
}

// visitLineElement: textFragment, затем alias, затем command.
func (c *Converter) visitLineElement(n *cst.Node) (ast.LineElement, error) {
	if tf := n.TextFragment(); tf != nil {
		return c.visitTextFragment(tf)
	}
	if alias := n.Alias(); alias != nil {
		return c.visitAlias(alias)
	}
	if cmd := n.Command(); cmd != nil {
		return c.visitCommand(cmd)
	}
	return nil, errs.Conversionf("unrecognized line element: %s", n)
}

// visitMarkedUp: boldItalic, затем bold, затем italic.
func (c *Converter) visitMarkedUp(n *cst.Node) (ast.LineElement, error) {
	if bi := n.BoldItalicLineElements(); bi != nil {
		inner, err := c.visitEmphasis(bi)
		if err != nil {
			return nil, err
		}
		return &ast.BoldItalicLineElementsNode{Base: ast.At(c.pos(bi)), Inner: inner}, nil
	}
	if b := n.BoldLineElements(); b != nil {
		inner, err := c.visitEmphasis(b)
		if err != nil {
			return nil, err
		}
		return &ast.BoldLineElementsNode{Base: ast.At(c.pos(b)), Inner: inner}, nil
	}
	if it := n.ItalicLineElements(); it != nil {
		inner, err := c.visitEmphasis(it)
		if err != nil {
			return nil, err
		}
		return &ast.ItalicLineElementsNode{Base: ast.At(c.pos(it)), Inner: inner}, nil
	}
	return nil, errs.Conversionf("unrecognized marked up line elements: %s", n)
}

func (c *Converter) visitEmphasis(n *cst.Node) (*ast.RegularLineElementsNode, error) {
	inner := n.RegularLineElements()
	if inner == nil {
		return nil, errs.Conversionf("emphasis without content: %s", n)
	}
	return c.visitRegular(inner)
}

// visitTextFragment склеивает слова и пробелы как есть.
func (c *Converter) visitTextFragment(n *cst.Node) (*ast.TextFragmentNode, error) {
	buf := make([]byte, 0, 32)
	for _, child := range n.Children {
		if !child.IsTerminal(token.Word) && !child.IsTerminal(token.Space) {
			return nil, errs.Conversionf("unexpected child of text fragment: %s", child)
		}
		buf = append(buf, child.Text()...)
	}
	if len(buf) == 0 {
		return nil, errs.Conversionf("empty text fragment at %s", c.pos(n))
	}
	return &ast.TextFragmentNode{Base: ast.At(c.pos(n)), Text: string(buf)}, nil
}

func (c *Converter) visitAlias(n *cst.Node) (*ast.AliasNode, error) {
	word, err := c.word(n)
	if err != nil {
		return nil, err
	}
	return &ast.AliasNode{Base: ast.At(c.pos(n)), Word: word}, nil
}

func (c *Converter) visitCommand(n *cst.Node) (*ast.CommandNode, error) {
	name, err := c.word(n)
	if err != nil {
		return nil, err
	}
	args, err := c.visitArgumentsOpt(n.Arguments())
	if err != nil {
		return nil, err
	}
	return &ast.CommandNode{Base: ast.At(c.pos(n)), Name: name, Arguments: args}, nil
}

// word - текст слова как в исходнике, без нормализации.
func (c *Converter) word(n *cst.Node) (string, error) {
	w := n.Word()
	if w == nil {
		return "", errs.Conversionf("missing word in %s", n)
	}
	return w.Text(), nil
}

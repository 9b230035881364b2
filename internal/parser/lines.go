package parser

import (
	"zoia/internal/cst"
	"zoia/internal/diag"
	"zoia/internal/token"
)

// startsElement: токены, с которых начинается lineElement.
// Invalid уже отрепорчен лексером, парсер только заворачивает его в cst.Error.
func startsElement(k token.Kind) bool {
	switch k {
	case token.Word, token.Space, token.Amp, token.Backslash, token.Invalid:
		return true
	}
	return false
}

func startsLineElements(k token.Kind) bool {
	return startsElement(k) || k.IsMarkup()
}

// lineElements : (markedUpLineElements | regularLineElements)+
func (p *Parser) parseLineElements() *cst.Node {
	n := cst.New(cst.LineElements, p.peek())
	for {
		k := p.peek().Kind
		switch {
		case k.IsMarkup():
			n.Add(p.parseMarkedUp())
		case startsElement(k):
			n.Add(p.parseRegular())
		default:
			return n
		}
	}
}

// regularLineElements : lineElement+
func (p *Parser) parseRegular() *cst.Node {
	n := cst.New(cst.RegularLineElements, p.peek())
	for startsElement(p.peek().Kind) {
		n.Add(p.parseLineElement())
	}
	return n
}

// lineElement : textFragment | alias | command
func (p *Parser) parseLineElement() *cst.Node {
	n := cst.New(cst.LineElement, p.peek())
	switch p.peek().Kind {
	case token.Word, token.Space:
		return n.Add(p.parseTextFragment())
	case token.Amp:
		return n.Add(p.parseAlias())
	case token.Backslash:
		return n.Add(p.parseCommand(cst.Command))
	default:
		bad := cst.New(cst.Error, p.peek())
		return n.Add(bad.Add(cst.Leaf(p.advance())))
	}
}

// textFragment : (word | Space)+
func (p *Parser) parseTextFragment() *cst.Node {
	n := cst.New(cst.TextFragment, p.peek())
	for p.at(token.Word) || p.at(token.Space) {
		n.Add(cst.Leaf(p.advance()))
	}
	return n
}

// alias : '&' word
func (p *Parser) parseAlias() *cst.Node {
	n := cst.New(cst.Alias, p.peek())
	n.Add(cst.Leaf(p.advance()))
	if w, ok := p.expect(token.Word, diag.SynExpectWord, "expected alias name after '&'"); ok {
		n.Add(cst.Leaf(w))
	}
	return n
}

// starCount - длина прогона звёздочек (0 для прочих токенов).
func starCount(tok token.Token) int {
	if !tok.Kind.IsMarkup() {
		return 0
	}
	return len(tok.Text)
}

// markedUpLineElements : boldItalicLineElements | boldLineElements | italicLineElements
func (p *Parser) parseMarkedUp() *cst.Node {
	stars := min(starCount(p.peek()), 3)
	open := p.splitStars(stars)
	outer := cst.New(cst.MarkedUpLineElements, open)
	var kind cst.Kind
	switch stars {
	case 3:
		kind = cst.BoldItalicLineElements
	case 2:
		kind = cst.BoldLineElements
	default:
		kind = cst.ItalicLineElements
	}
	inner := cst.New(kind, open)
	inner.Add(cst.Leaf(open))
	outer.Add(inner)

	if !startsElement(p.peek().Kind) {
		if p.peek().Kind.IsMarkup() {
			p.err(diag.SynNestedMarkup, "emphasis cannot be nested or empty")
		} else {
			p.err(diag.SynExpectLineElement, "expected text after '"+open.Text+"'")
		}
		p.recoverMarkup(inner, stars)
		return outer
	}
	inner.Add(p.parseRegular())

	switch got := starCount(p.peek()); {
	case got >= stars:
		inner.Add(cst.Leaf(p.splitStars(stars)))
	case got > 0:
		p.err(diag.SynNestedMarkup, "emphasis cannot be nested")
		p.recoverMarkup(inner, stars)
	default:
		p.report(diag.SynUnclosedMarkup, diag.SevError, open.Span, "unclosed '"+open.Text+"'").
			WithFix("close the emphasis", diag.FixEdit{Span: p.emptyAt(), NewText: open.Text}).
			Emit()
	}
	return outer
}

// recoverMarkup пропускает токены до закрывающих звёздочек или до конца
// строки/аргумента, чтобы не сыпать каскадом ошибок.
func (p *Parser) recoverMarkup(inner *cst.Node, stars int) {
	bad := cst.New(cst.Error, p.peek())
	for {
		tok := p.peek()
		if tok.IsEnd() || tok.Kind == token.Comma || tok.Kind == token.RBracket {
			break
		}
		if bad.Children != nil && starCount(tok) >= stars {
			inner.Add(bad)
			inner.Add(cst.Leaf(p.splitStars(stars)))
			return
		}
		bad.Add(cst.Leaf(p.advance()))
	}
	inner.Add(bad)
}

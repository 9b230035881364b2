package parser

import (
	"zoia/internal/cst"
	"zoia/internal/diag"
	"zoia/internal/source"
	"zoia/internal/token"
)

// header : '\' word (arguments | '|')
func (p *Parser) parseHeader() *cst.Node {
	if !p.at(token.Backslash) {
		p.err(diag.SynExpectHeader, "file must start with the \\"+HeaderName+" header")
		n := cst.New(cst.Header, p.peek())
		return n.Add(p.skipLine())
	}
	n := p.parseCommand(cst.Header)
	if w := n.Word(); w != nil && w.Text() != HeaderName {
		p.report(diag.SynBadHeaderName, diag.SevError, w.Tok.Span, "file header must be \\"+HeaderName+", got \\"+w.Text()).
			WithFix("rename the header", diag.FixEdit{Span: w.Tok.Span, NewText: HeaderName}).
			Emit()
	}
	return n
}

// command : '\' word (arguments | '|')
func (p *Parser) parseCommand(kind cst.Kind) *cst.Node {
	n := cst.New(kind, p.peek())
	n.Add(cst.Leaf(p.advance()))
	name, ok := p.expect(token.Word, diag.SynExpectWord, "expected command name after '\\'")
	if !ok {
		return n
	}
	n.Add(cst.Leaf(name))
	switch {
	case p.at(token.LBracket):
		n.Add(p.parseArguments())
	case p.at(token.Pipe):
		n.Add(cst.Leaf(p.advance()))
	default:
		end := source.Span{File: name.Span.File, Start: name.Span.End, End: name.Span.End}
		p.report(diag.SynExpectArguments, diag.SevError, p.getDiagnosticSpan(), "expected '[' or '|' after \\"+name.Text).
			WithFix("mark the command as argument-less", diag.FixEdit{Span: end, NewText: "|"}).
			Emit()
	}
	return n
}

// arguments : '[' (argument (',' argument)* ','?)? ']'
func (p *Parser) parseArguments() *cst.Node {
	open := p.advance()
	n := cst.New(cst.Arguments, open)
	n.Add(cst.Leaf(open))
	for {
		switch tok := p.peek(); {
		case tok.Kind == token.RBracket:
			n.Add(cst.Leaf(p.advance()))
			return n
		case tok.Kind == token.EOF:
			p.report(diag.SynUnclosedBracket, diag.SevError, open.Span, "unclosed '['").
				WithNote(p.getDiagnosticSpan(), "file ends here").
				WithFix("close the argument list", diag.FixEdit{Span: p.emptyAt(), NewText: "]"}).
				Emit()
			return n
		case tok.Kind == token.Comma:
			p.err(diag.SynEmptyArgument, "empty argument")
			n.Add(cst.Leaf(p.advance()))
			continue
		}

		arg := p.parseArgument()
		if arg == nil {
			p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek())+" in argument list")
			n.Add(p.skipArgument())
			continue
		}
		n.Add(arg)
		switch {
		case p.at(token.Comma):
			n.Add(cst.Leaf(p.advance()))
		case p.at(token.RBracket), p.at(token.EOF):
		default:
			p.err(diag.SynUnexpectedToken, "expected ',' or ']', got "+describe(p.peek()))
			n.Add(p.skipArgument())
		}
	}
}

// argument : kwdArgument | stdArgument
// kwdArgument : word '=' lineElements
// stdArgument : lineElements
func (p *Parser) parseArgument() *cst.Node {
	start := p.peek()
	n := cst.New(cst.Argument, start)
	if start.Kind == token.Word && p.peekAt(1).Kind == token.Equals {
		kwd := cst.New(cst.KwdArgument, start)
		kwd.Add(cst.Leaf(p.advance()), cst.Leaf(p.advance()))
		if !startsLineElements(p.peek().Kind) {
			p.err(diag.SynEmptyArgument, "keyword argument '"+start.Text+"' has no value")
			return n.Add(kwd)
		}
		kwd.Add(p.parseLineElements())
		return n.Add(kwd)
	}
	if !startsLineElements(start.Kind) {
		return nil
	}
	std := cst.New(cst.StdArgument, start)
	std.Add(p.parseLineElements())
	return n.Add(std)
}

// skipArgument пропускает токены до ',' / ']' / EOF.
func (p *Parser) skipArgument() *cst.Node {
	n := cst.New(cst.Error, p.peek())
	for !p.at(token.Comma) && !p.at(token.RBracket) && !p.at(token.EOF) {
		n.Add(cst.Leaf(p.advance()))
	}
	return n
}

// emptyAt - пустой span сразу после последнего съеденного токена.
func (p *Parser) emptyAt() source.Span {
	return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
}

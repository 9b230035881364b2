package parser

import (
	"strconv"
	"strings"

	"zoia/internal/diag"
	"zoia/internal/source"
	"zoia/internal/token"
)

// peekAt подтягивает токены из лексера в buf по мере надобности.
func (p *Parser) peekAt(i int) token.Token {
	for len(p.buf) <= i {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[i]
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.buf = p.buf[1:]
	if tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// splitStars отдаёт n звёздочек из текущего токена, остаток остаётся в buf.
func (p *Parser) splitStars(n int) token.Token {
	tok := p.peek()
	if len(tok.Text) <= n {
		return p.advance()
	}
	head, rest := tok, tok
	un := uint32(n) // #nosec G115 -- n <= 3
	head.Kind = starKind(n)
	head.Text = tok.Text[:n]
	head.Span.End = tok.Span.Start + un
	rest.Kind = starKind(len(tok.Text) - n)
	rest.Text = tok.Text[n:]
	rest.Span.Start = head.Span.End
	rest.Col = tok.Col + un
	p.buf[0] = rest
	p.lastSpan = head.Span
	return head
}

func starKind(n int) token.Kind {
	switch n {
	case 1:
		return token.Star
	case 2:
		return token.StarStar
	default:
		return token.StarStarStar
	}
}

// getDiagnosticSpan - возвращает лучший span для диагностики.
// Для пустого EOF используем позицию сразу после последнего токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && peek.Span.Empty() && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg).Emit()
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.getDiagnosticSpan(), msg).Emit()
}

// report считает ошибки и возвращает builder; после MaxErrors диагностики
// глушатся (builder без reporter'а).
func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) *diag.ReportBuilder {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	var r diag.Reporter
	if p.opts.MaxErrors == 0 || p.opts.CurrentErrors <= p.opts.MaxErrors {
		r = p.opts.Reporter
	}
	return diag.NewReportBuilder(r, sev, code, sp, msg)
}

// describe даёт человекочитаемое имя токена для сообщений.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Word, token.Space, token.Invalid:
		text := tok.Text
		if len(text) > 20 {
			text = text[:20] + "..."
		}
		return strings.ToLower(tok.Kind.String()) + " " + strconv.Quote(text)
	}
	return "'" + tok.Text + "'"
}

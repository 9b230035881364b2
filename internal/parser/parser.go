package parser

import (
	"zoia/internal/cst"
	"zoia/internal/diag"
	"zoia/internal/lexer"
	"zoia/internal/source"
	"zoia/internal/token"
)

// HeaderName is the only command name accepted in the file header.
const HeaderName = "zoia"

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Root   *cst.Node
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer  // поток токенов
	buf      []token.Token // lookahead; buf[0] может быть остатком расщеплённых '*'
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile - входная точка для разбора одного файла.
// Дерево возвращается всегда, даже при синтаксических ошибках; в местах
// восстановления в нём появляются узлы cst.Error.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:   lx,
		opts: opts,
	}
	root := p.parseZoiaFile()
	return Result{
		Root:   root,
		Errors: p.opts.CurrentErrors,
	}
}

// zoiaFile : header (Newline line)* EOF
func (p *Parser) parseZoiaFile() *cst.Node {
	root := cst.New(cst.ZoiaFile, p.peek())
	root.Add(p.parseHeader())
	if !p.atLineEnd() {
		p.err(diag.SynUnexpectedToken, "unexpected text after the file header")
		root.Add(p.skipLine())
	}
	for p.at(token.Newline) {
		root.Add(cst.Leaf(p.advance()))
		root.Add(p.parseLine())
	}
	root.Add(cst.Leaf(p.peek()))
	return root
}

// line : lineElements?
func (p *Parser) parseLine() *cst.Node {
	line := cst.New(cst.Line, p.peek())
	if p.atLineEnd() {
		return line
	}
	line.Add(p.parseLineElements())
	if !p.atLineEnd() {
		p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek()))
		line.Add(p.skipLine())
	}
	return line
}

// skipLine сворачивает всё до конца строки в узел cst.Error.
func (p *Parser) skipLine() *cst.Node {
	n := cst.New(cst.Error, p.peek())
	for !p.atLineEnd() {
		n.Add(cst.Leaf(p.advance()))
	}
	return n
}

func (p *Parser) atLineEnd() bool {
	return p.peek().IsEnd()
}

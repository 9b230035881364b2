package lexer

import (
	"zoia/internal/diag"
	"zoia/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(lx.opts.Reporter, code, sp, msg)
}

package lexer

import (
	"zoia/internal/diag"
	"zoia/internal/source"
	"zoia/internal/token"
)

const (
	errDangling       = diag.LexDanglingBackslash
	errUnexpectedChar = diag.LexUnexpectedChar
	errTooLong        = diag.LexTokenTooLong
)

func diagEdit(sp source.Span, text string) diag.FixEdit {
	return diag.FixEdit{Span: sp, NewText: text}
}

// scanWord читает слово: всё до пробела или спецсимвола текущего режима.
// Экранирование '\' + спецсимвол входит в слово как есть.
func (lx *Lexer) scanWord(start Mark) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			_, next, ok := lx.cursor.Peek2()
			if !ok || !token.IsSpecial(next) {
				break
			}
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if b == '\n' || isSpaceByte(b) || isControlByte(b) || lx.stopsWord(b) {
			break
		}
		lx.bumpRune()
	}
	return lx.limit(token.Word, start)
}

// stopsWord: '&' и '*' всегда, ']' ',' '=' только внутри скобок.
func (lx *Lexer) stopsWord(b byte) bool {
	switch b {
	case '&', '*':
		return true
	case ']', ',', '=':
		return lx.depth > 0
	}
	return false
}

// scanName читает имя команды или алиаса: буквы, цифры, '_' и '-'.
func (lx *Lexer) scanName() {
	for lx.atNameRune() {
		lx.bumpRune()
	}
}

func (lx *Lexer) scanSpace(start Mark) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isSpaceByte(b) && (b != '\n' || lx.depth == 0) {
			break
		}
		lx.cursor.Bump()
	}
	return lx.limit(token.Space, start)
}

// skipBoundarySpace выбрасывает пробелы внутри скобок после '[' ',' '='
// и перед ',' ']' '='.
func (lx *Lexer) skipBoundarySpace() {
	b := lx.cursor.Peek()
	if !isSpaceByte(b) && b != '\n' {
		return
	}
	m := lx.cursor.Mark()
	for {
		b = lx.cursor.Peek()
		if lx.cursor.EOF() || (!isSpaceByte(b) && b != '\n') {
			break
		}
		lx.cursor.Bump()
	}
	switch lx.prev {
	case token.LBracket, token.Comma, token.Equals:
		return
	}
	if lx.cursor.EOF() {
		return
	}
	switch lx.cursor.Peek() {
	case ',', ']', '=':
		return
	}
	lx.cursor.Reset(m)
}

func (lx *Lexer) scanBackslash(start Mark) token.Token {
	_, b1, ok := lx.cursor.Peek2()
	if ok && token.IsSpecial(b1) {
		return lx.scanWord(start)
	}
	lx.cursor.Bump()
	if lx.atNameRune() {
		lx.nameFor = token.Backslash
		return lx.make(token.Backslash, start)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(errDangling, sp, "backslash must start a command or escape a special character").
		WithFix("escape the backslash", diagEdit(source.Span{File: sp.File, Start: sp.Start, End: sp.Start}, "\\")).
		Emit()
	return lx.make(token.Invalid, start)
}

// scanStars забирает весь прогон звёздочек одним токеном; длинный прогон
// ("****") парсер расщепляет сам.
func (lx *Lexer) scanStars(start Mark) token.Token {
	n := 0
	for lx.cursor.Peek() == '*' && !lx.cursor.EOF() {
		lx.cursor.Bump()
		n++
	}
	switch n {
	case 1:
		return lx.make(token.Star, start)
	case 2:
		return lx.make(token.StarStar, start)
	default:
		return lx.make(token.StarStarStar, start)
	}
}

func (lx *Lexer) limit(kind token.Kind, start Mark) token.Token {
	if lx.cursor.Off-start.Off > maxTokenLength {
		sp := lx.cursor.SpanFrom(start)
		lx.report(errTooLong, sp, "token exceeds maximum length").Emit()
		return lx.make(token.Invalid, start)
	}
	return lx.make(kind, start)
}

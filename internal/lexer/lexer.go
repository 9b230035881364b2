package lexer

import (
	"zoia/internal/source"
	"zoia/internal/token"
)

// maxTokenLength ограничивает длину одного слова или пробельного прогона.
const maxTokenLength = 1 << 16

// Lexer режет Zoia-разметку на токены.
//
// Лексер модальный: внутри квадратных скобок аргументов ',', '=' и ']'
// становятся пунктуацией, переводы строк превращаются в Space, а пробелы
// на границах аргументов отбрасываются. Вне скобок эти символы (и '|')
// остаются частью слов. '[' и '|' сразу после имени команды всегда
// пунктуация.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена

	depth     int        // вложенность '[' ... ']'
	prev      token.Kind // последний выданный токен
	nameFor   token.Kind // Backslash или Amp, если следующим ждём имя
	afterName bool       // только что выдали имя команды
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	tok := lx.scan()
	lx.prev = tok.Kind
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Depth reports the current argument bracket nesting.
func (lx *Lexer) Depth() int {
	return lx.depth
}

func (lx *Lexer) scan() token.Token {
	nameFor := lx.nameFor
	lx.nameFor = token.Invalid
	afterName := lx.afterName
	lx.afterName = false

	if lx.depth > 0 {
		lx.skipBoundarySpace()
	}
	if lx.cursor.EOF() {
		return lx.make(token.EOF, lx.cursor.Mark())
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch {
	case nameFor != token.Invalid && lx.atNameRune():
		lx.scanName()
		if nameFor == token.Backslash {
			lx.afterName = true
		}
		return lx.make(token.Word, start)

	case ch == '\n' && lx.depth == 0:
		lx.cursor.Bump()
		return lx.make(token.Newline, start)

	case isSpaceByte(ch) || ch == '\n':
		return lx.scanSpace(start)

	case ch == '\\':
		return lx.scanBackslash(start)

	case ch == '&':
		lx.cursor.Bump()
		lx.nameFor = token.Amp
		return lx.make(token.Amp, start)

	case ch == '*':
		return lx.scanStars(start)

	case afterName && ch == '[':
		lx.cursor.Bump()
		lx.depth++
		return lx.make(token.LBracket, start)

	case afterName && ch == '|':
		lx.cursor.Bump()
		return lx.make(token.Pipe, start)

	case lx.depth > 0 && ch == ']':
		lx.cursor.Bump()
		lx.depth--
		return lx.make(token.RBracket, start)

	case lx.depth > 0 && ch == ',':
		lx.cursor.Bump()
		return lx.make(token.Comma, start)

	case lx.depth > 0 && ch == '=':
		lx.cursor.Bump()
		return lx.make(token.Equals, start)

	case isControlByte(ch):
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.report(errUnexpectedChar, sp, "unexpected control character").
			WithFix("remove the character", diagEdit(sp, "")).
			Emit()
		return lx.make(token.Invalid, start)
	}

	return lx.scanWord(start)
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Line: start.Line,
		Col:  start.Col,
	}
}

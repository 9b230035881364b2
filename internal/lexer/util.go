package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune читает текущий байт как руну
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune сдвигает курсор на одну руну
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	for range sz {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) atNameRune() bool {
	r, sz := lx.peekRune()
	return sz > 0 && isNameRune(r)
}

// ===== Классификаторы =====

func isNameRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t'
}

// isControlByte: управляющие ASCII, кроме '\t' и '\n'.
func isControlByte(b byte) bool {
	return (b < 0x20 && b != '\t' && b != '\n') || b == 0x7f
}

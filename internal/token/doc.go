// Package token defines lexical token kinds of the Zoia markup language.
// Invariants:
//   - Token.Text is the verbatim source text of the token (escapes included).
//   - Token.Span matches Text exactly (Start..End in bytes).
//   - Token.Line is 1-based, Token.Col is a 0-based rune offset in the line.
//   - Inside argument brackets newlines are lexed as Space; outside they are Newline.
package token

package lexer

import (
	"testing"

	"zoia/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zoia", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	for i, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF at %d", i)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("peek %d: got %q want %q", i, got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("bump %d: got %q want %q", i, got, want)
		}
	}
	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Expected zero bytes after EOF")
	}
}

func TestPeek2(t *testing.T) {
	cursor := NewCursor(createFile("ab"))
	b0, b1, ok := cursor.Peek2()
	if !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 must fail with one byte left")
	}
}

// TestLineCol: колонка считается в рунах, перевод строки сбрасывает её.
func TestLineCol(t *testing.T) {
	cursor := NewCursor(createFile("жa\nb"))
	if cursor.Line != 1 || cursor.Col != 0 {
		t.Fatalf("start = %d:%d", cursor.Line, cursor.Col)
	}
	cursor.Bump()
	cursor.Bump() // 'ж' занимает два байта
	if cursor.Col != 1 {
		t.Fatalf("after rune col = %d", cursor.Col)
	}
	cursor.Bump()
	cursor.Bump()
	if cursor.Line != 2 || cursor.Col != 0 {
		t.Fatalf("after newline = %d:%d", cursor.Line, cursor.Col)
	}
	cursor.Bump()
	if cursor.Line != 2 || cursor.Col != 1 {
		t.Fatalf("end = %d:%d", cursor.Line, cursor.Col)
	}
}

func TestEat(t *testing.T) {
	cursor := NewCursor(createFile("\nx"))
	if cursor.Eat('x') {
		t.Fatal("Eat must not consume a different byte")
	}
	if !cursor.Eat('\n') {
		t.Fatal("Eat must consume newline")
	}
	if cursor.Line != 2 {
		t.Fatalf("line = %d", cursor.Line)
	}
	if !cursor.Eat('x') || cursor.Eat('x') {
		t.Fatal("Eat at EOF must fail")
	}
}

func TestMarkReset(t *testing.T) {
	file := createFile("hello\nworld")
	cursor := NewCursor(file)
	cursor.Bump()
	m := cursor.Mark()
	for !cursor.EOF() {
		cursor.Bump()
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 1 || sp.End != 11 || sp.File != file.ID {
		t.Fatalf("span = %+v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 1 || cursor.Line != 1 || cursor.Col != 1 {
		t.Fatalf("reset = off %d %d:%d", cursor.Off, cursor.Line, cursor.Col)
	}
}

package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"zoia/internal/diag"
	"zoia/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("\\zoia|\nHello \\\n")
	fileID := fs.AddVirtual("/home/user/story/chapters/one.zoia", content)
	fs.SetBaseDir("/home/user/story")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexDanglingBackslash, source.Span{File: fileID, Start: 13, End: 14}, "dangling backslash"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/story/chapters/one.zoia"},
		{"Relative path", PathModeRelative, "chapters/one.zoia:2:7"},
		{"Basename only", PathModeBasename, "one.zoia:2:7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1001", "dangling backslash"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyCaretsUseDisplayWidth(t *testing.T) {
	fs := source.NewFileSet()
	// широкие руны: каждая занимает две колонки
	content := []byte("\\zoia|\n日本 \\bad[x\n")
	fileID := fs.AddVirtual("wide.zoia", content)
	start := uint32(strings.Index(string(content), "\\bad"))

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.ValUnknownCommand, source.Span{File: fileID, Start: start, End: start + 4}, "unknown command \\bad"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if lines[1] != " 2 | 日本 \\bad[x" {
		t.Fatalf("source line = %q", lines[1])
	}
	if lines[2] != "   |      ^~~~" {
		t.Fatalf("caret line = %q", lines[2])
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("\\zoia|\n\\note[a\n")
	fileID := fs.AddVirtual("test.zoia", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 12, End: 13}
	d := diag.New(diag.SevError, diag.SynUnclosedBracket, primary, "unclosed '['")
	d = d.WithNote(source.Span{File: fileID, Start: 12, End: 13}, "opened here")
	end := uint32(len(content) - 1)
	d = d.WithFix("insert ']'", diag.FixEdit{Span: source.Span{File: fileID, Start: end, End: end}, NewText: "]"})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: test.zoia:2:6: opened here",
		"fix #1: insert ']'",
		`apply="]"`,
		"preview:",
		"- \\note[a",
		"+ \\note[a]",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyContextAndWidth(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("\\zoia|\none\ntwo\nthree\n")
	fileID := fs.AddVirtual("ctx.zoia", content)

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevInfo, diag.ValInfo, source.Span{File: fileID, Start: 11, End: 14}, strings.Repeat("x", 80)))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1, Width: 40})
	output := buf.String()
	for _, want := range []string{"2 | one", "3 | two", "4 | three", "..."} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "1 | \\zoia|") {
		t.Fatalf("context must stop at one line:\n%s", output)
	}
}

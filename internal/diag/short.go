package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"zoia/internal/source"
)

// shortLine is one rendered row of the short format.
type shortLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatShortDiagnostics renders `severity CODE path:line:col message`, one
// diagnostic per line, ordered by location. Paths are relative to the file
// set's base directory when possible. Notes follow as severity "note" rows
// when includeNotes is set. Spans that do not resolve are omitted.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]shortLine, 0, len(diags))
	for _, d := range diags {
		code := d.Code.ID()
		if l, ok := locate(fs, d.Primary); ok {
			l.sev, l.code, l.msg = d.Severity.Label(), code, oneLine(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := locate(fs, n.Span); ok {
				l.sev, l.code, l.msg = "note", code, oneLine(n.Msg)
				lines = append(lines, l)
			}
		}
	}
	slices.SortStableFunc(lines, compareShort)

	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}

// locate fills path, line and column; a span from a foreign file set panics
// inside FileSet, which is reported as not found.
func locate(fs *source.FileSet, sp source.Span) (l shortLine, ok bool) {
	defer func() {
		if recover() != nil {
			l, ok = shortLine{}, false
		}
	}()
	file := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return shortLine{path: path, line: start.Line, col: start.Col}, true
}

func oneLine(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}

package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"zoia/internal/diag"
	"zoia/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	note, fix       *color.Color
	path, gutter    *color.Color
	caret, added    *color.Color
	removed         *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		note:    color.New(color.FgBlue, color.Bold),
		fix:     color.New(color.FgGreen, color.Bold),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgRed, color.Bold),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.fix, p.path, p.gutter, p.caret, p.added, p.removed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, p, d, fs, opts)
	}
}

func prettyOne(w io.Writer, p palette, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	head := fmt.Sprintf("%s %s: %s",
		p.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message)
	fmt.Fprintf(w, "%s: %s\n", p.path.Sprint(location(file, fs, opts.PathMode, start)), clip(head, opts.Width))

	writeContext(w, p, file, fs, d.Primary, opts.Context)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(nf, fs, opts.PathMode, ns), clip(n.Msg, opts.Width))
		}
	}
	if opts.ShowFixes {
		for i, f := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.fix.Sprintf("fix #%d:", i+1), f.Title)
			for _, e := range f.Edits {
				ef := fs.Get(e.Span.File)
				es, ee := fs.Resolve(e.Span)
				fmt.Fprintf(w, "    apply=%s at %s-%d:%d\n", strconv.Quote(e.NewText), location(ef, fs, opts.PathMode, es), ee.Line, ee.Col)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, e)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, l := range preview.before {
					fmt.Fprintf(w, "      %s\n", p.removed.Sprint("- "+l))
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "      %s\n", p.added.Sprint("+ "+l))
				}
			}
		}
	}
}

func location(f *source.File, fs *source.FileSet, mode PathMode, at source.LineCol) string {
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), at.Line, at.Col)
}

// writeContext печатает строку ошибки (и context строк вокруг) с каретками.
func writeContext(w io.Writer, p palette, f *source.File, fs *source.FileSet, sp source.Span, context int8) {
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	first := int64(start.Line) - int64(max(context, 0))
	if first < 1 {
		first = 1
	}
	last := int64(start.Line) + int64(max(context, 0))
	if total := int64(len(f.LineIdx)) + 1; last > total {
		last = total
	}
	gutter := len(strconv.FormatInt(last, 10))
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- ln is within the line index
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutter, ln), expandTabs(text))
		if uint32(ln) != start.Line { // #nosec G115 -- see above
			continue
		}
		// колонки в байтах, 1-based; ширина считается по рунам
		from := max(min(int(start.Col)-1, len(text)), 0)
		to := len(text)
		if end.Line == start.Line {
			to = min(int(end.Col)-1, len(text))
		}
		pad := displayWidth(text[:from])
		width := max(displayWidth(text[from:max(to, from)]), 1)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprint(strings.Repeat(" ", gutter)+" |"), strings.Repeat(" ", pad), p.caret.Sprint(marks))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "...")
}

package astconv_test

import (
	"errors"
	"strings"
	"testing"

	"zoia/internal/ast"
	"zoia/internal/astconv"
	"zoia/internal/cst"
	"zoia/internal/diag"
	"zoia/internal/errs"
	"zoia/internal/lexer"
	"zoia/internal/parser"
	"zoia/internal/source"
	"zoia/internal/testkit"
	"zoia/internal/token"
)

func parseCST(t *testing.T, src string) *cst.Node {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("story.zoia", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(lexer.New(fs.Get(fid), lexer.Options{Reporter: rep}), parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %+v", src, bag.Items())
	}
	return res.Root
}

func convert(t *testing.T, src string) *ast.ZoiaFileNode {
	t.Helper()
	file, err := astconv.New("story.zoia").Convert(parseCST(t, src))
	if err != nil {
		t.Fatalf("convert %q: %v", src, err)
	}
	return file
}

func TestTextFragmentKeepsSpacing(t *testing.T) {
	file := convert(t, "\\zoia|\nHello   world")
	regular, ok := file.Lines[0].Elements.Elements[0].(*ast.RegularLineElementsNode)
	if !ok {
		t.Fatalf("expected regular elements, got %T", file.Lines[0].Elements.Elements[0])
	}
	frag, ok := regular.Elements[0].(*ast.TextFragmentNode)
	if !ok || frag.Text != "Hello   world" {
		t.Fatalf("fragment = %#v", regular.Elements[0])
	}
}

func TestAbsentArgumentsAreEmpty(t *testing.T) {
	file := convert(t, "\\zoia|\n\\foo|")
	if file.Header.Arguments == nil || len(file.Header.Arguments) != 0 {
		t.Fatalf("header arguments = %#v", file.Header.Arguments)
	}
	regular := file.Lines[0].Elements.Elements[0].(*ast.RegularLineElementsNode)
	cmd, ok := regular.Elements[0].(*ast.CommandNode)
	if !ok {
		t.Fatalf("expected command, got %T", regular.Elements[0])
	}
	if cmd.Name != "foo" || cmd.Arguments == nil || len(cmd.Arguments) != 0 {
		t.Fatalf("command = %#v", cmd)
	}
}

func TestBlankLineHasNoElements(t *testing.T) {
	file := convert(t, "\\zoia|\n\nx")
	if len(file.Lines) != 2 || file.Lines[0].Elements != nil || file.Lines[1].Elements == nil {
		t.Fatalf("lines = %#v", file.Lines)
	}
}

func TestPositions(t *testing.T) {
	file := convert(t, "\\zoia[title = Hi]\n  &bob \\cmd[x]")
	check := func(name string, got source.Pos, line, col uint32) {
		t.Helper()
		want := source.Pos{File: "story.zoia", Line: line, Column: col}
		if got != want {
			t.Errorf("%s at %s, want %s", name, got, want)
		}
	}
	check("file", file.Pos(), 1, 0)
	check("header", file.Header.Pos(), 1, 0)
	kwd := file.Header.Arguments[0].(*ast.KwdArgumentNode)
	check("kwd", kwd.Pos(), 1, 6)
	check("kwd value", kwd.Val.Pos(), 1, 14)
	if kwd.Keyword != "title" {
		t.Errorf("keyword = %q", kwd.Keyword)
	}

	regular := file.Lines[0].Elements.Elements[0].(*ast.RegularLineElementsNode)
	check("line", file.Lines[0].Pos(), 2, 0)
	check("text", regular.Elements[0].Pos(), 2, 0)
	check("alias", regular.Elements[1].Pos(), 2, 2)
	check("command", regular.Elements[3].Pos(), 2, 7)
}

func TestMarkupKinds(t *testing.T) {
	file := convert(t, "\\zoia|\n***a*** **b** *c*")
	elems := file.Lines[0].Elements.Elements
	kinds := make([]string, len(elems))
	for i, e := range elems {
		kinds[i] = ast.KindName(e)
	}
	if got := strings.Join(kinds, ","); got != "BoldItalic,RegularLineElements,Bold,RegularLineElements,Italic" {
		t.Fatalf("kinds = %s", got)
	}
}

const story = "\\zoia[title = My Story,\n  fandom = Original Work]\n" +
	"It was a **dark** and *stormy* night.\n" +
	"\n" +
	"&bob said: \\quote[Hello\\, world, speaker = &bob].\n" +
	"***Fin***"

const storyCanonical = "\\zoia[title = My Story,\nfandom = Original Work,\n]\n" +
	"It was a **dark** and *stormy* night.\n" +
	"\n" +
	"&bob said: \\quote[Hello\\, world,\nspeaker = &bob,\n].\n" +
	"***Fin***"

func TestCanonicalFixedPoint(t *testing.T) {
	sources := []string{
		story,
		"\\zoia|",
		"\\zoia|\n",
		"\\zoia|\n**a***b*",
		"\\zoia|\n*a****b***",
		"\\zoia|\n\\outer[\\inner[x, y], k = *v*]",
		"\\zoia|\n\\empty[]",
		"\\zoia|\nprose, with = signs] and | pipes",
	}
	for _, src := range sources {
		first := convert(t, src).Canonical()
		second := convert(t, first).Canonical()
		if first != second {
			t.Errorf("canonical form is not a fixed point for %q\nfirst:  %q\nsecond: %q", src, first, second)
		}
	}
	if got := convert(t, story).Canonical(); got != storyCanonical {
		t.Fatalf("canonical mismatch\nwant %q\ngot  %q", storyCanonical, got)
	}
}

func TestPositionsFollowSource(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("story.zoia", []byte(story)))
	if err := testkit.CheckPositions(convert(t, story), sf); err != nil {
		t.Fatal(err)
	}
}

func tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text, Line: 1}
}

// fileWith собирает минимальный zoiaFile с одной строкой line.
func fileWith(line *cst.Node) *cst.Node {
	bs := tok(token.Backslash, `\`)
	header := cst.New(cst.Header, bs).Add(cst.Leaf(bs), cst.Leaf(tok(token.Word, "zoia")), cst.Leaf(tok(token.Pipe, "|")))
	return cst.New(cst.ZoiaFile, bs).Add(header, cst.Leaf(tok(token.Newline, "\n")), line, cst.Leaf(tok(token.EOF, "")))
}

func lineOf(elem *cst.Node) *cst.Node {
	w := tok(token.Word, "x")
	regular := cst.New(cst.RegularLineElements, w).Add(elem)
	return cst.New(cst.Line, w).Add(cst.New(cst.LineElements, w).Add(regular))
}

func TestUnrecognizedLineElement(t *testing.T) {
	w := tok(token.Word, "x")
	// lineElement без единой альтернативы
	bogus := cst.New(cst.LineElement, w).Add(cst.Leaf(w))
	_, err := astconv.New("bad.zoia").Convert(fileWith(lineOf(bogus)))
	var convErr *errs.ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if !strings.Contains(convErr.Msg, `unrecognized line element: (lineElement "x")`) {
		t.Fatalf("message = %q", convErr.Msg)
	}
}

func TestTextFragmentRejectsForeignChildren(t *testing.T) {
	amp := tok(token.Amp, "&")
	frag := cst.New(cst.TextFragment, amp).Add(cst.Leaf(amp))
	elem := cst.New(cst.LineElement, amp).Add(frag)
	_, err := astconv.New("bad.zoia").Convert(fileWith(lineOf(elem)))
	var convErr *errs.ConversionError
	if !errors.As(err, &convErr) || !strings.Contains(convErr.Msg, "text fragment") {
		t.Fatalf("expected text fragment error, got %v", err)
	}
}

func TestArgumentWithoutAlternative(t *testing.T) {
	bs, w := tok(token.Backslash, `\`), tok(token.Word, "x")
	// argument без stdArgument и kwdArgument
	bare := cst.New(cst.Argument, w).Add(cst.Leaf(w))
	args := cst.New(cst.Arguments, tok(token.LBracket, "[")).Add(
		cst.Leaf(tok(token.LBracket, "[")), bare, cst.Leaf(tok(token.RBracket, "]")))
	cmd := cst.New(cst.Command, bs).Add(cst.Leaf(bs), cst.Leaf(tok(token.Word, "note")), args)
	elem := cst.New(cst.LineElement, bs).Add(cmd)

	file, err := astconv.New("bad.zoia").Convert(fileWith(lineOf(elem)))
	var convErr *errs.ConversionError
	if !errors.As(err, &convErr) || file != nil {
		t.Fatalf("expected ConversionError without a tree, got %v, %v", file, err)
	}
	if !strings.Contains(convErr.Msg, `unrecognized argument: (argument "x")`) {
		t.Fatalf("message = %q", convErr.Msg)
	}
}

func TestUnrecognizedMarkup(t *testing.T) {
	star := tok(token.Star, "*")
	marked := cst.New(cst.MarkedUpLineElements, star).Add(cst.Leaf(star))
	le := cst.New(cst.LineElements, star).Add(marked)
	line := cst.New(cst.Line, star).Add(le)
	_, err := astconv.New("bad.zoia").Convert(fileWith(line))
	if err == nil || !strings.Contains(err.Error(), "unrecognized marked up line elements") {
		t.Fatalf("err = %v", err)
	}
}

func TestSyntaxErrorTreeIsRejected(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("broken.zoia", []byte("\\zoia|\n**a *b* c**"))
	res := parser.ParseFile(lexer.New(fs.Get(fid), lexer.Options{}), parser.Options{})
	file, err := astconv.New("broken.zoia").Convert(res.Root)
	if err == nil || file != nil {
		t.Fatalf("expected failure without partial tree, got %v, %v", file, err)
	}
	if !strings.Contains(err.Error(), "broken.zoia:2:") {
		t.Fatalf("error must point at the broken line: %v", err)
	}
}

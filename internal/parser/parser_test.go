package parser_test

import (
	"testing"

	"zoia/internal/cst"
	"zoia/internal/diag"
)

func TestParseTrees(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "plain line",
			src:  "\\zoia|\nHello world",
			want: `(zoiaFile (header "\\" "zoia" "|") "\n" (line (lineElements (regularLineElements (lineElement (textFragment "Hello" " " "world"))))) <EOF>)`,
		},
		{
			name: "header arguments",
			src:  "\\zoia[title = Hi, Tag]",
			want: `(zoiaFile (header "\\" "zoia" (arguments "[" ` +
				`(argument (kwdArgument "title" "=" (lineElements (regularLineElements (lineElement (textFragment "Hi")))))) "," ` +
				`(argument (stdArgument (lineElements (regularLineElements (lineElement (textFragment "Tag")))))) "]")) <EOF>)`,
		},
		{
			name: "adjacent emphasis shares a star run",
			src:  "\\zoia|\n**a***b*",
			want: `(zoiaFile (header "\\" "zoia" "|") "\n" (line (lineElements ` +
				`(markedUpLineElements (boldLineElements "**" (regularLineElements (lineElement (textFragment "a"))) "**")) ` +
				`(markedUpLineElements (italicLineElements "*" (regularLineElements (lineElement (textFragment "b"))) "*")))) <EOF>)`,
		},
		{
			name: "alias and command in prose",
			src:  "\\zoia|\n&bob said \\pause|.",
			want: `(zoiaFile (header "\\" "zoia" "|") "\n" (line (lineElements (regularLineElements ` +
				`(lineElement (alias "&" "bob")) ` +
				`(lineElement (textFragment " " "said" " ")) ` +
				`(lineElement (command "\\" "pause" "|")) ` +
				`(lineElement (textFragment "."))))) <EOF>)`,
		},
		{
			name: "trailing comma",
			src:  "\\zoia[a,]",
			want: `(zoiaFile (header "\\" "zoia" (arguments "[" (argument (stdArgument (lineElements (regularLineElements (lineElement (textFragment "a")))))) "," "]")) <EOF>)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, bag := parseSource(t, tt.src, 0)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
			}
			if got := res.Root.String(); got != tt.want {
				t.Fatalf("tree mismatch\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}

func TestEmptyLinesArePreserved(t *testing.T) {
	res, bag := parseSource(t, "\\zoia|\n\nx\n", 0)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(bag))
	}
	lines := res.Root.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].LineElements() != nil || lines[2].LineElements() != nil {
		t.Fatal("blank lines must have no line elements")
	}
	if lines[1].Text() != "x" {
		t.Fatalf("line 2 text = %q", lines[1].Text())
	}
	if res.Root.Text() != "\\zoia|\n\nx\n" {
		t.Fatalf("tree text must reproduce the source, got %q", res.Root.Text())
	}
}

func TestStartPositions(t *testing.T) {
	res, _ := parseSource(t, "\\zoia|\nab \\cmd|", 0)
	line := res.Root.Lines()[0]
	elems := line.LineElements().RegularLineElements().LineElementList()
	if len(elems) != 2 {
		t.Fatalf("elements: %s", line)
	}
	cmd := elems[1].Command()
	if cmd == nil {
		t.Fatalf("expected command, got %s", elems[1])
	}
	if start := cmd.Start(); start.Line != 2 || start.Col != 3 {
		t.Fatalf("command starts at %d:%d", start.Line, start.Col)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"hello", diag.SynExpectHeader},
		{"\\story|", diag.SynBadHeaderName},
		{"\\zoia| extra", diag.SynUnexpectedToken},
		{"\\zoia|\n\\cmd x", diag.SynExpectArguments},
		{"\\zoia|\n\\cmd[a", diag.SynUnclosedBracket},
		{"\\zoia|\n**bold", diag.SynUnclosedMarkup},
		{"\\zoia|\n& x", diag.SynExpectWord},
		{"\\zoia|\n\\cmd[a,,b]", diag.SynEmptyArgument},
		{"\\zoia|\n\\cmd[k=]", diag.SynEmptyArgument},
		{"\\zoia|\n**a *b* c**", diag.SynNestedMarkup},
		{"\\zoia|\n\\cmd[a b = c]", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.code.ID(), func(t *testing.T) {
			res, bag := parseSource(t, tt.src, 0)
			if bag.Len() != 1 || bag.Items()[0].Code != tt.code {
				t.Fatalf("%q: expected exactly one %s, got %s", tt.src, tt.code.ID(), diagnosticsSummary(bag))
			}
			if res.Errors != 1 {
				t.Fatalf("error count = %d", res.Errors)
			}
		})
	}
}

func TestErrorNodesKeepSkippedText(t *testing.T) {
	res, _ := parseSource(t, "\\zoia|\n**a *b* c**", 0)
	var found *cst.Node
	res.Root.Walk(func(n *cst.Node) bool {
		if n.Kind == cst.Error && found == nil {
			found = n
		}
		return true
	})
	if found == nil || found.Text() != "*b* c" {
		t.Fatalf("error node = %v", found)
	}
}

func TestMaxErrorsSilencesReporter(t *testing.T) {
	res, bag := parseSource(t, "\\zoia|\n& a\n& b\n& c", 2)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 reported diagnostics, got %s", diagnosticsSummary(bag))
	}
	if res.Errors != 3 {
		t.Fatalf("all errors must be counted, got %d", res.Errors)
	}
}

func TestFixForMissingPipe(t *testing.T) {
	_, bag := parseSource(t, "\\zoia|\n\\cmd x", 0)
	fixes := bag.Items()[0].Fixes
	if len(fixes) != 1 || fixes[0].Edits[0].NewText != "|" || fixes[0].Edits[0].Span.Start != 11 {
		t.Fatalf("fix = %+v", fixes)
	}
}

package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"zoia/internal/cst"
	"zoia/internal/diag"
	"zoia/internal/lexer"
	"zoia/internal/parser"
	"zoia/internal/source"
)

func parseSource(t *testing.T, src string, maxErrors uint) (parser.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.zoia", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fid), lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	if res.Root == nil || res.Root.Kind != cst.ZoiaFile {
		t.Fatalf("parser must always return a zoiaFile root, got %v", res.Root)
	}
	return res, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

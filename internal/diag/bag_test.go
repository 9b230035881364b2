package diag

import (
	"testing"

	"zoia/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, LexUnexpectedChar, source.Span{}, "w")) {
		t.Fatal("first add must succeed")
	}
	if b.HasErrors() {
		t.Fatal("warnings are not errors")
	}
	if !b.HasWarnings() {
		t.Fatal("expected warning")
	}
	b.Add(NewError(SynExpectWord, source.Span{}, "e"))
	if b.Add(NewError(SynExpectWord, source.Span{}, "dropped")) {
		t.Fatal("limit must reject third diagnostic")
	}
	if b.Len() != 2 || !b.HasErrors() {
		t.Fatalf("len=%d errors=%v", b.Len(), b.HasErrors())
	}
}

func TestBagSortDedupFilter(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(ValTypeViolation, source.Span{File: 1, Start: 5, End: 6}, "late"))
	b.Add(NewError(SynExpectWord, source.Span{File: 0, Start: 3, End: 4}, "early"))
	b.Add(NewError(SynExpectWord, source.Span{File: 0, Start: 3, End: 4}, "early"))
	b.Add(New(SevInfo, ObsTimings, source.Span{File: 0, Start: 0, End: 0}, "info"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("dedup left %d items", b.Len())
	}
	b.Sort()
	if got := b.Items()[0].Message; got != "info" {
		t.Fatalf("first after sort = %q", got)
	}
	b.Filter(func(d Diagnostic) bool { return d.Severity >= SevError })
	if b.Len() != 2 || b.Items()[1].Message != "late" {
		t.Fatalf("unexpected items after filter: %+v", b.Items())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynExpectWord, source.Span{}, "a"))
	other := NewBag(2)
	other.Add(NewError(SynExpectWord, source.Span{}, "b"))
	other.Add(NewError(SynExpectWord, source.Span{}, "c"))
	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("merge len = %d", a.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexDanglingBackslash: "LEX1001",
		SynUnclosedBracket:   "SYN2005",
		CnvError:             "CNV3001",
		ValTypeViolation:     "VAL4001",
		IOLoadFileError:      "IO5001",
		ProjInvalidManifest:  "PRJ6001",
		ObsTimings:           "OBS7001",
		UnknownCode:          "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d: got %s want %s", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown code title")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, LexUnexpectedChar, source.Span{Start: 1, End: 2}, "bad").
		WithNote(source.Span{}, "here").
		WithFix("escape it", FixEdit{Span: source.Span{Start: 1, End: 1}, NewText: "\\"})
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("bag=%d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "\\" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestDedupReporterDropsRepeats(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 3, End: 4}
	ReportError(r, SynUnexpectedToken, sp, "unexpected ']'").Emit()
	ReportError(r, SynUnexpectedToken, sp, "unexpected ']'").Emit()
	ReportError(r, SynUnexpectedToken, sp, "unexpected ','").Emit()
	NewReportBuilder(r, SevWarning, SynUnexpectedToken, sp, "unexpected ']'").Emit()
	if bag.Len() != 3 {
		t.Fatalf("bag=%d, want 3", bag.Len())
	}
}

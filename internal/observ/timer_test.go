package observ

import (
	"strings"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	tm.Measure("parse", func() string { return "tokens=3" })
	idx := tm.Begin("check")
	tm.End(idx, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "parse" || rep.Phases[0].Note != "tokens=3" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.TotalMS < 0 {
		t.Fatalf("negative total")
	}
	sum := tm.Summary()
	for _, want := range []string{"timings:", "parse", "// tokens=3", "total"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary lacks %q:\n%s", want, sum)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Measure("x", func() string { return "" })
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
}

func TestReportMerge(t *testing.T) {
	var total Report
	total.Merge("a.zoia:", Report{TotalMS: 1, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}}})
	total.Merge("b.zoia:", Report{TotalMS: 2, Phases: []PhaseReport{{Name: "parse", DurationMS: 2}}})
	if total.TotalMS != 3 || len(total.Phases) != 2 || total.Phases[1].Name != "b.zoia:parse" {
		t.Fatalf("merged = %+v", total)
	}
}

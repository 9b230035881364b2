package ui

import (
	"errors"
	"strings"
	"testing"

	"zoia/internal/pipeline"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("checking", files, nil).(*progressModel)
}

func TestApplyEventTracksStages(t *testing.T) {
	m := newModel("a.zoia", "b.zoia")
	m.applyEvent(pipeline.Event{File: "a.zoia", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	if m.items[0].status != "parsing" || m.items[0].final {
		t.Fatalf("item = %+v", m.items[0])
	}
	m.applyEvent(pipeline.Event{File: "a.zoia", Stage: pipeline.StageParse, Status: pipeline.StatusDone})
	if m.items[0].final {
		t.Fatalf("a finished parse stage only")
	}
	m.applyEvent(pipeline.Event{File: "a.zoia", Stage: pipeline.StageCheck, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "b.zoia", Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: errors.New("io")})
	if !m.items[0].final || !m.items[1].final {
		t.Fatalf("both files are final: %+v", m.items)
	}
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v", got)
	}
	m.applyEvent(pipeline.Event{File: "unknown.zoia", Stage: pipeline.StageCheck, Status: pipeline.StatusDone})
}

func TestViewListsFiles(t *testing.T) {
	m := newModel("chapters/one.zoia")
	m.applyEvent(pipeline.Event{File: "chapters/one.zoia", Stage: pipeline.StageLoad, Status: pipeline.StatusCached})
	m.applyEvent(pipeline.Event{Stage: pipeline.StageCheck, Status: pipeline.StatusWorking})
	m.done = true
	view := m.View()
	for _, want := range []string{"done: checking (checking)", "cached", "chapters/one.zoia"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("chapters/very-long-name.zoia", 10); got != "chapter..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 0); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}

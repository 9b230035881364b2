package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTimings(t *testing.T) {
	var rec Recorder
	EmitQueued(&rec, []string{"a.zoia", "b.zoia"})
	Emit(&rec, "a.zoia", StageParse, StatusWorking, nil, 0)
	Emit(&rec, "a.zoia", StageParse, StatusDone, nil, 2*time.Millisecond)
	Emit(&rec, "b.zoia", StageParse, StatusDone, nil, 3*time.Millisecond)
	Emit(&rec, "b.zoia", StageCheck, StatusError, errors.New("boom"), time.Millisecond)
	Emit(&rec, "", StageCheck, StatusDone, nil, time.Second)

	if got := len(rec.Events()); got != 7 {
		t.Fatalf("events = %d", got)
	}
	tm := rec.Timings()
	if tm.Duration(StageParse) != 5*time.Millisecond {
		t.Fatalf("parse = %v", tm.Duration(StageParse))
	}
	if !tm.Has(StageCheck) || tm.Has(StageConvert) {
		t.Fatalf("unexpected stages: %+v", tm)
	}
	if tm.Sum(StageParse, StageCheck) != 6*time.Millisecond {
		t.Fatalf("sum = %v", tm.Sum(StageParse, StageCheck))
	}
}

func TestEventFinal(t *testing.T) {
	tests := []struct {
		ev   Event
		want bool
	}{
		{Event{Stage: StageCheck, Status: StatusDone}, true},
		{Event{Stage: StageParse, Status: StatusDone}, false},
		{Event{Stage: StageLoad, Status: StatusCached}, true},
		{Event{Stage: StageConvert, Status: StatusError}, true},
		{Event{Stage: StageCheck, Status: StatusWorking}, false},
		{Event{Stage: StageLoad, Status: StatusQueued}, false},
	}
	for _, tt := range tests {
		if got := tt.ev.Final(); got != tt.want {
			t.Errorf("%s/%s: Final() = %v, want %v", tt.ev.Stage, tt.ev.Status, got, tt.want)
		}
	}
}

func TestEmitNilSink(t *testing.T) {
	Emit(nil, "a", StageLoad, StatusDone, nil, 0)
	EmitQueued(nil, []string{"a"})
	var f FuncSink
	f.OnEvent(Event{})
}

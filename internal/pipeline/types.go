package pipeline

import "time"

// Stage describes a phase of the per-file pipeline.
type Stage string

const (
	// StageLoad reads the file from disk (or the cache).
	StageLoad Stage = "load"
	// StageParse covers lexing and parsing.
	StageParse   Stage = "parse"
	StageConvert Stage = "convert"
	StageCheck   Stage = "check"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageLoad, StageParse, StageConvert, StageCheck}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)


// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Final reports whether no further events follow for the file: the check
// stage finished, the result came from the cache, or a stage failed.
func (e Event) Final() bool {
	switch e.Status {
	case StatusCached, StatusError:
		return true
	case StatusDone:
		return e.Stage == StageCheck
	default:
		return false
	}
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Add accumulates a duration for the given stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event, e.g. a cache hit
	KindHeartbeat // periodic liveness signal
)

var kindNames = [...]string{"", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopePass                    // a directory run or a pipeline stage
	ScopeFile                    // one chapter file
	ScopeNode                    // single commands and arguments
)

var scopeNames = [...]string{"", "driver", "pass", "file", "node"}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one record of the trace.
//
// Path names the chapter file the event belongs to and Stage the pipeline
// stage (lex, parse, convert, check). Both are empty for run-level events.
// Diagnostics is meaningful on the end event of a file span only, see
// HasDiagnostics. Elapsed is set on end events.
type Event struct {
	Time        time.Time
	Seq         uint64
	Kind        Kind
	Scope       Scope
	SpanID      uint64
	ParentID    uint64
	Name        string
	Path        string
	Stage       string
	Diagnostics int
	Elapsed     time.Duration
	Detail      string
}

// HasDiagnostics reports whether ev carries a diagnostic count.
func (ev *Event) HasDiagnostics() bool {
	return ev.Kind == KindSpanEnd && ev.Scope == ScopeFile
}

// Label is Name, suffixed with the stage when there is one.
func (ev *Event) Label() string {
	if ev.Stage == "" {
		return ev.Name
	}
	return ev.Name + ":" + ev.Stage
}

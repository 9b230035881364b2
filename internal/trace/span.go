package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// Start describes a span or point before it is emitted.
type Start struct {
	Scope  Scope
	Name   string
	Path   string // chapter file, if any
	Stage  string // pipeline stage, if any
	Parent uint64 // enclosing span, 0 for a root
}

// Span is an open operation. The zero Span and a nil *Span are valid and
// do nothing.
type Span struct {
	tracer  Tracer
	head    Event
	emit    bool
	tracked bool
}

// Begin opens a span. File spans are registered for the heartbeat as long
// as the tracer is enabled, even when the level filters their events out.
func Begin(t Tracer, st Start) *Span {
	if t == nil || !t.Enabled() {
		return &Span{}
	}
	s := &Span{
		tracer: t,
		emit:   t.Level().ShouldEmit(st.Scope),
		head: Event{
			Time:     time.Now(),
			Kind:     KindSpanBegin,
			Scope:    st.Scope,
			SpanID:   spanCounter.Add(1),
			ParentID: st.Parent,
			Name:     st.Name,
			Path:     st.Path,
			Stage:    st.Stage,
		},
	}
	if st.Scope == ScopeFile && st.Path != "" {
		active.add(s.head.SpanID, st.Path)
		s.tracked = true
	}
	if s.emit {
		ev := s.head
		ev.Seq = seqCounter.Add(1)
		t.Emit(&ev)
	}
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	return s.close(0, detail)
}

// EndFile closes a file span and records how many diagnostics the file got.
func (s *Span) EndFile(diagnostics int, detail string) time.Duration {
	return s.close(diagnostics, detail)
}

func (s *Span) close(diagnostics int, detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	if s.tracked {
		active.remove(s.head.SpanID)
		s.tracked = false
	}
	now := time.Now()
	elapsed := now.Sub(s.head.Time)
	if s.emit {
		ev := s.head
		ev.Time, ev.Seq, ev.Kind = now, seqCounter.Add(1), KindSpanEnd
		ev.Elapsed, ev.Detail, ev.Diagnostics = elapsed, detail, diagnostics
		s.tracer.Emit(&ev)
		s.emit = false
	}
	return elapsed
}

// ID is the span id to pass as a child's parent; 0 for an inactive span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.head.SpanID
}

// Point emits an instant event.
func Point(t Tracer, st Start, detail string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(st.Scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      seqCounter.Add(1),
		Kind:     KindPoint,
		Scope:    st.Scope,
		ParentID: st.Parent,
		Name:     st.Name,
		Path:     st.Path,
		Stage:    st.Stage,
		Detail:   detail,
	})
}

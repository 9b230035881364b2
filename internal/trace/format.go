package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto Format = iota // by output file extension
	FormatText
	FormatNDJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

var processStart = time.Now()

// FormatEvent encodes ev as one line, newline included.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time        string  `json:"time"`
	Seq         uint64  `json:"seq"`
	Kind        string  `json:"kind"`
	Scope       string  `json:"scope"`
	SpanID      uint64  `json:"span_id,omitempty"`
	ParentID    uint64  `json:"parent_id,omitempty"`
	Name        string  `json:"name"`
	Path        string  `json:"path,omitempty"`
	Stage       string  `json:"stage,omitempty"`
	Diagnostics *int    `json:"diagnostics,omitempty"`
	ElapsedMS   float64 `json:"elapsed_ms,omitempty"`
	Detail      string  `json:"detail,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	out := jsonEvent{
		Time:      ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Path:      ev.Path,
		Stage:     ev.Stage,
		ElapsedMS: millis(ev.Elapsed),
		Detail:    ev.Detail,
	}
	if ev.HasDiagnostics() {
		n := ev.Diagnostics
		out.Diagnostics = &n
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = [...]string{KindSpanBegin: "> ", KindSpanEnd: "< ", KindPoint: ". ", KindHeartbeat: "~ "}

// formatText: [since start] <indent by scope><mark><name[:stage]> <path> (detail) diags=N +elapsed
func formatText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%9.3fms] ", millis(ev.Time.Sub(processStart)))
	if ev.Scope > ScopeDriver {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeDriver)))
	}
	if int(ev.Kind) < len(kindMarks) {
		sb.WriteString(kindMarks[ev.Kind])
	}
	sb.WriteString(ev.Label())
	if ev.Path != "" {
		sb.WriteByte(' ')
		sb.WriteString(ev.Path)
	}
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if ev.HasDiagnostics() {
		fmt.Fprintf(&sb, " diags=%d", ev.Diagnostics)
	}
	if ev.Kind == KindSpanEnd {
		fmt.Fprintf(&sb, " +%.3fms", millis(ev.Elapsed))
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

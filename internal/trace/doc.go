// Package trace follows chapter files through the zoia pipeline (lex,
// parse, convert, check). It answers which chapter is slow and which one a
// stuck directory run is sitting on. User-facing problems are diagnostics,
// not trace events.
//
//	zoia check --trace=- --trace-level=detail chapters/
//
// Events carry the chapter path and the pipeline stage; the end event of a
// file span also carries the number of diagnostics the file produced. A
// Heartbeat names the oldest file still in flight.
//
// Storage: StreamTracer writes text or NDJSON as events happen, RingTracer
// keeps the tail in memory for a dump on panic, ModeBoth does both. Nop is
// used when tracing is off.
//
// Spans are parented through the context:
//
//	span := trace.Begin(trace.FromContext(ctx), trace.Start{Scope: trace.ScopeFile, Name: "check_file", Path: path, Parent: trace.Parent(ctx)})
//	ctx = trace.WithParent(ctx, span)
//	defer span.EndFile(n, "")
package trace

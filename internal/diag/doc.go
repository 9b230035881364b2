// Package diag defines the diagnostic model shared by the lexer, parser,
// converter and argument checker.
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier with a stable ID like SYN2005 (see codes.go).
//   - Message – short human text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans with context.
//   - Fixes – optional text edits, e.g. escaping a stray special character.
//
// Phases emit through a Reporter so that storage stays pluggable; BagReporter
// collects into a Bag which can be sorted, deduplicated and filtered.
// Rendering lives in internal/diagfmt.
package diag

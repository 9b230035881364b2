// Package errs holds the error kinds shared by every zoia component.
//
// The package must stay importable from anywhere, so it depends on the
// standard library only. Positions are carried as plain file/line/column
// fields instead of source.Pos for the same reason.
//
//   - ConversionError – the parse tree did not have the shape the AST
//     converter expects. Unreachable for grammar-valid input.
//   - ValidationError – a well-formed argument violates its parameter type.
//   - AbstractError – an abstract operation of the type hierarchy was called.
//   - ParsingError – a file could not be parsed at all.
//   - ProjectStructureError – the project layout or manifest is invalid.
package errs

// Package astconv turns a cst tree into a typed ast tree.
//
// One visit function exists per grammar production. Where a production has
// alternatives the converter checks them in a fixed order:
//
//   - lineElement: textFragment, alias, command
//   - markedUpLineElements: boldItalic, bold, italic
//   - argument: stdArgument, kwdArgument
//
// If none matches the conversion fails with *errs.ConversionError carrying
// the tree form of the offending node. Conversion is all-or-nothing: the
// first error aborts and no partial tree is returned.
package astconv

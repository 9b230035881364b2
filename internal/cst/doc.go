// Package cst holds the concrete parse tree of a Zoia file.
//
// Every grammar production has its own Kind; tokens are kept as Terminal
// leaves so that Text reproduces the spanned source and Start gives the
// position of the first token. Accessors named after sub-productions
// return nil (or an empty slice) when the production is absent.
package cst

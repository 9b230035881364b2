// Package ast is the typed syntax tree of a Zoia document.
//
// Nodes are built once by internal/astconv and never mutated afterwards.
// Every node records the position of the token it started at and renders
// its canonical form: reparsing a canonical form and canonicalising again
// yields the same string.
package ast

package validation

import (
	"fmt"

	"zoia/internal/ast"
	"zoia/internal/errs"
)

// Rule validates arg for the declared type. base is the canonical value
// produced by the parent chain ("" for types directly under an abstract
// parent). It returns the canonical value.
type Rule func(declared *Type, arg *ast.LineElementsNode, base string) (string, error)

// Type is a parameter type descriptor.
type Type struct {
	Name   string
	Parent *Type
	rule   Rule
}

// NewType declares a type. A nil rule makes the type abstract.
func NewType(name string, parent *Type, rule Rule) *Type {
	return &Type{Name: name, Parent: parent, rule: rule}
}

// IsAbstract reports whether the type has no validation of its own.
func (t *Type) IsAbstract() bool {
	return t.rule == nil
}

// IsA reports whether t is other or descends from it.
func (t *Type) IsA(other *Type) bool {
	for cur := t; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Chain lists type names from t up to the root.
func (t *Type) Chain() []string {
	var out []string
	for cur := t; cur != nil; cur = cur.Parent {
		out = append(out, cur.Name)
	}
	return out
}

func (t *Type) String() string {
	return t.Name
}

// ValidateArg validates the value of an argument and returns its canonical
// form. Violations are *errs.ValidationError positioned inside the argument;
// an argument without a value is reported at the argument itself. Calling it
// on an abstract type is *errs.AbstractError. arg must not be nil.
func (t *Type) ValidateArg(arg ast.Argument) (string, error) {
	if t.IsAbstract() {
		return "", errs.NewAbstractError(t.Name + ".ValidateArg")
	}
	val := arg.Value()
	if val == nil {
		pos := arg.Pos()
		return "", errs.NewValidationError(pos.File, pos.Line, pos.Column,
			fmt.Sprintf("Parameters of type %s require a value", t.Name))
	}
	return t.validate(t, val)
}

func (t *Type) validate(declared *Type, val *ast.LineElementsNode) (string, error) {
	var base string
	if t.Parent != nil && !t.Parent.IsAbstract() {
		var err error
		base, err = t.Parent.validate(declared, val)
		if err != nil {
			return "", err
		}
	}
	return t.rule(declared, val, base)
}

// Fail builds a validation error positioned at arg.
func Fail(arg *ast.LineElementsNode, format string, args ...any) *errs.ValidationError {
	pos := arg.Pos()
	return errs.NewValidationError(pos.File, pos.Line, pos.Column, fmt.Sprintf(format, args...))
}

package check

import (
	"errors"
	"fmt"
	"strconv"

	"zoia/internal/ast"
	"zoia/internal/diag"
	"zoia/internal/errs"
	"zoia/internal/project"
	"zoia/internal/source"
	"zoia/internal/validation"
)

// bind matches arguments to schema parameters: positional arguments by
// order, keyword arguments by name. schema == nil skips type validation.
func (c *checker) bind(command string, at source.Pos, args []ast.Argument, schema *project.Schema) []Value {
	var out []Value
	seen := make(map[string]source.Pos, len(args))
	positional := 0
	for _, arg := range args {
		var (
			param string
			typ   *validation.Type
		)
		switch a := arg.(type) {
		case *ast.KwdArgumentNode:
			param = a.Keyword
			if first, dup := seen[a.Keyword]; dup {
				c.report(diag.ValDuplicateKeyword, a.Pos(), len(a.Keyword),
					fmt.Sprintf("keyword %q is given more than once to \\%s", a.Keyword, command)).
					WithNote(c.spanAt(first, len(a.Keyword)), "first given here").
					Emit()
				continue
			}
			seen[a.Keyword] = a.Pos()
			if schema == nil {
				continue
			}
			t, ok := schema.Keyword(a.Keyword)
			if !ok {
				b := c.report(diag.ValUnknownParam, a.Pos(), len(a.Keyword),
					fmt.Sprintf("\\%s has no parameter %q", command, a.Keyword))
				if names := schema.KeywordNames(); len(names) > 0 {
					b.WithNote(c.spanAt(at, len(command)+1), "known parameters: "+joinNames(names, ""))
				}
				b.Emit()
				continue
			}
			typ = t
		case *ast.StdArgumentNode:
			idx := positional
			positional++
			param = "#" + strconv.Itoa(idx)
			if schema == nil {
				continue
			}
			if idx >= len(schema.Positional) {
				c.report(diag.ValTooManyPositional, a.Pos(), 1,
					fmt.Sprintf("\\%s takes %d positional argument(s), got more", command, len(schema.Positional))).
					Emit()
				continue
			}
			typ = schema.Positional[idx]
		default:
			continue
		}
		canon, ok := c.validate(typ, arg)
		if !ok {
			continue
		}
		out = append(out, Value{
			Command:   command,
			Param:     param,
			Type:      typ.Name,
			Canonical: canon,
			Pos:       arg.Pos(),
		})
	}
	return out
}

func (c *checker) validate(t *validation.Type, arg ast.Argument) (string, bool) {
	canon, err := t.ValidateArg(arg)
	if err == nil {
		return canon, true
	}
	var verr *errs.ValidationError
	var aerr *errs.AbstractError
	switch {
	case errors.As(err, &verr):
		if verr.File == "" && c.file != nil {
			verr.File = c.file.Path
		}
		c.result.Errors = append(c.result.Errors, verr)
		pos := source.Pos{File: verr.File, Line: verr.Line, Column: verr.Column}
		if !pos.IsValid() {
			pos = arg.Pos()
		}
		c.report(diag.ValTypeViolation, pos, width(arg), verr.Msg).Emit()
	case errors.As(err, &aerr):
		c.report(diag.ValAbstractType, arg.Pos(), 1,
			fmt.Sprintf("parameter type %s is abstract and cannot validate arguments", t.Name)).Emit()
	default:
		c.report(diag.ValTypeViolation, arg.Pos(), 1, err.Error()).Emit()
	}
	return "", false
}

func (c *checker) report(code diag.Code, pos source.Pos, width int, msg string) *diag.ReportBuilder {
	return diag.ReportError(c.reporter, code, c.spanAt(pos, width), msg)
}

func width(arg ast.Argument) int {
	if v := arg.Value(); v != nil {
		return len(v.Canonical())
	}
	return 1
}

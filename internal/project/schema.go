package project

import (
	"errors"
	"fmt"
	"sort"

	"zoia/internal/errs"
	"zoia/internal/validation"

	"github.com/BurntSushi/toml"
)

// Schema declares the parameters of a command or of the file header.
type Schema struct {
	Name       string
	Positional []*validation.Type
	Keywords   map[string]*validation.Type
}

// Keyword returns the type of a keyword parameter.
func (s *Schema) Keyword(name string) (*validation.Type, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.Keywords[name]
	return t, ok
}

// KeywordNames returns declared keyword names, sorted.
func (s *Schema) KeywordNames() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Keywords))
	for n := range s.Keywords {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// buildSchema: "_" - список позиционных типов, остальные ключи - ключевые
// параметры с именем типа.
func buildSchema(path, table string, meta toml.MetaData, params map[string]toml.Primitive, types *validation.Registry) (*Schema, error) {
	s := &Schema{Name: table, Keywords: make(map[string]*validation.Type, len(params))}
	for key, prim := range params {
		if key == PositionalKey {
			var names []string
			if err := meta.PrimitiveDecode(prim, &names); err != nil {
				return nil, errs.NewProjectStructureError(path, fmt.Sprintf("[%s].%s must be a list of type names", table, key))
			}
			for i, n := range names {
				t, err := resolveType(path, fmt.Sprintf("[%s].%s[%d]", table, key, i), n, types)
				if err != nil {
					return nil, err
				}
				s.Positional = append(s.Positional, t)
			}
			continue
		}
		var name string
		if err := meta.PrimitiveDecode(prim, &name); err != nil {
			return nil, errs.NewProjectStructureError(path, fmt.Sprintf("[%s].%s must be a type name", table, key))
		}
		t, err := resolveType(path, fmt.Sprintf("[%s].%s", table, key), name, types)
		if err != nil {
			return nil, err
		}
		s.Keywords[key] = t
	}
	return s, nil
}

func resolveType(path, where, name string, types *validation.Registry) (*validation.Type, error) {
	t, err := types.LookupConcrete(name)
	switch {
	case err == nil:
		return t, nil
	case errors.Is(err, validation.ErrUnknownType),
		errors.Is(err, validation.ErrInvalidType),
		errors.Is(err, validation.ErrAbstractType):
		return nil, errs.NewProjectStructureError(path, where+": "+err.Error())
	default:
		return nil, err
	}
}

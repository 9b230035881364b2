package validation

import (
	"fmt"
	"strings"

	"zoia/internal/ast"
)

// ChoicePrefix starts the name of an enumerated type: "Choice:a,b,c".
const ChoicePrefix = "Choice:"

// NewChoice declares a Text subtype accepting one of options,
// case-insensitively. The canonical value is the declared spelling.
func NewChoice(options []string) (*Type, error) {
	clean := make([]string, 0, len(options))
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			return nil, fmt.Errorf("%w: empty option in choice", ErrInvalidType)
		}
		if seen[fold(o)] {
			return nil, fmt.Errorf("%w: duplicate option %q in choice", ErrInvalidType, o)
		}
		seen[fold(o)] = true
		clean = append(clean, o)
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("%w: choice without options", ErrInvalidType)
	}
	name := ChoicePrefix + strings.Join(clean, ",")
	return NewType(name, Text, func(declared *Type, arg *ast.LineElementsNode, base string) (string, error) {
		key := fold(base)
		for _, o := range clean {
			if fold(o) == key {
				return o, nil
			}
		}
		return "", Fail(arg, "Parameters of type %s must be one of %s, got %q", declared.Name, strings.Join(clean, ", "), base)
	}), nil
}

package validation

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"zoia/internal/ast"
	"zoia/internal/token"
)

var (
	// Ty is the abstract root of all parameter types.
	Ty = NewType("Ty", nil, nil)
	// Text accepts any argument without commands or aliases.
	Text = NewType("Text", Ty, textRule)
	// Tag is Text without commas. Only commas are rejected.
	Tag = NewType("Tag", Text, tagRule)
	// Int is a base-10 integer.
	Int = NewType("Int", Text, intRule)
	// Bool is true/false or yes/no, any case.
	Bool = NewType("Bool", Text, boolRule)
)

func textRule(declared *Type, arg *ast.LineElementsNode, _ string) (string, error) {
	var sb strings.Builder
	if err := flatten(declared, arg, &sb); err != nil {
		return "", err
	}
	return foldNewlines(sb.String()), nil
}

// flatten пишет текст аргумента: фрагменты без экранирования, разметка -
// своим содержимым. Команды и алиасы запрещены.
func flatten(declared *Type, n ast.Node, sb *strings.Builder) error {
	switch n := n.(type) {
	case *ast.TextFragmentNode:
		sb.WriteString(token.Unescape(n.Text))
	case *ast.AliasNode:
		return Fail(valueAt(n), "Parameters of type %s may not contain aliases", declared.Name)
	case *ast.CommandNode:
		return Fail(valueAt(n), "Parameters of type %s may not contain commands", declared.Name)
	default:
		for _, c := range ast.Children(n) {
			if err := flatten(declared, c, sb); err != nil {
				return err
			}
		}
	}
	return nil
}

// valueAt даёт узел-заглушку с позицией n для Fail.
func valueAt(n ast.Node) *ast.LineElementsNode {
	return &ast.LineElementsNode{Base: ast.At(n.Pos())}
}

// foldNewlines: переносы строк внутри скобок - это просто перенос текста,
// пробельный прогон с '\n' схлопывается в один пробел.
func foldNewlines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		j, newline := i, false
		for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
			newline = newline || s[j] == '\n'
			j++
		}
		if newline {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(s[i:j])
		}
		i = j
	}
	return sb.String()
}

func tagRule(declared *Type, arg *ast.LineElementsNode, base string) (string, error) {
	if strings.Contains(base, ",") {
		return "", Fail(arg, "Parameters of type %s may not include commas", declared.Name)
	}
	return base, nil
}

func intRule(declared *Type, arg *ast.LineElementsNode, base string) (string, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(base), 10, 64)
	if err != nil {
		return "", Fail(arg, "Parameters of type %s must be whole numbers, got %q", declared.Name, base)
	}
	return strconv.FormatInt(v, 10), nil
}

func boolRule(declared *Type, arg *ast.LineElementsNode, base string) (string, error) {
	switch fold(base) {
	case "true", "yes":
		return "true", nil
	case "false", "no":
		return "false", nil
	}
	return "", Fail(arg, "Parameters of type %s must be one of true, false, yes, no, got %q", declared.Name, base)
}

// fold приводит строку к виду для сравнения без учёта регистра.
// Caser хранит состояние, поэтому создаётся на каждый вызов.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

package validation

import (
	"errors"
	"strings"
	"testing"

	"zoia/internal/ast"
	"zoia/internal/errs"
	"zoia/internal/source"
)

var argPos = source.Pos{File: "story.zoia", Line: 3, Column: 7}

func value(elems ...ast.LineElement) *ast.LineElementsNode {
	return &ast.LineElementsNode{
		Base:     ast.At(argPos),
		Elements: []ast.LineElement{&ast.RegularLineElementsNode{Base: ast.At(argPos), Elements: elems}},
	}
}

// positional wraps a value into an argument at argPos.
func positional(elems ...ast.LineElement) ast.Argument {
	return &ast.StdArgumentNode{Base: ast.At(argPos), Val: value(elems...)}
}

func text(s string) *ast.TextFragmentNode {
	return &ast.TextFragmentNode{Base: ast.At(argPos), Text: s}
}

func TestTagAcceptsPlainText(t *testing.T) {
	got, err := Tag.ValidateArg(positional(text("romance")))
	if err != nil || got != "romance" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestTagRejectsCommas(t *testing.T) {
	for _, src := range []string{"romance,angst", `romance\, angst`} {
		_, err := Tag.ValidateArg(positional(text(src)))
		var verr *errs.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected ValidationError, got %v", src, err)
		}
		if verr.Msg != "Parameters of type Tag may not include commas" {
			t.Fatalf("message = %q", verr.Msg)
		}
		if verr.File != argPos.File || verr.Line != argPos.Line || verr.Column != argPos.Column {
			t.Fatalf("position = %s:%d:%d", verr.File, verr.Line, verr.Column)
		}
	}
}

func TestTagKeepsAsterisks(t *testing.T) {
	// only commas are rejected
	got, err := Tag.ValidateArg(positional(text(`a\*b`)))
	if err != nil || got != "a*b" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestTextFlattensMarkup(t *testing.T) {
	bold := &ast.BoldLineElementsNode{
		Base:  ast.At(argPos),
		Inner: &ast.RegularLineElementsNode{Elements: []ast.LineElement{text("dark")}},
	}
	arg := value(text("a "), text("very\n   "), text("night"))
	arg.Elements = append(arg.Elements, bold)
	got, err := Text.ValidateArg(&ast.StdArgumentNode{Base: ast.At(argPos), Val: arg})
	if err != nil || got != "a very nightdark" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestTextRejectsCommandsWithDeclaredName(t *testing.T) {
	cmdPos := source.Pos{File: "story.zoia", Line: 3, Column: 12}
	cmd := &ast.CommandNode{Base: ast.At(cmdPos), Name: "x"}
	_, err := Tag.ValidateArg(positional(text("a "), cmd))
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Msg != "Parameters of type Tag may not contain commands" || verr.Column != 12 {
		t.Fatalf("got %+v", verr)
	}

	_, err = Text.ValidateArg(positional(&ast.AliasNode{Base: ast.At(argPos), Word: "bob"}))
	if err == nil || !strings.Contains(err.Error(), "Parameters of type Text may not contain aliases") {
		t.Fatalf("alias error = %v", err)
	}
}

func TestMissingValueReportedAtArgument(t *testing.T) {
	kwPos := source.Pos{File: "story.zoia", Line: 4, Column: 9}
	_, err := Tag.ValidateArg(&ast.KwdArgumentNode{Base: ast.At(kwPos), Keyword: "mood"})
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.File != "story.zoia" || verr.Line != 4 || verr.Column != 9 {
		t.Fatalf("error not positioned at the argument: %+v", verr)
	}
	if verr.Msg != "Parameters of type Tag require a value" {
		t.Fatalf("msg = %q", verr.Msg)
	}
}

func TestAbstractRoot(t *testing.T) {
	_, err := Ty.ValidateArg(positional(text("x")))
	var aerr *errs.AbstractError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AbstractError, got %v", err)
	}
	if !Ty.IsAbstract() || Text.IsAbstract() {
		t.Fatal("only Ty is abstract")
	}
}

func TestScalarTypes(t *testing.T) {
	choice, err := NewChoice([]string{"general", " Teen ", "mature"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		ty      *Type
		in      string
		want    string
		wantErr bool
	}{
		{Int, " 042 ", "42", false},
		{Int, "-7", "-7", false},
		{Int, "seven", "", true},
		{Bool, "YES", "true", false},
		{Bool, "False", "false", false},
		{Bool, "maybe", "", true},
		{choice, "teen", "Teen", false},
		{choice, "GENERAL", "general", false},
		{choice, "explicit", "", true},
	}
	for _, tt := range tests {
		got, err := tt.ty.ValidateArg(positional(text(tt.in)))
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("%s(%q) = %q, %v", tt.ty, tt.in, got, err)
		}
	}
	if choice.Name != "Choice:general,Teen,mature" {
		t.Fatalf("choice name = %q", choice.Name)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	if ty, err := r.Lookup("Tag"); err != nil || ty != Tag {
		t.Fatalf("Tag lookup: %v %v", ty, err)
	}
	if _, err := r.Lookup("Colour"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("unknown lookup: %v", err)
	}
	if _, err := r.Lookup("Choice:"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("empty choice: %v", err)
	}
	if _, err := r.Lookup("Choice:a,A"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("duplicate choice: %v", err)
	}
	if _, err := r.LookupConcrete("Ty"); !errors.Is(err, ErrAbstractType) {
		t.Fatalf("abstract lookup: %v", err)
	}
	if ty, err := Lookup("Choice:x,y"); err != nil || !ty.IsA(Text) {
		t.Fatalf("package lookup: %v %v", ty, err)
	}
}

func TestDefinedTypeKeepsParentChecks(t *testing.T) {
	r := NewRegistry()
	slug, err := r.Define("Slug", Tag, func(declared *Type, arg *ast.LineElementsNode, base string) (string, error) {
		if strings.Contains(base, " ") {
			return "", Fail(arg, "Parameters of type %s may not contain spaces", declared.Name)
		}
		return strings.ToLower(base), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, err := slug.ValidateArg(positional(text("Slow-Burn"))); err != nil || got != "slow-burn" {
		t.Fatalf("got %q, %v", got, err)
	}
	_, err = slug.ValidateArg(positional(text("a,b")))
	if err == nil || !strings.Contains(err.Error(), "Parameters of type Slug may not include commas") {
		t.Fatalf("parent check bypassed: %v", err)
	}
	if _, err := r.Define("Slug", Tag, nil); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("redefinition: %v", err)
	}
	if got := strings.Join(slug.Chain(), " < "); got != "Slug < Tag < Text < Ty" {
		t.Fatalf("chain = %s", got)
	}
}

func TestFoldNewlines(t *testing.T) {
	cases := map[string]string{
		"a\n  b":  "a b",
		"a  b":    "a  b",
		"a \n\tb": "a b",
		"plain":   "plain",
	}
	for in, want := range cases {
		if got := foldNewlines(in); got != want {
			t.Errorf("foldNewlines(%q) = %q want %q", in, got, want)
		}
	}
}

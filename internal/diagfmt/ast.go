package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"zoia/internal/ast"
	"zoia/internal/cst"
	"zoia/internal/token"
)

type ASTNodeOutput struct {
	Type      string          `json:"type"`
	Line      uint32          `json:"line"`
	Column    uint32          `json:"column"`
	Text      string          `json:"text,omitempty"`
	Name      string          `json:"name,omitempty"`
	Canonical string          `json:"canonical,omitempty"`
	Children  []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает AST деревом с отступами.
func FormatASTPretty(w io.Writer, file *ast.ZoiaFileNode) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	fmt.Fprintln(w, astLabel(file))
	writeASTChildren(w, file, "")
	return nil
}

func writeASTChildren(w io.Writer, n ast.Node, prefix string) {
	children := ast.Children(n)
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, astLabel(c))
		writeASTChildren(w, c, prefix+next)
	}
}

// astLabel: вид узла, позиция и полезная нагрузка листа.
func astLabel(n ast.Node) string {
	label := fmt.Sprintf("%s @%s", ast.KindName(n), n.Pos())
	switch n := n.(type) {
	case *ast.TextFragmentNode:
		label += " " + strconv.Quote(n.Text)
	case *ast.AliasNode:
		label += " &" + n.Word
	case *ast.CommandNode:
		label += " \\" + n.Name
	case *ast.HeaderNode:
		label += " \\" + ast.HeaderName
	case *ast.KwdArgumentNode:
		label += " " + n.Keyword + " ="
	case *ast.LineNode:
		if n.Elements == nil {
			label += " <empty>"
		}
	}
	return label
}

// FormatASTJSON выводит AST в JSON; canonical заполняется только у корня.
func FormatASTJSON(w io.Writer, file *ast.ZoiaFileNode) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	out := astJSON(file)
	out.Canonical = file.Canonical()
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func astJSON(n ast.Node) ASTNodeOutput {
	pos := n.Pos()
	out := ASTNodeOutput{Type: ast.KindName(n), Line: pos.Line, Column: pos.Column}
	switch n := n.(type) {
	case *ast.TextFragmentNode:
		out.Text = n.Text
	case *ast.AliasNode:
		out.Name = n.Word
	case *ast.CommandNode:
		out.Name = n.Name
	case *ast.HeaderNode:
		out.Name = ast.HeaderName
	case *ast.KwdArgumentNode:
		out.Name = n.Keyword
	}
	for _, c := range ast.Children(n) {
		out.Children = append(out.Children, astJSON(c))
	}
	return out
}

// FormatCSTPretty печатает дерево разбора; терминалы - с текстом и позицией.
func FormatCSTPretty(w io.Writer, root *cst.Node) error {
	if root == nil {
		return fmt.Errorf("empty parse tree")
	}
	fmt.Fprintln(w, cstLabel(root))
	writeCSTChildren(w, root, "")
	return nil
}

func writeCSTChildren(w io.Writer, n *cst.Node, prefix string) {
	for i, c := range n.Children {
		branch, next := "├─ ", "│  "
		if i == len(n.Children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, cstLabel(c))
		writeCSTChildren(w, c, prefix+next)
	}
}

func cstLabel(n *cst.Node) string {
	if n.Kind != cst.Terminal {
		return n.Kind.String()
	}
	text := strconv.Quote(n.Tok.Text)
	if n.Tok.Kind == token.EOF {
		text = "<EOF>"
	}
	return fmt.Sprintf("%s %s @%d:%d", n.Tok.Kind, text, n.Tok.Line, n.Tok.Col)
}

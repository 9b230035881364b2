package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"zoia/internal/ast"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// FormatASTTree рисует AST сверху вниз, ASCII-графом.
func FormatASTTree(w io.Writer, file *ast.ZoiaFileNode) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	block := renderTree(buildTreeNode(file))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// buildTreeNode: узлы группировки (LineElements, RegularLineElements,
// аргументы) сворачиваются, чтобы граф оставался читаемым.
func buildTreeNode(n ast.Node) *treeNode {
	node := &treeNode{label: shortLabel(n)}
	for _, c := range ast.Children(n) {
		node.children = append(node.children, flattenTree(c)...)
	}
	return node
}

func flattenTree(n ast.Node) []*treeNode {
	switch n.(type) {
	case *ast.LineElementsNode, *ast.RegularLineElementsNode, *ast.StdArgumentNode:
		var out []*treeNode
		for _, c := range ast.Children(n) {
			out = append(out, flattenTree(c)...)
		}
		return out
	}
	return []*treeNode{buildTreeNode(n)}
}

func shortLabel(n ast.Node) string {
	switch n := n.(type) {
	case *ast.ZoiaFileNode:
		return "File"
	case *ast.HeaderNode:
		return "\\" + ast.HeaderName
	case *ast.LineNode:
		return fmt.Sprintf("L%d", n.Pos().Line)
	case *ast.TextFragmentNode:
		return strconv.Quote(n.Text)
	case *ast.AliasNode:
		return "&" + n.Word
	case *ast.CommandNode:
		return "\\" + n.Name
	case *ast.KwdArgumentNode:
		return n.Keyword + "="
	case *ast.BoldLineElementsNode:
		return "**"
	case *ast.ItalicLineElementsNode:
		return "*"
	case *ast.BoldItalicLineElementsNode:
		return "***"
	}
	return ast.KindName(n)
}

func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// renderTree converts a treeNode into a treeBlock containing an ASCII-art representation.
//
// The returned treeBlock.lines is a slice of strings representing the rendered lines of
// the node and its descendants arranged as a tree with connector characters. Widths are
// display columns, so labels with wide runes stay aligned.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := runewidth.StringWidth(label)

	if len(node.children) == 0 {
		return treeBlock{
			lines: []string{label},
			width: labelWidth,
			root:  labelWidth / 2,
		}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		maxChildHeight = max(maxChildHeight, len(childBlocks[i].lines))
	}

	const spacing = 3

	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
	} else {
		rootPos += shift
	}

	width := max(totalWidth, shift+labelWidth, rootPos+1)
	rootLine := pad(strings.Repeat(" ", shift)+label, width)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}

	lines := make([]string, 0, 2+maxChildHeight)
	lines = append(lines, rootLine, string(connector))
	for row := range maxChildHeight {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childPrefix))
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			sb.WriteString(pad(line, block.width))
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		lines = append(lines, pad(sb.String(), width))
	}

	return treeBlock{
		lines: lines,
		width: width,
		root:  rootPos,
	}
}

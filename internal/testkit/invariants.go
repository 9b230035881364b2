// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"zoia/internal/ast"
	"zoia/internal/source"
)

// CheckPositions runs a minimal set of position invariants on a converted file:
// 1) every node position is valid, names sf and lies inside its content
// 2) a child never starts before its parent
// 3) siblings appear in source order
func CheckPositions(root ast.Node, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lineCount, err := safecast.Conv[uint32](len(sf.LineIdx) + 1)
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}
	return checkNode(root, sf, lineCount)
}

func checkNode(n ast.Node, sf *source.File, lineCount uint32) error {
	pos := n.Pos()
	if !pos.IsValid() {
		return fmt.Errorf("%s has invalid position %v", ast.KindName(n), pos)
	}
	if pos.File != sf.Path {
		return fmt.Errorf("%s position names file %q, want %q", ast.KindName(n), pos.File, sf.Path)
	}
	if pos.Line > lineCount {
		return fmt.Errorf("%s at %v is past the last line %d", ast.KindName(n), pos, lineCount)
	}
	width := utf8.RuneCountInString(sf.GetLine(pos.Line))
	if int(pos.Column) > width {
		return fmt.Errorf("%s at %v is past the end of line (%d runes)", ast.KindName(n), pos, width)
	}

	prev := pos
	for i, child := range ast.Children(n) {
		cp := child.Pos()
		if before(cp, pos) {
			return fmt.Errorf("%s at %v starts before its parent %s at %v",
				ast.KindName(child), cp, ast.KindName(n), pos)
		}
		if i > 0 && before(cp, prev) {
			return fmt.Errorf("%s at %v is out of order (previous sibling at %v)", ast.KindName(child), cp, prev)
		}
		prev = cp
		if err := checkNode(child, sf, lineCount); err != nil {
			return err
		}
	}
	return nil
}

func before(a, b source.Pos) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

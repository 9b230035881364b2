package driver

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"zoia/internal/ast"
	"zoia/internal/astconv"
	"zoia/internal/cst"
	"zoia/internal/diag"
	"zoia/internal/errs"
	"zoia/internal/lexer"
	"zoia/internal/parser"
	"zoia/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Root    *cst.Node
	Bag     *diag.Bag
}

// ConvertResult extends ParseResult with the AST. AST is nil when the file
// had syntax errors or failed to convert.
type ConvertResult struct {
	ParseResult
	AST *ast.ZoiaFileNode
}

func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Root:    parseFile(file, bag, maxDiagnostics),
		Bag:     bag,
	}, nil
}

// Convert parses filePath and converts the tree into an AST.
func Convert(filePath string, maxDiagnostics int) (*ConvertResult, error) {
	parsed, err := Parse(filePath, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := &ConvertResult{ParseResult: *parsed}
	res.AST = convertFile(parsed.File, parsed.Root, parsed.Bag)
	return res, nil
}

func parseFile(file *source.File, bag *diag.Bag, maxDiagnostics int) *cst.Node {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	// лексер и парсер могут сообщить об одном месте дважды
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	result := parser.ParseFile(lx, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	return result.Root
}

// convertFile runs the converter only on files without errors so far;
// a conversion failure is reported as a CNV diagnostic.
func convertFile(file *source.File, root *cst.Node, bag *diag.Bag) *ast.ZoiaFileNode {
	if root == nil || bag.HasErrors() {
		return nil
	}
	tree, err := astconv.New(file.Path).Convert(root)
	if err != nil {
		msg := err.Error()
		var convErr *errs.ConversionError
		if !errors.As(err, &convErr) {
			msg = "conversion failed: " + msg
		}
		bag.Add(diag.NewError(diag.CnvError, source.Span{File: file.ID}, msg))
		return nil
	}
	return tree
}

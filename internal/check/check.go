package check

import (
	"zoia/internal/ast"
	"zoia/internal/diag"
	"zoia/internal/errs"
	"zoia/internal/project"
	"zoia/internal/source"
)

// Options configures the checker.
type Options struct {
	Reporter diag.Reporter
	// Manifest supplies header and command schemas. Without it only
	// structural rules (duplicate keywords) are checked.
	Manifest *project.Manifest
}

// Value is a validated argument with its canonical form.
type Value struct {
	Command   string // "zoia" for the header
	Param     string // keyword, or "#N" for the N-th positional (0-based)
	Type      string
	Canonical string
	Pos       source.Pos
}

// Result stores what the checker produced.
type Result struct {
	Header   []Value
	Values   []Value
	Errors   []*errs.ValidationError
	Commands int
}

// Check validates every argument of root against the manifest schemas and
// reports problems to opts.Reporter. file is used to map positions back to
// byte spans; it may be nil.
func Check(file *source.File, root *ast.ZoiaFileNode, opts Options) Result {
	var res Result
	if root == nil {
		return res
	}
	c := checker{
		file:     file,
		reporter: opts.Reporter,
		manifest: opts.Manifest,
		result:   &res,
	}
	c.run(root)
	return res
}

type checker struct {
	file     *source.File
	reporter diag.Reporter
	manifest *project.Manifest
	result   *Result
}

func (c *checker) run(root *ast.ZoiaFileNode) {
	if root.Header != nil {
		var schema *project.Schema
		if c.manifest != nil {
			schema = c.manifest.Header
		}
		c.result.Header = c.bind(ast.HeaderName, root.Header.Pos(), root.Header.Arguments, schema)
		for _, a := range root.Header.Arguments {
			c.walk(a)
		}
	}
	for _, l := range root.Lines {
		c.walk(l)
	}
}

// walk visits commands in source order, including commands nested inside
// argument values.
func (c *checker) walk(n ast.Node) {
	ast.Inspect(n, func(n ast.Node) bool {
		cmd, ok := n.(*ast.CommandNode)
		if !ok {
			return true
		}
		c.result.Commands++
		schema := c.lookup(cmd)
		c.result.Values = append(c.result.Values, c.bind(cmd.Name, cmd.Pos(), cmd.Arguments, schema)...)
		return true
	})
}

func (c *checker) lookup(cmd *ast.CommandNode) *project.Schema {
	if c.manifest == nil {
		return nil
	}
	if s, ok := c.manifest.Command(cmd.Name); ok {
		return s
	}
	sev := diag.SevWarning
	if c.manifest.Config.Project.Strict {
		sev = diag.SevError
	}
	sp := c.spanAt(cmd.Pos(), len(cmd.Name)+1)
	b := diag.NewReportBuilder(c.reporter, sev, diag.ValUnknownCommand, sp, "unknown command \\"+cmd.Name)
	if names := c.manifest.CommandNames(); len(names) > 0 {
		b.WithNote(sp, "declared commands: "+joinNames(names, "\\"))
	}
	b.Emit()
	return nil
}

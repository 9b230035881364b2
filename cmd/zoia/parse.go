package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zoia/internal/diag"
	"zoia/internal/diagfmt"
	"zoia/internal/driver"
	"zoia/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.zoia",
	Short: "Parse a zoia file and print its tree",
	Long: `Parse prints the concrete parse tree (--format tree) or the converted AST
(--format ast|json|diagram). Syntax errors are printed to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var canonCmd = &cobra.Command{
	Use:   "canon [flags] file.zoia",
	Short: "Print the canonical form of a zoia file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCanon,
}

// errHasDiagnostics завершает команду с кодом 1 без дополнительного сообщения
var errHasDiagnostics = errors.New("errors found")

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|ast|json|diagram)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	if format == "tree" {
		result, err := driver.Parse(filePath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := printStderrDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}
		return diagfmt.FormatCSTPretty(os.Stdout, result.Root)
	}

	result, err := driver.Convert(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printStderrDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.AST == nil {
		return errHasDiagnostics
	}

	switch format {
	case "ast":
		return diagfmt.FormatASTPretty(os.Stdout, result.AST)
	case "json":
		return diagfmt.FormatASTJSON(os.Stdout, result.AST)
	case "diagram":
		return diagfmt.FormatASTTree(os.Stdout, result.AST)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runCanon(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	result, err := driver.Convert(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	if err := printStderrDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.AST == nil {
		return errHasDiagnostics
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.AST.Canonical())
	return err
}

// printStderrDiagnostics prints warnings and errors of bag to stderr.
func printStderrDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if !bag.HasErrors() && !bag.HasWarnings() {
		return nil
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     color,
		Context:   2,
		ShowNotes: true,
	})
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zoia/internal/diag"
	"zoia/internal/diagfmt"
	"zoia/internal/driver"
	"zoia/internal/pipeline"
	"zoia/internal/project"
	"zoia/internal/source"
	"zoia/internal/trace"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.zoia|directory>",
	Short: "Validate a zoia file or every *.zoia file in a directory",
	Long: `Check runs the full pipeline (lex, parse, convert, validate) and prints the
diagnostics. Parameter types come from the nearest zoia.toml; when the directory
is the project root its chapters directory is checked.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("ui", "off", "progress view for directories (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results from the disk cache")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

type checkFlags struct {
	format           string
	noWarnings       bool
	warningsAsErrors bool
	jobs             int
	ui               uiMode
	cache            bool
	withNotes        bool
	suggest          bool
	fullPath         bool
	maxDiagnostics   int
	timings          bool
	quiet            bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	target := args[0]
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	startDir := target
	if !st.IsDir() {
		startDir = filepath.Dir(target)
	}
	manifest, _, err := project.LoadManifest(startDir, nil)
	if err != nil {
		return err
	}
	if st.IsDir() && manifest != nil && samePath(target, manifest.Root) {
		target = manifest.ChaptersDir()
	}

	recorder := &pipeline.Recorder{}
	opts := &driver.CheckOptions{
		MaxDiagnostics:   flags.maxDiagnostics,
		Jobs:             flags.jobs,
		Manifest:         manifest,
		Sink:             recorder,
		IgnoreWarnings:   flags.noWarnings,
		WarningsAsErrors: flags.warningsAsErrors,
		EnableTimings:    flags.timings,
	}
	if flags.cache {
		if opts.Cache, err = driver.OpenDiskCache("zoia"); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.Start{Scope: trace.ScopeDriver, Name: "check", Path: target})
	ctx = trace.WithParent(ctx, span)
	defer span.End("")

	var (
		fs      *source.FileSet
		results []*driver.CheckResult
	)
	if st.IsDir() {
		fs, results, err = checkDir(ctx, target, opts, flags.ui)
	} else {
		var res *driver.CheckResult
		fs, res, err = driver.Check(ctx, target, opts)
		if res != nil {
			results = []*driver.CheckResult{res}
		}
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	bag := driver.MergeBags(results)
	if err := printDiagnostics(cmd.OutOrStdout(), cmd, bag, fs, flags); err != nil {
		return err
	}
	if flags.timings {
		printStageTimings(cmd.ErrOrStderr(), recorder.Timings())
	}
	if !flags.quiet && flags.format == "pretty" {
		printSummary(cmd.ErrOrStderr(), results)
	}
	if bag.HasErrors() {
		return errHasDiagnostics
	}
	return nil
}

func checkDir(ctx context.Context, dir string, opts *driver.CheckOptions, mode uiMode) (*source.FileSet, []*driver.CheckResult, error) {
	if !shouldUseTUI(mode) {
		return driver.CheckDir(ctx, dir, opts)
	}
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return runCheckWithUI(ctx, dir, files, opts)
}

func printDiagnostics(out io.Writer, cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, flags checkFlags) error {
	pathMode := diagfmt.PathModeAuto
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch flags.format {
	case "pretty":
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     color,
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: flags.withNotes,
			ShowFixes: flags.suggest,
		})
	case "short":
		output := diag.FormatShortDiagnostics(bag.Items(), fs, flags.withNotes)
		if output != "" {
			fmt.Fprintln(out, output)
		}
	case "json":
		if err := diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     flags.withNotes,
			IncludeFixes:     flags.suggest,
		}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}
	return nil
}

func printSummary(out io.Writer, results []*driver.CheckResult) {
	var errorsN, warnings, cached int
	for _, r := range results {
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errorsN++
			case diag.SevWarning:
				warnings++
			}
		}
		if r.Cached {
			cached++
		}
	}
	fmt.Fprintf(out, "checked %d file(s): %d error(s), %d warning(s)", len(results), errorsN, warnings)
	if cached > 0 {
		fmt.Fprintf(out, ", %d from cache", cached)
	}
	fmt.Fprintln(out)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

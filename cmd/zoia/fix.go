package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"zoia/internal/diag"
	"zoia/internal/driver"
	"zoia/internal/fix"
	"zoia/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.zoia|directory>",
	Short: "Apply suggested fixes to a zoia file or directory",
	Long:  "Run the checks, surface the fixes attached to diagnostics, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "print what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, TargetID: targetID, DryRun: dryRun}
	if targetID != "" {
		opts.Mode = fix.ApplyModeID
	} else if applyAll {
		opts.Mode = fix.ApplyModeAll
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// id содержит FileID, стабильный только для одного файла
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: id can only be used with a single file")
	}

	checkOpts := &driver.CheckOptions{MaxDiagnostics: maxDiagnostics}
	var (
		fs          *source.FileSet
		diagnostics []diag.Diagnostic
	)
	if info.IsDir() {
		var results []*driver.CheckResult
		fs, results, err = driver.CheckDir(cmd.Context(), targetPath, checkOpts)
		if err != nil {
			return fmt.Errorf("fix: check failed: %w", err)
		}
		diagnostics = driver.MergeBags(results).Items()
	} else {
		var res *driver.CheckResult
		fs, res, err = driver.Check(cmd.Context(), targetPath, checkOpts)
		if err != nil {
			return fmt.Errorf("fix: check failed: %w", err)
		}
		diagnostics = res.Bag.Items()
	}

	res, applyErr := fix.Apply(fs, diagnostics, opts)
	return handleApplyResult(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(out, "  %s [%s]: %s (%d edits)\n", item.Title, item.ID, item.PrimaryPath, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(out, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}
	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(out, "No fixes applied.")
		return nil
	}
	return applyErr
}

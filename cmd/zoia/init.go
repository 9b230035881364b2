package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"zoia/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new zoia project",
	Long: `Initialize a new zoia project by creating a project manifest (zoia.toml)
and a first chapter (chapters/chapter1.zoia). If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit writes zoia.toml and the first chapter into the target directory.
// It refuses to overwrite an existing manifest; an existing chapter is kept.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "zoia-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(project.DefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	// проверяем, что написанный манифест читается
	manifest, err := project.LoadManifestFile(manifestPath, nil)
	if err != nil {
		return fmt.Errorf("generated manifest is invalid: %w", err)
	}

	chapterPath := filepath.Join(manifest.ChaptersDir(), "chapter1.zoia")
	createdChapter := false
	if _, err := os.Stat(chapterPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(chapterPath), 0o755); err != nil {
			return fmt.Errorf("failed to create chapters directory: %w", err)
		}
		if err := os.WriteFile(chapterPath, []byte(project.DefaultChapter(name)), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", chapterPath, err)
		}
		createdChapter = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized zoia project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	chapterRel, _ := filepath.Rel(target, chapterPath)
	if createdChapter {
		fmt.Fprintf(out, "  - %s\n", filepath.ToSlash(chapterRel))
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", filepath.ToSlash(chapterRel))
	}
	return nil
}

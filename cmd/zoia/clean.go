package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zoia/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the zoia check cache",
	Long:  "Remove every cached check result. The cache lives in $XDG_CACHE_HOME/zoia unless --cache-dir is given.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().String("cache-dir", "", "cache directory to clear")
}

func runClean(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return err
	}
	return cleanCache(cmd.OutOrStdout(), dir)
}

// cleanCache drops the cache at dir, or the default user cache when dir is empty.
func cleanCache(out io.Writer, dir string) error {
	var (
		cache *driver.DiskCache
		err   error
	)
	if dir != "" {
		cache, err = driver.OpenDiskCacheAt(dir)
	} else {
		cache, err = driver.OpenDiskCache("zoia")
	}
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear %q: %w", cache.Dir(), err)
	}
	_, _ = fmt.Fprintf(out, "removed cache %s\n", cache.Dir())
	return nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phpgen/pkg/cache"
	"github.com/matzehuels/phpgen/pkg/errors"
	"github.com/matzehuels/phpgen/pkg/integrations/packagist"
)

// cacheCommand manages the on-disk cache: Packagist responses from
// "deps info" and the saved terminal form.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local cache (Packagist responses, saved terminal form)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries, including the saved terminal form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, ok, err := openFileCache()
			if err != nil || !ok {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "forget <vendor/package>",
		Short: "Drop the cached Packagist metadata of one package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateComposerPackageName(args[0]); err != nil {
				return err
			}
			fc, ok, err := openFileCache()
			if err != nil || !ok {
				return err
			}
			if err := fc.Delete(cmd.Context(), packagist.CacheKey(args[0])); err != nil {
				return fmt.Errorf("forget %s: %w", args[0], err)
			}
			printSuccess("Forgot %s", args[0])
			return nil
		},
	})

	return cmd
}

// openFileCache opens the existing cache directory. It reports false when
// there is nothing cached yet.
func openFileCache() (*cache.FileCache, bool, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, false, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil, false, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, false, err
	}
	return fc, true, nil
}

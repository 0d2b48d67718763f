package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardtree/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the placement cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached placement reports and renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.cacheConfig(false)
			if err != nil {
				return fmt.Errorf("cache config: %w", err)
			}
			if cfg.Backend == cache.BackendNone {
				printInfo("Cache is disabled")
				return nil
			}

			store, err := cache.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printWarning("Backend %q cannot be cleared", cfg.Backend)
				return nil
			}
			if err := clearer.Clear(ctx); err != nil {
				return err
			}

			printSuccess("Cache cleared")
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			} else {
				printDetail("Prefix: %s", cfg.Prefix)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			if !stats {
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, size, err := fc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			printKeyValue("entries", fmt.Sprintf("%d", n))
			printKeyValue("size", formatBytes(size))
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "also print entry count and size")
	return cmd
}

// formatBytes renders n with a binary unit: 512 B, 1.5 KiB, 12.0 MiB.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

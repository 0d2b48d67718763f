package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardtree/pkg/design"
	"github.com/matzehuels/boardtree/pkg/pipeline"
)

type placeOpts struct {
	output  string
	strict  bool
	noCache bool
	refresh bool
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place <design>",
		Short: "Resolve board positions and write the placement report",
		Long: `Place builds the design tree, resolves every placeable node against its
nearest anchored ancestor and writes the placement report as JSON.

Nodes that cannot be resolved are listed under "failures". With --strict
the command exits non-zero when any failure is present.`,
		Example: `  boardtree place board.toml
  boardtree place board.toml -o placements.json --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any node cannot be placed")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the placement cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached report exists")

	cmd.ValidArgsFunction = completeDesign
	return cmd
}

func (c *CLI) runPlace(cmd *cobra.Command, path string, opts placeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	d, err := runner.Load(path)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, placeErr := runner.Place(ctx, d, pipeline.Options{
		Input:   path,
		Strict:  opts.strict,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if res == nil {
		return placeErr
	}
	prog.done(fmt.Sprintf("Placed %d of %d nodes", len(res.Report.Placements), res.Stats.NodeCount), "cached", res.CacheHit)

	if opts.output == "" {
		if err := design.WriteReport(cmd.OutOrStdout(), res.Report); err != nil {
			return err
		}
	} else {
		if err := design.WriteReportFile(res.Report, opts.output); err != nil {
			return err
		}
		printSuccess("Placement report written")
		printFile(opts.output)
		printStats(res.Stats.NodeCount, len(res.Report.Placements), len(res.Report.Failures), res.CacheHit)
		printNextStep("Draw it", "boardtree render "+path+" -f svg")
	}

	for _, f := range res.Report.Failures {
		logger.Warn("unplaced", "node", f.Path, "code", f.Code)
	}
	return placeErr
}


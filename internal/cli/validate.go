package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardtree/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "validate <design>",
		Short: "Check that a design builds and every placeable node resolves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			d, err := runner.Load(args[0])
			if err != nil {
				printError("%s", err)
				return err
			}
			res, err := runner.Place(ctx, d, pipeline.Options{
				Input:  args[0],
				Strict: true,
				Logger: loggerFromContext(ctx),
			})
			if res == nil {
				printError("%s", err)
				return err
			}
			if err != nil {
				printError("%d of %d placeable nodes unresolved", len(res.Report.Failures), len(res.Report.Failures)+len(res.Report.Placements))
				for _, f := range res.Report.Failures {
					printDetail("%s: %s", f.Path, f.Message)
				}
				if list {
					printPlacements(res.Report)
				}
				return err
			}

			printSuccess("%s is valid", args[0])
			printStats(res.Stats.NodeCount, len(res.Report.Placements), 0, false)
			if b, ok := res.Report.Bounds(""); ok {
				printKeyValue("extent", fmt.Sprintf("%s × %s", formatCoord(b.Width()), formatCoord(b.Height())))
				printKeyValue("origin", fmt.Sprintf("(%s, %s)", formatCoord(b.MinX), formatCoord(b.MinY)))
			}
			if list {
				printPlacements(res.Report)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print every resolved placement as a table")
	cmd.ValidArgsFunction = completeDesign
	return cmd
}

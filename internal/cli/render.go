package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardtree/pkg/pipeline"
)

type renderOpts struct {
	format   string
	output   string
	detailed bool
	noCache  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <design>",
		Short: "Draw the design tree as DOT or SVG",
		Long: `Render draws the composition tree. Anchored nodes are drawn bold and
nodes that failed to resolve are drawn dashed. With --detailed every label
carries the resolved position.`,
		Example: `  boardtree render board.toml -f svg -o board.svg
  boardtree render board.toml --detailed | dot -Tpng > board.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout, or <design>.svg for svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include positions in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")

	cmd.ValidArgsFunction = completeDesign
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	if opts.format != pipeline.FormatDOT && opts.format != pipeline.FormatSVG {
		return fmt.Errorf("invalid format: %q (must be dot or svg)", opts.format)
	}
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

	popts := pipeline.Options{
		Input:    path,
		Format:   opts.format,
		Detailed: opts.detailed,
		Logger:   logger,
	}
	res, err := runner.Place(ctx, d, popts)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" && opts.format == pipeline.FormatSVG {
		out = defaultOutputPath(path, opts.format)
	}

	var spin *Spinner
	if opts.format == pipeline.FormatSVG {
		spin = newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Rendering %d nodes as SVG...", res.Stats.NodeCount))
		spin.Start()
	}
	data, err := runner.Render(ctx, res, popts)
	if err == nil && out != "" {
		if spin != nil {
			spin.SetMessage("Writing " + out + "...")
		}
		if werr := os.WriteFile(out, data, 0o644); werr != nil {
			err = fmt.Errorf("write %s: %w", out, werr)
		}
	}
	if spin != nil {
		if err != nil {
			spin.StopWithError("Render failed")
		} else {
			spin.StopWithSuccess("Rendered SVG")
		}
	}
	if err != nil {
		return err
	}

	if out == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if spin == nil {
		printSuccess("Rendered %s", strings.ToUpper(opts.format))
	}
	printFile(out)
	printStats(res.Stats.NodeCount, len(res.Report.Placements), len(res.Report.Failures), res.CacheHit)
	return nil
}

// defaultOutputPath replaces the design file extension with format.
func defaultOutputPath(input, format string) string {
	base := strings.TrimSuffix(input, ".toml")
	base = strings.TrimSuffix(base, ".json")
	return base + "." + format
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeo/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		kind    string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [request.json]",
		Short: "Compute chart geometry from a request file",
		Long: `Compute chart geometry from a request file.

The request holds the chart kind, its data and optional layout options:

  {"kind": "funnel", "data": [{"name": "visits", "value": 100}]}

Files that contain only the chart data can be read with --kind. Use "-" to
read from stdin. The output is a JSON envelope with the computed geometry,
written to <input>.layout.json unless -o is given ("-o -" writes to stdout).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], kind, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "chart kind (overrides the request file)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout loads the request, computes the geometry, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, kind, output string, noCache, refresh bool) error {
	req, err := readRequest(input, kind)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", req.Kind))
	spinner.Start()

	res, err := runner.Execute(ctx, req, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Refresh: refresh,
		Logger:  loggerFromContext(ctx),
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := c.writeOutput(outputPath, res.Artifacts[pipeline.FormatJSON]); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath == stdinPath {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(string(res.Geometry.Kind), 0, res.CacheInfo.LayoutHit, false)
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render %s", appName, input))

	return nil
}

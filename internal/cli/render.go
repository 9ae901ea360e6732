package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeo/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file (single format) or base path
	kind    string  // chart kind override
	formats string  // comma-separated output formats
	width   float64 // SVG canvas width, 0 keeps the natural size
	height  float64 // SVG canvas height, 0 keeps the natural size
	title   string  // SVG document title
	noCache bool
	refresh bool
}

// renderCommand creates the render command for writing chart artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [request.json]",
		Short: "Render a chart request to SVG, JSON or Graphviz output",
		Long: `Render a chart request to one or more output formats.

Formats:
  svg   vector preview of the geometry (default)
  json  geometry envelope, as written by 'layout'
  dot   Graphviz source of a sankey flow graph
  flow  sankey flow graph laid out by Graphviz, as SVG

dot and flow only apply to sankey charts; they are skipped for other kinds
when combined with another format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "chart kind (overrides the request file)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, dot, flow (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default: natural size)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default: natural size)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runRender loads the request, runs the pipeline and writes one file per
// produced artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{
		Formats: parseFormats(opts.formats),
		Width:   opts.width,
		Height:  opts.height,
		Title:   opts.title,
		Refresh: opts.refresh,
		Logger:  logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	req, err := readRequest(input, opts.kind)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", req.Kind))
	spinner.Start()

	res, err := runner.Execute(ctx, req, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("rendered", "kind", res.Geometry.Kind, "formats", len(res.Artifacts))

	for _, f := range res.Skipped {
		printWarning("Skipped %s (only available for sankey charts)", f)
	}

	paths, err := c.writeArtifacts(res, input, opts.output)
	if err != nil {
		return err
	}
	if len(paths) == 1 && paths[0] == stdinPath {
		return nil
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(string(res.Geometry.Kind), res.Stats.Bytes, res.CacheInfo.LayoutHit, res.CacheInfo.RenderHit)
	return nil
}

// artifactName names a derived output file. JSON artifacts share the
// layout command's ".layout.json" suffix so they never overwrite a request.
func artifactName(base, format string) string {
	if format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return pipeline.Filename(base, format)
}

// writeArtifacts writes each artifact in format order. A single artifact
// goes to output verbatim; several are named after the base path.
func (c *CLI) writeArtifacts(res *pipeline.Result, input, output string) ([]string, error) {
	var formats []string
	for _, f := range pipeline.AllFormats {
		if _, ok := res.Artifacts[f]; ok {
			formats = append(formats, f)
		}
	}

	if output == stdinPath && len(formats) > 1 {
		return nil, fmt.Errorf("cannot write %d formats to stdout", len(formats))
	}

	var paths []string
	for _, f := range formats {
		path := output
		if len(formats) > 1 || path == "" {
			path = artifactName(basePath(output, input), f)
		}
		if err := c.writeOutput(path, res.Artifacts[f]); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// hitCommand creates the hit command, which reports the element under a
// point in the chart's coordinate space.
func (c *CLI) hitCommand() *cobra.Command {
	var (
		kind      string
		x, y      float64
		tolerance float64
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "hit [request.json]",
		Short: "Show the chart element at a point",
		Long: `Show the chart element at a point.

Coordinates are in the geometry's own space: percent (0-100) for funnel and
heatmap charts, pixels for the others. This is the lookup an interactive
renderer performs to build a tooltip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := widget.Interaction{Point: geom.Point{X: x, Y: y}, Tolerance: tolerance}
			return c.runHit(cmd.Context(), args[0], kind, in, noCache)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "chart kind (overrides the request file)")
	cmd.Flags().Float64VarP(&x, "x", "x", 0, "x coordinate")
	cmd.Flags().Float64VarP(&y, "y", "y", 0, "y coordinate")
	cmd.Flags().Float64Var(&tolerance, "tolerance", widget.DefaultTolerance, "hit radius")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runHit(ctx context.Context, input, kind string, in widget.Interaction, noCache bool) error {
	req, err := readRequest(input, kind)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	h, ok, err := runner.Hit(ctx, req, in)
	if err != nil {
		return err
	}
	if !ok {
		printInfo("Nothing at (%g, %g)", in.Point.X, in.Point.Y)
		return nil
	}

	printSuccess("%s %s", StyleHighlight.Render(h.Element), StyleValue.Render(fmt.Sprintf("#%d", h.Index)))
	if h.Label != "" {
		printKeyValue("Label", h.Label)
	}
	if h.Series != "" {
		printKeyValue("Series", h.Series)
	}
	printKeyValue("Value", StyleNumber.Render(strconv.FormatFloat(h.Value, 'g', -1, 64)))
	printKeyValue("Color", h.Color.Hex())
	return nil
}

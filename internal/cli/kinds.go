package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeo/pkg/widget"
)

// kindDescriptions is shown by the kinds command.
var kindDescriptions = map[widget.Kind]string{
	widget.KindGauge:       "dial with threshold bands and a pointer",
	widget.KindRadar:       "polar grid with one polygon per series",
	widget.KindCandlestick: "OHLC bars with optional volume",
	widget.KindFunnel:      "stacked, centered stage widths (percent space)",
	widget.KindHeatmap:     "colored grid cells (percent space)",
	widget.KindSankey:      "leveled flow graph with curved links",
	widget.KindLiquid:      "filled circle with a wave surface",
}

// kindsCommand lists the registered chart kinds.
func (c *CLI) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List supported chart kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.Config.Settings()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), kindsTable(widget.Default(settings)))
			return nil
		},
	}
}

func kindsTable(reg *widget.Registry) string {
	rows := make([][]string, 0, len(reg.Kinds()))
	for _, k := range reg.Kinds() {
		aliases := strings.Join(reg.Aliases(k), ", ")
		if aliases == "" {
			aliases = "—"
		}
		rows = append(rows, []string{string(k), aliases, kindDescriptions[k]})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Aliases", "Geometry").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return StyleHighlight
			default:
				return StyleDim
			}
		}).
		Render()
}

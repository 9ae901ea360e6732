// Package heatmap lays out a grid of colored cells.
//
// The grid is len(XLabels) columns by len(YLabels) rows in percent space.
// Every grid position is emitted, row by row, whether or not the input holds
// a cell for it; missing cells take value 0. Colors come from a two-stop
// gradient over the global min and max of the emitted grid. Grids larger
// than MaxCells produce an empty layout.
package heatmap

import (
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/scale"
)

// MaxCells bounds the number of grid positions Build emits.
const MaxCells = 1 << 18

// Cell is one input datum at grid position (X, Y).
type Cell struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Value float64 `json:"value"`
}

// Data is the heatmap input. Absent labels are inferred as "0".."k".
type Data struct {
	XLabels []string `json:"x_labels,omitempty"`
	YLabels []string `json:"y_labels,omitempty"`
	Cells   []Cell   `json:"cells"`
}

// Size reports the grid dimensions: the label counts, or for an axis without
// labels the largest cell index plus one. An inferred axis saturates at
// MaxCells+1 so that hostile indices cannot overflow.
func (d Data) Size() (nx, ny int) {
	nx, ny = len(d.XLabels), len(d.YLabels)
	if nx == 0 {
		nx = inferSize(d.Cells, func(c Cell) int { return c.X })
	}
	if ny == 0 {
		ny = inferSize(d.Cells, func(c Cell) int { return c.Y })
	}
	return nx, ny
}

// Fits reports whether the grid has at most MaxCells positions.
func (d Data) Fits() bool {
	nx, ny := d.Size()
	return nx <= MaxCells && ny <= MaxCells && int64(nx)*int64(ny) <= MaxCells
}

// Options selects the gradient by name ("blue" or "red-blue").
type Options struct {
	Gradient string `json:"gradient,omitempty"`
}

// CellShape is the geometry of one grid position.
type CellShape struct {
	X     int           `json:"x"`
	Y     int           `json:"y"`
	Value float64       `json:"value"`
	Rect  geom.Rect     `json:"rect"`
	Color geom.ColorRGB `json:"color"`
}

// Legend describes the color scale.
type Legend struct {
	Min      float64       `json:"min"`
	Max      float64       `json:"max"`
	Low      geom.ColorRGB `json:"low"`
	High     geom.ColorRGB `json:"high"`
	Gradient string        `json:"gradient"`
}

// Layout is the computed heatmap geometry.
type Layout struct {
	XLabels    []string    `json:"x_labels"`
	YLabels    []string    `json:"y_labels"`
	CellWidth  float64     `json:"cell_width"`
	CellHeight float64     `json:"cell_height"`
	Cells      []CellShape `json:"cells"`
	Legend     Legend      `json:"legend"`
}

// Build computes the heatmap layout for d.
func Build(d Data, opts Options) Layout {
	g := scale.GradientByName(opts.Gradient)
	l := Layout{Legend: Legend{Low: g.Low, High: g.High, Gradient: g.Name}}
	if !d.Fits() {
		return l
	}
	nx, ny := d.Size()
	l.XLabels, l.YLabels = d.XLabels, d.YLabels
	if len(l.XLabels) == 0 {
		l.XLabels = indexLabels(nx)
	}
	if len(l.YLabels) == 0 {
		l.YLabels = indexLabels(ny)
	}
	if nx == 0 || ny == 0 {
		return l
	}

	values := make([]float64, nx*ny)
	for _, c := range d.Cells {
		if c.X < 0 || c.X >= nx || c.Y < 0 || c.Y >= ny {
			continue
		}
		values[c.Y*nx+c.X] = c.Value
	}
	lo, hi := stats.Bounds(values)
	l.Legend.Min, l.Legend.Max = lo, hi

	l.CellWidth = 100 / float64(nx)
	l.CellHeight = 100 / float64(ny)
	l.Cells = make([]CellShape, 0, nx*ny)
	for y := range ny {
		for x := range nx {
			v := values[y*nx+x]
			l.Cells = append(l.Cells, CellShape{
				X:     x,
				Y:     y,
				Value: v,
				Rect: geom.Rect{
					X:      float64(x) * l.CellWidth,
					Y:      float64(y) * l.CellHeight,
					Width:  l.CellWidth,
					Height: l.CellHeight,
				},
				Color: g.At(scale.Ratio(v, lo, hi)),
			})
		}
	}
	return l
}

func inferSize(cells []Cell, coord func(Cell) int) int {
	n := 0
	for _, c := range cells {
		i := coord(c)
		if i >= MaxCells {
			return MaxCells + 1
		}
		if i+1 > n {
			n = i + 1
		}
	}
	return n
}

func indexLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

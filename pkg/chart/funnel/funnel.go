// Package funnel lays out centered, width-proportional funnel segments.
//
// Each segment is as wide as its value relative to the largest one, in
// percent of the plot width, and centered horizontally. Segments stack top
// to bottom in input order with equal heights. Connectors join consecutive
// segments and span the wider of the two.
package funnel

import (
	"math"

	"github.com/matzehuels/chartgeo/pkg/geom"
)

// Item is one funnel stage.
type Item struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Options holds the palette used for items without an explicit color.
type Options struct {
	Palette geom.Palette `json:"-"`
}

// Segment is the geometry of one item.
type Segment struct {
	Index        int           `json:"index"`
	Item         Item          `json:"item"`
	WidthPercent float64       `json:"width_percent"`
	MarginLeft   float64       `json:"margin_left"`
	Rect         geom.Rect     `json:"rect"`
	Color        geom.ColorRGB `json:"color"`
}

// Connector joins segment From to segment From+1.
type Connector struct {
	From         int     `json:"from"`
	WidthPercent float64 `json:"width_percent"`
	MarginLeft   float64 `json:"margin_left"`
}

// Layout is the computed funnel geometry.
type Layout struct {
	MaxValue   float64     `json:"max_value"`
	Segments   []Segment   `json:"segments"`
	Connectors []Connector `json:"connectors"`
}

// Build computes the funnel layout. Negative values are treated as zero.
func Build(items []Item, opts Options) Layout {
	var l Layout
	if len(items) == 0 {
		return l
	}
	for _, it := range items {
		l.MaxValue = math.Max(l.MaxValue, it.Value)
	}
	if l.MaxValue <= 0 {
		l.MaxValue = 1
	}

	height := 100 / float64(len(items))
	l.Segments = make([]Segment, len(items))
	for i, it := range items {
		w := math.Max(it.Value, 0) / l.MaxValue * 100
		m := (100 - w) / 2
		l.Segments[i] = Segment{
			Index:        i,
			Item:         it,
			WidthPercent: w,
			MarginLeft:   m,
			Rect:         geom.Rect{X: m, Y: float64(i) * height, Width: w, Height: height},
			Color:        opts.Palette.Pick(it.Color, i),
		}
	}

	l.Connectors = make([]Connector, 0, len(items)-1)
	for i := 0; i+1 < len(l.Segments); i++ {
		a, b := l.Segments[i], l.Segments[i+1]
		l.Connectors = append(l.Connectors, Connector{
			From:         i,
			WidthPercent: math.Max(a.WidthPercent, b.WidthPercent),
			MarginLeft:   math.Min(a.MarginLeft, b.MarginLeft),
		})
	}
	return l
}

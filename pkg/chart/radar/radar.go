// Package radar lays out multi-series radar (spider) charts.
//
// N indicators become N axes evenly spaced around a center, the first one
// pointing straight up. The background grid is a set of concentric regular
// polygons; each series becomes a data polygon whose vertex i sits at
// value[i]/max[i] of the radius along axis i.
//
// Axis maxima are resolved in this order: an explicit Options.Max applies to
// every axis; otherwise a positive Indicator.Max applies to its own axis;
// otherwise the largest value across all series is used.
package radar

import (
	"math"

	"github.com/matzehuels/chartgeo/pkg/geom"
)

// Defaults.
const (
	DefaultLevels      = 5
	DefaultRadius      = 150.0
	DefaultLabelOffset = 16.0

	// MaxLevels bounds Options.Levels; larger values are clamped.
	MaxLevels = 100
)

// Indicator is one radar axis.
type Indicator struct {
	Name string  `json:"name"`
	Max  float64 `json:"max,omitempty"`
}

// Series is one data polygon; Values are indexed like the indicators.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color,omitempty"`
	Values []float64 `json:"values"`
}

// Data is the radar input.
type Data struct {
	Indicators []Indicator `json:"indicators"`
	Series     []Series    `json:"series"`
}

// Options controls placement and scaling. Zero fields take the defaults.
type Options struct {
	Center      geom.Point   `json:"center"`
	Radius      float64      `json:"radius"`
	Levels      int          `json:"levels"`
	LabelOffset float64      `json:"label_offset"`
	Max         float64      `json:"max"`
	Palette     geom.Palette `json:"-"`
}

func (o Options) withDefaults() Options {
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Center == (geom.Point{}) {
		o.Center = geom.Point{X: o.Radius + 2*DefaultLabelOffset + 40, Y: o.Radius + 2*DefaultLabelOffset}
	}
	if o.Levels <= 0 {
		o.Levels = DefaultLevels
	}
	o.Levels = min(o.Levels, MaxLevels)
	if o.LabelOffset == 0 {
		o.LabelOffset = DefaultLabelOffset
	}
	return o
}

// SeriesShape is the geometry of one series.
type SeriesShape struct {
	Name    string        `json:"name"`
	Color   geom.ColorRGB `json:"color"`
	Polygon geom.Polygon  `json:"polygon"`
	Points  []geom.Point  `json:"points"`
	Values  []float64     `json:"values"`
}

// Layout is the computed radar geometry.
type Layout struct {
	Center geom.Point         `json:"center"`
	Radius float64            `json:"radius"`
	Angles []float64          `json:"angles"`
	Max    []float64          `json:"max"`
	Grid   []geom.Polygon     `json:"grid"`
	Axes   []geom.Segment     `json:"axes"`
	Labels []geom.Label       `json:"labels"`
	Series []SeriesShape      `json:"series"`
	Legend []geom.LegendEntry `json:"legend,omitempty"`
}

// AxisAngle returns the angle in radians of axis i out of n, with axis 0 pointing up.
func AxisAngle(i, n int) float64 {
	return float64(i)*(2*math.Pi/float64(n)) - math.Pi/2
}

// Build computes the radar layout for d. With no indicators the result is empty.
func Build(d Data, opts Options) Layout {
	o := opts.withDefaults()
	n := len(d.Indicators)
	l := Layout{Center: o.Center, Radius: o.Radius}
	if n == 0 {
		return l
	}

	l.Angles = make([]float64, n)
	for i := range n {
		l.Angles[i] = AxisAngle(i, n)
	}
	l.Max = axisMaxima(d, o.Max)

	at := func(i int, frac float64) geom.Point {
		return geom.Point{
			X: o.Center.X + o.Radius*frac*math.Cos(l.Angles[i]),
			Y: o.Center.Y + o.Radius*frac*math.Sin(l.Angles[i]),
		}
	}

	l.Grid = make([]geom.Polygon, 0, o.Levels)
	for lvl := 1; lvl <= o.Levels; lvl++ {
		frac := float64(lvl) / float64(o.Levels)
		pts := make([]geom.Point, n)
		for i := range n {
			pts[i] = at(i, frac)
		}
		l.Grid = append(l.Grid, geom.Polygon{Points: pts})
	}

	labelFrac := (o.Radius + o.LabelOffset) / o.Radius
	l.Axes = make([]geom.Segment, n)
	l.Labels = make([]geom.Label, n)
	for i, ind := range d.Indicators {
		l.Axes[i] = geom.Segment{From: o.Center, To: at(i, 1)}
		l.Labels[i] = geom.Label{Text: ind.Name, Pos: at(i, labelFrac)}
	}

	l.Series = make([]SeriesShape, 0, len(d.Series))
	for si, s := range d.Series {
		values := make([]float64, n)
		copy(values, s.Values)
		pts := make([]geom.Point, n)
		for i, v := range values {
			pts[i] = at(i, v/l.Max[i])
		}
		l.Series = append(l.Series, SeriesShape{
			Name:    s.Name,
			Color:   o.Palette.Pick(s.Color, si),
			Polygon: geom.Polygon{Points: pts},
			Points:  pts,
			Values:  values,
		})
	}

	if len(l.Series) > 1 {
		l.Legend = make([]geom.LegendEntry, len(l.Series))
		for i, s := range l.Series {
			l.Legend[i] = geom.LegendEntry{Name: s.Name, Color: s.Color}
		}
	}
	return l
}

func axisMaxima(d Data, explicit float64) []float64 {
	n := len(d.Indicators)
	maxima := make([]float64, n)
	if explicit > 0 {
		for i := range maxima {
			maxima[i] = explicit
		}
		return maxima
	}

	global := 0.0
	for _, s := range d.Series {
		for i, v := range s.Values {
			if i < n && v > global {
				global = v
			}
		}
	}
	if global <= 0 {
		global = 1
	}

	for i, ind := range d.Indicators {
		if ind.Max > 0 {
			maxima[i] = ind.Max
		} else {
			maxima[i] = global
		}
	}
	return maxima
}

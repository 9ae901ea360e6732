// Package gauge lays out a single-value gauge: a background arc spanning the
// full sweep, a value arc, a pointer, evenly spaced ticks and threshold markers.
//
// The canonical sweep is 180 degrees from -90 (9 o'clock) to +90 (3 o'clock),
// measured clockwise from 12 o'clock as in [polar.ToCartesian]. The value is
// not clamped: a value outside [Min, Max] puts the pointer past the arc ends.
package gauge

import (
	"strconv"

	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/polar"
	"github.com/matzehuels/chartgeo/pkg/scale"
)

// Defaults for the canonical gauge.
const (
	DefaultStartAngle = -90.0
	DefaultSweep      = 180.0
	DefaultSplits     = 5
	DefaultRadius     = 100.0

	// MaxSplits bounds Options.Splits; larger values are clamped.
	MaxSplits = 360

	pointerScale = 0.8
	tickInner    = 0.9
	labelScale   = 0.75
)

// Threshold marks a value on the gauge and the color used once it is reached.
type Threshold struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Data is the gauge input.
type Data struct {
	Value      float64     `json:"value"`
	Min        float64     `json:"min"`
	Max        float64     `json:"max"`
	Thresholds []Threshold `json:"thresholds,omitempty"`
}

// Options controls gauge placement. Zero fields take the defaults.
type Options struct {
	Center     geom.Point `json:"center"`
	Radius     float64    `json:"radius"`
	StartAngle *float64   `json:"start_angle,omitempty"`
	Sweep      float64    `json:"sweep"`
	Splits     int        `json:"splits"`
}

func (o Options) withDefaults() Options {
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Center == (geom.Point{}) {
		o.Center = geom.Point{X: o.Radius * 1.2, Y: o.Radius * 1.2}
	}
	if o.StartAngle == nil {
		start := DefaultStartAngle
		o.StartAngle = &start
	}
	if o.Sweep == 0 {
		o.Sweep = DefaultSweep
	}
	if o.Splits <= 0 {
		o.Splits = DefaultSplits
	}
	o.Splits = min(o.Splits, MaxSplits)
	return o
}

// Tick is one labelled scale mark.
type Tick struct {
	Value float64      `json:"value"`
	Angle float64      `json:"angle"`
	Mark  geom.Segment `json:"mark"`
	Label geom.Label   `json:"label"`
}

// Marker is the point where a threshold sits on the arc.
type Marker struct {
	Value float64       `json:"value"`
	Angle float64       `json:"angle"`
	Pos   geom.Point    `json:"pos"`
	Color geom.ColorRGB `json:"color"`
}

// Layout is the computed gauge geometry.
type Layout struct {
	Center     geom.Point    `json:"center"`
	Radius     float64       `json:"radius"`
	StartAngle float64       `json:"start_angle"`
	EndAngle   float64       `json:"end_angle"`
	ValueAngle float64       `json:"value_angle"`
	Value      float64       `json:"value"`
	Background geom.ArcPath  `json:"background"`
	ValueArc   geom.ArcPath  `json:"value_arc"`
	Pointer    geom.Segment  `json:"pointer"`
	Ticks      []Tick        `json:"ticks"`
	Markers    []Marker      `json:"markers,omitempty"`
	Band       scale.Band    `json:"band"`
	Color      geom.ColorRGB `json:"color"`
}

// Build computes the gauge layout for d.
func Build(d Data, opts Options) Layout {
	o := opts.withDefaults()
	c, r := o.Center, o.Radius
	start := *o.StartAngle
	end := start + o.Sweep
	angleOf := func(v float64) float64 {
		return start + o.Sweep*scale.Ratio(v, d.Min, d.Max)
	}

	valueAngle := angleOf(d.Value)
	l := Layout{
		Center:     c,
		Radius:     r,
		StartAngle: start,
		EndAngle:   end,
		ValueAngle: valueAngle,
		Value:      d.Value,
		Background: polar.DescribeArc(c.X, c.Y, r, start, end),
		ValueArc:   polar.DescribeArc(c.X, c.Y, r, start, valueAngle),
		Pointer: geom.Segment{
			From: c,
			To:   polar.ToCartesian(c.X, c.Y, r*pointerScale, valueAngle),
		},
		Band: scale.ThresholdColor(d.Value, d.Min, d.Max),
	}

	span := d.Max - d.Min
	l.Ticks = make([]Tick, 0, o.Splits+1)
	for i := 0; i <= o.Splits; i++ {
		v := d.Min + span*float64(i)/float64(o.Splits)
		a := angleOf(v)
		l.Ticks = append(l.Ticks, Tick{
			Value: v,
			Angle: a,
			Mark: geom.Segment{
				From: polar.ToCartesian(c.X, c.Y, r*tickInner, a),
				To:   polar.ToCartesian(c.X, c.Y, r, a),
			},
			Label: geom.Label{
				Text: formatValue(v),
				Pos:  polar.ToCartesian(c.X, c.Y, r*labelScale, a),
			},
		})
	}

	l.Color = l.Band.Color()
	best := -1
	for i, th := range d.Thresholds {
		a := angleOf(th.Value)
		col := scale.ThresholdColor(th.Value, d.Min, d.Max).Color()
		if th.Color != "" {
			if parsed, err := geom.ParseHex(th.Color); err == nil {
				col = parsed
			}
		}
		l.Markers = append(l.Markers, Marker{
			Value: th.Value,
			Angle: a,
			Pos:   polar.ToCartesian(c.X, c.Y, r, a),
			Color: col,
		})
		if th.Value <= d.Value && (best < 0 || th.Value >= d.Thresholds[best].Value) {
			best = i
			l.Color = col
		}
	}
	return l
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package liquid lays out a liquid-fill gauge: a circle filled up to the
// value's ratio with a sine-wave surface.
//
// The wave path covers the circle's bounding box below the surface and is
// closed along the bottom edge; renderers clip it to the circle.
package liquid

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/scale"
)

// Defaults.
const (
	DefaultRadius  = 100.0
	DefaultSamples = 32
	DefaultWaves   = 2
	MaxSamples     = 4096 // Options.Samples is clamped to this
	amplitudeScale = 0.05
)

// Data is the liquid-fill input. Min and Max default to 0 and 1.
type Data struct {
	Value float64  `json:"value"`
	Min   float64  `json:"min"`
	Max   *float64 `json:"max,omitempty"`
}

// Options controls the circle and wave shape. Zero fields take the defaults.
type Options struct {
	Center    geom.Point `json:"center"`
	Radius    float64    `json:"radius"`
	Samples   int        `json:"samples"`
	Waves     float64    `json:"waves"`
	Amplitude float64    `json:"amplitude"`
	Color     string     `json:"color,omitempty"`
}

func (o Options) withDefaults() Options {
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Center == (geom.Point{}) {
		o.Center = geom.Point{X: o.Radius * 1.1, Y: o.Radius * 1.1}
	}
	if o.Samples < 2 {
		o.Samples = DefaultSamples
	}
	o.Samples = min(o.Samples, MaxSamples)
	if o.Waves <= 0 {
		o.Waves = DefaultWaves
	}
	if o.Amplitude <= 0 {
		o.Amplitude = o.Radius * amplitudeScale
	}
	return o
}

// Layout is the computed liquid-fill geometry.
type Layout struct {
	Center  geom.Point    `json:"center"`
	Radius  float64       `json:"radius"`
	Ratio   float64       `json:"ratio"`
	Level   float64       `json:"level"`
	Surface []geom.Point  `json:"surface"`
	Wave    geom.ArcPath  `json:"wave"`
	Label   geom.Label    `json:"label"`
	Band    scale.Band    `json:"band"`
	Color   geom.ColorRGB `json:"color"`
}

// Build computes the liquid-fill layout for d.
func Build(d Data, opts Options) Layout {
	o := opts.withDefaults()
	maxV := 1.0
	if d.Max != nil {
		maxV = *d.Max
	}
	ratio := scale.Clamp01(scale.Ratio(d.Value, d.Min, maxV))
	c, r := o.Center, o.Radius

	l := Layout{
		Center: c,
		Radius: r,
		Ratio:  ratio,
		Level:  c.Y + r - 2*r*ratio,
		Label:  geom.Label{Text: fmt.Sprintf("%.0f%%", ratio*100), Pos: c},
		Band:   scale.ThresholdColor(ratio, 0, 1),
	}
	l.Color = l.Band.Color()
	if o.Color != "" {
		if col, err := geom.ParseHex(o.Color); err == nil {
			l.Color = col
		}
	}

	left, right, bottom := c.X-r, c.X+r, c.Y+r
	l.Surface = make([]geom.Point, o.Samples)
	for i := range o.Samples {
		t := float64(i) / float64(o.Samples-1)
		l.Surface[i] = geom.Point{
			X: left + t*2*r,
			Y: l.Level + o.Amplitude*math.Sin(2*math.Pi*o.Waves*t),
		}
	}

	var b strings.Builder
	for i, p := range l.Surface {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s %.2f %.2f ", cmd, p.X, p.Y)
	}
	fmt.Fprintf(&b, "L %.2f %.2f L %.2f %.2f Z", right, bottom, left, bottom)
	l.Wave = geom.ArcPath{D: b.String()}
	return l
}

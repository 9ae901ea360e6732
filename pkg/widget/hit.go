package widget

import (
	"math"

	"github.com/matzehuels/chartgeo/pkg/chart/candlestick"
	"github.com/matzehuels/chartgeo/pkg/chart/funnel"
	"github.com/matzehuels/chartgeo/pkg/chart/gauge"
	"github.com/matzehuels/chartgeo/pkg/chart/heatmap"
	"github.com/matzehuels/chartgeo/pkg/chart/liquid"
	"github.com/matzehuels/chartgeo/pkg/chart/radar"
	"github.com/matzehuels/chartgeo/pkg/chart/sankey"
	"github.com/matzehuels/chartgeo/pkg/geom"
)

// linkSamples is the number of chords a sankey link is split into for
// distance tests.
const linkSamples = 24

func hitGauge(l gauge.Layout, in Interaction) (Hit, bool) {
	tol := in.tolerance()
	for i, m := range l.Markers {
		if m.Pos.Dist(in.Point) <= tol {
			return Hit{Element: "threshold", Index: i, Value: m.Value, Color: m.Color}, true
		}
	}
	if l.Pointer.DistTo(in.Point) <= tol {
		return Hit{Element: "pointer", Value: l.Value, Label: l.Band.String(), Color: l.Color}, true
	}
	for i, tk := range l.Ticks {
		if tk.Mark.DistTo(in.Point) <= tol || tk.Label.Pos.Dist(in.Point) <= tol {
			return Hit{Element: "tick", Index: i, Label: tk.Label.Text, Value: tk.Value}, true
		}
	}
	return Hit{}, false
}

// hitRadar prefers vertices over areas, and later series over earlier ones
// because they are drawn on top.
func hitRadar(l radar.Layout, in Interaction) (Hit, bool) {
	tol := in.tolerance()
	for s := len(l.Series) - 1; s >= 0; s-- {
		sr := l.Series[s]
		for i, p := range sr.Points {
			if p.Dist(in.Point) > tol {
				continue
			}
			h := Hit{Element: "point", Index: i, Series: sr.Name, Color: sr.Color}
			if i < len(sr.Values) {
				h.Value = sr.Values[i]
			}
			if i < len(l.Labels) {
				h.Label = l.Labels[i].Text
			}
			return h, true
		}
	}
	for s := len(l.Series) - 1; s >= 0; s-- {
		sr := l.Series[s]
		if sr.Polygon.Contains(in.Point) {
			return Hit{Element: "series", Index: s, Series: sr.Name, Label: sr.Name, Color: sr.Color}, true
		}
	}
	return Hit{}, false
}

// hitCandlestick tests the price bars before the volume histogram, which
// shares the bottom of the same percent space.
func hitCandlestick(l candlestick.Layout, in Interaction) (Hit, bool) {
	p := in.Point
	for _, b := range l.Bars {
		top := math.Min(math.Min(b.Wick.Top, b.Wick.Bottom), b.Body.Y)
		bottom := math.Max(math.Max(b.Wick.Top, b.Wick.Bottom), b.Body.Bottom())
		span := geom.Rect{X: b.Body.X, Y: top, Width: b.Body.Width, Height: bottom - top}
		if span.Contains(p) {
			return Hit{Element: "bar", Index: b.Index, Label: b.Date, Value: b.Record.Close, Color: b.Color, Datum: b.Record}, true
		}
	}
	for _, b := range l.Bars {
		if b.Volume != nil && b.Volume.Contains(p) {
			return Hit{Element: "volume", Index: b.Index, Label: b.Date, Value: b.Record.Volume, Color: b.Color, Datum: b.Record}, true
		}
	}
	return Hit{}, false
}

func hitFunnel(l funnel.Layout, in Interaction) (Hit, bool) {
	for _, s := range l.Segments {
		if s.Rect.Contains(in.Point) {
			return Hit{Element: "segment", Index: s.Index, Label: s.Item.Name, Value: s.Item.Value, Color: s.Color, Datum: s.Item}, true
		}
	}
	return Hit{}, false
}

func hitHeatmap(l heatmap.Layout, in Interaction) (Hit, bool) {
	for i, c := range l.Cells {
		if !c.Rect.Contains(in.Point) {
			continue
		}
		h := Hit{Element: "cell", Index: i, Value: c.Value, Color: c.Color}
		if c.X < len(l.XLabels) {
			h.Label = l.XLabels[c.X]
		}
		if c.Y < len(l.YLabels) {
			h.Series = l.YLabels[c.Y]
		}
		return h, true
	}
	return Hit{}, false
}

func hitSankey(l sankey.Layout, in Interaction) (Hit, bool) {
	for i, n := range l.Nodes {
		if n.Rect.Contains(in.Point) {
			return Hit{Element: "node", Index: i, Label: n.Name, Value: n.Value, Color: n.Color}, true
		}
	}
	tol := in.tolerance()
	for i, lk := range l.Links {
		if linkDist(lk, in.Point) <= lk.StrokeWidth/2+tol {
			return Hit{Element: "link", Index: i, Label: lk.Source + " → " + lk.Target, Value: lk.Value, Color: lk.Color}, true
		}
	}
	return Hit{}, false
}

func linkDist(l sankey.LinkShape, p geom.Point) float64 {
	best := math.Inf(1)
	prev := l.PointAt(0)
	for i := 1; i <= linkSamples; i++ {
		next := l.PointAt(float64(i) / linkSamples)
		best = math.Min(best, geom.Segment{From: prev, To: next}.DistTo(p))
		prev = next
	}
	return best
}

func hitLiquid(l liquid.Layout, in Interaction) (Hit, bool) {
	if l.Center.Dist(in.Point) > l.Radius {
		return Hit{}, false
	}
	return Hit{Element: "liquid", Label: l.Label.Text, Value: l.Ratio, Color: l.Color}, true
}

package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/chartgeo/pkg/chart/candlestick"
	"github.com/matzehuels/chartgeo/pkg/chart/funnel"
	"github.com/matzehuels/chartgeo/pkg/chart/gauge"
	"github.com/matzehuels/chartgeo/pkg/chart/heatmap"
	"github.com/matzehuels/chartgeo/pkg/chart/liquid"
	"github.com/matzehuels/chartgeo/pkg/chart/radar"
	"github.com/matzehuels/chartgeo/pkg/chart/sankey"
	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/scale"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// Default canvas for percent-space results.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

const (
	textColor  = "#464646"
	gridColor  = "#cccccc"
	trackColor = "#e6ebf8"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	size       geom.Frame
	title      string
	background string
}

// WithSize sets the output size in pixels. Percent-space results are scaled
// to it; other results keep their aspect through the viewBox.
func WithSize(f geom.Frame) SVGOption { return func(r *svgRenderer) { r.size = f } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithBackground fills the canvas with a solid color.
func WithBackground(hex string) SVGOption { return func(r *svgRenderer) { r.background = hex } }

// RenderSVG draws res as a standalone SVG document. It fails with an
// UNSUPPORTED error when the geometry type has no drawer.
func RenderSVG(res widget.Result, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	c := svg.New(&buf)
	var m mapper
	if res.Percent {
		size := r.size.OrDefault(DefaultWidth, DefaultHeight)
		m = mapper{w: size.Width, h: size.Height, percent: true}
		c.Start(ri(size.Width), ri(size.Height))
	} else {
		view := res.Bounds().OrDefault(1, 1)
		size := r.size.OrDefault(view.Width, view.Height)
		m = mapper{w: view.Width, h: view.Height}
		c.Startview(ri(size.Width), ri(size.Height), 0, 0, ri(view.Width), ri(view.Height))
	}
	if r.title != "" {
		c.Title(r.title)
	}
	if r.background != "" {
		c.Rect(0, 0, ri(m.w), ri(m.h), "fill:"+r.background)
	}

	switch l := res.Geometry.(type) {
	case gauge.Layout:
		drawGauge(c, l)
	case radar.Layout:
		drawRadar(c, l)
	case candlestick.Layout:
		drawCandlestick(c, m, l)
	case funnel.Layout:
		drawFunnel(c, m, l)
	case heatmap.Layout:
		drawHeatmap(c, m, l)
	case sankey.Layout:
		drawSankey(c, l)
	case liquid.Layout:
		drawLiquid(c, l)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "no SVG drawer for %s geometry (%T)", res.Kind, res.Geometry)
	}
	c.End()
	return buf.Bytes(), nil
}

// mapper converts layout coordinates to canvas pixels. In percent mode both
// axes map 0..100 onto the canvas; otherwise coordinates pass through.
type mapper struct {
	w, h    float64
	percent bool
}

func (m mapper) x(v float64) int {
	if !m.percent {
		return ri(v)
	}
	return ri(scale.Linear(v, 0, 100, 0, m.w))
}

func (m mapper) y(v float64) int {
	if !m.percent {
		return ri(v)
	}
	return ri(scale.Linear(v, 0, 100, 0, m.h))
}

func (m mapper) rect(r geom.Rect) (x, y, w, h int) {
	x, y = m.x(r.X), m.y(r.Y)
	return x, y, m.x(r.Right()) - x, m.y(r.Bottom()) - y
}

func ri(v float64) int { return int(math.Round(v)) }

func fill(c geom.ColorRGB) string { return "fill:" + c.Hex() }

func drawGauge(c *svg.SVG, l gauge.Layout) {
	width := math.Max(1, l.Radius*0.1)
	c.Path(l.Background.D, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", trackColor, width))
	c.Path(l.ValueArc.D, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", l.Color.Hex(), width))

	c.Gstyle("stroke:#999999;stroke-width:2")
	for _, t := range l.Ticks {
		c.Line(ri(t.Mark.From.X), ri(t.Mark.From.Y), ri(t.Mark.To.X), ri(t.Mark.To.Y))
	}
	c.Gend()
	c.Gstyle("text-anchor:middle;font-size:12px;fill:" + textColor)
	for _, t := range l.Ticks {
		c.Text(ri(t.Label.Pos.X), ri(t.Label.Pos.Y), t.Label.Text)
	}
	c.Gend()

	for _, mk := range l.Markers {
		c.Circle(ri(mk.Pos.X), ri(mk.Pos.Y), 4, fill(mk.Color))
	}
	p := l.Pointer
	c.Line(ri(p.From.X), ri(p.From.Y), ri(p.To.X), ri(p.To.Y),
		"stroke:"+textColor+";stroke-width:4;stroke-linecap:round")
	c.Circle(ri(l.Center.X), ri(l.Center.Y), ri(math.Max(3, l.Radius*0.05)), "fill:"+textColor)
}

func drawRadar(c *svg.SVG, l radar.Layout) {
	c.Gstyle("fill:none;stroke:" + gridColor)
	for _, g := range l.Grid {
		xs, ys := coords(g.Points)
		c.Polygon(xs, ys)
	}
	for _, a := range l.Axes {
		c.Line(ri(a.From.X), ri(a.From.Y), ri(a.To.X), ri(a.To.Y))
	}
	c.Gend()

	c.Gstyle("text-anchor:middle;font-size:12px;fill:" + textColor)
	for _, lbl := range l.Labels {
		c.Text(ri(lbl.Pos.X), ri(lbl.Pos.Y), lbl.Text)
	}
	c.Gend()

	for _, s := range l.Series {
		xs, ys := coords(s.Points)
		hex := s.Color.Hex()
		c.Polygon(xs, ys, "fill:"+hex+";fill-opacity:0.25;stroke-width:2;stroke:"+hex)
		for i := range xs {
			c.Circle(xs[i], ys[i], 3, "fill:"+hex)
		}
	}
}

func drawCandlestick(c *svg.SVG, m mapper, l candlestick.Layout) {
	for _, b := range l.Bars {
		if b.Volume == nil {
			continue
		}
		x, y, w, h := m.rect(*b.Volume)
		c.Rect(x, y, w, h, fill(b.Color)+";fill-opacity:0.3")
	}
	for _, b := range l.Bars {
		hex := b.Color.Hex()
		wx := m.x(b.Wick.X)
		c.Line(wx, m.y(b.Wick.Top), wx, m.y(b.Wick.Bottom), "stroke-width:1;stroke:"+hex)
		x, y, w, h := m.rect(b.Body)
		c.Rect(x, y, w, max(h, 1), "fill:"+hex)
	}
	c.Gstyle("font-size:11px;fill:" + textColor)
	for _, lbl := range l.YLabels {
		c.Text(2, m.y(lbl.Percent), lbl.Text)
	}
	for _, lbl := range l.XLabels {
		c.Text(m.x(lbl.Percent), ri(m.h)-2, lbl.Text, "text-anchor:middle")
	}
	c.Gend()
}

func drawFunnel(c *svg.SVG, m mapper, l funnel.Layout) {
	for _, s := range l.Segments {
		x, y, w, h := m.rect(s.Rect)
		c.Rect(x, y, w, h, fill(s.Color)+";stroke:#ffffff;stroke-width:2")
	}
	c.Gstyle("text-anchor:middle;font-size:12px;fill:#ffffff")
	for _, s := range l.Segments {
		if s.Item.Name == "" {
			continue
		}
		ctr := s.Rect.Center()
		c.Text(m.x(ctr.X), m.y(ctr.Y), s.Item.Name, "dominant-baseline:middle")
	}
	c.Gend()
}

func drawHeatmap(c *svg.SVG, m mapper, l heatmap.Layout) {
	for _, cell := range l.Cells {
		x, y, w, h := m.rect(cell.Rect)
		c.Rect(x, y, w, h, fill(cell.Color)+";stroke:#ffffff;stroke-width:1")
	}
}

func drawSankey(c *svg.SVG, l sankey.Layout) {
	for _, lk := range l.Links {
		c.Path(lk.Path.D, fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:0.5;stroke-width:%.2f",
			lk.Color.Hex(), lk.StrokeWidth))
	}
	for _, n := range l.Nodes {
		c.Rect(ri(n.Rect.X), ri(n.Rect.Y), ri(n.Rect.Width), ri(n.Rect.Height), fill(n.Color))
	}
	c.Gstyle("font-size:12px;dominant-baseline:middle;fill:" + textColor)
	for _, n := range l.Nodes {
		c.Text(ri(n.Rect.Right()+4), ri(n.Rect.Y+n.Rect.Height/2), n.Name)
	}
	c.Gend()
}

func drawLiquid(c *svg.SVG, l liquid.Layout) {
	cx, cy, r := ri(l.Center.X), ri(l.Center.Y), ri(l.Radius)
	c.Def()
	c.ClipPath(`id="liquid-clip"`)
	c.Circle(cx, cy, r)
	c.ClipEnd()
	c.DefEnd()
	c.Path(l.Wave.D, `clip-path="url(#liquid-clip)"`, fill(l.Color)+";fill-opacity:0.8")
	c.Circle(cx, cy, r, "fill:none;stroke-width:4;stroke:"+l.Color.Hex())
	c.Text(ri(l.Label.Pos.X), ri(l.Label.Pos.Y), l.Label.Text,
		"text-anchor:middle;dominant-baseline:middle;font-size:24px;fill:"+textColor)
}

func coords(pts []geom.Point) (xs, ys []int) {
	xs, ys = make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = ri(p.X), ri(p.Y)
	}
	return xs, ys
}

package geom

import (
	"fmt"
	"math"
)

// Point is a position in the layout's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// Percent-space layouts (candlestick, funnel, heatmap) use 0..100 on both axes.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ArcPath holds an SVG path description ("d" attribute).
type ArcPath struct {
	D string `json:"d"`
}

// String returns the path description.
func (a ArcPath) String() string { return a.D }

// Polygon is a closed shape given by its vertices in drawing order.
type Polygon struct {
	Points []Point `json:"points"`
}

// Contains reports whether p lies inside the polygon using the even-odd rule.
func (pg Polygon) Contains(p Point) bool {
	pts := pg.Points
	if len(pts) < 3 {
		return false
	}
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// Segment is a straight line between two points.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// DistTo returns the shortest distance from p to the segment.
func (s Segment) DistTo(p Point) float64 {
	dx, dy := s.To.X-s.From.X, s.To.Y-s.From.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.Dist(s.From)
	}
	t := ((p.X-s.From.X)*dx + (p.Y-s.From.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(Point{X: s.From.X + t*dx, Y: s.From.Y + t*dy})
}

// Label is a piece of text anchored at a position.
type Label struct {
	Text string `json:"text"`
	Pos  Point  `json:"pos"`
}

// LegendEntry pairs a series or item name with its color.
type LegendEntry struct {
	Name  string   `json:"name"`
	Color ColorRGB `json:"color"`
}

// ColorRGB is an 8-bit sRGB color.
type ColorRGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c ColorRGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// String implements fmt.Stringer.
func (c ColorRGB) String() string { return c.Hex() }

// Frame is the drawing area a layout is computed for.
type Frame struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// OrDefault returns f, replacing non-positive dimensions with the given ones.
func (f Frame) OrDefault(width, height float64) Frame {
	if f.Width <= 0 {
		f.Width = width
	}
	if f.Height <= 0 {
		f.Height = height
	}
	return f
}

// PercentFrame is the coordinate space of percent-based layouts.
var PercentFrame = Frame{Width: 100, Height: 100}

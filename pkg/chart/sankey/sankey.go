// Package sankey lays out flow diagrams: nodes in columns by level, joined by
// cubic Bézier bands whose stroke width follows the link value.
//
// Levels are longest-path distances from the sources, computed by
// [transform.AssignLevels]. Cyclic input fails with a [*transform.CycleError]
// unless Options.BreakCycles is set, in which case back edges are dropped
// from the layout.
//
// Columns split Options.Width evenly across the levels. Within a column,
// nodes keep input order and are stacked vertically: each starts a slot of
// Options.Height divided by the number of nodes in that level, so node i of
// a level sits at y = i*Height/count. Slots divide the height, not the width.
package sankey

import (
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/chartgeo/pkg/dag"
	"github.com/matzehuels/chartgeo/pkg/dag/transform"
	"github.com/matzehuels/chartgeo/pkg/geom"
)

// Defaults.
const (
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultNodeWidth = 20.0

	minNodeHeight = 10.0
	minStroke     = 1.0
)

// ErrGraphCycle matches the error returned for cyclic input.
var ErrGraphCycle = transform.ErrGraphCycle

// Node is one flow endpoint. Value sizes nodes that have no links.
type Node struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Link is a weighted flow from Source to Target.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Data is the sankey input.
type Data struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Options controls the canvas and node width. Zero fields take the defaults.
type Options struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	NodeWidth   float64      `json:"node_width"`
	BreakCycles bool         `json:"break_cycles"`
	Palette     geom.Palette `json:"-"`
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	return o
}

// NodeShape is the geometry of one node.
type NodeShape struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Level int           `json:"level"`
	Value float64       `json:"value"`
	Rect  geom.Rect     `json:"rect"`
	Color geom.ColorRGB `json:"color"`
}

// LinkShape is the geometry of one link.
type LinkShape struct {
	Source      string        `json:"source"`
	Target      string        `json:"target"`
	Value       float64       `json:"value"`
	From        geom.Point    `json:"from"`
	To          geom.Point    `json:"to"`
	Path        geom.ArcPath  `json:"path"`
	StrokeWidth float64       `json:"stroke_width"`
	Color       geom.ColorRGB `json:"color"`
}

// Layout is the computed sankey geometry.
type Layout struct {
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	MaxLevel int         `json:"max_level"`
	Nodes    []NodeShape `json:"nodes"`
	Links    []LinkShape `json:"links"`
	Dropped  []Link      `json:"dropped,omitempty"`
}

// Graph converts d into a flow graph. Duplicate node IDs keep the first
// occurrence and links that reference unknown nodes are skipped; the skipped
// links are returned.
func Graph(d Data) (*dag.DAG, []Link) {
	g := dag.New()
	for _, n := range d.Nodes {
		_ = g.AddNode(dag.Node{ID: n.ID, Label: n.Name, Value: n.Value, Color: n.Color})
	}
	var skipped []Link
	for _, l := range d.Links {
		if err := g.AddEdge(dag.Edge{From: l.Source, To: l.Target, Value: l.Value}); err != nil {
			skipped = append(skipped, l)
		}
	}
	return g, skipped
}

// Build computes the sankey layout for d.
func Build(d Data, opts Options) (Layout, error) {
	o := opts.withDefaults()
	l := Layout{Width: o.Width, Height: o.Height}
	g, skipped := Graph(d)
	l.Dropped = skipped
	if g.NodeCount() == 0 {
		return l, nil
	}

	if o.BreakCycles {
		before := g.Edges()
		if transform.BreakCycles(g) > 0 {
			l.Dropped = append(l.Dropped, removedLinks(before, g.Edges())...)
		}
	}
	if _, err := transform.AssignLevels(g); err != nil {
		return Layout{}, fmt.Errorf("sankey levels: %w", err)
	}
	l.MaxLevel = g.MaxLevel()

	band := o.Width / float64(l.MaxLevel+1)
	shapes := make(map[string]*NodeShape, g.NodeCount())
	l.Nodes = make([]NodeShape, g.NodeCount())
	for _, lvl := range g.LevelIDs() {
		members := g.NodesInLevel(lvl)
		slot := o.Height / float64(len(members))
		for i, n := range members {
			total := g.Throughput(n.ID)
			if g.InDegree(n.ID) == 0 && g.OutDegree(n.ID) == 0 {
				total = n.Value
			}
			name := n.Label
			if name == "" {
				name = n.ID
			}
			l.Nodes[n.Index] = NodeShape{
				ID:    n.ID,
				Name:  name,
				Level: lvl,
				Value: total,
				Rect: geom.Rect{
					X:      band * float64(lvl),
					Y:      slot * float64(i),
					Width:  o.NodeWidth,
					Height: math.Max(minNodeHeight, total/100*30),
				},
				Color: o.Palette.Pick(n.Color, n.Index),
			}
		}
	}
	for i := range l.Nodes {
		shapes[l.Nodes[i].ID] = &l.Nodes[i]
	}

	for _, e := range g.Edges() {
		src, dst := shapes[e.From], shapes[e.To]
		from := geom.Point{X: src.Rect.Right(), Y: src.Rect.Y + src.Rect.Height/2}
		to := geom.Point{X: dst.Rect.X, Y: dst.Rect.Y + dst.Rect.Height/2}
		l.Links = append(l.Links, LinkShape{
			Source:      e.From,
			Target:      e.To,
			Value:       e.Value,
			From:        from,
			To:          to,
			Path:        LinkPath(from, to),
			StrokeWidth: math.Max(minStroke, e.Value/100*20),
			Color:       src.Color,
		})
	}
	return l, nil
}

// LinkPath returns a cubic Bézier from a to b with both control points on
// the vertical line halfway between them.
func LinkPath(a, b geom.Point) geom.ArcPath {
	mx := (a.X + b.X) / 2
	return geom.ArcPath{D: fmt.Sprintf("M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f",
		a.X, a.Y, mx, a.Y, mx, b.Y, b.X, b.Y)}
}

// PointAt returns the point at parameter t in [0, 1] along the link curve.
func (l LinkShape) PointAt(t float64) geom.Point {
	mx := (l.From.X + l.To.X) / 2
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return geom.Point{
		X: a*l.From.X + b*mx + c*mx + d*l.To.X,
		Y: a*l.From.Y + b*l.From.Y + c*l.To.Y + d*l.To.Y,
	}
}

// IsCycle reports whether err was caused by cyclic input.
func IsCycle(err error) bool { return errors.Is(err, ErrGraphCycle) }

func removedLinks(before, after []dag.Edge) []Link {
	kept := make(map[[2]string]int, len(after))
	for _, e := range after {
		kept[[2]string{e.From, e.To}]++
	}
	var out []Link
	for _, e := range before {
		k := [2]string{e.From, e.To}
		if kept[k] > 0 {
			kept[k]--
			continue
		}
		out = append(out, Link{Source: e.From, Target: e.To, Value: e.Value})
	}
	return out
}

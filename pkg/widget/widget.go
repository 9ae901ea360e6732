// Package widget binds the chart layouts to a common request/result surface.
//
// Each chart kind is exposed as a [Widget]: it decodes a JSON [Request],
// runs the matching layout from pkg/chart and hit-tests a pointer position
// against the computed geometry. A [Registry] maps kind names (and their
// aliases) to widgets; [Default] registers every built-in chart.
//
// # Usage
//
//	reg := widget.Default(widget.Settings{})
//	w, err := reg.Lookup("gauge")
//	res, err := w.Render(widget.Request{Kind: "gauge", Data: raw})
//	hit, ok := w.OnInteraction(res, widget.Interaction{Point: p})
package widget

import (
	"encoding/json"

	"github.com/matzehuels/chartgeo/pkg/geom"
)

// Kind names a chart type.
type Kind string

// Built-in chart kinds.
const (
	KindGauge       Kind = "gauge"
	KindRadar       Kind = "radar"
	KindCandlestick Kind = "candlestick"
	KindFunnel      Kind = "funnel"
	KindHeatmap     Kind = "heatmap"
	KindSankey      Kind = "sankey"
	KindLiquid      Kind = "liquid"
)

// DefaultTolerance is the hit radius used when an Interaction leaves it unset.
const DefaultTolerance = 6.0

// Request is a chart request as it arrives over the wire.
type Request struct {
	Kind    Kind            `json:"kind"`
	Data    json.RawMessage `json:"data"`
	Options json.RawMessage `json:"options,omitempty"`
}

// Result is the rendered geometry of one request.
//
// Percent reports whether Geometry is expressed in the 0..100 percent space;
// Frame is then [geom.PercentFrame] and sinks scale it to their canvas.
type Result struct {
	Kind     Kind       `json:"kind"`
	Frame    geom.Frame `json:"frame"`
	Percent  bool       `json:"percent,omitempty"`
	Geometry any        `json:"geometry"`
}

// Bounds returns the area the geometry occupies.
func (r Result) Bounds() geom.Frame { return r.Frame }

// Interaction is a pointer position in the result's coordinate space.
type Interaction struct {
	Point     geom.Point `json:"point"`
	Tolerance float64    `json:"tolerance,omitempty"`
}

func (in Interaction) tolerance() float64 {
	if in.Tolerance > 0 {
		return in.Tolerance
	}
	return DefaultTolerance
}

// Hit describes the element under the pointer. Element names the shape type
// ("pointer", "bar", "cell", "node", "link", ...), Index its position in the
// layout and Datum the input record it was built from, when there is one.
type Hit struct {
	Kind    Kind          `json:"kind"`
	Element string        `json:"element"`
	Index   int           `json:"index"`
	Series  string        `json:"series,omitempty"`
	Label   string        `json:"label,omitempty"`
	Value   float64       `json:"value"`
	Color   geom.ColorRGB `json:"color"`
	Datum   any           `json:"datum,omitempty"`
}

// Widget renders one chart kind and answers pointer queries against it.
type Widget interface {
	Kind() Kind
	Render(req Request) (Result, error)
	OnInteraction(res Result, in Interaction) (Hit, bool)
}

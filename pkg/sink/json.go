package sink

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id      string
	compact bool
}

// WithJSONID fixes the document ID instead of generating a random one.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// Envelope is the JSON document written by [RenderJSON].
type Envelope struct {
	ID       string      `json:"id"`
	Kind     widget.Kind `json:"kind"`
	Frame    geom.Frame  `json:"frame"`
	Percent  bool        `json:"percent,omitempty"`
	Geometry any         `json:"geometry"`
}

// Result returns the envelope contents as a widget result. Geometry keeps
// whatever type it was decoded into.
func (e Envelope) Result() widget.Result {
	return widget.Result{Kind: e.Kind, Frame: e.Frame, Percent: e.Percent, Geometry: e.Geometry}
}

// RenderJSON wraps res in an [Envelope] and encodes it, indented by default.
// Every call gets a fresh UUID unless [WithJSONID] is given.
func RenderJSON(res widget.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.id == "" {
		r.id = uuid.NewString()
	}
	out := Envelope{
		ID:       r.id,
		Kind:     res.Kind,
		Frame:    res.Bounds(),
		Percent:  res.Percent,
		Geometry: res.Geometry,
	}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

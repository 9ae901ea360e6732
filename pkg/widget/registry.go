package widget

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
)

// Registry maps chart kinds to widgets. It is not safe for concurrent
// registration; build it once at startup and share it read-only.
type Registry struct {
	widgets map[Kind]Widget
	aliases map[string]Kind
	order   []Kind
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{widgets: map[Kind]Widget{}, aliases: map[string]Kind{}}
}

// Register adds w under its kind and the given aliases, replacing any widget
// previously registered for the same kind.
func (r *Registry) Register(w Widget, aliases ...string) {
	k := w.Kind()
	if _, ok := r.widgets[k]; !ok {
		r.order = append(r.order, k)
	}
	r.widgets[k] = w
	for _, a := range aliases {
		r.aliases[strings.ToLower(a)] = k
	}
}

// Resolve normalizes name to a registered kind, following aliases.
func (r *Registry) Resolve(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if k, ok := r.aliases[key]; ok {
		return k, nil
	}
	if _, ok := r.widgets[Kind(key)]; ok {
		return Kind(key), nil
	}
	return "", errors.New(errors.ErrCodeInvalidChart,
		"unknown chart kind %q (available: %s)", name, strings.Join(r.Names(), ", "))
}

// Lookup returns the widget for name, following aliases.
func (r *Registry) Lookup(name string) (Widget, error) {
	k, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return r.widgets[k], nil
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	return append([]Kind(nil), r.order...)
}

// Names returns the registered kind names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, k := range r.order {
		names[i] = string(k)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the alternative names registered for k, sorted.
func (r *Registry) Aliases(k Kind) []string {
	var out []string
	for a, target := range r.aliases {
		if target == k {
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}

// Render looks up the widget for req.Kind and renders req with it. The
// result carries the canonical kind even when req used an alias.
func (r *Registry) Render(req Request) (Result, error) {
	w, err := r.Lookup(string(req.Kind))
	if err != nil {
		return Result{}, err
	}
	req.Kind = w.Kind()
	return w.Render(req)
}

// Hit resolves the widget for res.Kind and hit-tests in against it.
func (r *Registry) Hit(res Result, in Interaction) (Hit, bool, error) {
	w, err := r.Lookup(string(res.Kind))
	if err != nil {
		return Hit{}, false, err
	}
	h, ok := w.OnInteraction(res, in)
	return h, ok, nil
}

// DecodeResult parses a JSON-encoded Result, restoring the typed geometry
// of its kind so that it can be hit-tested and drawn again.
func (r *Registry) DecodeResult(data []byte) (Result, error) {
	var raw struct {
		Kind     Kind            `json:"kind"`
		Frame    geom.Frame      `json:"frame"`
		Percent  bool            `json:"percent"`
		Geometry json.RawMessage `json:"geometry"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode result")
	}
	w, err := r.Lookup(string(raw.Kind))
	if err != nil {
		return Result{}, err
	}
	d, ok := w.(geometryDecoder)
	if !ok {
		return Result{}, errors.New(errors.ErrCodeUnsupported, "%s results cannot be decoded", raw.Kind)
	}
	g, err := d.decodeGeometry(raw.Geometry)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s geometry", raw.Kind)
	}
	return Result{Kind: w.Kind(), Frame: raw.Frame, Percent: raw.Percent, Geometry: g}, nil
}

type geometryDecoder interface {
	decodeGeometry(json.RawMessage) (any, error)
}

package widget

import (
	"encoding/json"

	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
)

// chart adapts a typed layout function to the Widget interface. D is the
// decoded data, O the decoded options and L the layout it produces.
type chart[D, O, L any] struct {
	kind    Kind
	percent bool

	// prepare applies registry-wide settings to the decoded options.
	prepare func(*O)
	// validate rejects data the layout would silently degrade on.
	validate func(D, O) error
	build    func(D, O) (L, error)
	frame    func(L) geom.Frame
	hit      func(L, Interaction) (Hit, bool)
}

func (c *chart[D, O, L]) Kind() Kind { return c.kind }

func (c *chart[D, O, L]) Render(req Request) (Result, error) {
	var d D
	if len(req.Data) > 0 {
		if err := json.Unmarshal(req.Data, &d); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s data", c.kind)
		}
	}
	var o O
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &o); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s options", c.kind)
		}
	}
	if c.prepare != nil {
		c.prepare(&o)
	}
	if c.validate != nil {
		if err := c.validate(d, o); err != nil {
			return Result{}, err
		}
	}
	l, err := c.build(d, o)
	if err != nil {
		return Result{}, err
	}
	res := Result{Kind: c.kind, Percent: c.percent, Geometry: l}
	if c.percent {
		res.Frame = geom.PercentFrame
	} else {
		res.Frame = c.frame(l)
	}
	return res, nil
}

func (c *chart[D, O, L]) OnInteraction(res Result, in Interaction) (Hit, bool) {
	var l L
	switch g := res.Geometry.(type) {
	case L:
		l = g
	case *L:
		if g == nil {
			return Hit{}, false
		}
		l = *g
	default:
		return Hit{}, false
	}
	h, ok := c.hit(l, in)
	if ok {
		h.Kind = c.kind
	}
	return h, ok
}

func (c *chart[D, O, L]) decodeGeometry(raw json.RawMessage) (any, error) {
	var l L
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	return l, nil
}

// pure wraps a layout function that cannot fail.
func pure[D, O, L any](f func(D, O) L) func(D, O) (L, error) {
	return func(d D, o O) (L, error) { return f(d, o), nil }
}

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
	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/scale"
)

// Settings are registry-wide defaults applied to request options that
// leave the corresponding field unset.
type Settings struct {
	Palette     geom.Palette
	Canvas      geom.Frame
	GaugeSplits int
	RadarLevels int
}

// Default returns a registry holding every built-in chart kind.
func Default(s Settings) *Registry {
	if len(s.Palette) == 0 {
		s.Palette = geom.DefaultPalette()
	}
	r := NewRegistry()
	r.Register(gaugeWidget(s))
	r.Register(radarWidget(s), "spider")
	r.Register(candlestickWidget(), "ohlc", "kline")
	r.Register(funnelWidget(s))
	r.Register(heatmapWidget())
	r.Register(sankeyWidget(s), "flow")
	r.Register(liquidWidget(), "liquidfill", "liquid-fill")
	return r
}

func gaugeWidget(s Settings) Widget {
	return &chart[gauge.Data, gauge.Options, gauge.Layout]{
		kind: KindGauge,
		prepare: func(o *gauge.Options) {
			if o.Splits <= 0 {
				o.Splits = s.GaugeSplits
			}
		},
		validate: func(d gauge.Data, o gauge.Options) error {
			for _, th := range d.Thresholds {
				if err := validateNamed("", th.Color); err != nil {
					return err
				}
			}
			if err := errors.ValidateCount("splits", o.Splits, gauge.MaxSplits); err != nil {
				return err
			}
			return errors.ValidateDimension("radius", o.Radius)
		},
		build: pure(gauge.Build),
		frame: func(l gauge.Layout) geom.Frame {
			return geom.Frame{Width: l.Center.X + l.Radius*1.2, Height: l.Center.Y + l.Radius*1.2}
		},
		hit: hitGauge,
	}
}

func radarWidget(s Settings) Widget {
	return &chart[radar.Data, radar.Options, radar.Layout]{
		kind: KindRadar,
		prepare: func(o *radar.Options) {
			if o.Levels <= 0 {
				o.Levels = s.RadarLevels
			}
			o.Palette = s.Palette
		},
		validate: func(d radar.Data, o radar.Options) error {
			for _, ind := range d.Indicators {
				if err := errors.ValidateName(ind.Name); err != nil {
					return err
				}
			}
			for _, sr := range d.Series {
				if err := validateNamed(sr.Name, sr.Color); err != nil {
					return err
				}
			}
			if err := errors.ValidateCount("levels", o.Levels, radar.MaxLevels); err != nil {
				return err
			}
			return errors.ValidateDimension("radius", o.Radius)
		},
		build: pure(radar.Build),
		frame: func(l radar.Layout) geom.Frame {
			return geom.Frame{Width: 2 * l.Center.X, Height: 2 * l.Center.Y}
		},
		hit: hitRadar,
	}
}

func candlestickWidget() Widget {
	return &chart[[]candlestick.Record, candlestick.Options, candlestick.Layout]{
		kind:    KindCandlestick,
		percent: true,
		validate: func(_ []candlestick.Record, o candlestick.Options) error {
			for _, c := range []string{o.UpColor, o.DownColor} {
				if c == "" {
					continue
				}
				if err := errors.ValidateColor(c); err != nil {
					return err
				}
			}
			return nil
		},
		build: pure(candlestick.Build),
		hit:   hitCandlestick,
	}
}

func funnelWidget(s Settings) Widget {
	return &chart[[]funnel.Item, funnel.Options, funnel.Layout]{
		kind:    KindFunnel,
		percent: true,
		prepare: func(o *funnel.Options) { o.Palette = s.Palette },
		validate: func(items []funnel.Item, _ funnel.Options) error {
			for _, it := range items {
				if err := validateNamed(it.Name, it.Color); err != nil {
					return err
				}
			}
			return nil
		},
		build: pure(funnel.Build),
		hit:   hitFunnel,
	}
}

func heatmapWidget() Widget {
	return &chart[heatmap.Data, heatmap.Options, heatmap.Layout]{
		kind:    KindHeatmap,
		percent: true,
		validate: func(d heatmap.Data, o heatmap.Options) error {
			switch o.Gradient {
			case "", scale.BlueIntensity.Name, scale.RedBlue.Name:
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown gradient %q (available: %s, %s)",
					o.Gradient, scale.BlueIntensity.Name, scale.RedBlue.Name)
			}
			for _, labels := range [][]string{d.XLabels, d.YLabels} {
				for _, lbl := range labels {
					if err := errors.ValidateName(lbl); err != nil {
						return err
					}
				}
			}
			if !d.Fits() {
				nx, ny := d.Size()
				return errors.New(errors.ErrCodeInvalidInput, "heatmap grid %dx%d too large (max %d cells)", nx, ny, heatmap.MaxCells)
			}
			return nil
		},
		build: pure(heatmap.Build),
		hit:   hitHeatmap,
	}
}

func sankeyWidget(s Settings) Widget {
	return &chart[sankey.Data, sankey.Options, sankey.Layout]{
		kind: KindSankey,
		prepare: func(o *sankey.Options) {
			if o.Width <= 0 {
				o.Width = s.Canvas.Width
			}
			if o.Height <= 0 {
				o.Height = s.Canvas.Height
			}
			o.Palette = s.Palette
		},
		validate: func(d sankey.Data, o sankey.Options) error {
			for _, n := range d.Nodes {
				if n.ID == "" {
					return errors.New(errors.ErrCodeInvalidInput, "sankey node with empty id")
				}
				if err := validateNamed(n.Name, n.Color); err != nil {
					return err
				}
			}
			if err := errors.ValidateDimension("width", o.Width); err != nil {
				return err
			}
			return errors.ValidateDimension("height", o.Height)
		},
		build: func(d sankey.Data, o sankey.Options) (sankey.Layout, error) {
			l, err := sankey.Build(d, o)
			if sankey.IsCycle(err) {
				return l, errors.Wrap(errors.ErrCodeGraphCycle, err, "sankey layout")
			}
			if err != nil {
				return l, errors.Wrap(errors.ErrCodeInternal, err, "sankey layout")
			}
			return l, nil
		},
		frame: func(l sankey.Layout) geom.Frame {
			f := geom.Frame{Width: l.Width, Height: l.Height}
			for _, n := range l.Nodes {
				f.Width = math.Max(f.Width, n.Rect.Right())
				f.Height = math.Max(f.Height, n.Rect.Bottom())
			}
			return f
		},
		hit: hitSankey,
	}
}

func liquidWidget() Widget {
	return &chart[liquid.Data, liquid.Options, liquid.Layout]{
		kind: KindLiquid,
		validate: func(_ liquid.Data, o liquid.Options) error {
			if o.Color != "" {
				if err := errors.ValidateColor(o.Color); err != nil {
					return err
				}
			}
			if err := errors.ValidateCount("samples", o.Samples, liquid.MaxSamples); err != nil {
				return err
			}
			return errors.ValidateDimension("radius", o.Radius)
		},
		build: pure(liquid.Build),
		frame: func(l liquid.Layout) geom.Frame {
			return geom.Frame{Width: 2 * l.Center.X, Height: 2 * l.Center.Y}
		},
		hit: hitLiquid,
	}
}

func validateNamed(name, color string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if color == "" {
		return nil
	}
	return errors.ValidateColor(color)
}

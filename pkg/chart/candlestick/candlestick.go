// Package candlestick lays out OHLC series as candle bodies and wicks.
//
// Coordinates are percentages of the plot area: x runs 0..100 left to right
// and y runs 0..100 top to bottom, so higher prices have smaller y. The price
// axis spans the lowest low to the highest high, padded by 5% on both ends.
//
// Records are not validated; a record with low above high simply yields an
// inverted wick.
package candlestick

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/scale"
)

const (
	pricePadding = 0.05
	bodyFraction = 0.8
	yTickCount   = 6
	maxXLabels   = 10
)

// Default colors.
var (
	DefaultUpColor   = geom.MustHex("#26a69a")
	DefaultDownColor = geom.MustHex("#ef5350")
)

// Record is one OHLC interval.
type Record struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume,omitempty"`
}

// Options overrides bar colors. Empty strings keep the defaults.
type Options struct {
	UpColor   string `json:"up_color,omitempty"`
	DownColor string `json:"down_color,omitempty"`
}

// Wick is the vertical high-low line of a bar.
type Wick struct {
	X      float64 `json:"x"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Bar is the geometry of one record.
type Bar struct {
	Index  int           `json:"index"`
	Date   string        `json:"date"`
	Record Record        `json:"record"`
	Up     bool          `json:"up"`
	Color  geom.ColorRGB `json:"color"`
	Body   geom.Rect     `json:"body"`
	Wick   Wick          `json:"wick"`
	Volume *geom.Rect    `json:"volume,omitempty"`
}

// AxisLabel is a tick label positioned along one axis, in percent.
type AxisLabel struct {
	Text    string  `json:"text"`
	Value   float64 `json:"value,omitempty"`
	Percent float64 `json:"percent"`
}

// Layout is the computed candlestick geometry.
type Layout struct {
	MinPrice float64     `json:"min_price"`
	MaxPrice float64     `json:"max_price"`
	BarWidth float64     `json:"bar_width"`
	Bars     []Bar       `json:"bars"`
	YLabels  []AxisLabel `json:"y_labels"`
	XLabels  []AxisLabel `json:"x_labels"`
}

// Build computes the candlestick layout for records in order.
func Build(records []Record, opts Options) Layout {
	if len(records) == 0 {
		return Layout{}
	}
	up := pickColor(opts.UpColor, DefaultUpColor)
	down := pickColor(opts.DownColor, DefaultDownColor)

	minPrice, maxPrice := priceBounds(records)
	l := Layout{
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		BarWidth: 100 / float64(len(records)),
	}
	percent := func(p float64) float64 {
		return 100 - scale.Ratio(p, minPrice, maxPrice)*100
	}

	maxVolume := 0.0
	for _, r := range records {
		maxVolume = math.Max(maxVolume, r.Volume)
	}

	l.Bars = make([]Bar, len(records))
	for i, r := range records {
		openP, closeP := percent(r.Open), percent(r.Close)
		x := float64(i) * l.BarWidth
		w := bodyFraction * l.BarWidth
		b := Bar{
			Index:  i,
			Date:   r.Date,
			Record: r,
			Up:     r.Close >= r.Open,
			Body: geom.Rect{
				X:      x,
				Y:      math.Min(openP, closeP),
				Width:  w,
				Height: math.Abs(openP - closeP),
			},
			Wick: Wick{X: x + w/2, Top: percent(r.High), Bottom: percent(r.Low)},
		}
		b.Color = down
		if b.Up {
			b.Color = up
		}
		if maxVolume > 0 {
			h := r.Volume / maxVolume * 100
			b.Volume = &geom.Rect{X: x, Y: 100 - h, Width: w, Height: h}
		}
		l.Bars[i] = b
	}

	l.YLabels = make([]AxisLabel, yTickCount)
	for i := range yTickCount {
		frac := float64(i) / float64(yTickCount-1)
		v := maxPrice - (maxPrice-minPrice)*frac
		l.YLabels[i] = AxisLabel{Text: formatPrice(v), Value: v, Percent: frac * 100}
	}

	stride := int(math.Ceil(float64(len(records)) / maxXLabels))
	for i := 0; i < len(records); i += stride {
		l.XLabels = append(l.XLabels, AxisLabel{
			Text:    records[i].Date,
			Percent: float64(i)*l.BarWidth + bodyFraction*l.BarWidth/2,
		})
	}
	return l
}

// priceBounds returns the padded [min, max] price range across lows and highs.
func priceBounds(records []Record) (float64, float64) {
	prices := make([]float64, 0, 2*len(records))
	for _, r := range records {
		prices = append(prices, r.Low, r.High)
	}
	lo, hi := stats.Bounds(prices)
	pad := scale.Span(lo, hi) * pricePadding
	return lo - pad, hi + pad
}

func pickColor(s string, fallback geom.ColorRGB) geom.ColorRGB {
	if s == "" {
		return fallback
	}
	if c, err := geom.ParseHex(s); err == nil {
		return c
	}
	return fallback
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

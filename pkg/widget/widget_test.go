package widget

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/chartgeo/pkg/chart/candlestick"
	"github.com/matzehuels/chartgeo/pkg/chart/gauge"
	"github.com/matzehuels/chartgeo/pkg/chart/liquid"
	"github.com/matzehuels/chartgeo/pkg/chart/radar"
	"github.com/matzehuels/chartgeo/pkg/chart/sankey"
	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
)

func render(t *testing.T, reg *Registry, kind Kind, data, opts string) Result {
	t.Helper()
	req := Request{Kind: kind, Data: json.RawMessage(data)}
	if opts != "" {
		req.Options = json.RawMessage(opts)
	}
	res, err := reg.Render(req)
	if err != nil {
		t.Fatalf("Render(%s): %v", kind, err)
	}
	return res
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default(Settings{})
	want := []string{"candlestick", "funnel", "gauge", "heatmap", "liquid", "radar", "sankey"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := reg.Kinds(); got[0] != KindGauge || len(got) != 7 {
		t.Errorf("Kinds() = %v", got)
	}
	if got := reg.Aliases(KindCandlestick); !reflect.DeepEqual(got, []string{"kline", "ohlc"}) {
		t.Errorf("Aliases(candlestick) = %v", got)
	}
}

func TestResolve(t *testing.T) {
	reg := Default(Settings{})
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"gauge", KindGauge, false},
		{" Gauge ", KindGauge, false},
		{"ohlc", KindCandlestick, false},
		{"spider", KindRadar, false},
		{"liquidfill", KindLiquid, false},
		{"pie", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := reg.Resolve(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Resolve(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidChart) {
			t.Errorf("Resolve(%q) code = %s, want INVALID_CHART", tt.name, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRenderCanonicalKind(t *testing.T) {
	reg := Default(Settings{})
	res := render(t, reg, "ohlc", `[{"date":"d1","open":1,"high":2,"low":0.5,"close":1.5}]`, "")
	if res.Kind != KindCandlestick || !res.Percent || res.Bounds() != geom.PercentFrame {
		t.Errorf("result = %+v", res)
	}
	if _, ok := res.Geometry.(candlestick.Layout); !ok {
		t.Errorf("geometry type = %T", res.Geometry)
	}
}

func TestRenderErrors(t *testing.T) {
	reg := Default(Settings{})
	tests := []struct {
		name string
		req  Request
		code errors.Code
	}{
		{"unknown kind", Request{Kind: "pie"}, errors.ErrCodeInvalidChart},
		{"bad data", Request{Kind: KindGauge, Data: json.RawMessage(`{"value":"x"}`)}, errors.ErrCodeInvalidInput},
		{"bad options", Request{Kind: KindGauge, Options: json.RawMessage(`[`)}, errors.ErrCodeInvalidInput},
		{"negative radius", Request{Kind: KindLiquid, Options: json.RawMessage(`{"radius":-5}`)}, errors.ErrCodeInvalidInput},
		{"bad color", Request{Kind: KindFunnel, Data: json.RawMessage(`[{"name":"a","value":1,"color":"red"}]`)}, errors.ErrCodeInvalidInput},
		{"bad name", Request{Kind: KindFunnel, Data: json.RawMessage(`[{"name":"a\nb","value":1}]`)}, errors.ErrCodeInvalidInput},
		{"bad gradient", Request{Kind: KindHeatmap, Options: json.RawMessage(`{"gradient":"green"}`)}, errors.ErrCodeInvalidInput},
		{"empty node id", Request{Kind: KindSankey, Data: json.RawMessage(`{"nodes":[{"id":""}]}`)}, errors.ErrCodeInvalidInput},
		{"huge splits", Request{Kind: KindGauge, Data: json.RawMessage(`{"value":1,"max":2}`), Options: json.RawMessage(`{"splits":1099511627776}`)}, errors.ErrCodeInvalidInput},
		{"huge levels", Request{Kind: KindRadar, Data: json.RawMessage(`{"indicators":[{"name":"a"}]}`), Options: json.RawMessage(`{"levels":1099511627776}`)}, errors.ErrCodeInvalidInput},
		{"huge samples", Request{Kind: KindLiquid, Data: json.RawMessage(`{"value":0.5}`), Options: json.RawMessage(`{"samples":1099511627776}`)}, errors.ErrCodeInvalidInput},
		{"sparse heatmap index", Request{Kind: KindHeatmap, Data: json.RawMessage(`{"cells":[{"x":35184372088832,"y":0,"value":1}]}`)}, errors.ErrCodeInvalidInput},
		{"large heatmap grid", Request{Kind: KindHeatmap, Data: json.RawMessage(`{"cells":[{"x":8589934592,"y":3,"value":1}]}`)}, errors.ErrCodeInvalidInput},
		{"cycle", Request{Kind: KindSankey, Data: json.RawMessage(
			`{"nodes":[{"id":"a"},{"id":"b"}],"links":[{"source":"a","target":"b","value":1},{"source":"b","target":"a","value":1}]}`,
		)}, errors.ErrCodeGraphCycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Render(tt.req)
			if !errors.Is(err, tt.code) {
				t.Errorf("Render error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSettingsApplied(t *testing.T) {
	reg := Default(Settings{
		Palette:     geom.Palette{geom.MustHex("#000000")},
		Canvas:      geom.Frame{Width: 400, Height: 300},
		GaugeSplits: 4,
		RadarLevels: 3,
	})

	s := render(t, reg, KindSankey, `{"nodes":[{"id":"a","value":100}]}`, "").Geometry.(sankey.Layout)
	if s.Width != 400 || s.Height != 300 {
		t.Errorf("sankey canvas = %vx%v, want 400x300", s.Width, s.Height)
	}
	if s.Nodes[0].Color != (geom.ColorRGB{}) {
		t.Errorf("sankey node color = %v, want palette black", s.Nodes[0].Color)
	}

	g := render(t, reg, KindGauge, `{"value":5,"min":0,"max":10}`, "").Geometry.(gauge.Layout)
	if len(g.Ticks) != 5 {
		t.Errorf("gauge ticks = %d, want 5", len(g.Ticks))
	}
	g = render(t, reg, KindGauge, `{"value":5,"min":0,"max":10}`, `{"splits":2}`).Geometry.(gauge.Layout)
	if len(g.Ticks) != 3 {
		t.Errorf("explicit splits ignored: %d ticks", len(g.Ticks))
	}

	r := render(t, reg, KindRadar, `{"indicators":[{"name":"a"},{"name":"b"},{"name":"c"}]}`, "").Geometry.(radar.Layout)
	if len(r.Grid) != 3 {
		t.Errorf("radar grid levels = %d, want 3", len(r.Grid))
	}
}

func TestSankeyFrameCoversNodes(t *testing.T) {
	reg := Default(Settings{})
	res := render(t, reg, KindSankey, `{"nodes":[{"id":"a","value":5000}]}`, `{"width":100,"height":100}`)
	l := res.Geometry.(sankey.Layout)
	if res.Frame.Height < l.Nodes[0].Rect.Bottom() || res.Frame.Width != 100 {
		t.Errorf("frame %+v does not cover node %+v", res.Frame, l.Nodes[0].Rect)
	}
}

func TestHitTesting(t *testing.T) {
	reg := Default(Settings{})
	chainData := `{"nodes":[{"id":"A"},{"id":"B"},{"id":"C"}],"links":[{"source":"A","target":"B","value":100},{"source":"B","target":"C","value":50}]}`
	sk := render(t, reg, KindSankey, chainData, "")
	skl := sk.Geometry.(sankey.Layout)

	g := render(t, reg, KindGauge, `{"value":50,"min":0,"max":100}`, "")
	gl := g.Geometry.(gauge.Layout)
	pointerMid := geom.Point{X: (gl.Pointer.From.X + gl.Pointer.To.X) / 2, Y: (gl.Pointer.From.Y + gl.Pointer.To.Y) / 2}

	rd := render(t, reg, KindRadar, `{"indicators":[{"name":"a","max":10},{"name":"b","max":10},{"name":"c","max":10}],"series":[{"name":"s","values":[10,5,5]}]}`, "")
	rl := rd.Geometry.(radar.Layout)

	lq := render(t, reg, KindLiquid, `{"value":0.5}`, "")
	ll := lq.Geometry.(liquid.Layout)

	tests := []struct {
		name    string
		res     Result
		point   geom.Point
		ok      bool
		element string
		label   string
	}{
		{"funnel segment", render(t, reg, KindFunnel, `[{"name":"top","value":100},{"name":"low","value":50}]`, ""), geom.Point{X: 50, Y: 25}, true, "segment", "top"},
		{"funnel margin", render(t, reg, KindFunnel, `[{"name":"top","value":100},{"name":"low","value":50}]`, ""), geom.Point{X: 5, Y: 75}, false, "", ""},
		{"heatmap cell", render(t, reg, KindHeatmap, `{"x_labels":["a","b"],"y_labels":["r","s"],"cells":[{"x":1,"y":1,"value":3}]}`, ""), geom.Point{X: 75, Y: 75}, true, "cell", "b"},
		{"candlestick bar", render(t, reg, KindCandlestick, `[{"date":"d1","open":1,"high":3,"low":0,"close":2},{"date":"d2","open":2,"high":3,"low":1,"close":1}]`, ""), geom.Point{X: 70, Y: 50}, true, "bar", "d2"},
		{"candlestick gap", render(t, reg, KindCandlestick, `[{"date":"d1","open":1,"high":3,"low":0,"close":2},{"date":"d2","open":2,"high":3,"low":1,"close":1}]`, ""), geom.Point{X: 45, Y: 50}, false, "", ""},
		{"sankey node", sk, skl.Nodes[0].Rect.Center(), true, "node", "A"},
		{"sankey link", sk, skl.Links[0].PointAt(0.5), true, "link", "A → B"},
		{"sankey empty", sk, geom.Point{X: 790, Y: 590}, false, "", ""},
		{"gauge pointer", g, pointerMid, true, "pointer", "mid"},
		{"radar vertex", rd, rl.Series[0].Points[0], true, "point", "a"},
		{"radar area", rd, rl.Center, true, "series", "s"},
		{"liquid inside", lq, ll.Center, true, "liquid", "50%"},
		{"liquid outside", lq, geom.Point{}, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok, err := reg.Hit(tt.res, Interaction{Point: tt.point})
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.ok {
				t.Fatalf("hit = %v (%+v), want %v", ok, h, tt.ok)
			}
			if !ok {
				return
			}
			if h.Element != tt.element || h.Label != tt.label || h.Kind != tt.res.Kind {
				t.Errorf("hit = %+v, want element %q label %q", h, tt.element, tt.label)
			}
		})
	}
}

func TestDecodeResult(t *testing.T) {
	reg := Default(Settings{})
	res := render(t, reg, KindFunnel, `[{"name":"top","value":100}]`, "")
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	back, err := reg.DecodeResult(data)
	if err != nil {
		t.Fatalf("DecodeResult: %v", err)
	}
	if !reflect.DeepEqual(back, res) {
		t.Errorf("DecodeResult = %+v, want %+v", back, res)
	}
	if _, ok, _ := reg.Hit(back, Interaction{Point: geom.Point{X: 50, Y: 50}}); !ok {
		t.Error("decoded result is not hit-testable")
	}

	g := render(t, reg, KindGauge, `{"value":80,"min":0,"max":100}`, "")
	data, _ = json.Marshal(g)
	if back, err = reg.DecodeResult(data); err != nil || !reflect.DeepEqual(back, g) {
		t.Errorf("gauge DecodeResult = %+v, %v", back, err)
	}

	if _, err := reg.DecodeResult([]byte(`{"kind":"pie"}`)); !errors.Is(err, errors.ErrCodeInvalidChart) {
		t.Errorf("unknown kind error = %v", err)
	}
	if _, err := reg.DecodeResult([]byte(`{`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed error = %v", err)
	}
}

func TestOnInteractionForeignGeometry(t *testing.T) {
	w, _ := Default(Settings{}).Lookup("gauge")
	if _, ok := w.OnInteraction(Result{Kind: KindGauge, Geometry: "nope"}, Interaction{}); ok {
		t.Error("foreign geometry should never hit")
	}
	var nilLayout *gauge.Layout
	if _, ok := w.OnInteraction(Result{Kind: KindGauge, Geometry: nilLayout}, Interaction{}); ok {
		t.Error("nil geometry should never hit")
	}
}

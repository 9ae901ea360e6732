package sink

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

const flowData = `{"nodes":[{"id":"A","name":"Source"},{"id":"B"},{"id":"C"}],` +
	`"links":[{"source":"A","target":"B","value":100},{"source":"B","target":"C","value":50}]}`

func mustRender(t *testing.T, kind widget.Kind, data string) widget.Result {
	t.Helper()
	res, err := widget.Default(widget.Settings{}).Render(widget.Request{Kind: kind, Data: json.RawMessage(data)})
	if err != nil {
		t.Fatalf("Render(%s): %v", kind, err)
	}
	return res
}

func TestRenderJSON(t *testing.T) {
	res := mustRender(t, widget.KindFunnel, `[{"name":"a","value":10}]`)

	data, err := RenderJSON(res, WithJSONID("fixed"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out Envelope
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.ID != "fixed" || out.Kind != widget.KindFunnel || !out.Percent || out.Frame != geom.PercentFrame {
		t.Errorf("envelope = %+v", out)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("default output should be indented")
	}

	compact, _ := RenderJSON(res, WithJSONCompact())
	if strings.Contains(string(compact), "\n") {
		t.Error("compact output contains newlines")
	}
}

func TestRenderJSONGeneratesIDs(t *testing.T) {
	res := mustRender(t, widget.KindLiquid, `{"value":0.3}`)
	a, _ := RenderJSON(res)
	b, _ := RenderJSON(res)
	var ea, eb Envelope
	_ = json.Unmarshal(a, &ea)
	_ = json.Unmarshal(b, &eb)
	if ea.ID == "" || ea.ID == eb.ID {
		t.Errorf("ids = %q, %q, want distinct UUIDs", ea.ID, eb.ID)
	}
	if len(ea.ID) != 36 {
		t.Errorf("id %q is not a UUID", ea.ID)
	}
}

func TestRenderSVGAllKinds(t *testing.T) {
	tests := []struct {
		kind widget.Kind
		data string
		want string
	}{
		{widget.KindGauge, `{"value":40,"min":0,"max":100}`, "<path"},
		{widget.KindRadar, `{"indicators":[{"name":"a"},{"name":"b"},{"name":"c"}],"series":[{"name":"s","values":[1,2,3]}]}`, "<polygon"},
		{widget.KindCandlestick, `[{"date":"d1","open":1,"high":2,"low":0,"close":1.5,"volume":10}]`, "fill-opacity:0.3"},
		{widget.KindFunnel, `[{"name":"visits","value":100}]`, ">visits</text>"},
		{widget.KindHeatmap, `{"cells":[{"x":0,"y":0,"value":1},{"x":1,"y":0,"value":2}]}`, "<rect"},
		{widget.KindSankey, flowData, ">Source</text>"},
		{widget.KindLiquid, `{"value":0.5}`, `clip-path="url(#liquid-clip)"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			out, err := RenderSVG(mustRender(t, tt.kind, tt.data), WithTitle("chart"))
			if err != nil {
				t.Fatalf("RenderSVG: %v", err)
			}
			s := string(out)
			if !strings.Contains(s, "<svg") || !strings.HasSuffix(strings.TrimSpace(s), "</svg>") {
				t.Errorf("not an svg document:\n%s", s)
			}
			if !strings.Contains(s, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, s)
			}
			if !strings.Contains(s, "<title>chart</title>") {
				t.Error("title missing")
			}
		})
	}
}

func TestRenderSVGScalesPercentSpace(t *testing.T) {
	res := mustRender(t, widget.KindFunnel, `[{"name":"a","value":100},{"name":"b","value":50}]`)
	out, err := RenderSVG(res, WithSize(geom.Frame{Width: 200, Height: 100}))
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{
		`width="200" height="100"`,
		`<rect x="0" y="0" width="200" height="50"`,
		`<rect x="50" y="50" width="100" height="50"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestRenderSVGViewBox(t *testing.T) {
	res := mustRender(t, widget.KindLiquid, `{"value":0.5}`)
	out, _ := RenderSVG(res, WithBackground("#ffffff"))
	s := string(out)
	if !strings.Contains(s, `viewBox="0 0 220 220"`) {
		t.Errorf("viewBox does not match bounds %+v:\n%s", res.Bounds(), s)
	}
	if !strings.Contains(s, "fill:#ffffff") {
		t.Error("background missing")
	}
}

func TestRenderSVGUnsupported(t *testing.T) {
	_, err := RenderSVG(widget.Result{Kind: "custom", Geometry: 42})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestToDOT(t *testing.T) {
	dot, err := ToDOT(mustRender(t, widget.KindSankey, flowData))
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	for _, want := range []string{
		"rankdir=LR;",
		`"A" [label="Source", fillcolor="#5470c6"`,
		`{ rank=same; /* level 1 */ "B"; }`,
		`"A" -> "B" [label="100", penwidth=10.00, color="#5470c680"];`,
		`"B" -> "C" [label="50", penwidth=5.00`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTRejectsOtherKinds(t *testing.T) {
	_, err := ToDOT(mustRender(t, widget.KindGauge, `{"value":1,"max":2}`))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestRenderFlowSVG(t *testing.T) {
	dot, err := ToDOT(mustRender(t, widget.KindSankey, flowData))
	if err != nil {
		t.Fatal(err)
	}
	out, err := RenderFlowSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderFlowSVG: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("header not normalized:\n%.300s", s)
	}
	if !strings.Contains(s, "Source") {
		t.Error("node label missing from flow SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}
	if plain := []byte("<svg><g/></svg>"); string(normalizeViewBox(plain)) != string(plain) {
		t.Error("input without viewBox should pass through")
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

const funnelRequest = `{"kind":"funnel","data":[{"name":"visits","value":100},{"name":"signups","value":30}]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     string
		wantKind widget.Kind
		wantErr  bool
	}{
		{"envelope", funnelRequest, "", widget.KindFunnel, false},
		{"override kind", funnelRequest, "gauge", widget.KindGauge, false},
		{"bare array", `[{"name":"a","value":1}]`, "funnel", widget.KindFunnel, false},
		{"bare object", `{"value":0.4}`, "liquid", widget.KindLiquid, false},
		{"bare without kind", `{"value":0.4}`, "", "", true},
		{"envelope without kind", `{"data":{"value":1}}`, "", "", true},
		{"invalid json", `{"kind":`, "gauge", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseRequest([]byte(tt.input), tt.kind)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRequest error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("error code = %s", errors.GetCode(err))
				}
				return
			}
			if req.Kind != tt.wantKind || len(req.Data) == 0 {
				t.Errorf("request = %+v", req)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "charts/sales.json", "charts/sales"},
		{"", "-", "chart"},
		{"out/sales.svg", "x.json", "out/sales"},
		{"out/flow.flow.svg", "x.json", "out/flow"},
		{"out/g.layout.json", "x.json", "out/g"},
		{"out/base", "x.json", "out/base"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"json", []string{"json"}},
		{"svg, json,dot", []string{"svg", "json", "dot"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "sales.json", funnelRequest)

	if _, err := execute(t, "render", input, "-f", "svg,json,dot", "--title", "Sales"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "sales.svg"))
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.Contains(string(svg), "<title>Sales</title>") {
		t.Error("svg missing title")
	}
	var env struct {
		Kind string `json:"kind"`
	}
	data, _ := os.ReadFile(filepath.Join(dir, "sales.layout.json"))
	if err := json.Unmarshal(data, &env); err != nil || env.Kind != "funnel" {
		t.Errorf("json artifact = %.80s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "sales.dot")); err == nil {
		t.Error("dot should be skipped for funnel charts")
	}
}

func TestRenderSankeyFlow(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "energy.json",
		`{"kind":"flow","data":{"nodes":[{"id":"coal"},{"id":"power"}],"links":[{"source":"coal","target":"power","value":5}]}}`)
	out := filepath.Join(dir, "out", "energy.dot")

	if _, err := execute(t, "render", input, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), `"coal" -> "power"`) {
		t.Errorf("dot = %s", dot)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "g.json", `{"kind":"gauge","data":{"value":1}}`)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", input, "-f", "png"}, errors.ErrCodeInvalidFormat},
		{"dot only", []string{"render", input, "-f", "dot"}, errors.ErrCodeUnsupported},
		{"unknown kind", []string{"render", input, "-k", "pie"}, errors.ErrCodeInvalidChart},
		{"missing config", []string{"--config", filepath.Join(dir, "nope.toml"), "render", input}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLayoutToStdout(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "level.json", `{"value":0.6}`)

	out, err := execute(t, "layout", input, "--kind", "liquidfill", "-o", "-", "--no-cache")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var env struct {
		Kind     string          `json:"kind"`
		Geometry json.RawMessage `json:"geometry"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if env.Kind != "liquid" || len(env.Geometry) == 0 {
		t.Errorf("envelope = %+v", env)
	}
}

func TestConfigPalette(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "chartgeo.yaml", "palette: [\"#123456\"]\n")
	input := writeFile(t, dir, "f.json", `{"kind":"funnel","data":[{"name":"a","value":1}]}`)

	out, err := execute(t, "--config", cfg, "layout", input, "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"r": 18`) || !strings.Contains(out, `"g": 52`) {
		t.Errorf("configured palette not applied:\n%s", out)
	}
}

func TestKindsCommand(t *testing.T) {
	out, err := execute(t, "kinds")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"gauge", "candlestick", "ohlc", "sankey", "liquidfill"} {
		if !strings.Contains(out, want) {
			t.Errorf("kinds output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	cacheHome := t.TempDir()
	dir := t.TempDir()
	input := writeFile(t, dir, "f.json", funnelRequest)

	run := func(args ...string) string {
		t.Helper()
		c := New(io.Discard, log.InfoLevel)
		root := c.RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	if got := strings.TrimSpace(run("cache", "path")); got != filepath.Join(cacheHome, appName) {
		t.Errorf("cache path = %q", got)
	}

	run("render", input, "-f", "svg")
	entries, _ := os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) == 0 {
		t.Fatal("render did not populate the cache")
	}

	run("cache", "clear")
	var files int
	_ = filepath.Walk(filepath.Join(cacheHome, appName), func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Errorf("%d files left after clear", files)
	}
}

func TestScanRequests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", funnelRequest)
	writeFile(t, dir, "a.json", `{"data":{"value":1}}`)
	writeFile(t, dir, "a.layout.json", `{"kind":"gauge","data":{}}`)
	writeFile(t, dir, "notes.json", `["not","a","request"]`)
	writeFile(t, dir, "readme.txt", "hello")

	entries, err := scanRequests(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if filepath.Base(entries[0].Path) != "a.json" || entries[0].Kind != "" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Kind != "funnel" || entries[1].Size == 0 {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestBrowseModel(t *testing.T) {
	m := newBrowseModel([]requestEntry{
		{Path: "a.json"},
		{Path: "b.json", Kind: "gauge"},
	})

	// Entries without a kind cannot be selected.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(browseModel)
	if m.Selected != nil {
		t.Error("selected an entry without a kind")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(browseModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(browseModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	view := m.View()
	if !strings.Contains(view, "b.json") || !strings.Contains(view, "[2/2]") {
		t.Errorf("view:\n%s", view)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(browseModel)
	if m.Selected == nil || m.Selected.Path != "b.json" || cmd == nil {
		t.Errorf("enter should select b.json and quit, got %+v", m.Selected)
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr = %q", got)
	}
	if got := displayAddr("0.0.0.0:80"); got != "0.0.0.0:80" {
		t.Errorf("displayAddr = %q", got)
	}
}

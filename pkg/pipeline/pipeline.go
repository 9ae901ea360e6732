// Package pipeline provides the layout → render pipeline for chartgeo.
//
// This package implements the request handling shared by the CLI and the
// HTTP server. By centralizing this logic, both entry points cache, log and
// report errors the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Decode a [widget.Request] and compute its geometry
//  2. Render: Write the geometry in one or more output formats
//     (JSON, SVG, DOT, flow SVG)
//
// Each stage is cached separately: the layout under a key derived from the
// request, every artifact under a key derived from the layout and the
// render options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, widget.Default(settings), logger)
//	result, err := runner.Execute(ctx, req, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	res, hash, hit, err := runner.LayoutWithCacheInfo(ctx, req, false)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, res, hash, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgeo/pkg/cache"
	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatFlow = "flow"
)

// AllFormats lists the supported output formats in display order.
var AllFormats = []string{FormatJSON, FormatSVG, FormatDOT, FormatFlow}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatFlow: true,
}

// flowFormats are only defined for sankey results.
var flowFormats = map[string]bool{
	FormatDOT:  true,
	FormatFlow: true,
}

// ContentTypes maps output formats to their MIME types.
var ContentTypes = map[string]string{
	FormatJSON: "application/json",
	FormatSVG:  "image/svg+xml",
	FormatDOT:  "text/vnd.graphviz",
	FormatFlow: "image/svg+xml",
}

// Extensions maps output formats to file extensions.
var Extensions = map[string]string{
	FormatJSON: ".json",
	FormatSVG:  ".svg",
	FormatDOT:  ".dot",
	FormatFlow: ".flow.svg",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the render configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Formats lists the artifacts to produce. Defaults to json.
	Formats []string `json:"formats,omitempty"`

	// Width and Height size the SVG canvas. Zero keeps the natural size of
	// the geometry (800x600 for percent-space charts).
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Title is written into SVG output.
	Title string `json:"title,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Geometry is the computed layout.
	Geometry widget.Result

	// LayoutHash is the content hash of the encoded geometry.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Skipped lists requested formats that do not apply to the chart kind.
	Skipped []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayoutTime time.Duration
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the geometry came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, AllFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", o.Height); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Height: o.Height,
		Title:  o.Title,
	}
}

// FormatsFor splits the requested formats into those that apply to kind and
// those that do not.
func (o *Options) FormatsFor(kind widget.Kind) (keep, skip []string) {
	for _, f := range o.Formats {
		if flowFormats[f] && kind != widget.KindSankey {
			skip = append(skip, f)
			continue
		}
		keep = append(keep, f)
	}
	return keep, skip
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// Package pkg provides the core libraries for chartgeo, a chart geometry
// engine.
//
// # Overview
//
// chartgeo turns chart data into resolution-independent geometry: arcs,
// polygons, rectangles and curved links in a fixed coordinate frame. The
// geometry can be written as JSON for a client-side renderer, drawn as SVG,
// or exported as a Graphviz graph. The pkg directory is organized into
// three areas:
//
//  1. Math - [geom], [scale] and [polar] hold the shared primitives
//  2. Layouts - one package per chart kind under chart/, plus [dag] for
//     the flow graphs behind sankey diagrams
//  3. Plumbing - [widget], [sink], [pipeline], [cache], [config] and
//     [server] connect the layouts to the CLI and the HTTP API
//
// # Architecture
//
// The typical data flow through chartgeo:
//
//	Request (kind + JSON data + options)
//	         ↓
//	    [widget] package (decode, look up the kind, apply settings)
//	         ↓
//	    chart/<kind> package (compute geometry)
//	         ↓
//	    [sink] package (JSON, SVG, DOT or flow SVG)
//
// The [pipeline] package runs both stages with separate caches and is shared
// by the command-line tool and the [server].
//
// # Quick Start
//
// Compute a gauge directly:
//
//	import "github.com/matzehuels/chartgeo/pkg/chart/gauge"
//
//	layout := gauge.Build(gauge.Data{Value: 72, Max: 100}, gauge.Options{})
//
// Run a request through the pipeline:
//
//	import (
//	    "github.com/matzehuels/chartgeo/pkg/cache"
//	    "github.com/matzehuels/chartgeo/pkg/pipeline"
//	    "github.com/matzehuels/chartgeo/pkg/widget"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, widget.Default(widget.Settings{}), nil)
//	result, err := runner.Execute(ctx, req, pipeline.Options{Formats: []string{"svg"}})
//
// # Package Index
//
// Math:
//   - [geom]: points, frames, colors and SVG-style arc paths
//   - [scale]: linear scales, color gradients and threshold bands
//   - [polar]: polar to cartesian conversion and arc description
//
// Layouts:
//   - chart/gauge, chart/radar, chart/candlestick, chart/funnel,
//     chart/heatmap, chart/sankey, chart/liquid
//   - [dag]: directed graphs with leveling and cycle handling
//
// Plumbing:
//   - [widget]: chart kinds, aliases and hit testing
//   - [sink]: output writers
//   - [pipeline]: cached layout and render stages
//   - [cache]: file, Redis and no-op caches
//   - [config]: TOML and YAML settings
//   - [server]: HTTP API
//   - [errors]: error codes shared by the CLI and the API
//   - [observability]: pipeline and HTTP hooks
//   - [buildinfo]: version information
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/geom
// [scale]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/scale
// [polar]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/polar
// [dag]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/dag
// [widget]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/widget
// [sink]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/chartgeo/pkg/buildinfo
package pkg

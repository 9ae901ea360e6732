// Package sink turns widget results into output artifacts.
//
// # Overview
//
// A "sink" takes a computed [widget.Result] and writes it in a final format:
//
//   - JSON: the geometry wrapped in an envelope with a document ID
//   - SVG: a static preview drawn with svgo, for every chart kind
//   - DOT: a Graphviz description of a sankey flow graph
//   - Flow SVG: the DOT graph laid out and drawn by Graphviz
//
// Percent-space results (candlestick, funnel, heatmap) are scaled to the
// requested canvas; all other kinds are drawn in their own coordinates with
// a viewBox matching [widget.Result.Bounds].
//
// # Usage
//
//	data, err := sink.RenderJSON(res)
//	svg, err := sink.RenderSVG(res, sink.WithSize(geom.Frame{Width: 800, Height: 600}))
//
//	dot, err := sink.ToDOT(res)
//	flow, err := sink.RenderFlowSVG(ctx, dot)
//
// Only sankey results have a DOT form; other kinds return an UNSUPPORTED
// error from [ToDOT].
package sink

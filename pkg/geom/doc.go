// Package geom defines the geometry records that cross the boundary between the
// layout engine and a renderer.
//
// # Overview
//
// Every layout in [github.com/matzehuels/chartgeo/pkg/chart] produces plain value
// records from this package: [Point], [Rect], [ArcPath], [Polygon] and [ColorRGB],
// plus a few helper records ([Segment], [Label], [LegendEntry]) that bundle them.
// None of them carry behavior beyond small accessors and hit-testing, and none of
// them reference DOM or drawing state.
//
// # Palette
//
// [DefaultPalette] is the fixed eight-color cycle used for series and node
// colors when the caller does not set an explicit color:
//
//	p := geom.DefaultPalette()
//	c := p.At(9) // same as p.At(1): #91cc75
//
// [ParsePalette] builds a palette from hex strings, e.g. from a config file.
package geom

package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chartgeo/pkg/chart/sankey"
	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// ToDOT converts a sankey result to Graphviz DOT. Nodes on the same level
// share a rank and edges carry the link value, width and color.
func ToDOT(res widget.Result) (string, error) {
	l, ok := res.Geometry.(sankey.Layout)
	if !ok {
		return "", errors.New(errors.ErrCodeUnsupported, "%s results have no flow graph", res.Kind)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fontcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	levels := make([][]string, l.MaxLevel+1)
	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, tooltip=%q];\n",
			n.ID, n.Name, n.Color.Hex(), strconv.FormatFloat(n.Value, 'f', -1, 64))
		if n.Level >= 0 && n.Level < len(levels) {
			levels[n.Level] = append(levels[n.Level], n.ID)
		}
	}

	buf.WriteString("\n")
	for lvl, ids := range levels {
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  { rank=same; /* level %d */", lvl)
		for _, id := range ids {
			fmt.Fprintf(&buf, " %q;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, lk := range l.Links {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, penwidth=%.2f, color=\"%s80\"];\n",
			lk.Source, lk.Target, strconv.FormatFloat(lk.Value, 'f', -1, 64),
			penWidth(lk.StrokeWidth), lk.Color.Hex())
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// penWidth maps a link stroke in pixels to a Graphviz pen width in points.
func penWidth(stroke float64) float64 {
	return max(1, stroke/2)
}

// RenderFlowSVG lays out a DOT graph with Graphviz and returns it as SVG.
func RenderFlowSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// pixel one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

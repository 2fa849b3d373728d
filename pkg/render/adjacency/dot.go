package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Labels annotates every edge with the library edge id it was drawn from.
	Labels bool
}

// NodeID returns the DOT node name of the piece at (r, c).
func NodeID(r, c int) string {
	return fmt.Sprintf("R %d C %d", r, c)
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g *grid.Grid, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for r := 0; r < g.Rows; r++ {
		buf.WriteString("\n  { rank=same;")
		for c := 0; c < g.Columns; c++ {
			fmt.Fprintf(&buf, " %q;", NodeID(r, c))
		}
		buf.WriteString(" }\n")
	}
	buf.WriteString("\n")

	for _, b := range g.Boundaries() {
		if b.Outer {
			continue
		}
		var from, to string
		if b.Orientation == grid.Horizontal {
			from, to = NodeID(b.Row-1, b.Col), NodeID(b.Row, b.Col)
		} else {
			from, to = NodeID(b.Row, b.Col-1), NodeID(b.Row, b.Col)
		}
		fmt.Fprintf(&buf, "  %q -- %q", from, to)
		if attrs := edgeAttrs(b, opts); attrs != "" {
			fmt.Fprintf(&buf, " [%s]", attrs)
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(b *grid.Boundary, opts Options) string {
	var attrs string
	if opts.Labels {
		label := b.SourceID
		if b.Flipped {
			label += "~"
		}
		attrs = fmt.Sprintf("label=%q", label)
	}
	if b.Orientation == grid.Vertical {
		if attrs != "" {
			attrs += ", "
		}
		attrs += "constraint=false"
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders DOT source as PNG via SVG conversion with rsvg-convert.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders DOT source as PDF via SVG conversion with rsvg-convert.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

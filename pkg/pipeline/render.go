package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/core/piece"
	"github.com/matzehuels/jigsaw/pkg/core/view"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/render"
	"github.com/matzehuels/jigsaw/pkg/render/adjacency"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

// pngScale is the rsvg scale for edge and adjacency PNGs.
const pngScale = 2.0

// Render generates output artifacts in the requested formats.
// opts must have passed [Options.ValidateForRender].
func Render(ctx context.Context, cfg grid.Config, g *grid.Grid, opts Options) (map[string][]byte, error) {
	switch opts.Type {
	case TypeEdge:
		return renderEdge(ctx, cfg, opts)
	case TypeAdjacency:
		return renderAdjacency(ctx, g, opts)
	default:
		return renderPuzzle(ctx, g, opts)
	}
}

// renderPuzzle draws the assembled puzzle.
func renderPuzzle(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateRasterArea(g.Rows, g.Columns); err != nil {
		return nil, err
	}
	paths := piece.CompileGrid(g, opts.PieceSize)

	var texture image.Image
	if opts.Texture != nil {
		w, h := int(float64(g.Columns)*opts.PieceSize), int(float64(g.Rows)*opts.PieceSize)
		texture = sink.FitTexture(opts.Texture, w, h)
	}

	var svg []byte
	buildSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var svgOpts []sink.PuzzleOption
		if texture != nil {
			uri, err := sink.TextureDataURI(texture)
			if err != nil {
				return nil, err
			}
			svgOpts = append(svgOpts, sink.WithTexture(uri))
		}
		svg = sink.PuzzleSVG(paths, g.Rows, g.Columns, svgOpts...)
		return svg, nil
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = buildSVG()
		case FormatPNG:
			data, err = sink.PuzzlePNG(paths, g.Rows, g.Columns, texture)
		case FormatPDF:
			if data, err = buildSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		default:
			return nil, fmt.Errorf("unsupported puzzle format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderEdge draws one library edge the way the editor shows it.
func renderEdge(ctx context.Context, cfg grid.Config, opts Options) (map[string][]byte, error) {
	e, err := pickEdge(cfg, opts.EdgeID)
	if err != nil {
		return nil, err
	}
	svg := sink.EdgeSVG(e, view.Default())

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(ctx, svg, pngScale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svg)
		default:
			return nil, fmt.Errorf("unsupported edge format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// pickEdge returns the edge called id, or the first available edge when id is
// empty.
func pickEdge(cfg grid.Config, id string) (edge.Edge, error) {
	if id == "" {
		available, _ := cfg.Available()
		if len(available) == 0 {
			return edge.Edge{}, errors.New(errors.ErrCodeNoEdges, "config has no edges")
		}
		return available[0], nil
	}
	e, _, ok := cfg.Edge(id)
	if !ok {
		return edge.Edge{}, errors.New(errors.ErrCodeEdgeNotFound, "edge %q not found", id)
	}
	return e, nil
}

// renderAdjacency draws the piece neighbour graph with Graphviz.
func renderAdjacency(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	dot := adjacency.ToDOT(g, adjacency.Options{Labels: opts.Labels})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = adjacency.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = adjacency.RenderPNG(ctx, dot, pngScale)
		case FormatPDF:
			data, err = adjacency.RenderPDF(ctx, dot)
		default:
			return nil, fmt.Errorf("unsupported adjacency format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Package render turns compiled puzzle geometry into images.
//
// # Overview
//
// Geometry comes from [piece.Compile] as closed outlines in pixel space. This
// package and its subpackages draw those outlines:
//
//   - Generic format conversion (SVG to PDF/PNG) via rsvg-convert
//   - Piece, puzzle and edge SVG plus in-process rasterizers (in [sink])
//   - A Graphviz view of which pieces border which (in [adjacency])
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool (from
// librsvg). The export pipeline can use it as an alternative to the built-in
// canvas rasterizer:
//
//	svg := sink.PuzzleSVG(paths, rows, cols)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [piece.Compile]: github.com/matzehuels/jigsaw/pkg/core/piece
// [sink]: github.com/matzehuels/jigsaw/pkg/render/sink
// [adjacency]: github.com/matzehuels/jigsaw/pkg/render/adjacency
package render

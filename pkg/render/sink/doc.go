// Package sink writes compiled puzzle pieces to output formats.
//
// # SVG Output
//
// [PieceSVG] produces the standalone mask written for every exported piece: a
// square canvas of the export size with the outline filled white and shifted by
// the margin offset so tabs are never clipped.
//
// [PuzzleSVG] lays out every piece of a puzzle at its cell position, either as
// outlined white shapes or, with [WithTexture], as clipped regions of one image.
//
// [EdgeSVG] draws a single edge the way the interactive editor shows it: grid,
// guides, the curve, handle arms and anchors, mapped through a [view.Transform].
//
// # Rasterizers
//
// A [Rasterizer] turns one piece into PNG bytes. Two implementations exist:
//
//   - [Canvas]: pure Go, draws the outline with fogleman/gg; supports textures
//   - [Rsvg]: shells out to rsvg-convert on the piece SVG
//
// Use [NewRasterizer] to pick one by name:
//
//	r, err := sink.NewRasterizer("canvas")
//	png, err := r.Rasterize(ctx, sink.Job{Path: p, Size: 768, Offset: 128})
//
// [view.Transform]: github.com/matzehuels/jigsaw/pkg/core/view
package sink

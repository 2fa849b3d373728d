package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/piece"
)

// PieceSVG renders p as a standalone mask of size×size pixels with the outline
// translated by offset.
func PieceSVG(p piece.Path, size, offset float64) []byte {
	s, o := edge.FormatFloat(size), edge.FormatFloat(offset)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`+"\n", s, s, s, s)
	fmt.Fprintf(&buf, `  <path d="%s" fill="white" stroke="none" transform="translate(%s, %s)" />`+"\n", p, o, o)
	buf.WriteString("</svg>")
	return buf.Bytes()
}

// outlineWidth is the piece outline stroke in pixels.
const outlineWidth = 2.0

// PuzzleOption configures [PuzzleSVG].
type PuzzleOption func(*puzzleRenderer)

type puzzleRenderer struct {
	texture string
}

// WithTexture clips the image at href (usually a data URI from [TextureDataURI])
// to every piece instead of filling the pieces white.
func WithTexture(href string) PuzzleOption {
	return func(r *puzzleRenderer) { r.texture = href }
}

// PuzzleSVG renders every piece at its cell. Pieces are translated by
// (col·size, row·size) where size is the compiled piece size.
func PuzzleSVG(paths []piece.Path, rows, cols int, opts ...PuzzleOption) []byte {
	r := puzzleRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var size float64
	if len(paths) > 0 {
		size = paths[0].Size
	}
	w := edge.FormatFloat(float64(cols) * size)
	h := edge.FormatFloat(float64(rows) * size)
	sw := edge.FormatFloat(outlineWidth)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" overflow="visible">`+"\n", w, h, w, h)

	if r.texture != "" {
		buf.WriteString("  <defs>\n")
		for _, p := range paths {
			fmt.Fprintf(&buf, `    <clipPath id="%s"><path d="%s" transform="%s" /></clipPath>`+"\n", clipID(p), p, translate(p))
		}
		buf.WriteString("  </defs>\n")
	} else {
		fmt.Fprintf(&buf, `  <rect width="%s" height="%s" fill="#f3f4f6" rx="8" />`+"\n", w, h)
	}

	for _, p := range paths {
		fmt.Fprintf(&buf, `  <g id="piece-%d-%d">`+"\n", p.Row, p.Col)
		if r.texture != "" {
			fmt.Fprintf(&buf, `    <image href="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid slice" clip-path="url(#%s)" />`+"\n",
				r.texture, w, h, clipID(p))
			fmt.Fprintf(&buf, `    <path d="%s" transform="%s" fill="none" stroke="#000000" stroke-width="%s" />`+"\n", p, translate(p), sw)
		} else {
			fmt.Fprintf(&buf, `    <path d="%s" transform="%s" fill="#ffffff" stroke="#000000" stroke-width="%s" />`+"\n", p, translate(p), sw)
		}
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func clipID(p piece.Path) string {
	return fmt.Sprintf("clip-%d-%d", p.Row, p.Col)
}

func translate(p piece.Path) string {
	return fmt.Sprintf("translate(%s, %s)",
		edge.FormatFloat(float64(p.Col)*p.Size), edge.FormatFloat(float64(p.Row)*p.Size))
}

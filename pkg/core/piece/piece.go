// Package piece compiles the four oriented sides of a puzzle cell into one closed
// outline.
//
// Side k (top, right, bottom, left) is placed by
//
//	scale(size) ∘ translate(offset_k) ∘ rotate(k quarter turns)
//
// with offsets (0,0), (1,0), (1,1), (0,1). Quarter turns use exact matrices, so the
// end of each side lands bit-for-bit on the start of the next and the outline closes
// at the top-left corner.
package piece

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
)

// SideIndex names a side in compile order.
type SideIndex int

const (
	Top SideIndex = iota
	Right
	Bottom
	Left
)

var sideNames = [4]string{"top", "right", "bottom", "left"}

func (s SideIndex) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return fmt.Sprintf("side(%d)", int(s))
	}
	return sideNames[s]
}

var offsets = [4]bezier.Vector2{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
}

// SideTransform returns the transform placing side k of a piece of the given size.
func SideTransform(k SideIndex, size float64) bezier.Affine {
	return bezier.Scale(size).Mul(bezier.Translate(offsets[k])).Mul(bezier.QuarterTurn(int(k)))
}

// Path is a compiled piece outline in piece-local pixels, origin at the top-left
// corner of the cell.
type Path struct {
	Row, Col int
	Size     float64

	// Sides holds the transformed segments of each side in compile order.
	Sides [4][]bezier.Cubic
}

// Compile places the four oriented edges around a cell of the given size.
func Compile(edges [4]edge.Edge, size float64) Path {
	var p Path
	p.Size = size
	for k, e := range edges {
		t := SideTransform(SideIndex(k), size)
		segs := e.Segments()
		out := make([]bezier.Cubic, len(segs))
		for i, s := range segs {
			out[i] = s.Transform(t)
		}
		p.Sides[k] = out
	}
	return p
}

// CompilePiece compiles the piece at pe's cell.
func CompilePiece(pe grid.PieceEdges, size float64) Path {
	p := Compile(pe.Edges(), size)
	p.Row, p.Col = pe.Row, pe.Col
	return p
}

// CompileGrid compiles every piece of g in row-major order.
func CompileGrid(g *grid.Grid, size float64) []Path {
	pieces := g.Pieces()
	out := make([]Path, len(pieces))
	for i, pe := range pieces {
		out[i] = CompilePiece(pe, size)
	}
	return out
}

// Segments returns all segments in drawing order.
func (p Path) Segments() []bezier.Cubic {
	var n int
	for _, s := range p.Sides {
		n += len(s)
	}
	out := make([]bezier.Cubic, 0, n)
	for _, s := range p.Sides {
		out = append(out, s...)
	}
	return out
}

// Start returns the first point of the outline.
func (p Path) Start() bezier.Vector2 {
	for _, s := range p.Sides {
		if len(s) > 0 {
			return s[0].P0
		}
	}
	return bezier.Vector2{}
}

// String renders the outline as SVG path data: one moveto, one curveto per segment
// and a closepath.
func (p Path) String() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	var b strings.Builder
	start := segs[0].P0
	b.WriteString("M ")
	b.WriteString(edge.FormatFloat(start.X))
	b.WriteByte(' ')
	b.WriteString(edge.FormatFloat(start.Y))
	for _, s := range segs {
		fmt.Fprintf(&b, " C %s %s, %s %s, %s %s",
			edge.FormatFloat(s.P1.X), edge.FormatFloat(s.P1.Y),
			edge.FormatFloat(s.P2.X), edge.FormatFloat(s.P2.Y),
			edge.FormatFloat(s.P3.X), edge.FormatFloat(s.P3.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

// Bounds returns the tight bounding box of the outline.
func (p Path) Bounds() bezier.Rect {
	segs := p.Segments()
	if len(segs) == 0 {
		return bezier.Rect{}
	}
	r := segs[0].Bounds()
	for _, s := range segs[1:] {
		r = r.Union(s.Bounds())
	}
	return r
}

// Protrusion returns how far the outline reaches outside its cell, as a fraction of
// the cell size.
func (p Path) Protrusion() float64 {
	if p.Size == 0 {
		return 0
	}
	b := p.Bounds()
	over := math.Max(math.Max(-b.Min.X, -b.Min.Y), math.Max(b.Max.X-p.Size, b.Max.Y-p.Size))
	return math.Max(0, over) / p.Size
}

// RequiredMargin returns the largest distance, as a fraction of the cell size, that
// any of edges (or its flipped variant) can reach outside the cell.
func RequiredMargin(edges ...edge.Edge) float64 {
	var m float64
	for _, e := range edges {
		if e.Len() < 2 {
			continue
		}
		b := e.Bounds()
		m = math.Max(m, math.Max(-b.Min.X, b.Max.X-1))
		m = math.Max(m, math.Max(-b.Min.Y, b.Max.Y))
	}
	return m
}

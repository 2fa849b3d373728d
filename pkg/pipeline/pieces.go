package pipeline

import (
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/core/piece"
)

// Pieces is the serializable form of a compiled puzzle.
type Pieces struct {
	Rows      int         `json:"rows"`
	Columns   int         `json:"columns"`
	PieceSize float64     `json:"pieceSize"`
	FellBack  bool        `json:"fellBack,omitempty"`
	Pieces    []PieceData `json:"pieces"`
}

// PieceData is one compiled piece.
type PieceData struct {
	Index int    `json:"index"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Path  string `json:"path"`

	// Bounds is the tight bounding box in piece-local pixels; tabs make it
	// extend past [0, pieceSize].
	Bounds Bounds `json:"bounds"`

	// Sides describes top, right, bottom and left in that order.
	Sides [4]SideData `json:"sides"`
}

// Bounds is an axis-aligned box.
type Bounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// SideData records where a side's curve came from.
type SideData struct {
	EdgeID   string `json:"edgeId"`
	Flipped  bool   `json:"flipped,omitempty"`
	Reversed bool   `json:"reversed,omitempty"`
	Outer    bool   `json:"outer,omitempty"`
}

// CompilePieces compiles every piece of g at size.
func CompilePieces(g *grid.Grid, size float64) Pieces {
	out := Pieces{
		Rows:      g.Rows,
		Columns:   g.Columns,
		PieceSize: size,
		FellBack:  g.FellBack,
		Pieces:    make([]PieceData, 0, g.Len()),
	}
	for i, pe := range g.Pieces() {
		p := piece.CompilePiece(pe, size)
		b := p.Bounds()
		d := PieceData{
			Index:  i,
			Row:    pe.Row,
			Col:    pe.Col,
			Path:   p.String(),
			Bounds: Bounds{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y},
		}
		for k, s := range pe.Sides() {
			d.Sides[k] = SideData{
				EdgeID:   s.Boundary.SourceID,
				Flipped:  s.Boundary.Flipped,
				Reversed: s.Reversed,
				Outer:    s.Boundary.Outer,
			}
		}
		out.Pieces = append(out.Pieces, d)
	}
	return out
}

// Package grid generates the seeded layout of a jigsaw puzzle.
//
// A puzzle of R rows and C columns has (R+1)×C horizontal and R×(C+1) vertical
// boundaries. Outer boundaries are straight. Every interior boundary is drawn from the
// available edge library with a [random.Mulberry32] stream: one draw picks the edge,
// a second decides whether it is flipped. Horizontal boundaries are drawn first in
// row-major order, then vertical ones, so the same [Config] always yields the same
// puzzle.
//
// Neighbouring pieces share a single [*Boundary]. Each [Side] records whether its piece
// reads the boundary forwards or reversed, which is what makes tabs and blanks
// interlock exactly.
package grid

import (
	"fmt"

	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/random"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// Orientation distinguishes horizontal from vertical boundaries.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Boundary is the curve between two cells, or between a cell and the border.
type Boundary struct {
	Orientation Orientation
	Row, Col    int

	// Edge is the curve as drawn, already flipped when Flipped is set.
	Edge edge.Edge

	// SourceID is the id of the library edge the boundary was drawn from.
	SourceID string
	Flipped  bool

	// Outer is set for boundaries on the puzzle border.
	Outer bool

	reversed edge.Edge
}

func newBoundary(o Orientation, r, c int, e edge.Edge, flipped bool) *Boundary {
	drawn := e
	if flipped {
		drawn = edge.Flip(e)
	}
	return &Boundary{
		Orientation: o,
		Row:         r,
		Col:         c,
		Edge:        drawn,
		SourceID:    e.ID,
		Flipped:     flipped,
		reversed:    edge.Reverse(drawn),
	}
}

// Side is one side of a piece: a shared boundary read in the piece's direction.
type Side struct {
	Boundary *Boundary
	Reversed bool
}

// Edge returns the boundary curve oriented for this side.
func (s Side) Edge() edge.Edge {
	if s.Reversed {
		return s.Boundary.reversed
	}
	return s.Boundary.Edge
}

// PieceEdges holds the four sides of the piece at (Row, Col), each oriented so that
// compiling them clockwise from the top-left corner traces a closed outline.
type PieceEdges struct {
	Row, Col int
	Top      Side
	Right    Side
	Bottom   Side
	Left     Side
}

// Sides returns the sides in compile order: top, right, bottom, left.
func (p PieceEdges) Sides() [4]Side {
	return [4]Side{p.Top, p.Right, p.Bottom, p.Left}
}

// Edges returns the oriented curves in compile order.
func (p PieceEdges) Edges() [4]edge.Edge {
	return [4]edge.Edge{p.Top.Edge(), p.Right.Edge(), p.Bottom.Edge(), p.Left.Edge()}
}

// Draw records one random choice made for an interior boundary.
type Draw struct {
	Orientation Orientation
	Row, Col    int
	Index       int
	EdgeID      string
	Flipped     bool
}

func (d Draw) String() string {
	flip := ""
	if d.Flipped {
		flip = " flipped"
	}
	return fmt.Sprintf("%s[%d][%d]=%s%s", d.Orientation, d.Row, d.Col, d.EdgeID, flip)
}

// Grid is a generated puzzle layout.
type Grid struct {
	Rows, Columns int

	// H holds (Rows+1)×Columns horizontal boundaries, V holds Rows×(Columns+1)
	// vertical ones.
	H [][]*Boundary
	V [][]*Boundary

	// Draws lists the random choices in draw order.
	Draws []Draw

	// FellBack is set when the selection matched no edge and the whole library was
	// used instead.
	FellBack bool
}

// Generate builds the puzzle layout for cfg. It fails with [errors.ErrCodeNoEdges]
// when the puzzle has interior boundaries but no edge to draw them from.
func Generate(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	available, fellBack := cfg.Available()
	rows, cols := cfg.Rows, cfg.Columns
	if len(available) == 0 && (rows > 1 || cols > 1) {
		return nil, errors.New(errors.ErrCodeNoEdges, "no edges to draw %dx%d interior boundaries from", rows, cols)
	}

	g := &Grid{
		Rows:     rows,
		Columns:  cols,
		H:        make([][]*Boundary, rows+1),
		V:        make([][]*Boundary, rows),
		FellBack: fellBack,
	}
	rng := random.New(cfg.Seed)
	straight := edge.Straight()

	draw := func(o Orientation, r, c int) *Boundary {
		idx := rng.IntN(len(available))
		flipped := !rng.Coin()
		e := available[idx]
		g.Draws = append(g.Draws, Draw{Orientation: o, Row: r, Col: c, Index: idx, EdgeID: e.ID, Flipped: flipped})
		return newBoundary(o, r, c, e, flipped)
	}

	for r := 0; r <= rows; r++ {
		g.H[r] = make([]*Boundary, cols)
		for c := 0; c < cols; c++ {
			if r == 0 || r == rows {
				g.H[r][c] = newBoundary(Horizontal, r, c, straight, false)
				g.H[r][c].Outer = true
				continue
			}
			g.H[r][c] = draw(Horizontal, r, c)
		}
	}
	for r := 0; r < rows; r++ {
		g.V[r] = make([]*Boundary, cols+1)
		for c := 0; c <= cols; c++ {
			if c == 0 || c == cols {
				g.V[r][c] = newBoundary(Vertical, r, c, straight, false)
				g.V[r][c].Outer = true
				continue
			}
			g.V[r][c] = draw(Vertical, r, c)
		}
	}
	return g, nil
}

// Piece returns the oriented sides of the cell at (r, c).
func (g *Grid) Piece(r, c int) PieceEdges {
	return PieceEdges{
		Row:    r,
		Col:    c,
		Top:    Side{Boundary: g.H[r][c]},
		Right:  Side{Boundary: g.V[r][c+1]},
		Bottom: Side{Boundary: g.H[r+1][c], Reversed: true},
		Left:   Side{Boundary: g.V[r][c], Reversed: true},
	}
}

// Pieces returns every cell in row-major order.
func (g *Grid) Pieces() []PieceEdges {
	out := make([]PieceEdges, 0, g.Rows*g.Columns)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			out = append(out, g.Piece(r, c))
		}
	}
	return out
}

// Len returns the number of pieces.
func (g *Grid) Len() int { return g.Rows * g.Columns }

// Boundaries returns every boundary, horizontal first, each in row-major order.
func (g *Grid) Boundaries() []*Boundary {
	out := make([]*Boundary, 0, (g.Rows+1)*g.Columns+g.Rows*(g.Columns+1))
	for _, row := range g.H {
		out = append(out, row...)
	}
	for _, row := range g.V {
		out = append(out, row...)
	}
	return out
}

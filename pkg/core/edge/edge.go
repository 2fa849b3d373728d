// Package edge defines authored jigsaw edge shapes and the pure operations on them.
//
// An [Edge] is an open Bézier curve spanning x = 0 to x = 1 in edge-local space.
// Editing operations ([Edge.MovePoint], [Edge.SetHandle], [Edge.Smooth],
// [Edge.InsertPoint], [Edge.DeletePoint], [Edge.ToggleMode]) never mutate their
// receiver: each returns a new Edge with its own point slice, so an Edge value can be
// shared freely between puzzle pieces.
//
// The transform functions [Flip], [Reverse] and [Straight] derive the variants the
// grid generator needs without duplicating authored data.
package edge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

const (
	// MinSeparation is the minimum x distance kept between neighbouring anchors.
	MinSeparation = 0.01

	// InsertMargin keeps new anchors away from the fixed endpoints.
	InsertMargin = 0.05

	// DefaultHandleLength is the handle length used for new anchors and as the
	// fallback when smoothing an anchor with zero-length handles.
	DefaultHandleLength = 0.05
)

// Edge is a named open curve used as one side of a puzzle piece.
type Edge struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Points []bezier.Point `json:"points"`
}

// New builds an edge from anchors, copying the slice.
func New(id, name string, points ...bezier.Point) Edge {
	return Edge{ID: id, Name: name, Points: clonePoints(points)}
}

// Clone returns a copy of e that shares no memory with it.
func (e Edge) Clone() Edge {
	e.Points = clonePoints(e.Points)
	return e
}

func clonePoints(pts []bezier.Point) []bezier.Point {
	if pts == nil {
		return nil
	}
	out := make([]bezier.Point, len(pts))
	copy(out, pts)
	return out
}

// Len returns the number of anchors.
func (e Edge) Len() int { return len(e.Points) }

// Last returns the index of the final anchor.
func (e Edge) Last() int { return len(e.Points) - 1 }

// IsEndpoint reports whether i addresses the first or last anchor.
func (e Edge) IsEndpoint(i int) bool { return i == 0 || i == e.Last() }

// Segments returns the cubic segments between consecutive anchors.
func (e Edge) Segments() []bezier.Cubic {
	if len(e.Points) < 2 {
		return nil
	}
	segs := make([]bezier.Cubic, 0, len(e.Points)-1)
	for i := 0; i < len(e.Points)-1; i++ {
		segs = append(segs, bezier.Segment(e.Points[i], e.Points[i+1]))
	}
	return segs
}

// Eval evaluates the whole edge at s in [0, n-1] where n is the anchor count: the
// integer part selects the segment and the fraction is the segment parameter.
func (e Edge) Eval(s float64) bezier.Vector2 {
	segs := e.Segments()
	if len(segs) == 0 {
		return bezier.Vector2{}
	}
	i := int(s)
	if i >= len(segs) {
		i = len(segs) - 1
	}
	if i < 0 {
		i = 0
	}
	return segs[i].Eval(s - float64(i))
}

// Bounds returns the tight bounding box of the curve in edge-local space.
func (e Edge) Bounds() bezier.Rect {
	segs := e.Segments()
	if len(segs) == 0 {
		return bezier.Rect{}
	}
	r := segs[0].Bounds()
	for _, s := range segs[1:] {
		r = r.Union(s.Bounds())
	}
	return r
}

// ApproxEqual reports whether e and o have the same identity and geometry within eps.
func (e Edge) ApproxEqual(o Edge, eps float64) bool {
	if e.ID != o.ID || e.Name != o.Name || len(e.Points) != len(o.Points) {
		return false
	}
	for i := range e.Points {
		if !e.Points[i].ApproxEqual(o.Points[i], eps) {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants of an edge: a valid id, at least two
// anchors, endpoints pinned to x = 0 and x = 1, and strictly increasing x.
func (e Edge) Validate() error {
	if err := errors.ValidateEdgeID(e.ID); err != nil {
		return err
	}
	if len(e.Points) < 2 {
		return errors.New(errors.ErrCodeInvalidEdge, "edge %q: needs at least 2 points, has %d", e.ID, len(e.Points))
	}
	if x := e.Points[0].Position.X; x != 0 {
		return errors.New(errors.ErrCodeInvalidEdge, "edge %q: first point must have x = 0, got %g", e.ID, x)
	}
	if x := e.Points[e.Last()].Position.X; x != 1 {
		return errors.New(errors.ErrCodeInvalidEdge, "edge %q: last point must have x = 1, got %g", e.ID, x)
	}
	for i := 1; i < len(e.Points); i++ {
		prev, cur := e.Points[i-1].Position.X, e.Points[i].Position.X
		if !(cur > prev) {
			return errors.New(errors.ErrCodeInvalidEdge, "edge %q: point %d x=%g does not increase past point %d x=%g", e.ID, i, cur, i-1, prev)
		}
	}
	return nil
}

// SVGPath renders the edge alone as an SVG path string scaled by scale.
func (e Edge) SVGPath(scale float64) string {
	if len(e.Points) < 2 {
		return ""
	}
	var b strings.Builder
	start := e.Points[0].Position.Mul(scale)
	fmt.Fprintf(&b, "M %s %s", FormatFloat(start.X), FormatFloat(start.Y))
	for _, s := range e.Segments() {
		p1, p2, p3 := s.P1.Mul(scale), s.P2.Mul(scale), s.P3.Mul(scale)
		fmt.Fprintf(&b, " C %s %s, %s %s, %s %s",
			FormatFloat(p1.X), FormatFloat(p1.Y),
			FormatFloat(p2.X), FormatFloat(p2.Y),
			FormatFloat(p3.X), FormatFloat(p3.Y))
	}
	return b.String()
}

// FormatFloat formats a coordinate with the shortest representation that round-trips,
// without exponent and without negative zero.
func FormatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

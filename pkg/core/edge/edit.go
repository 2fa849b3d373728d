package edge

import (
	"math"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

func (e Edge) checkIndex(i int) error {
	if i < 0 || i >= len(e.Points) {
		return errors.New(errors.ErrCodeInvalidInput, "edge %q: point index %d out of range [0, %d)", e.ID, i, len(e.Points))
	}
	return nil
}

func (e Edge) checkFinite(v bezier.Vector2) error {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "edge %q: coordinates must be finite, got (%g, %g)", e.ID, v.X, v.Y)
	}
	return nil
}

// withPoint returns a copy of e with anchor i replaced.
func (e Edge) withPoint(i int, p bezier.Point) Edge {
	out := e.Clone()
	out.Points[i] = p
	return out
}

// MovePoint moves anchor i towards pos. Endpoints keep their x (0 or 1) and only take
// the new y. Interior anchors have x clamped to stay MinSeparation away from both
// neighbours; y is unconstrained. Handles move with the anchor.
func (e Edge) MovePoint(i int, pos bezier.Vector2) (Edge, error) {
	if err := e.checkIndex(i); err != nil {
		return e, err
	}
	if err := e.checkFinite(pos); err != nil {
		return e, err
	}
	p := e.Points[i]
	switch i {
	case 0:
		p.Position = bezier.Vec(0, pos.Y)
	case e.Last():
		p.Position = bezier.Vec(1, pos.Y)
	default:
		lo := e.Points[i-1].Position.X + MinSeparation
		hi := e.Points[i+1].Position.X - MinSeparation
		p.Position = bezier.Vec(math.Max(lo, math.Min(hi, pos.X)), pos.Y)
	}
	return e.withPoint(i, p), nil
}

// SetHandle stores offset as the given handle of anchor i. Continuous anchors mirror
// the opposite handle at write time.
func (e Edge) SetHandle(i int, side bezier.Side, offset bezier.Vector2) (Edge, error) {
	if err := e.checkIndex(i); err != nil {
		return e, err
	}
	if err := e.checkFinite(offset); err != nil {
		return e, err
	}
	return e.withPoint(i, e.Points[i].WithHandle(side, offset)), nil
}

// MoveHandleTo places a handle of anchor i at the absolute position target, storing
// it as an offset from the anchor.
func (e Edge) MoveHandleTo(i int, side bezier.Side, target bezier.Vector2) (Edge, error) {
	if err := e.checkIndex(i); err != nil {
		return e, err
	}
	return e.SetHandle(i, side, target.Sub(e.Points[i].Position))
}

// Smooth makes the handles of anchor i collinear and of equal length and switches it
// to Continuous. The new length is the mean of the old lengths (DefaultHandleLength
// if both are zero); the direction runs from the left handle to the right handle, or
// along +x when that is degenerate.
func (e Edge) Smooth(i int) (Edge, error) {
	if err := e.checkIndex(i); err != nil {
		return e, err
	}
	p := e.Points[i]
	left, right := p.Left(), p.Right()

	avg := (left.Hypot() + right.Hypot()) / 2
	if avg == 0 {
		avg = DefaultHandleLength
	}

	dir := bezier.Vec(1, 0)
	if d := right.Sub(left); d.Hypot() > 0 {
		dir = d.Mul(1 / d.Hypot())
	}

	p.Handles = bezier.Continuous{H: dir.Mul(avg)}
	return e.withPoint(i, p), nil
}

// ToggleMode flips anchor i between Free and Continuous.
func (e Edge) ToggleMode(i int) (Edge, error) {
	if err := e.checkIndex(i); err != nil {
		return e, err
	}
	p := e.Points[i]
	next := bezier.ModeContinuous
	if p.Mode() == bezier.ModeContinuous {
		next = bezier.ModeFree
	}
	return e.withPoint(i, p.WithMode(next)), nil
}

// SetMode sets the handle mode of anchor i.
func (e Edge) SetMode(i int, m bezier.Mode) (Edge, error) {
	if err := e.checkIndex(i); err != nil {
		return e, err
	}
	return e.withPoint(i, e.Points[i].WithMode(m)), nil
}

// InsertPoint adds a Continuous anchor at pos with handles ±DefaultHandleLength along x.
// Positions within InsertMargin of either endpoint, or within MinSeparation of an
// existing anchor, are rejected. It returns the new edge and the index of the anchor.
func (e Edge) InsertPoint(pos bezier.Vector2) (Edge, int, error) {
	if err := e.checkFinite(pos); err != nil {
		return e, -1, err
	}
	if pos.X <= InsertMargin || pos.X >= 1-InsertMargin {
		return e, -1, errors.New(errors.ErrCodeInvalidInput, "edge %q: x=%g is too close to an endpoint", e.ID, pos.X)
	}
	if len(e.Points) < 2 {
		return e, -1, errors.New(errors.ErrCodeInvalidEdge, "edge %q: needs at least 2 points", e.ID)
	}

	idx := e.Last()
	for i := 1; i < len(e.Points); i++ {
		if pos.X < e.Points[i].Position.X {
			idx = i
			break
		}
	}
	if pos.X-e.Points[idx-1].Position.X < MinSeparation || e.Points[idx].Position.X-pos.X < MinSeparation {
		return e, -1, errors.New(errors.ErrCodeInvalidInput, "edge %q: x=%g is too close to an existing point", e.ID, pos.X)
	}

	p := bezier.NewPoint(pos, bezier.Continuous{H: bezier.Vec(DefaultHandleLength, 0)})

	pts := make([]bezier.Point, 0, len(e.Points)+1)
	pts = append(pts, e.Points[:idx]...)
	pts = append(pts, p)
	pts = append(pts, e.Points[idx:]...)

	out := e
	out.Points = pts
	return out, idx, nil
}

// DeletePoint removes interior anchor i. Endpoints can never be removed and an edge
// never drops below two anchors.
func (e Edge) DeletePoint(i int) (Edge, error) {
	if err := e.checkIndex(i); err != nil {
		return e, err
	}
	if len(e.Points) <= 2 {
		return e, errors.New(errors.ErrCodeInvalidInput, "edge %q: cannot delete below 2 points", e.ID)
	}
	if e.IsEndpoint(i) {
		return e, errors.New(errors.ErrCodeInvalidInput, "edge %q: endpoints cannot be deleted", e.ID)
	}

	pts := make([]bezier.Point, 0, len(e.Points)-1)
	pts = append(pts, e.Points[:i]...)
	pts = append(pts, e.Points[i+1:]...)

	out := e
	out.Points = pts
	return out, nil
}

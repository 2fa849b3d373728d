package edge

import "github.com/matzehuels/jigsaw/pkg/core/bezier"

// StraightID is the id of the edge returned by [Straight].
const StraightID = "straight"

// Flip mirrors e across the x axis, turning tabs into blanks. Handles keep their mode.
func Flip(e Edge) Edge {
	out := Edge{ID: e.ID, Name: e.Name, Points: make([]bezier.Point, len(e.Points))}
	for i, p := range e.Points {
		out.Points[i] = bezier.Point{
			Position: p.Position.FlipY(),
			Handles:  handlesOf(p).Map(bezier.Vector2.FlipY),
		}
	}
	return out
}

// Reverse traverses e from x = 1 back to x = 0 so that a neighbouring piece can read the
// shared boundary in its own direction. Each anchor is rotated half a turn about
// (0.5, 0) and its handles swap sides.
func Reverse(e Edge) Edge {
	n := len(e.Points)
	out := Edge{ID: e.ID, Name: e.Name, Points: make([]bezier.Point, n)}
	for i, p := range e.Points {
		out.Points[n-1-i] = bezier.Point{
			Position: bezier.Vec(1-p.Position.X, -p.Position.Y),
			Handles:  reverseHandles(handlesOf(p)),
		}
	}
	return out
}

func handlesOf(p bezier.Point) bezier.Handles {
	if p.Handles == nil {
		return bezier.Continuous{}
	}
	return p.Handles
}

// reverseHandles negates both offsets and swaps them. A continuous pair maps onto
// itself since -(-H) = H.
func reverseHandles(h bezier.Handles) bezier.Handles {
	switch h := h.(type) {
	case bezier.Free:
		return bezier.Free{L: h.R.Neg(), R: h.L.Neg()}
	case bezier.Continuous:
		return h
	default:
		return bezier.Continuous{}
	}
}

// Straight returns the flat edge used on the outer border of a puzzle.
func Straight() Edge {
	return New(StraightID, "Straight",
		bezier.NewPoint(bezier.Vec(0, 0), bezier.Continuous{}),
		bezier.NewPoint(bezier.Vec(1, 0), bezier.Continuous{}),
	)
}

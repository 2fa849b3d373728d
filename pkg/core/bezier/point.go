package bezier

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mode names how an anchor's handles relate to each other.
type Mode string

const (
	// ModeFree lets both handles move independently.
	ModeFree Mode = "Free"
	// ModeContinuous keeps the handles mirrored through the anchor.
	ModeContinuous Mode = "Continuous"
)

// ParseMode converts the serialized mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFree, ModeContinuous:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown point mode %q (must be %q or %q)", s, ModeFree, ModeContinuous)
	}
}

// Side selects one of an anchor's two handles.
type Side int

const (
	// SideLeft is the incoming handle.
	SideLeft Side = iota
	// SideRight is the outgoing handle.
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Handles is the pair of control handles of an anchor. The only implementations
// are [Free] and [Continuous].
type Handles interface {
	Left() Vector2
	Right() Vector2
	Mode() Mode

	// With returns handles with the given side set to offset, preserving the mode.
	With(side Side, offset Vector2) Handles

	// Map applies fn to both handle offsets. Swapping sides is the caller's job.
	Map(fn func(Vector2) Vector2) Handles

	sealed()
}

// Free handles are independent of each other.
type Free struct {
	L Vector2
	R Vector2
}

func (h Free) Left() Vector2  { return h.L }
func (h Free) Right() Vector2 { return h.R }
func (h Free) Mode() Mode     { return ModeFree }

func (h Free) With(side Side, offset Vector2) Handles {
	if side == SideLeft {
		h.L = offset
	} else {
		h.R = offset
	}
	return h
}

func (h Free) Map(fn func(Vector2) Vector2) Handles {
	return Free{L: fn(h.L), R: fn(h.R)}
}

func (Free) sealed() {}

// Continuous handles store the outgoing handle H; the incoming handle is always -H.
type Continuous struct {
	H Vector2
}

func (h Continuous) Left() Vector2  { return h.H.Neg() }
func (h Continuous) Right() Vector2 { return h.H }
func (h Continuous) Mode() Mode     { return ModeContinuous }

func (h Continuous) With(side Side, offset Vector2) Handles {
	if side == SideLeft {
		return Continuous{H: offset.Neg()}
	}
	return Continuous{H: offset}
}

func (h Continuous) Map(fn func(Vector2) Vector2) Handles {
	return Continuous{H: fn(h.H)}
}

func (Continuous) sealed() {}

// Point is one anchor of a curve.
type Point struct {
	Position Vector2
	Handles  Handles
}

// NewPoint builds an anchor. A nil Handles value means zero-length continuous handles.
func NewPoint(pos Vector2, h Handles) Point {
	if h == nil {
		h = Continuous{}
	}
	return Point{Position: pos, Handles: h}
}

func (p Point) handles() Handles {
	if p.Handles == nil {
		return Continuous{}
	}
	return p.Handles
}

// Left returns the incoming handle offset.
func (p Point) Left() Vector2 { return p.handles().Left() }

// Right returns the outgoing handle offset.
func (p Point) Right() Vector2 { return p.handles().Right() }

// Mode returns the anchor's handle mode.
func (p Point) Mode() Mode { return p.handles().Mode() }

// LeftAbs returns the absolute position of the incoming handle.
func (p Point) LeftAbs() Vector2 { return p.Position.Add(p.Left()) }

// RightAbs returns the absolute position of the outgoing handle.
func (p Point) RightAbs() Vector2 { return p.Position.Add(p.Right()) }

// Handle returns the offset of the requested side.
func (p Point) Handle(side Side) Vector2 {
	if side == SideLeft {
		return p.Left()
	}
	return p.Right()
}

// WithHandle returns a copy of p with one handle replaced. Continuous anchors
// mirror the write onto the opposite handle.
func (p Point) WithHandle(side Side, offset Vector2) Point {
	p.Handles = p.handles().With(side, offset)
	return p
}

// WithMode returns a copy of p converted to mode. Switching to Continuous keeps the
// outgoing handle and mirrors it; switching to Free keeps both current handles.
func (p Point) WithMode(m Mode) Point {
	h := p.handles()
	if h.Mode() == m {
		return p
	}
	switch m {
	case ModeContinuous:
		p.Handles = Continuous{H: h.Right()}
	default:
		p.Handles = Free{L: h.Left(), R: h.Right()}
	}
	return p
}

// ApproxEqual reports whether p and o describe the same anchor within eps.
func (p Point) ApproxEqual(o Point, eps float64) bool {
	return p.Mode() == o.Mode() &&
		p.Position.ApproxEqual(o.Position, eps) &&
		p.Left().ApproxEqual(o.Left(), eps) &&
		p.Right().ApproxEqual(o.Right(), eps)
}

// mirrorTolerance bounds how far apart imported Continuous handles may be before the
// anchor is treated as Free.
const mirrorTolerance = 1e-9

type pointJSON struct {
	Position          *Vector2 `json:"position"`
	LeftControlPoint  *Vector2 `json:"leftControlPoint"`
	RightControlPoint *Vector2 `json:"rightControlPoint"`
	Mode              string   `json:"mode"`
}

// MarshalJSON writes the anchor in the editor's interchange shape with both handles
// spelled out.
func (p Point) MarshalJSON() ([]byte, error) {
	left, right := p.Left(), p.Right()
	return json.Marshal(pointJSON{
		Position:          &p.Position,
		LeftControlPoint:  &left,
		RightControlPoint: &right,
		Mode:              string(p.Mode()),
	})
}

// UnmarshalJSON reads an anchor. All four fields are required and unknown fields are
// rejected. A point labelled Continuous whose handles are not mirrored keeps its
// geometry and is read as Free.
func (p *Point) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var raw pointJSON
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	switch {
	case raw.Position == nil:
		return fmt.Errorf("point: missing position")
	case raw.LeftControlPoint == nil:
		return fmt.Errorf("point: missing leftControlPoint")
	case raw.RightControlPoint == nil:
		return fmt.Errorf("point: missing rightControlPoint")
	}
	mode, err := ParseMode(raw.Mode)
	if err != nil {
		return fmt.Errorf("point: %w", err)
	}

	left, right := *raw.LeftControlPoint, *raw.RightControlPoint
	var h Handles = Free{L: left, R: right}
	if mode == ModeContinuous && left.Neg().ApproxEqual(right, mirrorTolerance) {
		h = Continuous{H: right}
	}
	*p = Point{Position: *raw.Position, Handles: h}
	return nil
}

package bezier

import (
	"fmt"
	"math"
)

// Vector2 is a position or offset in edge-local space.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales v by s.
func (v Vector2) Mul(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// FlipY mirrors v across the x axis.
func (v Vector2) FlipY() Vector2 {
	return Vector2{X: v.X, Y: -v.Y}
}

// Hypot returns the magnitude of v.
func (v Vector2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// ApproxEqual reports whether v and o differ by at most eps in each component.
func (v Vector2) ApproxEqual(o Vector2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

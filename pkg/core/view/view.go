// Package view maps edge-local coordinates onto an interactive editing surface.
//
// The edge editor draws an edge in a fixed viewbox: x runs from the left padding to
// the right padding, one edge length spans Width - 2·Padding units, and y = 0 sits on
// the horizontal centre line. Pan and zoom are applied on top of that base mapping.
// [Transform.ToView] and [Transform.FromView] are exact inverses of each other.
package view

import (
	"github.com/matzehuels/jigsaw/pkg/core/bezier"
)

// Editor viewbox defaults.
const (
	DefaultWidth   = 600
	DefaultHeight  = 400
	DefaultPadding = 60

	MinZoom = 0.1
	MaxZoom = 20
)

// ScreenPoint is a position on the editing surface.
type ScreenPoint struct {
	X float64
	Y float64
}

// Transform is the mapping between edge-local space and the editing surface.
type Transform struct {
	Width   float64
	Height  float64
	Padding float64

	// Zoom scales about the centre of the viewbox. Zero means 1.
	Zoom float64
	// Pan shifts the zoomed picture in surface units.
	Pan ScreenPoint
}

// Default returns the 600×400 editor viewbox with 60 units of padding.
func Default() Transform {
	return New(DefaultWidth, DefaultHeight, DefaultPadding)
}

// New returns an unzoomed, unpanned transform for a surface of the given size.
func New(width, height, padding float64) Transform {
	return Transform{Width: width, Height: height, Padding: padding, Zoom: 1}
}

func (t Transform) zoom() float64 {
	if t.Zoom == 0 {
		return 1
	}
	return t.Zoom
}

// Scale returns how many surface units one edge length spans before zooming.
func (t Transform) Scale() float64 {
	return t.Width - 2*t.Padding
}

func (t Transform) center() ScreenPoint {
	return ScreenPoint{X: t.Width / 2, Y: t.Height / 2}
}

// ToView maps an edge-local point to the surface.
func (t Transform) ToView(v bezier.Vector2) ScreenPoint {
	s, z, c := t.Scale(), t.zoom(), t.center()
	bx := v.X*s + t.Padding
	by := v.Y*s + t.Height/2
	return ScreenPoint{
		X: c.X + (bx-c.X)*z + t.Pan.X,
		Y: c.Y + (by-c.Y)*z + t.Pan.Y,
	}
}

// FromView maps a surface point back to edge-local space.
func (t Transform) FromView(p ScreenPoint) bezier.Vector2 {
	s, z, c := t.Scale(), t.zoom(), t.center()
	bx := (p.X-t.Pan.X-c.X)/z + c.X
	by := (p.Y-t.Pan.Y-c.Y)/z + c.Y
	return bezier.Vector2{
		X: (bx - t.Padding) / s,
		Y: (by - t.Height/2) / s,
	}
}

// WithPan returns t panned by (dx, dy) surface units.
func (t Transform) WithPan(dx, dy float64) Transform {
	t.Pan.X += dx
	t.Pan.Y += dy
	return t
}

// WithZoom returns t zoomed by factor, keeping the surface point at unchanged.
// The resulting zoom is clamped to [MinZoom, MaxZoom].
func (t Transform) WithZoom(factor float64, at ScreenPoint) Transform {
	anchor := t.FromView(at)
	z := t.zoom() * factor
	z = max(MinZoom, min(MaxZoom, z))
	t.Zoom = z
	moved := t.ToView(anchor)
	t.Pan.X += at.X - moved.X
	t.Pan.Y += at.Y - moved.Y
	return t
}

// Reset drops pan and zoom.
func (t Transform) Reset() Transform {
	return New(t.Width, t.Height, t.Padding)
}

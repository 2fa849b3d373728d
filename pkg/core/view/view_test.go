package view

import (
	"math"
	"testing"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
)

func near(a, b ScreenPoint) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestDefaultMapping(t *testing.T) {
	tr := Default()
	tests := []struct {
		in   bezier.Vector2
		want ScreenPoint
	}{
		{bezier.Vec(0, 0), ScreenPoint{60, 200}},
		{bezier.Vec(1, 0), ScreenPoint{540, 200}},
		{bezier.Vec(0.5, -0.25), ScreenPoint{300, 80}},
	}
	for _, tt := range tests {
		if got := tr.ToView(tt.in); !near(got, tt.want) {
			t.Errorf("ToView(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	transforms := map[string]Transform{
		"default": Default(),
		"panned":  Default().WithPan(13, -7),
		"zoomed":  Default().WithZoom(2.5, ScreenPoint{100, 300}),
		"both":    Default().WithZoom(0.4, ScreenPoint{10, 10}).WithPan(-50, 20),
		"small":   New(80, 24, 4),
	}
	points := []bezier.Vector2{
		bezier.Vec(0, 0), bezier.Vec(1, 0), bezier.Vec(0.37, 0.21), bezier.Vec(-0.2, 1.3),
	}
	for name, tr := range transforms {
		t.Run(name, func(t *testing.T) {
			for _, p := range points {
				if got := tr.FromView(tr.ToView(p)); !got.ApproxEqual(p, 1e-12) {
					t.Errorf("FromView(ToView(%v)) = %v", p, got)
				}
				s := ScreenPoint{X: p.X * 100, Y: p.Y * 100}
				if got := tr.ToView(tr.FromView(s)); !near(got, s) {
					t.Errorf("ToView(FromView(%v)) = %v", s, got)
				}
			}
		})
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	tr := Default()
	at := ScreenPoint{X: 123, Y: 321}
	before := tr.FromView(at)
	z := tr.WithZoom(3, at)
	if got := z.FromView(at); !got.ApproxEqual(before, 1e-12) {
		t.Errorf("anchor moved: %v -> %v", before, got)
	}
	if z.Zoom != 3 {
		t.Errorf("zoom = %v", z.Zoom)
	}
	if c := tr.WithZoom(1000, at); c.Zoom != MaxZoom {
		t.Errorf("zoom not clamped: %v", c.Zoom)
	}
}

func TestResetAndZeroZoom(t *testing.T) {
	tr := Default().WithPan(5, 5).WithZoom(2, ScreenPoint{}).Reset()
	if tr != Default() {
		t.Errorf("reset = %+v", tr)
	}
	zero := Transform{Width: 600, Height: 400, Padding: 60}
	if got := zero.ToView(bezier.Vec(1, 0)); !near(got, ScreenPoint{540, 200}) {
		t.Errorf("zero zoom treated as %v", got)
	}
}

package edge

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

const eps = 1e-12

func sample() Edge {
	return New("e", "Sample",
		bezier.NewPoint(bezier.Vec(0, 0), bezier.Continuous{H: bezier.Vec(0.1, 0)}),
		bezier.NewPoint(bezier.Vec(0.5, 0.2), bezier.Free{L: bezier.Vec(-0.1, 0.05), R: bezier.Vec(0.2, -0.1)}),
		bezier.NewPoint(bezier.Vec(1, 0), bezier.Continuous{H: bezier.Vec(0.1, 0.02)}),
	)
}

func assertMirrored(t *testing.T, e Edge) {
	t.Helper()
	for i, p := range e.Points {
		if p.Mode() == bezier.ModeContinuous && p.Left() != p.Right().Neg() {
			t.Errorf("point %d: continuous handles not mirrored: %v / %v", i, p.Left(), p.Right())
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		edge    Edge
		wantErr bool
	}{
		{"default", Default(), false},
		{"straight", Straight(), false},
		{"sample", sample(), false},
		{"empty id", New("", "x", Straight().Points...), true},
		{"one point", New("x", "x", bezier.NewPoint(bezier.Vec(0, 0), nil)), true},
		{"start not zero", New("x", "x",
			bezier.NewPoint(bezier.Vec(0.1, 0), nil),
			bezier.NewPoint(bezier.Vec(1, 0), nil)), true},
		{"end not one", New("x", "x",
			bezier.NewPoint(bezier.Vec(0, 0), nil),
			bezier.NewPoint(bezier.Vec(0.9, 0), nil)), true},
		{"not increasing", New("x", "x",
			bezier.NewPoint(bezier.Vec(0, 0), nil),
			bezier.NewPoint(bezier.Vec(0.6, 0), nil),
			bezier.NewPoint(bezier.Vec(0.6, 0.1), nil),
			bezier.NewPoint(bezier.Vec(1, 0), nil)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edge.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidEdge {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidEdge)
			}
		})
	}
}

func TestMovePoint(t *testing.T) {
	e := sample()

	tests := []struct {
		name  string
		index int
		to    bezier.Vector2
		want  bezier.Vector2
	}{
		{"start keeps x", 0, bezier.Vec(0.3, 0.4), bezier.Vec(0, 0.4)},
		{"end keeps x", 2, bezier.Vec(0.3, -0.4), bezier.Vec(1, -0.4)},
		{"interior free", 1, bezier.Vec(0.3, 1.5), bezier.Vec(0.3, 1.5)},
		{"interior clamp low", 1, bezier.Vec(-2, 0), bezier.Vec(MinSeparation, 0)},
		{"interior clamp high", 1, bezier.Vec(5, 0), bezier.Vec(1-MinSeparation, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.MovePoint(tt.index, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			if p := got.Points[tt.index].Position; !p.ApproxEqual(tt.want, eps) {
				t.Errorf("position = %v, want %v", p, tt.want)
			}
			if got.Points[tt.index].Right() != e.Points[tt.index].Right() {
				t.Error("handles changed")
			}
			if err := got.Validate(); err != nil {
				t.Errorf("moved edge invalid: %v", err)
			}
		})
	}

	if _, err := e.MovePoint(3, bezier.Vec(0, 0)); err == nil {
		t.Error("expected out of range error")
	}
}

func TestEditsDoNotMutate(t *testing.T) {
	e := sample()
	before := e.Clone()

	_, _ = e.MovePoint(1, bezier.Vec(0.3, 0.3))
	_, _ = e.SetHandle(1, bezier.SideLeft, bezier.Vec(-1, -1))
	_, _ = e.Smooth(1)
	_, _ = e.ToggleMode(0)
	_, _, _ = e.InsertPoint(bezier.Vec(0.7, 0))
	_, _ = e.DeletePoint(1)
	_ = Flip(e)
	_ = Reverse(e)

	if !e.ApproxEqual(before, 0) {
		t.Errorf("edge mutated: %+v", e)
	}
}

func TestSetHandleContinuous(t *testing.T) {
	e := sample()
	got, err := e.SetHandle(0, bezier.SideLeft, bezier.Vec(-0.2, 0.1))
	if err != nil {
		t.Fatal(err)
	}
	if r := got.Points[0].Right(); r != bezier.Vec(0.2, -0.1) {
		t.Errorf("right = %v, want ⟨0.2, -0.1⟩", r)
	}
	assertMirrored(t, got)
}

func TestMoveHandleTo(t *testing.T) {
	e := sample()
	got, err := e.MoveHandleTo(1, bezier.SideRight, bezier.Vec(0.8, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if r := got.Points[1].Right(); !r.ApproxEqual(bezier.Vec(0.3, 0.3), eps) {
		t.Errorf("right = %v, want ⟨0.3, 0.3⟩", r)
	}
	if l := got.Points[1].Left(); l != e.Points[1].Left() {
		t.Errorf("free left handle changed to %v", l)
	}
}

func TestSmooth(t *testing.T) {
	t.Run("averages lengths", func(t *testing.T) {
		e := New("s", "s",
			bezier.NewPoint(bezier.Vec(0, 0), nil),
			bezier.NewPoint(bezier.Vec(0.5, 0), bezier.Free{L: bezier.Vec(0, -0.1), R: bezier.Vec(0.3, 0)}),
			bezier.NewPoint(bezier.Vec(1, 0), nil),
		)
		got, err := e.Smooth(1)
		if err != nil {
			t.Fatal(err)
		}
		p := got.Points[1]
		if p.Mode() != bezier.ModeContinuous {
			t.Errorf("mode = %v", p.Mode())
		}
		// direction R-L = (0.3, 0.1), length (0.1+0.3)/2 = 0.2
		if l := p.Right().Hypot(); l < 0.2-eps || l > 0.2+eps {
			t.Errorf("length = %v, want 0.2", l)
		}
		dir := bezier.Vec(0.3, 0.1).Mul(1 / bezier.Vec(0.3, 0.1).Hypot())
		if !p.Right().ApproxEqual(dir.Mul(0.2), 1e-12) {
			t.Errorf("right = %v, want %v", p.Right(), dir.Mul(0.2))
		}
		assertMirrored(t, got)
	})

	t.Run("zero handles", func(t *testing.T) {
		got, err := Straight().Smooth(0)
		if err != nil {
			t.Fatal(err)
		}
		if r := got.Points[0].Right(); r != bezier.Vec(DefaultHandleLength, 0) {
			t.Errorf("right = %v, want ⟨%v, 0⟩", r, DefaultHandleLength)
		}
	})

	t.Run("opposite handles cancel", func(t *testing.T) {
		e := New("s", "s",
			bezier.NewPoint(bezier.Vec(0, 0), bezier.Free{L: bezier.Vec(0.1, 0), R: bezier.Vec(0.1, 0)}),
			bezier.NewPoint(bezier.Vec(1, 0), nil),
		)
		got, err := e.Smooth(0)
		if err != nil {
			t.Fatal(err)
		}
		if r := got.Points[0].Right(); !r.ApproxEqual(bezier.Vec(0.1, 0), eps) {
			t.Errorf("right = %v, want horizontal ⟨0.1, 0⟩", r)
		}
	})
}

func TestToggleMode(t *testing.T) {
	e := sample()
	got, err := e.ToggleMode(1)
	if err != nil {
		t.Fatal(err)
	}
	p := got.Points[1]
	if p.Mode() != bezier.ModeContinuous || p.Right() != e.Points[1].Right() {
		t.Errorf("toggle to continuous: mode=%v right=%v", p.Mode(), p.Right())
	}
	assertMirrored(t, got)

	back, err := got.ToggleMode(1)
	if err != nil {
		t.Fatal(err)
	}
	if back.Points[1].Mode() != bezier.ModeFree || back.Points[1].Left() != p.Left() {
		t.Errorf("toggle to free: mode=%v left=%v", back.Points[1].Mode(), back.Points[1].Left())
	}
}

func TestInsertPoint(t *testing.T) {
	e := sample()

	got, idx, err := e.InsertPoint(bezier.Vec(0.7, 0.1))
	if err != nil {
		t.Fatal(err)
	}
	if idx != 2 || got.Len() != 4 {
		t.Fatalf("idx = %d, len = %d", idx, got.Len())
	}
	p := got.Points[idx]
	if p.Position != bezier.Vec(0.7, 0.1) || p.Right() != bezier.Vec(DefaultHandleLength, 0) || p.Mode() != bezier.ModeContinuous {
		t.Errorf("inserted point = %+v", p)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("invalid after insert: %v", err)
	}

	rejects := []struct {
		name string
		x    float64
	}{
		{"near start", 0.05},
		{"near end", 0.95},
		{"outside", 1.5},
		{"on anchor", 0.5},
		{"within separation", 0.505},
	}
	for _, tt := range rejects {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := e.InsertPoint(bezier.Vec(tt.x, 0)); err == nil {
				t.Errorf("InsertPoint(x=%v) succeeded", tt.x)
			}
		})
	}
}

func TestDeletePoint(t *testing.T) {
	e := sample()

	got, err := e.DeletePoint(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Errorf("len = %d, want 2", got.Len())
	}

	for _, i := range []int{0, 2} {
		if _, err := e.DeletePoint(i); err == nil {
			t.Errorf("DeletePoint(%d) removed an endpoint", i)
		}
	}
	if _, err := Straight().DeletePoint(1); err == nil {
		t.Error("DeletePoint on two-point edge succeeded")
	}
}

func TestFlipInvolution(t *testing.T) {
	for _, e := range []Edge{sample(), Default(), Straight()} {
		if got := Flip(Flip(e)); !got.ApproxEqual(e, 0) {
			t.Errorf("%s: Flip(Flip(e)) != e", e.ID)
		}
	}
	f := Flip(Default())
	for i, p := range f.Points {
		want := Default().Points[i]
		if p.Position.Y != -want.Position.Y || p.Right().Y != -want.Right().Y {
			t.Errorf("point %d not mirrored", i)
		}
	}
	assertMirrored(t, f)
}

func TestReverseInvolution(t *testing.T) {
	for _, e := range []Edge{sample(), Default(), Straight()} {
		if got := Reverse(Reverse(e)); !got.ApproxEqual(e, eps) {
			t.Errorf("%s: Reverse(Reverse(e)) != e", e.ID)
		}
		assertMirrored(t, Reverse(e))
	}
}

func TestReverseTracesSameCurve(t *testing.T) {
	e := sample()
	r := Reverse(e)
	n := float64(e.Len() - 1)
	for _, s := range []float64{0, 0.2, 0.5, 1, 1.3, 2} {
		p := e.Eval(s)
		q := r.Eval(n - s)
		// Reverse rotates half a turn about (0.5, 0).
		want := bezier.Vec(1-p.X, -p.Y)
		if !q.ApproxEqual(want, 1e-12) {
			t.Errorf("s=%v: reversed = %v, want %v", s, q, want)
		}
	}
}

func TestSVGPath(t *testing.T) {
	got := Straight().SVGPath(100)
	want := "M 0 0 C 0 0, 100 0, 100 0"
	if got != want {
		t.Errorf("SVGPath = %q, want %q", got, want)
	}
	if d := Default().SVGPath(1); strings.Count(d, "C") != Default().Len()-1 {
		t.Errorf("segment count mismatch in %q", d)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		512:     "512",
		0.25:    "0.25",
		-1.5:    "-1.5",
		1e-7:    "0.0000001",
		1234567: "1234567",
	}
	for in, want := range tests {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatFloat(math.Copysign(0, -1)); got != "0" {
		t.Errorf("FormatFloat(-0) = %q, want \"0\"", got)
	}
}

func TestEditsRejectNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	e := sample()

	tests := []struct {
		name string
		edit func() (Edge, error)
	}{
		{"move nan x", func() (Edge, error) { return e.MovePoint(1, bezier.Vec(nan, 0.1)) }},
		{"move nan y", func() (Edge, error) { return e.MovePoint(0, bezier.Vec(0, nan)) }},
		{"move inf y", func() (Edge, error) { return e.MovePoint(2, bezier.Vec(1, -inf)) }},
		{"handle nan", func() (Edge, error) { return e.SetHandle(1, bezier.SideRight, bezier.Vec(nan, 0)) }},
		{"handle to inf", func() (Edge, error) { return e.MoveHandleTo(1, bezier.SideLeft, bezier.Vec(0.4, inf)) }},
		{"insert nan y", func() (Edge, error) { out, _, err := e.InsertPoint(bezier.Vec(0.3, nan)); return out, err }},
		{"insert nan x", func() (Edge, error) { out, _, err := e.InsertPoint(bezier.Vec(nan, 0)); return out, err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.edit()
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("err = %v, want INVALID_INPUT", err)
			}
			if !got.ApproxEqual(e, 0) {
				t.Error("edge changed on error")
			}
			if err := got.Validate(); err != nil {
				t.Errorf("edge invalid after rejected edit: %v", err)
			}
		})
	}
}

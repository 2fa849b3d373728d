package piece

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
)

func generate(t *testing.T, rows, cols int, seed int64) *grid.Grid {
	t.Helper()
	cfg := grid.DefaultConfig()
	cfg.Rows, cfg.Columns, cfg.Seed = rows, cols, seed
	g, err := grid.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestStraightPiece(t *testing.T) {
	s := edge.Straight()
	p := Compile([4]edge.Edge{s, s, edge.Reverse(s), edge.Reverse(s)}, 100)

	want := "M 0 0" +
		" C 0 0, 100 0, 100 0" +
		" C 100 0, 100 100, 100 100" +
		" C 100 100, 0 100, 0 100" +
		" C 0 100, 0 0, 0 0" +
		" Z"
	if got := p.String(); got != want {
		t.Errorf("path:\n got %q\nwant %q", got, want)
	}

	b := p.Bounds()
	if b.Min != bezier.Vec(0, 0) || b.Max != bezier.Vec(100, 100) {
		t.Errorf("bounds = %+v", b)
	}
	if p.Protrusion() != 0 {
		t.Errorf("protrusion = %v", p.Protrusion())
	}
}

func TestSideChaining(t *testing.T) {
	for k := SideIndex(0); k < 4; k++ {
		end := SideTransform(k, 512).Apply(bezier.Vec(1, 0))
		next := SideTransform((k+1)%4, 512).Apply(bezier.Vec(0, 0))
		if end != next {
			t.Errorf("%v end %v != %v start %v", k, end, (k+1)%4, next)
		}
	}

	g := generate(t, 3, 3, 42)
	for _, p := range CompileGrid(g, 512) {
		for k := 0; k < 4; k++ {
			side := p.Sides[k]
			nextSide := p.Sides[(k+1)%4]
			end := side[len(side)-1].P3
			start := nextSide[0].P0
			if end != start {
				t.Errorf("piece (%d,%d): side %d ends at %v, side %d starts at %v", p.Row, p.Col, k, end, (k+1)%4, start)
			}
		}
	}
}

func TestInterlock(t *testing.T) {
	const size = 512
	g := generate(t, 3, 4, 2024)
	paths := make(map[[2]int]Path)
	for _, p := range CompileGrid(g, size) {
		paths[[2]int{p.Row, p.Col}] = p
	}

	ts := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}

	// a and b trace the same curve in opposite directions once b is shifted by off.
	check := func(name string, a, b []bezier.Cubic, off bezier.Vector2) {
		t.Helper()
		if len(a) != len(b) {
			t.Fatalf("%s: %d vs %d segments", name, len(a), len(b))
		}
		n := len(a)
		for i := range a {
			for _, tt := range ts {
				pa := a[i].Eval(tt)
				pb := b[n-1-i].Eval(1 - tt).Add(off)
				if !pa.ApproxEqual(pb, 1e-9) {
					t.Errorf("%s seg %d t=%v: %v vs %v", name, i, tt, pa, pb)
				}
			}
		}
	}

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			p := paths[[2]int{r, c}]
			if r+1 < g.Rows {
				below := paths[[2]int{r + 1, c}]
				check("vertical", p.Sides[Bottom], below.Sides[Top], bezier.Vec(0, size))
			}
			if c+1 < g.Columns {
				right := paths[[2]int{r, c + 1}]
				check("horizontal", p.Sides[Right], right.Sides[Left], bezier.Vec(size, 0))
			}
		}
	}
}

func TestDeterministicPaths(t *testing.T) {
	a := CompileGrid(generate(t, 4, 4, 7), 256)
	b := CompileGrid(generate(t, 4, 4, 7), 256)
	for i := range a {
		if a[i].String() != b[i].String() {
			t.Fatalf("piece %d differs between runs", i)
		}
	}
}

func TestPathFormat(t *testing.T) {
	g := generate(t, 2, 2, 42)
	d := CompilePiece(g.Piece(0, 0), 512).String()
	if !strings.HasPrefix(d, "M 0 0 C ") || !strings.HasSuffix(d, " Z") {
		t.Errorf("unexpected path framing: %q", d)
	}
	if strings.Count(d, "M") != 1 {
		t.Errorf("expected a single moveto: %q", d)
	}
	// top and left are straight (1 segment each), right and bottom use the tab (6 each)
	if n := strings.Count(d, "C"); n != 14 {
		t.Errorf("segments = %d, want 14", n)
	}
	if strings.Contains(d, "e+") || strings.Contains(d, "e-") || strings.Contains(d, "NaN") {
		t.Errorf("bad number formatting: %q", d)
	}
}

func TestRequiredMargin(t *testing.T) {
	if m := RequiredMargin(edge.Straight()); m != 0 {
		t.Errorf("straight margin = %v", m)
	}
	m := RequiredMargin(edge.Default())
	if m < 0.24 || m > 0.25 {
		t.Errorf("default margin = %v, want about 0.245", m)
	}
	for _, p := range CompileGrid(generate(t, 3, 3, 11), 100) {
		if got := p.Protrusion(); got > m+1e-9 {
			t.Errorf("piece (%d,%d) protrudes %v > %v", p.Row, p.Col, got, m)
		}
	}
	if math.IsNaN(RequiredMargin()) {
		t.Error("empty margin is NaN")
	}
}

func TestSideIndexString(t *testing.T) {
	if Left.String() != "left" || SideIndex(9).String() != "side(9)" {
		t.Errorf("names: %v %v", Left, SideIndex(9))
	}
}

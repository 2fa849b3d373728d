package grid

import (
	"slices"
	"testing"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

func tabEdge(id string) edge.Edge {
	e := edge.Default()
	e.ID = id
	e.Name = id
	return e
}

func testConfig(rows, cols int, seed int64, ids ...string) Config {
	cfg := Config{Rows: rows, Columns: cols, Seed: seed}
	for _, id := range ids {
		cfg.EdgeConfigs = append(cfg.EdgeConfigs, tabEdge(id))
	}
	return cfg
}

func TestGenerateDraws(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []Draw
	}{
		{
			name: "2x2 seed 42 single edge",
			cfg:  testConfig(2, 2, 42, "a"),
			want: []Draw{
				{Orientation: Horizontal, Row: 1, Col: 0, Index: 0, EdgeID: "a", Flipped: true},
				{Orientation: Horizontal, Row: 1, Col: 1, Index: 0, EdgeID: "a", Flipped: false},
				{Orientation: Vertical, Row: 0, Col: 1, Index: 0, EdgeID: "a", Flipped: false},
				{Orientation: Vertical, Row: 1, Col: 1, Index: 0, EdgeID: "a", Flipped: false},
			},
		},
		{
			name: "2x2 seed 42 three edges",
			cfg:  testConfig(2, 2, 42, "a", "b", "c"),
			want: []Draw{
				{Orientation: Horizontal, Row: 1, Col: 0, Index: 1, EdgeID: "b", Flipped: true},
				{Orientation: Horizontal, Row: 1, Col: 1, Index: 2, EdgeID: "c", Flipped: false},
				{Orientation: Vertical, Row: 0, Col: 1, Index: 0, EdgeID: "a", Flipped: false},
				{Orientation: Vertical, Row: 1, Col: 1, Index: 0, EdgeID: "a", Flipped: false},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Generate(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(g.Draws, tt.want) {
				t.Errorf("draws:\n got %v\nwant %v", g.Draws, tt.want)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := testConfig(4, 5, 777, "a", "b")
	g1, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := Generate(cfg.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g1.Draws, g2.Draws) {
		t.Fatal("draws differ between runs")
	}
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Columns; c++ {
			a, b := g1.Piece(r, c).Edges(), g2.Piece(r, c).Edges()
			for k := range a {
				if !a[k].ApproxEqual(b[k], 0) {
					t.Errorf("piece (%d,%d) side %d differs", r, c, k)
				}
			}
		}
	}

	g3, err := Generate(cfg.WithSeed(778))
	if err != nil {
		t.Fatal(err)
	}
	if slices.Equal(g1.Draws, g3.Draws) {
		t.Error("different seeds produced identical draws")
	}
}

func TestGenerateCounts(t *testing.T) {
	g, err := Generate(testConfig(3, 4, 1, "a"))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.H) != 4 || len(g.H[0]) != 4 {
		t.Errorf("horizontal boundaries %dx%d, want 4x4", len(g.H), len(g.H[0]))
	}
	if len(g.V) != 3 || len(g.V[0]) != 5 {
		t.Errorf("vertical boundaries %dx%d, want 3x5", len(g.V), len(g.V[0]))
	}
	// interior: 2 rows × 4 horizontal + 3 rows × 3 vertical
	if len(g.Draws) != 17 {
		t.Errorf("draws = %d, want 17", len(g.Draws))
	}
	if n := len(g.Pieces()); n != 12 || g.Len() != 12 {
		t.Errorf("pieces = %d", n)
	}
	if n := len(g.Boundaries()); n != 4*4+3*5 {
		t.Errorf("boundaries = %d", n)
	}
}

func TestOuterBoundariesStraight(t *testing.T) {
	g, err := Generate(testConfig(3, 3, 9, "a"))
	if err != nil {
		t.Fatal(err)
	}
	straight := edge.Straight()
	check := func(name string, s Side) {
		t.Helper()
		if !s.Boundary.Outer {
			t.Errorf("%s: not outer", name)
		}
		for _, p := range s.Edge().Points {
			if p.Position.Y != 0 || !p.Right().IsZero() {
				t.Errorf("%s: not straight: %+v", name, p)
			}
		}
		if s.Edge().Len() != straight.Len() {
			t.Errorf("%s: %d points", name, s.Edge().Len())
		}
	}
	for c := 0; c < 3; c++ {
		check("top", g.Piece(0, c).Top)
		check("bottom", g.Piece(2, c).Bottom)
	}
	for r := 0; r < 3; r++ {
		check("left", g.Piece(r, 0).Left)
		check("right", g.Piece(r, 2).Right)
	}
	if g.Piece(1, 1).Top.Boundary.Outer {
		t.Error("interior boundary marked outer")
	}
}

func TestNeighboursShareBoundary(t *testing.T) {
	g, err := Generate(testConfig(3, 3, 5, "a", "b"))
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			p := g.Piece(r, c)
			if r+1 < 3 {
				below := g.Piece(r+1, c)
				if p.Bottom.Boundary != below.Top.Boundary {
					t.Errorf("(%d,%d) bottom not shared with top below", r, c)
				}
				if !p.Bottom.Reversed || below.Top.Reversed {
					t.Errorf("(%d,%d) vertical neighbours read boundary in the same direction", r, c)
				}
			}
			if c+1 < 3 {
				right := g.Piece(r, c+1)
				if p.Right.Boundary != right.Left.Boundary {
					t.Errorf("(%d,%d) right not shared with left neighbour", r, c)
				}
				if p.Right.Reversed || !right.Left.Reversed {
					t.Errorf("(%d,%d) horizontal neighbours read boundary in the same direction", r, c)
				}
			}
		}
	}
}

func TestSideEdgeReversed(t *testing.T) {
	g, err := Generate(testConfig(2, 1, 3, "a"))
	if err != nil {
		t.Fatal(err)
	}
	s := g.Piece(0, 0).Bottom
	want := edge.Reverse(s.Boundary.Edge)
	if !s.Edge().ApproxEqual(want, 0) {
		t.Error("reversed side does not match Reverse(boundary)")
	}
	b := s.Boundary
	src := tabEdge("a")
	if b.Flipped {
		src = edge.Flip(src)
	}
	if !b.Edge.ApproxEqual(src, 0) {
		t.Error("boundary edge does not match its drawn source")
	}
}

func TestAvailableFallback(t *testing.T) {
	tests := []struct {
		name         string
		selected     []string
		wantIDs      []string
		wantFellBack bool
	}{
		{"explicit", []string{"b"}, []string{"b"}, false},
		{"order follows library", []string{"c", "a"}, []string{"a", "c"}, false},
		{"empty selection", nil, []string{"a", "b", "c"}, true},
		{"no match", []string{"zzz"}, []string{"a", "b", "c"}, true},
		{"partial match", []string{"zzz", "c"}, []string{"c"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(2, 2, 1, "a", "b", "c")
			cfg.SelectedEdgeIDs = tt.selected
			edges, fellBack := cfg.Available()
			var ids []string
			for _, e := range edges {
				ids = append(ids, e.ID)
			}
			if !slices.Equal(ids, tt.wantIDs) || fellBack != tt.wantFellBack {
				t.Errorf("Available() = %v, %v; want %v, %v", ids, fellBack, tt.wantIDs, tt.wantFellBack)
			}
		})
	}

	cfg := testConfig(2, 2, 1, "a")
	cfg.SelectedEdgeIDs = []string{"missing"}
	g, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !g.FellBack {
		t.Error("grid did not report fallback")
	}
}

func TestGenerateNoEdges(t *testing.T) {
	if _, err := Generate(testConfig(2, 2, 1)); !errors.Is(err, errors.ErrCodeNoEdges) {
		t.Errorf("err = %v, want NO_EDGES", err)
	}
	g, err := Generate(testConfig(1, 1, 1))
	if err != nil {
		t.Fatalf("1x1 without edges: %v", err)
	}
	if len(g.Draws) != 0 {
		t.Errorf("draws = %v", g.Draws)
	}
}

func TestConfigValidate(t *testing.T) {
	dup := testConfig(2, 2, 1, "a", "a")
	bad := testConfig(2, 2, 1, "a")
	bad.EdgeConfigs[0].Points[0].Position = bezier.Vec(0.2, 0)

	tests := []struct {
		name string
		cfg  Config
		code errors.Code
	}{
		{"default", DefaultConfig(), ""},
		{"zero rows", testConfig(0, 2, 1, "a"), errors.ErrCodeInvalidConfig},
		{"too many columns", testConfig(2, errors.MaxDimension+1, 1, "a"), errors.ErrCodeInvalidConfig},
		{"duplicate ids", dup, errors.ErrCodeInvalidConfig},
		{"invalid edge", bad, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Rows != 15 || cfg.Columns != 15 || cfg.Seed != 12345 {
		t.Errorf("dimensions = %dx%d seed %d", cfg.Rows, cfg.Columns, cfg.Seed)
	}
	if len(cfg.EdgeConfigs) != 1 || cfg.EdgeConfigs[0].ID != edge.DefaultID {
		t.Errorf("edges = %+v", cfg.EdgeConfigs)
	}
	if !cfg.IsSelected(edge.DefaultID) {
		t.Error("default edge not selected")
	}
}

func TestConfigEdits(t *testing.T) {
	cfg := testConfig(2, 2, 1, "a", "b")
	cfg.SelectedEdgeIDs = []string{"a"}
	orig := cfg.Clone()

	added, err := cfg.AddEdge(tabEdge("c"))
	if err != nil {
		t.Fatal(err)
	}
	if len(added.EdgeConfigs) != 3 || !added.IsSelected("c") {
		t.Errorf("AddEdge: %+v", added.SelectedEdgeIDs)
	}
	if _, err := cfg.AddEdge(tabEdge("a")); err == nil {
		t.Error("AddEdge accepted duplicate id")
	}

	removed, err := cfg.RemoveEdge("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(removed.EdgeConfigs) != 1 || removed.IsSelected("a") {
		t.Errorf("RemoveEdge left %v / %v", removed.EdgeConfigs, removed.SelectedEdgeIDs)
	}
	if _, err := cfg.RemoveEdge("zzz"); !errors.Is(err, errors.ErrCodeEdgeNotFound) {
		t.Errorf("RemoveEdge unknown: %v", err)
	}

	renamed, err := cfg.RenameEdge("b", "Bumpy")
	if err != nil {
		t.Fatal(err)
	}
	if e, _, _ := renamed.Edge("b"); e.Name != "Bumpy" {
		t.Errorf("name = %q", e.Name)
	}

	sel, err := cfg.WithSelection("b", "b", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(sel.SelectedEdgeIDs, []string{"b", "a"}) {
		t.Errorf("selection = %v", sel.SelectedEdgeIDs)
	}
	if _, err := cfg.WithSelection("nope"); !errors.Is(err, errors.ErrCodeEdgeNotFound) {
		t.Errorf("WithSelection unknown: %v", err)
	}

	toggled, err := cfg.WithSelected("a", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(toggled.SelectedEdgeIDs) != 0 {
		t.Errorf("selection = %v", toggled.SelectedEdgeIDs)
	}

	resized, err := cfg.WithDimensions(3, 7)
	if err != nil || resized.Rows != 3 || resized.Columns != 7 {
		t.Errorf("WithDimensions = %dx%d, %v", resized.Rows, resized.Columns, err)
	}

	moved, _, _ := cfg.Edge("a")
	moved, err = moved.MovePoint(1, bezier.Vec(0.3, 0.3))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.WithEdge(moved); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(cfg.SelectedEdgeIDs, orig.SelectedEdgeIDs) || len(cfg.EdgeConfigs) != 2 {
		t.Error("edits mutated the original config")
	}
	for i := range cfg.EdgeConfigs {
		if !cfg.EdgeConfigs[i].ApproxEqual(orig.EdgeConfigs[i], 0) {
			t.Errorf("edge %d mutated", i)
		}
	}
}

package adjacency

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/jigsaw/pkg/core/grid"
)

func generate(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	cfg := grid.DefaultConfig()
	cfg.Rows, cfg.Columns, cfg.Seed = rows, cols, 42
	g, err := grid.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(generate(t, 2, 3), Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	// 2×3 has (2-1)·3 horizontal and 2·(3-1) vertical interior boundaries.
	if n := strings.Count(dot, " -- "); n != 7 {
		t.Errorf("edge count = %d, want 7", n)
	}
	if n := strings.Count(dot, "rank=same"); n != 2 {
		t.Errorf("rank groups = %d, want 2", n)
	}
	if !strings.Contains(dot, `"R 0 C 1" -- "R 1 C 1"`) {
		t.Error("missing vertical neighbour edge")
	}
	if !strings.Contains(dot, `"R 1 C 1" -- "R 1 C 2" [constraint=false]`) {
		t.Error("missing horizontal neighbour edge")
	}
	if strings.Contains(dot, "label=") {
		t.Error("labels emitted without Options.Labels")
	}
}

func TestToDOT_Labels(t *testing.T) {
	g := generate(t, 2, 2)
	dot := ToDOT(g, Options{Labels: true})

	// Seed 42 flips the first drawn boundary, H[1][0].
	if !strings.Contains(dot, `"R 0 C 0" -- "R 1 C 0" [label="edge-1~"]`) {
		t.Errorf("flipped boundary not labelled:\n%s", dot)
	}
	if !strings.Contains(dot, `"R 0 C 1" -- "R 1 C 1" [label="edge-1"]`) {
		t.Errorf("plain boundary not labelled:\n%s", dot)
	}
}

func TestToDOT_SinglePiece(t *testing.T) {
	dot := ToDOT(generate(t, 1, 1), Options{Labels: true})
	if strings.Contains(dot, " -- ") {
		t.Error("single piece has neighbours")
	}
	if !strings.Contains(dot, `"R 0 C 0"`) {
		t.Error("single piece node missing")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox modified")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(generate(t, 2, 2), Options{Labels: true}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
	if !strings.Contains(string(svg), "R 1 C 1") {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "graph {"); err == nil {
		t.Error("invalid DOT accepted")
	}
}

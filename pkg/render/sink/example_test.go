package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/piece"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

func ExamplePieceSVG() {
	s := edge.Straight()
	p := piece.Compile([4]edge.Edge{s, s, s, s}, 512)

	svg := sink.PieceSVG(p, 768, 128)

	fmt.Println("SVG starts with:", string(svg[:4]))
	fmt.Println("Contains offset:", strings.Contains(string(svg), "translate(128, 128)"))
	// Output:
	// SVG starts with: <svg
	// Contains offset: true
}

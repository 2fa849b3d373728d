package edge

import "github.com/matzehuels/jigsaw/pkg/core/bezier"

// DefaultID is the id of the built-in tab edge.
const DefaultID = "edge-1"

func anchor(x, y, hx, hy float64) bezier.Point {
	return bezier.NewPoint(bezier.Vec(x, y), bezier.Continuous{H: bezier.Vec(hx, hy)})
}

// Default returns the built-in "Standard Tab" edge: a single rounded tab rising above
// the baseline slightly right of centre.
func Default() Edge {
	return New(DefaultID, "Standard Tab",
		anchor(0, 0, 0.14529911677042642, -0.036943912506103516),
		anchor(0.2448829968770345, 0.044857152303059894, 0.10314044952392576, 0.07824449539184569),
		anchor(0.4, 0, -0.01915480295817057, -0.0768662452697754),
		anchor(0.5222952524820964, -0.23966822624206544, 0.18494151433308925, 0.042678817113240536),
		anchor(0.5507477442423503, -0.040500481923421226, -0.028452491760253884, 0.05334850947062174),
		anchor(0.6752276341976793, 0.061217308044433594, 0.1315929809349704, 0.010669708251953125),
		anchor(1, 0, 0.1825096766153972, 0.022717634836832683),
	)
}

// Library returns the edges a new puzzle starts with.
func Library() []Edge {
	return []Edge{Default()}
}

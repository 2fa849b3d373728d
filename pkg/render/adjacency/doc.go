// Package adjacency renders which puzzle pieces border which as a Graphviz
// diagram.
//
// Each piece becomes a node labelled "R {row} C {col}"; nodes of one puzzle row
// share a rank so the diagram keeps the grid shape. Every interior boundary
// becomes an undirected edge labelled with the library edge it was drawn from,
// with a trailing "~" when that edge was flipped.
//
//	dot := adjacency.ToDOT(g, adjacency.Options{Labels: true})
//	svg, err := adjacency.RenderSVG(ctx, dot)
//
// The view is a debugging aid: two pieces that should interlock but carry
// different labels point at a generation bug.
package adjacency

// Package bezier models the cubic Bézier curves that jigsaw edges are built from.
//
// A curve is a chain of anchors ([Point]). Each anchor carries a position and two
// control handles stored as offsets relative to that position. Consecutive anchors
// a and b form one cubic segment:
//
//	P0 = a.Position
//	P1 = a.Position + a.Right()
//	P2 = b.Position + b.Left()
//	P3 = b.Position
//
// # Handle Modes
//
// Handles are a closed sum type. [Free] stores both handles independently.
// [Continuous] stores only the outgoing handle and derives the incoming one as its
// negation, so the mirrored-handle invariant cannot be broken by any caller.
//
// # Coordinates
//
// All values live in edge-local normalized space: an edge spans x from 0 to 1 and
// y is the lateral offset of the tab. [Affine] maps that space onto a piece side.
package bezier

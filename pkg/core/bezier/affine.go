package bezier

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), the transform is the augmented matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// so that (A.Mul(B)).Apply(v) == A.Apply(B.Apply(v)).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Scale creates a uniform scaling transform.
func Scale(s float64) Affine {
	return Affine{s, 0, 0, s, 0, 0}
}

// Translate creates a translation by v.
func Translate(v Vector2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// QuarterTurn rotates by n×90°. Positive turns rotate +X into +Y, which is clockwise
// on a y-down canvas. The coefficients are exact, so chained sides meet without
// floating point drift.
func QuarterTurn(n int) Affine {
	switch ((n % 4) + 4) % 4 {
	case 1:
		return Affine{0, 1, -1, 0, 0, 0}
	case 2:
		return Affine{-1, 0, 0, -1, 0, 0}
	case 3:
		return Affine{0, -1, 1, 0, 0, 0}
	default:
		return Identity
	}
}

// Mul returns the composition a∘b (b applied first).
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		a.N0*b.N0 + a.N2*b.N1,
		a.N1*b.N0 + a.N3*b.N1,
		a.N0*b.N2 + a.N2*b.N3,
		a.N1*b.N2 + a.N3*b.N3,
		a.N0*b.N4 + a.N2*b.N5 + a.N4,
		a.N1*b.N4 + a.N3*b.N5 + a.N5,
	}
}

// Apply transforms the point v.
func (a Affine) Apply(v Vector2) Vector2 {
	return Vector2{
		X: a.N0*v.X + a.N2*v.Y + a.N4,
		Y: a.N1*v.X + a.N3*v.Y + a.N5,
	}
}

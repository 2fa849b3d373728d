package bezier

import "math"

// Eval evaluates the cubic Bézier defined by p0..p3 at t using the Bernstein basis
// (1-t)³, 3(1-t)²t, 3(1-t)t², t³.
func Eval(p0, p1, p2, p3 Vector2, t float64) Vector2 {
	tt := t * t
	ttt := t * tt
	u := 1.0 - t
	uu := u * u
	uuu := u * uu

	return Vector2{
		X: uuu*p0.X + 3.0*uu*t*p1.X + 3.0*u*tt*p2.X + ttt*p3.X,
		Y: uuu*p0.Y + 3.0*uu*t*p1.Y + 3.0*u*tt*p2.Y + ttt*p3.Y,
	}
}

// Cubic is a single cubic Bézier segment in absolute coordinates.
type Cubic struct {
	P0 Vector2
	P1 Vector2
	P2 Vector2
	P3 Vector2
}

// Segment returns the cubic joining anchor a to anchor b.
func Segment(a, b Point) Cubic {
	return Cubic{
		P0: a.Position,
		P1: a.RightAbs(),
		P2: b.LeftAbs(),
		P3: b.Position,
	}
}

// Eval evaluates the segment at t.
func (c Cubic) Eval(t float64) Vector2 {
	return Eval(c.P0, c.P1, c.P2, c.P3, t)
}

// Transform applies a to every control point.
func (c Cubic) Transform(a Affine) Cubic {
	return Cubic{P0: a.Apply(c.P0), P1: a.Apply(c.P1), P2: a.Apply(c.P2), P3: a.Apply(c.P3)}
}

// Bounds returns the tight bounding box of the segment, including its extrema.
func (c Cubic) Bounds() Rect {
	r := RectFromPoints(c.P0, c.P3)
	for _, t := range c.extrema() {
		r = r.Include(c.Eval(t))
	}
	return r
}

// extrema returns the parameters in (0,1) where either coordinate has a zero derivative.
func (c Cubic) extrema() []float64 {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	var ts []float64
	for _, coef := range [][3]float64{
		{d0.X - 2*d1.X + d2.X, 2 * (d1.X - d0.X), d0.X},
		{d0.Y - 2*d1.Y + d2.Y, 2 * (d1.Y - d0.Y), d0.Y},
	} {
		for _, t := range solveQuadratic(coef[0], coef[1], coef[2]) {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

// solveQuadratic returns the real roots of a·t² + b·t + c.
func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Vector2
	Max Vector2
}

// RectFromPoints returns the smallest rectangle containing a and b.
func RectFromPoints(a, b Vector2) Rect {
	return Rect{
		Min: Vector2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vector2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Include grows r to contain p.
func (r Rect) Include(p Vector2) Rect {
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return r.Include(o.Min).Include(o.Max)
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

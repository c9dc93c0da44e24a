// Package curve provides closed-form Bezier evaluation and adaptive
// flattening of quadratic, conic and cubic segments into polylines.
//
// All math is done in float64 so repeated subdivision does not
// accumulate single-precision error; callers convert at the edges.
package curve

import "math"

// Point is a 2D point in device space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) add(q Point) Point      { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point      { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) mul(k float64) Point    { return Point{p.X * k, p.Y * k} }
func (p Point) dot(q Point) float64    { return p.X*q.X + p.Y*q.Y }
func (p Point) cross(q Point) float64  { return p.X*q.Y - p.Y*q.X }
func (p Point) lengthSq() float64      { return p.X*p.X + p.Y*p.Y }
func (p Point) distSq(q Point) float64 { return p.sub(q).lengthSq() }

// QuadCoeff holds the polynomial coefficients of a quadratic Bezier,
// eval(t) = A*t^2 + B*t + C.
type QuadCoeff struct {
	A, B, C Point
}

// NewQuadCoeff precomputes coefficients from the control polygon
// p0, p1, p2.
func NewQuadCoeff(p0, p1, p2 Point) QuadCoeff {
	return QuadCoeff{
		A: p2.sub(p1.mul(2)).add(p0),
		B: p1.sub(p0).mul(2),
		C: p0,
	}
}

// Eval evaluates the curve at parameter t.
func (q QuadCoeff) Eval(t float64) Point {
	return q.A.mul(t).add(q.B).mul(t).add(q.C)
}

// CubicCoeff holds the polynomial coefficients of a cubic Bezier,
// eval(t) = A*t^3 + B*t^2 + C*t + D.
type CubicCoeff struct {
	A, B, C, D Point
}

// NewCubicCoeff precomputes coefficients from the control polygon
// p0, p1, p2, p3.
func NewCubicCoeff(p0, p1, p2, p3 Point) CubicCoeff {
	return CubicCoeff{
		A: p3.sub(p2.mul(3)).add(p1.mul(3)).sub(p0),
		B: p2.sub(p1.mul(2)).add(p0).mul(3),
		C: p1.sub(p0).mul(3),
		D: p0,
	}
}

// Eval evaluates the curve at parameter t.
func (c CubicCoeff) Eval(t float64) Point {
	return c.A.mul(t).add(c.B).mul(t).add(c.C).mul(t).add(c.D)
}

// ConicCoeff evaluates a rational quadratic Bezier as the quotient of
// two polynomial quadratics in homogeneous coordinates: the numerator
// carries the weighted control point, the denominator interpolates the
// weights (1, w, 1).
type ConicCoeff struct {
	numer QuadCoeff
	denom QuadCoeff
}

// NewConicCoeff precomputes coefficients for the conic through
// p0, p1, p2 with weight w.
func NewConicCoeff(p0, p1, p2 Point, w float64) ConicCoeff {
	return ConicCoeff{
		numer: NewQuadCoeff(p0, p1.mul(w), p2),
		denom: NewQuadCoeff(Pt(1, 0), Pt(w, 0), Pt(1, 0)),
	}
}

// Eval evaluates the curve at parameter t.
func (c ConicCoeff) Eval(t float64) Point {
	n := c.numer.Eval(t)
	d := c.denom.Eval(t).X
	if d == 0 {
		return n
	}
	return n.mul(1 / d)
}

// Tolerance is the maximum distance, in device pixels, a flattened
// chord may deviate from the true curve.
const Tolerance = 0.1

// maxFlattenDepth bounds subdivision against pathological inputs such
// as extreme conic weights.
const maxFlattenDepth = 24

// evaluator is any curve with closed-form evaluation.
type evaluator interface {
	Eval(t float64) Point
}

// distToChord returns the perpendicular distance from p to the segment
// a-b, falling back to point distance when the chord is degenerate.
func distToChord(p, a, b Point) float64 {
	d := b.sub(a)
	lenSq := d.lengthSq()
	if lenSq == 0 {
		return math.Sqrt(p.distSq(a))
	}
	t := p.sub(a).dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))
	proj := a.add(d.mul(t))
	return math.Sqrt(p.distSq(proj))
}

// flattenSpan recursively bisects [t0, t1], accepting the chord once
// the curve midpoint is within Tolerance of it, then emits the span
// endpoint.
func flattenSpan(e evaluator, t0, t1 float64, pt0, pt1 Point, depth int, emit func(Point)) {
	tm := (t0 + t1) / 2
	pm := e.Eval(tm)
	if depth >= maxFlattenDepth || distToChord(pm, pt0, pt1) <= Tolerance {
		emit(pt1)
		return
	}
	flattenSpan(e, t0, tm, pt0, pm, depth+1, emit)
	flattenSpan(e, tm, t1, pm, pt1, depth+1, emit)
}

// FlattenQuad emits the polyline for the quadratic p0, p1, p2.
// The start point p0 is not emitted.
func FlattenQuad(p0, p1, p2 Point, emit func(Point)) {
	q := NewQuadCoeff(p0, p1, p2)
	flattenSpan(q, 0, 1, p0, p2, 0, emit)
}

// FlattenCubic emits the polyline for the cubic p0, p1, p2, p3.
// The start point p0 is not emitted.
func FlattenCubic(p0, p1, p2, p3 Point, emit func(Point)) {
	c := NewCubicCoeff(p0, p1, p2, p3)
	flattenSpan(c, 0, 1, p0, p3, 0, emit)
}

// FlattenConic emits the polyline for the conic p0, p1, p2 with
// weight w. The start point p0 is not emitted.
func FlattenConic(p0, p1, p2 Point, w float64, emit func(Point)) {
	c := NewConicCoeff(p0, p1, p2, w)
	flattenSpan(c, 0, 1, p0, p2, 0, emit)
}

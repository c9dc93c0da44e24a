package canvas

import "math"

// Point is a position or direction in 2D space.
// Coordinates are float32 so geometry can be handed to the GPU without
// per-vertex conversion.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float32) Point { return Point{p.X * k, p.Y * k} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float32 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the cross product of p and q.
// Positive means q is counter-clockwise from p in a y-down coordinate
// system with the usual screen convention.
func (p Point) Cross(q Point) float32 { return p.X*q.Y - p.Y*q.X }

// Length returns the Euclidean length of p.
func (p Point) Length() float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float32 { return p.Sub(q).Length() }

// Normalize returns p scaled to unit length.
// The zero point is returned unchanged.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return p
	}
	return Point{p.X / l, p.Y / l}
}

// Lerp linearly interpolates between p and q at parameter t.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

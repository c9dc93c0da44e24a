package canvas

// Rect is an axis-aligned rectangle. A Rect with Right <= Left or
// Bottom <= Top is empty.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// RectLTRB constructs a Rect from its edges.
func RectLTRB(left, top, right, bottom float32) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectXYWH constructs a Rect from an origin and a size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Contains reports whether p lies inside r, treating the right and
// bottom edges as exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Union returns the smallest rectangle containing both r and s.
// An empty rectangle does not contribute to the union.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, s.Left),
		Top:    min(r.Top, s.Top),
		Right:  max(r.Right, s.Right),
		Bottom: max(r.Bottom, s.Bottom),
	}
}

// Outset returns r grown by d on every side.
func (r Rect) Outset(d float32) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// RRect is a rectangle with elliptical corners. Radii are stored per
// corner as (x, y) pairs in the order top-left, top-right, bottom-right,
// bottom-left.
type RRect struct {
	Rect  Rect
	Radii [4]Point
}

// RRectXY constructs an RRect with the same x and y radius at every
// corner. Radii are clamped so opposing corners never overlap.
func RRectXY(r Rect, rx, ry float32) RRect {
	if rx < 0 {
		rx = 0
	}
	if ry < 0 {
		ry = 0
	}
	if w := r.Width() / 2; rx > w {
		rx = w
	}
	if h := r.Height() / 2; ry > h {
		ry = h
	}
	p := Point{rx, ry}
	return RRect{Rect: r, Radii: [4]Point{p, p, p, p}}
}

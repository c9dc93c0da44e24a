package canvas

import "math"

// conicSemicircleWeight is the rational weight that makes a conic
// segment trace an exact quarter circle.
const conicSemicircleWeight = float32(math.Sqrt2 / 2)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo begins a new contour at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// ConicTo draws a rational quadratic Bezier curve. Weight 1 degrades
// to an ordinary quadratic; weights below 1 trace elliptical arcs.
type ConicTo struct {
	Control Point
	Point   Point
	Weight  float32
}

func (ConicTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path contains geometry. A path may be empty, or contain one or more
// verbs that outline a figure. Every contour starts with a MoveTo;
// drawing verbs issued without one get an implicit MoveTo to (0, 0).
// A Close verb turns the contour into a continuous loop.
type Path struct {
	elements []PathElement
	current  Point
	start    Point
	hasMove  bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// injectMoveToIfNeeded starts a contour at the origin when a drawing
// verb arrives before any MoveTo, or right after a Close.
func (p *Path) injectMoveToIfNeeded() {
	if len(p.elements) == 0 || !p.hasMove {
		p.elements = append(p.elements, MoveTo{})
		p.start = Point{}
		p.current = Point{}
		p.hasMove = true
	}
}

// MoveTo begins a new contour at (x, y).
func (p *Path) MoveTo(x, y float32) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.hasMove = true
}

// LineTo draws a line from the current point to (x, y).
func (p *Path) LineTo(x, y float32) {
	p.injectMoveToIfNeeded()
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadTo draws a quadratic Bezier curve to (x, y) with control
// point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.injectMoveToIfNeeded()
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)})
	p.current = Pt(x, y)
}

// ConicTo draws a rational quadratic Bezier curve to (x, y) with
// control point (cx, cy) and the given weight. Weights that are not
// finite and positive are treated as 1.
func (p *Path) ConicTo(cx, cy, x, y, weight float32) {
	p.injectMoveToIfNeeded()
	if !(weight > 0) || math.IsInf(float64(weight), 1) {
		weight = 1
	}
	p.elements = append(p.elements, ConicTo{Control: Pt(cx, cy), Point: Pt(x, y), Weight: weight})
	p.current = Pt(x, y)
}

// CubicTo draws a cubic Bezier curve to (x, y) with control points
// (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.injectMoveToIfNeeded()
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	p.current = Pt(x, y)
}

// Close closes the current subpath by connecting back to its start.
// The next drawing verb starts a fresh contour.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
	p.hasMove = false
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.hasMove = false
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool { return len(p.elements) == 0 }

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Rectangle adds a closed rectangular contour.
func (p *Path) Rectangle(x, y, w, h float32) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// AddRect adds a closed contour tracing r.
func (p *Path) AddRect(r Rect) {
	p.Rectangle(r.Left, r.Top, r.Width(), r.Height())
}

// Ellipse adds a closed elliptical contour built from four conic
// quadrants.
func (p *Path) Ellipse(cx, cy, rx, ry float32) {
	w := conicSemicircleWeight
	p.MoveTo(cx+rx, cy)
	p.ConicTo(cx+rx, cy+ry, cx, cy+ry, w)
	p.ConicTo(cx-rx, cy+ry, cx-rx, cy, w)
	p.ConicTo(cx-rx, cy-ry, cx, cy-ry, w)
	p.ConicTo(cx+rx, cy-ry, cx+rx, cy, w)
	p.Close()
}

// Circle adds a closed circular contour.
func (p *Path) Circle(cx, cy, r float32) {
	p.Ellipse(cx, cy, r, r)
}

// AddOval adds a closed elliptical contour inscribed in r.
func (p *Path) AddOval(r Rect) {
	p.Ellipse(r.Center().X, r.Center().Y, r.Width()/2, r.Height()/2)
}

// Arc appends a circular arc centered at (cx, cy) with the given
// radius, sweeping from startAngle by sweepAngle radians. Positive
// sweeps run clockwise in the y-down coordinate system. When a contour
// is open the arc is joined to it with a line; otherwise it starts a
// new contour at its first point. Sweeps are clamped to one full turn.
// Non-positive radii and zero sweeps are no-ops.
func (p *Path) Arc(cx, cy, radius, startAngle, sweepAngle float32) {
	if radius <= 0 || sweepAngle == 0 {
		return
	}
	const fullTurn = 2 * math.Pi
	sweep := math.Max(-fullTurn, math.Min(fullTurn, float64(sweepAngle)))

	r := float64(radius)
	a0 := float64(startAngle)
	fx := cx + float32(r*math.Cos(a0))
	fy := cy + float32(r*math.Sin(a0))
	if p.hasMove {
		p.LineTo(fx, fy)
	} else {
		p.MoveTo(fx, fy)
	}

	// Split into segments no wider than a quarter turn; each one is an
	// exact conic with weight cos(half the segment angle) and its
	// control point at the tangent intersection.
	remaining := sweep
	for remaining != 0 {
		step := math.Max(-math.Pi/2, math.Min(math.Pi/2, remaining))
		a1 := a0 + step
		half := math.Abs(step) / 2
		mid := (a0 + a1) / 2
		cr := r / math.Cos(half)
		p.ConicTo(
			cx+float32(cr*math.Cos(mid)), cy+float32(cr*math.Sin(mid)),
			cx+float32(r*math.Cos(a1)), cy+float32(r*math.Sin(a1)),
			float32(math.Cos(half)),
		)
		remaining -= step
		a0 = a1
	}
}

// RoundedRectangle adds a closed rectangular contour with circular
// corners of radius r.
func (p *Path) RoundedRectangle(x, y, w, h, r float32) {
	p.AddRRect(RRectXY(RectXYWH(x, y, w, h), r, r))
}

// AddRRect adds a closed contour tracing rr, with each corner drawn as
// a conic arc.
func (p *Path) AddRRect(rr RRect) {
	r := rr.Rect
	tl, tr, br, bl := rr.Radii[0], rr.Radii[1], rr.Radii[2], rr.Radii[3]
	w := conicSemicircleWeight

	p.MoveTo(r.Left+tl.X, r.Top)
	p.LineTo(r.Right-tr.X, r.Top)
	if tr.X > 0 && tr.Y > 0 {
		p.ConicTo(r.Right, r.Top, r.Right, r.Top+tr.Y, w)
	}
	p.LineTo(r.Right, r.Bottom-br.Y)
	if br.X > 0 && br.Y > 0 {
		p.ConicTo(r.Right, r.Bottom, r.Right-br.X, r.Bottom, w)
	}
	p.LineTo(r.Left+bl.X, r.Bottom)
	if bl.X > 0 && bl.Y > 0 {
		p.ConicTo(r.Left, r.Bottom, r.Left, r.Bottom-bl.Y, w)
	}
	p.LineTo(r.Left, r.Top+tl.Y)
	if tl.X > 0 && tl.Y > 0 {
		p.ConicTo(r.Left, r.Top, r.Left+tl.X, r.Top, w)
	}
	p.Close()
}

// Transform returns a new path with all points transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		elements: make([]PathElement, len(p.elements)),
		current:  m.TransformPoint(p.current),
		start:    m.TransformPoint(p.start),
		hasMove:  p.hasMove,
	}
	for i, e := range p.elements {
		switch v := e.(type) {
		case MoveTo:
			out.elements[i] = MoveTo{Point: m.TransformPoint(v.Point)}
		case LineTo:
			out.elements[i] = LineTo{Point: m.TransformPoint(v.Point)}
		case QuadTo:
			out.elements[i] = QuadTo{
				Control: m.TransformPoint(v.Control),
				Point:   m.TransformPoint(v.Point),
			}
		case ConicTo:
			out.elements[i] = ConicTo{
				Control: m.TransformPoint(v.Control),
				Point:   m.TransformPoint(v.Point),
				Weight:  v.Weight,
			}
		case CubicTo:
			out.elements[i] = CubicTo{
				Control1: m.TransformPoint(v.Control1),
				Control2: m.TransformPoint(v.Control2),
				Point:    m.TransformPoint(v.Point),
			}
		case Close:
			out.elements[i] = v
		}
	}
	return out
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := &Path{
		elements: make([]PathElement, len(p.elements)),
		current:  p.current,
		start:    p.start,
		hasMove:  p.hasMove,
	}
	copy(out.elements, p.elements)
	return out
}

// Bounds returns a conservative bounding rectangle covering all points
// in the path, control points included. Returns an empty Rect for an
// empty path.
func (p *Path) Bounds() Rect {
	first := true
	var r Rect
	add := func(pt Point) {
		if first {
			r = Rect{Left: pt.X, Top: pt.Y, Right: pt.X, Bottom: pt.Y}
			first = false
			return
		}
		r.Left = min(r.Left, pt.X)
		r.Top = min(r.Top, pt.Y)
		r.Right = max(r.Right, pt.X)
		r.Bottom = max(r.Bottom, pt.Y)
	}
	for _, e := range p.elements {
		switch v := e.(type) {
		case MoveTo:
			add(v.Point)
		case LineTo:
			add(v.Point)
		case QuadTo:
			add(v.Control)
			add(v.Point)
		case ConicTo:
			add(v.Control)
			add(v.Point)
		case CubicTo:
			add(v.Control1)
			add(v.Control2)
			add(v.Point)
		case Close:
		}
	}
	return r
}

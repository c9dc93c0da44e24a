package raster

import (
	"math"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/internal/curve"
)

// roundSteps is the number of arc subdivisions for round joins and
// caps.
const roundSteps = 8

// degenerateEpsilon is the squared segment length below which a
// segment is skipped before any join computation.
const degenerateEpsilon = 1e-12

// StrokePath expands path's outline into a quad-per-segment mesh with
// join and cap geometry. Stroke expansion emits strictly ordered
// segments whose joins only fill the wedge between neighbors, so the
// mesh never self-overlaps and is always classified ModeNonOverlap.
func StrokePath(path *canvas.Path, paint canvas.Paint, transform canvas.Matrix) *Mesh {
	mesh := &Mesh{Mode: ModeNonOverlap}

	halfWidth := float64(paint.StrokeWidth) / 2 * float64(transform.MaxScale())
	if halfWidth <= 0 {
		return mesh
	}

	for _, contour := range Contours(path, transform) {
		strokeContour(mesh, contour, halfWidth, paint)
	}
	return mesh
}

type vec = curve.Point

func sub(a, b vec) vec        { return vec{X: a.X - b.X, Y: a.Y - b.Y} }
func add(a, b vec) vec        { return vec{X: a.X + b.X, Y: a.Y + b.Y} }
func scale(a vec, k float64) vec {
	return vec{X: a.X * k, Y: a.Y * k}
}
func dot(a, b vec) float64   { return a.X*b.X + a.Y*b.Y }
func cross(a, b vec) float64 { return a.X*b.Y - a.Y*b.X }
func lengthSq(a vec) float64 { return dot(a, a) }

func normalize(a vec) vec {
	l := math.Sqrt(lengthSq(a))
	if l == 0 {
		return a
	}
	return scale(a, 1/l)
}

// perp rotates a 90 degrees counter-clockwise.
func perp(a vec) vec { return vec{X: -a.Y, Y: a.X} }

// rotate rotates a by ang radians.
func rotate(a vec, ang float64) vec {
	s, c := math.Sincos(ang)
	return vec{X: a.X*c - a.Y*s, Y: a.X*s + a.Y*c}
}

func strokeContour(mesh *Mesh, contour Contour, halfWidth float64, paint canvas.Paint) {
	pts := contour.Points
	if len(pts) < 2 {
		return
	}

	// Segment directions with zero-length segments dropped up front,
	// so joins never see a degenerate neighbor.
	type segment struct {
		p, q, dir vec
	}
	var segs []segment
	n := len(pts)
	last := n - 1
	if contour.Closed {
		last = n
	}
	for i := 0; i < last; i++ {
		p, q := pts[i], pts[(i+1)%n]
		d := sub(q, p)
		if lengthSq(d) < degenerateEpsilon {
			continue
		}
		segs = append(segs, segment{p: p, q: q, dir: normalize(d)})
	}
	if len(segs) == 0 {
		return
	}

	// One quad per segment.
	for _, s := range segs {
		off := scale(perp(s.dir), halfWidth)
		a := mesh.AddVertex(s.p.X+off.X, s.p.Y+off.Y)
		b := mesh.AddVertex(s.p.X-off.X, s.p.Y-off.Y)
		c := mesh.AddVertex(s.q.X+off.X, s.q.Y+off.Y)
		d := mesh.AddVertex(s.q.X-off.X, s.q.Y-off.Y)
		mesh.AddTriangle(a, b, c)
		mesh.AddTriangle(c, b, d)
	}

	// Joins between consecutive segments, wrapping for closed contours.
	joinCount := len(segs) - 1
	if contour.Closed {
		joinCount = len(segs)
	}
	for i := 0; i < joinCount; i++ {
		s1 := segs[i]
		s2 := segs[(i+1)%len(segs)]
		emitJoin(mesh, s1.q, s1.dir, s2.dir, halfWidth, paint)
	}

	// Caps on open contours.
	if !contour.Closed {
		first, lastSeg := segs[0], segs[len(segs)-1]
		emitCap(mesh, first.p, scale(first.dir, -1), halfWidth, paint.Cap)
		emitCap(mesh, lastSeg.q, lastSeg.dir, halfWidth, paint.Cap)
	}
}

// emitJoin fills the outer wedge at vertex v between the incoming
// direction d1 and the outgoing direction d2.
func emitJoin(mesh *Mesh, v, d1, d2 vec, halfWidth float64, paint canvas.Paint) {
	turn := cross(d1, d2)
	if math.Abs(turn) < collinearEpsilon {
		return
	}

	// The wedge opens on the side opposite the turn direction.
	outer := 1.0
	if turn > 0 {
		outer = -1
	}
	o1 := scale(perp(d1), halfWidth*outer)
	o2 := scale(perp(d2), halfWidth*outer)

	switch paint.Join {
	case canvas.JoinMiter:
		u1, u2 := normalize(o1), normalize(o2)
		m := normalize(add(u1, u2))
		cosHalf := dot(m, u1)
		if cosHalf <= 0 || 1/cosHalf > float64(paint.MiterLimit) {
			emitBevel(mesh, v, o1, o2)
			return
		}
		apex := add(v, scale(m, halfWidth/cosHalf))
		vi := mesh.AddVertex(v.X, v.Y)
		ai := mesh.AddVertex(apex.X, apex.Y)
		p1 := mesh.AddVertex(v.X+o1.X, v.Y+o1.Y)
		p2 := mesh.AddVertex(v.X+o2.X, v.Y+o2.Y)
		mesh.AddTriangle(vi, p1, ai)
		mesh.AddTriangle(vi, ai, p2)
	case canvas.JoinRound:
		emitArcFan(mesh, v, o1, o2)
	default:
		emitBevel(mesh, v, o1, o2)
	}
}

// emitBevel connects the two offset points through the vertex.
func emitBevel(mesh *Mesh, v, o1, o2 vec) {
	vi := mesh.AddVertex(v.X, v.Y)
	p1 := mesh.AddVertex(v.X+o1.X, v.Y+o1.Y)
	p2 := mesh.AddVertex(v.X+o2.X, v.Y+o2.Y)
	mesh.AddTriangle(vi, p1, p2)
}

// emitArcFan fills the wedge between offsets o1 and o2 around v with
// a triangle fan, interpolating the offset direction along the arc.
func emitArcFan(mesh *Mesh, v, o1, o2 vec) {
	ang := math.Acos(math.Max(-1, math.Min(1, dot(normalize(o1), normalize(o2)))))
	if ang == 0 {
		return
	}
	if cross(o1, o2) < 0 {
		ang = -ang
	}

	vi := mesh.AddVertex(v.X, v.Y)
	prev := mesh.AddVertex(v.X+o1.X, v.Y+o1.Y)
	for i := 1; i <= roundSteps; i++ {
		o := rotate(o1, ang*float64(i)/roundSteps)
		cur := mesh.AddVertex(v.X+o.X, v.Y+o.Y)
		mesh.AddTriangle(vi, prev, cur)
		prev = cur
	}
}

// emitCap closes an open contour end at p, with dir pointing out of
// the contour.
func emitCap(mesh *Mesh, p, dir vec, halfWidth float64, capStyle canvas.LineCap) {
	off := scale(perp(dir), halfWidth)
	switch capStyle {
	case canvas.CapSquare:
		ext := scale(dir, halfWidth)
		a := mesh.AddVertex(p.X+off.X, p.Y+off.Y)
		b := mesh.AddVertex(p.X-off.X, p.Y-off.Y)
		c := mesh.AddVertex(p.X+ext.X+off.X, p.Y+ext.Y+off.Y)
		d := mesh.AddVertex(p.X+ext.X-off.X, p.Y+ext.Y-off.Y)
		mesh.AddTriangle(a, b, c)
		mesh.AddTriangle(c, b, d)
	case canvas.CapRound:
		// Semicircle from +off to -off passing through dir.
		vi := mesh.AddVertex(p.X, p.Y)
		prev := mesh.AddVertex(p.X+off.X, p.Y+off.Y)
		for i := 1; i <= roundSteps; i++ {
			o := rotate(off, -math.Pi*float64(i)/roundSteps)
			cur := mesh.AddVertex(p.X+o.X, p.Y+o.Y)
			mesh.AddTriangle(vi, prev, cur)
			prev = cur
		}
	}
}

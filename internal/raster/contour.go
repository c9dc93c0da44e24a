package raster

import (
	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/internal/curve"
)

// Contour is one flattened subpath in device space.
type Contour struct {
	Points []curve.Point
	Closed bool
}

// AppendPoint adds p unless it duplicates the previous point.
func (c *Contour) AppendPoint(p curve.Point) {
	if n := len(c.Points); n > 0 && c.Points[n-1] == p {
		return
	}
	c.Points = append(c.Points, p)
}

// Contours flattens path into device-space polylines, applying
// transform before flattening so the flatness tolerance is measured in
// device pixels.
func Contours(path *canvas.Path, transform canvas.Matrix) []Contour {
	dev := func(p canvas.Point) curve.Point {
		t := transform.TransformPoint(p)
		return curve.Pt(float64(t.X), float64(t.Y))
	}

	var out []Contour
	var cur *Contour

	begin := func(p curve.Point) {
		out = append(out, Contour{Points: []curve.Point{p}})
		cur = &out[len(out)-1]
	}
	ensure := func() {
		if cur == nil {
			begin(dev(canvas.Point{}))
		}
	}

	for _, e := range path.Elements() {
		switch v := e.(type) {
		case canvas.MoveTo:
			begin(dev(v.Point))
		case canvas.LineTo:
			ensure()
			cur.AppendPoint(dev(v.Point))
		case canvas.QuadTo:
			ensure()
			p0 := cur.Points[len(cur.Points)-1]
			curve.FlattenQuad(p0, dev(v.Control), dev(v.Point), cur.AppendPoint)
		case canvas.ConicTo:
			ensure()
			p0 := cur.Points[len(cur.Points)-1]
			curve.FlattenConic(p0, dev(v.Control), dev(v.Point), float64(v.Weight), cur.AppendPoint)
		case canvas.CubicTo:
			ensure()
			p0 := cur.Points[len(cur.Points)-1]
			curve.FlattenCubic(p0, dev(v.Control1), dev(v.Control2), dev(v.Point), cur.AppendPoint)
		case canvas.Close:
			if cur != nil {
				// Drop a trailing point that duplicates the start.
				if n := len(cur.Points); n > 1 && cur.Points[n-1] == cur.Points[0] {
					cur.Points = cur.Points[:n-1]
				}
				cur.Closed = true
				cur = nil
			}
		}
	}
	return out
}

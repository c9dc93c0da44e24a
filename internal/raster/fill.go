package raster

import (
	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/internal/curve"
)

// FillPath flattens and fan-triangulates path under transform, and
// classifies the result for stencil policy selection. Returns an empty
// mesh when no contour has enough points to form a triangle.
func FillPath(path *canvas.Path, rule canvas.FillRule, transform canvas.Matrix) *Mesh {
	mesh := &Mesh{}
	frontCount, backCount := 0, 0

	for _, contour := range Contours(path, transform) {
		if len(contour.Points) < 3 {
			continue
		}
		f, b := fanTriangulate(mesh, contour.Points)
		frontCount += f
		backCount += b
	}

	switch {
	case rule == canvas.FillEvenOdd:
		mesh.Mode = ModeEvenOddFill
	case frontCount == 0 || backCount == 0:
		mesh.Mode = ModeConvex
	default:
		mesh.Mode = ModeComplex
	}
	return mesh
}

// fanTriangulate emits a triangle fan anchored at the contour's first
// point. Collinear triangles are collapsed by replacing the pending
// previous vertex with the new point instead of emitting a degenerate
// primitive. Returns the clockwise and counter-clockwise triangle
// counts.
func fanTriangulate(mesh *Mesh, pts []curve.Point) (front, back int) {
	first := pts[0]
	firstIdx := mesh.AddVertex(first.X, first.Y)

	prev := pts[1]
	prevIdx := mesh.AddVertex(prev.X, prev.Y)

	for _, p := range pts[2:] {
		switch orientation(first.X, first.Y, prev.X, prev.Y, p.X, p.Y) {
		case 0:
			// Degenerate sliver: slide the pending vertex forward.
			prev = p
			prevIdx = mesh.AddVertex(p.X, p.Y)
		case 1:
			front++
			idx := mesh.AddVertex(p.X, p.Y)
			mesh.AddTriangle(firstIdx, prevIdx, idx)
			prev, prevIdx = p, idx
		case -1:
			back++
			idx := mesh.AddVertex(p.X, p.Y)
			mesh.AddTriangle(firstIdx, prevIdx, idx)
			prev, prevIdx = p, idx
		}
	}
	return front, back
}

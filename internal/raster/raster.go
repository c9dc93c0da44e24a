// Package raster turns paths into triangle meshes ready for the GPU
// stencil-and-cover renderer. It flattens curves in device space,
// fan-triangulates fills, expands strokes into quads with join and cap
// geometry, and classifies each mesh so the renderer can pick the
// cheapest stencil policy.
package raster

import "math"

// VertexMode classifies a mesh for stencil policy selection.
type VertexMode int

const (
	// ModeConvex marks a fill with a single winding direction; it can
	// be covered directly without a stencil pass.
	ModeConvex VertexMode = iota
	// ModeComplex marks a fill that needs the full winding
	// stencil-and-cover treatment.
	ModeComplex
	// ModeEvenOddFill marks a fill rendered under the even-odd rule.
	ModeEvenOddFill
	// ModeNonOverlap marks geometry guaranteed not to self-overlap,
	// such as stroke expansion output.
	ModeNonOverlap
)

// String returns the mode name for logs.
func (m VertexMode) String() string {
	switch m {
	case ModeConvex:
		return "convex"
	case ModeComplex:
		return "complex"
	case ModeEvenOddFill:
		return "even-odd"
	case ModeNonOverlap:
		return "non-overlap"
	default:
		return "unknown"
	}
}

// Mesh is a device-space triangle mesh. Vertices holds interleaved
// x, y pairs.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	Mode     VertexMode

	// Device-space bounds of all vertices, used to size the cover quad.
	MinX, MinY float32
	MaxX, MaxY float32

	hasBounds bool
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(x, y float64) uint32 {
	fx, fy := float32(x), float32(y)
	if !m.hasBounds {
		m.MinX, m.MinY, m.MaxX, m.MaxY = fx, fy, fx, fy
		m.hasBounds = true
	} else {
		m.MinX = min(m.MinX, fx)
		m.MinY = min(m.MinY, fy)
		m.MaxX = max(m.MaxX, fx)
		m.MaxY = max(m.MaxY, fy)
	}
	m.Vertices = append(m.Vertices, fx, fy)
	return uint32(len(m.Vertices)/2 - 1)
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool { return len(m.Indices) == 0 }

// CoverQuad returns the four corners of a bounds-covering quad, padded
// by one device pixel, as x, y pairs in triangle-strip-friendly order:
// top-left, top-right, bottom-left, bottom-right.
func (m *Mesh) CoverQuad() [8]float32 {
	const pad = 1
	return [8]float32{
		m.MinX - pad, m.MinY - pad,
		m.MaxX + pad, m.MinY - pad,
		m.MinX - pad, m.MaxY + pad,
		m.MaxX + pad, m.MaxY + pad,
	}
}

// collinearEpsilon is the cross-product magnitude below which a fan
// triangle is treated as degenerate.
const collinearEpsilon = 1e-10

// orientation returns the sign of the cross product (b-a)x(c-a):
// +1 clockwise, -1 counter-clockwise, 0 collinear.
func orientation(ax, ay, bx, by, cx, cy float64) int {
	cross := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	if math.Abs(cross) < collinearEpsilon {
		return 0
	}
	if cross > 0 {
		return 1
	}
	return -1
}

package gpu

import (
	"sort"

	"github.com/gogpu/canvas"
)

// Uniform buffer sizes in bytes, matching the WGSL struct layouts.
const (
	stencilUniformSize  = 16  // viewport vec4
	solidUniformSize    = 32  // viewport + color
	gradientUniformSize = 368 // viewport + geometry + conf + 4 offset vec4s + 16 color vec4s
	textureUniformSize  = 48  // viewport + rect + tint
)

// fragment describes the cover pass of one draw: which pipeline colors
// it, the packed uniform data, and the texture image if any.
type fragment struct {
	pipeline string
	uniform  []byte
	image    *canvas.Image
}

// uniformHeader packs the shared vec4 every shader starts with.
func uniformHeader(vw, vh, depth float32) []float32 {
	return []float32{vw, vh, depth, 0}
}

// stencilUniform packs the uniform for a stencil or clip pass.
func stencilUniform(vw, vh, depth float32) []byte {
	return float32Bytes(uniformHeader(vw, vh, depth))
}

// solidFragment packs a solid cover with the given non-premultiplied
// color.
func solidFragment(c canvas.RGBA, vw, vh, depth float32) fragment {
	p := c.Premultiply()
	data := append(uniformHeader(vw, vh, depth), p.R, p.G, p.B, p.A)
	return fragment{pipeline: PipelineSolid, uniform: float32Bytes(data)}
}

// gradientStops sorts and truncates stops to the uniform table size.
func gradientStops(stops []canvas.ColorStop) []canvas.ColorStop {
	sorted := make([]canvas.ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	if len(sorted) > canvas.MaxColorStops {
		sorted = sorted[:canvas.MaxColorStops]
	}
	return sorted
}

// packGradient packs the shared tail of both gradient uniforms: the
// conf vec4, the offset table and the premultiplied color table.
func packGradient(data []float32, stops []canvas.ColorStop, extend canvas.ExtendMode) []byte {
	data = append(data, float32(len(stops)), float32(extend), 0, 0)

	offsets := make([]float32, canvas.MaxColorStops)
	for i, s := range stops {
		offsets[i] = s.Offset
	}
	data = append(data, offsets...)

	for i := 0; i < canvas.MaxColorStops; i++ {
		var c canvas.RGBA
		if i < len(stops) {
			c = stops[i].Color.Premultiply()
		}
		data = append(data, c.R, c.G, c.B, c.A)
	}
	return float32Bytes(data)
}

// deviceRect returns the axis-aligned bounds of r under m.
func deviceRect(r canvas.Rect, m canvas.Matrix) canvas.Rect {
	tl := m.TransformPoint(canvas.Pt(r.Left, r.Top))
	tr := m.TransformPoint(canvas.Pt(r.Right, r.Top))
	bl := m.TransformPoint(canvas.Pt(r.Left, r.Bottom))
	br := m.TransformPoint(canvas.Pt(r.Right, r.Bottom))
	return canvas.RectLTRB(
		min(min(tl.X, tr.X), min(bl.X, br.X)),
		min(min(tl.Y, tr.Y), min(bl.Y, br.Y)),
		max(max(tl.X, tr.X), max(bl.X, br.X)),
		max(max(tl.Y, tr.Y), max(bl.Y, br.Y)),
	)
}

// buildFragment maps a brush to its cover pipeline and uniform data.
// The shaders evaluate at device-space fragment positions, so brush
// geometry is packed through the draw transform to keep it aligned
// with the mesh. Gradients that cannot produce color, a zero axis or
// span or an empty stop list, degrade the same way their CPU
// evaluation does.
func buildFragment(brush canvas.Brush, transform canvas.Matrix, vw, vh, depth float32) fragment {
	switch b := brush.(type) {
	case canvas.SolidBrush:
		return solidFragment(b.Color, vw, vh, depth)

	case *canvas.LinearGradientBrush:
		start := transform.TransformPoint(b.Start)
		end := transform.TransformPoint(b.End)
		d := end.Sub(start)
		if d.Dot(d) == 0 || len(b.Stops) == 0 {
			return solidFragment(canvas.Black, vw, vh, depth)
		}
		stops := gradientStops(b.Stops)
		if len(stops) == 1 {
			return solidFragment(stops[0].Color, vw, vh, depth)
		}
		data := append(uniformHeader(vw, vh, depth), start.X, start.Y, end.X, end.Y)
		return fragment{
			pipeline: PipelineLinearGradient,
			uniform:  packGradient(data, stops, b.Extend),
		}

	case *canvas.RadialGradientBrush:
		scale := transform.MaxScale()
		startRadius := b.StartRadius * scale
		endRadius := b.EndRadius * scale
		if endRadius-startRadius <= 0 || len(b.Stops) == 0 {
			return solidFragment(canvas.Black, vw, vh, depth)
		}
		stops := gradientStops(b.Stops)
		if len(stops) == 1 {
			return solidFragment(stops[0].Color, vw, vh, depth)
		}
		center := transform.TransformPoint(b.Center)
		data := append(uniformHeader(vw, vh, depth), center.X, center.Y, startRadius, endRadius)
		return fragment{
			pipeline: PipelineRadialGradient,
			uniform:  packGradient(data, stops, b.Extend),
		}

	case *canvas.ImageBrush:
		if b.Image == nil || b.Image.Width() == 0 || b.Image.Height() == 0 {
			return solidFragment(canvas.Transparent, vw, vh, depth)
		}
		// The texture shader maps device positions through an axis
		// aligned rect. Run the image bounds through the inverted
		// local matrix and the draw transform to recover that rect;
		// rotation components are not representable and degrade to
		// the transformed bounds.
		m := transform.Multiply(b.LocalMatrix.Invert())
		local := canvas.RectXYWH(0, 0, float32(b.Image.Width()), float32(b.Image.Height()))
		return fragment{
			pipeline: PipelineTexture,
			uniform:  textureUniform(deviceRect(local, m), 1, vw, vh, depth),
			image:    b.Image,
		}

	default:
		return solidFragment(canvas.Black, vw, vh, depth)
	}
}

// textureUniform packs the texture pipeline uniform for an image drawn
// into dst with the given global alpha.
func textureUniform(dst canvas.Rect, alpha, vw, vh, depth float32) []byte {
	data := append(uniformHeader(vw, vh, depth),
		dst.Left, dst.Top, dst.Width(), dst.Height(),
		alpha, 0, 0, 0)
	return float32Bytes(data)
}

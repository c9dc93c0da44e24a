package gpu

import (
	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/internal/raster"
)

// drawCall is one encoded draw of the frame's render pass. Offsets
// index into the frame's shared staging buffer.
type drawCall struct {
	pipeline      string
	policy        StencilPolicy
	uniformOffset uint64
	uniformSize   uint64
	vertexOffset  uint64
	indexOffset   uint64
	indexCount    uint32
	image         *canvas.Image
}

// coverQuadIndices index the four CoverQuad vertices as two triangles.
var coverQuadIndices = []uint32{0, 1, 2, 2, 1, 3}

// frameBuilder turns a picture's draw list into draw calls, staging all
// vertex, index and uniform data as it goes.
type frameBuilder struct {
	stage *StageBuffer
	calls []drawCall
	vw    float32
	vh    float32
	depth float32
}

// buildFrame lowers every draw of the picture for a vw by vh target.
func buildFrame(pic *canvas.Picture, stage *StageBuffer, vw, vh float32) []drawCall {
	b := &frameBuilder{stage: stage, vw: vw, vh: vh}
	depthCount := pic.DepthCount()
	if depthCount == 0 {
		depthCount = 1
	}
	for _, d := range pic.Draws() {
		b.depth = float32(d.Depth) / float32(depthCount)
		switch cmd := d.Command.(type) {
		case canvas.DrawPathCommand:
			b.drawPath(cmd, d.Transform)
		case canvas.ClipPathCommand:
			b.clipPath(cmd, d.Transform)
		case canvas.DrawImageCommand:
			b.drawImage(cmd, d.Transform)
		}
	}
	return b.calls
}

// pushMesh stages a mesh's vertex and index data.
func (b *frameBuilder) pushMesh(mesh *raster.Mesh) (vtxOff, idxOff uint64) {
	vtxOff = b.stage.PushData(float32Bytes(mesh.Vertices))
	idxOff = b.stage.PushData(uint32Bytes(mesh.Indices))
	return vtxOff, idxOff
}

// pushQuad stages four corner vertices and the shared quad indices.
func (b *frameBuilder) pushQuad(corners [8]float32) (vtxOff, idxOff uint64) {
	vtxOff = b.stage.PushData(float32Bytes(corners[:]))
	idxOff = b.stage.PushData(uint32Bytes(coverQuadIndices))
	return vtxOff, idxOff
}

// viewportQuad covers the whole render target.
func (b *frameBuilder) viewportQuad() [8]float32 {
	return [8]float32{
		0, 0,
		b.vw, 0,
		0, b.vh,
		b.vw, b.vh,
	}
}

// stencilCall emits the winding accumulation pass for a mesh.
func (b *frameBuilder) stencilCall(mesh *raster.Mesh, evenOdd bool, vtxOff, idxOff uint64) {
	policy := PolicyStencilMask
	if evenOdd {
		policy = PolicyStencilMaskEvenOdd
	}
	uniform := stencilUniform(b.vw, b.vh, b.depth)
	b.calls = append(b.calls, drawCall{
		pipeline:      PipelineStencil,
		policy:        policy,
		uniformOffset: b.stage.PushUniform(uniform),
		uniformSize:   uint64(len(uniform)),
		vertexOffset:  vtxOff,
		indexOffset:   idxOff,
		indexCount:    uint32(len(mesh.Indices)),
	})
}

// drawPath lowers a fill or stroke into its stencil and cover calls.
func (b *frameBuilder) drawPath(cmd canvas.DrawPathCommand, transform canvas.Matrix) {
	var mesh *raster.Mesh
	if cmd.Paint.Style == canvas.StyleStroke {
		mesh = raster.StrokePath(cmd.Path, cmd.Paint, transform)
	} else {
		mesh = raster.FillPath(cmd.Path, cmd.Paint.FillRule, transform)
	}
	if mesh.IsEmpty() {
		return
	}

	frag := buildFragment(cmd.Paint.Brush, transform, b.vw, b.vh, b.depth)
	vtxOff, idxOff := b.pushMesh(mesh)

	switch mesh.Mode {
	case raster.ModeConvex, raster.ModeNonOverlap:
		policy := PolicyConvexFill
		if mesh.Mode == raster.ModeNonOverlap {
			policy = PolicyNonOverlap
		}
		b.calls = append(b.calls, drawCall{
			pipeline:      frag.pipeline,
			policy:        policy,
			uniformOffset: b.stage.PushUniform(frag.uniform),
			uniformSize:   uint64(len(frag.uniform)),
			vertexOffset:  vtxOff,
			indexOffset:   idxOff,
			indexCount:    uint32(len(mesh.Indices)),
			image:         frag.image,
		})

	case raster.ModeComplex, raster.ModeEvenOddFill:
		evenOdd := mesh.Mode == raster.ModeEvenOddFill
		b.stencilCall(mesh, evenOdd, vtxOff, idxOff)

		policy := PolicyComplexWinding
		if evenOdd {
			policy = PolicyComplexEvenOdd
		}
		quadVtx, quadIdx := b.pushQuad(mesh.CoverQuad())
		b.calls = append(b.calls, drawCall{
			pipeline:      frag.pipeline,
			policy:        policy,
			uniformOffset: b.stage.PushUniform(frag.uniform),
			uniformSize:   uint64(len(frag.uniform)),
			vertexOffset:  quadVtx,
			indexOffset:   quadIdx,
			indexCount:    uint32(len(coverQuadIndices)),
			image:         frag.image,
		})
	}
}

// clipPath lowers a clip into its stencil pass and depth-writing cover.
// Intersect covers the full viewport so the clip's depth lands on every
// pixel outside the path; an intersect path that rasterizes to nothing
// therefore excludes the whole scope, while a difference path that
// rasterizes to nothing removes nothing.
func (b *frameBuilder) clipPath(cmd canvas.ClipPathCommand, transform canvas.Matrix) {
	mesh := raster.FillPath(cmd.Path, cmd.Rule, transform)
	evenOdd := cmd.Rule == canvas.FillEvenOdd

	if !mesh.IsEmpty() {
		vtxOff, idxOff := b.pushMesh(mesh)
		b.stencilCall(mesh, evenOdd, vtxOff, idxOff)
	} else if cmd.Op == canvas.ClipDifference {
		return
	}

	uniform := stencilUniform(b.vw, b.vh, b.depth)
	call := drawCall{
		pipeline:      PipelineStencil,
		uniformOffset: b.stage.PushUniform(uniform),
		uniformSize:   uint64(len(uniform)),
	}

	switch cmd.Op {
	case canvas.ClipIntersect:
		call.policy = PolicyClipIntersect
		if evenOdd {
			call.policy = PolicyClipIntersectEvenOdd
		}
		call.vertexOffset, call.indexOffset = b.pushQuad(b.viewportQuad())
		call.indexCount = uint32(len(coverQuadIndices))

	case canvas.ClipDifference:
		call.policy = PolicyClipDifference
		if evenOdd {
			call.policy = PolicyClipDifferenceEvenOdd
		}
		call.vertexOffset, call.indexOffset = b.pushQuad(mesh.CoverQuad())
		call.indexCount = uint32(len(coverQuadIndices))
	}

	b.calls = append(b.calls, call)
}

// drawImage lowers an image blit into a textured quad. The quad
// corners carry the draw transform; the sampling rect in the uniform is
// the transformed destination's axis-aligned bounds, so under rotation
// the UV mapping degrades to those bounds.
func (b *frameBuilder) drawImage(cmd canvas.DrawImageCommand, transform canvas.Matrix) {
	if cmd.Image == nil || cmd.Dst.IsEmpty() {
		return
	}
	tl := transform.TransformPoint(canvas.Pt(cmd.Dst.Left, cmd.Dst.Top))
	tr := transform.TransformPoint(canvas.Pt(cmd.Dst.Right, cmd.Dst.Top))
	bl := transform.TransformPoint(canvas.Pt(cmd.Dst.Left, cmd.Dst.Bottom))
	br := transform.TransformPoint(canvas.Pt(cmd.Dst.Right, cmd.Dst.Bottom))
	quad := [8]float32{
		tl.X, tl.Y,
		tr.X, tr.Y,
		bl.X, bl.Y,
		br.X, br.Y,
	}
	uniform := textureUniform(deviceRect(cmd.Dst, transform), cmd.Alpha, b.vw, b.vh, b.depth)
	vtxOff, idxOff := b.pushQuad(quad)
	b.calls = append(b.calls, drawCall{
		pipeline:      PipelineTexture,
		policy:        PolicyNonOverlap,
		uniformOffset: b.stage.PushUniform(uniform),
		uniformSize:   uint64(len(uniform)),
		vertexOffset:  vtxOff,
		indexOffset:   idxOff,
		indexCount:    uint32(len(coverQuadIndices)),
		image:         cmd.Image,
	})
}

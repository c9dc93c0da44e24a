package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// StencilPolicy names one depth-stencil configuration of the
// stencil-and-cover renderer. Every render pipeline variant is keyed by
// a policy; DepthStencilState maps each policy to its descriptor.
//
// All policies are written against an implicit stencil reference of 0,
// the render pass default, so no dynamic stencil state is needed.
type StencilPolicy int

const (
	// PolicyConvexFill covers a convex fill directly: trivial stencil
	// test, depth tested and written for painter's ordering.
	PolicyConvexFill StencilPolicy = iota

	// PolicyNonOverlap covers stroke meshes and other geometry that
	// cannot self-overlap. Identical configuration to PolicyConvexFill,
	// kept as its own variant so pipeline selection stays total over
	// the mesh classification.
	PolicyNonOverlap

	// PolicyStencilMask accumulates the signed winding number into the
	// stencil buffer: front faces increment with wrap, back faces
	// decrement with wrap. Color writes are disabled by the pipeline.
	PolicyStencilMask

	// PolicyStencilMaskEvenOdd accumulates parity: every rasterized
	// face inverts the low stencil bit.
	PolicyStencilMaskEvenOdd

	// PolicyComplexWinding covers a non-zero fill: pass where the
	// winding count is non-zero, reset the stencil to 0 either way.
	PolicyComplexWinding

	// PolicyComplexEvenOdd covers an even-odd fill: pass where the low
	// stencil bit is set, reset the stencil to 0 either way.
	PolicyComplexEvenOdd

	// PolicyClipIntersect draws a full-viewport quad after a clip
	// path's stencil pass. Pixels outside the clip (stencil still 0)
	// pass and take the clip's depth, excluding shallower draws there;
	// pixels inside fail and have their stencil reset to 0.
	PolicyClipIntersect

	// PolicyClipIntersectEvenOdd is PolicyClipIntersect with a 1-bit
	// read mask for even-odd clip paths.
	PolicyClipIntersectEvenOdd

	// PolicyClipDifference draws the clip path's own geometry. Pixels
	// inside it (stencil non-zero) take the clip's depth, carving the
	// region out; the stencil resets to 0 everywhere it was touched.
	PolicyClipDifference

	// PolicyClipDifferenceEvenOdd is PolicyClipDifference with a 1-bit
	// read mask.
	PolicyClipDifferenceEvenOdd
)

// String returns the policy name for logs and panics.
func (p StencilPolicy) String() string {
	switch p {
	case PolicyConvexFill:
		return "convex-fill"
	case PolicyNonOverlap:
		return "non-overlap"
	case PolicyStencilMask:
		return "stencil-mask"
	case PolicyStencilMaskEvenOdd:
		return "stencil-mask-even-odd"
	case PolicyComplexWinding:
		return "complex-winding"
	case PolicyComplexEvenOdd:
		return "complex-even-odd"
	case PolicyClipIntersect:
		return "clip-intersect"
	case PolicyClipIntersectEvenOdd:
		return "clip-intersect-even-odd"
	case PolicyClipDifference:
		return "clip-difference"
	case PolicyClipDifferenceEvenOdd:
		return "clip-difference-even-odd"
	default:
		return "unknown"
	}
}

// WritesColor reports whether pipelines carrying this policy write to
// the color attachment.
func (p StencilPolicy) WritesColor() bool {
	switch p {
	case PolicyConvexFill, PolicyNonOverlap, PolicyComplexWinding, PolicyComplexEvenOdd:
		return true
	default:
		return false
	}
}

// DepthStencilState returns the depth-stencil descriptor for the
// policy. The depth buffer is cleared to 0 and compared with Greater,
// so larger normalized depths win regardless of submission order.
func (p StencilPolicy) DepthStencilState() *hal.DepthStencilState {
	ds := &hal.DepthStencilState{
		Format:           gputypes.TextureFormatDepth24PlusStencil8,
		DepthCompare:     gputypes.CompareFunctionGreater,
		StencilReadMask:  0xFF,
		StencilWriteMask: 0xFF,
	}

	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}

	switch p {
	case PolicyConvexFill, PolicyNonOverlap:
		ds.DepthWriteEnabled = true
		ds.StencilFront = keep
		ds.StencilBack = keep

	case PolicyStencilMask:
		// Winding accumulation ignores depth writes; the depth test
		// still applies so clipped-out pixels never accumulate.
		inc := keep
		inc.PassOp = hal.StencilOperationIncrementWrap
		dec := keep
		dec.PassOp = hal.StencilOperationDecrementWrap
		ds.StencilFront = inc
		ds.StencilBack = dec

	case PolicyStencilMaskEvenOdd:
		inv := keep
		inv.PassOp = hal.StencilOperationInvert
		ds.StencilFront = inv
		ds.StencilBack = inv
		ds.StencilWriteMask = 0x01

	case PolicyComplexWinding, PolicyComplexEvenOdd:
		// Cover where the stencil marks inside, resetting to 0 both on
		// depth fail and on pass so the buffer is clean afterwards.
		cover := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionNotEqual,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationZero,
			PassOp:      hal.StencilOperationZero,
		}
		ds.DepthWriteEnabled = true
		ds.StencilFront = cover
		ds.StencilBack = cover
		if p == PolicyComplexEvenOdd {
			ds.StencilReadMask = 0x01
		}

	case PolicyClipIntersect, PolicyClipIntersectEvenOdd:
		// Full-viewport quad: stencil 0 means outside the clip path,
		// where the clip's depth is written. Replace with reference 0
		// resets the mask on both branches.
		clip := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionEqual,
			FailOp:      hal.StencilOperationReplace,
			DepthFailOp: hal.StencilOperationReplace,
			PassOp:      hal.StencilOperationReplace,
		}
		ds.DepthWriteEnabled = true
		ds.StencilFront = clip
		ds.StencilBack = clip
		if p == PolicyClipIntersectEvenOdd {
			ds.StencilReadMask = 0x01
		}

	case PolicyClipDifference, PolicyClipDifferenceEvenOdd:
		// The clip path's own geometry: stencil non-zero means inside,
		// where the clip's depth carves the region out.
		clip := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionNotEqual,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationReplace,
			PassOp:      hal.StencilOperationReplace,
		}
		ds.DepthWriteEnabled = true
		ds.StencilFront = clip
		ds.StencilBack = clip
		if p == PolicyClipDifferenceEvenOdd {
			ds.StencilReadMask = 0x01
		}
	}

	return ds
}

// allPolicies lists every policy a pipeline of the given kind carries.
func allPolicies(writesColor bool) []StencilPolicy {
	if writesColor {
		return []StencilPolicy{
			PolicyConvexFill,
			PolicyNonOverlap,
			PolicyComplexWinding,
			PolicyComplexEvenOdd,
		}
	}
	return []StencilPolicy{
		PolicyStencilMask,
		PolicyStencilMaskEvenOdd,
		PolicyClipIntersect,
		PolicyClipIntersectEvenOdd,
		PolicyClipDifference,
		PolicyClipDifferenceEvenOdd,
	}
}

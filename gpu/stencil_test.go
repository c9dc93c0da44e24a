package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func TestStencilPolicyWritesColor(t *testing.T) {
	colorPolicies := map[StencilPolicy]bool{
		PolicyConvexFill:            true,
		PolicyNonOverlap:            true,
		PolicyStencilMask:           false,
		PolicyStencilMaskEvenOdd:    false,
		PolicyComplexWinding:        true,
		PolicyComplexEvenOdd:        true,
		PolicyClipIntersect:         false,
		PolicyClipIntersectEvenOdd:  false,
		PolicyClipDifference:        false,
		PolicyClipDifferenceEvenOdd: false,
	}
	for policy, want := range colorPolicies {
		if got := policy.WritesColor(); got != want {
			t.Errorf("%s.WritesColor() = %v, want %v", policy, got, want)
		}
	}
}

func TestStencilPolicyDepthCompare(t *testing.T) {
	for _, policy := range append(allPolicies(true), allPolicies(false)...) {
		ds := policy.DepthStencilState()
		if ds.Format != gputypes.TextureFormatDepth24PlusStencil8 {
			t.Errorf("%s: format = %v", policy, ds.Format)
		}
		if ds.DepthCompare != gputypes.CompareFunctionGreater {
			t.Errorf("%s: depth compare = %v, want Greater", policy, ds.DepthCompare)
		}
	}
}

func TestStencilMaskAccumulation(t *testing.T) {
	ds := PolicyStencilMask.DepthStencilState()
	if ds.DepthWriteEnabled {
		t.Error("winding accumulation must not write depth")
	}
	if ds.StencilFront.PassOp != hal.StencilOperationIncrementWrap {
		t.Errorf("front pass op = %v, want IncrementWrap", ds.StencilFront.PassOp)
	}
	if ds.StencilBack.PassOp != hal.StencilOperationDecrementWrap {
		t.Errorf("back pass op = %v, want DecrementWrap", ds.StencilBack.PassOp)
	}

	eo := PolicyStencilMaskEvenOdd.DepthStencilState()
	if eo.StencilFront.PassOp != hal.StencilOperationInvert || eo.StencilBack.PassOp != hal.StencilOperationInvert {
		t.Error("even-odd accumulation must invert on both faces")
	}
	if eo.StencilWriteMask != 0x01 {
		t.Errorf("even-odd write mask = %#x, want 0x01", eo.StencilWriteMask)
	}
}

func TestCoverPoliciesResetStencil(t *testing.T) {
	for _, policy := range []StencilPolicy{PolicyComplexWinding, PolicyComplexEvenOdd} {
		ds := policy.DepthStencilState()
		if !ds.DepthWriteEnabled {
			t.Errorf("%s must write depth", policy)
		}
		if ds.StencilFront.Compare != gputypes.CompareFunctionNotEqual {
			t.Errorf("%s: compare = %v, want NotEqual", policy, ds.StencilFront.Compare)
		}
		if ds.StencilFront.PassOp != hal.StencilOperationZero {
			t.Errorf("%s: pass op = %v, want Zero", policy, ds.StencilFront.PassOp)
		}
		if ds.StencilFront.DepthFailOp != hal.StencilOperationZero {
			t.Errorf("%s: depth fail op = %v, want Zero", policy, ds.StencilFront.DepthFailOp)
		}
	}
	if PolicyComplexEvenOdd.DepthStencilState().StencilReadMask != 0x01 {
		t.Error("even-odd cover must read only the low bit")
	}
}

func TestClipPolicies(t *testing.T) {
	inter := PolicyClipIntersect.DepthStencilState()
	if inter.StencilFront.Compare != gputypes.CompareFunctionEqual {
		t.Errorf("intersect compare = %v, want Equal", inter.StencilFront.Compare)
	}
	if !inter.DepthWriteEnabled {
		t.Error("intersect must write depth")
	}
	for _, op := range []hal.StencilOperation{
		inter.StencilFront.FailOp, inter.StencilFront.DepthFailOp, inter.StencilFront.PassOp,
	} {
		if op != hal.StencilOperationReplace {
			t.Errorf("intersect op = %v, want Replace", op)
		}
	}

	diff := PolicyClipDifference.DepthStencilState()
	if diff.StencilFront.Compare != gputypes.CompareFunctionNotEqual {
		t.Errorf("difference compare = %v, want NotEqual", diff.StencilFront.Compare)
	}
	if !diff.DepthWriteEnabled {
		t.Error("difference must write depth")
	}
	if diff.StencilFront.FailOp != hal.StencilOperationKeep {
		t.Errorf("difference fail op = %v, want Keep", diff.StencilFront.FailOp)
	}
}

func TestAllPoliciesPartition(t *testing.T) {
	seen := make(map[StencilPolicy]bool)
	for _, p := range allPolicies(true) {
		if !p.WritesColor() {
			t.Errorf("%s listed as color policy but does not write color", p)
		}
		seen[p] = true
	}
	for _, p := range allPolicies(false) {
		if p.WritesColor() {
			t.Errorf("%s listed as stencil policy but writes color", p)
		}
		if seen[p] {
			t.Errorf("%s appears in both partitions", p)
		}
		seen[p] = true
	}
	if len(seen) != 10 {
		t.Errorf("policies covered = %d, want 10", len(seen))
	}
}

package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/canvas"
)

func uniformFloat(data []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
}

func TestSolidFragmentPacking(t *testing.T) {
	frag := buildFragment(canvas.Solid(canvas.RGBA{R: 1, G: 0.5, B: 0, A: 0.5}), canvas.Identity(), 800, 600, 0.25)
	if frag.pipeline != PipelineSolid {
		t.Fatalf("pipeline = %q, want solid", frag.pipeline)
	}
	if len(frag.uniform) != solidUniformSize {
		t.Fatalf("uniform size = %d, want %d", len(frag.uniform), solidUniformSize)
	}
	if got := uniformFloat(frag.uniform, 0); got != 800 {
		t.Errorf("viewport width = %v, want 800", got)
	}
	if got := uniformFloat(frag.uniform, 2); got != 0.25 {
		t.Errorf("depth = %v, want 0.25", got)
	}
	// Color is premultiplied by alpha.
	if got := uniformFloat(frag.uniform, 4); got != 0.5 {
		t.Errorf("premultiplied red = %v, want 0.5", got)
	}
	if got := uniformFloat(frag.uniform, 5); got != 0.25 {
		t.Errorf("premultiplied green = %v, want 0.25", got)
	}
	if got := uniformFloat(frag.uniform, 7); got != 0.5 {
		t.Errorf("alpha = %v, want 0.5", got)
	}
}

func TestLinearGradientFragmentPacking(t *testing.T) {
	g := canvas.NewLinearGradient(0, 0, 100, 0).
		AddColorStop(0, canvas.Red).
		AddColorStop(1, canvas.Blue)
	frag := buildFragment(g, canvas.Identity(), 200, 200, 0.5)
	if frag.pipeline != PipelineLinearGradient {
		t.Fatalf("pipeline = %q, want linear_gradient", frag.pipeline)
	}
	if len(frag.uniform) != gradientUniformSize {
		t.Fatalf("uniform size = %d, want %d", len(frag.uniform), gradientUniformSize)
	}
	// Axis endpoints at floats 4..7.
	if got := uniformFloat(frag.uniform, 6); got != 100 {
		t.Errorf("axis end x = %v, want 100", got)
	}
	// Stop count at float 8.
	if got := uniformFloat(frag.uniform, 8); got != 2 {
		t.Errorf("stop count = %v, want 2", got)
	}
	// Second stop offset at float 13.
	if got := uniformFloat(frag.uniform, 13); got != 1 {
		t.Errorf("second stop offset = %v, want 1", got)
	}
}

func TestGradientStopsSortedInUniform(t *testing.T) {
	g := canvas.NewLinearGradient(0, 0, 100, 0).
		AddColorStop(1, canvas.Blue).
		AddColorStop(0, canvas.Red)
	frag := buildFragment(g, canvas.Identity(), 200, 200, 0.5)
	if got := uniformFloat(frag.uniform, 12); got != 0 {
		t.Errorf("first stop offset = %v, want 0", got)
	}
	// First color table entry is the offset-0 stop: red.
	if got := uniformFloat(frag.uniform, 28); got != 1 {
		t.Errorf("first stop red = %v, want 1", got)
	}
}

func TestLinearGradientFollowsDrawTransform(t *testing.T) {
	g := canvas.NewLinearGradient(0, 0, 100, 0).
		AddColorStop(0, canvas.Red).
		AddColorStop(1, canvas.Blue)
	frag := buildFragment(g, canvas.Translate(50, 20), 200, 200, 0.5)
	if got := uniformFloat(frag.uniform, 4); got != 50 {
		t.Errorf("axis start x = %v, want 50", got)
	}
	if got := uniformFloat(frag.uniform, 5); got != 20 {
		t.Errorf("axis start y = %v, want 20", got)
	}
	if got := uniformFloat(frag.uniform, 6); got != 150 {
		t.Errorf("axis end x = %v, want 150", got)
	}
}

func TestRadialGradientFollowsDrawTransform(t *testing.T) {
	g := canvas.NewRadialGradient(10, 10, 0, 20).
		AddColorStop(0, canvas.Red).
		AddColorStop(1, canvas.Blue)
	frag := buildFragment(g, canvas.Scale(2, 2), 200, 200, 0.5)
	if got := uniformFloat(frag.uniform, 4); got != 20 {
		t.Errorf("center x = %v, want 20", got)
	}
	if got := uniformFloat(frag.uniform, 7); got != 40 {
		t.Errorf("end radius = %v, want 40", got)
	}
}

func TestImageBrushFollowsDrawTransform(t *testing.T) {
	img, err := canvas.NewImage(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	frag := buildFragment(canvas.NewImageBrush(img), canvas.Translate(30, 40), 100, 100, 0.5)
	if got := uniformFloat(frag.uniform, 4); got != 30 {
		t.Errorf("rect x = %v, want 30", got)
	}
	if got := uniformFloat(frag.uniform, 5); got != 40 {
		t.Errorf("rect y = %v, want 40", got)
	}
	if got := uniformFloat(frag.uniform, 6); got != 4 {
		t.Errorf("rect width = %v, want 4", got)
	}
}

func TestDegenerateGradientFallsBackToSolid(t *testing.T) {
	// Zero axis.
	zero := canvas.NewLinearGradient(10, 10, 10, 10).AddColorStop(0, canvas.Red)
	if frag := buildFragment(zero, canvas.Identity(), 100, 100, 0.5); frag.pipeline != PipelineSolid {
		t.Errorf("zero-axis gradient pipeline = %q, want solid", frag.pipeline)
	}

	// No stops.
	empty := canvas.NewRadialGradient(0, 0, 0, 50)
	if frag := buildFragment(empty, canvas.Identity(), 100, 100, 0.5); frag.pipeline != PipelineSolid {
		t.Errorf("stopless gradient pipeline = %q, want solid", frag.pipeline)
	}

	// Zero radius span.
	flat := canvas.NewRadialGradient(0, 0, 50, 50).AddColorStop(0, canvas.Red)
	if frag := buildFragment(flat, canvas.Identity(), 100, 100, 0.5); frag.pipeline != PipelineSolid {
		t.Errorf("zero-span gradient pipeline = %q, want solid", frag.pipeline)
	}
}

func TestSingleStopGradientUsesStopColor(t *testing.T) {
	g := canvas.NewLinearGradient(0, 0, 100, 0).AddColorStop(0.5, canvas.Green)
	frag := buildFragment(g, canvas.Identity(), 100, 100, 0.5)
	if frag.pipeline != PipelineSolid {
		t.Fatalf("pipeline = %q, want solid", frag.pipeline)
	}
	if got := uniformFloat(frag.uniform, 5); got != 1 {
		t.Errorf("green = %v, want 1", got)
	}
}

func TestGradientStopTruncation(t *testing.T) {
	g := canvas.NewLinearGradient(0, 0, 100, 0)
	for i := 0; i < canvas.MaxColorStops+5; i++ {
		g.AddColorStop(float32(i)/float32(canvas.MaxColorStops+4), canvas.Red)
	}
	frag := buildFragment(g, canvas.Identity(), 100, 100, 0.5)
	if frag.pipeline != PipelineLinearGradient {
		t.Fatalf("pipeline = %q, want linear_gradient", frag.pipeline)
	}
	if got := uniformFloat(frag.uniform, 8); got != float32(canvas.MaxColorStops) {
		t.Errorf("stop count = %v, want %d", got, canvas.MaxColorStops)
	}
}

func TestTextureUniformPacking(t *testing.T) {
	data := textureUniform(canvas.RectXYWH(10, 20, 30, 40), 0.5, 800, 600, 0.75)
	if len(data) != textureUniformSize {
		t.Fatalf("uniform size = %d, want %d", len(data), textureUniformSize)
	}
	if got := uniformFloat(data, 4); got != 10 {
		t.Errorf("rect x = %v, want 10", got)
	}
	if got := uniformFloat(data, 6); got != 30 {
		t.Errorf("rect width = %v, want 30", got)
	}
	if got := uniformFloat(data, 8); got != 0.5 {
		t.Errorf("alpha = %v, want 0.5", got)
	}
}

func TestImageBrushFragment(t *testing.T) {
	img, err := canvas.NewImage(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	frag := buildFragment(canvas.NewImageBrush(img), canvas.Identity(), 100, 100, 0.5)
	if frag.pipeline != PipelineTexture {
		t.Fatalf("pipeline = %q, want texture", frag.pipeline)
	}
	if frag.image != img {
		t.Error("fragment does not carry the brush image")
	}

	nilBrush := &canvas.ImageBrush{}
	if frag := buildFragment(nilBrush, canvas.Identity(), 100, 100, 0.5); frag.pipeline != PipelineSolid {
		t.Errorf("nil-image brush pipeline = %q, want solid", frag.pipeline)
	}
}

func TestStencilUniformSize(t *testing.T) {
	if got := len(stencilUniform(100, 100, 0.5)); got != stencilUniformSize {
		t.Errorf("stencil uniform size = %d, want %d", got, stencilUniformSize)
	}
}

package canvas

import "testing"

func TestSolidBrushColorAt(t *testing.T) {
	b := Solid(Red)
	if got := b.ColorAt(123, -45); got != Red {
		t.Errorf("ColorAt = %v, want red", got)
	}
}

func TestLinearGradientColorAt(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0).
		AddColorStop(0, Black).
		AddColorStop(1, White)

	if got := g.ColorAt(0, 50); got != Black {
		t.Errorf("at start = %v, want black", got)
	}
	if got := g.ColorAt(100, 50); got != White {
		t.Errorf("at end = %v, want white", got)
	}
	mid := g.ColorAt(50, 0)
	if abs(mid.R-0.5) > 1e-5 {
		t.Errorf("midpoint = %v, want 0.5 gray", mid)
	}
	// Pad extend clamps past the ends.
	if got := g.ColorAt(500, 0); got != White {
		t.Errorf("past end = %v, want white", got)
	}
}

func TestLinearGradientUnsortedStops(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0).
		AddColorStop(1, White).
		AddColorStop(0, Black)
	if got := g.ColorAt(0, 0); got != Black {
		t.Errorf("unsorted stops: at start = %v, want black", got)
	}
}

func TestRadialGradientColorAt(t *testing.T) {
	g := NewRadialGradient(50, 50, 0, 10).
		AddColorStop(0, White).
		AddColorStop(1, Black)

	if got := g.ColorAt(50, 50); got != White {
		t.Errorf("center = %v, want white", got)
	}
	if got := g.ColorAt(50, 80); got != Black {
		t.Errorf("outside = %v, want black", got)
	}
}

func TestDegenerateGradientIsBlack(t *testing.T) {
	g := NewLinearGradient(5, 5, 5, 5).AddColorStop(0, Red)
	if got := g.ColorAt(5, 5); got != Black {
		t.Errorf("zero-length gradient = %v, want opaque black", got)
	}

	r := NewRadialGradient(0, 0, 10, 10).AddColorStop(0, Red)
	if got := r.ColorAt(3, 3); got != Black {
		t.Errorf("zero-span radial = %v, want opaque black", got)
	}
}

func TestExtendModes(t *testing.T) {
	if got := applyExtendMode(1.25, ExtendRepeat); abs(got-0.25) > 1e-6 {
		t.Errorf("repeat(1.25) = %v, want 0.25", got)
	}
	if got := applyExtendMode(1.25, ExtendReflect); abs(got-0.75) > 1e-6 {
		t.Errorf("reflect(1.25) = %v, want 0.75", got)
	}
	if got := applyExtendMode(-0.5, ExtendPad); got != 0 {
		t.Errorf("pad(-0.5) = %v, want 0", got)
	}
}

func TestImageBrushSamples(t *testing.T) {
	img, err := NewImage(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	img.Set(0, 0, Red)
	img.Set(1, 1, Blue)

	b := NewImageBrush(img)
	if got := b.ColorAt(0, 0); got != Red {
		t.Errorf("(0,0) = %v, want red", got)
	}
	if got := b.ColorAt(1, 1); got != Blue {
		t.Errorf("(1,1) = %v, want blue", got)
	}
	// Sampling clamps outside the image.
	if got := b.ColorAt(99, 99); got != Blue {
		t.Errorf("clamped sample = %v, want blue", got)
	}
}

package canvas

import (
	"math"
	"sort"
)

// MaxColorStops is the largest number of color stops a gradient brush
// may carry. The gradient uniform block on the GPU has a fixed-size
// stop array; extra stops are dropped at render time.
const MaxColorStops = 16

// Brush represents what to paint with.
// This is a sealed interface - only types in this package implement it.
//
// Supported brush types:
//   - SolidBrush: a single solid color
//   - LinearGradientBrush: a linear transition between two points
//   - RadialGradientBrush: a circular transition around a center
//   - ImageBrush: pixels sampled from an Image
type Brush interface {
	// brushMarker is an unexported method that seals this interface.
	// Only types in this package can implement Brush.
	brushMarker()

	// ColorAt returns the color at the given coordinates in brush
	// space. For solid brushes this is constant.
	ColorAt(x, y float32) RGBA
}

// SolidBrush is a single-color brush.
// It implements the Brush interface and always returns the same color.
type SolidBrush struct {
	// Color is the solid color of this brush.
	Color RGBA
}

// brushMarker implements the sealed Brush interface.
func (SolidBrush) brushMarker() {}

// ColorAt implements Brush. Returns the solid color regardless of position.
func (b SolidBrush) ColorAt(_, _ float32) RGBA {
	return b.Color
}

// Solid creates a SolidBrush from an RGBA color.
func Solid(c RGBA) SolidBrush { return SolidBrush{Color: c} }

// SolidRGB creates an opaque SolidBrush from RGB components in [0, 1].
func SolidRGB(r, g, b float32) SolidBrush { return SolidBrush{Color: RGB(r, g, b)} }

// SolidHex creates a SolidBrush from a hex color string.
func SolidHex(s string) SolidBrush { return SolidBrush{Color: Hex(s)} }

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float32 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// sortStops returns a copy of stops sorted by offset.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applyExtendMode normalizes t to [0, 1] according to mode.
func applyExtendMode(t float32, mode ExtendMode) float32 {
	switch mode {
	case ExtendRepeat:
		t = float32(math.Mod(float64(t), 1))
		if t < 0 {
			t += 1
		}
		return t
	case ExtendReflect:
		t = float32(math.Mod(float64(t), 2))
		if t < 0 {
			t += 2
		}
		if t > 1 {
			t = 2 - t
		}
		return t
	default:
		return min(max(t, 0), 1)
	}
}

// colorAtOffset evaluates sorted stops at parameter t in [0, 1].
func colorAtOffset(stops []ColorStop, t float32) RGBA {
	if len(stops) == 0 {
		return Black
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			prev := stops[i-1]
			span := stops[i].Offset - prev.Offset
			if span <= 0 {
				return stops[i].Color
			}
			return prev.Color.Lerp(stops[i].Color, (t-prev.Offset)/span)
		}
	}
	return last.Color
}

// LinearGradientBrush is a linear color transition between two points.
type LinearGradientBrush struct {
	Start  Point       // Start point of the gradient
	End    Point       // End point of the gradient
	Stops  []ColorStop // Color stops defining the gradient
	Extend ExtendMode  // How gradient extends beyond bounds
}

// NewLinearGradient creates a linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float32) *LinearGradientBrush {
	return &LinearGradientBrush{Start: Pt(x0, y0), End: Pt(x1, y1)}
}

// AddColorStop adds a color stop at the specified offset.
// Offset should be in the range [0, 1].
// Returns the gradient for method chaining.
func (g *LinearGradientBrush) AddColorStop(offset float32, c RGBA) *LinearGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// SetExtend sets the extend mode. Returns the gradient for chaining.
func (g *LinearGradientBrush) SetExtend(mode ExtendMode) *LinearGradientBrush {
	g.Extend = mode
	return g
}

// brushMarker implements the sealed Brush interface.
func (*LinearGradientBrush) brushMarker() {}

// ColorAt implements Brush by projecting (x, y) onto the gradient axis.
func (g *LinearGradientBrush) ColorAt(x, y float32) RGBA {
	d := g.End.Sub(g.Start)
	lenSq := d.Dot(d)
	if lenSq == 0 || len(g.Stops) == 0 {
		return Black
	}
	t := Pt(x, y).Sub(g.Start).Dot(d) / lenSq
	return colorAtOffset(sortStops(g.Stops), applyExtendMode(t, g.Extend))
}

// RadialGradientBrush is a circular color transition around a center
// point, from an inner radius to an outer radius.
type RadialGradientBrush struct {
	Center      Point       // Center of the gradient
	StartRadius float32     // Radius where the first stop applies
	EndRadius   float32     // Radius where the last stop applies
	Stops       []ColorStop // Color stops defining the gradient
	Extend      ExtendMode  // How gradient extends beyond bounds
}

// NewRadialGradient creates a radial gradient centered at (cx, cy)
// running from startRadius out to endRadius.
func NewRadialGradient(cx, cy, startRadius, endRadius float32) *RadialGradientBrush {
	return &RadialGradientBrush{
		Center:      Pt(cx, cy),
		StartRadius: startRadius,
		EndRadius:   endRadius,
	}
}

// AddColorStop adds a color stop at the specified offset.
// Returns the gradient for method chaining.
func (g *RadialGradientBrush) AddColorStop(offset float32, c RGBA) *RadialGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// SetExtend sets the extend mode. Returns the gradient for chaining.
func (g *RadialGradientBrush) SetExtend(mode ExtendMode) *RadialGradientBrush {
	g.Extend = mode
	return g
}

// brushMarker implements the sealed Brush interface.
func (*RadialGradientBrush) brushMarker() {}

// ColorAt implements Brush using the distance from the gradient center.
func (g *RadialGradientBrush) ColorAt(x, y float32) RGBA {
	span := g.EndRadius - g.StartRadius
	if span <= 0 || len(g.Stops) == 0 {
		return Black
	}
	t := (Pt(x, y).Distance(g.Center) - g.StartRadius) / span
	return colorAtOffset(sortStops(g.Stops), applyExtendMode(t, g.Extend))
}

// ImageBrush samples colors from an Image. LocalMatrix maps painted
// coordinates into image space before sampling.
type ImageBrush struct {
	Image       *Image
	LocalMatrix Matrix
}

// NewImageBrush creates an ImageBrush with an identity local matrix.
func NewImageBrush(img *Image) *ImageBrush {
	return &ImageBrush{Image: img, LocalMatrix: Identity()}
}

// brushMarker implements the sealed Brush interface.
func (*ImageBrush) brushMarker() {}

// ColorAt implements Brush with nearest-neighbor sampling, clamping
// coordinates to the image bounds.
func (b *ImageBrush) ColorAt(x, y float32) RGBA {
	if b.Image == nil {
		return Transparent
	}
	p := b.LocalMatrix.TransformPoint(Pt(x, y))
	return b.Image.At(int(p.X), int(p.Y))
}

package canvas

import (
	"fmt"
	"image/color"
)

// RGBA is a color with float32 components in the range [0, 1].
// Components are non-premultiplied; Premultiply converts to the form
// the GPU blend state expects.
type RGBA struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = RGBA{0, 0, 0, 1}
	White       = RGBA{1, 1, 1, 1}
	Red         = RGBA{1, 0, 0, 1}
	Green       = RGBA{0, 1, 0, 1}
	Blue        = RGBA{0, 0, 1, 1}
	Transparent = RGBA{0, 0, 0, 0}
)

// RGB creates an opaque color from RGB components in [0, 1].
func RGB(r, g, b float32) RGBA { return RGBA{R: r, G: g, B: b, A: 1} }

// Hex parses a color from a hex string such as "#RRGGBB" or "#RRGGBBAA".
// The leading '#' is optional. Returns opaque black on malformed input.
func Hex(s string) RGBA {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b, a uint8 = 0, 0, 0, 255
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Black
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return Black
		}
	default:
		return Black
	}
	return RGBA{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// FromColor converts a standard library color.Color.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// color.Color returns premultiplied 16-bit components.
	fa := float32(a) / 0xffff
	return RGBA{
		R: float32(r) / float32(a),
		G: float32(g) / float32(a),
		B: float32(b) / float32(a),
		A: fa,
	}
}

// Premultiply returns the color with RGB scaled by alpha.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// WithAlpha returns the color with its alpha replaced by a.
func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = a
	return c
}

// Lerp linearly interpolates between c and d at parameter t.
func (c RGBA) Lerp(d RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// Color converts to a standard library color.Color.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: clamp255(c.R),
		G: clamp255(c.G),
		B: clamp255(c.B),
		A: clamp255(c.A),
	}
}

func clamp255(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

package canvas

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// ImageInfo describes the dimensions of an Image.
type ImageInfo struct {
	Width  int
	Height int
}

// Image is an immutable RGBA8 pixel buffer used as a texture source by
// ImageBrush and Surface uploads. Pixels are stored non-premultiplied
// in row-major order.
type Image struct {
	info ImageInfo
	pix  []uint8 // 4 bytes per pixel, RGBA
}

// NewImage creates a transparent image of the given size.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: invalid image size %dx%d", width, height)
	}
	return &Image{
		info: ImageInfo{Width: width, Height: height},
		pix:  make([]uint8, width*height*4),
	}, nil
}

// ImageFromImage converts any image.Image into an Image, resampling
// pixel formats as needed.
func ImageFromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	img, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	dst := &image.NRGBA{
		Pix:    img.pix,
		Stride: img.info.Width * 4,
		Rect:   image.Rect(0, 0, img.info.Width, img.info.Height),
	}
	xdraw.Draw(dst, dst.Rect, src, b.Min, xdraw.Src)
	return img, nil
}

// Resize returns a copy of the image scaled to the given size using
// Catmull-Rom resampling.
func (img *Image) Resize(width, height int) (*Image, error) {
	out, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}
	src := &image.NRGBA{
		Pix:    img.pix,
		Stride: img.info.Width * 4,
		Rect:   image.Rect(0, 0, img.info.Width, img.info.Height),
	}
	dst := &image.NRGBA{
		Pix:    out.pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
	return out, nil
}

// Info returns the image dimensions.
func (img *Image) Info() ImageInfo { return img.info }

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.info.Width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.info.Height }

// Pix returns the raw RGBA8 pixel data. The slice is shared; callers
// must not modify it.
func (img *Image) Pix() []uint8 { return img.pix }

// At returns the color at (x, y), clamping coordinates to the image
// bounds.
func (img *Image) At(x, y int) RGBA {
	x = min(max(x, 0), img.info.Width-1)
	y = min(max(y, 0), img.info.Height-1)
	i := (y*img.info.Width + x) * 4
	return RGBA{
		R: float32(img.pix[i]) / 255,
		G: float32(img.pix[i+1]) / 255,
		B: float32(img.pix[i+2]) / 255,
		A: float32(img.pix[i+3]) / 255,
	}
}

// Set writes the color at (x, y). Out-of-bounds writes are ignored.
func (img *Image) Set(x, y int, c RGBA) {
	if x < 0 || y < 0 || x >= img.info.Width || y >= img.info.Height {
		return
	}
	i := (y*img.info.Width + x) * 4
	img.pix[i] = clamp255(c.R)
	img.pix[i+1] = clamp255(c.G)
	img.pix[i+2] = clamp255(c.B)
	img.pix[i+3] = clamp255(c.A)
}

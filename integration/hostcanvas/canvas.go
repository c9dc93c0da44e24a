package hostcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/gpu"
	"github.com/gogpu/gpucontext"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a
	// closed canvas.
	ErrCanvasClosed = errors.New("hostcanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("hostcanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("hostcanvas: nil DeviceProvider")

	// ErrInvalidRenderer is returned when the draw context cannot
	// create textures.
	ErrInvalidRenderer = errors.New("hostcanvas: drawer has no texture creator")
)

// textureDestroyer matches the host texture's Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Canvas records pictures and renders them on the host's GPU device.
//
// Canvas is NOT safe for concurrent use. Create one Canvas per
// goroutine, or use external synchronization.
type Canvas struct {
	ctx     *gpu.Context
	surface *gpu.Surface
	rec     *canvas.PictureRecorder
	texture any
	pixels  *canvas.Image
	dirty   bool
	width   int
	height  int
	closed  bool
}

// New creates a Canvas rendering on the provider's shared device. The
// provider must come from a gogpu host and expose its hal device, as
// gogpu.App.GPUContextProvider() does.
func New(provider gpucontext.DeviceProvider, width, height int) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	ctx, err := gpu.ContextFromProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("hostcanvas: %w", err)
	}

	surface, err := gpu.NewSurface(ctx, gpu.SurfaceOptions{
		Width:  uint32(width),
		Height: uint32(height),
		Format: provider.SurfaceFormat(),
	})
	if err != nil {
		ctx.Destroy()
		return nil, fmt.Errorf("hostcanvas: create surface: %w", err)
	}

	return &Canvas{
		ctx:     ctx,
		surface: surface,
		rec:     canvas.NewPictureRecorder(float32(width), float32(height)),
		width:   width,
		height:  height,
	}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Recorder returns the active picture recorder. Draws recorded on it
// appear after the next Flush or RenderTo.
//
// Returns nil if the canvas is closed.
func (c *Canvas) Recorder() *canvas.PictureRecorder {
	if c.closed {
		return nil
	}
	return c.rec
}

// Draw calls fn with the active recorder and marks the canvas dirty.
func (c *Canvas) Draw(fn func(*canvas.PictureRecorder)) error {
	if c.closed {
		return ErrCanvasClosed
	}
	fn(c.rec)
	c.dirty = true
	return nil
}

// IsDirty reports whether recorded draws await a flush.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Flush renders the recorded picture on the shared device and reads
// the result back for presentation. A fresh recorder replaces the
// finished one.
func (c *Canvas) Flush() error {
	if c.closed {
		return ErrCanvasClosed
	}
	if !c.dirty && c.pixels != nil {
		return nil
	}

	pic := c.rec.Finish()
	c.rec = canvas.NewPictureRecorder(float32(c.width), float32(c.height))

	c.surface.Replay(pic)
	if err := c.surface.Flush(); err != nil {
		return fmt.Errorf("hostcanvas: flush surface: %w", err)
	}

	pixels, err := c.surface.ReadPixels()
	if err != nil {
		return fmt.Errorf("hostcanvas: read pixels: %w", err)
	}
	c.pixels = pixels
	c.dirty = false
	return nil
}

// RenderTo flushes pending draws and presents the canvas through the
// host's texture drawer at position (x, y).
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer, x, y float32) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if err := c.Flush(); err != nil {
		return err
	}

	data := c.pixels.Pix()
	if c.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		tex, err := creator.NewTextureFromRGBA(c.width, c.height, data)
		if err != nil {
			return fmt.Errorf("hostcanvas: create texture: %w", err)
		}
		// Surface output carries premultiplied alpha.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		c.texture = tex
	} else if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return fmt.Errorf("hostcanvas: update texture: %w", err)
		}
	}

	gpuTex, ok := c.texture.(gpucontext.Texture)
	if !ok {
		return ErrInvalidRenderer
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// Close releases the surface and any host texture. Close is
// idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if destroyer, ok := c.texture.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	c.texture = nil
	c.surface.Destroy()
	c.ctx.Destroy()
	return nil
}

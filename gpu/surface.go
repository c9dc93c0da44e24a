package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/canvas"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Defaults for SurfaceOptions zero values.
const (
	defaultSampleCount = 4
	copyPitchAlignment = 256
	gpuWaitTimeout     = 5 * time.Second
)

// ErrInvalidSurfaceSize is returned when a surface is created with a
// non-positive dimension.
var ErrInvalidSurfaceSize = errors.New("gpu: surface width and height must be positive")

// ErrGPUTimeout is returned when a fence wait exceeds gpuWaitTimeout
// without the device reporting an error.
var ErrGPUTimeout = errors.New("gpu: wait for GPU timed out")

// fenceWaitErr folds a fence wait result into a single error,
// distinguishing a timeout from a device failure.
func fenceWaitErr(signaled bool, err error) error {
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !signaled {
		return ErrGPUTimeout
	}
	return nil
}

// SurfaceOptions configures a render surface. Zero values select
// BGRA8Unorm, 4x MSAA and a transparent clear color.
type SurfaceOptions struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	SampleCount uint32
	ClearColor  canvas.RGBA
}

// Surface is an offscreen render target. Pictures are replayed onto it
// and flushed in a single render pass; the resolved pixels can then be
// read back.
type Surface struct {
	ctx        *Context
	width      uint32
	height     uint32
	format     gputypes.TextureFormat
	samples    uint32
	clearColor canvas.RGBA

	msaaTex     hal.Texture
	msaaView    hal.TextureView
	depthTex    hal.Texture
	depthView   hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView

	stage *StageBuffer
	calls []drawCall
}

// pipelineNames lists every pipeline a surface preloads.
var pipelineNames = []string{
	PipelineStencil,
	PipelineSolid,
	PipelineLinearGradient,
	PipelineRadialGradient,
	PipelineTexture,
}

// NewSurface creates an offscreen surface and loads every pipeline for
// its format and sample count.
func NewSurface(ctx *Context, opts SurfaceOptions) (*Surface, error) {
	if opts.Width == 0 || opts.Height == 0 {
		return nil, ErrInvalidSurfaceSize
	}
	format := opts.Format
	if format == 0 {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	samples := opts.SampleCount
	if samples == 0 {
		samples = defaultSampleCount
	}

	s := &Surface{
		ctx:        ctx,
		width:      opts.Width,
		height:     opts.Height,
		format:     format,
		samples:    samples,
		clearColor: opts.ClearColor,
		stage:      NewStageBuffer(),
	}

	for _, name := range pipelineNames {
		if err := ctx.LoadPipeline(name, format, samples); err != nil {
			return nil, fmt.Errorf("load %s pipeline: %w", name, err)
		}
	}

	if err := s.createTextures(); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() uint32 { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() uint32 { return s.height }

func (s *Surface) createTextures() error {
	device := s.ctx.Device()
	size := hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1}

	msaaTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "surface_msaa_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   s.samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        s.format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create MSAA color texture: %w", err)
	}
	s.msaaTex = msaaTex

	msaaView, err := device.CreateTextureView(msaaTex, &hal.TextureViewDescriptor{
		Label: "surface_msaa_color_view",
	})
	if err != nil {
		return fmt.Errorf("create MSAA color view: %w", err)
	}
	s.msaaView = msaaView

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "surface_depth_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   s.samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth/stencil texture: %w", err)
	}
	s.depthTex = depthTex

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "surface_depth_stencil_view",
	})
	if err != nil {
		return fmt.Errorf("create depth/stencil view: %w", err)
	}
	s.depthView = depthView

	resolveTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "surface_resolve",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        s.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create resolve texture: %w", err)
	}
	s.resolveTex = resolveTex

	resolveView, err := device.CreateTextureView(resolveTex, &hal.TextureViewDescriptor{
		Label: "surface_resolve_view",
	})
	if err != nil {
		return fmt.Errorf("create resolve view: %w", err)
	}
	s.resolveView = resolveView

	return nil
}

// Replay lowers a picture's draw list onto the surface. Multiple
// pictures can be replayed before a single Flush; their draws stack in
// call order.
func (s *Surface) Replay(pic *canvas.Picture) {
	if pic == nil {
		return
	}
	s.calls = append(s.calls, buildFrame(pic, s.stage, float32(s.width), float32(s.height))...)
}

// frameResources are the transient objects of one flush.
type frameResources struct {
	buffer       hal.Buffer
	bindGroups   []hal.BindGroup
	textures     []hal.Texture
	textureViews []hal.TextureView
}

func (f *frameResources) destroy(device hal.Device) {
	for _, bg := range f.bindGroups {
		device.DestroyBindGroup(bg)
	}
	for _, v := range f.textureViews {
		device.DestroyTextureView(v)
	}
	for _, t := range f.textures {
		device.DestroyTexture(t)
	}
	if f.buffer != nil {
		device.DestroyBuffer(f.buffer)
	}
}

// uploadImage creates a texture holding the image's pixels and returns
// its view. The resources are recorded for end-of-frame cleanup.
func (s *Surface) uploadImage(img *canvas.Image, res *frameResources) (hal.TextureView, error) {
	device := s.ctx.Device()
	w := uint32(img.Width())
	h := uint32(img.Height())

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "surface_image",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create image texture: %w", err)
	}
	res.textures = append(res.textures, tex)

	s.ctx.Queue().WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		img.Pix(),
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "surface_image_view",
	})
	if err != nil {
		return nil, fmt.Errorf("create image texture view: %w", err)
	}
	res.textureViews = append(res.textureViews, view)
	return view, nil
}

// buildBindGroups creates one bind group per draw call against the
// shared frame buffer.
func (s *Surface) buildBindGroups(res *frameResources) error {
	device := s.ctx.Device()
	imageViews := make(map[*canvas.Image]hal.TextureView)

	for i := range s.calls {
		call := &s.calls[i]
		pipe := s.ctx.GetPipeline(call.pipeline, s.format, s.samples)

		entries := []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: res.buffer.NativeHandle(),
				Offset: call.uniformOffset,
				Size:   call.uniformSize,
			}},
		}
		if call.image != nil {
			view, ok := imageViews[call.image]
			if !ok {
				var err error
				view, err = s.uploadImage(call.image, res)
				if err != nil {
					return err
				}
				imageViews[call.image] = view
			}
			entries = append(entries,
				gputypes.BindGroupEntry{Binding: 1, Resource: gputypes.TextureViewBinding{
					TextureView: view.NativeHandle(),
				}},
				gputypes.BindGroupEntry{Binding: 2, Resource: gputypes.SamplerBinding{
					Sampler: pipe.Sampler().NativeHandle(),
				}},
			)
		}

		bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   "surface_draw_bind",
			Layout:  pipe.BindGroupLayout(),
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("create bind group: %w", err)
		}
		res.bindGroups = append(res.bindGroups, bg)
	}
	return nil
}

// Flush uploads all staged data and executes every replayed draw in a
// single render pass. The surface is cleared to its clear color first;
// the depth buffer clears to 0 so larger depths win.
func (s *Surface) Flush() error {
	device := s.ctx.Device()
	queue := s.ctx.Queue()

	res := &frameResources{}
	defer func() {
		res.destroy(device)
		s.stage.Reset()
		s.calls = s.calls[:0]
	}()

	buf, err := s.stage.Upload(device, queue, "surface_frame")
	if err != nil {
		return fmt.Errorf("upload frame buffer: %w", err)
	}
	res.buffer = buf

	if err := s.buildBindGroups(res); err != nil {
		return err
	}

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "surface_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("surface_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	clear := s.clearColor.Premultiply()
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "surface_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:          s.msaaView,
			ResolveTarget: s.resolveView,
			LoadOp:        gputypes.LoadOpClear,
			StoreOp:       gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear.R), G: float64(clear.G),
				B: float64(clear.B), A: float64(clear.A),
			},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              s.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   0.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		},
	})

	for i := range s.calls {
		call := &s.calls[i]
		pipe := s.ctx.GetPipeline(call.pipeline, s.format, s.samples)
		rp.SetPipeline(pipe.Variant(call.policy))
		rp.SetBindGroup(0, res.bindGroups[i], nil)
		rp.SetVertexBuffer(0, res.buffer, call.vertexOffset)
		rp.SetIndexBuffer(res.buffer, gputypes.IndexFormatUint32, call.indexOffset)
		rp.DrawIndexed(call.indexCount, 1, 0, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := fenceWaitErr(device.Wait(fence, 1, gpuWaitTimeout)); err != nil {
		return err
	}

	slogger().Debug("surface flushed", "draws", len(s.calls), "staged", s.stage.Len())
	return nil
}

// ReadPixels copies the resolved surface contents into a new image.
func (s *Surface) ReadPixels() (*canvas.Image, error) {
	device := s.ctx.Device()
	queue := s.ctx.Queue()

	bytesPerRow := s.width * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(s.height)

	stagingBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "surface_readback",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(stagingBuf)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "surface_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("surface_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(s.resolveTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: s.height},
		TextureBase:  hal.ImageCopyTexture{Texture: s.resolveTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	if err := fenceWaitErr(device.Wait(fence, 1, gpuWaitTimeout)); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img, err := canvas.NewImage(int(s.width), int(s.height))
	if err != nil {
		return nil, err
	}
	pix := img.Pix()
	swapChannels := s.format == gputypes.TextureFormatBGRA8Unorm
	for row := uint32(0); row < s.height; row++ {
		src := readback[row*alignedBytesPerRow:]
		dst := pix[row*bytesPerRow:]
		copy(dst[:bytesPerRow], src[:bytesPerRow])
		if swapChannels {
			for x := uint32(0); x < bytesPerRow; x += 4 {
				dst[x], dst[x+2] = dst[x+2], dst[x]
			}
		}
	}
	return img, nil
}

// Destroy releases all surface textures. The context and its pipelines
// stay alive for other surfaces.
func (s *Surface) Destroy() {
	device := s.ctx.Device()
	if s.resolveView != nil {
		device.DestroyTextureView(s.resolveView)
		s.resolveView = nil
	}
	if s.resolveTex != nil {
		device.DestroyTexture(s.resolveTex)
		s.resolveTex = nil
	}
	if s.depthView != nil {
		device.DestroyTextureView(s.depthView)
		s.depthView = nil
	}
	if s.depthTex != nil {
		device.DestroyTexture(s.depthTex)
		s.depthTex = nil
	}
	if s.msaaView != nil {
		device.DestroyTextureView(s.msaaView)
		s.msaaView = nil
	}
	if s.msaaTex != nil {
		device.DestroyTexture(s.msaaTex)
		s.msaaTex = nil
	}
	s.stage.Reset()
	s.calls = nil
}

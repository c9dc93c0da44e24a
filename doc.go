// Package canvas is a GPU-accelerated 2D vector graphics engine.
//
// Drawing is recorded into a Picture through a PictureRecorder, then
// replayed onto a Surface which rasterizes paths into triangle meshes
// and renders them with a stencil-and-cover technique on top of
// github.com/gogpu/wgpu.
//
// A minimal session looks like:
//
//	rec := canvas.NewPictureRecorder(800, 600)
//	paint := canvas.NewPaint()
//	paint.Brush = canvas.Solid(canvas.RGB(0.8, 0.2, 0.2))
//	rec.DrawCircle(400, 300, 120, paint)
//	pic := rec.Finish()
//
//	ctx := gpu.NewContext(device, queue)
//	surf, err := gpu.NewSurface(ctx, gpu.SurfaceOptions{Width: 800, Height: 600})
//	...
//	surf.Replay(pic)
//	surf.Flush()
//
// Paths, paints and brushes live in this package; the GPU side lives in
// the gpu subpackage and the CPU-side geometry pipeline in internal/.
package canvas

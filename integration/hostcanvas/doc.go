// Package hostcanvas embeds a canvas surface inside a gogpu host
// application. The host shares its GPU device through a
// gpucontext.DeviceProvider; pictures recorded on the canvas render on
// that device and present through the host's texture drawer.
//
// Typical use:
//
//	cv, err := hostcanvas.New(app.GPUContextProvider(), 800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer cv.Close()
//
//	cv.Draw(func(rec *canvas.PictureRecorder) {
//		paint := canvas.NewPaint()
//		paint.SetColor(canvas.Red)
//		rec.DrawCircle(400, 300, 100, paint)
//	})
//
//	app.OnDraw(func(dc *gogpu.Context) {
//		cv.RenderTo(dc.AsTextureDrawer())
//	})
package hostcanvas

package canvas

// clipScope tracks the clip draws issued inside one save/restore level.
// Indices point into the recorder's draw list.
type clipScope struct {
	clipIndices []int
}

// PictureRecorder records drawing commands and produces a Picture.
//
// Depth bookkeeping: every draw allocates the next depth value. Clip
// draws are the exception; they are appended with a placeholder depth
// of 0 and receive real depths only when their scope closes, most
// recently issued clip first. Closing assigns the scope's clips a
// contiguous depth block above everything drawn inside the scope, so
// a clip's stencil-and-cover passes resolve after the draws it covers
// while still preceding everything recorded after restore.
type PictureRecorder struct {
	matrixStack  []Matrix
	clipStack    []clipScope
	draws        []Draw
	currentDepth uint32
	width        float32
	height       float32
	finished     bool
}

// NewPictureRecorder creates a recorder for a picture of the given
// logical size.
func NewPictureRecorder(width, height float32) *PictureRecorder {
	return &PictureRecorder{
		matrixStack: []Matrix{Identity()},
		clipStack:   []clipScope{{}},
		width:       width,
		height:      height,
	}
}

func (r *PictureRecorder) currentTransform() Matrix {
	return r.matrixStack[len(r.matrixStack)-1]
}

func (r *PictureRecorder) nextDepth() uint32 {
	r.currentDepth++
	return r.currentDepth
}

// Save pushes the current transform and opens a new clip scope.
func (r *PictureRecorder) Save() {
	r.matrixStack = append(r.matrixStack, r.currentTransform())
	r.clipStack = append(r.clipStack, clipScope{})
}

// Restore pops the transform and closes the innermost clip scope,
// assigning final depths to its clip draws in reverse issue order.
// Restoring past the outermost state is a no-op.
func (r *PictureRecorder) Restore() {
	if len(r.matrixStack) > 1 {
		r.matrixStack = r.matrixStack[:len(r.matrixStack)-1]
	}
	if len(r.clipStack) > 1 {
		scope := r.clipStack[len(r.clipStack)-1]
		r.clipStack = r.clipStack[:len(r.clipStack)-1]
		r.closeClipScope(scope)
	}
}

// closeClipScope assigns depths to the scope's pending clip draws,
// most recently issued first.
func (r *PictureRecorder) closeClipScope(scope clipScope) {
	for i := len(scope.clipIndices) - 1; i >= 0; i-- {
		r.draws[scope.clipIndices[i]].Depth = r.nextDepth()
	}
}

// Translate post-multiplies a translation onto the current transform.
func (r *PictureRecorder) Translate(dx, dy float32) {
	r.concat(Translate(dx, dy))
}

// Scale post-multiplies a scale onto the current transform.
func (r *PictureRecorder) Scale(sx, sy float32) {
	r.concat(Scale(sx, sy))
}

// Rotate post-multiplies a rotation (radians) onto the current
// transform.
func (r *PictureRecorder) Rotate(angle float32) {
	r.concat(Rotate(angle))
}

// Concat post-multiplies m onto the current transform.
func (r *PictureRecorder) Concat(m Matrix) {
	r.concat(m)
}

func (r *PictureRecorder) concat(m Matrix) {
	top := len(r.matrixStack) - 1
	r.matrixStack[top] = r.matrixStack[top].Multiply(m)
}

// DrawPath draws a path with the current transform applied at replay.
func (r *PictureRecorder) DrawPath(path *Path, paint Paint) {
	if r.finished || path == nil || path.IsEmpty() {
		return
	}
	r.draws = append(r.draws, Draw{
		Depth:     r.nextDepth(),
		Command:   DrawPathCommand{Path: path.Clone(), Paint: paint},
		Transform: r.currentTransform(),
	})
}

// DrawRect draws a rectangle. Empty rectangles are no-ops.
func (r *PictureRecorder) DrawRect(rect Rect, paint Paint) {
	if rect.IsEmpty() {
		return
	}
	p := NewPath()
	p.AddRect(rect)
	r.DrawPath(p, paint)
}

// DrawOval draws an ellipse inscribed in rect. Empty rectangles are
// no-ops.
func (r *PictureRecorder) DrawOval(rect Rect, paint Paint) {
	if rect.IsEmpty() {
		return
	}
	p := NewPath()
	p.AddOval(rect)
	r.DrawPath(p, paint)
}

// DrawRRect draws a rounded rectangle. Empty rectangles are no-ops.
func (r *PictureRecorder) DrawRRect(rrect RRect, paint Paint) {
	if rrect.Rect.IsEmpty() {
		return
	}
	p := NewPath()
	p.AddRRect(rrect)
	r.DrawPath(p, paint)
}

// DrawCircle draws a circle centered at (cx, cy). Non-positive radii
// are no-ops.
func (r *PictureRecorder) DrawCircle(cx, cy, radius float32, paint Paint) {
	if radius <= 0 {
		return
	}
	r.DrawOval(RectXYWH(cx-radius, cy-radius, radius*2, radius*2), paint)
}

// DrawImage draws an image scaled into dst with the given opacity.
// Nil images and empty destinations are no-ops.
func (r *PictureRecorder) DrawImage(img *Image, dst Rect, alpha float32) {
	if r.finished || img == nil || dst.IsEmpty() || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	r.draws = append(r.draws, Draw{
		Depth:     r.nextDepth(),
		Command:   DrawImageCommand{Image: img, Dst: dst, Alpha: alpha},
		Transform: r.currentTransform(),
	})
}

// ClipPath restricts subsequent draws in the current scope to the
// region described by path under op. The clip draw is appended with a
// placeholder depth of 0; its real depth is assigned when the scope
// closes. Empty paths are no-ops.
func (r *PictureRecorder) ClipPath(path *Path, op ClipOp, rule FillRule) {
	if r.finished || path == nil || path.IsEmpty() {
		return
	}
	r.draws = append(r.draws, Draw{
		Depth:     0,
		Command:   ClipPathCommand{Path: path.Clone(), Op: op, Rule: rule},
		Transform: r.currentTransform(),
	})
	top := len(r.clipStack) - 1
	r.clipStack[top].clipIndices = append(r.clipStack[top].clipIndices, len(r.draws)-1)
}

// ClipRect restricts subsequent draws to a rectangle.
func (r *PictureRecorder) ClipRect(rect Rect, op ClipOp) {
	if rect.IsEmpty() {
		return
	}
	p := NewPath()
	p.AddRect(rect)
	r.ClipPath(p, op, FillNonZero)
}

// Finish closes any still-open clip scopes and returns the immutable
// Picture. The recorder accepts no further commands afterwards;
// calling Finish again returns nil.
func (r *PictureRecorder) Finish() *Picture {
	if r.finished {
		return nil
	}
	r.finished = true
	for len(r.clipStack) > 0 {
		scope := r.clipStack[len(r.clipStack)-1]
		r.clipStack = r.clipStack[:len(r.clipStack)-1]
		r.closeClipScope(scope)
	}
	return &Picture{
		draws:      r.draws,
		depthCount: r.currentDepth,
		width:      r.width,
		height:     r.height,
	}
}

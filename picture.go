package canvas

// ClipOp selects how a clip path combines with the active clip region.
type ClipOp int

const (
	// ClipIntersect keeps the area inside both the old region and the
	// clip path.
	ClipIntersect ClipOp = iota
	// ClipDifference removes the clip path's area from the old region.
	ClipDifference
)

// DrawCommand is one recorded drawing operation. It is a sealed
// tagged variant; replay switches over the concrete types.
type DrawCommand interface {
	isDrawCommand()
}

// DrawPathCommand fills or strokes a path with a paint.
type DrawPathCommand struct {
	Path  *Path
	Paint Paint
}

func (DrawPathCommand) isDrawCommand() {}

// ClipPathCommand restricts subsequent draws in its scope to the
// region described by the path.
type ClipPathCommand struct {
	Path *Path
	Op   ClipOp
	Rule FillRule
}

func (ClipPathCommand) isDrawCommand() {}

// DrawImageCommand draws an image scaled into a destination rectangle.
type DrawImageCommand struct {
	Image *Image
	Dst   Rect
	Alpha float32
}

func (DrawImageCommand) isDrawCommand() {}

// Draw is one entry of a Picture's draw list. Depth establishes
// painter's order on the GPU: larger depths win the depth test.
// ClipPathCommand draws are recorded with a placeholder depth of 0 and
// receive their final depth when their scope closes.
type Draw struct {
	Depth     uint32
	Command   DrawCommand
	Transform Matrix
}

// Picture holds finalized drawing commands with all depths resolved.
// A picture is immutable and can be replayed onto a Surface any number
// of times.
type Picture struct {
	draws      []Draw
	depthCount uint32
	width      float32
	height     float32
}

// Draws returns the ordered draw list.
func (p *Picture) Draws() []Draw { return p.draws }

// DepthCount returns the highest depth value assigned during
// recording. Replay normalizes each draw's depth by this count.
func (p *Picture) DepthCount() uint32 { return p.depthCount }

// Width returns the recording bounds width.
func (p *Picture) Width() float32 { return p.width }

// Height returns the recording bounds height.
func (p *Picture) Height() float32 { return p.height }

package canvas

// Style selects whether a path's interior is filled or its outline
// stroked.
type Style int

const (
	// StyleFill fills the path interior.
	StyleFill Style = iota
	// StyleStroke strokes the path outline.
	StyleStroke
)

// LineCap defines the shape drawn at the open ends of a stroked contour.
type LineCap int

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt LineCap = iota
	// CapRound ends the stroke with a semicircle centered on the endpoint.
	CapRound
	// CapSquare extends the stroke past the endpoint by half the width.
	CapSquare
)

// LineJoin defines the shape drawn where two stroked segments meet.
type LineJoin int

const (
	// JoinMiter extends the outer edges until they meet. Falls back to
	// bevel when the miter length exceeds the miter limit.
	JoinMiter LineJoin = iota
	// JoinRound connects the outer edges with a circular arc.
	JoinRound
	// JoinBevel connects the outer edges with a straight line.
	JoinBevel
)

// FillRule determines how self-intersecting paths decide insideness.
type FillRule int

const (
	// FillNonZero counts signed edge crossings; nonzero winding is inside.
	FillNonZero FillRule = iota
	// FillEvenOdd counts crossings; an odd count is inside.
	FillEvenOdd
)

// DefaultMiterLimit is the miter limit applied by NewPaint, matching
// the common 2D canvas default.
const DefaultMiterLimit = 4.0

// Paint describes how geometry is drawn: the brush, fill or stroke
// style, and the stroke geometry parameters.
type Paint struct {
	Brush       Brush
	Style       Style
	FillRule    FillRule
	StrokeWidth float32
	MiterLimit  float32
	Cap         LineCap
	Join        LineJoin
}

// NewPaint returns a Paint with defaults: opaque black fill,
// stroke width 1, miter join with the default limit, butt caps.
func NewPaint() Paint {
	return Paint{
		Brush:       Solid(Black),
		Style:       StyleFill,
		StrokeWidth: 1,
		MiterLimit:  DefaultMiterLimit,
	}
}

// SetColor replaces the brush with a solid color.
func (p *Paint) SetColor(c RGBA) {
	p.Brush = Solid(c)
}

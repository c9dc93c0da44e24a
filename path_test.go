package canvas

import (
	"math"
	"testing"
)

func nearPoint(p Point, x, y, eps float32) bool {
	dx, dy := float64(p.X-x), float64(p.Y-y)
	return math.Sqrt(dx*dx+dy*dy) <= float64(eps)
}

func TestPathArcQuarterTurn(t *testing.T) {
	p := NewPath()
	p.Arc(0, 0, 10, 0, math.Pi/2)

	elems := p.Elements()
	if len(elems) != 2 {
		t.Fatalf("quarter arc has %d elements, want MoveTo + ConicTo", len(elems))
	}
	mv, ok := elems[0].(MoveTo)
	if !ok || !nearPoint(mv.Point, 10, 0, 1e-4) {
		t.Errorf("arc start = %v, want (10, 0)", elems[0])
	}
	c, ok := elems[1].(ConicTo)
	if !ok {
		t.Fatalf("second element = %T, want ConicTo", elems[1])
	}
	if !nearPoint(c.Point, 0, 10, 1e-4) {
		t.Errorf("arc end = %v, want (0, 10)", c.Point)
	}
	if diff := math.Abs(float64(c.Weight) - math.Sqrt2/2); diff > 1e-6 {
		t.Errorf("quarter arc weight = %v, want sqrt(2)/2", c.Weight)
	}
}

func TestPathArcFullCircleSegments(t *testing.T) {
	p := NewPath()
	p.Arc(50, 50, 20, 0, 2*math.Pi)

	conics := 0
	for _, e := range p.Elements() {
		if _, ok := e.(ConicTo); ok {
			conics++
		}
	}
	if conics != 4 {
		t.Errorf("full circle built from %d conics, want 4", conics)
	}
	if !nearPoint(p.CurrentPoint(), 70, 50, 1e-3) {
		t.Errorf("full circle ends at %v, want (70, 50)", p.CurrentPoint())
	}
}

func TestPathArcContinuesOpenContour(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.Arc(0, 0, 10, 0, math.Pi/2)

	if _, ok := p.Elements()[1].(LineTo); !ok {
		t.Errorf("arc after MoveTo inserted %T, want a connecting LineTo", p.Elements()[1])
	}
}

func TestPathArcDegenerateNoOp(t *testing.T) {
	p := NewPath()
	p.Arc(0, 0, 0, 0, math.Pi)
	p.Arc(0, 0, 10, 0, 0)
	if !p.IsEmpty() {
		t.Errorf("degenerate arcs added %d elements", len(p.Elements()))
	}
}

func TestPathInjectsMoveTo(t *testing.T) {
	p := NewPath()
	p.LineTo(10, 10)

	elems := p.Elements()
	if len(elems) != 2 {
		t.Fatalf("got %d elements, want 2", len(elems))
	}
	mv, ok := elems[0].(MoveTo)
	if !ok {
		t.Fatalf("first element is %T, want MoveTo", elems[0])
	}
	if mv.Point != Pt(0, 0) {
		t.Errorf("injected MoveTo at %v, want origin", mv.Point)
	}
}

func TestPathInjectsMoveToAfterClose(t *testing.T) {
	p := NewPath()
	p.MoveTo(5, 5)
	p.LineTo(10, 5)
	p.Close()
	p.LineTo(20, 20)

	elems := p.Elements()
	// MoveTo, LineTo, Close, injected MoveTo, LineTo.
	if len(elems) != 5 {
		t.Fatalf("got %d elements, want 5", len(elems))
	}
	if _, ok := elems[3].(MoveTo); !ok {
		t.Errorf("element after Close is %T, want injected MoveTo", elems[3])
	}
}

func TestPathCloseReturnsToStart(t *testing.T) {
	p := NewPath()
	p.MoveTo(5, 7)
	p.LineTo(50, 7)
	p.Close()

	if got := p.CurrentPoint(); got != Pt(5, 7) {
		t.Errorf("current point after Close = %v, want (5, 7)", got)
	}
}

func TestPathConicWeightSanitized(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.ConicTo(1, 1, 2, 0, -3)

	c := p.Elements()[1].(ConicTo)
	if c.Weight != 1 {
		t.Errorf("negative weight stored as %v, want 1", c.Weight)
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2)
	p.LineTo(3, 4)

	q := p.Transform(Translate(10, 20))

	if got := q.Elements()[0].(MoveTo).Point; got != Pt(11, 22) {
		t.Errorf("transformed MoveTo = %v, want (11, 22)", got)
	}
	if got := p.Elements()[0].(MoveTo).Point; got != Pt(1, 2) {
		t.Errorf("original path mutated: %v", got)
	}
}

func TestPathBounds(t *testing.T) {
	p := NewPath()
	p.MoveTo(10, 20)
	p.LineTo(110, 20)
	p.LineTo(110, 70)
	p.Close()

	b := p.Bounds()
	want := RectLTRB(10, 20, 110, 70)
	if b != want {
		t.Errorf("bounds = %v, want %v", b, want)
	}
}

func TestPathEllipseUsesConics(t *testing.T) {
	p := NewPath()
	p.Ellipse(50, 50, 20, 10)

	conics := 0
	for _, e := range p.Elements() {
		if c, ok := e.(ConicTo); ok {
			conics++
			if c.Weight != conicSemicircleWeight {
				t.Errorf("quadrant weight = %v, want %v", c.Weight, conicSemicircleWeight)
			}
		}
	}
	if conics != 4 {
		t.Errorf("ellipse built from %d conics, want 4", conics)
	}
}

func TestRRectRadiusClamped(t *testing.T) {
	rr := RRectXY(RectXYWH(0, 0, 100, 40), 80, 80)
	if rr.Radii[0].X != 50 || rr.Radii[0].Y != 20 {
		t.Errorf("radii = %v, want clamped to (50, 20)", rr.Radii[0])
	}
}

func TestPathClone(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 1)
	p.LineTo(2, 2)

	q := p.Clone()
	q.LineTo(3, 3)

	if len(p.Elements()) != 2 {
		t.Errorf("clone mutation leaked into original: %d elements", len(p.Elements()))
	}
}

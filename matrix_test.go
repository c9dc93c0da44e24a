package canvas

import (
	"math"
	"testing"
)

func TestMatrixIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity() is not identity")
	}
	if got := m.TransformPoint(Pt(3, 4)); got != Pt(3, 4) {
		t.Errorf("identity moved point to %v", got)
	}
}

func TestMatrixCompose(t *testing.T) {
	m := Translate(10, 20).Multiply(Scale(2, 2))
	if got := m.TransformPoint(Pt(1, 1)); got != Pt(12, 22) {
		t.Errorf("translate*scale maps (1,1) to %v, want (12, 22)", got)
	}
}

func TestMatrixRotate(t *testing.T) {
	m := Rotate(math.Pi / 2)
	got := m.TransformPoint(Pt(1, 0))
	if math.Abs(float64(got.X)) > 1e-6 || math.Abs(float64(got.Y-1)) > 1e-6 {
		t.Errorf("90 degree rotation maps (1,0) to %v, want (0, 1)", got)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(5, -3).Multiply(Scale(2, 4))
	inv := m.Invert()
	got := inv.TransformPoint(m.TransformPoint(Pt(7, 9)))
	if math.Abs(float64(got.X-7)) > 1e-5 || math.Abs(float64(got.Y-9)) > 1e-5 {
		t.Errorf("inverse round trip gives %v, want (7, 9)", got)
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	m := Scale(0, 0).Invert()
	if !m.IsIdentity() {
		t.Error("singular matrix inverse is not identity")
	}
}

func TestMatrixMaxScale(t *testing.T) {
	if got := Scale(3, 2).MaxScale(); got != 3 {
		t.Errorf("MaxScale = %v, want 3", got)
	}
	got := Rotate(1.2).MaxScale()
	if math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("rotation MaxScale = %v, want 1", got)
	}
}

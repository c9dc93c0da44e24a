package canvas

import "testing"

func fillPaint() Paint {
	p := NewPaint()
	p.Brush = Solid(Red)
	return p
}

func TestRecorderDepthsAreSequential(t *testing.T) {
	rec := NewPictureRecorder(100, 100)
	rec.DrawRect(RectXYWH(0, 0, 10, 10), fillPaint())
	rec.DrawRect(RectXYWH(20, 0, 10, 10), fillPaint())
	rec.DrawCircle(50, 50, 5, fillPaint())

	pic := rec.Finish()
	draws := pic.Draws()
	if len(draws) != 3 {
		t.Fatalf("got %d draws, want 3", len(draws))
	}
	for i, d := range draws {
		if d.Depth != uint32(i+1) {
			t.Errorf("draw %d has depth %d, want %d", i, d.Depth, i+1)
		}
	}
	if pic.DepthCount() != 3 {
		t.Errorf("depth count = %d, want 3", pic.DepthCount())
	}
}

func TestRecorderClipDepthAssignment(t *testing.T) {
	// save; clip A; clip B; restore; draw C. Both clips must end up
	// below C, with B (issued last) below A, and neither at the
	// placeholder depth 0.
	rec := NewPictureRecorder(100, 100)
	rec.Save()
	rec.ClipRect(RectXYWH(0, 0, 50, 50), ClipIntersect) // A
	rec.ClipRect(RectXYWH(10, 10, 50, 50), ClipIntersect) // B
	rec.Restore()
	rec.DrawRect(RectXYWH(0, 0, 100, 100), fillPaint()) // C

	pic := rec.Finish()
	draws := pic.Draws()
	if len(draws) != 3 {
		t.Fatalf("got %d draws, want 3", len(draws))
	}
	a, b, c := draws[0], draws[1], draws[2]

	if a.Depth == 0 || b.Depth == 0 {
		t.Fatal("clip draw kept its placeholder depth")
	}
	if !(b.Depth < a.Depth) {
		t.Errorf("clip B depth %d not below clip A depth %d", b.Depth, a.Depth)
	}
	if !(a.Depth < c.Depth) {
		t.Errorf("clip A depth %d not below draw C depth %d", a.Depth, c.Depth)
	}
}

func TestRecorderClipCoversScopeDraws(t *testing.T) {
	// Draws inside the scope must sit below the clip's final depth,
	// draws after restore above it.
	rec := NewPictureRecorder(100, 100)
	rec.Save()
	rec.ClipRect(RectXYWH(0, 0, 50, 50), ClipIntersect)
	rec.DrawRect(RectXYWH(0, 0, 100, 100), fillPaint()) // inside scope
	rec.Restore()
	rec.DrawRect(RectXYWH(0, 0, 100, 100), fillPaint()) // after scope

	pic := rec.Finish()
	draws := pic.Draws()
	clip, inside, after := draws[0], draws[1], draws[2]

	if !(inside.Depth < clip.Depth) {
		t.Errorf("in-scope draw depth %d not below clip depth %d", inside.Depth, clip.Depth)
	}
	if !(clip.Depth < after.Depth) {
		t.Errorf("post-restore draw depth %d not above clip depth %d", after.Depth, clip.Depth)
	}
}

func TestRecorderFinishClosesOpenScopes(t *testing.T) {
	rec := NewPictureRecorder(100, 100)
	rec.Save()
	rec.ClipRect(RectXYWH(0, 0, 50, 50), ClipIntersect)
	// No restore.
	pic := rec.Finish()

	if d := pic.Draws()[0].Depth; d == 0 {
		t.Error("unbalanced save left clip at placeholder depth")
	}
}

func TestRecorderNoOps(t *testing.T) {
	rec := NewPictureRecorder(100, 100)
	rec.DrawCircle(10, 10, 0, fillPaint())
	rec.DrawCircle(10, 10, -5, fillPaint())
	rec.DrawRect(Rect{}, fillPaint())
	rec.DrawOval(RectXYWH(0, 0, 10, -1), fillPaint())
	rec.ClipRect(Rect{}, ClipIntersect)
	rec.DrawPath(NewPath(), fillPaint())
	rec.DrawImage(nil, RectXYWH(0, 0, 10, 10), 1)

	pic := rec.Finish()
	if len(pic.Draws()) != 0 {
		t.Errorf("degenerate commands recorded %d draws", len(pic.Draws()))
	}
}

func TestRecorderTransformStack(t *testing.T) {
	rec := NewPictureRecorder(100, 100)
	rec.Translate(10, 0)
	rec.Save()
	rec.Translate(0, 20)
	rec.DrawRect(RectXYWH(0, 0, 5, 5), fillPaint())
	rec.Restore()
	rec.DrawRect(RectXYWH(0, 0, 5, 5), fillPaint())

	pic := rec.Finish()
	inner := pic.Draws()[0].Transform.TransformPoint(Pt(0, 0))
	outer := pic.Draws()[1].Transform.TransformPoint(Pt(0, 0))

	if inner != Pt(10, 20) {
		t.Errorf("inner transform maps origin to %v, want (10, 20)", inner)
	}
	if outer != Pt(10, 0) {
		t.Errorf("outer transform maps origin to %v, want (10, 0)", outer)
	}
}

func TestRecorderRestorePastBottomIsNoOp(t *testing.T) {
	rec := NewPictureRecorder(100, 100)
	rec.Restore()
	rec.Restore()
	rec.DrawRect(RectXYWH(0, 0, 5, 5), fillPaint())

	pic := rec.Finish()
	if len(pic.Draws()) != 1 {
		t.Fatalf("got %d draws, want 1", len(pic.Draws()))
	}
}

func TestRecorderFinishTwice(t *testing.T) {
	rec := NewPictureRecorder(100, 100)
	rec.DrawRect(RectXYWH(0, 0, 5, 5), fillPaint())
	if rec.Finish() == nil {
		t.Fatal("first Finish returned nil")
	}
	if rec.Finish() != nil {
		t.Error("second Finish did not return nil")
	}
}

func TestRecorderDrawPathClones(t *testing.T) {
	rec := NewPictureRecorder(100, 100)
	p := NewPath()
	p.Rectangle(0, 0, 10, 10)
	rec.DrawPath(p, fillPaint())
	p.LineTo(999, 999)

	pic := rec.Finish()
	cmd := pic.Draws()[0].Command.(DrawPathCommand)
	if len(cmd.Path.Elements()) != 5 {
		t.Errorf("recorded path has %d elements, caller mutation leaked", len(cmd.Path.Elements()))
	}
}

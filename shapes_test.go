package sketch

import (
	"errors"
	"image"
	"math"
	"slices"
	"testing"
)

func indexOp(ops []OpType, op OpType) int { return slices.Index(ops, op) }

func approxArgs(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			return false
		}
	}
	return true
}

func TestScenarioTextStyleContract(t *testing.T) {
	tests := []struct {
		name    string
		args    DrawingArgs
		wantErr error
	}{
		{"both", DrawingArgs{FillStyle: "red", StrokeStyle: "blue"}, ErrAmbiguousStyle},
		{"neither", DrawingArgs{}, ErrNoStyle},
		{"fill only", DrawingArgs{FillStyle: "red"}, nil},
		{"stroke only", DrawingArgs{StrokeStyle: "blue"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(100, 100)
			err := Text{Text: "hi", X: 1, Y: 2, DrawingArgs: tt.args}.Draw(rec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && len(rec.Commands()) != 0 {
				t.Errorf("rejected text issued %d commands", len(rec.Commands()))
			}
		})
	}
}

func TestTextUsesMatchingPaintCall(t *testing.T) {
	rec := NewRecorder(100, 100)
	_ = Text{Text: "a", DrawingArgs: DrawingArgs{StrokeStyle: "blue"}}.Draw(rec)
	if rec.Count(OpStrokeText) != 1 || rec.Count(OpFillText) != 0 {
		t.Errorf("ops = %v", rec.Ops())
	}
}

func TestRotationPrecedesPath(t *testing.T) {
	rec := NewRecorder(100, 100)
	r := Rect{X: 0, Y: 0, Width: 20, Height: 10, DrawingArgs: DrawingArgs{FillStyle: "red", Rotation: 90}}
	if err := r.Draw(rec); err != nil {
		t.Fatal(err)
	}
	cmds := rec.Commands()
	want := []Command{
		{Op: OpBeginPath},
		{Op: OpTranslate, Args: []float64{10, 5}},
		{Op: OpRotate, Args: []float64{math.Pi / 2}},
		{Op: OpTranslate, Args: []float64{-10, -5}},
	}
	for i, w := range want {
		if cmds[i].Op != w.Op || !approxArgs(cmds[i].Args, w.Args) {
			t.Errorf("command %d = %v, want %v", i, cmds[i], w)
		}
	}
	ops := rec.Ops()
	if indexOp(ops, OpRect) < indexOp(ops, OpRotate) {
		t.Error("path issued before rotation")
	}
}

func TestRotationUsesCenterOverride(t *testing.T) {
	rec := NewRecorder(100, 100)
	c := Vec2{0, 0}
	_ = Rect{Width: 20, Height: 10, DrawingArgs: DrawingArgs{FillStyle: "red", Rotation: 45, Center: &c}}.Draw(rec)
	if got := rec.Commands()[1]; got.Op != OpTranslate || !slices.Equal(got.Args, []float64{0, 0}) {
		t.Errorf("pivot = %v", got)
	}
}

func TestZeroRotationSkipsTransform(t *testing.T) {
	rec := NewRecorder(100, 100)
	_ = Rect{Width: 1, Height: 1, DrawingArgs: DrawingArgs{FillStyle: "red"}}.Draw(rec)
	if rec.Count(OpTranslate) != 0 || rec.Count(OpRotate) != 0 {
		t.Errorf("ops = %v", rec.Ops())
	}
}

func TestInvalidRotation(t *testing.T) {
	for _, deg := range []float64{-1, 360.5, 720, math.NaN()} {
		rec := NewRecorder(10, 10)
		err := Rect{Width: 1, Height: 1, DrawingArgs: DrawingArgs{FillStyle: "red", Rotation: deg}}.Draw(rec)
		if !errors.Is(err, ErrInvalidRotation) {
			t.Errorf("rotation %v: err = %v", deg, err)
		}
	}
	if err := (Rect{Width: 1, Height: 1, DrawingArgs: DrawingArgs{Rotation: 360}}).Draw(NewRecorder(1, 1)); err != nil {
		t.Errorf("rotation 360 rejected: %v", err)
	}
}

func TestRegionRejectsInvalidRotation(t *testing.T) {
	args := DrawingArgs{StrokeStyle: "black", Rotation: 400}
	pts := []Vec2{{0, 0}, {10, 0}, {10, 10}}
	shapes := map[string]Regioner{
		"line":       Line{Points: pts, DrawingArgs: args},
		"open curve": Curve{Points: pts, DrawingArgs: args},
		"open arcTo": ArcTo{Points: pts, Radius: 2, DrawingArgs: args},
		"polygon":    Polygon{Points: pts, DrawingArgs: args},
	}
	for name, s := range shapes {
		if _, err := s.Region(name); !errors.Is(err, ErrInvalidRotation) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
	nan := DrawingArgs{StrokeStyle: "black", Rotation: math.NaN()}
	if _, err := (Line{Points: pts, DrawingArgs: nan}).Region("nan"); !errors.Is(err, ErrInvalidRotation) {
		t.Errorf("NaN rotation: err = %v", err)
	}
}

func TestStrokeThenFill(t *testing.T) {
	rec := NewRecorder(100, 100)
	_ = Polygon{Points: square, DrawingArgs: DrawingArgs{FillStyle: "red", StrokeStyle: "blue"}}.Draw(rec)
	ops := rec.Ops()
	s, f := indexOp(ops, OpStroke), indexOp(ops, OpFill)
	if s < 0 || f < 0 || s > f {
		t.Errorf("ops = %v, want stroke before fill", ops)
	}

	rec.Reset()
	_ = Polygon{Points: square, DrawingArgs: DrawingArgs{StrokeStyle: "blue"}}.Draw(rec)
	if rec.Count(OpFill) != 0 || rec.Count(OpStroke) != 1 {
		t.Errorf("stroke-only ops = %v", rec.Ops())
	}
}

func TestPolygonTooFewPoints(t *testing.T) {
	err := Polygon{Points: square[:2]}.Draw(NewRecorder(1, 1))
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("err = %v", err)
	}
	if _, err := (Polygon{Points: square[:2]}).Region("p"); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("Region err = %v", err)
	}
}

func TestPolygonClosesPath(t *testing.T) {
	rec := NewRecorder(100, 100)
	_ = Polygon{Points: square, DrawingArgs: DrawingArgs{FillStyle: "red"}}.Draw(rec)
	if rec.Count(OpMoveTo) != 1 || rec.Count(OpLineTo) != 3 || rec.Count(OpClosePath) != 1 {
		t.Errorf("ops = %v", rec.Ops())
	}
}

func TestLineTooFewPoints(t *testing.T) {
	err := Line{Points: square[:1]}.Draw(NewRecorder(1, 1))
	if !errors.Is(err, ErrTooFewLinePoints) {
		t.Errorf("err = %v", err)
	}
}

func TestCurveDrawsPolyline(t *testing.T) {
	cc := NewCurveCache(0, 0)
	rec := NewRecorder(100, 100)
	c := Curve{Points: []Vec2{{0, 0}, {50, 50}, {100, 0}}, CurveOptions: CurveOptions{Segments: 5}, Cache: cc,
		DrawingArgs: DrawingArgs{StrokeStyle: "black"}}
	if err := c.Draw(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Count(OpMoveTo) != 1 || rec.Count(OpLineTo) != 2*5 {
		t.Errorf("moveTo=%d lineTo=%d", rec.Count(OpMoveTo), rec.Count(OpLineTo))
	}
	_ = c.Draw(rec)
	if s := cc.Stats(); s.Computations != 1 {
		t.Errorf("redraw recomputed: %+v", s)
	}
}

func TestEllipseDefaultsToFullTurn(t *testing.T) {
	rec := NewRecorder(100, 100)
	_ = Ellipse{X: 5, Y: 6, RadiusX: 3, RadiusY: -2, DrawingArgs: DrawingArgs{FillStyle: "red"}}.Draw(rec)
	for _, c := range rec.Commands() {
		if c.Op == OpEllipse {
			want := []float64{5, 6, 3, 2, 0, 0, 2 * math.Pi, 0}
			if !slices.Equal(c.Args, want) {
				t.Errorf("ellipse args = %v, want %v", c.Args, want)
			}
			return
		}
	}
	t.Error("no ellipse command")
}

func TestRoundedRectUsesArcTo(t *testing.T) {
	rec := NewRecorder(100, 100)
	_ = Rect{Width: 20, Height: 10, Radius: 50, DrawingArgs: DrawingArgs{FillStyle: "red"}}.Draw(rec)
	if rec.Count(OpArcTo) != 4 || rec.Count(OpRect) != 0 {
		t.Errorf("ops = %v", rec.Ops())
	}
	for _, c := range rec.Commands() {
		if c.Op == OpArcTo && c.Args[4] != 5 {
			t.Errorf("radius not clamped to half the short side: %v", c.Args[4])
		}
	}
}

func TestPathRejectsPaintCommands(t *testing.T) {
	p := Path{Commands: []Command{MoveToCmd(0, 0), {Op: OpFill}}}
	if err := p.Draw(NewRecorder(1, 1)); err == nil {
		t.Error("path with fill accepted")
	}
	p = Path{Commands: []Command{MoveToCmd(0, 0), LineToCmd(5, 5), ArcToCmd(5, 10, 0, 10, 2), ClosePathCmd()},
		DrawingArgs: DrawingArgs{StrokeStyle: "red"}}
	rec := NewRecorder(10, 10)
	if err := p.Draw(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Count(OpArcTo) != 1 || rec.Count(OpStroke) != 1 {
		t.Errorf("ops = %v", rec.Ops())
	}
}

func TestImageNaturalSize(t *testing.T) {
	rec := NewRecorder(100, 100)
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	if err := (Image{Src: src, X: 1, Y: 2}).Draw(rec); err != nil {
		t.Fatal(err)
	}
	for _, c := range rec.Commands() {
		if c.Op == OpDrawImage && !slices.Equal(c.Args, []float64{1, 2, 8, 4}) {
			t.Errorf("drawImage args = %v", c.Args)
		}
	}
	if err := (Image{}).Draw(rec); !errors.Is(err, ErrNoImage) {
		t.Errorf("nil source err = %v", err)
	}
}

func TestShadowAndFilterReset(t *testing.T) {
	rec := NewRecorder(10, 10)
	_ = Rect{Width: 1, Height: 1, DrawingArgs: DrawingArgs{
		FillStyle: "red", ShadowColor: "black", ShadowOffsetX: 2, Filter: "blur(1px)",
	}}.Draw(rec)
	var shadows, filters []string
	for _, c := range rec.Commands() {
		switch c.Op {
		case OpSetShadow:
			shadows = append(shadows, c.Str)
		case OpSetFilter:
			filters = append(filters, c.Str)
		}
	}
	if !slices.Equal(shadows, []string{"black", ""}) || !slices.Equal(filters, []string{"blur(1px)", ""}) {
		t.Errorf("shadow %v filter %v", shadows, filters)
	}
}

func TestWrapNilContext(t *testing.T) {
	if err := (Rect{}).Draw(nil); !errors.Is(err, ErrNoContext) {
		t.Errorf("err = %v", err)
	}
}

func TestRotatedRegion(t *testing.T) {
	r, err := Rect{X: 0, Y: 0, Width: 20, Height: 10, DrawingArgs: DrawingArgs{Rotation: 90}}.Region("r")
	if err != nil {
		t.Fatal(err)
	}
	b := r.Bounds()
	// A 20x10 box rotated a quarter turn about (10, 5) spans x 5..15, y -5..15.
	if math.Abs(b.MinX-5) > 1e-9 || math.Abs(b.MaxY-15) > 1e-9 {
		t.Errorf("bounds = %+v", b)
	}
	if !r.ContainsPoint(Vec2{10, -3}) || r.ContainsPoint(Vec2{1, 5}) {
		t.Error("rotated region does not match the rotated drawing")
	}
}

func TestTextRegion(t *testing.T) {
	rec := NewRecorder(100, 100)
	txt := Text{Text: "abcd", X: 10, Y: 20, Font: "20px sans-serif", DrawingArgs: DrawingArgs{FillStyle: "red"}}
	r, err := TextRegion("t", txt, rec)
	if err != nil {
		t.Fatal(err)
	}
	// 4 runes * 0.6 * 20px wide, ascent 16, descent 4.
	want := AABB{10, 4, 58, 24}
	b := r.Bounds()
	if math.Abs(b.MinX-want.MinX) > 1e-9 || math.Abs(b.MaxX-want.MaxX) > 1e-9 ||
		math.Abs(b.MinY-want.MinY) > 1e-9 || math.Abs(b.MaxY-want.MaxY) > 1e-9 {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

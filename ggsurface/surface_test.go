package ggsurface

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/sketch"
)

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(w, h)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    gg.RGBA
		wantErr bool
	}{
		{in: "#f00", want: gg.RGB(1, 0, 0)},
		{in: "#00ff00", want: gg.RGB(0, 1, 0)},
		{in: "  RED ", want: gg.RGB(1, 0, 0)},
		{in: "transparent", want: gg.Transparent},
		{in: "rgb(0, 0, 255)", want: gg.RGB(0, 0, 1)},
		{in: "rgba(255, 255, 255, 0.5)", want: gg.RGBA2(1, 1, 1, 0.5)},
		{in: "rgb(100%, 0%, 0%)", want: gg.RGB(1, 0, 0)},
		{in: "", wantErr: true},
		{in: "#12", wantErr: true},
		{in: "#zzz", wantErr: true},
		{in: "rgb(1, 2)", wantErr: true},
		{in: "notacolor", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, got.R, 1e-9)
			assert.InDelta(t, tt.want.G, got.G, 1e-9)
			assert.InDelta(t, tt.want.B, got.B, 1e-9)
			assert.InDelta(t, tt.want.A, got.A, 1e-9)
		})
	}
}

func TestNewRejectsEmptySurface(t *testing.T) {
	_, err := New(0, 10)
	assert.ErrorIs(t, err, sketch.ErrInvalidSize)
}

func TestFillRect(t *testing.T) {
	s := newSurface(t, 64, 64)
	s.SetFillStyle("#ff0000")
	s.BeginPath()
	s.Rect(10, 10, 40, 40)
	require.NoError(t, s.Fill())

	img := s.Image()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgbaAt(img, 30, 30))
	assert.Equal(t, uint8(0), rgbaAt(img, 2, 2).A)
	assert.Equal(t, uint8(0), rgbaAt(img, 60, 60).A)
}

func TestFillKeepsPath(t *testing.T) {
	s := newSurface(t, 32, 32)
	s.BeginPath()
	s.Rect(4, 4, 10, 10)
	n := len(s.path)
	require.NoError(t, s.Fill())
	assert.Len(t, s.path, n)
	require.NoError(t, s.Stroke())
	assert.Len(t, s.path, n)

	s.BeginPath()
	assert.Empty(t, s.path)
}

func TestPathIsRecordedInDeviceSpace(t *testing.T) {
	s := newSurface(t, 32, 32)
	s.Translate(10, 20)
	s.MoveTo(1, 2)
	require.Len(t, s.path, 1)
	assert.Equal(t, point{11, 22}, s.path[0].pts[0])

	s.ResetTransform()
	s.LineTo(1, 2)
	assert.Equal(t, point{1, 2}, s.path[1].pts[0])
}

func TestLineToWithoutCurrentPointMoves(t *testing.T) {
	s := newSurface(t, 8, 8)
	s.BeginPath()
	s.LineTo(3, 3)
	require.Len(t, s.path, 1)
	assert.Equal(t, opMove, s.path[0].kind)
}

func TestClearRect(t *testing.T) {
	s := newSurface(t, 20, 20)
	s.SetFillStyle("blue")
	s.BeginPath()
	s.Rect(0, 0, 20, 20)
	require.NoError(t, s.Fill())

	s.ClearRect(0, 0, 10, 20)
	img := s.Image()
	assert.Equal(t, uint8(0), rgbaAt(img, 5, 10).A)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgbaAt(img, 15, 10))

	s.ClearRect(0, 0, 20, 20)
	assert.Equal(t, uint8(0), rgbaAt(s.Image(), 15, 10).A)
}

func TestArcSweep(t *testing.T) {
	const tau = 2 * math.Pi
	tests := []struct {
		name       string
		start, end float64
		ccw        bool
		want       float64
	}{
		{"full clockwise", 0, tau, false, tau},
		{"more than full", 0, 3 * tau, false, tau},
		{"quarter clockwise", 0, math.Pi / 2, false, math.Pi / 2},
		{"wraps clockwise", math.Pi / 2, 0, false, 3 * math.Pi / 2},
		{"quarter counterclockwise", math.Pi / 2, 0, true, -math.Pi / 2},
		{"full counterclockwise", tau, 0, true, -tau},
		{"empty", 1, 1, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, arcSweep(tt.start, tt.end, tt.ccw), 1e-9)
		})
	}
}

func TestArcEndsOnCircle(t *testing.T) {
	s := newSurface(t, 64, 64)
	s.BeginPath()
	s.Arc(32, 32, 10, 0, math.Pi, false)
	last := s.path[len(s.path)-1]
	require.Equal(t, opCubic, last.kind)
	assert.InDelta(t, 22, last.pts[2].x, 1e-9)
	assert.InDelta(t, 32, last.pts[2].y, 1e-9)
}

func TestSetLineDash(t *testing.T) {
	s := newSurface(t, 8, 8)
	s.SetLineDash([]float64{4})
	assert.Equal(t, []float64{4, 4}, s.dash)

	s.SetLineDash([]float64{1, -1})
	assert.Equal(t, []float64{4, 4}, s.dash, "negative entries leave the dash unchanged")

	s.SetLineDash(nil)
	assert.Nil(t, s.dash)
}

func TestInvalidColorKeepsPrevious(t *testing.T) {
	s := newSurface(t, 8, 8)
	s.SetFillStyle("#00ff00")
	s.SetFillStyle("bogus")
	assert.Equal(t, gg.RGB(0, 1, 0), s.fill)
}

func TestMeasureTextScalesWithFont(t *testing.T) {
	s := newSurface(t, 8, 8)
	s.SetFont("10px sans-serif")
	small := s.MeasureText("hello")
	s.SetFont("20px sans-serif")
	large := s.MeasureText("hello")
	assert.Greater(t, small.Width, 0.0)
	assert.Greater(t, large.Width, small.Width)
	assert.Greater(t, large.Ascent, small.Ascent)
}

func TestDrawImageNil(t *testing.T) {
	s := newSurface(t, 8, 8)
	assert.ErrorIs(t, s.DrawImage(nil, 0, 0, 0, 0), sketch.ErrNoImage)
}

func TestDrawImageCachesConversion(t *testing.T) {
	s := newSurface(t, 16, 16)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, s.DrawImage(src, 0, 0, 0, 0))
	require.NoError(t, s.DrawImage(src, 4, 4, 8, 8))
	assert.Equal(t, 1, s.images.Len())
}

func TestRenderLoopPaintsSurface(t *testing.T) {
	s := newSurface(t, 40, 40)
	sched := sketch.NewManualScheduler()
	loop, err := sketch.NewRenderLoop(s, sched)
	require.NoError(t, err)

	rect := sketch.Rect{X: 5, Y: 5, Width: 20, Height: 20, DrawingArgs: sketch.DrawingArgs{FillStyle: "#00ff00"}}
	loop.Add(func(ctx sketch.Context, _ uint64) error { return rect.Draw(ctx) })
	require.NoError(t, loop.Start())
	sched.Advance(16 * time.Millisecond)

	assert.Equal(t, color.RGBA{G: 255, A: 255}, rgbaAt(s.Image(), 15, 15))
	assert.Equal(t, uint8(0), rgbaAt(s.Image(), 35, 35).A)
}

// Package ggsurface implements sketch.Context on the gogpu/gg software
// rasterizer.
//
// gg shares one brush between fill and stroke and clears the path on every
// Fill and Stroke, while a canvas context keeps separate fill and stroke
// styles and keeps the path until BeginPath. Surface bridges the two by
// recording the current path in device space and replaying it into gg for
// each paint operation.
//
// Known approximations: shadows are drawn unblurred at their offset,
// StrokeText paints glyphs in the stroke color, and filters are recorded but
// not applied.
package ggsurface

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/cache"
	"github.com/gogpu/gg/text"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/sketch"
)

const imageCacheSize = 64

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opCubic
	opClose
)

// pathOp is one path element in device coordinates.
type pathOp struct {
	kind opKind
	pts  [3]point
}

type point struct{ x, y float64 }

// Surface is a sketch.Context drawing into an in-memory gg image.
type Surface struct {
	dc *gg.Context
	w  int
	h  int

	path     []pathOp
	cur      point // user space
	start    point // user space start of the current subpath
	hasCur   bool
	fill     gg.RGBA
	stroke   gg.RGBA
	width    float64
	dash     []float64
	dashOff  float64
	lineCap  sketch.LineCap
	shadow   gg.RGBA
	shadowOn bool
	shadowDX float64
	shadowDY float64
	filter   string

	font     string
	fontSize float64
	align    sketch.TextAlign
	baseline sketch.TextBaseline
	source   *text.FontSource
	faces    *cache.ShardedCache[int, text.Face]
	images   *lru.Cache[image.Image, *gg.ImageBuf]
}

var _ sketch.Context = (*Surface)(nil)

// New creates a transparent width x height surface using the Go Regular
// font for text.
func New(width, height int) (*Surface, error) {
	return NewWithFont(width, height, goregular.TTF)
}

// NewWithFont is New with a caller-supplied TrueType/OpenType font.
func NewWithFont(width, height int, fontData []byte) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ggsurface: %dx%d: %w", width, height, sketch.ErrInvalidSize)
	}
	source, err := text.NewFontSource(fontData)
	if err != nil {
		return nil, fmt.Errorf("ggsurface: load font: %w", err)
	}
	images, err := lru.New[image.Image, *gg.ImageBuf](imageCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Surface{
		dc:     gg.NewContext(width, height),
		w:      width,
		h:      height,
		source: source,
		faces:  cache.NewSharded[int, text.Face](4, cache.IntHasher),
		images: images,
	}
	s.reset()
	return s, nil
}

func (s *Surface) reset() {
	s.fill = gg.Black
	s.stroke = gg.Black
	s.width = 1
	s.dash = nil
	s.dashOff = 0
	s.lineCap = sketch.LineCapButt
	s.shadowOn = false
	s.filter = ""
	s.SetFont("10px sans-serif")
	s.align = sketch.TextAlignStart
	s.baseline = sketch.TextBaselineAlphabetic
}

// GG exposes the underlying gg context.
func (s *Surface) GG() *gg.Context { return s.dc }

// Image returns the current pixels.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// SavePNG writes the surface to a PNG file.
func (s *Surface) SavePNG(path string) error { return s.dc.SavePNG(path) }

// EncodePNG writes the surface as PNG to w.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// Filter returns the last filter set. Filters are not rasterized.
func (s *Surface) Filter() string { return s.filter }

// Close releases the gg context.
func (s *Surface) Close() error {
	s.images.Purge()
	s.faces.Clear()
	return s.dc.Close()
}

// Size implements sketch.Context.
func (s *Surface) Size() (float64, float64) { return float64(s.w), float64(s.h) }

// ClearRect implements sketch.Context. The rectangle is in device space.
func (s *Surface) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && x+w >= float64(s.w) && y+h >= float64(s.h) {
		s.dc.Clear()
		return
	}
	x0, y0 := max(0, int(math.Floor(x))), max(0, int(math.Floor(y)))
	x1, y1 := min(s.w, int(math.Ceil(x+w))), min(s.h, int(math.Ceil(y+h)))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

// ResetTransform implements sketch.Context.
func (s *Surface) ResetTransform() { s.dc.Identity() }

// Translate implements sketch.Context.
func (s *Surface) Translate(x, y float64) { s.dc.Translate(x, y) }

// Rotate implements sketch.Context.
func (s *Surface) Rotate(angle float64) { s.dc.Rotate(angle) }

// Scale implements sketch.Context.
func (s *Surface) Scale(x, y float64) { s.dc.Scale(x, y) }

// BeginPath implements sketch.Context.
func (s *Surface) BeginPath() {
	s.path = s.path[:0]
	s.hasCur = false
}

// ClosePath implements sketch.Context.
func (s *Surface) ClosePath() {
	if !s.hasCur {
		return
	}
	s.path = append(s.path, pathOp{kind: opClose})
	s.cur = s.start
}

// MoveTo implements sketch.Context.
func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, pathOp{kind: opMove, pts: [3]point{s.device(x, y)}})
	s.cur = point{x, y}
	s.start = s.cur
	s.hasCur = true
}

// LineTo implements sketch.Context. Without a current point it acts as
// MoveTo.
func (s *Surface) LineTo(x, y float64) {
	if !s.hasCur {
		s.MoveTo(x, y)
		return
	}
	s.path = append(s.path, pathOp{kind: opLine, pts: [3]point{s.device(x, y)}})
	s.cur = point{x, y}
}

func (s *Surface) cubicTo(c1, c2, p point) {
	s.path = append(s.path, pathOp{kind: opCubic, pts: [3]point{
		s.device(c1.x, c1.y), s.device(c2.x, c2.y), s.device(p.x, p.y),
	}})
	s.cur = p
}

// Rect implements sketch.Context.
func (s *Surface) Rect(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
	s.MoveTo(x, y)
}

// Arc implements sketch.Context.
func (s *Surface) Arc(x, y, r, start, end float64, ccw bool) {
	s.Ellipse(x, y, r, r, 0, start, end, ccw)
}

// Ellipse implements sketch.Context. The arc is approximated by cubic
// Béziers of at most a quarter turn each; a current point is joined to the
// arc start with a line.
func (s *Surface) Ellipse(x, y, rx, ry, rotation, start, end float64, ccw bool) {
	if rx < 0 || ry < 0 {
		return
	}
	sweep := arcSweep(start, end, ccw)
	at := func(t float64) (point, point) {
		cr, sr := math.Cos(rotation), math.Sin(rotation)
		ct, st := math.Cos(t), math.Sin(t)
		p := point{x + rx*ct*cr - ry*st*sr, y + rx*ct*sr + ry*st*cr}
		d := point{-rx*st*cr - ry*ct*sr, -rx*st*sr + ry*ct*cr}
		return p, d
	}
	p0, _ := at(start)
	if s.hasCur {
		s.LineTo(p0.x, p0.y)
	} else {
		s.MoveTo(p0.x, p0.y)
	}
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		t0 := start + float64(i)*step
		t1 := t0 + step
		a, da := at(t0)
		b, db := at(t1)
		s.cubicTo(
			point{a.x + k*da.x, a.y + k*da.y},
			point{b.x - k*db.x, b.y - k*db.y},
			b,
		)
	}
}

// arcSweep returns the signed sweep from start to end following canvas
// rules: a full turn or more draws the whole ellipse, anything else is
// reduced into one turn in the requested direction.
func arcSweep(start, end float64, ccw bool) float64 {
	const tau = 2 * math.Pi
	if !ccw {
		d := end - start
		if d >= tau {
			return tau
		}
		d = math.Mod(d, tau)
		if d < 0 {
			d += tau
		}
		return d
	}
	d := start - end
	if d >= tau {
		return -tau
	}
	d = math.Mod(d, tau)
	if d < 0 {
		d += tau
	}
	return -d
}

// ArcTo implements sketch.Context.
func (s *Surface) ArcTo(x1, y1, x2, y2, r float64) {
	if !s.hasCur {
		s.MoveTo(x1, y1)
	}
	p0 := sketch.Vec2{X: s.cur.x, Y: s.cur.y}
	t0, _, c, a0, a1, ccw, ok := sketch.ArcToGeometry(p0, sketch.Vec2{X: x1, Y: y1}, sketch.Vec2{X: x2, Y: y2}, r)
	if !ok {
		s.LineTo(x1, y1)
		return
	}
	s.LineTo(t0.X, t0.Y)
	s.Ellipse(c.X, c.Y, r, r, 0, a0, a1, ccw)
}

// Fill implements sketch.Context. The path is kept.
func (s *Surface) Fill() error {
	if len(s.path) == 0 {
		return nil
	}
	if s.shadowVisible() {
		s.dc.SetFillBrush(gg.Solid(s.shadow))
		s.emit(s.shadowDX, s.shadowDY)
		if err := s.dc.Fill(); err != nil {
			return err
		}
	}
	s.dc.SetFillBrush(gg.Solid(s.fill))
	s.emit(0, 0)
	return s.dc.Fill()
}

// Stroke implements sketch.Context. The path is kept.
func (s *Surface) Stroke() error {
	if len(s.path) == 0 {
		return nil
	}
	s.dc.SetStroke(s.strokeStyle())
	if s.shadowVisible() {
		s.dc.SetStrokeBrush(gg.Solid(s.shadow))
		s.emit(s.shadowDX, s.shadowDY)
		if err := s.dc.Stroke(); err != nil {
			return err
		}
	}
	s.dc.SetStrokeBrush(gg.Solid(s.stroke))
	s.emit(0, 0)
	return s.dc.Stroke()
}

// strokeStyle builds the gg stroke for the current state. The path is in
// device space, so widths and dashes are scaled by the transform.
func (s *Surface) strokeStyle() gg.Stroke {
	scale := s.transformScale()
	st := gg.DefaultStroke().WithWidth(s.width * scale).WithCap(ggCap(s.lineCap))
	if len(s.dash) > 0 {
		d := make([]float64, len(s.dash))
		for i, v := range s.dash {
			d[i] = v * scale
		}
		st = st.WithDashPattern(d...).WithDashOffset(s.dashOff * scale)
	}
	return st
}

func (s *Surface) transformScale() float64 {
	m := s.dc.GetTransform()
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func ggCap(c sketch.LineCap) gg.LineCap {
	switch c {
	case sketch.LineCapRound:
		return gg.LineCapRound
	case sketch.LineCapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

// emit replays the recorded device-space path into gg, offset by (dx, dy).
func (s *Surface) emit(dx, dy float64) {
	m := s.dc.GetTransform()
	s.dc.Identity()
	s.dc.ClearPath()
	for _, op := range s.path {
		switch op.kind {
		case opMove:
			s.dc.MoveTo(op.pts[0].x+dx, op.pts[0].y+dy)
		case opLine:
			s.dc.LineTo(op.pts[0].x+dx, op.pts[0].y+dy)
		case opCubic:
			s.dc.CubicTo(op.pts[0].x+dx, op.pts[0].y+dy,
				op.pts[1].x+dx, op.pts[1].y+dy,
				op.pts[2].x+dx, op.pts[2].y+dy)
		case opClose:
			s.dc.ClosePath()
		}
	}
	s.dc.SetTransform(m)
}

func (s *Surface) device(x, y float64) point {
	dx, dy := s.dc.TransformPoint(x, y)
	return point{dx, dy}
}

func (s *Surface) shadowVisible() bool {
	return s.shadowOn && s.shadow.A > 0 && (s.shadowDX != 0 || s.shadowDY != 0)
}

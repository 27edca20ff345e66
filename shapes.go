package sketch

import (
	"fmt"
	"image"
	"math"
)

// Shape is anything that can issue its drawing commands against a Context.
type Shape interface {
	Draw(ctx Context) error
}

// Regioner is implemented by shapes that can describe their own hit region.
type Regioner interface {
	Region(id string) (HitRegion, error)
}

// --- Ellipse ---

// Ellipse draws an elliptical arc centered at (X, Y). StartAngle and
// EndAngle are in radians; both zero draws the full ellipse.
type Ellipse struct {
	X, Y             float64
	RadiusX, RadiusY float64
	StartAngle       float64
	EndAngle         float64
	CounterClockwise bool
	DrawingArgs
}

func (e Ellipse) angles() (float64, float64) {
	if e.StartAngle == 0 && e.EndAngle == 0 {
		return 0, 2 * math.Pi
	}
	return e.StartAngle, e.EndAngle
}

// Draw implements Shape.
func (e Ellipse) Draw(ctx Context) error {
	start, end := e.angles()
	return Wrap(e.DrawingArgs, Vec2{e.X, e.Y}, func(ctx Context) error {
		ctx.Ellipse(e.X, e.Y, math.Abs(e.RadiusX), math.Abs(e.RadiusY), 0, start, end, e.CounterClockwise)
		return nil
	})(ctx)
}

// Region implements Regioner with a 32-gon approximation of the full ellipse.
func (e Ellipse) Region(id string) (HitRegion, error) {
	pts := ellipsePoints(e.X, e.Y, math.Abs(e.RadiusX), math.Abs(e.RadiusY), ellipseRegionSegments)
	return rotatedRegion(id, pts, e.DrawingArgs, Vec2{e.X, e.Y})
}

const ellipseRegionSegments = 32

func ellipsePoints(cx, cy, rx, ry float64, n int) []Vec2 {
	pts := make([]Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Vec2{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
	}
	return pts
}

// --- Rect ---

// Rect draws an axis-aligned rectangle, with rounded corners when Radius > 0.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Radius        float64
	DrawingArgs
}

func (r Rect) center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// Draw implements Shape.
func (r Rect) Draw(ctx Context) error {
	return Wrap(r.DrawingArgs, r.center(), func(ctx Context) error {
		if r.Radius <= 0 {
			ctx.Rect(r.X, r.Y, r.Width, r.Height)
			return nil
		}
		rad := math.Min(r.Radius, math.Min(math.Abs(r.Width), math.Abs(r.Height))/2)
		x0, y0, x1, y1 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
		ctx.MoveTo(x0+rad, y0)
		ctx.ArcTo(x1, y0, x1, y1, rad)
		ctx.ArcTo(x1, y1, x0, y1, rad)
		ctx.ArcTo(x0, y1, x0, y0, rad)
		ctx.ArcTo(x0, y0, x1, y0, rad)
		ctx.ClosePath()
		return nil
	})(ctx)
}

// Region implements Regioner.
func (r Rect) Region(id string) (HitRegion, error) {
	return rotatedRegion(id, rectPoints(r.X, r.Y, r.Width, r.Height), r.DrawingArgs, r.center())
}

func rectPoints(x, y, w, h float64) []Vec2 {
	return []Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// --- Polygon ---

// Polygon draws a closed polygon through Points (at least three).
type Polygon struct {
	Points []Vec2
	DrawingArgs
}

// Draw implements Shape.
func (p Polygon) Draw(ctx Context) error {
	if len(p.Points) < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(p.Points))
	}
	return Wrap(p.DrawingArgs, CalculateAABB(p.Points).Center(), func(ctx Context) error {
		tracePolyline(ctx, p.Points)
		ctx.ClosePath()
		return nil
	})(ctx)
}

// Region implements Regioner.
func (p Polygon) Region(id string) (HitRegion, error) {
	if len(p.Points) < 3 {
		return HitRegion{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(p.Points))
	}
	return rotatedRegion(id, p.Points, p.DrawingArgs, CalculateAABB(p.Points).Center())
}

func tracePolyline(ctx Context, pts []Vec2) {
	ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		ctx.LineTo(pt.X, pt.Y)
	}
}

// --- Line ---

// Line draws an open polyline through Points (at least two).
type Line struct {
	Points []Vec2
	DrawingArgs
}

// Draw implements Shape.
func (l Line) Draw(ctx Context) error {
	if len(l.Points) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewLinePoints, len(l.Points))
	}
	return Wrap(l.DrawingArgs, CalculateAABB(l.Points).Center(), func(ctx Context) error {
		tracePolyline(ctx, l.Points)
		return nil
	})(ctx)
}

// Region implements Regioner. The region is the polyline's bounding box
// grown by half the line width, so thin lines stay clickable.
func (l Line) Region(id string) (HitRegion, error) {
	if len(l.Points) < 2 {
		return HitRegion{}, fmt.Errorf("%w: got %d", ErrTooFewLinePoints, len(l.Points))
	}
	pts, err := rotatedPoints(l.Points, l.DrawingArgs, CalculateAABB(l.Points).Center())
	if err != nil {
		return HitRegion{}, err
	}
	return PolylineRegion(id, pts, math.Max(l.LineWidth, 1)/2), nil
}

// --- Curve ---

// Curve draws a Catmull-Rom spline through Points as a fine polyline.
// Cache may be nil, in which case every draw re-tessellates.
type Curve struct {
	Points []Vec2
	CurveOptions
	Cache *CurveCache
	DrawingArgs
}

func (c Curve) tessellate() ([]float64, error) {
	if c.Cache == nil {
		return TessellateCurve(c.Points, c.CurveOptions)
	}
	return c.Cache.Tessellate(c.Points, c.CurveOptions)
}

// Draw implements Shape.
func (c Curve) Draw(ctx Context) error {
	if len(c.Points) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewCurvePoints, len(c.Points))
	}
	buf, err := c.tessellate()
	if err != nil {
		return err
	}
	return Wrap(c.DrawingArgs, CalculateAABB(c.Points).Center(), func(ctx Context) error {
		ctx.MoveTo(buf[0], buf[1])
		for i := 2; i+1 < len(buf); i += 2 {
			ctx.LineTo(buf[i], buf[i+1])
		}
		if c.Close {
			ctx.ClosePath()
		}
		return nil
	})(ctx)
}

// Region implements Regioner. Closed curves hit-test their tessellated
// outline; open curves use a padded polyline box like Line.
func (c Curve) Region(id string) (HitRegion, error) {
	buf, err := c.tessellate()
	if err != nil {
		return HitRegion{}, err
	}
	pts, err := rotatedPoints(unflatten(buf), c.DrawingArgs, CalculateAABB(c.Points).Center())
	if err != nil {
		return HitRegion{}, err
	}
	if c.Close {
		return NewHitRegion(id, pts), nil
	}
	return PolylineRegion(id, pts, math.Max(c.LineWidth, 1)/2), nil
}

// --- ArcTo ---

// ArcTo draws a polyline through Points whose interior corners are rounded
// with Radius. Closed paths round every corner and need three points.
type ArcTo struct {
	Points []Vec2
	Radius float64
	Close  bool
	DrawingArgs
}

// Draw implements Shape.
func (a ArcTo) Draw(ctx Context) error {
	n := len(a.Points)
	if a.Close && n < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}
	if n < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewLinePoints, n)
	}
	return Wrap(a.DrawingArgs, CalculateAABB(a.Points).Center(), func(ctx Context) error {
		pts := a.Points
		if !a.Close {
			ctx.MoveTo(pts[0].X, pts[0].Y)
			for i := 1; i < n-1; i++ {
				ctx.ArcTo(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, a.Radius)
			}
			ctx.LineTo(pts[n-1].X, pts[n-1].Y)
			return nil
		}
		// Start mid-way along the closing edge so every vertex gets a corner.
		start := pts[n-1].Add(pts[0]).Scale(0.5)
		ctx.MoveTo(start.X, start.Y)
		for i := 0; i < n; i++ {
			next := pts[(i+1)%n]
			ctx.ArcTo(pts[i].X, pts[i].Y, next.X, next.Y, a.Radius)
		}
		ctx.ClosePath()
		return nil
	})(ctx)
}

// Region implements Regioner.
func (a ArcTo) Region(id string) (HitRegion, error) {
	if len(a.Points) < 2 {
		return HitRegion{}, fmt.Errorf("%w: got %d", ErrTooFewLinePoints, len(a.Points))
	}
	if a.Close {
		return rotatedRegion(id, a.Points, a.DrawingArgs, CalculateAABB(a.Points).Center())
	}
	pts, err := rotatedPoints(a.Points, a.DrawingArgs, CalculateAABB(a.Points).Center())
	if err != nil {
		return HitRegion{}, err
	}
	return PolylineRegion(id, pts, math.Max(a.LineWidth, 1)/2), nil
}

// --- Path ---

// Path replays arbitrary path commands (MoveTo, LineTo, Arc, Ellipse, ArcTo,
// Rect, ClosePath) between the wrapper's pre and post steps. Non-path
// commands are rejected.
type Path struct {
	Commands []Command
	DrawingArgs
}

// Draw implements Shape.
func (p Path) Draw(ctx Context) error {
	for _, c := range p.Commands {
		if !isPathOp(c.Op) {
			return fmt.Errorf("sketch: path cannot contain %s", c.Op)
		}
	}
	return Wrap(p.DrawingArgs, p.bounds().Center(), func(ctx Context) error {
		for _, c := range p.Commands {
			if err := c.apply(ctx); err != nil {
				return err
			}
		}
		return nil
	})(ctx)
}

func (p Path) bounds() AABB {
	var pts []Vec2
	for _, c := range p.Commands {
		for i := 0; i+1 < len(c.Args); i += 2 {
			pts = append(pts, Vec2{c.Args[i], c.Args[i+1]})
		}
	}
	return CalculateAABB(pts)
}

func isPathOp(op OpType) bool {
	switch op {
	case OpMoveTo, OpLineTo, OpArc, OpEllipse, OpArcTo, OpRect, OpClosePath:
		return true
	}
	return false
}

// MoveToCmd returns a moveTo path command.
func MoveToCmd(x, y float64) Command { return Command{Op: OpMoveTo, Args: []float64{x, y}} }

// LineToCmd returns a lineTo path command.
func LineToCmd(x, y float64) Command { return Command{Op: OpLineTo, Args: []float64{x, y}} }

// ArcToCmd returns an arcTo path command.
func ArcToCmd(x1, y1, x2, y2, r float64) Command {
	return Command{Op: OpArcTo, Args: []float64{x1, y1, x2, y2, r}}
}

// ClosePathCmd returns a closePath command.
func ClosePathCmd() Command { return Command{Op: OpClosePath} }

// --- Image ---

// Image draws Src scaled into the rectangle (X, Y, Width, Height). Zero
// Width or Height use the source's natural size.
type Image struct {
	Src           image.Image
	X, Y          float64
	Width, Height float64
	DrawingArgs
}

func (im Image) size() (float64, float64) {
	w, h := im.Width, im.Height
	if im.Src != nil {
		b := im.Src.Bounds()
		if w == 0 {
			w = float64(b.Dx())
		}
		if h == 0 {
			h = float64(b.Dy())
		}
	}
	return w, h
}

// Draw implements Shape.
func (im Image) Draw(ctx Context) error {
	if im.Src == nil {
		return ErrNoImage
	}
	w, h := im.size()
	return wrapPainted(im.DrawingArgs, Vec2{im.X + w/2, im.Y + h/2}, func(ctx Context) error {
		return ctx.DrawImage(im.Src, im.X, im.Y, w, h)
	})(ctx)
}

// Region implements Regioner.
func (im Image) Region(id string) (HitRegion, error) {
	w, h := im.size()
	return rotatedRegion(id, rectPoints(im.X, im.Y, w, h), im.DrawingArgs, Vec2{im.X + w/2, im.Y + h/2})
}

// --- Text ---

// Text draws a single line of text anchored at (X, Y). Exactly one of
// FillStyle and StrokeStyle must be set.
type Text struct {
	Text     string
	X, Y     float64
	Font     string
	Align    TextAlign
	Baseline TextBaseline
	MaxWidth float64
	DrawingArgs
}

func (t Text) validate() error {
	switch {
	case t.FillStyle != "" && t.StrokeStyle != "":
		return ErrAmbiguousStyle
	case t.FillStyle == "" && t.StrokeStyle == "":
		return ErrNoStyle
	}
	return nil
}

// Draw implements Shape.
func (t Text) Draw(ctx Context) error {
	if err := t.validate(); err != nil {
		return err
	}
	return wrapPainted(t.DrawingArgs, Vec2{t.X, t.Y}, func(ctx Context) error {
		if t.Font != "" {
			ctx.SetFont(t.Font)
		}
		ctx.SetTextAlign(t.Align)
		ctx.SetTextBaseline(t.Baseline)
		if t.FillStyle != "" {
			return ctx.FillText(t.Text, t.X, t.Y, t.MaxWidth)
		}
		return ctx.StrokeText(t.Text, t.X, t.Y, t.MaxWidth)
	})(ctx)
}

// Bounds estimates the text box using ctx's metrics for the text's font.
func (t Text) Bounds(ctx Context) AABB {
	if t.Font != "" {
		ctx.SetFont(t.Font)
	}
	m := ctx.MeasureText(t.Text)
	w := m.Width
	if t.MaxWidth > 0 && w > t.MaxWidth {
		w = t.MaxWidth
	}
	x := t.X
	switch t.Align {
	case TextAlignCenter:
		x -= w / 2
	case TextAlignEnd:
		x -= w
	}
	top := t.Y - m.Ascent
	switch t.Baseline {
	case TextBaselineTop:
		top = t.Y
	case TextBaselineMiddle:
		top = t.Y - (m.Ascent+m.Descent)/2
	case TextBaselineBottom:
		top = t.Y - (m.Ascent + m.Descent)
	}
	return AABB{x, top, x + w, top + m.Ascent + m.Descent}
}

// TextRegion builds a hit region for t measured against ctx.
func TextRegion(id string, t Text, ctx Context) (HitRegion, error) {
	if ctx == nil {
		return HitRegion{}, ErrNoContext
	}
	b := t.Bounds(ctx)
	return rotatedRegion(id, rectPoints(b.MinX, b.MinY, b.Width(), b.Height()), t.DrawingArgs, Vec2{t.X, t.Y})
}

// rotatedRegion validates rotation and builds a region from points rotated
// the same way the wrapper rotates the drawing.
func rotatedRegion(id string, pts []Vec2, args DrawingArgs, pivot Vec2) (HitRegion, error) {
	pts, err := rotatedPoints(pts, args, pivot)
	if err != nil {
		return HitRegion{}, err
	}
	return NewHitRegion(id, pts), nil
}

// rotatedPoints validates rotation and returns pts rotated about the pivot.
func rotatedPoints(pts []Vec2, args DrawingArgs, pivot Vec2) ([]Vec2, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	if args.Rotation > 0 {
		pts = RotatePoints(pts, args.pivot(pivot), args.Rotation)
	}
	return pts, nil
}

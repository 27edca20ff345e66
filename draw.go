package sketch

import "fmt"

// DrawingArgs is the styling contract shared by every primitive. Zero values
// mean "unset": an empty FillStyle skips the fill, an empty StrokeStyle skips
// the stroke, a zero LineWidth keeps the context's current width.
type DrawingArgs struct {
	FillStyle      string
	StrokeStyle    string
	LineWidth      float64
	LineDash       []float64
	LineDashOffset float64
	LineCap        LineCap

	ShadowColor   string
	ShadowBlur    float64
	ShadowOffsetX float64
	ShadowOffsetY float64

	// Filter is a CSS filter string ("blur(2px)", "grayscale(1)", ...).
	Filter string

	// Rotation in degrees, [0, 360]. Applied about Center, or about the
	// primitive's own pivot when Center is nil.
	Rotation float64
	Center   *Vec2
}

// Validate checks the caller contract of the arguments.
func (a DrawingArgs) Validate() error {
	if !(a.Rotation >= 0 && a.Rotation <= 360) {
		return fmt.Errorf("%w: got %g", ErrInvalidRotation, a.Rotation)
	}
	return nil
}

// pivot returns the rotation center: Center when set, otherwise def.
func (a DrawingArgs) pivot(def Vec2) Vec2 {
	if a.Center != nil {
		return *a.Center
	}
	return def
}

// applyRotation rotates ctx about the pivot: translate to center, rotate,
// translate back. No-op for a zero rotation.
func (a DrawingArgs) applyRotation(ctx Context, def Vec2) {
	if a.Rotation <= 0 {
		return
	}
	c := a.pivot(def)
	ctx.Translate(c.X, c.Y)
	ctx.Rotate(degToRad(a.Rotation))
	ctx.Translate(-c.X, -c.Y)
}

// applyStyle pushes shadow, line, filter and paint state to ctx.
func (a DrawingArgs) applyStyle(ctx Context) {
	if a.ShadowColor != "" {
		ctx.SetShadow(a.ShadowColor, a.ShadowBlur, a.ShadowOffsetX, a.ShadowOffsetY)
	}
	if a.LineWidth > 0 {
		ctx.SetLineWidth(a.LineWidth)
	}
	if len(a.LineDash) > 0 {
		ctx.SetLineDash(a.LineDash)
		ctx.SetLineDashOffset(a.LineDashOffset)
	}
	ctx.SetLineCap(a.LineCap)
	if a.Filter != "" {
		ctx.SetFilter(a.Filter)
	}
	if a.StrokeStyle != "" {
		ctx.SetStrokeStyle(a.StrokeStyle)
	}
	if a.FillStyle != "" {
		ctx.SetFillStyle(a.FillStyle)
	}
}

// resetStyle undoes the sticky parts of applyStyle that the render loop does
// not reset on its own: shadow and filter.
func (a DrawingArgs) resetStyle(ctx Context) {
	if a.ShadowColor != "" {
		ctx.SetShadow("", 0, 0, 0)
	}
	if a.Filter != "" {
		ctx.SetFilter("")
	}
}

// PathFunc issues the path commands of one primitive against ctx.
type PathFunc func(ctx Context) error

// Wrap returns the canonical draw function for a path primitive. The
// returned function validates args, begins a new path, rotates about the
// pivot, applies styling, runs path, then strokes and fills (stroke first,
// each only when its style is set).
func Wrap(args DrawingArgs, pivot Vec2, path PathFunc) func(ctx Context) error {
	return func(ctx Context) error {
		if ctx == nil {
			return ErrNoContext
		}
		if err := args.Validate(); err != nil {
			return err
		}
		ctx.BeginPath()
		args.applyRotation(ctx, pivot)
		args.applyStyle(ctx)
		defer args.resetStyle(ctx)

		if err := path(ctx); err != nil {
			return err
		}
		if args.StrokeStyle != "" {
			if err := ctx.Stroke(); err != nil {
				return fmt.Errorf("stroke: %w", err)
			}
		}
		if args.FillStyle != "" {
			if err := ctx.Fill(); err != nil {
				return fmt.Errorf("fill: %w", err)
			}
		}
		return nil
	}
}

// wrapPainted is Wrap for primitives that paint themselves (text, images):
// the same pre steps, but body does the painting and no path is filled.
func wrapPainted(args DrawingArgs, pivot Vec2, body PathFunc) func(ctx Context) error {
	return func(ctx Context) error {
		if ctx == nil {
			return ErrNoContext
		}
		if err := args.Validate(); err != nil {
			return err
		}
		ctx.BeginPath()
		args.applyRotation(ctx, pivot)
		args.applyStyle(ctx)
		defer args.resetStyle(ctx)
		return body(ctx)
	}
}

package sketch

import "image"

// Context is the 2D rendering context every primitive draws against. Its
// method set mirrors the HTML canvas 2D API: path construction, style state,
// transform state, text and images. The render loop shares one Context
// between all registered draw callbacks, so primitives must leave it in the
// state the loop resets between callbacks (identity transform, empty path,
// no line dash).
//
// Style strings are CSS-like colors ("#rrggbb", "#rgb", "#rrggbbaa" or a
// small set of named colors); an empty string means "unset".
type Context interface {
	// Size returns the surface dimensions in logical pixels.
	Size() (width, height float64)
	// ClearRect clears the given rectangle to transparent.
	ClearRect(x, y, w, h float64)

	ResetTransform()
	Translate(x, y float64)
	// Rotate rotates the current transform by angle radians.
	Rotate(angle float64)
	Scale(x, y float64)

	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc centered at (x, y). Angles are in radians.
	Arc(x, y, r, start, end float64, counterclockwise bool)
	// Ellipse adds an elliptical arc; rotation is in radians.
	Ellipse(x, y, rx, ry, rotation, start, end float64, counterclockwise bool)
	// ArcTo adds a rounded corner joining the current point, (x1, y1) and
	// (x2, y2) with the given radius.
	ArcTo(x1, y1, x2, y2, r float64)
	Rect(x, y, w, h float64)
	Fill() error
	Stroke() error

	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(w float64)
	SetLineDash(segments []float64)
	SetLineDashOffset(offset float64)
	SetLineCap(c LineCap)
	SetShadow(color string, blur, offsetX, offsetY float64)
	SetFilter(filter string)

	// SetFont sets the font using a CSS font shorthand such as "16px sans-serif".
	SetFont(font string)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)
	// FillText draws text. A maxWidth <= 0 means unconstrained.
	FillText(text string, x, y, maxWidth float64) error
	StrokeText(text string, x, y, maxWidth float64) error
	MeasureText(text string) TextMetrics

	DrawImage(img image.Image, x, y, w, h float64) error
}

// TextMetrics describes the extent of a measured string.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

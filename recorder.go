package sketch

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// OpType identifies a recorded Context call.
type OpType uint8

const (
	OpClearRect OpType = iota
	OpResetTransform
	OpTranslate
	OpRotate
	OpScale
	OpBeginPath
	OpClosePath
	OpMoveTo
	OpLineTo
	OpArc
	OpEllipse
	OpArcTo
	OpRect
	OpFill
	OpStroke
	OpSetFillStyle
	OpSetStrokeStyle
	OpSetLineWidth
	OpSetLineDash
	OpSetLineDashOffset
	OpSetLineCap
	OpSetShadow
	OpSetFilter
	OpSetFont
	OpSetTextAlign
	OpSetTextBaseline
	OpFillText
	OpStrokeText
	OpDrawImage
)

var opTypeNames = [...]string{
	OpClearRect:         "clearRect",
	OpResetTransform:    "resetTransform",
	OpTranslate:         "translate",
	OpRotate:            "rotate",
	OpScale:             "scale",
	OpBeginPath:         "beginPath",
	OpClosePath:         "closePath",
	OpMoveTo:            "moveTo",
	OpLineTo:            "lineTo",
	OpArc:               "arc",
	OpEllipse:           "ellipse",
	OpArcTo:             "arcTo",
	OpRect:              "rect",
	OpFill:              "fill",
	OpStroke:            "stroke",
	OpSetFillStyle:      "fillStyle",
	OpSetStrokeStyle:    "strokeStyle",
	OpSetLineWidth:      "lineWidth",
	OpSetLineDash:       "setLineDash",
	OpSetLineDashOffset: "lineDashOffset",
	OpSetLineCap:        "lineCap",
	OpSetShadow:         "shadow",
	OpSetFilter:         "filter",
	OpSetFont:           "font",
	OpSetTextAlign:      "textAlign",
	OpSetTextBaseline:   "textBaseline",
	OpFillText:          "fillText",
	OpStrokeText:        "strokeText",
	OpDrawImage:         "drawImage",
}

// String returns the canvas-style name of the operation.
func (o OpType) String() string {
	if int(o) < len(opTypeNames) {
		return opTypeNames[o]
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Command is one recorded Context call. Numeric arguments are kept in call
// order in Args; string arguments (styles, fonts, text) go in Str.
type Command struct {
	Op    OpType
	Args  []float64
	Str   string
	Image image.Image
}

// String formats the command as "op(arg, arg, ...)".
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	if c.Str != "" {
		parts = append(parts, strconv.Quote(c.Str))
	}
	for _, a := range c.Args {
		parts = append(parts, strconv.FormatFloat(a, 'g', 6, 64))
	}
	return fmt.Sprintf("%s(%s)", c.Op, strings.Join(parts, ", "))
}

// Recorder is an in-memory Context that records every call instead of
// rasterizing. It backs headless rendering and tests, and a recording can be
// replayed onto any other Context with Playback.
type Recorder struct {
	width, height float64
	commands      []Command
	font          string
}

var _ Context = (*Recorder)(nil)

// NewRecorder creates a recorder reporting the given surface size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height, font: defaultFont}
}

// Commands returns the recorded commands. The returned slice MUST NOT be mutated.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Ops returns just the operation of each recorded command, in order.
func (r *Recorder) Ops() []OpType {
	ops := make([]OpType, len(r.commands))
	for i, c := range r.commands {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many commands with the given op were recorded.
func (r *Recorder) Count(op OpType) int {
	n := 0
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Playback replays the recorded commands onto ctx in order. It stops at the
// first failing Fill, Stroke, text or image call and returns its error.
func (r *Recorder) Playback(ctx Context) error {
	for _, c := range r.commands {
		if err := c.apply(ctx); err != nil {
			return fmt.Errorf("playback %s: %w", c.Op, err)
		}
	}
	return nil
}

func (c Command) apply(ctx Context) error {
	a := c.Args
	switch c.Op {
	case OpClearRect:
		ctx.ClearRect(a[0], a[1], a[2], a[3])
	case OpResetTransform:
		ctx.ResetTransform()
	case OpTranslate:
		ctx.Translate(a[0], a[1])
	case OpRotate:
		ctx.Rotate(a[0])
	case OpScale:
		ctx.Scale(a[0], a[1])
	case OpBeginPath:
		ctx.BeginPath()
	case OpClosePath:
		ctx.ClosePath()
	case OpMoveTo:
		ctx.MoveTo(a[0], a[1])
	case OpLineTo:
		ctx.LineTo(a[0], a[1])
	case OpArc:
		ctx.Arc(a[0], a[1], a[2], a[3], a[4], a[5] != 0)
	case OpEllipse:
		ctx.Ellipse(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7] != 0)
	case OpArcTo:
		ctx.ArcTo(a[0], a[1], a[2], a[3], a[4])
	case OpRect:
		ctx.Rect(a[0], a[1], a[2], a[3])
	case OpFill:
		return ctx.Fill()
	case OpStroke:
		return ctx.Stroke()
	case OpSetFillStyle:
		ctx.SetFillStyle(c.Str)
	case OpSetStrokeStyle:
		ctx.SetStrokeStyle(c.Str)
	case OpSetLineWidth:
		ctx.SetLineWidth(a[0])
	case OpSetLineDash:
		ctx.SetLineDash(a)
	case OpSetLineDashOffset:
		ctx.SetLineDashOffset(a[0])
	case OpSetLineCap:
		ctx.SetLineCap(LineCap(a[0]))
	case OpSetShadow:
		ctx.SetShadow(c.Str, a[0], a[1], a[2])
	case OpSetFilter:
		ctx.SetFilter(c.Str)
	case OpSetFont:
		ctx.SetFont(c.Str)
	case OpSetTextAlign:
		ctx.SetTextAlign(TextAlign(a[0]))
	case OpSetTextBaseline:
		ctx.SetTextBaseline(TextBaseline(a[0]))
	case OpFillText:
		return ctx.FillText(c.Str, a[0], a[1], a[2])
	case OpStrokeText:
		return ctx.StrokeText(c.Str, a[0], a[1], a[2])
	case OpDrawImage:
		return ctx.DrawImage(c.Image, a[0], a[1], a[2], a[3])
	}
	return nil
}

func (r *Recorder) record(op OpType, args ...float64) {
	r.commands = append(r.commands, Command{Op: op, Args: args})
}

func (r *Recorder) recordStr(op OpType, s string, args ...float64) {
	r.commands = append(r.commands, Command{Op: op, Str: s, Args: args})
}

func boolArg(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) ClearRect(x, y, w, h float64) { r.record(OpClearRect, x, y, w, h) }
func (r *Recorder) ResetTransform()              { r.record(OpResetTransform) }
func (r *Recorder) Translate(x, y float64)       { r.record(OpTranslate, x, y) }
func (r *Recorder) Rotate(angle float64)         { r.record(OpRotate, angle) }
func (r *Recorder) Scale(x, y float64)           { r.record(OpScale, x, y) }
func (r *Recorder) BeginPath()                   { r.record(OpBeginPath) }
func (r *Recorder) ClosePath()                   { r.record(OpClosePath) }
func (r *Recorder) MoveTo(x, y float64)          { r.record(OpMoveTo, x, y) }
func (r *Recorder) LineTo(x, y float64)          { r.record(OpLineTo, x, y) }

func (r *Recorder) Arc(x, y, radius, start, end float64, ccw bool) {
	r.record(OpArc, x, y, radius, start, end, boolArg(ccw))
}

func (r *Recorder) Ellipse(x, y, rx, ry, rotation, start, end float64, ccw bool) {
	r.record(OpEllipse, x, y, rx, ry, rotation, start, end, boolArg(ccw))
}

func (r *Recorder) ArcTo(x1, y1, x2, y2, radius float64) {
	r.record(OpArcTo, x1, y1, x2, y2, radius)
}

func (r *Recorder) Rect(x, y, w, h float64) { r.record(OpRect, x, y, w, h) }

func (r *Recorder) Fill() error {
	r.record(OpFill)
	return nil
}

func (r *Recorder) Stroke() error {
	r.record(OpStroke)
	return nil
}

func (r *Recorder) SetFillStyle(style string)   { r.recordStr(OpSetFillStyle, style) }
func (r *Recorder) SetStrokeStyle(style string) { r.recordStr(OpSetStrokeStyle, style) }
func (r *Recorder) SetLineWidth(w float64)      { r.record(OpSetLineWidth, w) }

func (r *Recorder) SetLineDash(segments []float64) {
	r.record(OpSetLineDash, append([]float64(nil), segments...)...)
}

func (r *Recorder) SetLineDashOffset(offset float64) { r.record(OpSetLineDashOffset, offset) }
func (r *Recorder) SetLineCap(c LineCap)             { r.record(OpSetLineCap, float64(c)) }

func (r *Recorder) SetShadow(color string, blur, offsetX, offsetY float64) {
	r.recordStr(OpSetShadow, color, blur, offsetX, offsetY)
}

func (r *Recorder) SetFilter(filter string) { r.recordStr(OpSetFilter, filter) }

func (r *Recorder) SetFont(font string) {
	r.font = font
	r.recordStr(OpSetFont, font)
}

func (r *Recorder) SetTextAlign(a TextAlign)       { r.record(OpSetTextAlign, float64(a)) }
func (r *Recorder) SetTextBaseline(b TextBaseline) { r.record(OpSetTextBaseline, float64(b)) }

func (r *Recorder) FillText(text string, x, y, maxWidth float64) error {
	r.recordStr(OpFillText, text, x, y, maxWidth)
	return nil
}

func (r *Recorder) StrokeText(text string, x, y, maxWidth float64) error {
	r.recordStr(OpStrokeText, text, x, y, maxWidth)
	return nil
}

// MeasureText approximates metrics from the font size: each rune advances
// 0.6em, ascent is 0.8em and descent 0.2em.
func (r *Recorder) MeasureText(text string) TextMetrics {
	size := ParseFontSize(r.font)
	n := float64(len([]rune(text)))
	return TextMetrics{Width: n * size * 0.6, Ascent: size * 0.8, Descent: size * 0.2}
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) error {
	if img == nil {
		return ErrNoImage
	}
	r.commands = append(r.commands, Command{Op: OpDrawImage, Args: []float64{x, y, w, h}, Image: img})
	return nil
}

const (
	defaultFont     = "10px sans-serif"
	defaultFontSize = 10.0
)

// ParseFontSize extracts the pixel size from a CSS font shorthand such as
// "bold 16px sans-serif" or "12pt serif". Unparseable input yields 10.
func ParseFontSize(font string) float64 {
	for _, field := range strings.Fields(font) {
		var unit float64
		var num string
		switch {
		case strings.HasSuffix(field, "px"):
			num, unit = strings.TrimSuffix(field, "px"), 1
		case strings.HasSuffix(field, "pt"):
			num, unit = strings.TrimSuffix(field, "pt"), 4.0/3.0
		default:
			continue
		}
		if v, err := strconv.ParseFloat(num, 64); err == nil && v > 0 {
			return v * unit
		}
	}
	return defaultFontSize
}

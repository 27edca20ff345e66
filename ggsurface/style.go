package ggsurface

import (
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/phanxgames/sketch"
)

// setColor parses style into dst, keeping the previous color when style is
// not a valid color, as a canvas context does.
func setColor(dst *gg.RGBA, style, what string) {
	c, err := ParseColor(style)
	if err != nil {
		sketch.Logger().Debug("ignoring color", slog.String("property", what), slog.Any("error", err))
		return
	}
	*dst = c
}

// SetFillStyle implements sketch.Context.
func (s *Surface) SetFillStyle(style string) { setColor(&s.fill, style, "fillStyle") }

// SetStrokeStyle implements sketch.Context.
func (s *Surface) SetStrokeStyle(style string) { setColor(&s.stroke, style, "strokeStyle") }

// SetLineWidth implements sketch.Context. Non-positive widths are ignored.
func (s *Surface) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		s.width = w
	}
}

// SetLineDash implements sketch.Context. A nil or empty slice clears the
// dash. Lists containing negative values are ignored; odd-length lists are
// repeated to even length.
func (s *Surface) SetLineDash(segments []float64) {
	if len(segments) == 0 {
		s.dash = nil
		return
	}
	for _, v := range segments {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	d := append([]float64(nil), segments...)
	if len(d)%2 == 1 {
		d = append(d, segments...)
	}
	s.dash = d
}

// SetLineDashOffset implements sketch.Context.
func (s *Surface) SetLineDashOffset(offset float64) { s.dashOff = offset }

// SetLineCap implements sketch.Context.
func (s *Surface) SetLineCap(c sketch.LineCap) { s.lineCap = c }

// SetShadow implements sketch.Context. An empty color turns the shadow off.
// Blur is not rasterized.
func (s *Surface) SetShadow(color string, _, offsetX, offsetY float64) {
	if color == "" {
		s.shadowOn = false
		return
	}
	c, err := ParseColor(color)
	if err != nil {
		sketch.Logger().Debug("ignoring shadow color", slog.Any("error", err))
		return
	}
	s.shadow, s.shadowOn = c, true
	s.shadowDX, s.shadowDY = offsetX, offsetY
}

// SetFilter implements sketch.Context.
func (s *Surface) SetFilter(filter string) { s.filter = filter }

// SetFont implements sketch.Context. Only the size of the shorthand is
// honored; every family maps to the surface font.
func (s *Surface) SetFont(font string) {
	s.font = font
	s.fontSize = sketch.ParseFontSize(font)
}

// SetTextAlign implements sketch.Context.
func (s *Surface) SetTextAlign(a sketch.TextAlign) { s.align = a }

// SetTextBaseline implements sketch.Context.
func (s *Surface) SetTextBaseline(b sketch.TextBaseline) { s.baseline = b }

// face returns the font face for size, cached at quarter-pixel steps.
func (s *Surface) face(size float64) text.Face {
	key := int(math.Round(size * 4))
	return s.faces.GetOrCreate(key, func() text.Face {
		return s.source.Face(float64(key) / 4)
	})
}

// layout picks the face for str, shrinking it to fit maxWidth, and returns
// the baseline origin in device space.
func (s *Surface) layout(str string, x, y, maxWidth float64) (text.Face, float64, float64) {
	f := s.face(s.fontSize)
	w := f.Advance(str)
	if maxWidth > 0 && w > maxWidth {
		f = s.face(s.fontSize * maxWidth / w)
		w = f.Advance(str)
	}
	switch s.align {
	case sketch.TextAlignCenter:
		x -= w / 2
	case sketch.TextAlignEnd:
		x -= w
	}
	m := f.Metrics()
	switch s.baseline {
	case sketch.TextBaselineTop:
		y += m.Ascent
	case sketch.TextBaselineMiddle:
		y += (m.Ascent - m.Descent) / 2
	case sketch.TextBaselineBottom:
		y -= m.Descent
	}
	dx, dy := s.dc.TransformPoint(x, y)
	return f, dx, dy
}

func (s *Surface) paintText(str string, x, y, maxWidth float64, col gg.RGBA) error {
	if str == "" {
		return nil
	}
	f, dx, dy := s.layout(str, x, y, maxWidth)
	s.dc.SetFont(f)
	if s.shadowVisible() {
		s.dc.SetColor(s.shadow.Color())
		s.dc.DrawString(str, dx+s.shadowDX, dy+s.shadowDY)
	}
	s.dc.SetColor(col.Color())
	s.dc.DrawString(str, dx, dy)
	return nil
}

// FillText implements sketch.Context.
func (s *Surface) FillText(str string, x, y, maxWidth float64) error {
	return s.paintText(str, x, y, maxWidth, s.fill)
}

// StrokeText implements sketch.Context. Glyph outlines are not available,
// so the text is painted solid in the stroke color.
func (s *Surface) StrokeText(str string, x, y, maxWidth float64) error {
	return s.paintText(str, x, y, maxWidth, s.stroke)
}

// MeasureText implements sketch.Context.
func (s *Surface) MeasureText(str string) sketch.TextMetrics {
	f := s.face(s.fontSize)
	m := f.Metrics()
	return sketch.TextMetrics{Width: f.Advance(str), Ascent: m.Ascent, Descent: m.Descent}
}

// DrawImage implements sketch.Context. Zero w or h use the image's natural
// size. Converted images are cached by identity.
func (s *Surface) DrawImage(img image.Image, x, y, w, h float64) error {
	if img == nil {
		return sketch.ErrNoImage
	}
	buf, ok := s.images.Get(img)
	if !ok {
		buf = gg.ImageBufFromImage(img)
		s.images.Add(img, buf)
	}
	s.dc.DrawImageEx(buf, gg.DrawImageOptions{
		X: x, Y: y,
		DstWidth:  w,
		DstHeight: h,
		Opacity:   1,
	})
	return nil
}

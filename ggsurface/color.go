package ggsurface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor converts a CSS-style color string to a gg color. It accepts
// "#rgb", "#rgba", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)", "rgba(r, g, b, a)",
// "transparent" and the SVG 1.1 color keywords.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return gg.RGBA{}, fmt.Errorf("ggsurface: empty color")
	case s == "transparent":
		return gg.Transparent, nil
	case strings.HasPrefix(s, "#"):
		if !validHex(s[1:]) {
			return gg.RGBA{}, fmt.Errorf("ggsurface: invalid hex color %q", s)
		}
		return gg.Hex(s), nil
	case strings.HasPrefix(s, "rgb"):
		return parseFunctional(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return gg.FromColor(c), nil
	}
	return gg.RGBA{}, fmt.Errorf("ggsurface: unknown color %q", s)
}

func validHex(h string) bool {
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	_, err := strconv.ParseUint(h, 16, 32)
	return err == nil
}

// parseFunctional parses rgb(...) and rgba(...).
func parseFunctional(s string) (gg.RGBA, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return gg.RGBA{}, fmt.Errorf("ggsurface: invalid color %q", s)
	}
	fields := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return gg.RGBA{}, fmt.Errorf("ggsurface: invalid color %q", s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, f := range fields {
		pct := strings.HasSuffix(f, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("ggsurface: invalid color %q: %w", s, err)
		}
		switch {
		case pct:
			v /= 100
		case i < 3:
			v /= 255
		}
		ch[i] = clamp01(v)
	}
	return gg.RGBA2(ch[0], ch[1], ch[2], ch[3]), nil
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

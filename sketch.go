package sketch

import "errors"

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// AABB is an axis-aligned bounding box. The coordinate system has its origin
// at the top-left, with Y increasing downward. A normalized AABB has
// MinX <= MaxX and MinY <= MaxY.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX-MinX.
func (b AABB) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b AABB) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b AABB) Center() Vec2 {
	return Vec2{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// Contains reports whether p lies inside the box.
// Points on the edge are considered inside.
func (b AABB) Contains(p Vec2) bool {
	return PointInAABB(p, b)
}

// Pad returns the box grown by d on every side. Negative values shrink it,
// but never past its center.
func (b AABB) Pad(d float64) AABB {
	out := AABB{b.MinX - d, b.MinY - d, b.MaxX + d, b.MaxY + d}
	if out.MinX > out.MaxX {
		c := (b.MinX + b.MaxX) / 2
		out.MinX, out.MaxX = c, c
	}
	if out.MinY > out.MaxY {
		c := (b.MinY + b.MaxY) / 2
		out.MinY, out.MaxY = c, c
	}
	return out
}

// Normalize swaps inverted edges so that MinX <= MaxX and MinY <= MaxY.
func (b AABB) Normalize() AABB {
	if b.MinX > b.MaxX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}
	if b.MinY > b.MaxY {
		b.MinY, b.MaxY = b.MaxY, b.MinY
	}
	return b
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventClick        EventType = iota // fires on a click over a region
	EventPointerDown                   // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires on every move over a region
	EventPointerEnter                  // fires when the pointer enters a region
	EventPointerLeave                  // fires when the pointer leaves a region
)

var eventTypeNames = [...]string{
	EventClick:        "click",
	EventPointerDown:  "pointerdown",
	EventPointerUp:    "pointerup",
	EventPointerMove:  "pointermove",
	EventPointerEnter: "pointerenter",
	EventPointerLeave: "pointerleave",
}

// String returns the DOM-style event name ("click", "pointerdown", ...).
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// LineCap selects how the ends of stroked open subpaths are drawn.
type LineCap uint8

const (
	LineCapButt   LineCap = iota // flat edge at the endpoint (default)
	LineCapRound                 // semicircle past the endpoint
	LineCapSquare                // half-square past the endpoint
)

// TextAlign controls horizontal text alignment relative to the anchor x.
type TextAlign uint8

const (
	TextAlignStart  TextAlign = iota // anchor at the start (left) edge
	TextAlignCenter                  // anchor at the center
	TextAlignEnd                     // anchor at the end (right) edge
)

// TextBaseline controls vertical text alignment relative to the anchor y.
type TextBaseline uint8

const (
	TextBaselineAlphabetic TextBaseline = iota // anchor on the alphabetic baseline
	TextBaselineTop                            // anchor at the top of the em box
	TextBaselineMiddle                         // anchor at the middle of the em box
	TextBaselineBottom                         // anchor at the bottom of the em box
)

// Errors reported by primitives, the render loop and the interaction layer.
var (
	ErrTooFewPoints      = errors.New("sketch: polygon needs at least 3 points")
	ErrTooFewLinePoints  = errors.New("sketch: line needs at least 2 points")
	ErrTooFewCurvePoints = errors.New("sketch: curve needs at least 2 points")
	ErrInvalidRotation   = errors.New("sketch: rotation must be within [0, 360]")
	ErrAmbiguousStyle    = errors.New("sketch: text accepts either fillStyle or strokeStyle, not both")
	ErrNoStyle           = errors.New("sketch: text needs a fillStyle or a strokeStyle")
	ErrNoCanvas          = errors.New("sketch: no active canvas; pass a handle created with sketch.New")
	ErrNoContext         = errors.New("sketch: nil rendering context")
	ErrInvalidDuration   = errors.New("sketch: animation duration must be positive")
	ErrLoopRunning       = errors.New("sketch: render loop already running")
	ErrInvalidSize       = errors.New("sketch: size must be positive")
	ErrNoScheduler       = errors.New("sketch: nil frame scheduler")
	ErrNoImage           = errors.New("sketch: image primitive needs a source image")
)

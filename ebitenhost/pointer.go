package ebitenhost

import "github.com/phanxgames/sketch"

// pointerSample is the mouse state polled once per tick.
type pointerSample struct {
	x, y    float64
	pressed bool
	button  sketch.MouseButton
}

// pointerTracker turns polled mouse state into DOM-style pointer events.
type pointerTracker struct {
	x, y   float64
	seen   bool
	down   bool
	button sketch.MouseButton
}

// update compares s with the previous sample and appends the resulting
// events: pointermove when the position changed, pointerdown on press, and
// pointerup followed by click on release. The button held at press time is
// kept until release.
func (p *pointerTracker) update(s pointerSample, out []sketch.PointerEvent) []sketch.PointerEvent {
	ev := func(t sketch.EventType, b sketch.MouseButton) sketch.PointerEvent {
		return sketch.PointerEvent{Type: t, ClientX: s.x, ClientY: s.y, Button: b}
	}
	if !p.seen || s.x != p.x || s.y != p.y {
		b := s.button
		if p.down {
			b = p.button
		}
		out = append(out, ev(sketch.EventPointerMove, b))
	}
	p.x, p.y, p.seen = s.x, s.y, true

	switch {
	case s.pressed && !p.down:
		p.down, p.button = true, s.button
		out = append(out, ev(sketch.EventPointerDown, p.button))
	case !s.pressed && p.down:
		p.down = false
		out = append(out, ev(sketch.EventPointerUp, p.button), ev(sketch.EventClick, p.button))
	}
	return out
}

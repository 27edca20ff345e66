package ebitenhost

import "github.com/phanxgames/sketch"

// Injected events use window coordinates, the same space real mouse input
// arrives in. Each queued sample replaces the real mouse for one tick.

// InjectPress queues a left-button press at (x, y).
func (h *Host) InjectPress(x, y float64) {
	h.injectQueue = append(h.injectQueue, pointerSample{x: x, y: y, pressed: true, button: sketch.MouseButtonLeft})
}

// InjectMove queues a pointer move to (x, y) with the left button held. Use
// it between InjectPress and InjectRelease to drag.
func (h *Host) InjectMove(x, y float64) {
	h.injectQueue = append(h.injectQueue, pointerSample{x: x, y: y, pressed: true, button: sketch.MouseButtonLeft})
}

// InjectHover queues a pointer move to (x, y) with no button held.
func (h *Host) InjectHover(x, y float64) {
	h.injectQueue = append(h.injectQueue, pointerSample{x: x, y: y})
}

// InjectRelease queues a left-button release at (x, y).
func (h *Host) InjectRelease(x, y float64) {
	h.injectQueue = append(h.injectQueue, pointerSample{x: x, y: y, button: sketch.MouseButtonLeft})
}

// InjectClick queues a press and a release at (x, y). Consumes two ticks.
func (h *Host) InjectClick(x, y float64) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). frames is at least 2.
func (h *Host) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease(toX, toY)
}

// Pending returns the number of queued synthetic samples.
func (h *Host) Pending() int { return len(h.injectQueue) }

// processInjected feeds the oldest queued sample. It reports whether one was
// consumed, in which case the real mouse is not polled this tick.
func (h *Host) processInjected() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	s := h.injectQueue[0]
	h.injectQueue = h.injectQueue[1:]
	h.feed(s)
	return true
}

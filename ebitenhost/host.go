// Package ebitenhost runs a sketch Canvas in an Ebitengine window. It paints
// through a ggsurface.Surface, drives the frame scheduler from the game
// loop's Update ticks, and feeds mouse input to the interaction manager.
//
// A Host also accepts synthetic input (InjectClick, InjectDrag, ...) and
// JSON scripts of such input interleaved with screenshots, for automated
// visual checks.
package ebitenhost

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sketch"
	"github.com/phanxgames/sketch/ggsurface"
)

// Host is an ebiten.Game that owns one Canvas. It is also the canvas's
// sketch.EventTarget.
type Host struct {
	cfg     RunConfig
	sched   *sketch.ManualScheduler
	surface *ggsurface.Surface
	canvas  *sketch.Canvas
	bg      color.Color
	frame   *ebiten.Image
	fps     *fpsOverlay

	listeners map[int]func(sketch.PointerEvent)
	nextID    int
	pointer   pointerTracker
	poll      func() pointerSample
	events    []sketch.PointerEvent

	injectQueue     []pointerSample
	runner          *Script
	screenshotQueue []string
}

var _ sketch.EventTarget = (*Host)(nil)

// NewHost builds the surface, scheduler and canvas for cfg and attaches the
// canvas to the host's input. Zero fields of cfg take their defaults. The
// canvas is not started.
func NewHost(cfg RunConfig) (*Host, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := ggsurface.ParseColor(cfg.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: clear color: %w", err)
	}
	surface, err := ggsurface.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	sched := sketch.NewManualScheduler()
	canvas, err := sketch.New(surface, sched, cfg.Canvas)
	if err != nil {
		_ = surface.Close()
		return nil, err
	}
	h := &Host{
		cfg:       cfg,
		sched:     sched,
		surface:   surface,
		canvas:    canvas,
		bg:        bg.Color(),
		listeners: make(map[int]func(sketch.PointerEvent)),
		poll:      pollMouse,
	}
	if cfg.ShowFPS {
		h.fps = &fpsOverlay{}
	}
	if err := canvas.Attach(h); err != nil {
		return nil, err
	}
	return h, nil
}

// Canvas returns the hosted canvas.
func (h *Host) Canvas() *sketch.Canvas { return h.canvas }

// Surface returns the raster surface the canvas paints on.
func (h *Host) Surface() *ggsurface.Surface { return h.surface }

// Scheduler returns the scheduler advanced by Update.
func (h *Host) Scheduler() *sketch.ManualScheduler { return h.sched }

// SetScript attaches an input script. It is stepped once per Update.
func (h *Host) SetScript(s *Script) { h.runner = s }

// Listen implements sketch.EventTarget.
func (h *Host) Listen(fn func(sketch.PointerEvent)) (cancel func()) {
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// BoundingRect implements sketch.EventTarget. The canvas fills the window, so
// window coordinates are already surface-local.
func (h *Host) BoundingRect() sketch.AABB {
	return sketch.AABB{MaxX: float64(h.cfg.Width), MaxY: float64(h.cfg.Height)}
}

// Update implements ebiten.Game: it steps the script, feeds one pointer
// sample (injected or real), then advances the scheduler by one tick.
func (h *Host) Update() error {
	if h.runner != nil {
		h.runner.step(h)
	}
	if !h.processInjected() {
		h.feed(h.poll())
	}
	h.sched.Advance(time.Second / time.Duration(h.cfg.TPS))
	if h.fps != nil {
		h.fps.update(h.sched.Now(), h.canvas.Loop().Frame())
	}
	if h.runner != nil && h.runner.Done() && h.cfg.ExitWhenDone {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(h.bg)
	img := h.surface.Image()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Dx() == h.cfg.Width && rgba.Rect.Dy() == h.cfg.Height {
		if h.frame == nil {
			h.frame = ebiten.NewImage(h.cfg.Width, h.cfg.Height)
		}
		h.frame.WritePixels(rgba.Pix)
		screen.DrawImage(h.frame, nil)
	} else {
		screen.DrawImage(ebiten.NewImageFromImage(img), nil)
	}
	h.flushScreenshots(img)
	if h.fps != nil {
		h.fps.draw(screen)
	}
}

// Layout implements ebiten.Game with a fixed logical size.
func (h *Host) Layout(int, int) (int, int) {
	return h.cfg.Width, h.cfg.Height
}

// Close stops the canvas and releases the surface.
func (h *Host) Close() error {
	h.canvas.Close()
	return h.surface.Close()
}

func (h *Host) feed(s pointerSample) {
	h.events = h.pointer.update(s, h.events[:0])
	for _, ev := range h.events {
		h.emit(ev)
	}
}

func (h *Host) emit(ev sketch.PointerEvent) {
	for _, fn := range h.listeners {
		fn(ev)
	}
}

func pollMouse() pointerSample {
	x, y := ebiten.CursorPosition()
	s := pointerSample{x: float64(x), y: float64(y)}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.pressed, s.button = true, sketch.MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		s.pressed, s.button = true, sketch.MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		s.pressed, s.button = true, sketch.MouseButtonMiddle
	}
	return s
}

package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sketch"
)

// Run opens a window, calls setup with the canvas, starts the render loop
// and blocks until the window closes. A non-empty cfg.Script is loaded and
// run against the canvas.
func Run(setup func(c *sketch.Canvas) error, cfg RunConfig) error {
	h, err := NewHost(cfg)
	if err != nil {
		return err
	}
	defer h.Close()
	cfg = h.cfg

	if cfg.Script != "" {
		s, err := LoadScript(cfg.Script)
		if err != nil {
			return err
		}
		h.SetScript(s)
	}
	if setup != nil {
		if err := setup(h.canvas); err != nil {
			return fmt.Errorf("ebitenhost: setup: %w", err)
		}
	}
	if err := h.canvas.Start(); err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	return nil
}

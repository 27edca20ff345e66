package ebitenhost

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/phanxgames/sketch"
)

// RunConfig configures the window and host loop. Fields map to SKETCH_HOST_*
// environment variables when loaded through LoadRunConfig.
type RunConfig struct {
	Title  string `envconfig:"TITLE" default:"sketch"`
	Width  int    `envconfig:"WIDTH" default:"800"`
	Height int    `envconfig:"HEIGHT" default:"600"`
	// TPS is the number of Update calls per second; each advances the
	// frame scheduler by 1/TPS.
	TPS int `envconfig:"TPS" default:"60"`
	// ClearColor fills the window behind the canvas. Any CSS color.
	ClearColor string `envconfig:"CLEAR_COLOR" default:"white"`
	// ScreenshotDir receives PNGs queued with Host.Screenshot.
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR" default:"screenshots"`
	// Script, when set, is a JSON input script run by the host.
	Script string `envconfig:"SCRIPT"`
	// ExitWhenDone ends the game loop once the script has finished.
	ExitWhenDone bool `envconfig:"EXIT_WHEN_DONE"`
	// ShowFPS overlays FPS and TPS in the top-left corner.
	ShowFPS bool `envconfig:"SHOW_FPS"`

	Canvas sketch.Config `ignored:"true"`
}

// DefaultRunConfig returns the built-in defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:         "sketch",
		Width:         800,
		Height:        600,
		TPS:           60,
		ClearColor:    "white",
		ScreenshotDir: "screenshots",
		Canvas:        sketch.DefaultConfig(),
	}
}

// withDefaults fills zero fields from DefaultRunConfig, so a literal
// RunConfig{Title: ..., Width: ..., Height: ...} is enough to run.
func (c RunConfig) withDefaults() RunConfig {
	d := DefaultRunConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.TPS == 0 {
		c.TPS = d.TPS
	}
	if c.ClearColor == "" {
		c.ClearColor = d.ClearColor
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = d.ScreenshotDir
	}
	if c.Canvas == (sketch.Config{}) {
		c.Canvas = d.Canvas
	}
	return c
}

// LoadRunConfig reads SKETCH_HOST_* variables for the host and SKETCH_* for
// the canvas.
func LoadRunConfig() (RunConfig, error) {
	var cfg RunConfig
	if err := envconfig.Process("sketch_host", &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("ebitenhost: load config: %w", err)
	}
	canvas, err := sketch.LoadConfig()
	if err != nil {
		return RunConfig{}, err
	}
	cfg.Canvas = canvas
	return cfg, cfg.Validate()
}

// Validate checks the window size and tick rate.
func (c RunConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("ebitenhost: window %dx%d: %w", c.Width, c.Height, sketch.ErrInvalidSize)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("ebitenhost: tps %d: %w", c.TPS, sketch.ErrInvalidSize)
	}
	return nil
}

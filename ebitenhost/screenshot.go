package ebitenhost

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phanxgames/sketch"
)

// Screenshot queues a labeled capture of the canvas. It is written after the
// next Draw to ScreenshotDir as <timestamp>_<label>.png.
func (h *Host) Screenshot(label string) {
	h.screenshotQueue = append(h.screenshotQueue, label)
}

func (h *Host) flushScreenshots(img image.Image) {
	if len(h.screenshotQueue) == 0 {
		return
	}
	defer func() { h.screenshotQueue = h.screenshotQueue[:0] }()

	if err := os.MkdirAll(h.cfg.ScreenshotDir, 0o755); err != nil {
		sketch.Logger().Warn("screenshot: mkdir", "dir", h.cfg.ScreenshotDir, "err", err)
		return
	}
	stamp := time.Now().Format("20060102_150405")
	for _, label := range h.screenshotQueue {
		path := filepath.Join(h.cfg.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			sketch.Logger().Warn("screenshot", "err", err)
			continue
		}
		sketch.Logger().Debug("screenshot", "path", path)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replaces everything else
// with '_', and names empty labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}

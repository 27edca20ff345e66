package ebitenhost

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefresh = 500 * time.Millisecond

// fpsOverlay prints FPS, TPS and the render loop's frame count in the
// top-left corner, refreshed every fpsRefresh of scheduler time.
type fpsOverlay struct {
	img  *ebiten.Image
	last time.Duration
	text string
}

func (o *fpsOverlay) update(now time.Duration, frame uint64) {
	if o.text != "" && now-o.last < fpsRefresh {
		return
	}
	o.last = now
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nframe: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), frame)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	if o.img == nil {
		// 100x48 fits three lines of the debug font.
		o.img = ebiten.NewImage(100, 48)
	}
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}

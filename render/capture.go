package render

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/scene"
)

func (r *Renderer) drawCapture(screen *ebiten.Image, s *scene.CaptureScene) {
	w, h := float64(common.BaseWidth), float64(common.BaseHeight)

	vector.FillRect(screen, 40, 80, float32(w-80), float32(h-120), colornames.Darkslategray, false)
	r.drawText(screen, "camera", r.small, w/2, h/2, colornames.Lightgray, alignCenter)

	lidY := -s.LidOpen() * h
	vector.FillRect(screen, 0, float32(lidY), float32(w), float32(h), colornames.Midnightblue, false)
	r.drawText(screen, s.Theme(), r.large, w/2, lidY+h/2, r.pal.Text, alignCenter)

	r.drawText(screen, s.Theme(), r.body, w/2, 40, r.pal.Accent, alignCenter)

	if s.Sequencer().Phase() == scene.PhaseCounting {
		pulse := s.CountPulse()
		scale := 1.5 - 0.5*pulse
		alpha := uint8(255 * (1 - 0.6*pulse))
		r.drawTextScaled(screen, strconv.Itoa(s.Count()), r.huge, w/2, h/2, scale, withAlpha(r.pal.Text, alpha), alignCenter)
	}
}

func (r *Renderer) drawFlash(screen *ebiten.Image, s *scene.CaptureScene) {
	if !s.Fired() {
		return
	}
	w, h := float32(common.BaseWidth), float32(common.BaseHeight)
	vector.FillRect(screen, 0, 0, w, h, withAlpha(colornames.White, s.FlashAlpha()), false)
}

package render

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/scene"
)

const shakeIntensity = 4

func (r *Renderer) drawTitle(screen *ebiten.Image, s *scene.TitleScene) {
	w, h := float64(common.BaseWidth), float64(common.BaseHeight)

	var ox, oy float64
	if s.Shaking() {
		ox = float64(rand.IntN(2*shakeIntensity+1) - shakeIntensity)
		oy = float64(rand.IntN(2*shakeIntensity+1) - shakeIntensity)
	}

	r.drawTextScaled(screen, s.Logo(), r.large, w/2+ox, 140+oy, 1.5, withAlpha(r.pal.Accent, s.LogoAlpha()), alignCenter)

	if a := s.CharsAlpha(); a > 0 {
		dash := s.Dash()
		floor := h - 100 + oy
		r.drawFigure(screen, w*3/7+dash+ox, floor, 1, withAlpha(r.pal.Red, a))
		r.drawFigure(screen, w*4/7-dash+ox, floor, 1, withAlpha(r.pal.Blue, a))
		if s.Hit() {
			vector.FillRect(screen, 0, 0, float32(w), float32(h), withAlpha(colornames.White, 120), false)
		}
	}

	if s.PromptVisible() {
		r.drawText(screen, s.Prompt(), r.body, w/2+1, h-99, colornames.Black, alignCenter)
		r.drawText(screen, s.Prompt(), r.body, w/2, h-100, r.pal.Accent, alignCenter)
	}
}

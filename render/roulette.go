package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/scene"
)

type colorPair struct {
	color color.Color
	tag   string
}

func (r *Renderer) drawRoulette(screen *ebiten.Image, s *scene.RouletteScene) {
	w, h := float64(common.BaseWidth), float64(common.BaseHeight)
	themes := s.Themes()
	item := s.ItemHeight()
	pos := s.Position()
	cy := h / 2

	base := math.Floor(pos / item)
	offset := pos - base*item
	for k := -3; k <= 3; k++ {
		idx := common.Mod(int(base)+k, len(themes))
		y := cy + float64(k)*item - offset
		dist := math.Abs(y-cy) / (3 * item)
		alpha := uint8(255 * common.Clamp01(1-dist))
		r.drawText(screen, themes[idx], r.large, w/2, y, withAlpha(r.pal.Text, alpha), alignCenter)
	}

	vector.StrokeRect(screen, float32(w/2-260), float32(cy-item/2), 520, float32(item), 4, r.pal.Accent, false)

	if s.Sequencer().Reached(scene.PhaseFuse) {
		left := 1 - s.FuseProgress()
		vector.StrokeLine(screen, 60, float32(h-60), float32(60+(w-120)*left), float32(h-60), 6, colornames.Sandybrown, true)
		vector.FillCircle(screen, float32(60+(w-120)*left), float32(h-60), 10, colornames.Orangered, true)
	}

	if s.Sequencer().Reached(scene.PhaseExploding) {
		a := s.ExplosionAlpha()
		vector.FillRect(screen, 0, 0, float32(w), float32(h), withAlpha(colornames.Orange, a), false)
		if theme, ok := s.Landed(); ok {
			r.drawText(screen, theme, r.large, w/2, cy, withAlpha(colornames.Black, a), alignCenter)
		}
	}
}

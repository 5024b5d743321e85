package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/scene"
)

func (r *Renderer) drawMeter(screen *ebiten.Image, s *scene.ScoreMeter) {
	w := float64(common.BaseWidth)

	title := []rune(s.Title())
	spacing := 48.0
	x0 := w/2 - spacing*float64(len(title)-1)/2
	for i, ch := range title {
		r.drawText(screen, string(ch), r.large, x0+float64(i)*spacing, s.CharY(i), r.pal.Accent, alignCenter)
	}

	barX, barW, barH := 100.0, w-200, 40.0
	limits := s.Limits()
	full := s.Max()
	colors := [2]colorPair{{r.pal.Red, "1P"}, {r.pal.Blue, "2P"}}
	for p := range scene.Players {
		y := 180 + float64(p)*140
		vector.StrokeRect(screen, float32(barX), float32(y), float32(barW), float32(barH), 2, r.pal.Text, false)

		x := barX
		for i, v := range s.Segments(p) {
			segW := v / full * barW
			shade := segmentShade(colors[p].color, i)
			vector.FillRect(screen, float32(x), float32(y), float32(segW), float32(barH), shade, false)
			x += limits[i] / full * barW
		}
		r.drawText(screen, colors[p].tag, r.body, barX-50, y+barH/2, colors[p].color, alignCenter)
		r.drawText(screen, s.Label(p), r.body, barX, y+barH+24, r.pal.Text, alignStart)
	}

	if s.Sequencer().Reached(scene.PhaseWinnerReveal) {
		msg := "WINNER" + s.Dots()
		if s.Sequencer().Reached(scene.PhaseFinalCountdown) {
			switch s.Winner() {
			case 0:
				msg = "1P WINS!"
			case 1:
				msg = "2P WINS!"
			default:
				msg = "DRAW"
			}
		}
		r.drawText(screen, msg, r.large, w/2, 500, r.pal.Accent, alignCenter)
	}

	if s.Sequencer().Phase() == scene.PhaseFinalCountdown && s.Countdown() >= 0 {
		r.drawText(screen, fmt.Sprintf("next round in %d", s.Countdown()), r.small, w/2, 560, r.pal.Text, alignCenter)
	}
}

// segmentShade lightens later segments so adjacent ones stay distinct.
func segmentShade(c color.Color, i int) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	lift := func(v uint8) uint8 {
		return uint8(int(v) + (255-int(v))*i/4)
	}
	return color.NRGBA{R: lift(n.R), G: lift(n.G), B: lift(n.B), A: n.A}
}

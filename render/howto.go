package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/scene"
)

const (
	miniW, miniH = 320.0, 240.0
	monitorY     = 110.0
	monitorGap   = 60.0
	footerH      = 110.0
)

var (
	howtoBackdrop = color.NRGBA{R: 0xff, G: 0xe6, B: 0x00, A: 0xff}
	howtoBanner   = color.NRGBA{R: 0xc8, G: 0x96, B: 0x32, A: 0xff}
	howtoInk      = color.NRGBA{R: 0x64, G: 0x50, B: 0x00, A: 0xff}
)

func (r *Renderer) drawHowTo(screen *ebiten.Image, s *scene.HowToScene) {
	w, h := float64(common.BaseWidth), float64(common.BaseHeight)
	footerY := h - footerH

	vector.FillRect(screen, 0, 0, float32(w), float32(footerY), howtoBackdrop, false)
	vector.FillRect(screen, 0, 20, float32(w), 60, howtoBanner, false)
	r.drawText(screen, "HOW TO PLAY", r.large, w/2, 50, colornames.White, alignCenter)

	leftX := w/2 - miniW - monitorGap/2
	rightX := w/2 + monitorGap/2
	r.drawMiniRoulette(screen, s, leftX, monitorY)
	r.drawMiniCamera(screen, s, rightX, monitorY)
	for _, x := range []float64{leftX, rightX} {
		vector.StrokeRect(screen, float32(x), monitorY, miniW, miniH, 4, howtoInk, false)
	}
	r.drawText(screen, "→", r.large, w/2, monitorY+miniH/2, howtoInk, alignCenter)
	r.drawText(screen, "1. Pick a theme", r.small, leftX+miniW/2, monitorY+miniH+20, howtoInk, alignCenter)
	r.drawText(screen, "2. Strike the pose", r.small, rightX+miniW/2, monitorY+miniH+20, howtoInk, alignCenter)

	vector.FillRect(screen, 0, float32(footerY), float32(w), footerH, colornames.White, false)
	vector.StrokeLine(screen, 0, float32(footerY), float32(w), float32(footerY), 3, colornames.Burlywood, false)

	line := s.Line()
	speakers := [2]colorPair{{r.pal.Red, "Red"}, {r.pal.Blue, "Blue"}}
	sp := speakers[common.Mod(line.Speaker, len(speakers))]
	nameX := 180.0
	if line.Speaker != 0 {
		nameX = w - 250
	}
	r.drawText(screen, sp.tag, r.body, nameX, footerY+10, sp.color, alignStart)
	r.drawText(screen, line.Text, r.small, w/2, footerY+60, colornames.Black, alignCenter)
	r.drawText(screen, "SPACE: next", r.small, w-150, h-25, colornames.Gray, alignStart)

	for i, c := range []color.Color{r.pal.Red, r.pal.Blue} {
		x := 60.0
		if i == 1 {
			x = w - 60
		}
		y := h - 20
		if i == common.Mod(line.Speaker, 2) {
			y += s.Jump()
		}
		r.drawFigure(screen, x, y, 0.8, c)
	}
}

func (r *Renderer) drawMiniRoulette(screen *ebiten.Image, s *scene.HowToScene, x, y float64) {
	vector.FillRect(screen, float32(x), float32(y), miniW, miniH, colornames.Gray, false)

	themes := s.Themes()
	box := s.ItemHeight()
	pos := s.ReelPosition()
	cx, cy := x+miniW/2, y+miniH/2
	base := math.Floor(pos / box)
	offset := pos - base*box
	for k := -1; k <= 1; k++ {
		drawY := cy + float64(k)*box - offset
		if drawY < y+box/2 || drawY > y+miniH-box/2 {
			continue
		}
		bg := colornames.Darkblue
		if math.Abs(drawY-cy) < 10 {
			bg = colornames.Salmon
		}
		vector.FillRect(screen, float32(cx-110), float32(drawY-box/2), 220, float32(box-4), bg, false)
		idx := common.Mod(int(base)+k, len(themes))
		r.drawText(screen, themes[idx], r.small, cx, drawY, colornames.White, alignCenter)
	}
	vector.StrokeRect(screen, float32(cx-112), float32(cy-box/2-2), 224, float32(box+4), 3, colornames.Yellow, false)
}

func (r *Renderer) drawMiniCamera(screen *ebiten.Image, s *scene.HowToScene, x, y float64) {
	vector.FillRect(screen, float32(x), float32(y), miniW, miniH, colornames.Darkslategray, false)

	cx, cy := x+miniW/2, y+miniH/2+20
	arm := float32(s.ArmAngle())
	white := colornames.White
	vector.StrokeCircle(screen, float32(cx), float32(cy-60), 15, 2, white, true)
	vector.StrokeLine(screen, float32(cx), float32(cy-45), float32(cx), float32(cy+20), 2, white, true)
	vector.StrokeLine(screen, float32(cx), float32(cy-30), float32(cx-40), float32(cy-60)+arm, 2, white, true)
	vector.StrokeLine(screen, float32(cx), float32(cy-30), float32(cx+40), float32(cy-60)-arm, 2, white, true)
	vector.StrokeLine(screen, float32(cx), float32(cy+20), float32(cx-20), float32(cy+80), 2, white, true)
	vector.StrokeLine(screen, float32(cx), float32(cy+20), float32(cx+20), float32(cy+80), 2, white, true)

	if len(s.Themes()) > 0 {
		r.drawText(screen, "Theme: "+s.Themes()[0], r.small, x+10, y+10, white, alignStart)
	}
	if d := s.CountdownDigit(); d > 0 {
		r.drawText(screen, strconv.Itoa(d), r.huge, x+miniW/2, y+miniH/2, withAlpha(r.pal.Red, 150), alignCenter)
	}

	if shut := float32(s.Shutter() * miniH / 2); shut > 0 {
		vector.FillRect(screen, float32(x), float32(y), miniW, shut, colornames.Black, false)
		vector.FillRect(screen, float32(x), float32(y)+miniH-shut, miniW, shut, colornames.Black, false)
	}
}

// drawFigure draws a stick character standing on (x, floor).
func (r *Renderer) drawFigure(screen *ebiten.Image, x, floor, scale float64, clr color.Color) {
	s := float32(scale)
	fx, fy := float32(x), float32(floor)
	vector.FillCircle(screen, fx, fy-150*s, 22*s, clr, true)
	vector.StrokeLine(screen, fx, fy-128*s, fx, fy-60*s, 8*s, clr, true)
	vector.StrokeLine(screen, fx, fy-110*s, fx-40*s, fy-80*s, 6*s, clr, true)
	vector.StrokeLine(screen, fx, fy-110*s, fx+40*s, fy-80*s, 6*s, clr, true)
	vector.StrokeLine(screen, fx, fy-60*s, fx-25*s, fy, 6*s, clr, true)
	vector.StrokeLine(screen, fx, fy-60*s, fx+25*s, fy, 6*s, clr, true)
}

// Package render draws scenes with ebiten. It only reads scene state.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/poseparty/scene"
	"github.com/milk9111/poseparty/sequence"
)

type Palette struct {
	Background color.Color
	Red        color.Color
	Blue       color.Color
	Text       color.Color
	Accent     color.Color
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff},
		Red:        color.NRGBA{R: 0xe0, G: 0x45, B: 0x3a, A: 0xff},
		Blue:       color.NRGBA{R: 0x3a, G: 0x78, B: 0xe0, A: 0xff},
		Text:       colornames.White,
		Accent:     colornames.Gold,
	}
}

type Renderer struct {
	pal         Palette
	chartRadius float64

	small *text.GoTextFace
	body  *text.GoTextFace
	large *text.GoTextFace
	huge  *text.GoTextFace

	white *ebiten.Image
}

func New(pal Palette, chartRadius float64) (*Renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}
	if chartRadius <= 0 {
		chartRadius = 120
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{
		pal:         pal,
		chartRadius: chartRadius,
		small:       &text.GoTextFace{Source: src, Size: 16},
		body:        &text.GoTextFace{Source: src, Size: 24},
		large:       &text.GoTextFace{Source: src, Size: 48},
		huge:        &text.GoTextFace{Source: src, Size: 120},
		white:       white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}, nil
}

// Draw renders whichever scene is current.
func (r *Renderer) Draw(screen *ebiten.Image, sc scene.Scene) {
	screen.Fill(r.pal.Background)
	switch s := sc.(type) {
	case *scene.TitleScene:
		r.drawTitle(screen, s)
	case *scene.HowToScene:
		r.drawHowTo(screen, s)
	case *scene.ResultReveal:
		r.drawResult(screen, s)
	case *scene.RouletteScene:
		r.drawRoulette(screen, s)
	case *scene.CaptureScene:
		r.drawCapture(screen, s)
	case *scene.ScoreMeter:
		r.drawMeter(screen, s)
	}
}

// DrawEffects draws overlays that must stay out of captured frames.
func (r *Renderer) DrawEffects(screen *ebiten.Image, sc scene.Scene) {
	if s, ok := sc.(*scene.CaptureScene); ok {
		r.drawFlash(screen, s)
	}
}

// DrawSnapshot prints a sequencer snapshot in the top-left corner.
func (r *Renderer) DrawSnapshot(screen *ebiten.Image, snap sequence.Snapshot) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f\n%s", ebiten.ActualFPS(), snap), 4, 4)
}

func withAlpha(c color.Color, a uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(uint16(n.A) * uint16(a) / 255)
	return n
}

type align int

const (
	alignStart align = iota
	alignCenter
)

func (r *Renderer) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color, al align) {
	r.drawTextScaled(screen, s, face, x, y, 1, clr, al)
}

func (r *Renderer) drawTextScaled(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, scale float64, clr color.Color, al align) {
	op := &text.DrawOptions{}
	if al == alignCenter {
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// fillPolygon fills a convex polygon as a triangle fan.
func (r *Renderer) fillPolygon(screen *ebiten.Image, pts [][2]float64, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	vs := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(n.R) / 0xff,
			ColorG: float32(n.G) / 0xff,
			ColorB: float32(n.B) / 0xff,
			ColorA: float32(n.A) / 0xff,
		}
	}
	var is []uint16
	for i := 1; i < len(pts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	screen.DrawTriangles(vs, is, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

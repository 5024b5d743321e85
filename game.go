package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/render"
	"github.com/milk9111/poseparty/scene"
)

type Game struct {
	frames int

	manager  *scene.Manager
	renderer *render.Renderer
	shutter  *Shutter

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	debug     bool
	clipboard bool
}

func NewGame(manager *scene.Manager, renderer *render.Renderer, shutter *Shutter, debug bool) *Game {
	g := &Game{
		manager:  manager,
		renderer: renderer,
		shutter:  shutter,
		debug:    debug,
	}
	g.pauseUI = NewPauseUI(g)
	if debug {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v", err)
		} else {
			g.clipboard = true
		}
	}
	return g
}

func (g *Game) Update() error {
	g.frames++

	if g.quit || g.manager.Quit() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.manager.Press()
	}
	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySnapshot()
	}

	return g.manager.Update(anim.FrameDT)
}

func (g *Game) copySnapshot() {
	sc := g.manager.Current()
	if sc == nil {
		return
	}
	snap := sc.Sequencer().Snapshot().String()
	if !g.clipboard {
		log.Printf("snapshot:\n%s", snap)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(snap))
	log.Printf("snapshot copied to clipboard")
}

func (g *Game) Draw(screen *ebiten.Image) {
	sc := g.manager.Current()
	if sc == nil {
		return
	}

	g.renderer.Draw(screen, sc)
	g.shutter.Capture(screen)
	g.renderer.DrawEffects(screen, sc)

	if g.debug {
		g.renderer.DrawSnapshot(screen, sc.Sequencer().Snapshot())
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

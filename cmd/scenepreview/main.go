package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/factory"
	"github.com/milk9111/poseparty/render"
	"github.com/milk9111/poseparty/scene"
	"github.com/milk9111/poseparty/scores"
)

// previewGame loops a single scene, rebuilding it whenever it finishes.
type previewGame struct {
	name     string
	build    scene.Factory
	shared   *scene.Shared
	current  scene.Scene
	renderer *render.Renderer
	debug    bool
}

func (g *previewGame) restart() error {
	sc, err := g.build(g.shared)
	if err != nil {
		return fmt.Errorf("preview %s: %w", g.name, err)
	}
	g.current = sc
	return nil
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || g.current.Sequencer().Done() {
		return g.restart()
	}
	if p, ok := g.current.(scene.Pressable); ok && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.Press()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	g.current.Update(anim.FrameDT)
	g.current.Sequencer().Drain()
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.current)
	g.renderer.DrawEffects(screen, g.current)
	if g.debug {
		g.renderer.DrawSnapshot(screen, g.current.Sequencer().Snapshot())
	}
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func main() {
	name := flag.String("scene", scene.Roulette, "scene to preview (title, howto, roulette, camera, score, round_result)")
	raw := flag.String("scores", "80,90,150,50,50,100", "static scores fed to the meter and result")
	theme := flag.String("theme", scene.DefaultThemes[0], "theme shown by the camera scene")
	seed := flag.Uint64("seed", 0, "roulette seed (0 picks one)")
	flag.Parse()

	reading, err := scores.Parse(*raw)
	if err != nil {
		log.Fatalf("scores: %v", err)
	}
	builder := factory.New(factory.Options{
		Scores: scores.Static{Pair: reading.Pair(scene.DefaultMeterConfig().Limits)},
		Seed:   *seed,
		Repeat: true,
	})
	build, ok := builder.Factories()[*name]
	if !ok {
		log.Fatalf("unknown scene %q", *name)
	}

	renderer, err := render.New(render.DefaultPalette(), 0)
	if err != nil {
		log.Fatal(err)
	}
	g := &previewGame{
		name:     *name,
		build:    build,
		shared:   &scene.Shared{Theme: *theme},
		renderer: renderer,
	}
	if err := g.restart(); err != nil {
		log.Fatal(err)
	}

	ebiten.SetTPS(anim.TickRate)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("scene preview: " + *name)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

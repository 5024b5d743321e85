package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/factory"
	"github.com/milk9111/poseparty/prefabs"
	"github.com/milk9111/poseparty/render"
	"github.com/milk9111/poseparty/scene"
	"github.com/milk9111/poseparty/scores"
)

func main() {
	startScene := flag.String("scene", "", "scene to start in (title, howto, roulette, camera, score, round_result)")
	debug := flag.Bool("debug", false, "show the sequencer overlay; C copies it to the clipboard")
	scoresPath := flag.String("scores", "", "score file to watch (defaults to game.yaml)")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose yaml and scripts override the embedded prefabs")
	shutterDir := flag.String("shutter", "shots", "directory captured frames are written to")
	seed := flag.Uint64("seed", 0, "roulette seed (0 picks one)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	prefabs.SetDir(*prefabDir)
	gameSpec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}
	meterSpec, err := prefabs.LoadMeterSpec()
	if err != nil {
		log.Fatal(err)
	}
	resultSpec, err := prefabs.LoadResultSpec()
	if err != nil {
		log.Fatal(err)
	}

	path := gameSpec.Scores
	if *scoresPath != "" {
		path = *scoresPath
	}
	start := gameSpec.Start
	if *startScene != "" {
		start = *startScene
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	grp, ctx := errgroup.WithContext(ctx)

	feed := scores.OpenFeed(path, meterSpec.Limits)
	if w, err := prefabs.NewWatcher(prefabs.MatchFile(feed.Path()), filepath.Dir(feed.Path())); err != nil {
		log.Printf("scores: not watching %s: %v", feed.Path(), err)
	} else {
		defer w.Close()
		grp.Go(func() error { return feed.Run(ctx, w.Events) })
	}

	if w, err := prefabs.NewWatcher(prefabs.IsPrefabFile, existingDirs(*prefabDir, filepath.Join(*prefabDir, "scripts"))...); err != nil {
		log.Printf("prefabs: hot reload disabled: %v", err)
	} else {
		defer w.Close()
		grp.Go(func() error { return watchPrefabs(ctx, w) })
	}

	shutter := NewShutter(*shutterDir)
	grp.Go(func() error { return shutter.Run(ctx) })

	builder := factory.New(factory.Options{
		Scores:     feed,
		HistoryDir: gameSpec.HistoryDir,
		Seed:       *seed,
		Ready:      shutter.Ready,
		Trigger:    shutter.Trigger,
	})
	manager := scene.NewManager(&scene.Shared{}, builder.Factories(), factory.Lingers(gameSpec)...)
	if err := manager.Start(start); err != nil {
		log.Fatal(err)
	}

	pal := render.DefaultPalette()
	pal.Background = gameSpec.Background.Or(pal.Background)
	pal.Red = resultSpec.Red.Or(pal.Red)
	pal.Blue = resultSpec.Blue.Or(pal.Blue)
	renderer, err := render.New(pal, resultSpec.ChartRadius)
	if err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetTPS(anim.TickRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("poseparty")

	game := NewGame(manager, renderer, shutter, *debug)
	runErr := ebiten.RunGame(game)

	cancel()
	if err := grp.Wait(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

func watchPrefabs(ctx context.Context, w *prefabs.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			prefabs.Invalidate(name)
			log.Printf("prefabs: %s changed, next scene picks it up", filepath.Base(name))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("prefabs: watch: %v", err)
		}
	}
}

func existingDirs(dirs ...string) []string {
	var out []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

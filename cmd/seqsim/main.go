package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/factory"
	"github.com/milk9111/poseparty/scene"
	"github.com/milk9111/poseparty/scores"
	"github.com/milk9111/poseparty/sequence"
)

var order = []string{scene.Title, scene.HowTo, scene.Roulette, scene.Camera, scene.Score, scene.RoundResult}

func main() {
	which := flag.String("scene", "all", "scene to simulate, or all")
	dt := flag.Float64("dt", anim.FrameDT, "seconds per tick")
	maxTicks := flag.Int("max", 100000, "give up after this many ticks")
	raw := flag.String("scores", "80,90,150,50,50,100", "static scores fed to the meter and result")
	theme := flag.String("theme", scene.DefaultThemes[0], "theme handed to the camera scene")
	seed := flag.Uint64("seed", 1, "roulette seed")
	press := flag.Float64("press", 4.0, "seconds between advance key presses in title and tutorial")
	flag.Parse()

	reading, err := scores.Parse(*raw)
	if err != nil {
		log.Fatalf("scores: %v", err)
	}
	builder := factory.New(factory.Options{
		Scores:  scores.Static{Pair: reading.Pair(scene.DefaultMeterConfig().Limits)},
		Seed:    *seed,
		Trigger: func(string) {},
	})
	factories := builder.Factories()

	names := order
	if *which != "all" {
		if _, ok := factories[*which]; !ok {
			log.Fatalf("unknown scene %q (want one of %s)", *which, strings.Join(order, ", "))
		}
		names = []string{*which}
	}

	out := make([]bytes.Buffer, len(names))
	grp, ctx := errgroup.WithContext(context.Background())
	for i, name := range names {
		grp.Go(func() error {
			return simulate(ctx, &out[i], name, factories[name], &scene.Shared{Theme: *theme}, *dt, *press, *maxTicks)
		})
	}
	err = grp.Wait()
	for i := range out {
		_, _ = out[i].WriteTo(os.Stdout)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func simulate(ctx context.Context, w *bytes.Buffer, name string, build scene.Factory, shared *scene.Shared, dt, press float64, maxTicks int) error {
	sc, err := build(shared)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	seq := sc.Sequencer()
	fmt.Fprintf(w, "== %s (%d phases)\n", name, seq.Len())
	presser, _ := sc.(scene.Pressable)
	nextPress := press

	for tick := 1; tick <= maxTicks; tick++ {
		if tick%1000 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if presser != nil && press > 0 && seq.Now() >= nextPress {
			fmt.Fprintf(w, "%6d %8.2fs  press\n", tick, seq.Now())
			presser.Press()
			nextPress += press
		}
		sc.Update(dt)
		for _, evt := range seq.Drain() {
			writeEvent(w, tick, evt)
		}
		if seq.Done() {
			fmt.Fprintf(w, "%s\n", seq.Snapshot())
			return nil
		}
	}
	return fmt.Errorf("%s: stalled in %s after %d ticks", name, seq.Phase(), maxTicks)
}

func writeEvent(w *bytes.Buffer, tick int, evt sequence.Event) {
	switch evt.Kind {
	case sequence.EventPhaseExited:
		return
	case sequence.EventPhaseEntered:
		fmt.Fprintf(w, "%6d %8.2fs  enter %s\n", tick, evt.At, evt.Phase)
	default:
		fmt.Fprintf(w, "%6d %8.2fs  %s %v\n", tick, evt.At, evt.Kind, evt.Data)
	}
}

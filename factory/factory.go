// Package factory turns prefab specs into scene configurations and builds
// the scene factories the manager runs.
package factory

import (
	"fmt"
	"log"
	"math"
	"path/filepath"

	"github.com/milk9111/poseparty/prefabs"
	"github.com/milk9111/poseparty/scene"
	"github.com/milk9111/poseparty/scores"
	"github.com/milk9111/poseparty/sequence"
)

type Options struct {
	// Scores feeds the meter and the round result. Nil means no scores.
	Scores scores.Source
	// HistoryDir receives 1Pscores.txt and 2Pscores.txt. Empty disables it.
	HistoryDir string
	// Seed overrides the roulette seed when non-zero.
	Seed uint64
	// Repeat loops the roulette forever.
	Repeat bool
	// Ready and Trigger connect the capture scene to the camera.
	Ready   func() bool
	Trigger func(theme string)
}

type Builder struct {
	opts Options
}

func New(opts Options) *Builder {
	return &Builder{opts: opts}
}

func (b *Builder) Factories() map[string]scene.Factory {
	return map[string]scene.Factory{
		scene.Title:       b.Title,
		scene.HowTo:       b.HowTo,
		scene.Roulette:    b.Roulette,
		scene.Camera:      b.Capture,
		scene.Score:       b.Meter,
		scene.RoundResult: b.Result,
	}
}

func (b *Builder) Title(*scene.Shared) (scene.Scene, error) {
	spec, err := prefabs.LoadTitleSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := TitleConfig(spec)
	if err != nil {
		return nil, err
	}
	return scene.NewTitle(cfg)
}

// HowTo shares the roulette's themes unless the tutorial lists its own.
func (b *Builder) HowTo(*scene.Shared) (scene.Scene, error) {
	spec, err := prefabs.LoadHowToSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := HowToConfig(spec)
	if err != nil {
		return nil, err
	}
	if len(spec.Themes) == 0 {
		if rs, err := prefabs.LoadRouletteSpec(); err == nil && len(rs.Themes) > 0 {
			cfg.Themes = rs.Themes
		}
	}
	return scene.NewHowTo(cfg)
}

func (b *Builder) Roulette(*scene.Shared) (scene.Scene, error) {
	spec, err := prefabs.LoadRouletteSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := RouletteConfig(spec)
	if err != nil {
		return nil, err
	}
	if b.opts.Seed != 0 {
		cfg.Seed = b.opts.Seed
	}
	cfg.Repeat = cfg.Repeat || b.opts.Repeat
	return scene.NewRoulette(cfg)
}

func (b *Builder) Capture(shared *scene.Shared) (scene.Scene, error) {
	spec, err := prefabs.LoadCaptureSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := CaptureConfig(spec)
	if err != nil {
		return nil, err
	}
	cfg.Theme = shared.Theme
	cfg.Ready = b.opts.Ready
	cfg.Trigger = b.opts.Trigger
	return scene.NewCapture(cfg)
}

func (b *Builder) Meter(*scene.Shared) (scene.Scene, error) {
	spec, err := prefabs.LoadMeterSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := MeterConfig(spec)
	if err != nil {
		return nil, err
	}
	cfg.Source = b.opts.Scores
	return scene.NewScoreMeter(cfg)
}

// Result builds the round summary from the latest scores, scaled onto the
// chart, and records each player's total in the history files.
func (b *Builder) Result(shared *scene.Shared) (scene.Scene, error) {
	spec, err := prefabs.LoadResultSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := ResultConfig(spec)
	if err != nil {
		return nil, err
	}
	meter, err := prefabs.LoadMeterSpec()
	if err != nil {
		return nil, err
	}
	limits := meter.Limits
	if len(limits) == 0 {
		limits = scene.DefaultMeterConfig().Limits
	}

	var pair scores.Pair
	if b.opts.Scores != nil {
		pair, _ = b.opts.Scores.Latest()
	}
	red := ChartScores(pair.First, limits, cfg.MaxScore)
	blue := ChartScores(pair.Second, limits, cfg.MaxScore)

	cfg.Round = shared.Round + 1
	r, err := scene.NewResultReveal(cfg, red, blue)
	if err != nil {
		return nil, err
	}
	shared.Round = cfg.Round
	b.record(r)
	return r, nil
}

func (b *Builder) record(r *scene.ResultReveal) {
	if b.opts.HistoryDir == "" {
		return
	}
	for p := range scene.Players {
		s := r.Scores(p)
		h := scores.History{Path: filepath.Join(b.opts.HistoryDir, fmt.Sprintf("%dPscores.txt", p+1))}
		if err := h.Append(s[0] + s[1] + s[2]); err != nil {
			log.Printf("factory: %v", err)
		}
	}
}

// ChartScores scales meter segments onto the 0..top chart scale. Missing
// segments count as zero.
func ChartScores(segments, limits []float64, top float64) []int {
	out := make([]int, scores.SegmentsPerPlayer)
	for i := range out {
		if i >= len(segments) || i >= len(limits) || limits[i] <= 0 {
			continue
		}
		out[i] = int(math.Round(segments[i] / limits[i] * top))
	}
	return out
}

// Gates compiles the tengo gate scripts attached to phases.
func Gates(specs []prefabs.GateSpec) (map[string]sequence.Gate, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	gates := make(map[string]sequence.Gate, len(specs))
	for _, gs := range specs {
		if gs.Phase == "" || gs.Script == "" {
			return nil, fmt.Errorf("factory: gate needs phase and script, got %+v", gs)
		}
		src, err := prefabs.LoadScript(gs.Script)
		if err != nil {
			return nil, fmt.Errorf("factory: load gate %s: %w", gs.Script, err)
		}
		g, err := sequence.NewScriptGate(gs.Phase+"/"+gs.Script, src, gs.Args)
		if err != nil {
			return nil, err
		}
		gates[gs.Phase] = sequence.All(gates[gs.Phase], g)
	}
	return gates, nil
}

// Lingers turns the game spec's linger table into manager options.
func Lingers(spec *prefabs.GameSpec) []scene.ManagerOption {
	var opts []scene.ManagerOption
	for name, secs := range spec.Linger {
		opts = append(opts, scene.WithLinger(name, secs))
	}
	return opts
}

package scene

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/sequence"
)

const (
	PhaseSpinning  = "spinning"
	PhaseStopping  = "stopping"
	PhaseFuse      = "fuse"
	PhaseExploding = "exploding"
)

type RouletteConfig struct {
	Next        string
	Themes      []string
	ItemHeight  float64
	Speed       float64
	SpinMin     float64
	SpinMax     float64
	FrictionMin float64
	FrictionMax float64
	LowSpeed    float64
	SnapEasing  float64
	Tolerance   float64
	Fuse        float64
	ExplodeStep int
	// Repeat loops the reel forever instead of finishing.
	Repeat bool
	// Seed fixes the random spin; zero seeds from the clock.
	Seed  uint64
	Gates map[string]sequence.Gate
	// OnPublish receives the landed theme when the scene completes a cycle.
	OnPublish func(theme string)
}

var DefaultThemes = []string{
	"Glico", "The Thinker", "Shee!", "Kamehameha", "JoJo Stand",
	"Double Peace", "Dogeza", "Komaneci", "Inochi", "Goromaru",
}

func DefaultRouletteConfig() RouletteConfig {
	return RouletteConfig{
		Next:        Camera,
		Themes:      DefaultThemes,
		ItemHeight:  110,
		Speed:       2500,
		SpinMin:     1.5,
		SpinMax:     3.0,
		FrictionMin: 0.95,
		FrictionMax: 0.95,
		LowSpeed:    50,
		SnapEasing:  0.2,
		Tolerance:   1.0,
		Fuse:        3.0,
		ExplodeStep: 15,
	}
}

// RouletteScene spins a reel of themes, lets it decay onto a slot, burns a
// fuse and explodes.
type RouletteScene struct {
	seq *sequence.Sequencer
	cfg RouletteConfig
	rng *rand.Rand

	reel      *anim.Scroll
	stop      *anim.DecayScroll
	fuse      *anim.Tween
	explosion *anim.Fade

	spinFor float64
	landed  int
	hasLand bool
}

func NewRoulette(cfg RouletteConfig) (*RouletteScene, error) {
	if len(cfg.Themes) == 0 {
		return nil, ErrNoThemes
	}
	if cfg.ItemHeight <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadItemHeight, cfg.ItemHeight)
	}
	def := DefaultRouletteConfig()
	if cfg.Speed == 0 {
		cfg.Speed = def.Speed
	}
	if cfg.SpinMin <= 0 {
		cfg.SpinMin = def.SpinMin
	}
	if cfg.SpinMax < cfg.SpinMin {
		cfg.SpinMax = cfg.SpinMin
	}
	if cfg.FrictionMin <= 0 || cfg.FrictionMin >= 1 {
		cfg.FrictionMin = def.FrictionMin
	}
	if cfg.FrictionMax < cfg.FrictionMin || cfg.FrictionMax >= 1 {
		cfg.FrictionMax = cfg.FrictionMin
	}
	if cfg.Fuse < 0 {
		cfg.Fuse = def.Fuse
	}
	if cfg.ExplodeStep <= 0 {
		cfg.ExplodeStep = def.ExplodeStep
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	r := &RouletteScene{
		cfg:       cfg,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		reel:      anim.NewScroll(0, cfg.Speed),
		fuse:      anim.NewTween(cfg.Fuse, common.Linear),
		explosion: anim.NewFade(cfg.ExplodeStep),
	}
	r.stop = anim.NewDecayScroll(anim.DecayScrollConfig{
		Slot:       cfg.ItemHeight,
		Friction:   cfg.FrictionMin,
		LowSpeed:   cfg.LowSpeed,
		SnapEasing: cfg.SnapEasing,
		Tolerance:  cfg.Tolerance,
	})

	phases := []sequence.Phase{
		{
			Name:       PhaseSpinning,
			Policy:     sequence.ForDuration,
			Properties: []sequence.Binding{sequence.Bind("reel", r.reel)},
			Gate: gateFor(cfg.Gates, PhaseSpinning, func(v sequence.View) bool {
				return v.Elapsed() >= r.spinFor
			}),
			OnEnter: func(*sequence.Sequencer) {
				r.spinFor = r.uniform(cfg.SpinMin, cfg.SpinMax)
				r.hasLand = false
			},
		},
		{
			Name:       PhaseStopping,
			Properties: []sequence.Binding{sequence.Bind("reel.stop", r.stop)},
			Gate:       gateFor(cfg.Gates, PhaseStopping, nil),
			OnEnter: func(*sequence.Sequencer) {
				r.stop.SetFriction(r.uniform(cfg.FrictionMin, cfg.FrictionMax))
				r.stop.Launch(r.reel.Value(), r.reel.Speed())
			},
			OnExit: func(s *sequence.Sequencer) {
				r.landed = anim.SlotIndex(r.stop.Value(), cfg.ItemHeight, len(cfg.Themes))
				r.hasLand = true
				s.Emit(sequence.Event{Kind: EventThemeLanded, Data: cfg.Themes[r.landed]})
			},
		},
		{
			Name:       PhaseFuse,
			Policy:     sequence.ForDuration,
			Duration:   cfg.Fuse,
			Properties: []sequence.Binding{sequence.Bind("fuse", r.fuse)},
			Gate:       gateFor(cfg.Gates, PhaseFuse, nil),
		},
		{
			Name:       PhaseExploding,
			Properties: []sequence.Binding{sequence.Bind("explosion", r.explosion)},
			Gate:       gateFor(cfg.Gates, PhaseExploding, nil),
			OnExit: func(s *sequence.Sequencer) {
				theme := cfg.Themes[r.landed]
				s.Emit(sequence.Event{Kind: EventThemePublished, Data: theme})
				if cfg.OnPublish != nil {
					cfg.OnPublish(theme)
				}
			},
		},
	}

	opts := []sequence.Option{sequence.WithNext(cfg.Next)}
	if cfg.Repeat {
		opts = append(opts, sequence.Cyclic())
	}
	seq, err := sequence.New(Roulette, phases, opts...)
	if err != nil {
		return nil, err
	}
	r.seq = seq
	return r, nil
}

func (r *RouletteScene) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Float64()*(hi-lo)
}

func (r *RouletteScene) Update(dt float64) { r.seq.Tick(dt) }

func (r *RouletteScene) Sequencer() *sequence.Sequencer { return r.seq }

// Position is the reel offset the renderer should draw.
func (r *RouletteScene) Position() float64 {
	if r.seq.Reached(PhaseStopping) {
		return r.stop.Value()
	}
	return r.reel.Value()
}

func (r *RouletteScene) Themes() []string { return r.cfg.Themes }

func (r *RouletteScene) ItemHeight() float64 { return r.cfg.ItemHeight }

// SpinDuration is the spin time drawn for the current cycle.
func (r *RouletteScene) SpinDuration() float64 { return r.spinFor }

func (r *RouletteScene) Mode() anim.ScrollMode { return r.stop.Mode() }

// Landed returns the theme picked when the reel stopped, if it has.
func (r *RouletteScene) Landed() (string, bool) {
	if !r.hasLand {
		return "", false
	}
	return r.cfg.Themes[r.landed], true
}

func (r *RouletteScene) LandedIndex() int { return r.landed }

func (r *RouletteScene) FuseProgress() float64 { return r.fuse.Value() }

func (r *RouletteScene) ExplosionAlpha() uint8 { return r.explosion.Alpha() }

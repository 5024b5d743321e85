package scene

import (
	"math"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/sequence"
)

const (
	PhaseLogo       = "logo"
	PhaseCharacters = "characters"
	PhasePrompt     = "prompt"
)

// TitleConfig times are seconds since the scene started.
type TitleConfig struct {
	Next        string
	Logo        string
	Prompt      string
	LogoDelay   float64
	CharsDelay  float64
	PromptDelay float64
	Fade        float64
	Blink       float64
	// AttackCycle is the length of one dash back and forth; the hit lands
	// AttackPeak into it.
	AttackCycle   float64
	AttackPeak    float64
	DashAmplitude float64
	HitWindow     float64
	ShakeDuration float64
	Gates         map[string]sequence.Gate
}

func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		Next:          HowTo,
		Logo:          "POSE PARTY",
		Prompt:        "Press SPACE to Start",
		LogoDelay:     1.0,
		CharsDelay:    2.0,
		PromptDelay:   3.0,
		Fade:          0.8,
		Blink:         0.4,
		AttackCycle:   1.2,
		AttackPeak:    0.6,
		DashAmplitude: 24,
		HitWindow:     0.08,
		ShakeDuration: 0.18,
	}
}

// TitleScene fades in the logo and both characters on staggered timers,
// then blinks a prompt until the player presses the advance key. A press
// at any point fast-forwards through the remaining phases.
type TitleScene struct {
	seq *sequence.Sequencer
	cfg TitleConfig

	logo   *anim.Delayed
	chars  *anim.Delayed
	prompt *anim.Delayed

	charsAt float64
	pressed bool
}

func NewTitle(cfg TitleConfig) (*TitleScene, error) {
	if cfg.Logo == "" {
		return nil, ErrBadTitle
	}
	def := DefaultTitleConfig()
	if cfg.Fade <= 0 {
		cfg.Fade = def.Fade
	}
	if cfg.Blink <= 0 {
		cfg.Blink = def.Blink
	}
	if cfg.AttackCycle <= 0 {
		cfg.AttackCycle = def.AttackCycle
	}
	if cfg.LogoDelay < 0 {
		cfg.LogoDelay = 0
	}
	// each phase starts where the previous fade ended
	logoEnd := cfg.LogoDelay + cfg.Fade
	charsDelay := math.Max(cfg.CharsDelay-logoEnd, 0)
	promptDelay := math.Max(cfg.PromptDelay-math.Max(cfg.CharsDelay, logoEnd)-cfg.Fade, 0)

	t := &TitleScene{
		cfg:    cfg,
		logo:   anim.Delay(anim.NewTween(cfg.Fade, common.Linear), cfg.LogoDelay),
		chars:  anim.Delay(anim.NewTween(cfg.Fade, common.Linear), charsDelay),
		prompt: anim.Delay(anim.NewTween(0, nil), promptDelay),
	}
	skippable := func(p anim.Property) sequence.Gate {
		return func(sequence.View) bool { return t.pressed || p.Converged() }
	}

	phases := []sequence.Phase{
		{
			Name:       PhaseLogo,
			Policy:     sequence.ForDuration,
			Properties: []sequence.Binding{sequence.Bind("logo", t.logo)},
			Gate:       gateFor(cfg.Gates, PhaseLogo, skippable(t.logo)),
		},
		{
			Name:       PhaseCharacters,
			Policy:     sequence.ForDuration,
			Properties: []sequence.Binding{sequence.Bind("chars", t.chars)},
			Gate:       gateFor(cfg.Gates, PhaseCharacters, skippable(t.chars)),
			OnEnter: func(s *sequence.Sequencer) {
				t.charsAt = s.Now() + charsDelay
			},
		},
		{
			Name:       PhasePrompt,
			Policy:     sequence.ForDuration,
			Properties: []sequence.Binding{sequence.Bind("prompt", t.prompt)},
			Gate: gateFor(cfg.Gates, PhasePrompt, func(sequence.View) bool {
				return t.pressed
			}),
		},
	}

	seq, err := sequence.New(Title, phases, sequence.WithNext(cfg.Next))
	if err != nil {
		return nil, err
	}
	t.seq = seq
	return t, nil
}

func (t *TitleScene) Update(dt float64) { t.seq.Tick(dt) }

func (t *TitleScene) Sequencer() *sequence.Sequencer { return t.seq }

// Press starts the game.
func (t *TitleScene) Press() { t.pressed = true }

func (t *TitleScene) Logo() string { return t.cfg.Logo }

func (t *TitleScene) Prompt() string { return t.cfg.Prompt }

func (t *TitleScene) LogoAlpha() uint8 { return alpha01(t.logo.Value()) }

func (t *TitleScene) CharsAlpha() uint8 {
	if !t.seq.Reached(PhaseCharacters) {
		return 0
	}
	return alpha01(t.chars.Value())
}

// PromptVisible blinks the prompt once it has appeared.
func (t *TitleScene) PromptVisible() bool {
	if !t.seq.Reached(PhasePrompt) || !t.prompt.Started() {
		return false
	}
	return int(t.seq.Now()/t.cfg.Blink)%2 == 0
}

// attackTime is the time into the current dash cycle, or -1 before the
// characters show up.
func (t *TitleScene) attackTime() float64 {
	if !t.seq.Reached(PhaseCharacters) {
		return -1
	}
	since := t.seq.Now() - t.charsAt
	if since < 0 {
		return -1
	}
	return math.Mod(since, t.cfg.AttackCycle)
}

// Dash is how far the characters lunge toward each other.
func (t *TitleScene) Dash() float64 {
	at := t.attackTime()
	if at < 0 {
		return 0
	}
	return t.cfg.DashAmplitude * math.Sin(2*math.Pi*at/t.cfg.AttackCycle)
}

// Hit reports whether the characters are at the peak of a clash.
func (t *TitleScene) Hit() bool {
	at := t.attackTime()
	return at >= 0 && math.Abs(at-t.cfg.AttackPeak) < t.cfg.HitWindow
}

// Shaking is true for a short while after each clash.
func (t *TitleScene) Shaking() bool {
	at := t.attackTime()
	if at < 0 {
		return false
	}
	d := at - t.cfg.AttackPeak + t.cfg.HitWindow
	return d >= 0 && d < t.cfg.ShakeDuration+t.cfg.HitWindow
}

func alpha01(v float64) uint8 {
	return uint8(math.Round(255 * common.Clamp01(v)))
}

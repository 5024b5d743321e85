package scene

import (
	"math"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/sequence"
)

const (
	PhaseDialogue = "dialogue"

	PhaseMiniSpin = "mini_spin"
	PhaseMiniStop = "mini_stop"
	PhaseMiniRest = "mini_rest"

	PhaseMiniCountdown = "mini_countdown"
	PhaseMiniClose     = "mini_close"
	PhaseMiniOpen      = "mini_open"
	PhaseMiniPause     = "mini_pause"
)

// Line is one speech bubble; Speaker indexes Players.
type Line struct {
	Speaker int
	Text    string
}

var DefaultLines = []Line{
	{0, "Welcome to the pose battle!"},
	{1, "You play with your whole body in front of the camera."},
	{0, "Look left. The roulette picks a theme first!"},
	{1, "Then on the right, copy that theme's pose."},
	{0, "When the countdown hits zero, the shutter fires!"},
	{1, "Whoever strikes the better pose wins."},
	{0, "Ready? Press SPACE to begin!"},
}

type HowToConfig struct {
	Next  string
	Lines []Line
	// JumpHeight is how far the speaker hops on each new line; it settles
	// back at JumpRecover pixels per second.
	JumpHeight  float64
	JumpRecover float64

	Themes     []string
	ItemHeight float64
	Speed      float64
	SpinFor    float64
	Friction   float64
	LowSpeed   float64
	SnapEasing float64
	Tolerance  float64
	Rest       float64

	Countdown float64
	Shutter   float64
	Pause     float64

	Gates map[string]sequence.Gate
}

func DefaultHowToConfig() HowToConfig {
	return HowToConfig{
		Next:        Roulette,
		Lines:       DefaultLines,
		JumpHeight:  15,
		JumpRecover: 150,
		Themes:      DefaultThemes,
		ItemHeight:  60,
		Speed:       400,
		SpinFor:     2.0,
		Friction:    0.92,
		LowSpeed:    10,
		SnapEasing:  10 * anim.FrameDT,
		Tolerance:   1.0,
		Rest:        2.0,
		Countdown:   3.0,
		Shutter:     0.1,
		Pause:       2.0,
	}
}

// HowToScene steps through the tutorial dialogue while two looping
// miniatures demo the roulette and the camera.
type HowToScene struct {
	seq *sequence.Sequencer
	cfg HowToConfig

	line     int
	finished bool
	jump     float64

	reel     *sequence.Sequencer
	spin     *anim.Scroll
	stop     *anim.DecayScroll
	reelBase float64

	camera    *sequence.Sequencer
	countdown *anim.Tween
	closing   *anim.Tween
	opening   *anim.Tween
}

func NewHowTo(cfg HowToConfig) (*HowToScene, error) {
	if len(cfg.Lines) == 0 {
		return nil, ErrNoLines
	}
	if len(cfg.Themes) == 0 {
		return nil, ErrNoThemes
	}
	if cfg.ItemHeight <= 0 {
		return nil, ErrBadItemHeight
	}
	def := DefaultHowToConfig()
	if cfg.JumpRecover <= 0 {
		cfg.JumpRecover = def.JumpRecover
	}
	if cfg.Countdown <= 0 {
		cfg.Countdown = def.Countdown
	}

	h := &HowToScene{
		cfg:  cfg,
		spin: anim.NewScroll(0, cfg.Speed),
		stop: anim.NewDecayScroll(anim.DecayScrollConfig{
			Slot:       cfg.ItemHeight,
			Friction:   cfg.Friction,
			LowSpeed:   cfg.LowSpeed,
			SnapEasing: cfg.SnapEasing,
			Tolerance:  cfg.Tolerance,
		}),
		countdown: anim.NewTween(cfg.Countdown, common.Linear),
		closing:   anim.NewTween(cfg.Shutter, common.Linear),
		opening:   anim.NewTween(cfg.Shutter, common.Linear),
	}

	seq, err := sequence.New(HowTo, []sequence.Phase{{
		Name:   PhaseDialogue,
		Policy: sequence.ForDuration,
		Gate: gateFor(cfg.Gates, PhaseDialogue, func(sequence.View) bool {
			return h.finished
		}),
	}}, sequence.WithNext(cfg.Next))
	if err != nil {
		return nil, err
	}
	h.seq = seq

	h.reel, err = sequence.New(HowTo+".roulette", []sequence.Phase{
		{
			Name:       PhaseMiniSpin,
			Policy:     sequence.ForDuration,
			Duration:   cfg.SpinFor,
			Properties: []sequence.Binding{sequence.Bind("reel", h.spin)},
		},
		{
			Name:       PhaseMiniStop,
			Properties: []sequence.Binding{sequence.Bind("reel.stop", h.stop)},
			OnEnter: func(*sequence.Sequencer) {
				h.stop.Launch(h.reelBase+h.spin.Value(), h.spin.Speed())
			},
			OnExit: func(*sequence.Sequencer) {
				// keep the reel where it landed once the cycle resets
				h.reelBase = math.Mod(h.stop.Value(), cfg.ItemHeight*float64(len(cfg.Themes)))
			},
		},
		{Name: PhaseMiniRest, Policy: sequence.ForDuration, Duration: cfg.Rest},
	}, sequence.Cyclic())
	if err != nil {
		return nil, err
	}

	h.camera, err = sequence.New(HowTo+".camera", []sequence.Phase{
		{
			Name:       PhaseMiniCountdown,
			Policy:     sequence.ForDuration,
			Duration:   cfg.Countdown,
			Properties: []sequence.Binding{sequence.Bind("countdown", h.countdown)},
		},
		{Name: PhaseMiniClose, Properties: []sequence.Binding{sequence.Bind("shutter.close", h.closing)}},
		{Name: PhaseMiniOpen, Properties: []sequence.Binding{sequence.Bind("shutter.open", h.opening)}},
		{Name: PhaseMiniPause, Policy: sequence.ForDuration, Duration: cfg.Pause},
	}, sequence.Cyclic())
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (h *HowToScene) Update(dt float64) {
	h.jump = anim.StepToward(h.jump, 0, h.cfg.JumpRecover*dt)
	h.seq.Tick(dt)
	if h.seq.Done() {
		return
	}
	h.reel.Tick(dt)
	h.camera.Tick(dt)
	h.reel.Drain()
	h.camera.Drain()
}

func (h *HowToScene) Sequencer() *sequence.Sequencer { return h.seq }

// Press moves to the next line; pressing on the last line ends the scene.
func (h *HowToScene) Press() {
	if h.finished {
		return
	}
	h.jump = -h.cfg.JumpHeight
	if h.line+1 >= len(h.cfg.Lines) {
		h.finished = true
		return
	}
	h.line++
}

func (h *HowToScene) Line() Line { return h.cfg.Lines[h.line] }

func (h *HowToScene) LineIndex() int { return h.line }

// Jump is the current speaker's vertical hop offset, zero or negative.
func (h *HowToScene) Jump() float64 { return h.jump }

func (h *HowToScene) Themes() []string { return h.cfg.Themes }

func (h *HowToScene) ItemHeight() float64 { return h.cfg.ItemHeight }

// ReelPosition is the mini roulette's offset.
func (h *HowToScene) ReelPosition() float64 {
	if h.reel.Reached(PhaseMiniStop) {
		return h.stop.Value()
	}
	return h.reelBase + h.spin.Value()
}

func (h *HowToScene) Reel() *sequence.Sequencer { return h.reel }

func (h *HowToScene) Camera() *sequence.Sequencer { return h.camera }

// CountdownDigit is the number shown on the mini camera, or 0 once the
// countdown is over.
func (h *HowToScene) CountdownDigit() int {
	if h.camera.Phase() != PhaseMiniCountdown {
		return 0
	}
	left := h.cfg.Countdown * (1 - h.countdown.Value())
	return max(int(math.Ceil(left)), 1)
}

// ArmAngle waves the stick figure's arms during the countdown.
func (h *HowToScene) ArmAngle() float64 {
	if h.camera.Phase() != PhaseMiniCountdown {
		return 0
	}
	return math.Sin(h.seq.Now()*5) * 30
}

// Shutter is how far the mini camera's shutter has closed, 0..1.
func (h *HowToScene) Shutter() float64 {
	switch h.camera.Phase() {
	case PhaseMiniClose:
		return h.closing.Value()
	case PhaseMiniOpen:
		return 1 - h.opening.Value()
	}
	return 0
}

package scene

import (
	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/sequence"
)

const (
	PhaseLidHold  = "lid_hold"
	PhaseLidLift  = "lid_lift"
	PhaseCounting = "counting"
	PhaseCapture  = "capture"
)

type CaptureConfig struct {
	Next        string
	Theme       string
	Wait        float64
	LidDuration float64
	CountFrom   int
	Interval    float64
	// TimeSpeed stretches the countdown interval; below 1 slows it down.
	TimeSpeed float64
	FlashStep int
	// Ready holds the lid closed until the camera is up. Nil means ready.
	Ready func() bool
	// Trigger fires exactly once when the countdown reaches zero.
	Trigger func(theme string)
	Gates   map[string]sequence.Gate
}

func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Next:        Score,
		Wait:        1.0,
		LidDuration: 2.0,
		CountFrom:   3,
		Interval:    1.0,
		TimeSpeed:   0.7,
		FlashStep:   15,
	}
}

// CaptureScene lifts a lid over the camera view, counts down and fires the
// shutter.
type CaptureScene struct {
	seq   *sequence.Sequencer
	cfg   CaptureConfig
	lid   *anim.Tween
	count *anim.Counter
	flash *anim.Fade
	fired bool
}

func NewCapture(cfg CaptureConfig) (*CaptureScene, error) {
	def := DefaultCaptureConfig()
	if cfg.Wait < 0 {
		cfg.Wait = def.Wait
	}
	if cfg.LidDuration < 0 {
		cfg.LidDuration = def.LidDuration
	}
	if cfg.CountFrom < 0 {
		cfg.CountFrom = def.CountFrom
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.TimeSpeed <= 0 {
		cfg.TimeSpeed = def.TimeSpeed
	}
	if cfg.FlashStep <= 0 {
		cfg.FlashStep = def.FlashStep
	}

	c := &CaptureScene{
		cfg:   cfg,
		lid:   anim.NewTween(cfg.LidDuration, common.EaseOutCubic),
		count: anim.NewCounter(cfg.CountFrom, 0, cfg.Interval/cfg.TimeSpeed),
		flash: anim.NewFadeTo(255, 0, cfg.FlashStep),
	}

	var ready sequence.Gate
	if cfg.Ready != nil {
		ready = func(sequence.View) bool { return cfg.Ready() }
	}

	phases := []sequence.Phase{
		{
			Name:     PhaseLidHold,
			Policy:   sequence.ForDuration,
			Duration: cfg.Wait,
			Gate:     gateFor(cfg.Gates, PhaseLidHold, ready),
		},
		{
			Name:       PhaseLidLift,
			Policy:     sequence.ForDuration,
			Duration:   cfg.LidDuration,
			Properties: []sequence.Binding{sequence.Bind("lid", c.lid)},
			Gate:       gateFor(cfg.Gates, PhaseLidLift, nil),
		},
		{
			Name:       PhaseCounting,
			Properties: []sequence.Binding{sequence.Bind("count", c.count)},
			Gate:       gateFor(cfg.Gates, PhaseCounting, nil),
		},
		{
			Name:       PhaseCapture,
			Properties: []sequence.Binding{sequence.Bind("flash", c.flash)},
			Gate:       gateFor(cfg.Gates, PhaseCapture, nil),
			OnEnter:    c.fire,
		},
	}

	seq, err := sequence.New(Camera, phases, sequence.WithNext(cfg.Next))
	if err != nil {
		return nil, err
	}
	c.seq = seq
	return c, nil
}

func (c *CaptureScene) fire(s *sequence.Sequencer) {
	if c.fired {
		return
	}
	c.fired = true
	s.Emit(sequence.Event{Kind: EventCaptureFired, Data: c.cfg.Theme})
	if c.cfg.Trigger != nil {
		c.cfg.Trigger(c.cfg.Theme)
	}
}

func (c *CaptureScene) Update(dt float64) { c.seq.Tick(dt) }

func (c *CaptureScene) Sequencer() *sequence.Sequencer { return c.seq }

func (c *CaptureScene) Theme() string { return c.cfg.Theme }

// LidOpen is the eased lid travel in [0,1].
func (c *CaptureScene) LidOpen() float64 { return c.lid.Value() }

// Count is the digit on screen; it only drops while counting is active.
func (c *CaptureScene) Count() int { return c.count.Int() }

// CountPulse is the progress through the current countdown interval.
func (c *CaptureScene) CountPulse() float64 { return c.count.Fraction() }

func (c *CaptureScene) Fired() bool { return c.fired }

func (c *CaptureScene) FlashAlpha() uint8 { return c.flash.Alpha() }

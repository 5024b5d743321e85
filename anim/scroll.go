package anim

import "math"

// Scroll moves at a constant speed forever. It never converges, so a phase
// holding one must be duration-gated.
type Scroll struct {
	initial  float64
	position float64
	speed    float64
}

func NewScroll(position, speed float64) *Scroll {
	return &Scroll{initial: position, position: position, speed: speed}
}

func (s *Scroll) Kind() Kind { return KindScroll }

func (s *Scroll) Advance(dt float64) bool {
	s.position += s.speed * dt
	return false
}

func (s *Scroll) Converged() bool { return false }

func (s *Scroll) Value() float64 { return s.position }

func (s *Scroll) Speed() float64 { return s.speed }

func (s *Scroll) Reset() { s.position = s.initial }

type ScrollMode int

const (
	// ScrollSpinning decays speed multiplicatively and integrates position.
	ScrollSpinning ScrollMode = iota
	// ScrollSnapping chases a fixed slot boundary chosen at the switch.
	ScrollSnapping
)

func (m ScrollMode) String() string {
	if m == ScrollSnapping {
		return "snapping"
	}
	return "spinning"
}

type DecayScrollConfig struct {
	Slot       float64 // slot height; snap targets are multiples of it
	Friction   float64 // per-tick speed multiplier in (0,1)
	LowSpeed   float64 // below this speed the scroll starts snapping
	SnapEasing float64 // per-tick approach fraction while snapping
	Tolerance  float64 // snap completes when closer than this
}

func DefaultDecayScrollConfig(slot float64) DecayScrollConfig {
	return DecayScrollConfig{
		Slot:       slot,
		Friction:   0.95,
		LowSpeed:   50,
		SnapEasing: 0.2,
		Tolerance:  1.0,
	}
}

// DecayScroll is a decelerating scroll that locks onto the nearest slot.
// The switch from Spinning to Snapping happens exactly once and freezes the
// snap target, so the scroll can never creep toward a moving goal.
type DecayScroll struct {
	cfg DecayScrollConfig

	launchPos   float64
	launchSpeed float64

	position  float64
	speed     float64
	target    float64
	mode      ScrollMode
	converged bool
}

func NewDecayScroll(cfg DecayScrollConfig) *DecayScroll {
	if cfg.Friction <= 0 || cfg.Friction >= 1 || math.IsNaN(cfg.Friction) {
		cfg.Friction = 0.95
	}
	if cfg.LowSpeed <= 0 {
		cfg.LowSpeed = 1
	}
	cfg.SnapEasing = clampEasing(cfg.SnapEasing)
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = 1.0
	}
	return &DecayScroll{cfg: cfg}
}

// Launch seeds the scroll with a position and speed and restarts spinning.
func (d *DecayScroll) Launch(position, speed float64) {
	d.launchPos = position
	d.launchSpeed = speed
	d.position = position
	d.speed = speed
	d.target = 0
	d.mode = ScrollSpinning
	d.converged = false
}

// SetFriction replaces the per-tick multiplier; values outside (0,1) are
// ignored.
func (d *DecayScroll) SetFriction(f float64) {
	if f > 0 && f < 1 {
		d.cfg.Friction = f
	}
}

func (d *DecayScroll) Friction() float64 { return d.cfg.Friction }

func (d *DecayScroll) Kind() Kind { return KindDecayScroll }

func (d *DecayScroll) Advance(dt float64) bool {
	if d.converged {
		return true
	}
	switch d.mode {
	case ScrollSpinning:
		d.speed *= d.cfg.Friction
		d.position += d.speed * dt
		if math.Abs(d.speed) < d.cfg.LowSpeed {
			d.mode = ScrollSnapping
			d.speed = 0
			d.target = SlotBoundary(d.position, d.cfg.Slot)
		}
	case ScrollSnapping:
		d.position = ApproachStep(d.position, d.target, d.cfg.SnapEasing)
		if math.Abs(d.target-d.position) < d.cfg.Tolerance {
			d.position = d.target
			d.converged = true
		}
	}
	return d.converged
}

func (d *DecayScroll) Converged() bool { return d.converged }

func (d *DecayScroll) Value() float64 { return d.position }

func (d *DecayScroll) Speed() float64 { return d.speed }

func (d *DecayScroll) Mode() ScrollMode { return d.mode }

// Target is the frozen snap target; meaningful only while snapping.
func (d *DecayScroll) Target() float64 { return d.target }

func (d *DecayScroll) Reset() { d.Launch(d.launchPos, d.launchSpeed) }

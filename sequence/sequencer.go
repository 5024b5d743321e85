package sequence

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/poseparty/anim"
)

var (
	ErrNoPhases          = errors.New("sequence: no phases")
	ErrEmptyName         = errors.New("sequence: empty name")
	ErrDuplicatePhase    = errors.New("sequence: duplicate phase")
	ErrDuplicateProperty = errors.New("sequence: duplicate property")
	ErrNilProperty       = errors.New("sequence: nil property")
	ErrBadDuration       = errors.New("sequence: bad duration")
)

// durationEpsilon absorbs float drift in summed frame times, so a 3 s phase
// at 60 ticks per second lasts exactly 180 ticks.
const durationEpsilon = 1e-9

type Option func(*Sequencer)

// WithNext names the scene to switch to once the last phase completes.
func WithNext(scene string) Option {
	return func(s *Sequencer) { s.next = scene }
}

// Cyclic makes the sequence wrap from its last phase back to the first,
// resetting every property, instead of finishing.
func Cyclic() Option {
	return func(s *Sequencer) { s.cyclic = true }
}

// Sequencer steps an ordered list of phases. Only the active phase's
// properties advance; properties of passed phases keep their last value and
// properties of later phases keep their initial one.
type Sequencer struct {
	name   string
	next   string
	cyclic bool

	phases []*Phase
	props  map[string]anim.Property
	order  []string
	owner  map[string]int

	index   int
	now     float64
	started bool
	done    bool
	cycles  int

	events EventQueue
}

func New(name string, phases []Phase, opts ...Option) (*Sequencer, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(phases) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPhases, name)
	}

	s := &Sequencer{
		name:  name,
		props: make(map[string]anim.Property),
		owner: make(map[string]int),
	}
	seen := make(map[string]bool, len(phases))
	for i := range phases {
		p := phases[i]
		if p.Name == "" {
			return nil, fmt.Errorf("%w: phase %d of %s", ErrEmptyName, i, name)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePhase, p.Name)
		}
		seen[p.Name] = true
		if math.IsNaN(p.Duration) || p.Duration < 0 {
			return nil, fmt.Errorf("%w: %s=%v", ErrBadDuration, p.Name, p.Duration)
		}
		p.Properties = append([]Binding(nil), p.Properties...)
		for _, b := range p.Properties {
			if b.ID == "" {
				return nil, fmt.Errorf("%w: property in phase %s", ErrEmptyName, p.Name)
			}
			if b.Prop == nil {
				return nil, fmt.Errorf("%w: %s", ErrNilProperty, b.ID)
			}
			if _, dup := s.props[b.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateProperty, b.ID)
			}
			s.props[b.ID] = b.Prop
			s.owner[b.ID] = i
			s.order = append(s.order, b.ID)
		}
		s.phases = append(s.phases, &p)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Tick advances the active phase by dt seconds and moves to the next phase
// when the barrier is satisfied. At most one transition happens per tick.
func (s *Sequencer) Tick(dt float64) {
	if s == nil || s.done {
		return
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}
	if !s.started {
		s.started = true
		s.enter(0)
	}

	s.now += dt
	p := s.phases[s.index]
	p.elapsed += dt
	for _, b := range p.Properties {
		b.Prop.Advance(dt)
	}
	if !s.ready(p) {
		return
	}

	s.exit(p)
	next := s.index + 1
	if next >= len(s.phases) {
		if !s.cyclic {
			s.done = true
			s.events.Push(Event{Kind: EventFinished, Scene: s.name, Phase: p.Name, At: s.now, Data: s.next})
			return
		}
		s.cycles++
		for _, id := range s.order {
			s.props[id].Reset()
		}
		s.events.Push(Event{Kind: EventCycled, Scene: s.name, At: s.now, Data: s.cycles})
		next = 0
	}
	s.index = next
	s.enter(next)
}

func (s *Sequencer) ready(p *Phase) bool {
	switch p.Policy {
	case ForDuration:
		if p.elapsed+durationEpsilon < p.Duration {
			return false
		}
	default:
		if !p.AllConverged() {
			return false
		}
	}
	return p.Gate == nil || p.Gate(s)
}

func (s *Sequencer) enter(i int) {
	p := s.phases[i]
	p.elapsed = 0
	s.events.Push(Event{Kind: EventPhaseEntered, Scene: s.name, Phase: p.Name, At: s.now})
	if p.OnEnter != nil {
		p.OnEnter(s)
	}
}

func (s *Sequencer) exit(p *Phase) {
	if p.OnExit != nil {
		p.OnExit(s)
	}
	s.events.Push(Event{Kind: EventPhaseExited, Scene: s.name, Phase: p.Name, At: s.now})
}

func (s *Sequencer) Name() string { return s.name }

// Next is the scene the host should switch to once Done reports true.
func (s *Sequencer) Next() string { return s.next }

func (s *Sequencer) Done() bool { return s.done }

func (s *Sequencer) Len() int { return len(s.phases) }

func (s *Sequencer) Index() int { return s.index }

func (s *Sequencer) Cycles() int { return s.cycles }

func (s *Sequencer) Phase() string { return s.phases[s.index].Name }

// Reached reports whether the named phase is active or already passed in
// the current cycle. Renderers use it to decide what to draw.
func (s *Sequencer) Reached(phase string) bool {
	for i, p := range s.phases {
		if p.Name == phase {
			return s.started && i <= s.index
		}
	}
	return false
}

// Now is the logical clock: the sum of every dt ticked so far.
func (s *Sequencer) Now() float64 { return s.now }

// Elapsed is the time spent in the active phase.
func (s *Sequencer) Elapsed() float64 {
	return s.phases[s.index].elapsed
}

func (s *Sequencer) Property(id string) (anim.Property, bool) {
	p, ok := s.props[id]
	return p, ok
}

// Value reads a property's current value, or 0 for unknown ids.
func (s *Sequencer) Value(id string) float64 {
	if p, ok := s.props[id]; ok {
		return p.Value()
	}
	return 0
}

func (s *Sequencer) Values() map[string]float64 {
	out := make(map[string]float64, len(s.props))
	for id, p := range s.props {
		out[id] = p.Value()
	}
	return out
}

// Emit queues a scene-specific event stamped with the sequencer's clock.
func (s *Sequencer) Emit(evt Event) {
	if evt.Scene == "" {
		evt.Scene = s.name
	}
	if evt.Phase == "" {
		evt.Phase = s.Phase()
	}
	evt.At = s.now
	s.events.Push(evt)
}

// Drain hands over every event queued since the last call.
func (s *Sequencer) Drain() []Event {
	return s.events.Drain()
}

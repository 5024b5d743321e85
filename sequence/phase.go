package sequence

import "github.com/milk9111/poseparty/anim"

// Policy decides what a phase waits for before the sequencer moves on.
type Policy int

const (
	// UntilConverged waits for every property to converge.
	UntilConverged Policy = iota
	// ForDuration waits for a fixed time since the phase was entered.
	ForDuration
)

func (p Policy) String() string {
	if p == ForDuration {
		return "duration"
	}
	return "converged"
}

// View is the read-only side of a sequencer handed to gates.
type View interface {
	Name() string
	Phase() string
	Index() int
	Now() float64
	Elapsed() float64
	Value(id string) float64
	Values() map[string]float64
}

// Gate is an extra exit condition evaluated on top of the phase policy.
type Gate func(v View) bool

// All joins gates; nil gates are skipped and an empty set always passes.
func All(gates ...Gate) Gate {
	var live []Gate
	for _, g := range gates {
		if g != nil {
			live = append(live, g)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(v View) bool {
		for _, g := range live {
			if !g(v) {
				return false
			}
		}
		return true
	}
}

// Binding names a property so renderers and gates can read it.
type Binding struct {
	ID   string
	Prop anim.Property
}

func Bind(id string, p anim.Property) Binding {
	return Binding{ID: id, Prop: p}
}

// Phase is one named stage of a sequence.
type Phase struct {
	Name       string
	Policy     Policy
	Duration   float64
	Properties []Binding
	Gate       Gate
	OnEnter    func(s *Sequencer)
	OnExit     func(s *Sequencer)

	elapsed float64
}

// AllConverged reports whether every property in the phase has converged.
// A phase without properties is trivially converged.
func (p *Phase) AllConverged() bool {
	for _, b := range p.Properties {
		if !b.Prop.Converged() {
			return false
		}
	}
	return true
}

package anim

import "math"

const DefaultApproachTolerance = 0.5

// Approach chases a target by a fixed fraction of the remaining distance per
// tick and snaps onto it once closer than the tolerance.
type Approach struct {
	initial   float64
	current   float64
	target    float64
	easing    float64
	tolerance float64
	converged bool
}

func NewApproach(from, to, easing float64) *Approach {
	a := &Approach{
		initial:   from,
		current:   from,
		target:    to,
		easing:    clampEasing(easing),
		tolerance: DefaultApproachTolerance,
	}
	a.settle()
	return a
}

func (a *Approach) WithTolerance(tolerance float64) *Approach {
	if tolerance > 0 {
		a.tolerance = tolerance
	}
	a.settle()
	return a
}

func (a *Approach) Kind() Kind { return KindApproach }

func (a *Approach) Advance(float64) bool {
	if a.converged {
		return true
	}
	a.current = ApproachStep(a.current, a.target, a.easing)
	a.settle()
	return a.converged
}

func (a *Approach) settle() {
	if math.Abs(a.target-a.current) < a.tolerance {
		a.current = a.target
		a.converged = true
	}
}

func (a *Approach) Converged() bool { return a.converged }

func (a *Approach) Value() float64 { return a.current }

func (a *Approach) Target() float64 { return a.target }

// SetTarget retargets the chase without touching the current value.
func (a *Approach) SetTarget(target float64) {
	a.target = target
	a.converged = math.Abs(a.target-a.current) < a.tolerance
}

func (a *Approach) Reset() {
	a.current = a.initial
	a.converged = false
	a.settle()
}

// Delayed holds a property still until its start offset has elapsed.
type Delayed struct {
	Property
	delay   float64
	elapsed float64
}

func Delay(p Property, seconds float64) *Delayed {
	return &Delayed{Property: p, delay: math.Max(seconds, 0)}
}

func (d *Delayed) Advance(dt float64) bool {
	d.elapsed += dt
	if d.elapsed < d.delay {
		return false
	}
	return d.Property.Advance(dt)
}

func (d *Delayed) Converged() bool {
	return d.Started() && d.Property.Converged()
}

func (d *Delayed) Started() bool { return d.elapsed >= d.delay }

func (d *Delayed) Reset() {
	d.elapsed = 0
	d.Property.Reset()
}

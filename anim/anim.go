// Package anim holds the animator primitives used by every scene and the
// timed properties that wrap them.
//
// Fades are frame-locked: a Fade moves a fixed number of alpha units per
// Advance call regardless of dt, so its speed assumes the host ticks at
// TickRate. Every other property integrates dt in seconds.
package anim

import "math"

// TickRate is the host frame rate the per-call fade steps are tuned for.
const TickRate = 60

// FrameDT is one tick at TickRate, in seconds.
const FrameDT = 1.0 / TickRate

type Kind int

const (
	KindFade Kind = iota
	KindApproach
	KindScroll
	KindDecayScroll
	KindGrowth
	KindCounter
	KindSegments
	KindTween
)

func (k Kind) String() string {
	switch k {
	case KindFade:
		return "fade"
	case KindApproach:
		return "approach"
	case KindScroll:
		return "scroll"
	case KindDecayScroll:
		return "decay_scroll"
	case KindGrowth:
		return "growth"
	case KindCounter:
		return "counter"
	case KindSegments:
		return "segments"
	case KindTween:
		return "tween"
	default:
		return "unknown"
	}
}

// Property is one independently animated value. Advance reports whether the
// property has converged on its target after the update.
type Property interface {
	Kind() Kind
	Advance(dt float64) bool
	Converged() bool
	Value() float64
	Reset()
}

// Vector is implemented by properties carrying more than one component.
type Vector interface {
	Values() []float64
}

// FadeStep moves an integer alpha toward target by at most step.
func FadeStep(current, target, step int) int {
	if step < 1 {
		step = 1
	}
	switch {
	case current < target:
		return current + min(step, target-current)
	case current > target:
		return current - min(step, current-target)
	default:
		return current
	}
}

// ApproachStep closes a fixed fraction of the remaining distance.
func ApproachStep(current, target, easing float64) float64 {
	return current + (target-current)*easing
}

// StepToward moves current toward target by at most maxStep, landing exactly
// on target when it is within reach.
func StepToward(current, target, maxStep float64) float64 {
	if maxStep < 0 {
		maxStep = 0
	}
	diff := target - current
	if math.Abs(diff) <= maxStep {
		return target
	}
	if diff > 0 {
		return current + maxStep
	}
	return current - maxStep
}

// GrowStep advances a growth ratio, saturating at 1.
func GrowStep(current, rate float64) float64 {
	return math.Min(current+rate, 1.0)
}

// SlotBoundary is the nearest multiple of slot to position.
func SlotBoundary(position, slot float64) float64 {
	if slot <= 0 {
		return position
	}
	return math.Round(position/slot) * slot
}

// SlotIndex maps a resting position onto a list of count slots.
func SlotIndex(position, slot float64, count int) int {
	if count <= 0 || slot <= 0 {
		return 0
	}
	i := int(math.Round(position/slot)) % count
	if i < 0 {
		i += count
	}
	return i
}

func clampEasing(easing float64) float64 {
	if math.IsNaN(easing) || easing <= 0 {
		return 0.01
	}
	if easing > 1 {
		return 1
	}
	return easing
}

package anim

import (
	"math"

	"github.com/milk9111/poseparty/common"
)

const DefaultSegmentTolerance = 0.5

// Segments animates several parallel values, each moving toward its own
// target by at most its own rate (units per second) per tick.
type Segments struct {
	current   []float64
	target    []float64
	limits    []float64
	rates     []float64
	tolerance float64
	converged bool
}

// NewSegments builds one segment per limit. rates may hold a single value
// shared by every segment.
func NewSegments(limits, rates []float64, tolerance float64) *Segments {
	n := len(limits)
	s := &Segments{
		current:   make([]float64, n),
		target:    make([]float64, n),
		limits:    append([]float64(nil), limits...),
		rates:     make([]float64, n),
		tolerance: tolerance,
	}
	if s.tolerance <= 0 {
		s.tolerance = DefaultSegmentTolerance
	}
	for i := range s.rates {
		switch {
		case len(rates) == n:
			s.rates[i] = rates[i]
		case len(rates) > 0:
			s.rates[i] = rates[0]
		}
	}
	s.converged = s.reached()
	return s
}

func (s *Segments) Kind() Kind { return KindSegments }

func (s *Segments) Advance(dt float64) bool {
	for i := range s.current {
		s.current[i] = StepToward(s.current[i], s.target[i], s.rates[i]*dt)
	}
	s.converged = s.reached()
	return s.converged
}

func (s *Segments) reached() bool {
	for i := range s.current {
		if math.Abs(s.current[i]-s.target[i]) > s.tolerance {
			return false
		}
	}
	return true
}

func (s *Segments) Converged() bool { return s.converged }

// Value is the sum of all segments.
func (s *Segments) Value() float64 {
	total := 0.0
	for _, v := range s.current {
		total += v
	}
	return total
}

func (s *Segments) Values() []float64 {
	return append([]float64(nil), s.current...)
}

func (s *Segments) Targets() []float64 {
	return append([]float64(nil), s.target...)
}

func (s *Segments) Limits() []float64 {
	return append([]float64(nil), s.limits...)
}

// SetTarget clamps values into [0, limit] and retargets every segment. A
// length mismatch is rejected and leaves the previous targets in place.
func (s *Segments) SetTarget(values []float64) bool {
	if len(values) != len(s.target) {
		return false
	}
	for i, v := range values {
		s.target[i] = common.Clamp(v, 0, s.limits[i])
	}
	s.converged = s.reached()
	return true
}

func (s *Segments) Reset() {
	for i := range s.current {
		s.current[i] = 0
	}
	s.converged = s.reached()
}

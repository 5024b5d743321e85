package common

import "math"

const (
	BaseWidth  = 800
	BaseHeight = 600
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

func Linear(t float64) float64 {
	return Clamp01(t)
}

// Mod returns i mod n in [0, n). n must be positive.
func Mod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}

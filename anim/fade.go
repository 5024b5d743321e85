package anim

// Fade ramps an integer alpha (0-255) by a fixed step per Advance call.
type Fade struct {
	step      int
	initial   int
	current   int
	target    int
	converged bool
}

// NewFade fades in from fully transparent to fully opaque.
func NewFade(step int) *Fade {
	return NewFadeTo(0, 255, step)
}

func NewFadeTo(from, to, step int) *Fade {
	if step < 1 {
		step = 1
	}
	from = clampAlpha(from)
	to = clampAlpha(to)
	return &Fade{
		step:      step,
		initial:   from,
		current:   from,
		target:    to,
		converged: from == to,
	}
}

func (f *Fade) Kind() Kind { return KindFade }

func (f *Fade) Advance(float64) bool {
	if f.converged {
		return true
	}
	f.current = FadeStep(f.current, f.target, f.step)
	f.converged = f.current == f.target
	return f.converged
}

func (f *Fade) Converged() bool { return f.converged }

func (f *Fade) Value() float64 { return float64(f.current) }

func (f *Fade) Alpha() uint8 { return uint8(f.current) }

func (f *Fade) Target() int { return f.target }

func (f *Fade) SetTarget(target int) {
	f.target = clampAlpha(target)
	f.converged = f.current == f.target
}

func (f *Fade) Reset() {
	f.current = f.initial
	f.converged = f.current == f.target
}

func clampAlpha(a int) int {
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return a
}

package anim

// Tween reports eased progress over a fixed duration.
type Tween struct {
	duration  float64
	elapsed   float64
	ease      func(float64) float64
	converged bool
}

func NewTween(duration float64, ease func(float64) float64) *Tween {
	t := &Tween{duration: duration, ease: ease}
	t.converged = t.Progress() >= 1
	return t
}

func (t *Tween) Kind() Kind { return KindTween }

func (t *Tween) Advance(dt float64) bool {
	if t.converged {
		return true
	}
	t.elapsed += dt
	t.converged = t.Progress() >= 1
	return t.converged
}

// Progress is the raw 0..1 fraction of the duration elapsed.
func (t *Tween) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	p := t.elapsed / t.duration
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func (t *Tween) Converged() bool { return t.converged }

func (t *Tween) Value() float64 {
	if t.ease == nil {
		return t.Progress()
	}
	return t.ease(t.Progress())
}

func (t *Tween) Reset() {
	t.elapsed = 0
	t.converged = t.Progress() >= 1
}

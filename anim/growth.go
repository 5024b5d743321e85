package anim

// Growth is a 0..1 ratio grown by a fixed increment per tick. Renderers use it
// as a multiplier against a magnitude supplied elsewhere.
type Growth struct {
	rate      float64
	current   float64
	converged bool
}

func NewGrowth(rate float64) *Growth {
	return &Growth{rate: rate}
}

func (g *Growth) Kind() Kind { return KindGrowth }

func (g *Growth) Advance(float64) bool {
	if g.converged {
		return true
	}
	g.current = GrowStep(g.current, g.rate)
	g.converged = g.current >= 1.0
	return g.converged
}

func (g *Growth) Converged() bool { return g.converged }

func (g *Growth) Value() float64 { return g.current }

func (g *Growth) Reset() {
	g.current = 0
	g.converged = false
}

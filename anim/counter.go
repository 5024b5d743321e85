package anim

// Counter is a discrete integer moved one unit toward its target per
// interval. An interval of zero or less steps once per Advance call.
type Counter struct {
	start     int
	current   int
	target    int
	interval  float64
	accum     float64
	converged bool
}

func NewCounter(start, target int, interval float64) *Counter {
	return &Counter{
		start:     start,
		current:   start,
		target:    target,
		interval:  interval,
		converged: start == target,
	}
}

func (c *Counter) Kind() Kind { return KindCounter }

func (c *Counter) Advance(dt float64) bool {
	if c.converged {
		return true
	}
	if c.interval <= 0 {
		c.step()
	} else {
		c.accum += dt
		for c.accum >= c.interval && c.current != c.target {
			c.accum -= c.interval
			c.step()
		}
	}
	if c.current == c.target {
		c.converged = true
		c.accum = 0
	}
	return c.converged
}

func (c *Counter) step() {
	switch {
	case c.current < c.target:
		c.current++
	case c.current > c.target:
		c.current--
	}
}

func (c *Counter) Converged() bool { return c.converged }

func (c *Counter) Value() float64 { return float64(c.current) }

func (c *Counter) Int() int { return c.current }

func (c *Counter) Target() int { return c.target }

// Fraction is how far the counter is into its current interval, in [0,1).
func (c *Counter) Fraction() float64 {
	if c.interval <= 0 || c.converged {
		return 0
	}
	return c.accum / c.interval
}

func (c *Counter) SetTarget(target int) {
	c.target = target
	c.converged = c.current == c.target
}

func (c *Counter) Reset() {
	c.current = c.start
	c.accum = 0
	c.converged = c.current == c.target
}

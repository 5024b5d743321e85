package scores

const DefaultRefreshInterval = 0.5

// Refresher rate-limits target refreshes against a logical clock.
type Refresher struct {
	Interval float64

	last   float64
	primed bool
}

func NewRefresher(interval float64) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{Interval: interval}
}

// Due reports whether a refresh may run at now and, if so, records it.
func (r *Refresher) Due(now float64) bool {
	if r.primed && now-r.last < r.Interval {
		return false
	}
	r.primed = true
	r.last = now
	return true
}

// Source hands out the latest parsed scores without blocking.
type Source interface {
	Latest() (Pair, bool)
}

// Static is a Source that never changes.
type Static struct {
	Pair Pair
}

func (s Static) Latest() (Pair, bool) {
	return s.Pair, len(s.Pair.First) > 0
}

package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/scores"
	"github.com/milk9111/poseparty/sequence"
)

const (
	PhaseTitleDrop      = "title_drop"
	PhaseMeterGrow      = "meter_grow"
	PhaseWinnerReveal   = "winner_reveal"
	PhaseFinalCountdown = "final_countdown"
)

type MeterConfig struct {
	Next              string
	Title             string
	TitleStartY       float64
	TitleTargetY      float64
	TitleEasing       float64
	CharDelay         float64
	CharDelayStep     float64
	Limits            []float64
	Rate              float64
	ReadInterval      float64
	DotInterval       float64
	DotCount          int
	CountdownFrom     int
	CountdownInterval float64
	// Source feeds meter targets; nil leaves them at zero until SetTargets.
	Source scores.Source
	Gates  map[string]sequence.Gate
}

func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		Next:              RoundResult,
		Title:             "RESULT",
		TitleStartY:       -130,
		TitleTargetY:      50,
		TitleEasing:       0.12,
		CharDelay:         0.5,
		CharDelayStep:     0.25,
		Limits:            []float64{100, 100, 300},
		Rate:              180,
		ReadInterval:      scores.DefaultRefreshInterval,
		DotInterval:       0.5,
		DotCount:          3,
		CountdownFrom:     3,
		CountdownInterval: 1.0,
	}
}

// ScoreMeter drops a title in, grows both players' segment meters toward
// the live scores, reveals the winner and counts down.
type ScoreMeter struct {
	seq     *sequence.Sequencer
	cfg     MeterConfig
	refresh *scores.Refresher

	chars     []*anim.Delayed
	meters    [2]*anim.Segments
	dots      *anim.Counter
	countdown *anim.Counter
}

func NewScoreMeter(cfg MeterConfig) (*ScoreMeter, error) {
	if cfg.Title == "" {
		return nil, ErrBadTitle
	}
	if len(cfg.Limits) == 0 {
		return nil, ErrNoSegments
	}
	def := DefaultMeterConfig()
	if cfg.TitleEasing <= 0 {
		cfg.TitleEasing = def.TitleEasing
	}
	if cfg.Rate <= 0 {
		cfg.Rate = def.Rate
	}
	if cfg.DotInterval <= 0 {
		cfg.DotInterval = def.DotInterval
	}
	if cfg.DotCount <= 0 {
		cfg.DotCount = def.DotCount
	}
	if cfg.CountdownInterval <= 0 {
		cfg.CountdownInterval = def.CountdownInterval
	}

	m := &ScoreMeter{
		cfg:       cfg,
		refresh:   scores.NewRefresher(cfg.ReadInterval),
		dots:      anim.NewCounter(0, cfg.DotCount, cfg.DotInterval),
		countdown: anim.NewCounter(cfg.CountdownFrom, -1, cfg.CountdownInterval),
	}

	var title []sequence.Binding
	for i := range []rune(cfg.Title) {
		drop := anim.NewApproach(cfg.TitleStartY, cfg.TitleTargetY, cfg.TitleEasing)
		d := anim.Delay(drop, cfg.CharDelay+cfg.CharDelayStep*float64(i))
		m.chars = append(m.chars, d)
		title = append(title, sequence.Bind(fmt.Sprintf("title.%d", i), d))
	}
	for i := range m.meters {
		m.meters[i] = anim.NewSegments(cfg.Limits, []float64{cfg.Rate}, anim.DefaultSegmentTolerance)
	}

	phases := []sequence.Phase{
		{
			Name:       PhaseTitleDrop,
			Properties: title,
			Gate:       gateFor(cfg.Gates, PhaseTitleDrop, nil),
		},
		{
			Name: PhaseMeterGrow,
			Properties: []sequence.Binding{
				sequence.Bind("meter.red", m.meters[0]),
				sequence.Bind("meter.blue", m.meters[1]),
			},
			Gate: gateFor(cfg.Gates, PhaseMeterGrow, nil),
		},
		{
			Name:       PhaseWinnerReveal,
			Properties: []sequence.Binding{sequence.Bind("dots", m.dots)},
			Gate:       gateFor(cfg.Gates, PhaseWinnerReveal, nil),
		},
		{
			Name:       PhaseFinalCountdown,
			Properties: []sequence.Binding{sequence.Bind("countdown", m.countdown)},
			Gate:       gateFor(cfg.Gates, PhaseFinalCountdown, nil),
		},
	}

	seq, err := sequence.New(Score, phases, sequence.WithNext(cfg.Next))
	if err != nil {
		return nil, err
	}
	m.seq = seq
	return m, nil
}

// Update refreshes targets from the source at most once per read interval
// and then ticks the sequencer.
func (m *ScoreMeter) Update(dt float64) {
	if m.cfg.Source != nil && !m.seq.Done() && m.refresh.Due(m.seq.Now()) {
		if pair, ok := m.cfg.Source.Latest(); ok {
			if m.SetTargets(pair.First, pair.Second) {
				m.seq.Emit(sequence.Event{Kind: EventScoresRefreshed, Data: pair})
			}
		}
	}
	m.seq.Tick(dt)
}

// SetTargets retargets the meters without touching their current values.
// A nil or wrongly sized slice leaves that player's targets alone.
func (m *ScoreMeter) SetTargets(red, blue []float64) bool {
	changed := false
	for i, vals := range [2][]float64{red, blue} {
		if vals == nil {
			continue
		}
		before := m.meters[i].Targets()
		if !m.meters[i].SetTarget(vals) {
			continue
		}
		after := m.meters[i].Targets()
		for j := range after {
			if after[j] != before[j] {
				changed = true
			}
		}
	}
	return changed
}

func (m *ScoreMeter) Sequencer() *sequence.Sequencer { return m.seq }

func (m *ScoreMeter) Title() string { return m.cfg.Title }

// CharY is the vertical offset of title character i.
func (m *ScoreMeter) CharY(i int) float64 {
	if i < 0 || i >= len(m.chars) {
		return m.cfg.TitleStartY
	}
	return m.chars[i].Value()
}

// Segments returns a player's current segment lengths.
func (m *ScoreMeter) Segments(player int) []float64 { return m.meters[player].Values() }

func (m *ScoreMeter) Limits() []float64 { return append([]float64(nil), m.cfg.Limits...) }

func (m *ScoreMeter) Max() float64 {
	return scores.Total(m.cfg.Limits)
}

func (m *ScoreMeter) Total(player int) float64 { return m.meters[player].Value() }

// Label renders a player's meter as "total / max (percent%)".
func (m *ScoreMeter) Label(player int) string {
	total := m.Total(player)
	limit := m.Max()
	pct := 0
	if limit > 0 {
		pct = int(math.Round(total / limit * 100))
	}
	return fmt.Sprintf("%d / %d (%d%%)", int(math.Round(total)), int(math.Round(limit)), pct)
}

// Winner is 0 or 1 for the player whose meter shows the higher total, or -1
// on a draw. It reads the meters as drawn, not their targets.
func (m *ScoreMeter) Winner() int {
	red := math.Round(m.Total(0))
	blue := math.Round(m.Total(1))
	switch {
	case red > blue:
		return 0
	case blue > red:
		return 1
	}
	return -1
}

func (m *ScoreMeter) Dots() string { return strings.Repeat(".", m.dots.Int()) }

// Countdown is the number on screen; it ends at -1 once the phase is over.
func (m *ScoreMeter) Countdown() int { return m.countdown.Int() }

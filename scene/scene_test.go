package scene

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/scores"
	"github.com/milk9111/poseparty/sequence"
)

const frame = 1.0 / 60

func runUntilDone(t *testing.T, sc Scene, dt float64, maxTicks int) int {
	t.Helper()
	for i := 1; i <= maxTicks; i++ {
		sc.Update(dt)
		if sc.Sequencer().Done() {
			return i
		}
	}
	t.Fatalf("scene %s stuck in %s after %d ticks", sc.Sequencer().Name(), sc.Sequencer().Phase(), maxTicks)
	return 0
}

func enteredPhases(events []sequence.Event) []string {
	var out []string
	for _, evt := range events {
		if evt.Kind == sequence.EventPhaseEntered {
			out = append(out, evt.Phase)
		}
	}
	return out
}

func TestResultRevealTotals(t *testing.T) {
	r, err := NewResultReveal(DefaultResultConfig(), []int{3, 3, 3}, []int{8, 3, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var events []sequence.Event
	for i := 0; i < 5000 && !r.Sequencer().Done(); i++ {
		r.Update(frame)
		events = append(events, r.Sequencer().Drain()...)
	}
	if !r.Sequencer().Done() {
		t.Fatalf("reveal did not finish, stuck in %s", r.Sequencer().Phase())
	}
	if r.Total(0) != 9 || r.Total(1) != 21 {
		t.Fatalf("expected totals 9 and 21, got %d and %d", r.Total(0), r.Total(1))
	}
	if r.Sequencer().Next() != Roulette {
		t.Fatalf("unexpected next scene %q", r.Sequencer().Next())
	}

	want := []string{
		PhaseBackground, PhaseTitle, PhaseDivider, PhasePlayerTags, PhaseChartFrame,
		PhaseBottomLabels, PhaseBottomScores, PhaseTriangleGrowth, PhaseTotalCountUp,
	}
	got := enteredPhases(events)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected phase order %v", got)
	}

	radii := r.Radii(1, 120)
	for i, w := range []float64{96, 36, 120} {
		if math.Abs(radii[i]-w) > 1e-9 {
			t.Fatalf("radius %d: expected %v, got %v", i, w, radii[i])
		}
	}
	for _, id := range []string{"background", "tag.red", "tag.blue", "label.blue.2", "score.red.0"} {
		if r.Alpha(id) != 255 {
			t.Fatalf("%s should stay fully visible, got %d", id, r.Alpha(id))
		}
	}
}

func TestResultRevealFadeBarrierCoversBothPlayers(t *testing.T) {
	r, err := NewResultReveal(DefaultResultConfig(), []int{1, 1, 1}, []int{1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for r.Sequencer().Phase() != PhaseBottomLabels {
		r.Update(frame)
	}
	for i := 0; i < 50; i++ {
		r.Update(frame)
	}
	if r.Sequencer().Phase() != PhaseBottomLabels {
		t.Fatalf("labels advanced early to %s", r.Sequencer().Phase())
	}
	if r.Alpha("score.red.0") != 0 {
		t.Fatalf("later phase should not have started")
	}
	r.Update(frame)
	if r.Sequencer().Phase() != PhaseBottomScores {
		t.Fatalf("expected bottom scores, got %s", r.Sequencer().Phase())
	}
}

func TestResultRevealClampsAndRejects(t *testing.T) {
	if _, err := NewResultReveal(DefaultResultConfig(), []int{1, 2}, []int{1, 2, 3}); !errors.Is(err, ErrScoreShape) {
		t.Fatalf("expected ErrScoreShape, got %v", err)
	}
	r, err := NewResultReveal(DefaultResultConfig(), []int{-4, 50, 5}, []int{0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Scores(0); got != [3]int{0, 10, 5} {
		t.Fatalf("unexpected clamped scores %v", got)
	}
}

func testRoulette(t *testing.T, seed uint64, publish func(string)) *RouletteScene {
	t.Helper()
	cfg := DefaultRouletteConfig()
	cfg.Seed = seed
	cfg.OnPublish = publish
	r, err := NewRoulette(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestRouletteLandsOnSlot(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		var published []string
		r := testRoulette(t, seed, func(theme string) { published = append(published, theme) })

		var landedAtStop string
		for i := 0; i < 5000 && !r.Sequencer().Done(); i++ {
			r.Update(frame)
			if theme, ok := r.Landed(); ok && landedAtStop == "" {
				landedAtStop = theme
				if r.Sequencer().Phase() != PhaseFuse {
					t.Fatalf("seed %d: landed outside the stop transition (%s)", seed, r.Sequencer().Phase())
				}
			}
		}
		if !r.Sequencer().Done() {
			t.Fatalf("seed %d: roulette stuck in %s", seed, r.Sequencer().Phase())
		}

		pos := r.Position()
		if math.Mod(pos, r.ItemHeight()) != 0 {
			t.Fatalf("seed %d: resting position %v is between slots", seed, pos)
		}
		idx := anim.SlotIndex(pos, r.ItemHeight(), len(r.Themes()))
		if idx != r.LandedIndex() {
			t.Fatalf("seed %d: expected index %d, got %d", seed, idx, r.LandedIndex())
		}
		theme, _ := r.Landed()
		if theme != landedAtStop {
			t.Fatalf("seed %d: landed theme changed from %s to %s", seed, landedAtStop, theme)
		}
		if len(published) != 1 || published[0] != theme {
			t.Fatalf("seed %d: expected one publish of %s, got %v", seed, theme, published)
		}
		if r.SpinDuration() < 1.5 || r.SpinDuration() > 3.0 {
			t.Fatalf("seed %d: spin duration %v out of range", seed, r.SpinDuration())
		}
		if r.ExplosionAlpha() != 255 {
			t.Fatalf("seed %d: explosion should finish opaque", seed)
		}
	}
}

func TestRouletteSeedIsReproducible(t *testing.T) {
	a := testRoulette(t, 42, nil)
	b := testRoulette(t, 42, nil)
	runUntilDone(t, a, frame, 5000)
	runUntilDone(t, b, frame, 5000)
	if a.SpinDuration() != b.SpinDuration() || a.LandedIndex() != b.LandedIndex() {
		t.Fatalf("same seed gave different runs")
	}
}

func TestRouletteFuseIsDurationGated(t *testing.T) {
	r := testRoulette(t, 7, nil)
	for r.Sequencer().Phase() != PhaseFuse {
		r.Update(frame)
	}
	ticks := 0
	for r.Sequencer().Phase() == PhaseFuse {
		r.Update(frame)
		ticks++
	}
	if ticks != 180 {
		t.Fatalf("fuse lasted %d ticks, expected 180", ticks)
	}
}

func TestRouletteRejectsEmptyThemes(t *testing.T) {
	cfg := DefaultRouletteConfig()
	cfg.Themes = nil
	if _, err := NewRoulette(cfg); !errors.Is(err, ErrNoThemes) {
		t.Fatalf("expected ErrNoThemes, got %v", err)
	}
	cfg = DefaultRouletteConfig()
	cfg.ItemHeight = 0
	if _, err := NewRoulette(cfg); !errors.Is(err, ErrBadItemHeight) {
		t.Fatalf("expected ErrBadItemHeight, got %v", err)
	}
}

func TestRouletteRepeatCycles(t *testing.T) {
	cfg := DefaultRouletteConfig()
	cfg.Seed = 3
	cfg.Repeat = true
	r, err := NewRoulette(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5000 && r.Sequencer().Cycles() < 2; i++ {
		r.Update(frame)
	}
	if r.Sequencer().Cycles() < 2 || r.Sequencer().Done() {
		t.Fatalf("expected repeated cycles, got %d done=%v", r.Sequencer().Cycles(), r.Sequencer().Done())
	}
}

func TestCaptureFiresOnceUnderHugeDT(t *testing.T) {
	fired := 0
	cfg := DefaultCaptureConfig()
	cfg.Theme = "Glico"
	cfg.Trigger = func(theme string) {
		fired++
		if theme != "Glico" {
			t.Fatalf("unexpected theme %q", theme)
		}
	}
	c, err := NewCapture(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 50; i++ {
		c.Update(1000)
	}
	if fired != 1 {
		t.Fatalf("expected one trigger, got %d", fired)
	}
	if !c.Sequencer().Done() || c.Count() != 0 {
		t.Fatalf("expected finished capture at zero, got done=%v count=%d", c.Sequencer().Done(), c.Count())
	}
}

func TestCaptureFiresOnceAtFrameRate(t *testing.T) {
	fired := 0
	cfg := DefaultCaptureConfig()
	cfg.Trigger = func(string) { fired++ }
	c, err := NewCapture(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2000 && !c.Sequencer().Done(); i++ {
		c.Update(frame)
		if c.Fired() && c.Count() != 0 {
			t.Fatalf("fired while count was %d", c.Count())
		}
	}
	if fired != 1 {
		t.Fatalf("expected one trigger, got %d", fired)
	}
}

func TestCaptureTimeSpeedStretchesInterval(t *testing.T) {
	cfg := DefaultCaptureConfig()
	cfg.Wait = 0
	cfg.LidDuration = 0
	cfg.Interval = 1
	cfg.TimeSpeed = 0.5
	c, err := NewCapture(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		c.Update(0.5)
	}
	if c.Sequencer().Phase() != PhaseCounting || c.Count() != 3 {
		t.Fatalf("expected 3 still counting, got %d in %s", c.Count(), c.Sequencer().Phase())
	}
	c.Update(0.5)
	if c.Count() != 2 {
		t.Fatalf("expected 2 after a stretched interval, got %d", c.Count())
	}
}

func TestCaptureWaitsForReady(t *testing.T) {
	ready := false
	cfg := DefaultCaptureConfig()
	cfg.Ready = func() bool { return ready }
	c, err := NewCapture(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 600; i++ {
		c.Update(frame)
	}
	if c.Sequencer().Phase() != PhaseLidHold {
		t.Fatalf("lid lifted before camera was ready")
	}
	ready = true
	c.Update(frame)
	if c.Sequencer().Phase() != PhaseLidLift {
		t.Fatalf("expected lid lift, got %s", c.Sequencer().Phase())
	}
}

func meterSource() scores.Static {
	return scores.Static{Pair: scores.Pair{
		First:  []float64{80, 90, 150},
		Second: []float64{50, 50, 100},
	}}
}

func TestScoreMeterTotals(t *testing.T) {
	cfg := DefaultMeterConfig()
	cfg.Source = meterSource()
	m, err := NewScoreMeter(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runUntilDone(t, m, frame, 10000)

	if got := m.Label(0); got != "320 / 500 (64%)" {
		t.Fatalf("unexpected red label %q", got)
	}
	if got := m.Label(1); got != "200 / 500 (40%)" {
		t.Fatalf("unexpected blue label %q", got)
	}
	if m.Winner() != 0 || m.Dots() != "..." || m.Countdown() != -1 {
		t.Fatalf("unexpected end state winner=%d dots=%q countdown=%d", m.Winner(), m.Dots(), m.Countdown())
	}
	if m.Sequencer().Next() != RoundResult {
		t.Fatalf("unexpected next %q", m.Sequencer().Next())
	}
	for i := range m.Title() {
		if math.Abs(m.CharY(i)-50) >= 0.5 {
			t.Fatalf("char %d did not land: %v", i, m.CharY(i))
		}
	}
}

func TestScoreMeterLabelRoundsPercent(t *testing.T) {
	m, err := NewScoreMeter(DefaultMeterConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.SetTargets([]float64{100, 100, 133}, []float64{0, 0, 0})
	runUntilDone(t, m, frame, 10000)
	if got := m.Label(0); got != "333 / 500 (67%)" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestScoreMeterWinnerFollowsDrawnMeters(t *testing.T) {
	m, err := NewScoreMeter(DefaultMeterConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.SetTargets(meterSource().Pair.First, meterSource().Pair.Second)
	for i := 0; i < 10000 && !m.Sequencer().Reached(PhaseWinnerReveal); i++ {
		m.Update(frame)
	}
	if m.Winner() != 0 {
		t.Fatalf("expected red to lead, got %d", m.Winner())
	}
	m.SetTargets(nil, []float64{100, 100, 300})
	m.Update(frame)
	if m.Winner() != 0 {
		t.Fatalf("winner changed after the meters froze: %d", m.Winner())
	}
	if got := m.Label(1); got != "200 / 500 (40%)" {
		t.Fatalf("frozen blue meter moved: %q", got)
	}
}

func TestScoreMeterGrowBarrier(t *testing.T) {
	cfg := DefaultMeterConfig()
	cfg.Source = meterSource()
	m, err := NewScoreMeter(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	targets := [2][]float64{meterSource().Pair.First, meterSource().Pair.Second}
	for i := 0; i < 10000 && !m.Sequencer().Reached(PhaseWinnerReveal); i++ {
		m.Update(frame)
	}
	if !m.Sequencer().Reached(PhaseWinnerReveal) {
		t.Fatalf("meter never finished growing")
	}
	for p := 0; p < 2; p++ {
		for i, v := range m.Segments(p) {
			if math.Abs(v-targets[p][i]) > 0.5 {
				t.Fatalf("player %d segment %d left meter_grow at %v, target %v", p, i, v, targets[p][i])
			}
		}
	}
}

type countingSource struct {
	calls int
	pair  scores.Pair
}

func (c *countingSource) Latest() (scores.Pair, bool) {
	c.calls++
	return c.pair, true
}

func TestScoreMeterRefreshIsRateLimited(t *testing.T) {
	src := &countingSource{pair: meterSource().Pair}
	cfg := DefaultMeterConfig()
	cfg.Source = src
	m, err := NewScoreMeter(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 60; i++ {
		m.Update(frame)
	}
	if src.calls != 2 {
		t.Fatalf("expected 2 reads in one second, got %d", src.calls)
	}
}

func TestScoreMeterRetargetKeepsCurrent(t *testing.T) {
	cfg := DefaultMeterConfig()
	cfg.Title = "R"
	cfg.CharDelay = 0
	m, err := NewScoreMeter(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.SetTargets([]float64{100, 100, 300}, nil)
	for m.Sequencer().Phase() != PhaseMeterGrow {
		m.Update(frame)
	}
	for i := 0; i < 20; i++ {
		m.Update(frame)
	}
	before := m.Segments(0)
	if m.SetTargets([]float64{1, 2}, nil) {
		t.Fatalf("wrong-length targets should be ignored")
	}
	if !m.SetTargets([]float64{500, 0, 0}, nil) {
		t.Fatalf("expected retarget")
	}
	after := m.Segments(0)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("retarget moved current values %v -> %v", before, after)
		}
	}
	runUntilDone(t, m, frame, 10000)
	if got := m.Segments(0); got[0] != 100 || got[1] != 0 || got[2] != 0 {
		t.Fatalf("expected clamped retarget, got %v", got)
	}
}

func TestScoreMeterRejectsBadConfig(t *testing.T) {
	cfg := DefaultMeterConfig()
	cfg.Title = ""
	if _, err := NewScoreMeter(cfg); !errors.Is(err, ErrBadTitle) {
		t.Fatalf("expected ErrBadTitle, got %v", err)
	}
	cfg = DefaultMeterConfig()
	cfg.Limits = nil
	if _, err := NewScoreMeter(cfg); !errors.Is(err, ErrNoSegments) {
		t.Fatalf("expected ErrNoSegments, got %v", err)
	}
}

package scene

import (
	"errors"
	"math"
	"testing"
)

func tick(sc Scene, n int) {
	for i := 0; i < n; i++ {
		sc.Update(frame)
	}
}

func TestTitleFadesInOnStaggeredTimers(t *testing.T) {
	ts, err := NewTitle(DefaultTitleConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tick(ts, 54)
	if ts.LogoAlpha() != 0 || ts.CharsAlpha() != 0 {
		t.Fatalf("nothing should show before 1s, logo=%d chars=%d", ts.LogoAlpha(), ts.CharsAlpha())
	}
	tick(ts, 66)
	if ts.LogoAlpha() != 255 {
		t.Fatalf("logo should be in after 2s, got %d", ts.LogoAlpha())
	}
	if ts.CharsAlpha() == 255 {
		t.Fatalf("characters should still be fading at 2s")
	}

	tick(ts, 600)
	if ts.Sequencer().Phase() != PhasePrompt || ts.Sequencer().Done() {
		t.Fatalf("title should wait on the prompt, got %s done=%v", ts.Sequencer().Phase(), ts.Sequencer().Done())
	}
	if ts.CharsAlpha() != 255 {
		t.Fatalf("characters should be in, got %d", ts.CharsAlpha())
	}

	on, off := 0, 0
	for i := 0; i < 60; i++ {
		ts.Update(frame)
		if ts.PromptVisible() {
			on++
		} else {
			off++
		}
	}
	if on == 0 || off == 0 {
		t.Fatalf("prompt should blink, on=%d off=%d", on, off)
	}

	ts.Press()
	ts.Update(frame)
	if !ts.Sequencer().Done() || ts.Sequencer().Next() != HowTo {
		t.Fatalf("press should finish the title toward %s, got done=%v next=%q", HowTo, ts.Sequencer().Done(), ts.Sequencer().Next())
	}
}

func TestTitleEarlyPressFastForwards(t *testing.T) {
	ts, err := NewTitle(DefaultTitleConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts.Update(frame)
	ts.Press()
	if n := runUntilDone(t, ts, frame, 10); n != 3 {
		t.Fatalf("expected one phase per tick, finished after %d ticks", n)
	}
}

func TestTitleCharactersClash(t *testing.T) {
	ts, err := NewTitle(DefaultTitleConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Dash() != 0 || ts.Hit() {
		t.Fatalf("characters should be idle before they appear")
	}
	hits, maxDash := 0, 0.0
	for i := 0; i < 600; i++ {
		ts.Update(frame)
		if ts.Hit() {
			hits++
		}
		maxDash = math.Max(maxDash, ts.Dash())
	}
	if hits == 0 {
		t.Fatalf("expected clashes")
	}
	if maxDash < 23 || maxDash > 24 {
		t.Fatalf("dash should peak near 24, got %v", maxDash)
	}
}

func TestTitleRejectsEmptyLogo(t *testing.T) {
	cfg := DefaultTitleConfig()
	cfg.Logo = ""
	if _, err := NewTitle(cfg); !errors.Is(err, ErrBadTitle) {
		t.Fatalf("expected ErrBadTitle, got %v", err)
	}
}

func TestHowToStepsThroughDialogue(t *testing.T) {
	h, err := NewHowTo(DefaultHowToConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < len(DefaultLines)-1; i++ {
		if h.LineIndex() != i || h.Line() != DefaultLines[i] {
			t.Fatalf("expected line %d, got %d", i, h.LineIndex())
		}
		h.Press()
		if h.Jump() != -15 {
			t.Fatalf("speaker should hop on a new line, jump=%v", h.Jump())
		}
		tick(h, 30)
		if h.Jump() != 0 || h.Sequencer().Done() {
			t.Fatalf("jump should settle within 0.1s, jump=%v done=%v", h.Jump(), h.Sequencer().Done())
		}
	}

	h.Press()
	if h.LineIndex() != len(DefaultLines)-1 {
		t.Fatalf("last line should stay on screen, got %d", h.LineIndex())
	}
	h.Update(frame)
	if !h.Sequencer().Done() || h.Sequencer().Next() != Roulette {
		t.Fatalf("expected done toward roulette, got done=%v next=%q", h.Sequencer().Done(), h.Sequencer().Next())
	}
}

func TestHowToMiniRouletteLoops(t *testing.T) {
	cfg := DefaultHowToConfig()
	h, err := NewHowTo(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	span := cfg.ItemHeight * float64(len(cfg.Themes))

	rests := 0
	for i := 0; i < 60*40 && h.Reel().Cycles() < 3; i++ {
		before := h.ReelPosition()
		cycles := h.Reel().Cycles()
		h.Update(frame)

		if h.Reel().Cycles() != cycles {
			if got, want := h.ReelPosition(), math.Mod(before, span); math.Abs(got-want) > 1e-9 {
				t.Fatalf("reel jumped on wrap: %v -> %v", before, got)
			}
		}
		if h.Reel().Phase() == PhaseMiniRest {
			rests++
			pos := h.ReelPosition()
			if slot := math.Round(pos/cfg.ItemHeight) * cfg.ItemHeight; pos != slot {
				t.Fatalf("reel resting off a slot at %v", pos)
			}
		}
	}
	if h.Reel().Cycles() < 3 || rests == 0 {
		t.Fatalf("mini roulette should keep looping, cycles=%d rests=%d", h.Reel().Cycles(), rests)
	}
	if h.Sequencer().Done() {
		t.Fatalf("looping miniatures must not finish the scene")
	}
}

func TestHowToMiniCameraLoops(t *testing.T) {
	h, err := NewHowTo(DefaultHowToConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	digits := map[int]bool{}
	closed := false
	for i := 0; i < 60*12; i++ {
		h.Update(frame)
		if d := h.CountdownDigit(); d > 0 {
			digits[d] = true
		}
		if h.Shutter() >= 1 {
			closed = true
		}
		if s := h.Shutter(); s < 0 || s > 1 {
			t.Fatalf("shutter out of range: %v", s)
		}
	}
	for _, d := range []int{1, 2, 3} {
		if !digits[d] {
			t.Fatalf("countdown never showed %d: %v", d, digits)
		}
	}
	if !closed || h.Camera().Cycles() < 1 {
		t.Fatalf("shutter should close and the loop restart, closed=%v cycles=%d", closed, h.Camera().Cycles())
	}
}

func TestHowToRejectsEmptyDialogue(t *testing.T) {
	cfg := DefaultHowToConfig()
	cfg.Lines = nil
	if _, err := NewHowTo(cfg); !errors.Is(err, ErrNoLines) {
		t.Fatalf("expected ErrNoLines, got %v", err)
	}
}

func TestManagerPressForwardsOrSkips(t *testing.T) {
	m := NewManager(nil, map[string]Factory{
		Title: func(*Shared) (Scene, error) { return NewTitle(DefaultTitleConfig()) },
		HowTo: stubFactory(HowTo, "", 1),
	})
	if err := m.Start(Title); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Press()
	for i := 0; i < 3; i++ {
		if err := m.Update(frame); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if m.CurrentName() != HowTo {
		t.Fatalf("press should finish the title, got %s", m.CurrentName())
	}

	m.Press()
	if err := m.Update(frame); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !m.Quit() {
		t.Fatalf("press on a scene without a key handler should skip it")
	}
}

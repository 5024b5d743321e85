package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir()
	SetDir(dir)
	t.Cleanup(func() { SetDir(prev) })
}

func TestEmbeddedSpecsDecode(t *testing.T) {
	useDir(t, t.TempDir())

	game, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("game: %v", err)
	}
	if game.Start != "title" || game.Linger["round_result"] != 4 {
		t.Fatalf("unexpected game spec %+v", game)
	}

	roulette, err := LoadRouletteSpec()
	if err != nil {
		t.Fatalf("roulette: %v", err)
	}
	if len(roulette.Themes) != 10 || roulette.ItemHeight != 110 || roulette.Next != "camera" {
		t.Fatalf("unexpected roulette spec %+v", roulette)
	}

	meter, err := LoadMeterSpec()
	if err != nil {
		t.Fatalf("meter: %v", err)
	}
	if len(meter.Limits) != 3 || meter.Limits[2] != 300 || len(meter.Gates) != 1 {
		t.Fatalf("unexpected meter spec %+v", meter)
	}
	if meter.Gates[0].Args["seconds"] != 1.0 {
		t.Fatalf("unexpected gate args %+v", meter.Gates[0].Args)
	}

	result, err := LoadResultSpec()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if result.Red.Color == nil || result.FadeStep != 5 {
		t.Fatalf("unexpected result spec %+v", result)
	}

	if _, err := LoadCaptureSpec(); err != nil {
		t.Fatalf("capture: %v", err)
	}

	title, err := LoadTitleSpec()
	if err != nil {
		t.Fatalf("title: %v", err)
	}
	if title.Next != "howto" || title.Fade != 0.8 {
		t.Fatalf("unexpected title spec %+v", title)
	}

	howto, err := LoadHowToSpec()
	if err != nil {
		t.Fatalf("howto: %v", err)
	}
	if len(howto.Lines) != 7 || howto.Lines[1].Speaker != 1 || howto.Friction != 0.92 {
		t.Fatalf("unexpected howto spec %+v", howto)
	}
}

func TestDiskOverrideAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "capture.yaml"), []byte("next: elsewhere\nwait: 2.5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec, err := LoadCaptureSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Next != "elsewhere" || spec.Wait != 2.5 {
		t.Fatalf("expected disk override, got %+v", spec)
	}

	if err := os.WriteFile(filepath.Join(dir, "capture.yaml"), []byte("next: again\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec, _ = LoadCaptureSpec()
	if spec.Next != "elsewhere" {
		t.Fatalf("expected cached spec, got %+v", spec)
	}

	Invalidate(filepath.Join(dir, "capture.yaml"))
	spec, _ = LoadCaptureSpec()
	if spec.Next != "again" {
		t.Fatalf("expected reloaded spec, got %+v", spec)
	}
}

func TestBadColorFails(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "result.yaml"), []byte("red: \"#12\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadResultSpec(); err == nil {
		t.Fatalf("expected error for malformed color")
	}
}

func TestLoadScriptNames(t *testing.T) {
	useDir(t, t.TempDir())
	for _, name := range []string{"min_elapsed", "min_elapsed.tengo", "scripts/min_elapsed.tengo", "prefabs/scripts/min_elapsed.tengo"} {
		data, err := LoadScript(name)
		if err != nil || len(data) == 0 {
			t.Fatalf("%s: %v", name, err)
		}
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatalf("expected missing script error")
	}
}

func TestMatchers(t *testing.T) {
	if !IsPrefabFile("prefabs/meter.yaml") || !IsPrefabFile("x/scripts/a.tengo") || IsPrefabFile("notes.txt") {
		t.Fatalf("unexpected prefab match")
	}
	m := MatchFile("data/scores.txt")
	if !m("data/./scores.txt") || m("data/other.txt") {
		t.Fatalf("unexpected file match")
	}
}

func TestWatcherForwardsMatchingWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "scores.txt")
	w, err := NewWatcher(MatchFile(target), dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(target, []byte("1,2,3"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if filepath.Clean(name) != filepath.Clean(target) {
			t.Fatalf("unexpected event for %s", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no event")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for range w.Events {
	}
}

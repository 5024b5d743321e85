package scores

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []float64
		wantErr error
	}{
		{name: "three", in: "10,20,30", want: []float64{10, 20, 30}},
		{name: "six with spaces", in: " 1, 2 ,3\n4,5,6 ", want: []float64{1, 2, 3, 4, 5, 6}},
		{name: "whitespace only separators", in: "7 8 9", want: []float64{7, 8, 9}},
		{name: "empty", in: "  \n", wantErr: ErrEmpty},
		{name: "two fields", in: "1,2", wantErr: ErrFieldCount},
		{name: "four fields", in: "1,2,3,4", wantErr: ErrFieldCount},
		{name: "word", in: "1,abc,3", wantErr: ErrNotNumeric},
		{name: "nan", in: "1,NaN,3", wantErr: ErrNotNumeric},
		{name: "inf", in: "1,2,+Inf", wantErr: ErrNotNumeric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Fields) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got.Fields)
			}
			for i := range tt.want {
				if got.Fields[i] != tt.want[i] {
					t.Fatalf("field %d: expected %v, got %v", i, tt.want[i], got.Fields[i])
				}
			}
		})
	}
}

func TestPairClampsToLimits(t *testing.T) {
	r, err := Parse("250,-5,120,100,100,900")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := r.Pair([]float64{100, 100, 300})
	want1 := []float64{100, 0, 120}
	want2 := []float64{100, 100, 300}
	for i := range want1 {
		if p.First[i] != want1[i] || p.Second[i] != want2[i] {
			t.Fatalf("segment %d: got %v / %v", i, p.First, p.Second)
		}
	}
	if !p.HasSecond() {
		t.Fatalf("expected second player")
	}
	if Total(p.First) != 220 || Total(p.Second) != 500 {
		t.Fatalf("unexpected totals %v %v", Total(p.First), Total(p.Second))
	}
}

func TestRefresherRateLimits(t *testing.T) {
	r := NewRefresher(0.5)
	var due []float64
	for i := 0; i <= 12; i++ {
		now := float64(i) * 0.1
		if r.Due(now) {
			due = append(due, now)
		}
	}
	if len(due) != 3 {
		t.Fatalf("expected refreshes at 0, 0.5, 1.0, got %v", due)
	}
}

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFeedKeepsLastGoodReading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	writeFile(t, path, "10,20,30,40,50,60")

	f := OpenFeed(path, []float64{100, 100, 300})
	p, ok := f.Latest()
	if !ok || p.First[2] != 30 || p.Second[0] != 40 {
		t.Fatalf("unexpected initial reading %+v ok=%v", p, ok)
	}

	writeFile(t, path, "garbage")
	if err := f.Reload(); !errors.Is(err, ErrNotNumeric) && !errors.Is(err, ErrFieldCount) {
		t.Fatalf("expected parse error, got %v", err)
	}
	p, _ = f.Latest()
	if p.First[0] != 10 {
		t.Fatalf("expected previous reading to survive, got %+v", p)
	}

	writeFile(t, path, "1,2,3")
	if err := f.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	p, _ = f.Latest()
	if p.First[0] != 1 || p.Second[0] != 40 {
		t.Fatalf("three fields should update the first player only, got %+v", p)
	}
	if f.Version() != 2 {
		t.Fatalf("expected version 2, got %d", f.Version())
	}
}

func TestFeedMissingFile(t *testing.T) {
	f := OpenFeed(filepath.Join(t.TempDir(), "none.txt"), nil)
	if _, ok := f.Latest(); ok {
		t.Fatalf("expected no reading")
	}
}

func TestFeedRunReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.txt")
	writeFile(t, path, "1,1,1")
	f := OpenFeed(path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string)
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx, changes) }()

	writeFile(t, path, "5,5,5")
	changes <- filepath.Join(dir, "other.txt")
	changes <- path
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop")
	}
	p, _ := f.Latest()
	if p.First[0] != 5 {
		t.Fatalf("expected reload, got %+v", p)
	}
}

func TestHistoryAppend(t *testing.T) {
	h := History{Path: filepath.Join(t.TempDir(), "1Pscores.txt")}
	for _, v := range []int{9, 21, 0} {
		if err := h.Append(v); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	data, err := os.ReadFile(h.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "9,21,0" {
		t.Fatalf("unexpected history %q", data)
	}
	got, err := h.Load()
	if err != nil || len(got) != 3 || got[1] != 21 {
		t.Fatalf("unexpected load %v %v", got, err)
	}
}

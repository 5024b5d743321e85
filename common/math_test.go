package common

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"edge", 10, 0, 10, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.want {
				t.Fatalf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
			}
		})
	}
}

func TestEaseOutCubicEndpoints(t *testing.T) {
	if got := EaseOutCubic(0); got != 0 {
		t.Fatalf("EaseOutCubic(0) = %v", got)
	}
	if got := EaseOutCubic(1); got != 1 {
		t.Fatalf("EaseOutCubic(1) = %v", got)
	}
	if got := EaseOutCubic(2); got != 1 {
		t.Fatalf("EaseOutCubic should clamp, got %v", got)
	}
	prev := 0.0
	for i := 1; i <= 10; i++ {
		v := EaseOutCubic(float64(i) / 10)
		if v < prev {
			t.Fatalf("EaseOutCubic not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestMod(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 10, 0},
		{13, 10, 3},
		{-1, 10, 9},
		{-20, 10, 0},
	}
	for _, c := range cases {
		if got := Mod(c.i, c.n); got != c.want {
			t.Fatalf("Mod(%d,%d) = %d, want %d", c.i, c.n, got, c.want)
		}
	}
}

// Package scores turns the external score file into clamped animation
// targets. Malformed input is rejected so callers can keep their previous
// targets.
package scores

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/milk9111/poseparty/common"
)

const SegmentsPerPlayer = 3

var (
	ErrEmpty      = errors.New("scores: empty input")
	ErrNotNumeric = errors.New("scores: non-numeric field")
	ErrFieldCount = errors.New("scores: unexpected field count")
)

// Reading is a parsed score file: three segment scores for one player or
// six for two.
type Reading struct {
	Fields []float64
}

func Parse(text string) (Reading, error) {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(parts) == 0 {
		return Reading{}, ErrEmpty
	}
	if len(parts) != SegmentsPerPlayer && len(parts) != 2*SegmentsPerPlayer {
		return Reading{}, fmt.Errorf("%w: %d", ErrFieldCount, len(parts))
	}
	fields := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Reading{}, fmt.Errorf("%w: %q", ErrNotNumeric, p)
		}
		fields = append(fields, v)
	}
	return Reading{Fields: fields}, nil
}

// Clamp limits every value to [0, limit]. Values past the end of limits are
// only floored at zero.
func Clamp(values, limits []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		hi := math.Inf(1)
		if i < len(limits) {
			hi = limits[i]
		}
		out[i] = common.Clamp(v, 0, hi)
	}
	return out
}

// Pair is a reading split per player. Second is nil when only one player's
// segments were supplied.
type Pair struct {
	First  []float64
	Second []float64
}

func (r Reading) Pair(limits []float64) Pair {
	var p Pair
	if len(r.Fields) >= SegmentsPerPlayer {
		p.First = Clamp(r.Fields[:SegmentsPerPlayer], limits)
	}
	if len(r.Fields) >= 2*SegmentsPerPlayer {
		p.Second = Clamp(r.Fields[SegmentsPerPlayer:2*SegmentsPerPlayer], limits)
	}
	return p
}

func (p Pair) HasSecond() bool { return len(p.Second) == SegmentsPerPlayer }

// Total sums a player's segments.
func Total(segments []float64) float64 {
	total := 0.0
	for _, v := range segments {
		total += v
	}
	return total
}

// Ints rounds segments to whole points.
func Ints(segments []float64) []int {
	out := make([]int, len(segments))
	for i, v := range segments {
		out[i] = int(math.Round(v))
	}
	return out
}

package scene

import (
	"fmt"

	"github.com/milk9111/poseparty/anim"
	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/sequence"
)

const (
	PhaseBackground     = "background"
	PhaseTitle          = "title"
	PhaseDivider        = "divider"
	PhasePlayerTags     = "player_tags"
	PhaseChartFrame     = "chart_frame"
	PhaseBottomLabels   = "bottom_labels"
	PhaseBottomScores   = "bottom_scores"
	PhaseTriangleGrowth = "triangle_growth"
	PhaseTotalCountUp   = "total_count_up"
)

// Players in drawing order.
var Players = [2]string{"red", "blue"}

type ResultConfig struct {
	Next          string
	FadeStep      int
	GrowthRate    float64
	CountInterval float64
	MaxScore      float64
	// Round is the round number shown in the title; zero hides it.
	Round int
	Gates map[string]sequence.Gate
}

func DefaultResultConfig() ResultConfig {
	return ResultConfig{
		Next:       Roulette,
		FadeStep:   5,
		GrowthRate: 0.015,
		MaxScore:   10,
	}
}

// ResultReveal is the radar-chart round summary.
type ResultReveal struct {
	seq    *sequence.Sequencer
	cfg    ResultConfig
	scores [2][3]int
	growth *anim.Growth
	totals [2]*anim.Counter
}

// NewResultReveal builds the reveal for two players' three segment scores.
// Scores are clamped to [0, MaxScore].
func NewResultReveal(cfg ResultConfig, red, blue []int) (*ResultReveal, error) {
	if len(red) != 3 || len(blue) != 3 {
		return nil, fmt.Errorf("%w: got %d and %d", ErrScoreShape, len(red), len(blue))
	}
	def := DefaultResultConfig()
	if cfg.MaxScore <= 0 {
		cfg.MaxScore = def.MaxScore
	}
	if cfg.FadeStep <= 0 {
		cfg.FadeStep = def.FadeStep
	}
	if cfg.GrowthRate <= 0 {
		cfg.GrowthRate = def.GrowthRate
	}

	r := &ResultReveal{cfg: cfg}
	for i := 0; i < 3; i++ {
		r.scores[0][i] = int(common.Clamp(float64(red[i]), 0, cfg.MaxScore))
		r.scores[1][i] = int(common.Clamp(float64(blue[i]), 0, cfg.MaxScore))
	}

	fade := func(ids ...string) []sequence.Binding {
		out := make([]sequence.Binding, 0, len(ids))
		for _, id := range ids {
			out = append(out, sequence.Bind(id, anim.NewFade(cfg.FadeStep)))
		}
		return out
	}
	perPlayer := func(prefix string, n int) []string {
		var ids []string
		for _, p := range Players {
			if n == 0 {
				ids = append(ids, prefix+"."+p)
				continue
			}
			for i := 0; i < n; i++ {
				ids = append(ids, fmt.Sprintf("%s.%s.%d", prefix, p, i))
			}
		}
		return ids
	}

	r.growth = anim.NewGrowth(cfg.GrowthRate)
	for i := range r.totals {
		total := r.scores[i][0] + r.scores[i][1] + r.scores[i][2]
		r.totals[i] = anim.NewCounter(0, total, cfg.CountInterval)
	}

	fadePhase := func(name string, ids ...string) sequence.Phase {
		return sequence.Phase{
			Name:       name,
			Properties: fade(ids...),
			Gate:       gateFor(cfg.Gates, name, nil),
		}
	}
	phases := []sequence.Phase{
		fadePhase(PhaseBackground, "background"),
		fadePhase(PhaseTitle, "title"),
		fadePhase(PhaseDivider, "divider"),
		fadePhase(PhasePlayerTags, perPlayer("tag", 0)...),
		fadePhase(PhaseChartFrame, perPlayer("frame", 0)...),
		fadePhase(PhaseBottomLabels, perPlayer("label", 3)...),
		fadePhase(PhaseBottomScores, perPlayer("score", 3)...),
		{
			Name:       PhaseTriangleGrowth,
			Properties: []sequence.Binding{sequence.Bind("growth", r.growth)},
			Gate:       gateFor(cfg.Gates, PhaseTriangleGrowth, nil),
		},
		{
			Name: PhaseTotalCountUp,
			Properties: []sequence.Binding{
				sequence.Bind("total.red", r.totals[0]),
				sequence.Bind("total.blue", r.totals[1]),
			},
			Gate: gateFor(cfg.Gates, PhaseTotalCountUp, nil),
		},
	}

	seq, err := sequence.New(RoundResult, phases, sequence.WithNext(cfg.Next))
	if err != nil {
		return nil, err
	}
	r.seq = seq
	return r, nil
}

func (r *ResultReveal) Update(dt float64) { r.seq.Tick(dt) }

func (r *ResultReveal) Sequencer() *sequence.Sequencer { return r.seq }

// Alpha reads a fade property as an opacity.
func (r *ResultReveal) Alpha(id string) uint8 {
	return uint8(common.Clamp(r.seq.Value(id), 0, 255))
}

func (r *ResultReveal) Scores(player int) [3]int { return r.scores[player] }

// Radii are the triangle vertex distances for one player, scaled by the
// growth ratio and by radius.
func (r *ResultReveal) Radii(player int, radius float64) [3]float64 {
	var out [3]float64
	g := r.growth.Value()
	for i, s := range r.scores[player] {
		out[i] = float64(s) / r.cfg.MaxScore * g * radius
	}
	return out
}

// Total is the counted-up total shown under a player's chart.
func (r *ResultReveal) Total(player int) int { return r.totals[player].Int() }

func (r *ResultReveal) MaxScore() float64 { return r.cfg.MaxScore }

func (r *ResultReveal) Round() int { return r.cfg.Round }

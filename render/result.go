package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/poseparty/common"
	"github.com/milk9111/poseparty/scene"
)

var segmentLabels = [3]string{"Pose", "Timing", "Energy"}

// vertex angles of the radar triangle, clockwise from the top
var radarAngles = [3]float64{-math.Pi / 2, math.Pi / 6, 5 * math.Pi / 6}

func (r *Renderer) drawResult(screen *ebiten.Image, s *scene.ResultReveal) {
	w, h := float64(common.BaseWidth), float64(common.BaseHeight)
	vector.FillRect(screen, 0, 0, float32(w), float32(h), withAlpha(r.pal.Background, s.Alpha("background")), false)

	title := "ROUND RESULT"
	if n := s.Round(); n > 0 {
		title = fmt.Sprintf("ROUND %d RESULT", n)
	}
	r.drawText(screen, title, r.large, w/2, 50, withAlpha(r.pal.Text, s.Alpha("title")), alignCenter)
	vector.StrokeLine(screen, float32(w/2), 100, float32(w/2), float32(h-40), 2, withAlpha(r.pal.Text, s.Alpha("divider")), true)

	colors := [2]colorPair{{r.pal.Red, "1P"}, {r.pal.Blue, "2P"}}
	for p, player := range scene.Players {
		cx := w/4 + float64(p)*w/2
		cy := 270.0
		c := colors[p]

		r.drawText(screen, c.tag, r.body, cx, 110, withAlpha(c.color, s.Alpha("tag."+player)), alignCenter)

		frame := withAlpha(r.pal.Text, s.Alpha("frame."+player))
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r.chartRadius), 2, frame, true)
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r.chartRadius/2), 1, frame, true)

		if s.Sequencer().Reached(scene.PhaseTriangleGrowth) {
			radii := s.Radii(p, r.chartRadius)
			pts := make([][2]float64, 3)
			for i, a := range radarAngles {
				pts[i] = [2]float64{cx + math.Cos(a)*radii[i], cy + math.Sin(a)*radii[i]}
			}
			r.fillPolygon(screen, pts, withAlpha(c.color, 200))
		}

		scores := s.Scores(p)
		for i := range segmentLabels {
			x := cx + float64(i-1)*110
			id := fmt.Sprintf("%s.%d", player, i)
			r.drawText(screen, segmentLabels[i], r.small, x, 430, withAlpha(r.pal.Text, s.Alpha("label."+id)), alignCenter)
			r.drawText(screen, strconv.Itoa(scores[i]), r.body, x, 465, withAlpha(c.color, s.Alpha("score."+id)), alignCenter)
		}

		if s.Sequencer().Reached(scene.PhaseTotalCountUp) {
			r.drawText(screen, strconv.Itoa(s.Total(p)), r.large, cx, 530, r.pal.Accent, alignCenter)
		}
	}
}

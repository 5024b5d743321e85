package sequence

import (
	"fmt"
	"strings"

	"github.com/milk9111/poseparty/anim"
)

type PropertyValue struct {
	ID        string
	Phase     string
	Kind      anim.Kind
	Value     float64
	Values    []float64
	Converged bool
}

// Snapshot is a point-in-time copy of a sequencer, used for debug overlays.
type Snapshot struct {
	Scene      string
	Phase      string
	Index      int
	Len        int
	Now        float64
	Elapsed    float64
	Cycles     int
	Done       bool
	Properties []PropertyValue
}

func (s *Sequencer) Snapshot() Snapshot {
	snap := Snapshot{
		Scene:   s.name,
		Phase:   s.Phase(),
		Index:   s.index,
		Len:     len(s.phases),
		Now:     s.now,
		Elapsed: s.Elapsed(),
		Cycles:  s.cycles,
		Done:    s.done,
	}
	for _, id := range s.order {
		p := s.props[id]
		pv := PropertyValue{
			ID:        id,
			Phase:     s.phases[s.owner[id]].Name,
			Kind:      p.Kind(),
			Value:     p.Value(),
			Converged: p.Converged(),
		}
		if v, ok := p.(anim.Vector); ok {
			pv.Values = v.Values()
		}
		snap.Properties = append(snap.Properties, pv)
	}
	return snap
}

func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%d/%d] %s t=%.2fs phase=%.2fs", s.Scene, s.Index+1, s.Len, s.Phase, s.Now, s.Elapsed)
	if s.Cycles > 0 {
		fmt.Fprintf(&b, " cycle=%d", s.Cycles)
	}
	if s.Done {
		b.WriteString(" done")
	}
	b.WriteByte('\n')
	for _, p := range s.Properties {
		mark := " "
		if p.Converged {
			mark = "*"
		}
		if len(p.Values) > 0 {
			fmt.Fprintf(&b, "%s %-16s %-12s %v\n", mark, p.ID, p.Kind, p.Values)
			continue
		}
		fmt.Fprintf(&b, "%s %-16s %-12s %.2f\n", mark, p.ID, p.Kind, p.Value)
	}
	return b.String()
}

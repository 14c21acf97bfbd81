package analysis

import (
	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/sim"
)

// Reversals counts frames where a velocity axis flipped sign.
func Reversals(trace []sim.Sample) int {
	n := 0
	for i := 1; i < len(trace); i++ {
		prev, cur := trace[i-1].Velocity, trace[i].Velocity
		if prev.X*cur.X < 0 || prev.Y*cur.Y < 0 {
			n++
		}
	}
	return n
}

type Summary struct {
	Frames       int
	Distance     float64 // path length of the tracked entity
	MaxSpeed     float64
	Corrections  int // frames with a nonzero embed
	ReversalRate float64
	DominantX    float64 // Hz
	DominantY    float64 // Hz
}

func Summarize(trace []sim.Sample, fps float64) (Summary, error) {
	if len(trace) == 0 {
		return Summary{}, dynamo.ErrNoData
	}
	s := Summary{Frames: len(trace)}
	for i, sm := range trace {
		if sp := sm.Velocity.Len(); sp > s.MaxSpeed {
			s.MaxSpeed = sp
		}
		if !sm.Embed.IsZero() {
			s.Corrections++
		}
		if i > 0 {
			s.Distance += sm.Position.Sub(trace[i-1].Position).Len()
		}
	}
	if len(trace) > 1 {
		s.ReversalRate = float64(Reversals(trace)) / float64(len(trace)-1)
	}

	xs, _ := Series(trace, "x")
	ys, _ := Series(trace, "y")
	s.DominantX, _ = DominantFrequency(xs, fps)
	s.DominantY, _ = DominantFrequency(ys, fps)
	return s, nil
}

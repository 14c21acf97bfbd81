package metrics

import (
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/sim"
)

// MaxSpeed tracks the largest per-frame speed of any entity.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(store *entity.Store, _ sim.FrameReport) {
	for _, v := range store.Velocity.Iter() {
		if s := v.Len(); s > m.max {
			m.max = s
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// MeanSpeed averages the player's speed over observed frames.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(store *entity.Store, _ sim.FrameReport) {
	v, ok := store.Velocity.Get(store.Player)
	if !ok {
		return
	}
	m.sum += v.Len()
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

package metrics

import (
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/sim"
)

// Penetration records the deepest overlap left between the player and any
// terrain after the corrective move. Zero means every correction separated.
type Penetration struct {
	name string
	max  float64
}

func NewPenetration() *Penetration {
	return &Penetration{name: "residual_penetration"}
}

func (p *Penetration) Name() string { return p.name }

func (p *Penetration) Observe(store *entity.Store, _ sim.FrameReport) {
	h, ok := store.Bounds.Get(store.Player)
	if !ok {
		return
	}
	for _, wall := range store.Terrain {
		m, ok := store.World.Contact(h, wall)
		if !ok {
			continue
		}
		if c, _ := m.Deepest(); c.Depth > p.max {
			p.max = c.Depth
		}
	}
}

func (p *Penetration) Value() float64 { return p.max }

func (p *Penetration) Reset() { p.max = 0 }

// All returns one fresh instance of every metric.
func All() []sim.Metric {
	return []sim.Metric{NewMaxSpeed(), NewMeanSpeed(), NewTerrainContacts(), NewCorrection(), NewPenetration()}
}

package metrics

import (
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/sim"
)

// TerrainContacts counts started entity-terrain contacts.
type TerrainContacts struct {
	name  string
	count int
}

func NewTerrainContacts() *TerrainContacts {
	return &TerrainContacts{name: "terrain_contacts"}
}

func (c *TerrainContacts) Name() string { return c.name }

func (c *TerrainContacts) Observe(_ *entity.Store, report sim.FrameReport) {
	c.count += report.TerrainContacts
}

func (c *TerrainContacts) Value() float64 { return float64(c.count) }

func (c *TerrainContacts) Reset() { c.count = 0 }

// Correction accumulates the distance entities were pushed out of terrain.
type Correction struct {
	name  string
	total float64
}

func NewCorrection() *Correction {
	return &Correction{name: "correction"}
}

func (c *Correction) Name() string { return c.name }

func (c *Correction) Observe(store *entity.Store, _ sim.FrameReport) {
	factor := store.Params.CorrectionFactor
	for _, e := range store.Embed.Iter() {
		c.total += e.Len() * factor
	}
}

func (c *Correction) Value() float64 { return c.total }

func (c *Correction) Reset() { c.total = 0 }

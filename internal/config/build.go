package config

import (
	"math/rand"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/logging"
)

// NewStore validates the config and builds a populated store.
func (c *Config) NewStore() (*entity.Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := entity.New(c.Params())
	Populate(s, c.Level, c.Seed)
	return s, nil
}

// Populate adds the level's terrain, crates and player to s.
func Populate(s *entity.Store, level LevelConfig, seed int64) {
	for _, b := range level.Terrain {
		s.AddTerrain(b.Center(), b.Size())
	}

	rng := rand.New(rand.NewSource(seed))
	for _, b := range level.Crates {
		pos := b.Center()
		if level.Jitter > 0 {
			pos = pos.Add(dynamo.V((rng.Float64()*2-1)*level.Jitter, (rng.Float64()*2-1)*level.Jitter))
		}
		s.SpawnCrate(pos, b.Size())
	}

	s.SpawnPlayer(level.Player.Vec())
	logging.Debugf("config: level with %d terrain, %d crates", len(level.Terrain), len(level.Crates))
}

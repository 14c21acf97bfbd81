package config

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/san-kum/rebound/internal/dynamo"
)

// The window spans 9.6 x 5.4 units at 100 pixels per unit.
const (
	worldW = 9.6
	worldH = 5.4
	wall   = 0.2
)

func enclosure() []Box {
	return []Box{
		{X: worldW / 2, Y: worldH - wall/2, W: worldW, H: wall},
		{X: worldW / 2, Y: wall / 2, W: worldW, H: wall},
		{X: wall / 2, Y: worldH / 2, W: wall, H: worldH},
		{X: worldW - wall/2, Y: worldH / 2, W: wall, H: worldH},
	}
}

var Presets = map[string]LevelConfig{
	"box": {
		Player:  Point{X: worldW / 2, Y: worldH / 2},
		Terrain: enclosure(),
	},
	"corridor": {
		Player: Point{X: 0.6, Y: 2.7},
		Terrain: append(enclosure(),
			Box{X: 4.8, Y: 1.6, W: 9.2, H: 0.2},
			Box{X: 4.8, Y: 3.8, W: 9.2, H: 0.2},
			Box{X: 3.0, Y: 2.2, W: 0.3, H: 1.0},
			Box{X: 6.0, Y: 3.2, W: 0.3, H: 1.0},
		),
	},
	"pit": {
		Player: Point{X: 1.0, Y: 4.0},
		Terrain: []Box{
			{X: 2.0, Y: 4.8, W: 4.0, H: 0.4},
			{X: 7.6, Y: 4.8, W: 4.0, H: 0.4},
			{X: 4.8, Y: worldH - wall/2, W: 1.6, H: wall},
			{X: 4.8, Y: 3.0, W: 1.0, H: 0.2},
			{X: wall / 2, Y: worldH / 2, W: wall, H: worldH},
			{X: worldW - wall/2, Y: worldH / 2, W: wall, H: worldH},
		},
		Crates: []Box{{X: 4.8, Y: 4.6, W: 0.3, H: 0.3}},
	},
	"crowd": {
		Player:  Point{X: 1.0, Y: 1.0},
		Terrain: enclosure(),
		Crates: []Box{
			{X: 2.5, Y: 2.0, W: 0.3, H: 0.3},
			{X: 3.5, Y: 2.0, W: 0.3, H: 0.3},
			{X: 4.5, Y: 2.0, W: 0.3, H: 0.3},
			{X: 5.5, Y: 2.0, W: 0.3, H: 0.3},
			{X: 2.5, Y: 3.5, W: 0.4, H: 0.4},
			{X: 3.5, Y: 3.5, W: 0.4, H: 0.4},
			{X: 4.5, Y: 3.5, W: 0.4, H: 0.4},
			{X: 5.5, Y: 3.5, W: 0.4, H: 0.4},
		},
		Jitter: 0.25,
	},
}

func (l LevelConfig) clone() LevelConfig {
	l.Crates = slices.Clone(l.Crates)
	l.Terrain = slices.Clone(l.Terrain)
	return l
}

// GetPreset returns the default config with the named level.
func GetPreset(name string) (*Config, error) {
	level, ok := Presets[name]
	if !ok {
		return nil, errors.Wrapf(dynamo.ErrUnknownPreset, "%q", name)
	}
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Level = level.clone()
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

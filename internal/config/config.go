package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/san-kum/rebound/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames = 600
	DefaultWidth  = 960
	DefaultHeight = 540
	DefaultFPS    = 60
	DefaultTitle  = "Rebound"
	DefaultLevel  = "box"
)

type Config struct {
	Name    string        `yaml:"name"`
	Frames  int           `yaml:"frames"`
	Seed    int64         `yaml:"seed"`
	Script  string        `yaml:"script,omitempty"`
	Physics PhysicsConfig `yaml:"physics"`
	Render  RenderConfig  `yaml:"render"`
	Level   LevelConfig   `yaml:"level"`
}

type PhysicsConfig struct {
	Impulse          float64 `yaml:"impulse"`
	CorrectionFactor float64 `yaml:"correction_factor"`
	Tolerance        float64 `yaml:"tolerance"`
	Friction         float64 `yaml:"friction"`
	VelocityCap      Point   `yaml:"velocity_cap"`
	PlayerSize       Point   `yaml:"player_size"`
	CellSize         float64 `yaml:"cell_size"`
}

type RenderConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	FPS           int     `yaml:"fps"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	Title         string  `yaml:"title"`
}

// LevelConfig places the player, crates and terrain, all in world units.
type LevelConfig struct {
	Player  Point `yaml:"player"`
	Crates  []Box `yaml:"crates,omitempty"`
	Terrain []Box `yaml:"terrain"`
	// Jitter offsets every crate by up to this distance per axis, seeded by Seed.
	Jitter float64 `yaml:"jitter,omitempty"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vec() dynamo.Vec2 { return dynamo.V(p.X, p.Y) }

// Box is a rectangle given by its centre and full size.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (b Box) Center() dynamo.Vec2 { return dynamo.V(b.X, b.Y) }
func (b Box) Size() dynamo.Vec2   { return dynamo.V(b.W, b.H) }

func DefaultConfig() *Config {
	p := dynamo.DefaultParams()
	return &Config{
		Name:   DefaultLevel,
		Frames: DefaultFrames,
		Physics: PhysicsConfig{
			Impulse:          p.Impulse,
			CorrectionFactor: p.CorrectionFactor,
			Tolerance:        p.Tolerance,
			Friction:         p.Friction,
			VelocityCap:      Point{X: p.VelocityCap.X, Y: p.VelocityCap.Y},
			PlayerSize:       Point{X: p.PlayerSize.X, Y: p.PlayerSize.Y},
			CellSize:         p.CellSize,
		},
		Render: RenderConfig{
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			FPS:           DefaultFPS,
			PixelsPerUnit: p.PixelsPerUnit,
			Title:         DefaultTitle,
		},
		Level: Presets[DefaultLevel].clone(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write config %s", path)
}

// Params converts the physics and render sections into simulation parameters.
func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		Impulse:          c.Physics.Impulse,
		CorrectionFactor: c.Physics.CorrectionFactor,
		Tolerance:        c.Physics.Tolerance,
		Friction:         c.Physics.Friction,
		VelocityCap:      c.Physics.VelocityCap.Vec(),
		PlayerSize:       c.Physics.PlayerSize.Vec(),
		CellSize:         c.Physics.CellSize,
		PixelsPerUnit:    c.Render.PixelsPerUnit,
	}
}

func (c *Config) Validate() error {
	if c.Frames <= 0 {
		return errors.Wrapf(dynamo.ErrInvalidConfig, "frames must be positive, got %d", c.Frames)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.Wrapf(dynamo.ErrInvalidConfig, "window size %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS <= 0 {
		return errors.Wrapf(dynamo.ErrInvalidConfig, "fps must be positive, got %d", c.Render.FPS)
	}
	for i, b := range append(append([]Box{}, c.Level.Terrain...), c.Level.Crates...) {
		if b.W <= 0 || b.H <= 0 {
			return errors.Wrapf(dynamo.ErrInvalidConfig, "box %d has size %gx%g", i, b.W, b.H)
		}
	}
	if c.Level.Jitter < 0 {
		return errors.Wrapf(dynamo.ErrInvalidConfig, "jitter must be non-negative, got %g", c.Level.Jitter)
	}
	return c.Params().Validate()
}

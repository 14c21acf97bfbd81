package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rebound/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "box" {
		t.Errorf("expected level box, got %s", cfg.Name)
	}
	if cfg.Params() != dynamo.DefaultParams() {
		t.Errorf("Params() = %+v, want defaults", cfg.Params())
	}
	if cfg.Render.Width != 960 || cfg.Render.Height != 540 || cfg.Render.Title != "Rebound" {
		t.Errorf("render = %+v", cfg.Render)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rebound.yaml")
	cfg, _ := GetPreset("crowd")
	cfg.Frames = 42
	cfg.Physics.CorrectionFactor = 1.5

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Frames != 42 || loaded.Physics.CorrectionFactor != 1.5 || loaded.Name != "crowd" {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.Level.Crates) != len(Presets["crowd"].Crates) {
		t.Errorf("crates = %d", len(loaded.Level.Crates))
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("frames: 10\nphysics:\n  friction: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Frames != 10 || cfg.Physics.Friction != 0.5 || cfg.Physics.Impulse != 0.003 {
		t.Errorf("cfg = %+v", cfg.Physics)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero frames", func(c *Config) { c.Frames = 0 }},
		{"no window", func(c *Config) { c.Render.Width = 0 }},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }},
		{"flat terrain", func(c *Config) { c.Level.Terrain[0].H = 0 }},
		{"negative jitter", func(c *Config) { c.Level.Jitter = -1 }},
		{"zero tolerance", func(c *Config) { c.Physics.Tolerance = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("pit")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "pit" || len(cfg.Level.Crates) != 1 {
		t.Errorf("pit = %+v", cfg.Level)
	}

	cfg.Level.Terrain[0].W = 99
	if Presets["pit"].Terrain[0].W == 99 {
		t.Error("preset mutated through returned config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, err := GetPreset("nonexistent"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"box", "corridor", "crowd", "pit"}
	if len(names) != len(want) {
		t.Fatalf("presets = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestNewStore(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg, _ := GetPreset(name)
			s, err := cfg.NewStore()
			if err != nil {
				t.Fatal(err)
			}
			if s.Player.IsNull() {
				t.Error("no player spawned")
			}
			if len(s.Terrain) != len(cfg.Level.Terrain) {
				t.Errorf("terrain = %d, want %d", len(s.Terrain), len(cfg.Level.Terrain))
			}
			if got := s.Types.Len(); got != len(cfg.Level.Crates)+1 {
				t.Errorf("entities = %d, want %d", got, len(cfg.Level.Crates)+1)
			}
		})
	}
}

func TestPopulate_JitterSeeded(t *testing.T) {
	cfg, _ := GetPreset("crowd")
	first, _ := cfg.NewStore()
	second, _ := cfg.NewStore()
	cfg.Seed = 7
	third, _ := cfg.NewStore()

	a, _ := first.Position(firstCrate(first))
	b, _ := second.Position(firstCrate(second))
	c, _ := third.Position(firstCrate(third))
	if a != b {
		t.Errorf("same seed placed crates differently: %v vs %v", a, b)
	}
	if a == c {
		t.Errorf("different seeds placed crate identically at %v", a)
	}
	home := Presets["crowd"].Crates[0].Center()
	if d := a.Sub(home); d.X > 0.25 || d.X < -0.25 || d.Y > 0.25 || d.Y < -0.25 {
		t.Errorf("jitter %v exceeds 0.25", d)
	}
}

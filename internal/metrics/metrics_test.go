package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/input"
	"github.com/san-kum/rebound/internal/sim"
)

func TestMaxSpeed_BoundedByCap(t *testing.T) {
	p := dynamo.DefaultParams()
	p.Friction = 1
	s := entity.New(p)
	s.SpawnPlayer(dynamo.V(0, 0))
	src := input.NewState()
	src.Set(input.Right, true)

	simulator := sim.New(s, src)
	for _, m := range All() {
		simulator.AddMetric(m)
	}
	result, err := simulator.Run(context.Background(), sim.Config{Frames: 100})
	if err != nil {
		t.Fatal(err)
	}

	if got := result.Metrics["max_speed"]; math.Abs(got-0.06) > 1e-12 {
		t.Errorf("max_speed = %v, want 0.06", got)
	}
	if result.Metrics["terrain_contacts"] != 0 || result.Metrics["correction"] != 0 {
		t.Errorf("contact metrics in empty world: %v", result.Metrics)
	}
}

func TestContactMetrics_Floor(t *testing.T) {
	s := entity.New(dynamo.DefaultParams())
	s.AddTerrain(dynamo.V(0, 1), dynamo.V(4, 1))
	s.SpawnPlayer(dynamo.V(0, 0.3))
	src := input.NewState()
	src.Set(input.Down, true)

	simulator := sim.New(s, src)
	contacts, correction := NewTerrainContacts(), NewCorrection()
	for _, m := range []sim.Metric{contacts, correction} {
		simulator.AddMetric(m)
	}
	if _, err := simulator.Run(context.Background(), sim.Config{Frames: 120}); err != nil {
		t.Fatal(err)
	}

	if contacts.Value() < 1 {
		t.Error("player never hit the floor")
	}
	if correction.Value() <= 0 {
		t.Error("no correction recorded")
	}

	contacts.Reset()
	if contacts.Value() != 0 {
		t.Error("Reset did not clear")
	}
}

func TestMeanSpeed_NoPlayer(t *testing.T) {
	m := NewMeanSpeed()
	m.Observe(entity.New(dynamo.DefaultParams()), sim.FrameReport{})
	if m.Value() != 0 {
		t.Errorf("Value = %v, want 0", m.Value())
	}
}

func TestPenetration(t *testing.T) {
	s := entity.New(dynamo.DefaultParams())
	s.AddTerrain(dynamo.V(0, 1), dynamo.V(4, 1))
	s.SpawnPlayer(dynamo.V(0, 0.45))

	residual := NewPenetration()
	residual.Observe(s, sim.FrameReport{})
	if got := residual.Value(); math.Abs(got-0.03) > 1e-9 {
		t.Fatalf("overlap before step = %v, want 0.03", got)
	}

	residual.Reset()
	if _, err := sim.Step(s, input.None, 0); err != nil {
		t.Fatal(err)
	}
	residual.Observe(s, sim.FrameReport{})
	if residual.Value() != 0 {
		t.Errorf("residual after correction = %v, want 0", residual.Value())
	}
}

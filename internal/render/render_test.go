package render

import (
	"math"
	"testing"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
)

func nearRect(a, b Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}

func TestSnapshot(t *testing.T) {
	s := entity.New(dynamo.DefaultParams())
	s.AddTerrain(dynamo.V(0, 2), dynamo.V(4, 0.5))
	player := s.SpawnPlayer(dynamo.V(1, 1))
	crate := s.SpawnCrate(dynamo.V(2, 1), dynamo.V(0.5, 0.5))
	half := s.CreatePhysicalEntity(entity.Crate)

	sprites := Snapshot(s, 100)
	if len(sprites) != 3 {
		t.Fatalf("sprites = %d, want 3 (entity without bounds skipped)", len(sprites))
	}

	want := []Sprite{
		{Type: entity.Terrain, Rect: Rect{X: -200, Y: 175, W: 400, H: 50}},
		{Type: entity.Player, Key: player, Rect: Rect{X: 92, Y: 92, W: 16, H: 16}},
		{Type: entity.Crate, Key: crate, Rect: Rect{X: 175, Y: 75, W: 50, H: 50}},
	}
	for i, sp := range sprites {
		if sp.Type != want[i].Type || sp.Key != want[i].Key || !nearRect(sp.Rect, want[i].Rect) {
			t.Errorf("sprite %d = %+v, want %+v", i, sp, want[i])
		}
		if sp.Key == half {
			t.Error("half-built entity drawn")
		}
	}

	b := Bounds(sprites)
	if !nearRect(b, Rect{X: -200, Y: 75, W: 425, H: 150}) {
		t.Errorf("Bounds = %+v", b)
	}
}

func TestSnapshot_DestroyedEntityGone(t *testing.T) {
	s := entity.New(dynamo.DefaultParams())
	k := s.SpawnCrate(dynamo.V(0, 0), dynamo.V(1, 1))
	s.Destroy(k)
	if n := len(Snapshot(s, 100)); n != 0 {
		t.Errorf("sprites = %d after destroy", n)
	}
}

package entity

import (
	"fmt"

	"github.com/san-kum/rebound/internal/unique"
)

// Type tags what an entity is, for rendering and reporting.
type Type uint8

const (
	Player Type = iota
	Crate
	Terrain
)

func (t Type) String() string {
	switch t {
	case Player:
		return "player"
	case Crate:
		return "crate"
	case Terrain:
		return "terrain"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

type PropKind uint8

const (
	KindTerrain PropKind = iota
	KindEntity
)

// Prop is the tag carried by every collision object: static terrain, or the
// entity that owns the object.
type Prop struct {
	Kind PropKind
	Key  unique.Key
}

func TerrainProp() Prop { return Prop{Kind: KindTerrain} }

func EntityProp(key unique.Key) Prop { return Prop{Kind: KindEntity, Key: key} }

func (p Prop) IsTerrain() bool { return p.Kind == KindTerrain }

// Entity returns the owning key for entity props.
func (p Prop) Entity() (unique.Key, bool) {
	if p.Kind != KindEntity {
		return unique.Null(), false
	}
	return p.Key, true
}

func (p Prop) String() string {
	if p.IsTerrain() {
		return "terrain"
	}
	return "entity(" + p.Key.String() + ")"
}

// interacts drops terrain-terrain pairs; static walls never touch each other.
func interacts(a, b Prop) bool {
	return !a.IsTerrain() || !b.IsTerrain()
}

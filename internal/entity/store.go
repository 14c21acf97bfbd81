package entity

import (
	"iter"

	"github.com/san-kum/rebound/internal/collide"
	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/logging"
	"github.com/san-kum/rebound/internal/unique"
)

// Store owns one key space, the attribute tables keyed by it and the
// collision world that holds entity positions.
type Store struct {
	Params dynamo.Params

	Keys  *unique.KeyAllocator
	World *collide.World[Prop]

	Types        *unique.Store[Type]
	Velocity     *unique.Store[dynamo.Vec2]
	Acceleration *unique.Store[dynamo.Vec2]
	Friction     *unique.Store[float64]
	Embed        *unique.Store[dynamo.Vec2]
	VelocityCap  *unique.Store[dynamo.Vec2]
	Bounds       *unique.Store[collide.Handle]

	// Terrain lists static collision objects. They are not keyed.
	Terrain []collide.Handle

	// Player is the controlled entity, or the null key.
	Player unique.Key
}

func New(params dynamo.Params) *Store {
	world := collide.New[Prop](params.Tolerance, params.CellSize)
	world.SetFilter(interacts)
	return &Store{
		Params:       params,
		Keys:         unique.NewKeyAllocator(),
		World:        world,
		Types:        unique.NewStore[Type](),
		Velocity:     unique.NewStore[dynamo.Vec2](),
		Acceleration: unique.NewStore[dynamo.Vec2](),
		Friction:     unique.NewStore[float64](),
		Embed:        unique.NewStore[dynamo.Vec2](),
		VelocityCap:  unique.NewStore[dynamo.Vec2](),
		Bounds:       unique.NewStore[collide.Handle](),
		Player:       unique.Null(),
	}
}

// CreatePhysicalEntity allocates a key with default physical state. The
// entity has no bounds until the caller inserts a collision handle for it.
func (s *Store) CreatePhysicalEntity(t Type) unique.Key {
	key := s.Keys.Alloc()
	s.Types.Insert(key, t)
	s.Velocity.Insert(key, dynamo.Vec2{})
	s.Acceleration.Insert(key, dynamo.Vec2{})
	s.Embed.Insert(key, dynamo.Vec2{})
	s.Friction.Insert(key, 1.0)
	logging.Debugf("entity: created %s %s", t, key)
	return key
}

// CreateCollisionObject registers a shape with the world. Solid objects get
// full contact manifolds, others proximity notifications only.
func (s *Store) CreateCollisionObject(pos dynamo.Vec2, angle float64, shape collide.Shape, solid bool, tag Prop) collide.Handle {
	query := collide.Proximity(s.Params.Tolerance)
	if solid {
		query = collide.Contacts(s.Params.Tolerance)
	}
	return s.World.Add(dynamo.NewIsometry(pos, angle), shape, query, tag)
}

func (s *Store) SetFriction(key unique.Key, friction float64) { s.Friction.Insert(key, friction) }

func (s *Store) SetVelocityCap(key unique.Key, limit dynamo.Vec2) { s.VelocityCap.Insert(key, limit) }

// SpawnPlayer creates the controlled entity at pos. A previous player stays
// in the store but is no longer controlled.
func (s *Store) SpawnPlayer(pos dynamo.Vec2) unique.Key {
	key := s.CreatePhysicalEntity(Player)
	s.SetFriction(key, s.Params.Friction)
	s.SetVelocityCap(key, s.Params.VelocityCap)
	shape := collide.NewCuboid(s.Params.PlayerSize.Scale(0.5))
	s.Bounds.Insert(key, s.CreateCollisionObject(pos, 0, shape, true, EntityProp(key)))
	s.Player = key
	return key
}

// SpawnCrate creates an uncapped box entity of the given full size.
func (s *Store) SpawnCrate(pos, size dynamo.Vec2) unique.Key {
	key := s.CreatePhysicalEntity(Crate)
	s.SetFriction(key, s.Params.Friction)
	shape := collide.NewCuboid(size.Scale(0.5))
	s.Bounds.Insert(key, s.CreateCollisionObject(pos, 0, shape, true, EntityProp(key)))
	return key
}

// AddTerrain adds a static solid box of the given full size centred on pos.
func (s *Store) AddTerrain(pos, size dynamo.Vec2) collide.Handle {
	h := s.CreateCollisionObject(pos, 0, collide.NewCuboid(size.Scale(0.5)), true, TerrainProp())
	s.Terrain = append(s.Terrain, h)
	return h
}

// Alive reports whether key names a live entity.
func (s *Store) Alive(key unique.Key) bool { return s.Types.Contains(key) }

// Entities yields live entity keys in ascending index order.
func (s *Store) Entities() iter.Seq[unique.Key] { return s.Types.Keys() }

// Destroy removes the entity's collision object and every attribute, then
// frees its key. Stale or null keys are ignored.
func (s *Store) Destroy(key unique.Key) bool {
	if !s.Alive(key) {
		return false
	}
	if h, ok := s.Bounds.Get(key); ok {
		if err := s.World.Remove(h); err != nil {
			logging.Warnf("entity: destroy %s: %v", key, err)
		}
	}
	s.Types.Remove(key)
	s.Velocity.Remove(key)
	s.Acceleration.Remove(key)
	s.Friction.Remove(key)
	s.Embed.Remove(key)
	s.VelocityCap.Remove(key)
	s.Bounds.Remove(key)
	s.Keys.Free(key)
	if s.Player == key {
		s.Player = unique.Null()
	}
	logging.Debugf("entity: destroyed %s", key)
	return true
}

// Position reads the entity's translation from the world.
func (s *Store) Position(key unique.Key) (dynamo.Vec2, bool) {
	h, ok := s.Bounds.Get(key)
	if !ok {
		return dynamo.Vec2{}, false
	}
	pose, err := s.World.Position(h)
	if err != nil {
		return dynamo.Vec2{}, false
	}
	return pose.Translation, true
}

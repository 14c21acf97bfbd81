package collide

import (
	"math"

	"github.com/san-kum/rebound/internal/dynamo"
)

type AABB struct {
	Min, Max dynamo.Vec2
}

func (a AABB) Overlaps(o AABB) bool {
	return a.Min.X <= o.Max.X && a.Max.X >= o.Min.X &&
		a.Min.Y <= o.Max.Y && a.Max.Y >= o.Min.Y
}

func (a AABB) Contains(p dynamo.Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

func (a AABB) Expand(margin float64) AABB {
	return AABB{
		Min: dynamo.Vec2{X: a.Min.X - margin, Y: a.Min.Y - margin},
		Max: dynamo.Vec2{X: a.Max.X + margin, Y: a.Max.Y + margin},
	}
}

func (a AABB) Size() dynamo.Vec2 { return a.Max.Sub(a.Min) }

func (a AABB) Center() dynamo.Vec2 { return a.Min.Add(a.Max).Scale(0.5) }

// Shape is a convex 2D shape in its local frame.
type Shape interface {
	AABB(iso dynamo.Isometry) AABB
}

// Cuboid is a rectangle centred on its origin.
type Cuboid struct {
	HalfExtents dynamo.Vec2
}

func NewCuboid(halfExtents dynamo.Vec2) Cuboid { return Cuboid{HalfExtents: halfExtents} }

func (c Cuboid) AABB(iso dynamo.Isometry) AABB {
	ax := iso.ApplyVector(dynamo.Vec2{X: 1})
	ay := iso.ApplyVector(dynamo.Vec2{Y: 1})
	ext := dynamo.Vec2{
		X: c.HalfExtents.X*math.Abs(ax.X) + c.HalfExtents.Y*math.Abs(ay.X),
		Y: c.HalfExtents.X*math.Abs(ax.Y) + c.HalfExtents.Y*math.Abs(ay.Y),
	}
	return AABB{Min: iso.Translation.Sub(ext), Max: iso.Translation.Add(ext)}
}

// Ball is a disc centred on its origin.
type Ball struct {
	Radius float64
}

func NewBall(radius float64) Ball { return Ball{Radius: radius} }

func (b Ball) AABB(iso dynamo.Isometry) AABB {
	r := dynamo.Vec2{X: b.Radius, Y: b.Radius}
	return AABB{Min: iso.Translation.Sub(r), Max: iso.Translation.Add(r)}
}

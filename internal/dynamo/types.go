package dynamo

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(factor float64) Vec2 { return Vec2{X: v.X * factor, Y: v.Y * factor} }

func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Normalize returns the unit vector along v, or the zero vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Perp returns v rotated a quarter turn counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

// Clamp limits each axis of v to [lo, hi] independently.
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{X: math.Max(lo.X, math.Min(hi.X, v.X)), Y: math.Max(lo.Y, math.Min(hi.Y, v.Y))}
}

func (v Vec2) Rotate(angle float64) Vec2 {
	if angle == 0 {
		return v
	}
	s, c := math.Sincos(angle)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

func (v Vec2) String() string { return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y) }

// Isometry is a rigid pose: rotate by Rotation radians, then translate.
type Isometry struct {
	Translation Vec2
	Rotation    float64
}

func NewIsometry(translation Vec2, rotation float64) Isometry {
	return Isometry{Translation: translation, Rotation: rotation}
}

// Apply maps a point from local to world space.
func (iso Isometry) Apply(p Vec2) Vec2 { return p.Rotate(iso.Rotation).Add(iso.Translation) }

// ApplyVector maps a direction from local to world space.
func (iso Isometry) ApplyVector(d Vec2) Vec2 { return d.Rotate(iso.Rotation) }

// Unapply maps a point from world to local space.
func (iso Isometry) Unapply(p Vec2) Vec2 { return p.Sub(iso.Translation).Rotate(-iso.Rotation) }

// Translated returns the pose moved by delta, keeping its rotation.
func (iso Isometry) Translated(delta Vec2) Isometry {
	return Isometry{Translation: iso.Translation.Add(delta), Rotation: iso.Rotation}
}

// Params holds the tuning constants of one session. The correction factor and
// the contact tolerance have no derivation; they are kept configurable.
type Params struct {
	Impulse          float64 // acceleration added per held movement button, per frame
	CorrectionFactor float64 // embed correction multiplier
	Tolerance        float64 // contact/proximity generation distance
	Friction         float64 // per-frame velocity multiplier for the player
	VelocityCap      Vec2    // per-axis absolute velocity bound for the player
	PlayerSize       Vec2    // player cuboid full extents
	CellSize         float64 // broad-phase grid cell
	PixelsPerUnit    float64
}

func DefaultParams() Params {
	return Params{
		Impulse:          0.003,
		CorrectionFactor: 2.0,
		Tolerance:        0.02,
		Friction:         0.9,
		VelocityCap:      Vec2{X: 0.06, Y: 0.15},
		PlayerSize:       Vec2{X: 0.16, Y: 0.16},
		CellSize:         0.5,
		PixelsPerUnit:    100.0,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Impulse < 0:
		return fmt.Errorf("%w: impulse must be non-negative, got %f", ErrInvalidConfig, p.Impulse)
	case p.CorrectionFactor < 0:
		return fmt.Errorf("%w: correction factor must be non-negative, got %f", ErrInvalidConfig, p.CorrectionFactor)
	case p.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be positive, got %f", ErrInvalidConfig, p.Tolerance)
	case p.Friction < 0 || p.Friction > 1:
		return fmt.Errorf("%w: friction must be in [0, 1], got %f", ErrInvalidConfig, p.Friction)
	case p.VelocityCap.X < 0 || p.VelocityCap.Y < 0:
		return fmt.Errorf("%w: velocity cap must be non-negative, got %v", ErrInvalidConfig, p.VelocityCap)
	case p.PlayerSize.X <= 0 || p.PlayerSize.Y <= 0:
		return fmt.Errorf("%w: player size must be positive, got %v", ErrInvalidConfig, p.PlayerSize)
	case p.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %f", ErrInvalidConfig, p.CellSize)
	case p.PixelsPerUnit <= 0:
		return fmt.Errorf("%w: pixels per unit must be positive, got %f", ErrInvalidConfig, p.PixelsPerUnit)
	}
	return nil
}

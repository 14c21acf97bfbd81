// Package render turns a store into a read-only list of pixel rectangles.
package render

import (
	"github.com/san-kum/rebound/internal/collide"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/unique"
)

// Rect is a pixel-space rectangle, origin top-left, +Y down.
type Rect struct {
	X, Y, W, H float64
}

type Sprite struct {
	Type entity.Type
	Key  unique.Key // null for terrain
	Rect Rect
}

// Snapshot lists terrain first, then every entity that has both bounds and a
// type, in key order. Positions are scaled by pixelsPerUnit.
func Snapshot(s *entity.Store, pixelsPerUnit float64) []Sprite {
	sprites := make([]Sprite, 0, len(s.Terrain)+s.Types.Len())
	for _, h := range s.Terrain {
		if r, ok := rectOf(s.World, h, pixelsPerUnit); ok {
			sprites = append(sprites, Sprite{Type: entity.Terrain, Key: unique.Null(), Rect: r})
		}
	}
	for key, e := range unique.Join(s.Bounds.Iter(), s.Types.Iter()) {
		if r, ok := rectOf(s.World, e.A, pixelsPerUnit); ok {
			sprites = append(sprites, Sprite{Type: e.B, Key: key, Rect: r})
		}
	}
	return sprites
}

func rectOf(w *collide.World[entity.Prop], h collide.Handle, scale float64) (Rect, bool) {
	box, ok := w.AABB(h)
	if !ok {
		return Rect{}, false
	}
	size := box.Size()
	return Rect{X: box.Min.X * scale, Y: box.Min.Y * scale, W: size.X * scale, H: size.Y * scale}, true
}

// Bounds returns the pixel rectangle enclosing every sprite.
func Bounds(sprites []Sprite) Rect {
	if len(sprites) == 0 {
		return Rect{}
	}
	minX, minY := sprites[0].Rect.X, sprites[0].Rect.Y
	maxX, maxY := minX+sprites[0].Rect.W, minY+sprites[0].Rect.H
	for _, sp := range sprites[1:] {
		minX = min(minX, sp.Rect.X)
		minY = min(minY, sp.Rect.Y)
		maxX = max(maxX, sp.Rect.X+sp.Rect.W)
		maxY = max(maxY, sp.Rect.Y+sp.Rect.H)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

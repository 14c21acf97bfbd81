package collide

import (
	"math"

	"github.com/san-kum/rebound/internal/dynamo"
)

type gridCell struct {
	X, Y int
}

type pairKey struct {
	a, b Handle
}

func makePair(h1, h2 Handle) pairKey {
	if h1 > h2 {
		h1, h2 = h2, h1
	}
	return pairKey{a: h1, b: h2}
}

// spatialGrid buckets padded object bounds into uniform cells.
type spatialGrid struct {
	cellSize float64
	cells    map[gridCell][]Handle
}

func newSpatialGrid(cellSize float64) *spatialGrid {
	return &spatialGrid{cellSize: cellSize, cells: make(map[gridCell][]Handle)}
}

func (g *spatialGrid) clear() {
	for key := range g.cells {
		g.cells[key] = g.cells[key][:0]
	}
}

func (g *spatialGrid) cell(p dynamo.Vec2) gridCell {
	return gridCell{X: int(math.Floor(p.X / g.cellSize)), Y: int(math.Floor(p.Y / g.cellSize))}
}

func (g *spatialGrid) insert(h Handle, box AABB) {
	lo, hi := g.cell(box.Min), g.cell(box.Max)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			c := gridCell{X: x, Y: y}
			g.cells[c] = append(g.cells[c], h)
		}
	}
}

// candidates returns every pair sharing at least one cell, once.
func (g *spatialGrid) candidates() map[pairKey]struct{} {
	seen := make(map[pairKey]struct{})
	for _, hs := range g.cells {
		for i := 0; i < len(hs); i++ {
			for j := i + 1; j < len(hs); j++ {
				seen[makePair(hs[i], hs[j])] = struct{}{}
			}
		}
	}
	return seen
}

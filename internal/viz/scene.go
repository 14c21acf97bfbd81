package viz

import (
	"math"

	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/render"
)

// Ink values used when rasterising sprites; 0 is unused background.
const (
	InkTerrain uint8 = iota + 1
	InkCrate
	InkPlayer
)

func InkOf(t entity.Type) uint8 {
	switch t {
	case entity.Player:
		return InkPlayer
	case entity.Crate:
		return InkCrate
	}
	return InkTerrain
}

// DrawScene fits the view rectangle (pixels) to the canvas and rasterises
// sprites into it: terrain outlined, entities filled.
func DrawScene(c *Canvas, sprites []render.Sprite, view render.Rect) {
	c.Clear()
	if view.W <= 0 || view.H <= 0 {
		return
	}
	sx := float64(c.DotsW()-1) / view.W
	sy := float64(c.DotsH()-1) / view.H
	scale := math.Min(sx, sy)

	dot := func(px, py float64) (int, int) {
		return int(math.Round((px - view.X) * scale)), int(math.Round((py - view.Y) * scale))
	}
	for _, sp := range sprites {
		x0, y0 := dot(sp.Rect.X, sp.Rect.Y)
		x1, y1 := dot(sp.Rect.X+sp.Rect.W, sp.Rect.Y+sp.Rect.H)
		if sp.Type == entity.Terrain {
			c.StrokeRect(x0, y0, x1, y1, InkTerrain)
			continue
		}
		c.FillRect(x0, y0, x1, y1, InkOf(sp.Type))
	}
}

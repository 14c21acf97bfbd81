// Package export writes scene snapshots as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/render"
	"github.com/san-kum/rebound/internal/sim"
)

var fills = map[entity.Type]string{
	entity.Player:  "#0000ff",
	entity.Crate:   "#ff8800",
	entity.Terrain: "#aaaaaa",
}

// SceneToSVG draws sprites on a black background sized to view. Terrain is
// drawn as outlines, entities as filled boxes.
func SceneToSVG(sprites []render.Sprite, view render.Rect) string {
	var sb strings.Builder
	header(&sb, view)

	for _, sp := range sprites {
		fill := fills[sp.Type]
		if fill == "" {
			fill = "#ffffff"
		}
		r := sp.Rect
		if sp.Type == entity.Terrain {
			fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>`+"\n",
				r.X, r.Y, r.W, r.H, fill)
			continue
		}
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			r.X, r.Y, r.W, r.H, fill)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws the scene with the traced player path on top.
// Trace positions are in world units and scaled by pixelsPerUnit.
func TrajectoryToSVG(sprites []render.Sprite, trace []sim.Sample, pixelsPerUnit float64, strokeColor string) string {
	scene := SceneToSVG(sprites, render.Bounds(sprites))
	if len(trace) < 2 {
		return scene
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(scene, "</svg>"))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)
	for i, p := range trace {
		x := p.Position.X * pixelsPerUnit
		y := p.Position.Y * pixelsPerUnit
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func header(sb *strings.Builder, view render.Rect) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.1f %.1f %.1f %.1f">
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#000000"/>
`, view.W, view.H, view.X, view.Y, view.W, view.H, view.X, view.Y, view.W, view.H)
}

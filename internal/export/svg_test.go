package export

import (
	"strings"
	"testing"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/render"
	"github.com/san-kum/rebound/internal/sim"
)

func TestSceneToSVG(t *testing.T) {
	sprites := []render.Sprite{
		{Type: entity.Terrain, Rect: render.Rect{X: 0, Y: 0, W: 200, H: 100}},
		{Type: entity.Player, Rect: render.Rect{X: 10, Y: 20, W: 16, H: 16}},
	}
	out := SceneToSVG(sprites, render.Bounds(sprites))

	for _, want := range []string{
		`width="200" height="100"`,
		`fill="#000000"`,
		`<rect x="10.0" y="20.0" width="16.0" height="16.0" fill="#0000ff"/>`,
		`fill="none" stroke="#aaaaaa"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "</svg>") {
		t.Error("svg not closed")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	sprites := []render.Sprite{{Type: entity.Crate, Rect: render.Rect{W: 50, H: 50}}}
	trace := []sim.Sample{
		{Position: dynamo.V(0.1, 0.2)},
		{Position: dynamo.V(0.3, 0.2)},
	}
	out := TrajectoryToSVG(sprites, trace, 100, "#00ff00")
	if !strings.Contains(out, `d="M10.0,20.0 L30.0,20.0"`) {
		t.Errorf("path missing from %s", out)
	}
	if strings.Count(out, "</svg>") != 1 {
		t.Error("svg should close once")
	}

	short := TrajectoryToSVG(sprites, trace[:1], 100, "#00ff00")
	if strings.Contains(short, "<path") {
		t.Error("single sample should not draw a path")
	}
}

package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rebound/internal/input"
)

var bindings = [len(input.Buttons)][]int32{
	input.Left:  {rl.KeyLeft, rl.KeyA},
	input.Right: {rl.KeyRight, rl.KeyD},
	input.Up:    {rl.KeyUp, rl.KeyW},
	input.Down:  {rl.KeyDown, rl.KeyS},
}

// keyboard polls raylib once per frame. Polling happens in Tick so a whole
// step sees one consistent snapshot.
type keyboard struct {
	state *input.State
}

func newKeyboard() *keyboard { return &keyboard{state: input.NewState()} }

func (k *keyboard) Tick(int) {
	k.state.Latch()
	for _, b := range input.Buttons {
		down := false
		for _, key := range bindings[b] {
			down = down || rl.IsKeyDown(key)
		}
		k.state.Set(b, down)
	}
}

func (k *keyboard) Held(b input.Button) bool    { return k.state.Held(b) }
func (k *keyboard) Pressed(b input.Button) bool { return k.state.Pressed(b) }

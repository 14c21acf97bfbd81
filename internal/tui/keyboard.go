package tui

import "github.com/san-kum/rebound/internal/input"

// HoldFrames is how long one key press keeps a button held. Terminals report
// presses and autorepeat but never releases.
const HoldFrames = 8

// Keyboard turns terminal key presses into held buttons that decay after
// HoldFrames frames. It implements input.Source and input.Ticker.
type Keyboard struct {
	state *input.State
	hold  [len(input.Buttons)]int
}

func NewKeyboard() *Keyboard { return &Keyboard{state: input.NewState()} }

// Press holds b for the next HoldFrames frames, replacing the opposite
// direction on the same axis.
func (k *Keyboard) Press(b input.Button) {
	if int(b) >= len(k.hold) {
		return
	}
	k.hold[opposite(b)] = 0
	k.hold[b] = HoldFrames
}

func (k *Keyboard) Release() { k.hold = [len(input.Buttons)]int{} }

func (k *Keyboard) Tick(int) {
	k.state.Latch()
	for _, b := range input.Buttons {
		k.state.Set(b, k.hold[b] > 0)
		if k.hold[b] > 0 {
			k.hold[b]--
		}
	}
}

func (k *Keyboard) Held(b input.Button) bool    { return k.state.Held(b) }
func (k *Keyboard) Pressed(b input.Button) bool { return k.state.Pressed(b) }

func opposite(b input.Button) input.Button {
	switch b {
	case input.Left:
		return input.Right
	case input.Right:
		return input.Left
	case input.Up:
		return input.Down
	}
	return input.Up
}

var keyButtons = map[string]input.Button{
	"left": input.Left, "a": input.Left, "h": input.Left,
	"right": input.Right, "d": input.Right, "l": input.Right,
	"up": input.Up, "w": input.Up, "k": input.Up,
	"down": input.Down, "s": input.Down, "j": input.Down,
}

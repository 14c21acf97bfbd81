// Package input defines the logical buttons the simulation polls each frame
// and a few sources that do not depend on a window.
package input

import (
	"fmt"
	"strings"
)

type Button uint8

const (
	Left Button = iota
	Right
	Up
	Down
	numButtons
)

// Buttons lists every logical button in a fixed order.
var Buttons = [...]Button{Left, Right, Up, Down}

var buttonNames = [numButtons]string{"left", "right", "up", "down"}

func (b Button) String() string {
	if b < numButtons {
		return buttonNames[b]
	}
	return fmt.Sprintf("button(%d)", uint8(b))
}

// ParseButton accepts a button name or its arrow/WASD alias.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

func (b Button) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Source answers whether a logical button is held, or was pressed this frame.
type Source interface {
	Held(b Button) bool
	Pressed(b Button) bool
}

// Ticker is implemented by sources that change per frame. The simulator calls
// Tick before each step.
type Ticker interface {
	Tick(frame int)
}

type none struct{}

func (none) Held(Button) bool    { return false }
func (none) Pressed(Button) bool { return false }

// None is a source with nothing held.
var None Source = none{}

// State is a settable source with press-edge tracking: Pressed is true for
// the first frame a button is held.
type State struct {
	held [numButtons]bool
	prev [numButtons]bool
}

func NewState() *State { return &State{} }

func (s *State) Set(b Button, down bool) {
	if b < numButtons {
		s.held[b] = down
	}
}

func (s *State) Release() { s.held = [numButtons]bool{} }

func (s *State) Held(b Button) bool { return b < numButtons && s.held[b] }

func (s *State) Pressed(b Button) bool { return b < numButtons && s.held[b] && !s.prev[b] }

// Latch ends the current frame for edge tracking.
func (s *State) Latch() { s.prev = s.held }

// Direction sums held buttons into a unit-per-button axis vector, +X right and +Y down.
func Direction(src Source) (x, y float64) {
	if src.Held(Right) {
		x++
	}
	if src.Held(Left) {
		x--
	}
	if src.Held(Down) {
		y++
	}
	if src.Held(Up) {
		y--
	}
	return x, y
}

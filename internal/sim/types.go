package sim

import (
	"fmt"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
)

// FrameReport summarises one Step.
type FrameReport struct {
	Frame           int
	Started         int // contact and proximity pairs that began touching
	Stopped         int
	TerrainContacts int // started entity-terrain contacts that fed an embed accumulator
	Corrected       int // entities pushed out of terrain this frame
}

type Metric interface {
	Name() string
	Observe(store *entity.Store, report FrameReport)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(store *entity.Store, report FrameReport)
}

type Config struct {
	Frames int
	Seed   int64
}

func DefaultConfig() Config {
	return Config{Frames: 600}
}

// Sample is the tracked entity's state at the end of a frame.
type Sample struct {
	Frame    int
	Position dynamo.Vec2
	Velocity dynamo.Vec2
	Embed    dynamo.Vec2
}

type Result struct {
	Trace     []Sample
	Metrics   map[string]float64
	FramesRun int
	Started   int
	Stopped   int
	Corrected int
	Seed      int64
}

// FrameError wraps a failure raised by the collision world during a frame.
type FrameError struct {
	Frame int
	Err   error
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Err)
}

func (e FrameError) Unwrap() error { return e.Err }

package automation

import (
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/san-kum/rebound/internal/input"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted input sequence: each step holds a set of buttons for
// a number of frames.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Loop        bool   `yaml:"loop,omitempty"`
	Steps       []Step `yaml:"steps"`

	held []input.Button
	prev []input.Button
}

type Step struct {
	Frames int            `yaml:"frames"`
	Hold   []input.Button `yaml:"hold,flow"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	return sc, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Save(path string) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return errors.Wrap(err, "marshal scenario")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write scenario %s", path)
}

func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return errors.New("scenario has no steps")
	}
	for i, st := range sc.Steps {
		if st.Frames <= 0 {
			return errors.Errorf("step %d: frames must be positive, got %d", i+1, st.Frames)
		}
	}
	return nil
}

// Frames returns the length of one pass through the steps.
func (sc *Scenario) Frames() int {
	n := 0
	for _, st := range sc.Steps {
		n += st.Frames
	}
	return n
}

// At returns the buttons held at frame. Past the end, nothing is held unless
// the scenario loops.
func (sc *Scenario) At(frame int) []input.Button {
	total := sc.Frames()
	if total == 0 || frame < 0 {
		return nil
	}
	if frame >= total {
		if !sc.Loop {
			return nil
		}
		frame %= total
	}
	for _, st := range sc.Steps {
		if frame < st.Frames {
			return st.Hold
		}
		frame -= st.Frames
	}
	return nil
}

// Tick selects the buttons of the given frame.
func (sc *Scenario) Tick(frame int) {
	sc.prev = sc.held
	sc.held = sc.At(frame)
}

func (sc *Scenario) Held(b input.Button) bool { return slices.Contains(sc.held, b) }

func (sc *Scenario) Pressed(b input.Button) bool {
	return sc.Held(b) && !slices.Contains(sc.prev, b)
}

// Recorder samples a source once per frame and compacts runs of identical
// held sets into scenario steps.
type Recorder struct {
	steps []Step
}

func (r *Recorder) Sample(src input.Source) {
	var held []input.Button
	for _, b := range input.Buttons {
		if src.Held(b) {
			held = append(held, b)
		}
	}
	if n := len(r.steps); n > 0 && slices.Equal(r.steps[n-1].Hold, held) {
		r.steps[n-1].Frames++
		return
	}
	r.steps = append(r.steps, Step{Frames: 1, Hold: held})
}

func (r *Recorder) Scenario(name string) *Scenario {
	return &Scenario{Name: name, Steps: slices.Clone(r.steps)}
}

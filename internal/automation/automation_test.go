package automation

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/san-kum/rebound/internal/input"
)

const script = `
name: dash
steps:
  - frames: 3
    hold: [right]
  - frames: 2
    hold: [right, up]
  - frames: 1
    hold: []
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "dash" || sc.Frames() != 6 {
		t.Errorf("name %q frames %d", sc.Name, sc.Frames())
	}

	tests := []struct {
		frame int
		want  []input.Button
	}{
		{0, []input.Button{input.Right}},
		{2, []input.Button{input.Right}},
		{3, []input.Button{input.Right, input.Up}},
		{5, []input.Button{}},
		{6, nil},
	}
	for _, tt := range tests {
		got := sc.At(tt.frame)
		if !slices.Equal(got, tt.want) {
			t.Errorf("At(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []string{
		"name: empty\nsteps: []\n",
		"steps:\n  - frames: 0\n    hold: [left]\n",
		"steps:\n  - frames: 2\n    hold: [jump]\n",
	}
	for _, data := range tests {
		if _, err := ParseScenario([]byte(data)); err == nil {
			t.Errorf("ParseScenario(%q) succeeded", data)
		}
	}
}

func TestScenario_SourceEdges(t *testing.T) {
	sc, _ := ParseScenario([]byte(script))

	sc.Tick(0)
	if !sc.Held(input.Right) || !sc.Pressed(input.Right) {
		t.Error("frame 0: right should be held and pressed")
	}
	sc.Tick(1)
	if sc.Pressed(input.Right) {
		t.Error("frame 1: right pressed again")
	}
	sc.Tick(3)
	if !sc.Pressed(input.Up) || sc.Pressed(input.Right) {
		t.Error("frame 3: only up should be pressed")
	}
	sc.Tick(5)
	if sc.Held(input.Right) {
		t.Error("frame 5: nothing should be held")
	}
}

func TestScenario_Loop(t *testing.T) {
	sc, _ := ParseScenario([]byte(script))
	sc.Loop = true
	if got := sc.At(7); !slices.Equal(got, []input.Button{input.Right}) {
		t.Errorf("At(7) looped = %v", got)
	}
}

func TestRecorder_RoundTrip(t *testing.T) {
	var rec Recorder
	st := input.NewState()
	for frame := 0; frame < 5; frame++ {
		st.Set(input.Left, frame < 3)
		rec.Sample(st)
	}

	sc := rec.Scenario("recorded")
	if len(sc.Steps) != 2 || sc.Steps[0].Frames != 3 || sc.Steps[1].Frames != 2 {
		t.Fatalf("steps = %+v", sc.Steps)
	}

	path := filepath.Join(t.TempDir(), "recorded.yaml")
	if err := sc.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(loaded.At(0), []input.Button{input.Left}) || len(loaded.At(4)) != 0 {
		t.Errorf("loaded scenario = %+v", loaded.Steps)
	}
}

package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/input"
)

type countingTicker struct {
	*input.State
	ticks []int
}

func (c *countingTicker) Tick(frame int) { c.ticks = append(c.ticks, frame) }

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(store *entity.Store, report FrameReport) {
	t.count++
	t.sum += float64(report.Frame)
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type frameLog struct{ frames []int }

func (f *frameLog) OnFrame(_ *entity.Store, report FrameReport) {
	f.frames = append(f.frames, report.Frame)
}

func newPlayerStore() *entity.Store {
	s := entity.New(dynamo.DefaultParams())
	s.SpawnPlayer(dynamo.V(0, 0))
	return s
}

func TestSimulatorRun(t *testing.T) {
	src := &countingTicker{State: holding(input.Right)}
	sim := New(newPlayerStore(), src)

	metric := &testMetric{}
	sim.AddMetric(metric)
	log := &frameLog{}
	sim.AddObserver(log)

	result, err := sim.Run(context.Background(), Config{Frames: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.FramesRun != 10 || len(result.Trace) != 10 {
		t.Errorf("frames %d, trace %d; want 10", result.FramesRun, len(result.Trace))
	}
	if len(src.ticks) != 10 || src.ticks[9] != 9 {
		t.Errorf("ticks = %v", src.ticks)
	}
	if metric.count != 10 || result.Metrics["test"] != 4.5 {
		t.Errorf("metric count %d value %v", metric.count, result.Metrics["test"])
	}
	if len(log.frames) != 10 || log.frames[0] != 0 {
		t.Errorf("observer frames = %v", log.frames)
	}

	last := result.Trace[len(result.Trace)-1]
	if last.Position.X <= result.Trace[0].Position.X {
		t.Errorf("player did not move right: %v -> %v", result.Trace[0].Position, last.Position)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		params func(*dynamo.Params)
	}{
		{"zero frames", Config{Frames: 0}, nil},
		{"negative frames", Config{Frames: -1}, nil},
		{"bad tolerance", Config{Frames: 1}, func(p *dynamo.Params) { p.Tolerance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPlayerStore()
			if tt.params != nil {
				tt.params(&s.Params)
			}
			_, err := New(s, nil).Run(context.Background(), tt.cfg)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSimulatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(newPlayerStore(), nil).Run(ctx, Config{Frames: 100})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if result.FramesRun != 0 {
		t.Errorf("ran %d frames after cancel", result.FramesRun)
	}
}

func TestSimulatorRunWithCallback(t *testing.T) {
	sim := New(newPlayerStore(), nil)
	calls := 0
	err := sim.RunWithCallback(context.Background(), 0, func(r FrameReport) bool {
		calls++
		return r.Frame < 4
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 5 || sim.Frame() != 5 {
		t.Errorf("calls %d, frame %d; want 5", calls, sim.Frame())
	}
}

func TestEnsemble(t *testing.T) {
	build := func(idx int, seed int64) (*Simulator, error) {
		s := entity.New(dynamo.DefaultParams())
		s.SpawnPlayer(dynamo.V(float64(idx), 0))
		return New(s, holding(input.Right)), nil
	}

	results, err := NewEnsemble(build, 4, 100).Run(context.Background(), Config{Frames: 20})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r.Seed != 100+int64(i) || r.FramesRun != 20 {
			t.Errorf("result %d: seed %d frames %d", i, r.Seed, r.FramesRun)
		}
		if got := r.Trace[0].Position.X; got < float64(i) {
			t.Errorf("result %d started at %v", i, got)
		}
	}
}

func TestEnsemble_BuildError(t *testing.T) {
	boom := errors.New("boom")
	build := func(int, int64) (*Simulator, error) { return nil, boom }
	if _, err := NewEnsemble(build, 2, 0).Run(context.Background(), Config{Frames: 1}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestFrameError(t *testing.T) {
	err := FrameError{Frame: 12, Err: dynamo.ErrUnknownHandle}
	if err.Error() != "frame 12: rebound: unknown collision handle" {
		t.Errorf("Error() = %q", err.Error())
	}
}

package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/input"
	"github.com/san-kum/rebound/internal/logging"
)

// Simulator drives one store frame by frame. It is not safe for concurrent use.
type Simulator struct {
	store     *entity.Store
	src       input.Source
	metrics   []Metric
	observers []Observer
	frame     int
}

func New(store *entity.Store, src input.Source) *Simulator {
	if src == nil {
		src = input.None
	}
	return &Simulator{
		store:     store,
		src:       src,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Store() *entity.Store { return s.store }

// Frame returns the number of frames stepped so far.
func (s *Simulator) Frame() int { return s.frame }

// Next advances one frame, ticking the input source first.
func (s *Simulator) Next() (FrameReport, error) {
	if t, ok := s.src.(input.Ticker); ok {
		t.Tick(s.frame)
	}
	report, err := Step(s.store, s.src, s.frame)
	if err != nil {
		return report, err
	}
	s.frame++
	for _, m := range s.metrics {
		m.Observe(s.store, report)
	}
	for _, obs := range s.observers {
		obs.OnFrame(s.store, report)
	}
	return report, nil
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Trace:   make([]Sample, 0, cfg.Frames),
		Metrics: make(map[string]float64),
		Seed:    cfg.Seed,
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		report, err := s.Next()
		if err != nil {
			return result, err
		}
		result.FramesRun++
		result.Started += report.Started
		result.Stopped += report.Stopped
		result.Corrected += report.Corrected

		if sample, ok := s.sample(report.Frame); ok {
			result.Trace = append(result.Trace, sample)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	logging.Infof("sim: %d frames, %d contacts started, %d corrections", result.FramesRun, result.Started, result.Corrected)
	return result, nil
}

func (s *Simulator) sample(frame int) (Sample, bool) {
	key := s.store.Player
	pos, ok := s.store.Position(key)
	if !ok {
		return Sample{}, false
	}
	vel, _ := s.store.Velocity.Get(key)
	embed, _ := s.store.Embed.Get(key)
	return Sample{Frame: frame, Position: pos, Velocity: vel, Embed: embed}, true
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Frames)
	}
	return s.store.Params.Validate()
}

// RunWithCallback steps until the callback returns false, the context ends or
// maxFrames frames have run. maxFrames <= 0 means no limit.
func (s *Simulator) RunWithCallback(ctx context.Context, maxFrames int, callback func(FrameReport) bool) error {
	if err := s.store.Params.Validate(); err != nil {
		return err
	}
	for i := 0; maxFrames <= 0 || i < maxFrames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := s.Next()
		if err != nil {
			return err
		}
		if !callback(report) {
			return nil
		}
	}
	return nil
}

package optim

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/sim"
)

// Tunable lists the parameter names ApplyParam understands.
var Tunable = []string{"impulse", "correction_factor", "tolerance", "friction"}

// ApplyParam sets one named tuning constant on p.
func ApplyParam(p *dynamo.Params, name string, value float64) error {
	switch name {
	case "impulse":
		p.Impulse = value
	case "correction_factor":
		p.CorrectionFactor = value
	case "tolerance":
		p.Tolerance = value
	case "friction":
		p.Friction = value
	default:
		return fmt.Errorf("%w: unknown parameter %q (want one of %v)", dynamo.ErrInvalidConfig, name, Tunable)
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// Search runs a session per grid point and returns the point minimising the
// named metric. Points whose session fails to build or run are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) (*sim.Simulator, error),
	cfg sim.Config,
	metricName string,
) (map[string]float64, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("%w: %d parameters, %d ranges", dynamo.ErrInvalidConfig, len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var trials []Trial

	g.searchRecursive(ctx, 0, make(map[string]float64), build, cfg, metricName, &best, &bestParams, &trials)

	if err := ctx.Err(); err != nil {
		return bestParams, best, trials, err
	}
	if bestParams == nil {
		return nil, best, trials, dynamo.ErrNoData
	}
	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) (*sim.Simulator, error),
	cfg sim.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
	trials *[]Trial,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		s, err := build(current)
		if err != nil {
			return
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return
		}
		*trials = append(*trials, Trial{Params: current, Value: val})
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, build, cfg, metricName, best, bestParams, trials)
	}
}

// SortTrials orders trials best first.
func SortTrials(trials []Trial) {
	slices.SortStableFunc(trials, func(a, b Trial) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	})
}

package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/rebound/internal/config"
	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/metrics"
	"github.com/san-kum/rebound/internal/optim"
	"github.com/san-kum/rebound/internal/sim"
	"github.com/spf13/cobra"
)

// parseRange reads "name=lo:hi:n".
func parseRange(s string) (string, []float64, error) {
	name, bounds, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("%w: param %q: want name=lo:hi:n", dynamo.ErrInvalidConfig, s)
	}
	parts := strings.Split(bounds, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("%w: param %q: want name=lo:hi:n", dynamo.ErrInvalidConfig, s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("%w: param %q: %v", dynamo.ErrInvalidConfig, s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("%w: param %q: %v", dynamo.ErrInvalidConfig, s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n <= 0 {
		return "", nil, fmt.Errorf("%w: param %q: bad count", dynamo.ErrInvalidConfig, s)
	}
	return strings.TrimSpace(name), optim.Linspace(lo, hi, n), nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}
	sc, err := loadScript(cfg)
	if err != nil {
		return err
	}
	if len(params) == 0 {
		return fmt.Errorf("%w: at least one --param is required (tunable: %v)", dynamo.ErrInvalidConfig, optim.Tunable)
	}

	names := make([]string, 0, len(params))
	ranges := make([][]float64, 0, len(params))
	for _, p := range params {
		name, values, err := parseRange(p)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	build := func(values map[string]float64) (*sim.Simulator, error) {
		p := cfg.Params()
		for name, v := range values {
			if err := optim.ApplyParam(&p, name, v); err != nil {
				return nil, err
			}
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		store := entity.New(p)
		config.Populate(store, cfg.Level, cfg.Seed)
		s := sim.New(store, source(sc))
		for _, m := range metrics.All() {
			s.AddMetric(m)
		}
		return s, nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	best, value, trials, err := optim.NewGridSearch(names, ranges).
		Search(ctx, build, sim.Config{Frames: cfg.Frames, Seed: cfg.Seed}, metricName)
	if err != nil {
		return err
	}

	optim.SortTrials(trials)
	fmt.Printf("%d trials, minimising %s\n\n", len(trials), metricName)
	for i, tr := range trials[:min(len(trials), 10)] {
		fmt.Printf("%2d  %s  %.6f\n", i+1, formatParams(tr.Params), tr.Value)
	}
	fmt.Printf("\nbest: %s  %s=%.6f\n", formatParams(best), metricName, value)
	return nil
}

func formatParams(p map[string]float64) string {
	keys := slices.Sorted(maps.Keys(p))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.4g", k, p[k])
	}
	return strings.Join(parts, " ")
}

package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/sim"
)

// Channels lists the names accepted by Series.
var Channels = []string{"x", "y", "vx", "vy", "ex", "ey", "speed"}

func Series(trace []sim.Sample, channel string) ([]float64, error) {
	var pick func(sim.Sample) float64
	switch channel {
	case "x":
		pick = func(s sim.Sample) float64 { return s.Position.X }
	case "y":
		pick = func(s sim.Sample) float64 { return s.Position.Y }
	case "vx":
		pick = func(s sim.Sample) float64 { return s.Velocity.X }
	case "vy":
		pick = func(s sim.Sample) float64 { return s.Velocity.Y }
	case "ex":
		pick = func(s sim.Sample) float64 { return s.Embed.X }
	case "ey":
		pick = func(s sim.Sample) float64 { return s.Embed.Y }
	case "speed":
		pick = func(s sim.Sample) float64 { return s.Velocity.Len() }
	default:
		return nil, fmt.Errorf("unknown channel %q (want one of %v)", channel, Channels)
	}
	out := make([]float64, len(trace))
	for i, s := range trace {
		out[i] = pick(s)
	}
	return out, nil
}

// PowerSpectrum returns the magnitude of the first n/2 bins of the
// mean-removed, Hann-windowed signal.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin,
// given the frame rate the data was sampled at.
func DominantFrequency(data []float64, fps float64) (float64, error) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, dynamo.ErrNoData
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] == 0 {
		return 0, nil
	}
	return float64(best) * fps / float64(len(data)), nil
}

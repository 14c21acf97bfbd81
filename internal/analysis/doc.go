// Package analysis inspects recorded traces.
//
//   - [Series]: one scalar channel of a trace
//   - [PowerSpectrum]: windowed magnitude spectrum of a channel
//   - [DominantFrequency]: strongest periodic component, in Hz
//   - [Reversals]: how often the tracked entity changed direction
//   - [Summarize]: all of the above for one run
//
// A player pinned against a wall while a movement button is held alternates
// between penetrating and being pushed out. That shows up as a sharp
// spectral peak in the position channel and a high reversal rate:
//
//	s, _ := analysis.Summarize(trace, 60)
//	if s.ReversalRate > 0.3 {
//	    // correction is oscillating
//	}
package analysis

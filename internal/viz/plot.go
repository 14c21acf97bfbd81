package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Plot renders a line chart of data. Long series are resampled to width.
func Plot(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotMany overlays several equally long series, one colour each.
func PlotMany(series [][]float64, caption string, width, height int) string {
	if len(series) == 0 || len(series[0]) == 0 {
		return ""
	}
	colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Green, asciigraph.Red, asciigraph.Yellow}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors[:min(len(series), len(colors))]...),
	)
}

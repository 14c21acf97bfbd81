// Package viz draws rebound scenes and traces in a terminal.
//
//   - [Canvas]: braille dot grid with per-cell ink for colouring
//   - [DrawScene]: rasterises a sprite snapshot onto a canvas
//   - [Theme]: scene palettes, cycled from the TUI
//   - [Plot], [PlotMany]: asciigraph charts of trace channels
//   - [Sparkline]: compact history strip for the status panel
package viz

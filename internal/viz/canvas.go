package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid. Each cell also remembers the ink of the last
// dot drawn into it so a styled render can colour it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]uint8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]uint8, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]uint8, w)
	}
	c.Clear()
	return c
}

// DotsW and DotsH give the canvas size in sub-pixel dots.
func (c *Canvas) DotsW() int { return c.Width * 2 }
func (c *Canvas) DotsH() int { return c.Height * 4 }

// Set turns on the dot at (x, y) in sub-pixel coordinates with the given ink.
func (c *Canvas) Set(x, y int, ink uint8) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Ink[row][col] = ink
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink uint8) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect sets every dot in [x0, x1] x [y0, y1].
func (c *Canvas) FillRect(x0, y0, x1, y1 int, ink uint8) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y, ink)
		}
	}
}

func (c *Canvas) StrokeRect(x0, y0, x1, y1 int, ink uint8) {
	c.DrawLine(x0, y0, x1, y0, ink)
	c.DrawLine(x1, y0, x1, y1, ink)
	c.DrawLine(x1, y1, x0, y1, ink)
	c.DrawLine(x0, y1, x0, y0, ink)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the grid with one style per ink. Runs of equal ink share a
// single styled span.
func (c *Canvas) Render(styles map[uint8]lipgloss.Style) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Ink[row][col] == c.Ink[row][start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if st, ok := styles[c.Ink[row][start]]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = col
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

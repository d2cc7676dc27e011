package viz

import (
	"strings"
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

// Canvas is a braille dot grid with an optional glyph per cell drawn on top.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Glyphs        [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Glyphs: make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Glyphs[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

// Put places a glyph in the cell that contains sub-pixel (x, y).
func (c *Canvas) Put(x, y int, g rune) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Glyphs[row][col] = g
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Glyphs[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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
		c.Set(x0, y0)
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

// DrawRect outlines the rectangle with corners (x0, y0) and (x1, y1).
func (c *Canvas) DrawRect(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

func (c *Canvas) String() string {
	return c.Render(nil, nil)
}

// Render draws the canvas, passing runs of dots and single glyphs through the
// given stylers, which take the shape of lipgloss.Style.Render. A nil styler
// leaves the text as is.
func (c *Canvas) Render(dots, glyph func(...string) string) string {
	if dots == nil {
		dots = plain
	}
	if glyph == nil {
		glyph = plain
	}

	var b, run strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			g := c.Glyphs[i][j]
			if g == 0 {
				run.WriteRune(r)
				continue
			}
			if run.Len() > 0 {
				b.WriteString(dots(run.String()))
				run.Reset()
			}
			b.WriteString(glyph(string(g)))
		}
		if run.Len() > 0 {
			b.WriteString(dots(run.String()))
			run.Reset()
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func plain(strs ...string) string { return strings.Join(strs, "") }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

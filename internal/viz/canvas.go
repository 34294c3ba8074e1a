package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cell dot layout, offsets from U+2800:
//
//	1 4
//	2 5
//	3 6
//	7 8
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBlank rune = 0x2800

// Canvas is a grid of Braille cells, each holding 2x4 dots. Every cell also
// remembers how many even and odd values landed in it so the parity of a
// region can be tinted when rendered.
type Canvas struct {
	Width, Height int

	cells [][]rune
	evens [][]int
	odds  [][]int
}

// NewCanvas returns a blank canvas of w x h cells (2w x 4h dots).
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{Width: w, Height: h}
	c.cells = make([][]rune, h)
	c.evens = make([][]int, h)
	c.odds = make([][]int, h)
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
		c.evens[i] = make([]int, w)
		c.odds[i] = make([]int, w)
	}
	c.Clear()
	return c
}

// DotsWide is the horizontal resolution in dots.
func (c *Canvas) DotsWide() int { return c.Width * 2 }

// DotsHigh is the vertical resolution in dots.
func (c *Canvas) DotsHigh() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.cells[row][col] |= brailleDots[y%4][x%2]
	}
}

// Mark lights the dot at (x, y) and records the parity of the value it
// stands for.
func (c *Canvas) Mark(x, y int, even bool) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.cells[row][col] |= brailleDots[y%4][x%2]
	if even {
		c.evens[row][col]++
	} else {
		c.odds[row][col]++
	}
}

// Unset clears the dot at (x, y).
func (c *Canvas) Unset(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.cells[row][col] &^= brailleDots[y%4][x%2]
		c.cells[row][col] |= brailleBlank
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	return ok && c.cells[row][col]&brailleDots[y%4][x%2] != 0
}

// Clear resets every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBlank
			c.evens[i][j] = 0
			c.odds[i][j] = 0
		}
	}
}

// DrawLine connects two dots with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

// Plot scales pts into the canvas, joins consecutive points with lines and
// marks each point with its parity. The aspect ratio is preserved.
func (c *Canvas) Plot(pts []Point) {
	if len(pts) == 0 {
		return
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	w, h := float64(c.DotsWide()-1), float64(c.DotsHigh()-1)
	spanX, spanY := maxX-minX, maxY-minY
	scale := math.Inf(1)
	if spanX > 0 {
		scale = w / spanX
	}
	if spanY > 0 {
		scale = math.Min(scale, h/spanY)
	}
	if math.IsInf(scale, 1) {
		scale = 0
	}
	offX := (w - spanX*scale) / 2
	offY := (h - spanY*scale) / 2

	project := func(p Point) (int, int) {
		x := offX + (p.X-minX)*scale
		// dot rows grow downwards
		y := h - (offY + (p.Y-minY)*scale)
		return int(math.Round(x)), int(math.Round(y))
	}

	px, py := project(pts[0])
	for i, p := range pts {
		x, y := project(p)
		if i > 0 {
			c.DrawLine(px, py, x, y)
		}
		c.Mark(x, y, p.Even)
		px, py = x, y
	}
}

// String returns the raw Braille text, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the canvas with parity tints: cells dominated by even values
// use the theme's Even colour, odd-dominated cells its Odd colour and plain
// line segments the Muted colour.
func (c *Canvas) Render(t Theme) string {
	even := lipgloss.NewStyle().Foreground(t.Even)
	odd := lipgloss.NewStyle().Foreground(t.Odd)
	line := lipgloss.NewStyle().Foreground(t.Muted)

	var b strings.Builder
	for i, row := range c.cells {
		for j, r := range row {
			s := string(r)
			switch {
			case r == brailleBlank:
				b.WriteString(s)
			case c.evens[i][j] == 0 && c.odds[i][j] == 0:
				b.WriteString(line.Render(s))
			case c.evens[i][j] >= c.odds[i][j]:
				b.WriteString(even.Render(s))
			default:
				b.WriteString(odd.Render(s))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

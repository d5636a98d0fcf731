package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a cell grid with an optional style per cell. Overlays write
// into it before it is flattened to a string.
type canvas struct {
	w, h   int
	cells  [][]rune
	styles [][]*lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h), styles: make([][]*lipgloss.Style, h)}
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", w))
		c.styles[y] = make([]*lipgloss.Style, w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
	c.styles[y][x] = st
}

func (c *canvas) blank(x, y int) bool {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return false
	}
	return c.cells[y][x] == ' '
}

// text writes s starting at x, clipped to the canvas.
func (c *canvas) text(x, y int, s string, st *lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, st)
	}
}

// overlayBraille copies non-empty braille cells onto blank canvas cells.
func (c *canvas) overlayBraille(b *brailleBuf, st *lipgloss.Style) {
	for y := 0; y < c.h && y < b.h; y++ {
		for x := 0; x < c.w && x < b.w; x++ {
			if b.m[y][x] != 0 && c.blank(x, y) {
				c.set(x, y, rune(0x2800+int(b.m[y][x])), st)
			}
		}
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb strings.Builder
		x := 0
		for x < c.w {
			st := c.styles[y][x]
			j := x
			for j < c.w && c.styles[y][j] == st {
				j++
			}
			run := string(c.cells[y][x:j])
			if st != nil {
				run = st.Render(run)
			}
			sb.WriteString(run)
			x = j
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// brailleBits maps a micro-pixel (column rx, row ry) inside a cell to its
// dot bit.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[mx%2][my%4]
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// box draws lines inside a rounded frame with its top-left corner at (x, y).
func (c *canvas) box(x, y int, lines []string, st *lipgloss.Style) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, len([]rune(l)))
	}
	c.text(x, y, "╭"+strings.Repeat("─", inner+2)+"╮", st)
	for i, l := range lines {
		c.text(x, y+1+i, "│ "+padRight(l, inner-len([]rune(l)))+" │", st)
	}
	c.text(x, y+1+len(lines), "╰"+strings.Repeat("─", inner+2)+"╯", st)
}

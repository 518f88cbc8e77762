package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/salaryscope/internal/domain/plot"
)

// A terminal cell stands for a cellW x cellH pixel block of the surface.
const (
	cellW = 8
	cellH = 16
)

const (
	glyphPoint  = '●'
	glyphRaised = '◉'
	glyphGrid   = '┄'
	glyphXAxis  = '─'
	glyphYAxis  = '│'
	glyphOrigin = '└'
)

type cell struct {
	r     rune
	style *lipgloss.Style
	fill  string
}

// canvas rasterises a scene onto a grid of terminal cells.
type canvas struct {
	cols, rows int
	cells      [][]cell
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
		for j := range c.cells[i] {
			c.cells[i][j] = cell{r: ' '}
		}
	}
	return c
}

func (c *canvas) set(col, row int, r rune, st *lipgloss.Style, fill string) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	c.cells[row][col] = cell{r: r, style: st, fill: fill}
}

func (c *canvas) text(col, row int, s string, st *lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(col+i, row, r, st, "")
	}
}

func cellOf(px, py float64) (int, int) {
	return int(px / cellW), int(py / cellH)
}

// draw renders sc in surface coordinates.
func (c *canvas) draw(sc plot.Scene) {
	if sc.Empty {
		msg := sc.Message
		c.text((c.cols-len(msg))/2, c.rows/2, msg, &axisStyle)
		return
	}

	m := sc.Margins
	left, top := cellOf(m.Left, m.Top)
	right, bottom := cellOf(m.Left+sc.InnerWidth, m.Top+sc.InnerHeight)

	for _, y := range sc.Gridlines {
		_, row := cellOf(0, m.Top+y)
		for col := left; col < right; col++ {
			c.set(col, row, glyphGrid, &gridStyle, "")
		}
	}

	for col := left; col < right; col++ {
		c.set(col, bottom, glyphXAxis, &axisStyle, "")
	}
	for row := top; row < bottom; row++ {
		c.set(left-1, row, glyphYAxis, &axisStyle, "")
	}
	c.set(left-1, bottom, glyphOrigin, &axisStyle, "")

	for _, t := range sc.XAxis.Ticks {
		col, _ := cellOf(m.Left+t.Pos, 0)
		c.text(col-len(t.Label)/2, bottom+1, t.Label, &axisStyle)
	}
	for _, t := range sc.YAxis.Ticks {
		_, row := cellOf(0, m.Top+t.Pos)
		c.text(left-2-len(t.Label), row, t.Label, &axisStyle)
	}

	for _, p := range sc.Points {
		col, row := cellOf(m.Left+p.CX, m.Top+p.CY)
		if col < left || col >= right || row < top || row >= bottom {
			continue
		}
		glyph := glyphPoint
		if p.Raised {
			glyph = glyphRaised
		}
		c.set(col, row, glyph, nil, p.Fill)
	}

	c.text((left+right-len(sc.XAxis.Label))/2, c.rows-1, sc.XAxis.Label, &labelStyle)
	c.text(0, 0, sc.YAxis.Label, &labelStyle)
}

// String joins the rows, styling each cell.
func (c *canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		for _, cl := range row {
			switch {
			case cl.fill != "":
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cl.fill)).Render(string(cl.r)))
			case cl.style != nil:
				b.WriteString(cl.style.Render(string(cl.r)))
			default:
				b.WriteRune(cl.r)
			}
		}
		if i < len(c.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// plain returns the grid without styling.
func (c *canvas) plain() string {
	var b strings.Builder
	for i, row := range c.cells {
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		if i < len(c.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

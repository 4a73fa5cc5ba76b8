package panes

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canvas composites pre-rendered panes onto a fixed-size cell grid. Panes
// are placed back-to-front; later placements paint over earlier ones, which
// is how z-order becomes visible.
type Canvas struct {
	width  int
	height int
	lines  []string
}

func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return &Canvas{width: width, height: height, lines: lines}
}

// Place paints content with its top-left corner at cell (x, y). Content
// partially or fully outside the canvas is clipped, so panels scrolled off
// screen cost nothing.
func (c *Canvas) Place(x, y int, content string) {
	if c.width == 0 || c.height == 0 {
		return
	}
	for i, line := range strings.Split(content, "\n") {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		c.lines[row] = spliceRow(c.lines[row], line, x, c.width)
	}
}

// String returns the composited grid.
func (c *Canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// spliceRow overlays line onto base starting at column x, preserving the
// base content on both sides. ANSI-aware so styled panes keep their colors.
func spliceRow(base, line string, x, width int) string {
	if x >= width {
		return base
	}
	if x < 0 {
		line = cutLeftColumns(line, -x)
		x = 0
	}
	lineW := ansi.StringWidth(line)
	if lineW == 0 {
		return base
	}
	if x+lineW > width {
		line = ansi.Truncate(line, width-x, "")
		lineW = ansi.StringWidth(line)
	}

	left := ansi.Truncate(base, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := cutLeftColumns(base, x+lineW)
	if gap := width - x - lineW - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + line + right
}

// cutLeftColumns drops the first cols display columns of s.
func cutLeftColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	kept := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, kept)
}

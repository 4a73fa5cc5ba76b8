// Package panes renders workspace panels into terminal cells: the bordered
// pane chrome, the free-form canvas compositor, and one body renderer per
// widget kind. Nothing here mutates workspace state.
package panes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"coindeck/internal/workspace"
)

var (
	borderIdle     = lipgloss.Color("#6c7086")
	borderSelected = lipgloss.Color("#89b4fa")
	borderFront    = lipgloss.Color("#a6e3a1")
	titleColor     = lipgloss.Color("#cdd6f4")
	badgeColor     = lipgloss.Color("#fab387")
	bodyColor      = lipgloss.Color("#cdd6f4")
)

// Chrome describes how one panel should be framed.
type Chrome struct {
	Panel     *workspace.Panel
	GroupSize int
	Selected  bool
	Front     bool
	Body      string
}

// Render draws the pane at the given cell size: rounded border, the
// instrument and kind in the top rule, link/exchange badges in the bottom
// rule, body clipped inside.
func (c Chrome) Render(width, height int) string {
	if width < 6 {
		width = 6
	}
	if height < 3 {
		height = 3
	}

	border := borderIdle
	if c.Selected {
		border = borderSelected
	}
	if c.Front {
		border = borderFront
	}
	bs := lipgloss.NewStyle().Foreground(border)
	ts := lipgloss.NewStyle().Foreground(titleColor).Bold(true)
	badge := lipgloss.NewStyle().Foreground(badgeColor)
	content := lipgloss.NewStyle().Foreground(bodyColor)

	innerWidth := width - 2

	title := fmt.Sprintf(" %s · %s ", c.Panel.Instrument.Symbol, c.Panel.Kind)
	if ansi.StringWidth(title) > innerWidth {
		title = " " + ansi.Truncate(strings.TrimSpace(title), max(1, innerWidth-2), "…") + " "
	}
	top := ruleWithLabel(bs, ts, "╭", "╮", innerWidth, title)

	tags := fmt.Sprintf(" %s·%s ", c.Panel.Exchange, c.Panel.Timeframe)
	if c.Panel.Linked() {
		tags = fmt.Sprintf(" ⛓%d%s", c.GroupSize, tags)
	}
	if ansi.StringWidth(tags) > innerWidth {
		tags = ""
	}
	bottom := ruleWithLabel(bs, badge, "╰", "╯", innerWidth, tags)

	v := bs.Render("│")
	innerHeight := height - 2
	bodyLines := strings.Split(c.Body, "\n")
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < innerHeight; i++ {
		line := ""
		if i < len(bodyLines) {
			line = bodyLines[i]
		}
		line = ansi.Truncate(line, innerWidth, "")
		pad := innerWidth - ansi.StringWidth(line)
		if pad < 0 {
			pad = 0
		}
		rows = append(rows, v+content.Render(line)+strings.Repeat(" ", pad)+v)
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}

// ruleWithLabel draws a horizontal border rule with a styled label embedded
// near the left corner.
func ruleWithLabel(border, label lipgloss.Style, left, right string, innerWidth int, text string) string {
	textW := ansi.StringWidth(text)
	if textW > innerWidth {
		text = ""
		textW = 0
	}
	dashes := innerWidth - textW
	leftDash := 0
	if dashes > 0 && textW > 0 {
		leftDash = 1
		if leftDash > dashes {
			leftDash = dashes
		}
	}
	rightDash := dashes - leftDash
	return border.Render(left) +
		border.Render(strings.Repeat("─", leftDash)) +
		label.Render(text) +
		border.Render(strings.Repeat("─", rightDash)) +
		border.Render(right)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

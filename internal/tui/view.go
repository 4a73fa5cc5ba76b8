package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"coindeck/internal/tui/panes"
	"coindeck/internal/workspace"
)

var (
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading…"
	}

	canvasRows := a.height - 2
	if canvasRows < 3 {
		canvasRows = 3
	}

	body := a.renderCanvas(a.width, canvasRows)
	switch a.modal {
	case modalSearch:
		body = a.overlayModal(body, a.renderSearchModal(), a.width, canvasRows)
	case modalKinds:
		body = a.overlayModal(body, a.renderKindModal(), a.width, canvasRows)
	}

	return a.renderStatusBar() + "\n" + body + "\n" + a.renderFooter()
}

func (a *App) renderCanvas(cols, rows int) string {
	canvas := panes.NewCanvas(cols, rows)
	view := panes.MarketView{Last: a.last, History: a.history}

	frontID := a.ctrl.FrontID()
	var front *workspace.Panel
	for _, p := range a.ctrl.Panels() {
		if p.ID == frontID {
			front = p
			continue
		}
		a.placePanel(canvas, p, view)
	}
	// Front panel paints last so it stacks above its siblings.
	if front != nil {
		a.placePanel(canvas, front, view)
	}
	return canvas.String()
}

func (a *App) placePanel(canvas *panes.Canvas, p *workspace.Panel, view panes.MarketView) {
	g := p.Geometry
	x := int(math.Round((g.X - a.offsetX) / unitsPerCol))
	y := int(math.Round((g.Y - a.offsetY) / unitsPerRow))
	w := int(math.Round(g.Width / unitsPerCol))
	h := int(math.Round(g.Height / unitsPerRow))
	if w < 8 {
		w = 8
	}
	if h < 4 {
		h = 4
	}

	body := panes.RenderBody(p, view, w-2, h-2)
	chrome := panes.Chrome{
		Panel:     p,
		GroupSize: a.ctrl.GroupSize(p.ID),
		Selected:  p.ID == a.selectedID,
		Front:     p.ID == a.ctrl.FrontID(),
		Body:      body,
	}
	canvas.Place(x, y, chrome.Render(w, h))
}

func (a *App) renderStatusBar() string {
	ext := a.ctrl.CanvasExtent()
	left := fmt.Sprintf("coindeck · %d panels · canvas %.0f×%.0f · snap %s",
		len(a.ctrl.Panels()), ext.Width, ext.Height, onOff(a.ctrl.SnapEnabled()))
	if a.status != "" {
		left += " · " + a.status
	}
	return statusBarStyle.Width(a.width).Render(left)
}

func (a *App) renderFooter() string {
	help := "tab select · arrows move · S-arrows size · t tile · l link · / symbol · n new · a add · x del · s snap · q quit"
	return footerStyle.Render(ansi.Truncate(help, a.width, ""))
}

func (a *App) renderSearchModal() string {
	var b strings.Builder
	title := "instrument search"
	if origin, open := a.ctrl.SearchOrigin(); open && origin == "" {
		title = "new panel — instrument search"
	}
	b.WriteString(cursorStyle.Render(title) + "\n\n")
	b.WriteString(a.search.View() + "\n\n")
	if len(a.results) == 0 {
		b.WriteString(dimStyle.Render("type to search"))
	}
	for i, in := range a.results {
		prefix := "  "
		line := fmt.Sprintf("%-12s %s", in.Symbol, in.DisplayName)
		if i == a.resultCursor {
			prefix = "> "
			line = cursorStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}
	return modalStyle.Render(b.String())
}

func (a *App) renderKindModal() string {
	var b strings.Builder
	b.WriteString(cursorStyle.Render("add panel") + "\n\n")
	for i, kind := range workspace.Kinds {
		prefix := "  "
		line := string(kind)
		if i == a.kindCursor {
			prefix = "> "
			line = cursorStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}
	return modalStyle.Render(b.String())
}

// overlayModal centers a card over the canvas.
func (a *App) overlayModal(base, card string, width, height int) string {
	canvas := panes.NewCanvas(width, height)
	canvas.Place(0, 0, base)

	cardLines := strings.Split(card, "\n")
	cardW := 0
	for _, l := range cardLines {
		if w := lipgloss.Width(l); w > cardW {
			cardW = w
		}
	}
	x := (width - cardW) / 2
	y := (height - len(cardLines)) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	canvas.Place(x, y, card)
	return canvas.String()
}

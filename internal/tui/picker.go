package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"coindeck/internal/workspace"
)

// updateKindPicker drives the "add panel" modal: a cursor over the widget
// kinds.
func (a *App) updateKindPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.modal = modalNone

	case "up", "k":
		if a.kindCursor > 0 {
			a.kindCursor--
		}
	case "down", "j":
		if a.kindCursor < len(workspace.Kinds)-1 {
			a.kindCursor++
		}

	case "enter":
		kind := workspace.Kinds[a.kindCursor]
		p := a.ctrl.AddPanel(kind)
		a.modal = modalNone
		a.status = "added " + string(kind)
		// Select for convenience; focus still follows first interaction.
		a.selectedID = p.ID
	}
	return a, nil
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

const maxSearchResults = 8

// openSearch starts an instrument search attributed to panelID; an empty id
// is a workspace-level search whose commit creates a new chart panel.
func (a *App) openSearch(panelID string) {
	a.ctrl.OpenSearch(panelID)
	a.modal = modalSearch
	a.search.SetValue("")
	a.search.Focus()
	a.results = nil
	a.resultCursor = 0
}

func (a *App) closeSearch() {
	a.modal = modalNone
	a.search.Blur()
	a.results = nil
	a.resultCursor = 0
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.ctrl.CancelSearch()
		a.closeSearch()
		return a, nil

	case "up":
		if a.resultCursor > 0 {
			a.resultCursor--
		}
		return a, nil
	case "down":
		if a.resultCursor < len(a.results)-1 {
			a.resultCursor++
		}
		return a, nil

	case "enter":
		if a.resultCursor < len(a.results) {
			in := a.results[a.resultCursor]
			a.ctrl.CommitSearch(in)
			a.status = "instrument " + in.Symbol
			a.log.WithField("symbol", in.Symbol).Info("instrument selected")
		} else {
			a.ctrl.CancelSearch()
		}
		a.closeSearch()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.results = a.catalog.Search(a.search.Value(), maxSearchResults)
	if a.resultCursor >= len(a.results) {
		a.resultCursor = 0
	}
	return a, cmd
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Cycle      key.Binding
	CycleBack  key.Binding
	Move       key.Binding
	Resize     key.Binding
	Snap       key.Binding
	Tile       key.Binding
	Link       key.Binding
	Exchange   key.Binding
	Timeframe  key.Binding
	Add        key.Binding
	Remove     key.Binding
	Search     key.Binding
	NewSearch  key.Binding
	ClearFocus key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cycle:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		CycleBack:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev panel")),
		Move:       key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("arrows", "move")),
		Resize:     key.NewBinding(key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"), key.WithHelp("S-arrows", "resize")),
		Snap:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snap")),
		Tile:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tile")),
		Link:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "link")),
		Exchange:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "exchange")),
		Timeframe:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "timeframe")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add panel")),
		Remove:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "instrument")),
		NewSearch:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new chart")),
		ClearFocus: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unfocus")),
	}
}

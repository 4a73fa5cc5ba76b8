// Package tui hosts the workspace on a terminal: it translates key events
// into panel-manager commands, drains the live ticker feed, and composites
// the panel canvas every frame.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"coindeck/internal/market"
	"coindeck/internal/workspace"
)

// Cells-to-canvas-units scale. One terminal cell is much wider than tall,
// so the vertical scale is larger to keep panels roughly square on screen.
const (
	unitsPerCol = 10.0
	unitsPerRow = 24.0
)

const historyCap = 240

type modalState int

const (
	modalNone modalState = iota
	modalSearch
	modalKinds
)

// Prefs carries the user preferences that outlive the session. An empty
// Exchange means the user never cycled one this session.
type Prefs struct {
	SnapToGrid bool
	Exchange   market.Exchange
}

// App is the bubbletea model. All workspace mutation goes through the
// controller; the app only holds view state.
type App struct {
	ctrl    *workspace.Controller
	catalog *market.Catalog
	ticks   <-chan market.Tick
	keys    keyMap
	log     *logrus.Entry

	onPrefs      func(Prefs)
	prefExchange market.Exchange

	width  int
	height int

	selectedID string
	offsetX    float64
	offsetY    float64

	modal        modalState
	search       textinput.Model
	results      []market.Instrument
	resultCursor int
	kindCursor   int

	last    map[string]market.Tick
	history map[string][]market.Tick

	status string
}

type tickMsg market.Tick

func New(ctrl *workspace.Controller, catalog *market.Catalog, ticks <-chan market.Tick, log *logrus.Entry) *App {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	search := textinput.New()
	search.Placeholder = "symbol or name"
	search.CharLimit = 24
	return &App{
		ctrl:    ctrl,
		catalog: catalog,
		ticks:   ticks,
		keys:    newKeyMap(),
		log:     log,
		search:  search,
		last:    make(map[string]market.Tick),
		history: make(map[string][]market.Tick),
	}
}

// OnPrefsChange registers the callback that persists the snap default and
// the preferred exchange whenever the user toggles either.
func (a *App) OnPrefsChange(fn func(Prefs)) { a.onPrefs = fn }

func (a *App) notifyPrefs() {
	if a.onPrefs != nil {
		a.onPrefs(Prefs{SnapToGrid: a.ctrl.SnapEnabled(), Exchange: a.prefExchange})
	}
}

func (a *App) Init() tea.Cmd {
	return a.waitForTick()
}

func (a *App) waitForTick() tea.Cmd {
	if a.ticks == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-a.ticks
		if !ok {
			return nil
		}
		return tickMsg(t)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tickMsg:
		a.applyTick(market.Tick(msg))
		return a, a.waitForTick()

	case tea.KeyMsg:
		switch a.modal {
		case modalSearch:
			return a.updateSearch(msg)
		case modalKinds:
			return a.updateKindPicker(msg)
		default:
			return a.updateWorkspace(msg)
		}
	}
	return a, nil
}

func (a *App) applyTick(t market.Tick) {
	a.last[t.Symbol] = t
	h := append(a.history[t.Symbol], t)
	if len(h) > historyCap {
		h = h[len(h)-historyCap:]
	}
	a.history[t.Symbol] = h
}

func (a *App) updateWorkspace(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Cycle):
		a.cycleSelection(1)
	case key.Matches(msg, a.keys.CycleBack):
		a.cycleSelection(-1)

	case key.Matches(msg, a.keys.ClearFocus):
		a.selectedID = ""
		a.ctrl.ClearFocus()

	case key.Matches(msg, a.keys.Resize):
		a.resizeSelected(msg.String())
	case key.Matches(msg, a.keys.Move):
		a.moveSelected(msg.String())

	case key.Matches(msg, a.keys.Snap):
		a.ctrl.SetSnap(!a.ctrl.SnapEnabled())
		a.status = fmt.Sprintf("snap %s", onOff(a.ctrl.SnapEnabled()))
		a.notifyPrefs()

	case key.Matches(msg, a.keys.Tile):
		a.ctrl.AutoTile(a.viewportUnits())
		a.offsetX, a.offsetY = 0, 0
		a.status = "tiled"
		a.log.WithField("panels", len(a.ctrl.Panels())).Debug("auto-tiled")

	case key.Matches(msg, a.keys.Link):
		if a.selectedID != "" {
			a.ctrl.ToggleLink(a.selectedID)
			if n := a.ctrl.GroupSize(a.selectedID); n > 0 {
				a.status = fmt.Sprintf("linked with %d other panel(s)", n-1)
			} else {
				a.status = "unlinked"
			}
		}

	case key.Matches(msg, a.keys.Exchange):
		if p, ok := a.ctrl.Panel(a.selectedID); ok {
			a.ctrl.SetExchange(p.ID, p.Exchange.Next())
			a.status = fmt.Sprintf("exchange %s", p.Exchange)
			a.prefExchange = p.Exchange
			a.notifyPrefs()
		}

	case key.Matches(msg, a.keys.Timeframe):
		if p, ok := a.ctrl.Panel(a.selectedID); ok {
			a.ctrl.SetTimeframe(p.ID, p.Timeframe.Next())
			a.status = fmt.Sprintf("timeframe %s", p.Timeframe)
		}

	case key.Matches(msg, a.keys.Add):
		a.modal = modalKinds
		a.kindCursor = 0

	case key.Matches(msg, a.keys.Remove):
		if a.selectedID != "" {
			a.ctrl.RemovePanel(a.selectedID)
			a.selectedID = a.ctrl.FrontID()
			a.status = "panel removed"
		}

	case key.Matches(msg, a.keys.Search):
		if a.selectedID != "" {
			a.openSearch(a.selectedID)
		}
	case key.Matches(msg, a.keys.NewSearch):
		a.openSearch("")
	}
	return a, nil
}

// cycleSelection moves the selection through the panel list and raises the
// newly selected panel, the keyboard analog of a pointer-down.
func (a *App) cycleSelection(step int) {
	panels := a.ctrl.Panels()
	if len(panels) == 0 {
		return
	}
	idx := -1
	for i, p := range panels {
		if p.ID == a.selectedID {
			idx = i
			break
		}
	}
	idx = ((idx+step)%len(panels) + len(panels)) % len(panels)
	a.selectedID = panels[idx].ID
	a.ctrl.BringToFront(a.selectedID)
	a.scrollToSelected()
}

func (a *App) moveSelected(k string) {
	if a.selectedID == "" {
		return
	}
	var d workspace.Delta
	switch k {
	case "up":
		d.Y = -workspace.GridSize
	case "down":
		d.Y = workspace.GridSize
	case "left":
		d.X = -workspace.GridSize
	case "right":
		d.X = workspace.GridSize
	}
	a.ctrl.Drag(a.selectedID, d)
	a.scrollToSelected()
}

func (a *App) resizeSelected(k string) {
	if a.selectedID == "" {
		return
	}
	var dw, dh float64
	switch k {
	case "shift+up":
		dh = -workspace.GridSize
	case "shift+down":
		dh = workspace.GridSize
	case "shift+left":
		dw = -workspace.GridSize
	case "shift+right":
		dw = workspace.GridSize
	}
	a.ctrl.Resize(a.selectedID, dw, dh)
}

func (a *App) viewportUnits() (float64, float64) {
	rows := a.height - 2 // status bar + footer
	if rows < 3 {
		rows = 3
	}
	return float64(a.width) * unitsPerCol, float64(rows) * unitsPerRow
}

// scrollToSelected pans the viewport so the selected panel stays visible,
// clamped to the computed canvas extent.
func (a *App) scrollToSelected() {
	p, ok := a.ctrl.Panel(a.selectedID)
	if !ok {
		return
	}
	vw, vh := a.viewportUnits()
	g := p.Geometry

	if g.X < a.offsetX {
		a.offsetX = g.X
	} else if g.X+g.Width > a.offsetX+vw {
		a.offsetX = g.X + g.Width - vw
	}
	if g.Y < a.offsetY {
		a.offsetY = g.Y
	} else if g.Y+g.Height > a.offsetY+vh {
		a.offsetY = g.Y + g.Height - vh
	}

	ext := a.ctrl.CanvasExtent()
	if a.offsetX > ext.Width-vw {
		a.offsetX = ext.Width - vw
	}
	if a.offsetY > ext.Height-vh {
		a.offsetY = ext.Height - vh
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

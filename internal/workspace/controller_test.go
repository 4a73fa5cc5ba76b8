package workspace

import (
	"errors"
	"testing"
)

type memStore struct {
	layouts map[string]string
	saves   int
	failAll bool
}

func newMemStore() *memStore { return &memStore{layouts: map[string]string{}} }

func (s *memStore) SaveLayout(name, payload string) error {
	if s.failAll {
		return errors.New("disk full")
	}
	s.saves++
	s.layouts[name] = payload
	return nil
}

func (s *memStore) LoadLayout(name string) (string, error) {
	return s.layouts[name], nil
}

func newTestController(store *memStore) *Controller {
	c := New(store, testResolver(), nil, "default", true)
	c.Load("BTCUSDT")
	return c
}

func TestLoadFallsBackToDefaultLayout(t *testing.T) {
	c := newTestController(newMemStore())
	panels := c.Panels()
	if len(panels) != 2 {
		t.Fatalf("starter layout has %d panels, want 2", len(panels))
	}
	if panels[0].Kind != KindChart || panels[1].Kind != KindOrderBook {
		t.Fatalf("starter kinds = %s, %s", panels[0].Kind, panels[1].Kind)
	}
	if c.FrontID() != "" {
		t.Fatalf("fresh workspace has focus %q", c.FrontID())
	}
}

func TestLoadFiltersThenFallsBack(t *testing.T) {
	store := newMemStore()
	store.layouts["default"] = `{"schemaVersion":1,"panels":[
		{"id":"a","kind":"chart","symbol":"ZZZINVALID","timeframe":"1h","exchange":"binance","x":0,"y":0,"width":300,"height":300}
	]}`
	c := New(store, testResolver(), nil, "default", false)
	c.Load("BTCUSDT")
	if len(c.Panels()) != 2 {
		t.Fatalf("expected default layout after filtering, got %d panels", len(c.Panels()))
	}
}

func TestLoadRestoresPersistedLayout(t *testing.T) {
	store := newMemStore()
	first := newTestController(store)
	first.AddPanel(KindNews)
	ids := make([]string, 0)
	for _, p := range first.Panels() {
		ids = append(ids, p.ID)
	}

	second := New(store, testResolver(), nil, "default", true)
	second.Load("BTCUSDT")
	if len(second.Panels()) != len(ids) {
		t.Fatalf("restored %d panels, want %d", len(second.Panels()), len(ids))
	}
	for i, p := range second.Panels() {
		if p.ID != ids[i] {
			t.Fatalf("panel order changed: %s vs %s", p.ID, ids[i])
		}
	}
}

func TestAddPanelAppendsWithoutFocus(t *testing.T) {
	c := newTestController(newMemStore())
	c.BringToFront(c.Panels()[0].ID)
	front := c.FrontID()

	p := c.AddPanel(KindWatchlist)
	if got := c.Panels()[len(c.Panels())-1]; got.ID != p.ID {
		t.Fatalf("new panel not appended at end")
	}
	if c.FrontID() != front {
		t.Fatalf("new panel stole focus")
	}
	if p.Instrument.Symbol != "BTCUSDT" {
		t.Fatalf("new panel instrument = %s", p.Instrument.Symbol)
	}
}

func TestRemoveFrontPanelClearsFocus(t *testing.T) {
	c := newTestController(newMemStore())
	target := c.Panels()[0]
	other := c.Panels()[1]

	c.BringToFront(target.ID)
	c.RemovePanel(target.ID)
	if c.FrontID() != "" {
		t.Fatalf("focus = %q after removing front panel, want none", c.FrontID())
	}
	if _, ok := c.Panel(target.ID); ok {
		t.Fatalf("removed panel still present")
	}

	c.BringToFront(other.ID)
	c.RemovePanel("no-such-id")
	if c.FrontID() != other.ID {
		t.Fatalf("removing unknown id disturbed focus")
	}
}

func TestDragHonorsSnapToggle(t *testing.T) {
	c := newTestController(newMemStore())
	p := c.Panels()[0]
	c.UpdateGeometry(p.ID, Geometry{X: 100, Y: 100, Width: 300, Height: 300})

	c.SetSnap(true)
	c.Drag(p.ID, Delta{X: 13, Y: 7})
	if p.Geometry.X != 120 || p.Geometry.Y != 100 {
		t.Fatalf("snapped drag landed at (%v,%v), want (120,100)", p.Geometry.X, p.Geometry.Y)
	}

	c.SetSnap(false)
	c.Drag(p.ID, Delta{X: 13, Y: 7})
	if p.Geometry.X != 133 || p.Geometry.Y != 107 {
		t.Fatalf("raw drag landed at (%v,%v), want (133,107)", p.Geometry.X, p.Geometry.Y)
	}
}

func TestResizeClampsAtMinimum(t *testing.T) {
	c := newTestController(newMemStore())
	p := c.Panels()[0]
	c.Resize(p.ID, -100000, -100000)
	if p.Geometry.Width != MinPanelWidth || p.Geometry.Height != MinPanelHeight {
		t.Fatalf("resize below minimum not clamped: %+v", p.Geometry)
	}
}

func TestChangeInstrumentFansOutToGroup(t *testing.T) {
	c := newTestController(newMemStore())
	a, b := c.Panels()[0], c.Panels()[1]
	free := c.AddPanel(KindAlerts)

	c.ToggleLink(a.ID)
	c.ToggleLink(b.ID)
	if n := c.GroupSize(a.ID); n != 2 {
		t.Fatalf("group size = %d, want 2", n)
	}
	if n := c.GroupSize(free.ID); n != 0 {
		t.Fatalf("unlinked group size = %d, want 0", n)
	}

	eth, _ := testResolver().Resolve("ETHUSDT")
	c.ChangeInstrument(a.ID, eth)
	if a.Instrument.Symbol != "ETHUSDT" || b.Instrument.Symbol != "ETHUSDT" {
		t.Fatalf("group not synchronized: %s / %s", a.Instrument.Symbol, b.Instrument.Symbol)
	}
	if free.Instrument.Symbol != "BTCUSDT" {
		t.Fatalf("unlinked panel changed: %s", free.Instrument.Symbol)
	}
}

func TestChangeInstrumentEmptyIDCreatesPanel(t *testing.T) {
	c := newTestController(newMemStore())
	before := len(c.Panels())

	eth, _ := testResolver().Resolve("ETHUSDT")
	c.ChangeInstrument("", eth)
	panels := c.Panels()
	if len(panels) != before+1 {
		t.Fatalf("panel count = %d, want %d", len(panels), before+1)
	}
	created := panels[len(panels)-1]
	if created.Kind != KindChart || created.Instrument.Symbol != "ETHUSDT" {
		t.Fatalf("created panel = %s on %s", created.Kind, created.Instrument.Symbol)
	}
}

func TestSearchAttribution(t *testing.T) {
	c := newTestController(newMemStore())
	a := c.Panels()[0]
	eth, _ := testResolver().Resolve("ETHUSDT")

	// Panel-scoped search mutates the origin panel.
	c.OpenSearch(a.ID)
	if origin, open := c.SearchOrigin(); !open || origin != a.ID {
		t.Fatalf("origin = %q open=%v", origin, open)
	}
	c.CommitSearch(eth)
	if a.Instrument.Symbol != "ETHUSDT" {
		t.Fatalf("panel search did not mutate origin")
	}
	if _, open := c.SearchOrigin(); open {
		t.Fatalf("search still open after commit")
	}

	// Workspace-level search creates a new panel.
	before := len(c.Panels())
	c.OpenSearch("")
	c.CommitSearch(eth)
	if len(c.Panels()) != before+1 {
		t.Fatalf("workspace search did not create a panel")
	}

	// Commit without an open search is a no-op.
	before = len(c.Panels())
	c.CommitSearch(eth)
	if len(c.Panels()) != before {
		t.Fatalf("stray commit created a panel")
	}
}

func TestAutoTileAppliesAtomically(t *testing.T) {
	c := newTestController(newMemStore())
	c.AddPanel(KindNews)
	c.AddPanel(KindHeatmap)
	c.AddPanel(KindLiquidations)

	c.AutoTile(1200, 600)
	panels := c.Panels()
	for i := range panels {
		for j := i + 1; j < len(panels); j++ {
			if overlaps(panels[i].Geometry, panels[j].Geometry) {
				t.Fatalf("panels %d and %d overlap after tile", i, j)
			}
		}
	}
}

func TestEveryMutationWritesThrough(t *testing.T) {
	store := newMemStore()
	c := newTestController(store)
	base := store.saves

	p := c.AddPanel(KindNews)
	c.Drag(p.ID, Delta{X: 20, Y: 0})
	c.Resize(p.ID, 10, 10)
	c.ToggleLink(p.ID)
	c.AutoTile(1200, 600)
	c.RemovePanel(p.ID)

	if store.saves-base != 6 {
		t.Fatalf("expected 6 write-throughs, got %d", store.saves-base)
	}
}

func TestPersistFailureIsNonFatal(t *testing.T) {
	store := newMemStore()
	c := newTestController(store)
	store.failAll = true

	p := c.AddPanel(KindNews)
	if _, ok := c.Panel(p.ID); !ok {
		t.Fatalf("in-memory workspace lost panel on persist failure")
	}
	beforeX := p.Geometry.X
	c.Drag(p.ID, Delta{X: 20, Y: 0})
	if p.Geometry.X != beforeX+20 {
		t.Fatalf("drag not applied after persist failure")
	}
}

package workspace

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"coindeck/internal/market"
)

// LayoutStore is the durable side of the persistence adapter. Load returns
// an empty payload when no layout has been stored under the name yet.
type LayoutStore interface {
	SaveLayout(name, payload string) error
	LoadLayout(name string) (string, error)
}

// Controller owns the panel list and is the only mutator of workspace state.
// It runs on the UI event loop: every method is synchronous and none blocks,
// so no locking discipline is needed. Every committed mutation writes the
// layout through to the store; a failed write is logged and the in-memory
// workspace stays authoritative.
type Controller struct {
	panels     []*Panel
	z          zOrder
	snap       bool
	store      LayoutStore
	resolver   InstrumentResolver
	layoutName string
	log        *logrus.Entry

	current   market.Instrument
	timeframe Timeframe

	// searchOrigin attributes an in-flight instrument search to the panel
	// that opened it; empty means workspace-level (commit creates a panel).
	searchOrigin string
	searchOpen   bool
}

func New(store LayoutStore, resolver InstrumentResolver, log *logrus.Entry, layoutName string, snap bool) *Controller {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Controller{
		store:      store,
		resolver:   resolver,
		layoutName: layoutName,
		snap:       snap,
		log:        log,
		timeframe:  Timeframe1h,
	}
}

// Load restores the persisted layout, falling back to the default starter
// layout when nothing valid survives validation. Never fails: invalid
// persisted state degrades, it does not error out.
func (c *Controller) Load(defaultSymbol string) {
	in, ok := c.resolver.Resolve(defaultSymbol)
	if !ok {
		// Degenerate catalog; keep the symbol so panes can still label it.
		in = market.Instrument{Symbol: defaultSymbol, DisplayName: defaultSymbol}
	}
	c.current = in

	blob, err := c.store.LoadLayout(c.layoutName)
	if err != nil {
		c.log.WithError(err).Warn("load layout")
	}
	var panels []*Panel
	if blob != "" {
		panels, err = Deserialize(blob, c.resolver)
		if err != nil {
			c.log.WithError(err).Warn("invalid persisted layout, using default")
		}
	}
	if len(panels) == 0 {
		panels = DefaultLayout(in)
	}
	c.panels = panels
	c.z.ClearFocus()
}

// Panels returns the panel list in creation (stacking) order. The front
// panel is tracked separately; callers render it last.
func (c *Controller) Panels() []*Panel { return c.panels }

// Panel finds a panel by id.
func (c *Controller) Panel(id string) (*Panel, bool) {
	for _, p := range c.panels {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// FrontID returns the focused panel id, or "".
func (c *Controller) FrontID() string { return c.z.FrontID() }

// BringToFront raises a panel; invoked on any pointer interaction start.
func (c *Controller) BringToFront(id string) {
	if _, ok := c.Panel(id); ok {
		c.z.BringToFront(id)
	}
}

// ClearFocus drops focus, for interactions on empty canvas space.
func (c *Controller) ClearFocus() { c.z.ClearFocus() }

// SnapEnabled reports the workspace-wide snap toggle.
func (c *Controller) SnapEnabled() bool { return c.snap }

// SetSnap flips grid snapping. Session state, not persisted with the layout.
func (c *Controller) SetSnap(on bool) { c.snap = on }

// Timeframe returns the global default candle interval for new panels.
func (c *Controller) Timeframe() Timeframe { return c.timeframe }

// CanvasExtent recomputes the virtual canvas size for the current panels.
func (c *Controller) CanvasExtent() Extent {
	return ComputeCanvasExtent(c.panels, CanvasMargin)
}

// AddPanel appends a new panel hosting the given widget kind, placed on a
// small cascade so stacked panels stay discoverable. The new panel does not
// auto-focus; it is raised on first interaction like any other.
func (c *Controller) AddPanel(kind PanelKind) *Panel {
	step := float64(len(c.panels)%8) * 2 * GridSize
	p := &Panel{
		ID:         uuid.NewString(),
		Kind:       kind,
		Instrument: c.current,
		Timeframe:  c.timeframe,
		Geometry:   Geometry{X: 40 + step, Y: 40 + step, Width: 480, Height: 360},
		Exchange:   market.DefaultExchange,
	}
	c.panels = append(c.panels, p)
	c.persist()
	return p
}

// RemovePanel destroys a panel. Its link group simply shrinks; if it was the
// front panel focus resets to none, never to an arbitrary sibling.
func (c *Controller) RemovePanel(id string) {
	for i, p := range c.panels {
		if p.ID != id {
			continue
		}
		c.panels = append(c.panels[:i], c.panels[i+1:]...)
		if c.z.FrontID() == id {
			c.z.ClearFocus()
		}
		c.persist()
		return
	}
}

// Drag applies a drag delta to one panel, snapping if enabled.
func (c *Controller) Drag(id string, d Delta) {
	p, ok := c.Panel(id)
	if !ok {
		return
	}
	p.Geometry.X, p.Geometry.Y = ApplyDragDelta(p.Geometry.X, p.Geometry.Y, d, c.snap)
	c.persist()
}

// Resize grows or shrinks one panel, clamped at the minimum size.
func (c *Controller) Resize(id string, dw, dh float64) {
	p, ok := c.Panel(id)
	if !ok {
		return
	}
	s := ClampSize(Size{Width: p.Geometry.Width + dw, Height: p.Geometry.Height + dh})
	p.Geometry.Width, p.Geometry.Height = s.Width, s.Height
	c.persist()
}

// UpdateGeometry replaces a panel's rectangle wholesale, clamping the size.
func (c *Controller) UpdateGeometry(id string, g Geometry) {
	p, ok := c.Panel(id)
	if !ok {
		return
	}
	s := ClampSize(Size{Width: g.Width, Height: g.Height})
	p.Geometry = Geometry{X: g.X, Y: g.Y, Width: s.Width, Height: s.Height}
	c.persist()
}

// ToggleLink joins or leaves the shared link group.
func (c *Controller) ToggleLink(id string) {
	p, ok := c.Panel(id)
	if !ok {
		return
	}
	toggleLink(p)
	c.persist()
}

// GroupSize counts the panels in a panel's link group, itself included.
// Zero for unlinked panels.
func (c *Controller) GroupSize(id string) int {
	p, ok := c.Panel(id)
	if !ok {
		return 0
	}
	return len(groupMembers(c.panels, p))
}

// ChangeInstrument routes an instrument change. With a panel id the change
// fans out across that panel's link group (or just the panel when unlinked);
// with an empty id a brand-new chart panel is created instead.
func (c *Controller) ChangeInstrument(id string, in market.Instrument) {
	if id == "" {
		c.current = in
		c.AddPanel(KindChart)
		return
	}
	p, ok := c.Panel(id)
	if !ok {
		return
	}
	propagateInstrument(c.panels, p, in)
	c.persist()
}

// SetExchange switches one panel's data source.
func (c *Controller) SetExchange(id string, ex market.Exchange) {
	p, ok := c.Panel(id)
	if !ok || !ex.Valid() {
		return
	}
	p.Exchange = ex
	c.persist()
}

// SetTimeframe switches one panel's candle interval and makes it the global
// default for panels created afterwards.
func (c *Controller) SetTimeframe(id string, tf Timeframe) {
	p, ok := c.Panel(id)
	if !ok {
		return
	}
	p.Timeframe = tf
	c.timeframe = tf
	c.persist()
}

// AutoTile resets every panel to a computed non-overlapping grid within the
// target viewport. Atomic over the whole list; a zero panel set is a no-op.
func (c *Controller) AutoTile(containerWidth, containerHeight float64) {
	geoms := AutoTile(len(c.panels), containerWidth, containerHeight)
	if geoms == nil {
		return
	}
	for i, p := range c.panels {
		p.Geometry = geoms[i]
	}
	c.persist()
}

// OpenSearch records which panel an instrument search belongs to. An empty
// id marks a workspace-level search whose commit creates a new panel.
func (c *Controller) OpenSearch(panelID string) {
	c.searchOrigin = panelID
	c.searchOpen = true
}

// CancelSearch forgets the in-flight search attribution.
func (c *Controller) CancelSearch() {
	c.searchOrigin = ""
	c.searchOpen = false
}

// SearchOrigin returns the panel the open search is attributed to, and
// whether a search is open at all.
func (c *Controller) SearchOrigin() (string, bool) {
	return c.searchOrigin, c.searchOpen
}

// CommitSearch applies a chosen instrument to the search origin and closes
// the search.
func (c *Controller) CommitSearch(in market.Instrument) {
	origin, open := c.searchOrigin, c.searchOpen
	c.searchOrigin = ""
	c.searchOpen = false
	if !open {
		return
	}
	c.ChangeInstrument(origin, in)
}

// persist writes the layout through to the store. Best effort: failures are
// logged and never retried; the next mutation simply tries again.
func (c *Controller) persist() {
	payload, err := Serialize(c.panels)
	if err != nil {
		c.log.WithError(err).Warn("serialize layout")
		return
	}
	if err := c.store.SaveLayout(c.layoutName, payload); err != nil {
		c.log.WithError(err).Warn("persist layout")
	}
}

// Package workspace implements the panel manager: a free-form canvas of
// draggable, resizable widget panels with z-order, instrument link groups,
// grid auto-tiling and write-through layout persistence.
package workspace

import (
	"coindeck/internal/market"
)

// PanelKind selects which widget a panel hosts. The panel manager never
// inspects widget internals; the kind is only routed to a renderer.
type PanelKind string

const (
	KindChart          PanelKind = "chart"
	KindAdvancedChart  PanelKind = "advanced-chart"
	KindOrderBook      PanelKind = "order-book"
	KindWatchlist      PanelKind = "watchlist"
	KindAlerts         PanelKind = "alerts"
	KindPortfolio      PanelKind = "portfolio"
	KindMarketOverview PanelKind = "market-overview"
	KindLiquidations   PanelKind = "liquidations"
	KindAggregatedBook PanelKind = "aggregated-order-book"
	KindDepthChart     PanelKind = "depth-chart"
	KindHeatmap        PanelKind = "heatmap"
	KindNews           PanelKind = "news"
)

// Kinds lists every hostable widget, in picker order.
var Kinds = []PanelKind{
	KindChart, KindAdvancedChart, KindOrderBook, KindWatchlist, KindAlerts,
	KindPortfolio, KindMarketOverview, KindLiquidations, KindAggregatedBook,
	KindDepthChart, KindHeatmap, KindNews,
}

// Valid reports whether k names a known widget kind.
func (k PanelKind) Valid() bool {
	for _, x := range Kinds {
		if k == x {
			return true
		}
	}
	return false
}

// Timeframe is the candle interval. Carried uniformly on every panel even
// though only chart kinds read it.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
)

var Timeframes = []Timeframe{Timeframe1m, Timeframe5m, Timeframe15m, Timeframe1h, Timeframe4h, Timeframe1d}

// Next returns the timeframe after t in cycle order.
func (t Timeframe) Next() Timeframe {
	for i, x := range Timeframes {
		if t == x {
			return Timeframes[(i+1)%len(Timeframes)]
		}
	}
	return Timeframe1h
}

// Geometry is a panel rectangle in canvas units. The canvas is unbounded in
// both directions, so X and Y may be negative.
type Geometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Panel is one placed widget instance.
type Panel struct {
	ID         string
	Kind       PanelKind
	Instrument market.Instrument
	Timeframe  Timeframe
	Geometry   Geometry
	Exchange   market.Exchange
	// LinkGroup is nil when the panel is not linked. All panels sharing the
	// same non-nil value form one synchronization group.
	LinkGroup *string
}

// Linked reports whether the panel belongs to a link group.
func (p *Panel) Linked() bool { return p.LinkGroup != nil }

package panes

import (
	"fmt"
	"sort"
	"strings"

	"coindeck/internal/market"
	"coindeck/internal/workspace"
)

// MarketView is the read-only market state widget bodies draw from. Every
// body receives the hosting panel's {instrument, timeframe, exchange} via
// the panel itself and fetches nothing on its own.
type MarketView struct {
	Last    map[string]market.Tick
	History map[string][]market.Tick
}

// RenderBody draws the widget hosted by the panel into a width×height cell
// box. Unknown kinds render an empty body rather than failing.
func RenderBody(p *workspace.Panel, view MarketView, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	switch p.Kind {
	case workspace.KindChart, workspace.KindAdvancedChart:
		return renderChart(p, view, width, height)
	case workspace.KindOrderBook, workspace.KindAggregatedBook:
		return renderBook(p, view, height)
	case workspace.KindDepthChart:
		return renderDepth(p, view, width, height)
	case workspace.KindWatchlist:
		return renderWatchlist(view, height)
	case workspace.KindMarketOverview:
		return renderOverview(view, height)
	case workspace.KindAlerts:
		return renderAlerts(p, view)
	case workspace.KindPortfolio:
		return renderPortfolio(view, height)
	case workspace.KindLiquidations:
		return "waiting for liquidation events…"
	case workspace.KindHeatmap:
		return renderHeatmap(view, width, height)
	case workspace.KindNews:
		return renderNews(p)
	default:
		return ""
	}
}

func renderBook(p *workspace.Panel, view MarketView, height int) string {
	t, ok := view.Last[p.Instrument.Symbol]
	if !ok {
		return "waiting for ticks…"
	}
	// miniTicker carries no depth; show the session ladder around last.
	lines := []string{
		fmt.Sprintf("last   %s", fmtPrice(t.Price)),
		fmt.Sprintf("high   %s", fmtPrice(t.High)),
		fmt.Sprintf("low    %s", fmtPrice(t.Low)),
		fmt.Sprintf("open   %s", fmtPrice(t.Open)),
		fmt.Sprintf("vol    %.2f", t.Volume),
		fmt.Sprintf("chg    %+.2f%%", changePct(t)),
	}
	return clipLines(lines, height)
}

func renderDepth(p *workspace.Panel, view MarketView, width, height int) string {
	t, ok := view.Last[p.Instrument.Symbol]
	if !ok || t.High <= t.Low {
		return "waiting for ticks…"
	}
	// Position of last within the session range, drawn as a bar.
	frac := (t.Price - t.Low) / (t.High - t.Low)
	barW := width - 2
	if barW < 4 {
		barW = 4
	}
	filled := int(frac * float64(barW))
	if filled < 0 {
		filled = 0
	}
	if filled > barW {
		filled = barW
	}
	lines := []string{
		fmt.Sprintf("range %s – %s", fmtPrice(t.Low), fmtPrice(t.High)),
		"[" + strings.Repeat("█", filled) + strings.Repeat("░", barW-filled) + "]",
		fmt.Sprintf("last %s", fmtPrice(t.Price)),
	}
	return clipLines(lines, height)
}

func renderWatchlist(view MarketView, height int) string {
	if len(view.Last) == 0 {
		return "waiting for ticks…"
	}
	syms := make([]string, 0, len(view.Last))
	for s := range view.Last {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	lines := make([]string, 0, len(syms))
	for _, s := range syms {
		t := view.Last[s]
		lines = append(lines, fmt.Sprintf("%-10s %12s %+7.2f%%", s, fmtPrice(t.Price), changePct(t)))
	}
	return clipLines(lines, height)
}

func renderOverview(view MarketView, height int) string {
	if len(view.Last) == 0 {
		return "waiting for ticks…"
	}
	ticks := make([]market.Tick, 0, len(view.Last))
	for _, t := range view.Last {
		ticks = append(ticks, t)
	}
	sort.Slice(ticks, func(i, j int) bool { return changePct(ticks[i]) > changePct(ticks[j]) })
	lines := []string{"movers (24h)"}
	for _, t := range ticks {
		lines = append(lines, fmt.Sprintf("%-10s %+7.2f%%", t.Symbol, changePct(t)))
	}
	return clipLines(lines, height)
}

func renderAlerts(p *workspace.Panel, view MarketView) string {
	t, ok := view.Last[p.Instrument.Symbol]
	if !ok {
		return "no alerts configured"
	}
	return fmt.Sprintf("no alerts configured\nlast %s: %s", p.Instrument.Symbol, fmtPrice(t.Price))
}

func renderPortfolio(view MarketView, height int) string {
	if len(view.Last) == 0 {
		return "portfolio empty"
	}
	lines := []string{"holdings"}
	syms := make([]string, 0, len(view.Last))
	for s := range view.Last {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	for _, s := range syms {
		lines = append(lines, fmt.Sprintf("%-10s —", s))
	}
	return clipLines(lines, height)
}

func renderHeatmap(view MarketView, width, height int) string {
	if len(view.Last) == 0 {
		return "waiting for ticks…"
	}
	syms := make([]string, 0, len(view.Last))
	for s := range view.Last {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	var b strings.Builder
	col := 0
	for _, s := range syms {
		cell := "░░"
		if chg := changePct(view.Last[s]); chg > 0 {
			cell = "██"
		} else if chg < 0 {
			cell = "▒▒"
		}
		if col+3 > width {
			b.WriteString("\n")
			col = 0
		}
		b.WriteString(cell + " ")
		col += 3
	}
	return b.String()
}

func renderNews(p *workspace.Panel) string {
	return fmt.Sprintf("no headlines for %s", p.Instrument.BaseAsset)
}

func changePct(t market.Tick) float64 {
	if t.Open == 0 {
		return 0
	}
	return (t.Price - t.Open) / t.Open * 100
}

func fmtPrice(v float64) string {
	switch {
	case v >= 1000:
		return fmt.Sprintf("%.2f", v)
	case v >= 1:
		return fmt.Sprintf("%.4f", v)
	default:
		return fmt.Sprintf("%.6f", v)
	}
}

func clipLines(lines []string, height int) string {
	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

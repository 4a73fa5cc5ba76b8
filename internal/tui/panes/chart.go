package panes

import (
	"fmt"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"coindeck/internal/workspace"
)

var (
	chartLineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
	chartAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	chartLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

func renderChart(p *workspace.Panel, view MarketView, width, height int) string {
	hist := view.History[p.Instrument.Symbol]
	if len(hist) < 2 {
		return "collecting price history…"
	}

	header := ""
	if t, ok := view.Last[p.Instrument.Symbol]; ok {
		header = fmt.Sprintf("%s  %+0.2f%%", fmtPrice(t.Price), changePct(t))
		if p.Kind == workspace.KindAdvancedChart {
			header += fmt.Sprintf("  H %s  L %s  V %.0f", fmtPrice(t.High), fmtPrice(t.Low), t.Volume)
		}
	}

	chartHeight := height - 1
	if chartHeight < 3 {
		return header
	}

	chart := tslc.New(width, chartHeight)
	chart.SetStyle(chartLineStyle)
	chart.AxisStyle = chartAxisStyle
	chart.LabelStyle = chartLabelStyle

	minV, maxV := hist[0].Price, hist[0].Price
	for _, t := range hist {
		if t.Price < minV {
			minV = t.Price
		}
		if t.Price > maxV {
			maxV = t.Price
		}
	}
	if minV == maxV {
		minV, maxV = minV*0.999, maxV*1.001
	}
	chart.SetTimeRange(hist[0].At, hist[len(hist)-1].At)
	chart.SetViewTimeRange(hist[0].At, hist[len(hist)-1].At)
	chart.SetYRange(minV, maxV)
	chart.SetViewYRange(minV, maxV)

	for _, t := range hist {
		chart.Push(tslc.TimePoint{Time: t.At, Value: t.Price})
	}
	chart.DrawBraille()

	return header + "\n" + chart.View()
}

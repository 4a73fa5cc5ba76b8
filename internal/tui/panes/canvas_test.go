package panes

import (
	"strings"
	"testing"

	"coindeck/internal/market"
	"coindeck/internal/workspace"
)

func TestCanvasPlaceAndClip(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Place(2, 1, "ab\ncd")
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("canvas has %d lines", len(lines))
	}
	if lines[1] != "  ab      " {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if lines[2] != "  cd      " {
		t.Fatalf("row 2 = %q", lines[2])
	}

	// Off-canvas rows and columns are clipped, not wrapped.
	c.Place(8, 2, "wide")
	lines = strings.Split(c.String(), "\n")
	if lines[2] != "  cd    wi" {
		t.Fatalf("clipped row = %q", lines[2])
	}
	c.Place(-2, 0, "xyz")
	lines = strings.Split(c.String(), "\n")
	if lines[0] != "z         " {
		t.Fatalf("left-clipped row = %q", lines[0])
	}
}

func TestCanvasLaterPlacementsPaintOver(t *testing.T) {
	c := NewCanvas(6, 1)
	c.Place(0, 0, "AAAA")
	c.Place(2, 0, "BB")
	if got := c.String(); got != "AABB  " {
		t.Fatalf("z-order paint = %q", got)
	}
}

func TestChromeRenderShape(t *testing.T) {
	g := workspace.MainLinkGroup
	p := &workspace.Panel{
		Kind:       workspace.KindChart,
		Instrument: market.Instrument{Symbol: "BTCUSDT"},
		Timeframe:  workspace.Timeframe1h,
		Exchange:   market.ExchangeBinance,
		LinkGroup:  &g,
	}
	out := Chrome{Panel: p, GroupSize: 2, Front: true, Body: "hello"}.Render(30, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("rendered %d lines, want 6", len(lines))
	}
	if !strings.Contains(out, "BTCUSDT") || !strings.Contains(out, "chart") {
		t.Fatalf("title missing from chrome:\n%s", out)
	}
	if !strings.Contains(out, "⛓2") {
		t.Fatalf("link badge missing:\n%s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("body missing:\n%s", out)
	}
}

func TestRenderBodyCoversEveryKind(t *testing.T) {
	view := MarketView{
		Last: map[string]market.Tick{
			"BTCUSDT": {Symbol: "BTCUSDT", Price: 64000, Open: 63000, High: 65000, Low: 62000, Volume: 1200},
		},
	}
	for _, kind := range workspace.Kinds {
		p := &workspace.Panel{Kind: kind, Instrument: market.Instrument{Symbol: "BTCUSDT", BaseAsset: "BTC"}}
		// Must never panic and never exceed the requested height.
		out := RenderBody(p, view, 40, 8)
		if n := len(strings.Split(out, "\n")); n > 8 {
			t.Fatalf("%s body is %d lines, max 8", kind, n)
		}
	}
}

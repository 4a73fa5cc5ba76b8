package workspace

import (
	"math"
	"testing"
)

func overlaps(a, b Geometry) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func TestAutoTileFiveOnWideViewport(t *testing.T) {
	geoms := AutoTile(5, 1200, 600)
	if len(geoms) != 5 {
		t.Fatalf("got %d geometries", len(geoms))
	}

	// ceil(sqrt(5)) = 3 columns, ceil(5/3) = 2 rows.
	xs := map[float64]bool{}
	ys := map[float64]bool{}
	for _, g := range geoms {
		xs[g.X] = true
		ys[g.Y] = true
	}
	if len(xs) != 3 || len(ys) != 2 {
		t.Fatalf("grid is %dx%d, want 3x2", len(xs), len(ys))
	}

	for i := range geoms {
		for j := i + 1; j < len(geoms); j++ {
			if overlaps(geoms[i], geoms[j]) {
				t.Fatalf("panels %d and %d overlap: %+v %+v", i, j, geoms[i], geoms[j])
			}
		}
	}
}

func TestAutoTileNoOverlapAnyCount(t *testing.T) {
	for n := 1; n <= 12; n++ {
		geoms := AutoTile(n, 1920, 1080)
		for i := range geoms {
			g := geoms[i]
			if g.X < 0 || g.Y < 0 || g.X+g.Width > 1920+1e-6 || g.Y+g.Height > 1080+1e-6 {
				t.Fatalf("n=%d: panel %d escapes viewport: %+v", n, i, g)
			}
			for j := i + 1; j < len(geoms); j++ {
				if overlaps(g, geoms[j]) {
					t.Fatalf("n=%d: panels %d and %d overlap", n, i, j)
				}
			}
		}
	}
}

func TestAutoTileSinglePanelFillsViewport(t *testing.T) {
	geoms := AutoTile(1, 1000, 800)
	g := geoms[0]
	if g.X != TileGap || g.Y != TileGap {
		t.Fatalf("origin = (%v,%v)", g.X, g.Y)
	}
	if math.Abs(g.Width-(1000-2*TileGap)) > 1e-9 || math.Abs(g.Height-(800-2*TileGap)) > 1e-9 {
		t.Fatalf("size = %vx%v", g.Width, g.Height)
	}
}

func TestAutoTileRespectsMinimumCellSize(t *testing.T) {
	for _, g := range AutoTile(9, 400, 300) {
		if g.Width < MinPanelWidth || g.Height < MinPanelHeight {
			t.Fatalf("cell below minimum: %+v", g)
		}
	}
}

func TestAutoTileZeroPanels(t *testing.T) {
	if geoms := AutoTile(0, 1200, 600); geoms != nil {
		t.Fatalf("expected nil for zero panels, got %v", geoms)
	}
}

package workspace

import "math"

// TileGap separates auto-tiled panels, in canvas units.
const TileGap = 16.0

// AutoTile computes a near-square grid over the target viewport and assigns
// every panel a non-overlapping cell, row-major in list order. It is a
// "reset to grid" operation: existing geometry is replaced wholesale and no
// attempt is made to preserve aspect ratios. Returns one geometry per panel;
// the caller applies them atomically.
func AutoTile(n int, containerWidth, containerHeight float64) []Geometry {
	if n <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))

	cellW := (containerWidth - float64(cols+1)*TileGap) / float64(cols)
	cellH := (containerHeight - float64(rows+1)*TileGap) / float64(rows)

	out := make([]Geometry, n)
	for i := 0; i < n; i++ {
		col := i % cols
		row := i / cols
		out[i] = Geometry{
			X:      TileGap + float64(col)*(cellW+TileGap),
			Y:      TileGap + float64(row)*(cellH+TileGap),
			Width:  math.Max(cellW, MinPanelWidth),
			Height: math.Max(cellH, MinPanelHeight),
		}
	}
	return out
}

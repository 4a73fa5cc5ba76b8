package workspace

import "math"

// Layout constants, in canvas units.
const (
	MinPanelWidth  = 150.0
	MinPanelHeight = 150.0
	GridSize       = 20.0
	CanvasMargin   = 200.0

	// Baseline canvas size when no panel reaches past it.
	BaseCanvasWidth  = 1920.0
	BaseCanvasHeight = 1080.0
)

// Delta is a drag displacement.
type Delta struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Extent is the computed canvas size.
type Extent struct {
	Width  float64
	Height float64
}

// ApplyDragDelta moves a position by delta. With snap enabled each resulting
// coordinate is quantized to the nearest grid multiple after the delta is
// applied. Coordinates are never clamped; the canvas grows to fit (see
// ComputeCanvasExtent) and negative positions are legal.
func ApplyDragDelta(x, y float64, d Delta, snap bool) (float64, float64) {
	nx, ny := x+d.X, y+d.Y
	if snap {
		nx = SnapCoord(nx)
		ny = SnapCoord(ny)
	}
	return nx, ny
}

// SnapCoord rounds v to the nearest multiple of the grid size.
func SnapCoord(v float64) float64 {
	return math.Round(v/GridSize) * GridSize
}

// ClampSize floors a size at the panel minimum. Called on every in-progress
// resize event so a panel never renders below the minimum, even mid-drag.
func ClampSize(s Size) Size {
	return Size{
		Width:  math.Max(s.Width, MinPanelWidth),
		Height: math.Max(s.Height, MinPanelHeight),
	}
}

// ComputeCanvasExtent returns a canvas size large enough to hold every panel
// with margin units of slack for further dragging, never smaller than the
// baseline. Must be recomputed whenever any panel geometry changes.
func ComputeCanvasExtent(panels []*Panel, margin float64) Extent {
	ext := Extent{Width: BaseCanvasWidth, Height: BaseCanvasHeight}
	for _, p := range panels {
		if right := p.Geometry.X + p.Geometry.Width + margin; right > ext.Width {
			ext.Width = right
		}
		if bottom := p.Geometry.Y + p.Geometry.Height + margin; bottom > ext.Height {
			ext.Height = bottom
		}
	}
	return ext
}

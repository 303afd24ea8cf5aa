// Package compare implements the before/after comparison control: a reveal
// position driven by pointer drags, the window-scope input hub that delivers
// those drags, and the clipping used to compose the two images.
package compare

import "math"

// DefaultPosition is where a new slider starts.
const DefaultPosition = 50.0

// Bounds is the horizontal extent of the compare surface.
type Bounds struct {
	Left  float64
	Width float64
}

// Split converts a pointer x coordinate into a reveal percentage in [0, 100].
func Split(x float64, b Bounds) float64 {
	if b.Width <= 0 || math.IsNaN(x) || math.IsNaN(b.Width) || math.IsNaN(b.Left) {
		return 0
	}
	return clamp(100 * (x - b.Left) / b.Width)
}

// Divider returns the first column that belongs to the before image for a
// surface width and reveal percentage.
func Divider(width int, pos float64) int {
	if width <= 0 {
		return 0
	}
	col := int(math.Round(clamp(pos) / 100 * float64(width)))
	if col > width {
		col = width
	}
	return col
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

package compare

import (
	"math"
	"testing"
)

func TestSplit(t *testing.T) {
	b := Bounds{Left: 100, Width: 400}
	tests := []struct {
		name     string
		x        float64
		bounds   Bounds
		expected float64
	}{
		{"left of surface", 50, b, 0},
		{"left edge", 100, b, 0},
		{"middle", 300, b, 50},
		{"quarter", 200, b, 25},
		{"right edge", 500, b, 100},
		{"right of surface", 900, b, 100},
		{"zero width", 300, Bounds{Left: 100}, 0},
		{"negative width", 300, Bounds{Left: 100, Width: -10}, 0},
		{"NaN x", math.NaN(), b, 0},
		{"NaN width", 300, Bounds{Left: 100, Width: math.NaN()}, 0},
		{"NaN left", 300, Bounds{Left: math.NaN(), Width: 400}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Split(tt.x, tt.bounds); got != tt.expected {
				t.Errorf("Split(%v) = %v, want %v", tt.x, got, tt.expected)
			}
		})
	}
}

func TestDivider(t *testing.T) {
	tests := []struct {
		width    int
		pos      float64
		expected int
	}{
		{10, 0, 0},
		{10, 50, 5},
		{10, 100, 10},
		{10, 34, 3},
		{10, 36, 4},
		{10, 150, 10},
		{0, 50, 0},
	}

	for _, tt := range tests {
		if got := Divider(tt.width, tt.pos); got != tt.expected {
			t.Errorf("Divider(%d, %v) = %d, want %d", tt.width, tt.pos, got, tt.expected)
		}
	}
}

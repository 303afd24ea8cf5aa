package compare

import "fmt"

// Clip composes two equally sized grids. Columns left of the divider come
// from after, the rest from before. after is never rescaled, only cut.
func Clip[T any](after, before [][]T, pos float64) ([][]T, error) {
	if len(after) != len(before) {
		return nil, fmt.Errorf("row count mismatch: %d vs %d", len(after), len(before))
	}

	out := make([][]T, len(after))
	for y := range after {
		a, b := after[y], before[y]
		if len(a) != len(b) {
			return nil, fmt.Errorf("row %d width mismatch: %d vs %d", y, len(a), len(b))
		}
		div := Divider(len(a), pos)
		row := make([]T, len(a))
		copy(row[:div], a[:div])
		copy(row[div:], b[div:])
		out[y] = row
	}
	return out, nil
}

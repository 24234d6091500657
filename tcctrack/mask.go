package tcctrack

import "github.com/pkg/errors"

// Threshold converts a continuous probability grid into a binary
// detection mask: true where probability exceeds threshold.
func Threshold(probability *Grid, threshold float64) (*Mask, error) {
	if probability == nil {
		return nil, errors.New("probability grid is nil")
	}
	rows, cols := probability.Rows(), probability.Cols()
	mask := NewMask(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if probability.At(r, c) > threshold {
				mask.Set(r, c, true)
			}
		}
	}
	return mask, nil
}

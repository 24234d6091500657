package tcctrack

import "github.com/pkg/errors"

// Grid is a dense row-major H×W field of float64 samples (brightness
// temperature, latitude, longitude or cloud probability).
// Treat a Grid as immutable once constructed.
type Grid struct {
	rows int
	cols int
	data []float64
}

// NewGrid wraps row-major data into a Grid. The data slice is retained,
// not copied.
func NewGrid(rows, cols int, data []float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, errors.Errorf("grid data length %d does not match %dx%d", len(data), rows, cols)
	}
	return &Grid{rows: rows, cols: cols, data: data}, nil
}

// Rows returns grid's row count
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns grid's column count
func (g *Grid) Cols() int {
	return g.cols
}

// At returns the sample at row r, column c
func (g *Grid) At(r, c int) float64 {
	return g.data[r*g.cols+c]
}

// SameShape reports whether both grids have identical dimensions
func (g *Grid) SameShape(o *Grid) bool {
	return o != nil && g.rows == o.rows && g.cols == o.cols
}

// Mask is a binary detection grid produced by thresholding
type Mask struct {
	rows int
	cols int
	data []bool
}

// NewMask allocates an all-false mask
func NewMask(rows, cols int) *Mask {
	return &Mask{rows: rows, cols: cols, data: make([]bool, rows*cols)}
}

// Rows returns mask's row count
func (m *Mask) Rows() int {
	return m.rows
}

// Cols returns mask's column count
func (m *Mask) Cols() int {
	return m.cols
}

// At returns the value at row r, column c
func (m *Mask) At(r, c int) bool {
	return m.data[r*m.cols+c]
}

// Set assigns the value at row r, column c
func (m *Mask) Set(r, c int, v bool) {
	m.data[r*m.cols+c] = v
}

// CountSet returns the number of true cells
func (m *Mask) CountSet() int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return n
}

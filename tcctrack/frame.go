package tcctrack

import (
	"time"

	"github.com/pkg/errors"
)

// Frame is one observation instant: equal-shaped grids of brightness
// temperature (Kelvin), latitude, longitude and cloud probability (0..1).
// A Frame is validated on construction and treated as immutable afterwards.
type Frame struct {
	Timestamp   time.Time
	BT          *Grid
	Lat         *Grid
	Lon         *Grid
	Probability *Grid
}

// NewFrame builds a validated Frame from its four grids
func NewFrame(timestamp time.Time, bt, lat, lon, probability *Grid) (*Frame, error) {
	f := &Frame{
		Timestamp:   timestamp,
		BT:          bt,
		Lat:         lat,
		Lon:         lon,
		Probability: probability,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks that all grids are present and share one shape
func (f *Frame) Validate() error {
	if f.BT == nil || f.Lat == nil || f.Lon == nil || f.Probability == nil {
		return errors.New("frame is missing one or more grids")
	}
	for _, g := range []struct {
		name string
		grid *Grid
	}{
		{"latitude", f.Lat},
		{"longitude", f.Lon},
		{"probability", f.Probability},
	} {
		if !f.BT.SameShape(g.grid) {
			return &ShapeMismatchError{
				Field:    g.name,
				WantRows: f.BT.Rows(),
				WantCols: f.BT.Cols(),
				GotRows:  g.grid.Rows(),
				GotCols:  g.grid.Cols(),
			}
		}
	}
	return nil
}

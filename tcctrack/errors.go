package tcctrack

import (
	"fmt"
	"time"
)

// ShapeMismatchError reports frame grids with inconsistent dimensions.
// The affected frame is skipped; the track registry is left untouched.
type ShapeMismatchError struct {
	Field    string
	WantRows int
	WantCols int
	GotRows  int
	GotCols  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %s grid is %dx%d, expected %dx%d",
		e.Field, e.GotRows, e.GotCols, e.WantRows, e.WantCols)
}

// OutOfOrderFrameError reports a frame whose timestamp is not strictly
// greater than the last processed one. The frame is rejected and the
// track registry is left untouched.
type OutOfOrderFrameError struct {
	Last time.Time
	Got  time.Time
}

func (e *OutOfOrderFrameError) Error() string {
	return fmt.Sprintf("out-of-order frame: timestamp %s is not after last processed %s",
		e.Got.Format(time.RFC3339), e.Last.Format(time.RFC3339))
}

// InvalidGeometryError reports a cluster whose centroid is non-finite or
// outside geographic bounds. The cluster is dropped; the frame continues.
type InvalidGeometryError struct {
	LocalID int
	Lat     float64
	Lon     float64
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: cluster %d centroid (%.4f, %.4f) outside valid bounds",
		e.LocalID, e.Lat, e.Lon)
}

// NumericalInstabilityError reports an ill-conditioned covariance during
// Kalman prediction or update. The track's covariance is reset to its
// initial value and processing continues.
type NumericalInstabilityError struct {
	TrackID int64
	Stage   string
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("numerical instability: track %d covariance reset during %s", e.TrackID, e.Stage)
}

package tcctrack

import (
	"math"
	"time"
)

// ForecastPoint is one extrapolated future position of a track
type ForecastPoint struct {
	Step       int
	HoursAhead float64
	Position   GeoPoint
	SpeedKmh   float64
	BearingDeg float64
	// Confidence decays linearly with lead time, floored at 0.3
	Confidence float64
}

// Forecast extrapolates a track's future positions from its estimated
// velocity under the constant-velocity motion model. A track needs at
// least two observations before its velocity estimate is meaningful;
// otherwise nil is returned.
func Forecast(t *Track, steps int, interval time.Duration) []ForecastPoint {
	if t == nil || steps <= 0 || t.Observations < 2 {
		return nil
	}

	pos := t.Position()
	vlat, vlon := t.Velocity()
	speedKmh := math.Hypot(vlat, vlon) * DegreeLengthKm
	bearing := math.Mod(math.Atan2(vlon, vlat)*180/math.Pi+360, 360)
	hours := interval.Hours()

	points := make([]ForecastPoint, 0, steps)
	for step := 1; step <= steps; step++ {
		ahead := float64(step) * hours
		confidence := 1.0 - float64(step)*0.1
		if confidence < 0.3 {
			confidence = 0.3
		}
		points = append(points, ForecastPoint{
			Step:       step,
			HoursAhead: ahead,
			Position: GeoPoint{
				Lat: pos.Lat + vlat*ahead,
				Lon: pos.Lon + vlon*ahead,
			},
			SpeedKmh:   speedKmh,
			BearingDeg: bearing,
			Confidence: confidence,
		})
	}
	return points
}

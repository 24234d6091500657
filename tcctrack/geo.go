package tcctrack

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	// EarthRadiusKm is Earth's mean radius in kilometers
	EarthRadiusKm = 6371.0
	// DegreeLengthKm is the approximate length of one degree of latitude in kilometers
	DegreeLengthKm = 111.0
)

// GeoPoint is a geographic position in degrees
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point is finite and inside geographic bounds
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lat >= -90.0 && p.Lat <= 90.0 && p.Lon >= -180.0 && p.Lon <= 180.0
}

// GreatCircleKm returns the great-circle distance between two points in kilometers
func GreatCircleKm(a, b GeoPoint) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// BearingDeg returns the initial bearing (forward azimuth) from a to b
// in degrees, where 0 is North and 90 is East
func BearingDeg(a, b GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lonDiff := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

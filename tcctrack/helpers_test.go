package tcctrack

import (
	"testing"
	"time"
)

var frameStart = time.Date(2024, 10, 22, 0, 0, 0, 0, time.UTC)

// frameTime returns the timestamp of the n-th frame at 30-minute cadence
func frameTime(n int) time.Time {
	return frameStart.Add(time.Duration(n) * 30 * time.Minute)
}

func testConfig() Config {
	return Config{
		ProbabilityThreshold: 0.5,
		PixelFootprintKm2:    16.0,
		MinClusterAreaKm2:    5000.0,
		GatingDistanceKm:     200.0,
		ProcessNoise:         0.03,
		MeasurementNoise:     1.0,
		MaxMissedFrames:      3,
		Association:          AssociationHungarian,
	}
}

func mustGrid(t *testing.T, rows, cols int, data []float64) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols, data)
	if err != nil {
		t.Fatalf("can't build %dx%d grid: %v", rows, cols, err)
	}
	return g
}

func constGrid(t *testing.T, rows, cols int, v float64) *Grid {
	t.Helper()
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	return mustGrid(t, rows, cols, data)
}

// latLonGrids builds geolocation grids where latitude decreases with row
// and longitude increases with column, both by stepDeg per pixel.
func latLonGrids(t *testing.T, rows, cols int, lat0, lon0, stepDeg float64) (*Grid, *Grid) {
	t.Helper()
	latData := make([]float64, rows*cols)
	lonData := make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			latData[r*cols+c] = lat0 - float64(r)*stepDeg
			lonData[r*cols+c] = lon0 + float64(c)*stepDeg
		}
	}
	return mustGrid(t, rows, cols, latData), mustGrid(t, rows, cols, lonData)
}

// testCluster fabricates a classified cluster at the given centroid,
// large enough to pass any area filter used in tests
func testCluster(localID int, lat, lon float64) Cluster {
	return Cluster{
		LocalID:        localID,
		PixelCount:     500,
		AreaKm2:        8000.0,
		RadiusKm:       50.46,
		Centroid:       GeoPoint{Lat: lat, Lon: lon},
		MeanBT:         212.0,
		MinBT:          205.0,
		MaxBT:          225.0,
		Classification: ConfirmedTCC,
		Intensity:      IntensityModerate,
	}
}

func mustTracker(t *testing.T, cfg Config) *Tracker {
	t.Helper()
	tracker, err := NewTracker(cfg)
	if err != nil {
		t.Fatalf("can't create tracker: %v", err)
	}
	return tracker
}

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

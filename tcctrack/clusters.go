package tcctrack

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Cluster is a connected cold-cloud region within a single frame's mask.
// Clusters exist only within the scope of one frame.
type Cluster struct {
	// LocalID is assigned in raster scan order and is unique within the frame
	LocalID    int
	PixelCount int

	AreaKm2  float64
	RadiusKm float64
	Centroid GeoPoint

	MeanBT float64
	MinBT  float64
	MaxBT  float64
	StdBT  float64

	CloudTopKm float64
	LatExtent  float64
	LonExtent  float64

	Classification Classification
	Intensity      Intensity
}

// ExtractClusters labels 8-connected components of the detection mask
// and computes per-region geophysical metrics. Components smaller than
// minAreaKm2 are discarded. Clusters are returned sorted by ascending
// local id, which follows raster scan order of each component's first
// pixel, so identical input yields identical output.
//
// Clusters whose centroid falls outside valid geographic bounds are
// dropped and reported through the returned anomaly list rather than
// aborting the frame.
func ExtractClusters(mask *Mask, bt, lat, lon *Grid, pixelFootprintKm2, minAreaKm2 float64) ([]Cluster, []error, error) {
	if mask == nil || bt == nil || lat == nil || lon == nil {
		return nil, nil, errors.New("cluster extraction requires mask, BT, lat and lon inputs")
	}
	if mask.Rows() != bt.Rows() || mask.Cols() != bt.Cols() {
		return nil, nil, &ShapeMismatchError{
			Field:    "mask",
			WantRows: bt.Rows(),
			WantCols: bt.Cols(),
			GotRows:  mask.Rows(),
			GotCols:  mask.Cols(),
		}
	}
	if !bt.SameShape(lat) || !bt.SameShape(lon) {
		return nil, nil, &ShapeMismatchError{
			Field:    "latitude/longitude",
			WantRows: bt.Rows(),
			WantCols: bt.Cols(),
			GotRows:  lat.Rows(),
			GotCols:  lat.Cols(),
		}
	}

	components := labelComponents(mask)

	clusters := make([]Cluster, 0, len(components))
	var anomalies []error
	for id, pixels := range components {
		area := float64(len(pixels)) * pixelFootprintKm2
		if area < minAreaKm2 {
			continue
		}

		btVals := make([]float64, len(pixels))
		latVals := make([]float64, len(pixels))
		lonVals := make([]float64, len(pixels))
		for i, p := range pixels {
			btVals[i] = bt.At(p.r, p.c)
			latVals[i] = lat.At(p.r, p.c)
			lonVals[i] = lon.At(p.r, p.c)
		}

		centroid := GeoPoint{
			Lat: stat.Mean(latVals, nil),
			Lon: stat.Mean(lonVals, nil),
		}
		if !centroid.Valid() {
			anomalies = append(anomalies, &InvalidGeometryError{
				LocalID: id,
				Lat:     centroid.Lat,
				Lon:     centroid.Lon,
			})
			continue
		}

		minBT := floats.Min(btVals)
		clusters = append(clusters, Cluster{
			LocalID:    id,
			PixelCount: len(pixels),
			AreaKm2:    area,
			RadiusKm:   math.Sqrt(area / math.Pi),
			Centroid:   centroid,
			MeanBT:     stat.Mean(btVals, nil),
			MinBT:      minBT,
			MaxBT:      floats.Max(btVals),
			StdBT:      popStdDev(btVals),
			CloudTopKm: CloudTopHeightKm(minBT),
			LatExtent:  floats.Max(latVals) - floats.Min(latVals),
			LonExtent:  floats.Max(lonVals) - floats.Min(lonVals),
		})
	}
	return clusters, anomalies, nil
}

type pixel struct {
	r int
	c int
}

// labelComponents finds 8-connected components via flood fill, visiting
// seed pixels in raster scan order so component ids are deterministic.
func labelComponents(mask *Mask) [][]pixel {
	rows, cols := mask.Rows(), mask.Cols()
	visited := make([]bool, rows*cols)

	var components [][]pixel
	var stack []pixel
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !mask.At(r, c) || visited[r*cols+c] {
				continue
			}

			var member []pixel
			stack = append(stack[:0], pixel{r, c})
			visited[r*cols+c] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				member = append(member, p)

				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						if dr == 0 && dc == 0 {
							continue
						}
						nr, nc := p.r+dr, p.c+dc
						if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
							continue
						}
						if mask.At(nr, nc) && !visited[nr*cols+nc] {
							visited[nr*cols+nc] = true
							stack = append(stack, pixel{nr, nc})
						}
					}
				}
			}
			components = append(components, member)
		}
	}
	return components
}

// popStdDev is the population standard deviation over member pixels.
// stat.StdDev is sample-based and undefined for a single pixel.
func popStdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	mean := stat.Mean(vals, nil)
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)))
}

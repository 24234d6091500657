package tcctrack

import (
	"sort"
	"time"

	hungarian "github.com/arthurkushman/go-hungarian"
	"github.com/pkg/errors"
)

// TrackObservation is the emitted record for one track in one frame.
// It is the sole contract with persistence and reporting collaborators.
type TrackObservation struct {
	TrackID        int64
	Timestamp      time.Time
	Centroid       GeoPoint
	AreaKm2        float64
	RadiusKm       float64
	MeanBT         float64
	MinBT          float64
	Classification Classification
	// IsPredicted marks a predicted-only extrapolation of a lost track
	IsPredicted bool
}

// Tracker maintains the registry of persistent tracks. Each frame's
// classified clusters are predicted against, gated, associated and used
// to correct track state; unmatched tracks age and are pruned.
//
// A Tracker is exclusively owned by one tracking run and is not safe
// for concurrent use.
type Tracker struct {
	cfg    Config
	tracks map[int64]*Track
	nextID int64
}

// NewTracker creates an empty track registry
func NewTracker(cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tracker configuration")
	}
	return &Tracker{
		cfg:    cfg,
		tracks: make(map[int64]*Track),
		nextID: 1,
	}, nil
}

// Step advances the registry by one frame. It returns one observation
// per track that is active or lost after the frame (ordered by
// ascending track id) plus any per-track anomalies recovered locally.
//
// Callers must feed frames in strictly increasing timestamp order; the
// Engine enforces this.
func (tr *Tracker) Step(ts time.Time, clusters []Cluster) ([]TrackObservation, []error) {
	var anomalies []error

	// Track ids in ascending order keeps gating, association and
	// emission deterministic.
	ids := tr.sortedIDs()

	// 1. Predict every track forward to the frame instant.
	for _, id := range ids {
		t := tr.tracks[id]
		dt := ts.Sub(t.propagatedTo).Hours()
		if dt < 0 {
			dt = 0
		}
		pred, reset := t.filter.predict(dt)
		t.predicted = pred
		t.propagatedTo = ts
		if reset {
			anomalies = append(anomalies, &NumericalInstabilityError{TrackID: id, Stage: "predict"})
		}
	}

	// 2. Gate: great-circle distances between predictions and centroids.
	dist := make([][]float64, len(ids))
	for i, id := range ids {
		row := make([]float64, len(clusters))
		for j := range clusters {
			row[j] = GreatCircleKm(tr.tracks[id].predicted, clusters[j].Centroid)
		}
		dist[i] = row
	}

	// 3. Associate one-to-one within the gate.
	var matches map[int]int
	if tr.cfg.Association == AssociationGreedy {
		matches = greedyAssign(dist, tr.cfg.GatingDistanceKm)
	} else {
		matches = hungarianAssign(dist, tr.cfg.GatingDistanceKm)
	}

	// 4. Correct matched tracks with the measured centroid.
	matchedTracks := make(map[int64]struct{}, len(matches))
	matchedClusters := make(map[int]struct{}, len(matches))
	for ti, id := range ids {
		cj, ok := matches[ti]
		if !ok {
			continue
		}
		t := tr.tracks[id]
		if t.filter.update(clusters[cj].Centroid) {
			anomalies = append(anomalies, &NumericalInstabilityError{TrackID: id, Stage: "update"})
		}
		t.Missed = 0
		t.Observations++
		t.Status = StatusActive
		t.LastUpdated = ts
		t.LastCluster = clusters[cj]
		t.appendHistory(TrackPoint{Position: clusters[cj].Centroid, Timestamp: ts})
		matchedTracks[id] = struct{}{}
		matchedClusters[cj] = struct{}{}
	}

	// 5. Age unmatched tracks; terminate once the missed counter reaches
	// the limit, otherwise coast as lost.
	var terminated []int64
	for _, id := range ids {
		if _, ok := matchedTracks[id]; ok {
			continue
		}
		t := tr.tracks[id]
		t.Missed++
		if t.Missed >= tr.cfg.MaxMissedFrames {
			t.Status = StatusTerminated
			terminated = append(terminated, id)
			continue
		}
		t.Status = StatusLost
		t.appendHistory(TrackPoint{Position: t.predicted, Timestamp: ts, Predicted: true})
	}

	// 6. Spawn tentative tracks from unmatched clusters.
	for j := range clusters {
		if _, ok := matchedClusters[j]; ok {
			continue
		}
		id := tr.nextID
		tr.nextID++
		tr.tracks[id] = newTrack(id, clusters[j], ts, tr.cfg.ProcessNoise, tr.cfg.MeasurementNoise)
	}

	// 7. Emit. Tentative tracks report from their first match; terminated
	// tracks never report.
	observations := make([]TrackObservation, 0, len(tr.tracks))
	for _, id := range tr.sortedIDs() {
		t := tr.tracks[id]
		switch t.Status {
		case StatusActive:
			observations = append(observations, TrackObservation{
				TrackID:        id,
				Timestamp:      ts,
				Centroid:       t.LastCluster.Centroid,
				AreaKm2:        t.LastCluster.AreaKm2,
				RadiusKm:       t.LastCluster.RadiusKm,
				MeanBT:         t.LastCluster.MeanBT,
				MinBT:          t.LastCluster.MinBT,
				Classification: t.LastCluster.Classification,
			})
		case StatusLost:
			observations = append(observations, TrackObservation{
				TrackID:        id,
				Timestamp:      ts,
				Centroid:       t.predicted,
				AreaKm2:        t.LastCluster.AreaKm2,
				RadiusKm:       t.LastCluster.RadiusKm,
				MeanBT:         t.LastCluster.MeanBT,
				MinBT:          t.LastCluster.MinBT,
				Classification: t.LastCluster.Classification,
				IsPredicted:    true,
			})
		}
	}

	// Terminated is absorbing: remove at end of frame processing so a
	// reappearing cluster spawns a fresh id, never revives the old one.
	for _, id := range terminated {
		delete(tr.tracks, id)
	}

	return observations, anomalies
}

// Track returns the track with the given id, if present
func (tr *Tracker) Track(id int64) (*Track, bool) {
	t, ok := tr.tracks[id]
	return t, ok
}

// TrackIDs returns the registry's track ids in ascending order
func (tr *Tracker) TrackIDs() []int64 {
	return tr.sortedIDs()
}

// Size returns the number of tracks in the registry
func (tr *Tracker) Size() int {
	return len(tr.tracks)
}

func (tr *Tracker) sortedIDs() []int64 {
	ids := make([]int64, 0, len(tr.tracks))
	for id := range tr.tracks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// hungarianAssign solves the optimal one-to-one assignment over
// admissible pairs. The solver maximizes total score where an admissible
// pair scores gate-distance; the matrix is zero-padded square, so dummy
// rows and columns never outbid a real admissible pair. Matches are
// re-validated against the gate so padding and inadmissible cells can
// never bind.
func hungarianAssign(dist [][]float64, gateKm float64) map[int]int {
	numTracks := len(dist)
	if numTracks == 0 {
		return nil
	}
	numClusters := len(dist[0])
	if numClusters == 0 {
		return nil
	}

	size := numTracks
	if numClusters > size {
		size = numClusters
	}
	scores := make([][]float64, size)
	for i := range scores {
		scores[i] = make([]float64, size)
		if i >= numTracks {
			continue
		}
		for j := 0; j < numClusters; j++ {
			if d := dist[i][j]; d <= gateKm {
				scores[i][j] = gateKm - d
			}
		}
	}

	matches := make(map[int]int)
	for ti, row := range hungarian.SolveMax(scores) {
		if len(row) == 0 {
			continue
		}
		// The inner map holds the single assigned column.
		var cj int
		for c := range row {
			cj = c
			break
		}
		if ti < numTracks && cj < numClusters && dist[ti][cj] <= gateKm {
			matches[ti] = cj
		}
	}
	return matches
}

// greedyAssign is the documented lower-fidelity substitute: admissible
// pairs are consumed in ascending distance order, ties broken by lower
// track index, then lower cluster index.
func greedyAssign(dist [][]float64, gateKm float64) map[int]int {
	type candidate struct {
		ti, cj int
		d      float64
	}
	var pairs []candidate
	for ti := range dist {
		for cj, d := range dist[ti] {
			if d <= gateKm {
				pairs = append(pairs, candidate{ti: ti, cj: cj, d: d})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].d != pairs[j].d {
			return pairs[i].d < pairs[j].d
		}
		if pairs[i].ti != pairs[j].ti {
			return pairs[i].ti < pairs[j].ti
		}
		return pairs[i].cj < pairs[j].cj
	})

	matches := make(map[int]int)
	usedClusters := make(map[int]struct{})
	for _, p := range pairs {
		if _, ok := matches[p.ti]; ok {
			continue
		}
		if _, ok := usedClusters[p.cj]; ok {
			continue
		}
		matches[p.ti] = p.cj
		usedClusters[p.cj] = struct{}{}
	}
	return matches
}

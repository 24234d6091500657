package tcctrack

import "time"

// TrackStatus is the lifecycle state of a track
type TrackStatus string

const (
	// StatusTentative is a freshly spawned track awaiting its first match
	StatusTentative TrackStatus = "tentative"
	// StatusActive is a track matched in the most recent frame
	StatusActive TrackStatus = "active"
	// StatusLost is a track coasting on prediction after missed frames
	StatusLost TrackStatus = "lost"
	// StatusTerminated is absorbing; the track is removed from the registry
	StatusTerminated TrackStatus = "terminated"
)

// maxHistoryLen bounds the retained trajectory of a track
const maxHistoryLen = 150

// TrackPoint is one entry in a track's trajectory history
type TrackPoint struct {
	Position  GeoPoint
	Timestamp time.Time
	Predicted bool
}

// Track is a persistent cross-frame identity for one cloud cluster.
// It is plain state owned by the Tracker registry; observations refer
// to tracks by id only, never by pointer.
type Track struct {
	ID     int64
	Status TrackStatus

	// Missed counts consecutive frames without a match
	Missed int
	// Observations counts successful matches, including the spawning cluster
	Observations int

	FirstSeen   time.Time
	LastUpdated time.Time

	// LastCluster is the most recent matched cluster's metrics, carried
	// into predicted-only observations while the track is lost
	LastCluster Cluster

	History []TrackPoint

	filter *kalmanFilter
	// propagatedTo marks the instant the state has been predicted up to,
	// so repeated coasting predictions never double-count elapsed time
	propagatedTo time.Time
	// predicted is the position produced by the latest predict step,
	// used for gating and for predicted-only observations
	predicted GeoPoint
}

func newTrack(id int64, c Cluster, ts time.Time, processNoise, measurementNoise float64) *Track {
	t := &Track{
		ID:           id,
		Status:       StatusTentative,
		Observations: 1,
		FirstSeen:    ts,
		LastUpdated:  ts,
		LastCluster:  c,
		filter:       newKalmanFilter(c.Centroid, processNoise, measurementNoise),
		propagatedTo: ts,
		predicted:    c.Centroid,
	}
	t.appendHistory(TrackPoint{Position: c.Centroid, Timestamp: ts})
	return t
}

// Position returns the track's current estimated position
func (t *Track) Position() GeoPoint {
	return t.filter.Position()
}

// Velocity returns the track's estimated velocity in degrees per hour
func (t *Track) Velocity() (vlat, vlon float64) {
	return t.filter.Velocity()
}

// PredictedPosition returns the position from the latest prediction step
func (t *Track) PredictedPosition() GeoPoint {
	return t.predicted
}

func (t *Track) appendHistory(p TrackPoint) {
	t.History = append(t.History, p)
	if len(t.History) > maxHistoryLen {
		t.History = t.History[1:]
	}
}

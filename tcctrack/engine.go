package tcctrack

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FrameResult is the outcome of processing one frame
type FrameResult struct {
	Timestamp time.Time
	// Observations holds one record per surviving track, ordered by
	// ascending track id
	Observations []TrackObservation
	// ClusterCount is the number of clusters that passed extraction
	ClusterCount int
	// Anomalies lists per-cluster and per-track issues recovered locally
	// (InvalidGeometryError, NumericalInstabilityError)
	Anomalies []error
	// Err is set by Run for frames rejected with a structural error
	// (ShapeMismatchError, OutOfOrderFrameError); such frames leave the
	// registry untouched
	Err error
}

// Engine drives the detection pipeline over an ordered sequence of
// frames: threshold, cluster extraction, classification, tracking.
// One Engine owns one track registry; concurrent runs must use distinct
// engines.
type Engine struct {
	cfg     Config
	tracker *Tracker
	runID   uuid.UUID
	logger  *log.Logger

	frames        int
	lastTimestamp time.Time
}

// NewEngine creates an engine with a fresh registry. logger may be nil.
func NewEngine(cfg Config, logger *log.Logger) (*Engine, error) {
	tracker, err := NewTracker(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "can't create tracking engine")
	}
	return &Engine{
		cfg:     cfg,
		tracker: tracker,
		runID:   uuid.New(),
		logger:  logger,
	}, nil
}

// RunID identifies this engine's tracking run
func (e *Engine) RunID() uuid.UUID {
	return e.runID
}

// Tracker exposes the engine's registry, e.g. for trajectory forecasting
func (e *Engine) Tracker() *Tracker {
	return e.tracker
}

// ProcessFrame pushes a single frame through the pipeline. Structural
// errors (shape mismatch, out-of-order timestamp) reject the frame and
// leave the registry untouched; everything else degrades gracefully and
// is reported through FrameResult.Anomalies.
func (e *Engine) ProcessFrame(frame *Frame) (*FrameResult, error) {
	if frame == nil {
		return nil, errors.New("frame is nil")
	}
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if e.frames > 0 && !frame.Timestamp.After(e.lastTimestamp) {
		return nil, &OutOfOrderFrameError{Last: e.lastTimestamp, Got: frame.Timestamp}
	}

	mask, err := Threshold(frame.Probability, e.cfg.ProbabilityThreshold)
	if err != nil {
		return nil, errors.Wrap(err, "can't threshold probability grid")
	}

	clusters, anomalies, err := ExtractClusters(mask, frame.BT, frame.Lat, frame.Lon,
		e.cfg.PixelFootprintKm2, e.cfg.MinClusterAreaKm2)
	if err != nil {
		return nil, errors.Wrap(err, "can't extract clusters")
	}
	for i := range clusters {
		clusters[i].Classification = Classify(clusters[i].MinBT)
		clusters[i].Intensity = IntensityFor(clusters[i].MinBT)
	}

	observations, trackAnomalies := e.tracker.Step(frame.Timestamp, clusters)
	anomalies = append(anomalies, trackAnomalies...)

	e.frames++
	e.lastTimestamp = frame.Timestamp

	if e.logger != nil {
		e.logger.Printf("run %s frame %d @ %s: %d clusters, %d observations, %d tracks, %d anomalies",
			e.runID, e.frames, frame.Timestamp.Format(time.RFC3339),
			len(clusters), len(observations), e.tracker.Size(), len(anomalies))
	}

	return &FrameResult{
		Timestamp:    frame.Timestamp,
		Observations: observations,
		ClusterCount: len(clusters),
		Anomalies:    anomalies,
	}, nil
}

// Run processes frames sequentially. Rejected frames are reported as
// results with Err set rather than aborting the run. Cancellation is
// honored at frame boundaries only, leaving the registry valid and
// resumable.
func (e *Engine) Run(ctx context.Context, frames []*Frame) ([]*FrameResult, error) {
	results := make([]*FrameResult, 0, len(frames))
	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := e.ProcessFrame(frame)
		if err != nil {
			rejected := &FrameResult{Err: err}
			if frame != nil {
				rejected.Timestamp = frame.Timestamp
			}
			if e.logger != nil {
				e.logger.Printf("run %s: frame rejected: %v", e.runID, err)
			}
			results = append(results, rejected)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

package tcctrack

import "github.com/pkg/errors"

// AssociationAlgorithm selects how clusters are assigned to tracks
type AssociationAlgorithm uint16

const (
	// AssociationHungarian solves the optimal minimum-total-distance
	// one-to-one assignment (Kuhn-Munkres)
	AssociationHungarian AssociationAlgorithm = iota
	// AssociationGreedy is a lower-fidelity nearest-neighbor substitute:
	// admissible pairs are taken in order of ascending distance, ties
	// broken by lower track id
	AssociationGreedy
)

// Config is the full externally supplied configuration surface.
// The engine carries no built-in operating point: published thresholds
// disagree (probability 0.3 vs 0.5, minimum area 5,000 vs 34,800 km²),
// so every value must come from the caller.
type Config struct {
	// ProbabilityThreshold is the cloud-probability cutoff in (0, 1)
	ProbabilityThreshold float64
	// PixelFootprintKm2 is the area covered by one grid pixel
	PixelFootprintKm2 float64
	// MinClusterAreaKm2 discards connected regions below this area
	MinClusterAreaKm2 float64
	// GatingDistanceKm bounds track-to-cluster association distance
	GatingDistanceKm float64
	// ProcessNoise is the Kalman process-noise magnitude
	ProcessNoise float64
	// MeasurementNoise is the Kalman measurement-noise magnitude
	MeasurementNoise float64
	// MaxMissedFrames terminates a track once its consecutive missed
	// counter reaches this value
	MaxMissedFrames int
	// Association picks the assignment algorithm
	Association AssociationAlgorithm
}

// Validate checks every parameter is usable
func (c Config) Validate() error {
	if c.ProbabilityThreshold <= 0 || c.ProbabilityThreshold >= 1 {
		return errors.Errorf("probability threshold must be in (0, 1), got %g", c.ProbabilityThreshold)
	}
	if c.PixelFootprintKm2 <= 0 {
		return errors.Errorf("pixel footprint must be positive, got %g", c.PixelFootprintKm2)
	}
	if c.MinClusterAreaKm2 < 0 {
		return errors.Errorf("minimum cluster area must be non-negative, got %g", c.MinClusterAreaKm2)
	}
	if c.GatingDistanceKm <= 0 {
		return errors.Errorf("gating distance must be positive, got %g", c.GatingDistanceKm)
	}
	if c.ProcessNoise <= 0 {
		return errors.Errorf("process noise must be positive, got %g", c.ProcessNoise)
	}
	if c.MeasurementNoise <= 0 {
		return errors.Errorf("measurement noise must be positive, got %g", c.MeasurementNoise)
	}
	if c.MaxMissedFrames < 1 {
		return errors.Errorf("max missed frames must be at least 1, got %d", c.MaxMissedFrames)
	}
	if c.Association != AssociationHungarian && c.Association != AssociationGreedy {
		return errors.Errorf("unknown association algorithm %d", c.Association)
	}
	return nil
}

package tcctrack

// Classification is the categorical label of a detected cluster,
// a pure function of its minimum brightness temperature.
type Classification string

const (
	// ConfirmedTCC is deep convection with cloud tops colder than 220 K
	ConfirmedTCC Classification = "ConfirmedTCC"
	// LikelyTCC is a candidate system with minimum BT in [220, 235) K
	LikelyTCC Classification = "LikelyTCC"
	// CloudCluster is a cold cloud region not cold enough for TCC status
	CloudCluster Classification = "CloudCluster"
)

const (
	confirmedBTThreshold = 220.0
	likelyBTThreshold    = 235.0
)

// Classify maps a cluster's minimum brightness temperature (Kelvin)
// to its categorical label. Boundaries are inclusive-exclusive:
// 219.9 is Confirmed, 220.0 is Likely, 235.0 is CloudCluster.
func Classify(minBT float64) Classification {
	switch {
	case minBT < confirmedBTThreshold:
		return ConfirmedTCC
	case minBT < likelyBTThreshold:
		return LikelyTCC
	default:
		return CloudCluster
	}
}

// Intensity grades convective strength from minimum brightness temperature
type Intensity string

const (
	IntensityExtreme  Intensity = "extreme"  // overshooting tops, < 190 K
	IntensityStrong   Intensity = "strong"   // 190-200 K
	IntensityModerate Intensity = "moderate" // 200-210 K
	IntensityWeak     Intensity = "weak"     // 210-218 K
	IntensityNone     Intensity = "none"     // >= 218 K
)

// IntensityFor grades convective intensity from minimum BT (Kelvin)
func IntensityFor(minBT float64) Intensity {
	switch {
	case minBT < 190.0:
		return IntensityExtreme
	case minBT < 200.0:
		return IntensityStrong
	case minBT < 210.0:
		return IntensityModerate
	case minBT < 218.0:
		return IntensityWeak
	default:
		return IntensityNone
	}
}

// Tropical atmosphere profile for cloud-top height estimation
const (
	tropopauseHeightKm = 16.0
	tropopauseTempK    = 190.0
	surfaceTempK       = 300.0
)

// CloudTopHeightKm estimates cloud-top height from minimum brightness
// temperature by linear interpolation between the tropical surface and
// tropopause, clamped to [0, 16] km.
func CloudTopHeightKm(minBT float64) float64 {
	if minBT >= surfaceTempK {
		return 0.0
	}
	if minBT <= tropopauseTempK {
		return tropopauseHeightKm
	}
	fraction := (surfaceTempK - minBT) / (surfaceTempK - tropopauseTempK)
	return fraction * tropopauseHeightKm
}

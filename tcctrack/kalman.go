package tcctrack

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Constant-velocity Kalman filter over the state [lat, lon, vlat, vlon],
// with velocities in degrees per hour. The measurement is the cluster
// centroid [lat, lon].

// Initial covariance: uncertain position, less uncertain velocity.
const (
	initialPositionVar = 10.0
	initialVelocityVar = 1.0
)

// measurementMatrix extracts position from the state vector
var measurementMatrix = mat.NewDense(2, 4, []float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
})

type kalmanFilter struct {
	state            *mat.VecDense // [lat, lon, vlat, vlon]
	cov              *mat.Dense    // 4x4 state covariance
	processNoise     float64
	measurementNoise float64
}

func newKalmanFilter(initial GeoPoint, processNoise, measurementNoise float64) *kalmanFilter {
	kf := &kalmanFilter{
		state:            mat.NewVecDense(4, []float64{initial.Lat, initial.Lon, 0, 0}),
		cov:              mat.NewDense(4, 4, nil),
		processNoise:     processNoise,
		measurementNoise: measurementNoise,
	}
	kf.resetCovariance()
	return kf
}

func (kf *kalmanFilter) resetCovariance() {
	kf.cov.Zero()
	kf.cov.Set(0, 0, initialPositionVar)
	kf.cov.Set(1, 1, initialPositionVar)
	kf.cov.Set(2, 2, initialVelocityVar)
	kf.cov.Set(3, 3, initialVelocityVar)
}

// Position returns the current state estimate's position
func (kf *kalmanFilter) Position() GeoPoint {
	return GeoPoint{Lat: kf.state.AtVec(0), Lon: kf.state.AtVec(1)}
}

// Velocity returns the current velocity estimate in degrees per hour
func (kf *kalmanFilter) Velocity() (vlat, vlon float64) {
	return kf.state.AtVec(2), kf.state.AtVec(3)
}

// transition builds the constant-velocity state transition matrix for dt hours
func transition(dtHours float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, dtHours, 0,
		0, 1, 0, dtHours,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// predict propagates state and covariance by dt hours and returns the
// predicted position. reset reports that an ill-conditioned covariance
// was detected and replaced with the initial one.
func (kf *kalmanFilter) predict(dtHours float64) (predicted GeoPoint, reset bool) {
	f := transition(dtHours)

	var next mat.VecDense
	next.MulVec(f, kf.state)
	kf.state.CopyVec(&next)

	// P' = F P Fᵀ + Q, with Q = I·processNoise
	var fp, fpft mat.Dense
	fp.Mul(f, kf.cov)
	fpft.Mul(&fp, f.T())
	kf.cov.Copy(&fpft)
	for i := 0; i < 4; i++ {
		kf.cov.Set(i, i, kf.cov.At(i, i)+kf.processNoise)
	}

	if !covFinite(kf.cov) {
		kf.resetCovariance()
		reset = true
	}
	return kf.Position(), reset
}

// update corrects the state with a measured centroid. reset reports that
// the innovation covariance was ill-conditioned and the state covariance
// was restored to its initial value before applying the correction.
func (kf *kalmanFilter) update(z GeoPoint) (reset bool) {
	sInv, ok := kf.innovationInverse()
	if !ok {
		kf.resetCovariance()
		reset = true
		// A fresh diagonal covariance always yields an invertible S.
		sInv, _ = kf.innovationInverse()
	}

	innovation := mat.NewVecDense(2, []float64{
		z.Lat - kf.state.AtVec(0),
		z.Lon - kf.state.AtVec(1),
	})

	// K = P Hᵀ S⁻¹
	var pht, gain mat.Dense
	pht.Mul(kf.cov, measurementMatrix.T())
	gain.Mul(&pht, sInv)

	// x' = x + K y
	var corr mat.VecDense
	corr.MulVec(&gain, innovation)
	kf.state.AddVec(kf.state, &corr)

	// P' = (I - K H) P
	var kh, ikh, next mat.Dense
	kh.Mul(&gain, measurementMatrix)
	ikh.Sub(eye4(), &kh)
	next.Mul(&ikh, kf.cov)
	kf.cov.Copy(&next)
	return reset
}

// innovationInverse computes S⁻¹ where S = H P Hᵀ + R. ok is false when
// S is singular or non-finite.
func (kf *kalmanFilter) innovationInverse() (*mat.Dense, bool) {
	var hp, s mat.Dense
	hp.Mul(measurementMatrix, kf.cov)
	s.Mul(&hp, measurementMatrix.T())
	s.Set(0, 0, s.At(0, 0)+kf.measurementNoise)
	s.Set(1, 1, s.At(1, 1)+kf.measurementNoise)

	if !covFinite(&s) {
		return nil, false
	}
	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		return nil, false
	}
	return &sInv, true
}

func eye4() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

func covFinite(m *mat.Dense) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

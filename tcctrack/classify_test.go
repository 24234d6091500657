package tcctrack

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		minBT float64
		want  Classification
	}{
		{180.0, ConfirmedTCC},
		{219.9, ConfirmedTCC},
		{220.0, LikelyTCC},
		{234.99, LikelyTCC},
		{235.0, CloudCluster},
		{260.0, CloudCluster},
	}
	for _, tc := range cases {
		if got := Classify(tc.minBT); got != tc.want {
			t.Errorf("Classify(%.2f): got %s, want %s", tc.minBT, got, tc.want)
		}
	}
}

func TestIntensityGrades(t *testing.T) {
	cases := []struct {
		minBT float64
		want  Intensity
	}{
		{185.0, IntensityExtreme},
		{189.99, IntensityExtreme},
		{190.0, IntensityStrong},
		{199.9, IntensityStrong},
		{205.0, IntensityModerate},
		{215.0, IntensityWeak},
		{218.0, IntensityNone},
		{250.0, IntensityNone},
	}
	for _, tc := range cases {
		if got := IntensityFor(tc.minBT); got != tc.want {
			t.Errorf("IntensityFor(%.2f): got %s, want %s", tc.minBT, got, tc.want)
		}
	}
}

func TestCloudTopHeight(t *testing.T) {
	cases := []struct {
		minBT float64
		want  float64
	}{
		{310.0, 0.0},  // warmer than surface, clamped
		{300.0, 0.0},  // surface
		{245.0, 8.0},  // halfway through the profile
		{190.0, 16.0}, // tropopause
		{185.0, 16.0}, // colder than tropopause, clamped
	}
	for _, tc := range cases {
		if got := CloudTopHeightKm(tc.minBT); !approxEqual(got, tc.want, 1e-9) {
			t.Errorf("CloudTopHeightKm(%.1f): got %.3f, want %.3f", tc.minBT, got, tc.want)
		}
	}
}

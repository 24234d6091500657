package tcctrack

import (
	"testing"
)

// establish spawns a track from a cluster at (lat, lon) and confirms it
// with a second frame at the same point, returning the tracker with one
// active track of id 1.
func establish(t *testing.T, lat, lon float64) *Tracker {
	t.Helper()
	tr := mustTracker(t, testConfig())
	obs, _ := tr.Step(frameTime(0), []Cluster{testCluster(1, lat, lon)})
	if len(obs) != 0 {
		t.Fatalf("tentative track reported %d observations on spawn frame", len(obs))
	}
	obs, _ = tr.Step(frameTime(1), []Cluster{testCluster(1, lat, lon)})
	if len(obs) != 1 || obs[0].IsPredicted {
		t.Fatalf("expected one measured observation after confirmation, got %+v", obs)
	}
	return tr
}

func TestTrackerLifecycle(t *testing.T) {
	tr := mustTracker(t, testConfig())

	// Frame 0: one cluster spawns a tentative track, nothing reported.
	obs, anomalies := tr.Step(frameTime(0), []Cluster{testCluster(1, 10.0, 80.0)})
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalies)
	}
	if len(obs) != 0 {
		t.Fatalf("spawn frame emitted %d observations, want 0", len(obs))
	}
	if tr.Size() != 1 {
		t.Fatalf("registry size = %d, want 1", tr.Size())
	}
	tk, ok := tr.Track(1)
	if !ok || tk.Status != StatusTentative {
		t.Fatalf("track 1 after spawn: ok=%v status=%v", ok, tk.Status)
	}

	// Frame 1: the cluster drifts slightly and is matched; the track
	// turns active and reports the measured centroid.
	obs, _ = tr.Step(frameTime(1), []Cluster{testCluster(1, 10.1, 80.05)})
	if len(obs) != 1 {
		t.Fatalf("frame 1 emitted %d observations, want 1", len(obs))
	}
	if obs[0].TrackID != 1 || obs[0].IsPredicted {
		t.Fatalf("frame 1 observation = %+v", obs[0])
	}
	if obs[0].Centroid.Lat != 10.1 || obs[0].Centroid.Lon != 80.05 {
		t.Fatalf("matched observation must carry the measured centroid, got %+v", obs[0].Centroid)
	}
	if obs[0].Classification != ConfirmedTCC || obs[0].MinBT != 205.0 {
		t.Fatalf("observation metrics not taken from the matched cluster: %+v", obs[0])
	}
	if tk.Status != StatusActive || tk.Observations != 2 {
		t.Fatalf("track 1 after match: status=%v observations=%d", tk.Status, tk.Observations)
	}

	// Frames 2 and 3: no detections. The track coasts as lost and
	// reports predicted positions.
	for n := 2; n <= 3; n++ {
		obs, _ = tr.Step(frameTime(n), nil)
		if len(obs) != 1 {
			t.Fatalf("frame %d emitted %d observations, want 1", n, len(obs))
		}
		if !obs[0].IsPredicted {
			t.Fatalf("frame %d observation should be predicted: %+v", n, obs[0])
		}
		if !approxEqual(obs[0].Centroid.Lat, 10.1, 0.05) || !approxEqual(obs[0].Centroid.Lon, 80.05, 0.05) {
			t.Fatalf("frame %d predicted centroid drifted too far: %+v", n, obs[0].Centroid)
		}
		if tk.Status != StatusLost || tk.Missed != n-1 {
			t.Fatalf("frame %d: status=%v missed=%d", n, tk.Status, tk.Missed)
		}
	}

	// Frame 4: third consecutive miss reaches the limit. The track is
	// terminated, reports nothing and leaves the registry.
	obs, _ = tr.Step(frameTime(4), nil)
	if len(obs) != 0 {
		t.Fatalf("terminated track still reported: %+v", obs)
	}
	if tr.Size() != 0 {
		t.Fatalf("registry size after termination = %d, want 0", tr.Size())
	}

	// Frame 5: a cluster at the old position spawns a fresh identity,
	// never revives the terminated one.
	obs, _ = tr.Step(frameTime(5), []Cluster{testCluster(1, 10.1, 80.05)})
	if len(obs) != 0 {
		t.Fatalf("respawn frame emitted %d observations, want 0", len(obs))
	}
	if _, ok := tr.Track(1); ok {
		t.Fatal("terminated id 1 came back")
	}
	if tk, ok := tr.Track(2); !ok || tk.Status != StatusTentative {
		t.Fatal("reappearing cluster did not spawn a fresh track")
	}
}

func TestTrackerGatingRejectsDistantCluster(t *testing.T) {
	tr := establish(t, 10.0, 80.0)

	// 3 degrees of latitude is ~334 km, outside the 200 km gate: the
	// cluster must spawn a new track instead of teleporting the old one.
	obs, _ := tr.Step(frameTime(2), []Cluster{testCluster(1, 13.0, 80.0)})
	if len(obs) != 1 {
		t.Fatalf("expected only the coasting track to report, got %d observations", len(obs))
	}
	if obs[0].TrackID != 1 || !obs[0].IsPredicted {
		t.Fatalf("observation = %+v, want predicted report from track 1", obs[0])
	}
	if tk, _ := tr.Track(1); tk.Status != StatusLost || tk.Missed != 1 {
		t.Fatalf("track 1 after gated-out frame: status=%v missed=%d", tk.Status, tk.Missed)
	}
	if tk, ok := tr.Track(2); !ok || tk.Status != StatusTentative {
		t.Fatal("distant cluster must spawn a tentative track")
	}
	if got := tr.TrackIDs(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("track ids = %v, want [1 2]", got)
	}
}

func TestTrackerOneToOneAssociation(t *testing.T) {
	tr := mustTracker(t, testConfig())
	tr.Step(frameTime(0), []Cluster{testCluster(1, 10.0, 80.0), testCluster(2, 10.2, 80.0)})
	tr.Step(frameTime(1), []Cluster{testCluster(1, 10.0, 80.0), testCluster(2, 10.2, 80.0)})

	// One cluster between two tracks, both within the gate: exactly one
	// track may claim it.
	obs, _ := tr.Step(frameTime(2), []Cluster{testCluster(1, 10.05, 80.0)})
	measured := 0
	for _, o := range obs {
		if !o.IsPredicted {
			measured++
		}
	}
	if measured != 1 {
		t.Fatalf("%d tracks claimed a single cluster, want 1", measured)
	}
	if len(obs) != 2 {
		t.Fatalf("emitted %d observations, want 2 (one measured, one predicted)", len(obs))
	}
	if tr.Size() != 2 {
		t.Fatalf("registry size = %d, want 2 (no spawn from the shared cluster)", tr.Size())
	}
}

func TestTrackerPrefersCloserCluster(t *testing.T) {
	tr := mustTracker(t, testConfig())
	tr.Step(frameTime(0), []Cluster{testCluster(1, 10.0, 80.0), testCluster(2, 10.0, 81.0)})
	tr.Step(frameTime(1), []Cluster{testCluster(1, 10.0, 80.0), testCluster(2, 10.0, 81.0)})

	// Clusters presented in swapped order still bind to the nearer track.
	obs, _ := tr.Step(frameTime(2), []Cluster{
		testCluster(1, 10.0, 80.95),
		testCluster(2, 10.0, 80.05),
	})
	if len(obs) != 2 {
		t.Fatalf("emitted %d observations, want 2", len(obs))
	}
	if obs[0].TrackID != 1 || obs[0].Centroid.Lon != 80.05 {
		t.Fatalf("track 1 observation = %+v, want lon 80.05", obs[0])
	}
	if obs[1].TrackID != 2 || obs[1].Centroid.Lon != 80.95 {
		t.Fatalf("track 2 observation = %+v, want lon 80.95", obs[1])
	}
}

func TestTrackerMissedCounterResetsOnRematch(t *testing.T) {
	tr := establish(t, 10.0, 80.0)

	tr.Step(frameTime(2), nil)
	tk, _ := tr.Track(1)
	if tk.Status != StatusLost || tk.Missed != 1 {
		t.Fatalf("after miss: status=%v missed=%d", tk.Status, tk.Missed)
	}

	obs, _ := tr.Step(frameTime(3), []Cluster{testCluster(1, 10.02, 80.01)})
	if tk.Status != StatusActive || tk.Missed != 0 {
		t.Fatalf("after rematch: status=%v missed=%d", tk.Status, tk.Missed)
	}
	if len(obs) != 1 || obs[0].IsPredicted {
		t.Fatalf("rematch observation = %+v", obs)
	}
}

func TestTrackerGreedyMatchesHungarianOnSeparatedScene(t *testing.T) {
	run := func(alg AssociationAlgorithm) []TrackObservation {
		cfg := testConfig()
		cfg.Association = alg
		tr := mustTracker(t, cfg)
		scene := []Cluster{testCluster(1, 10.0, 80.0), testCluster(2, 14.0, 84.0)}
		tr.Step(frameTime(0), scene)
		tr.Step(frameTime(1), scene)
		obs, _ := tr.Step(frameTime(2), []Cluster{
			testCluster(1, 10.05, 80.02),
			testCluster(2, 14.05, 84.02),
		})
		return obs
	}

	hung := run(AssociationHungarian)
	greedy := run(AssociationGreedy)
	if len(hung) != 2 || len(greedy) != 2 {
		t.Fatalf("observation counts: hungarian=%d greedy=%d, want 2 each", len(hung), len(greedy))
	}
	for i := range hung {
		if hung[i].TrackID != greedy[i].TrackID || hung[i].Centroid != greedy[i].Centroid {
			t.Fatalf("association diverged on well-separated scene:\nhungarian %+v\ngreedy    %+v", hung[i], greedy[i])
		}
	}
}

package zoning

import "testing"

func TestSamplePoints_PointsPerZoneExceedingZoneSizeSamplesEveryPixel(t *testing.T) {
	assignment := ClusterAssignment{
		{0},
		{0},
		{0},
	}
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": {{0.1}, {0.2}, {0.3}},
	})
	zones := []Zone{{ZoneID: 0, OriginalLabel: 0}}
	cfg := DefaultConfig()
	cfg.PointsPerZone = 10

	samples, err := SamplePoints(zones, assignment, indices, identityGeoref, cfg)
	if err != nil {
		t.Fatalf("SamplePoints returned error: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3 (one per pixel)", len(samples))
	}
	for i, s := range samples {
		wantRow := float64(i) + 0.5
		if s.Point.Y != wantRow {
			t.Errorf("sample %d has Y=%g, want %g (scan order)", i, s.Point.Y, wantRow)
		}
	}
}

func TestSamplePoints_FarthestPointSelectionPicksDispersedPoints(t *testing.T) {
	assignment := make(ClusterAssignment, 10)
	for r := range assignment {
		assignment[r] = []int{0}
	}
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": func() [][]float64 {
			rows := make([][]float64, 10)
			for i := range rows {
				rows[i] = []float64{float64(i) / 10}
			}
			return rows
		}(),
	})
	zones := []Zone{{ZoneID: 0, OriginalLabel: 0}}
	cfg := DefaultConfig()
	cfg.PointsPerZone = 1

	samples, err := SamplePoints(zones, assignment, indices, identityGeoref, cfg)
	if err != nil {
		t.Fatalf("SamplePoints returned error: %v", err)
	}
	// n_target = max(1, floor(sqrt(10))) = 3
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	seen := make(map[float64]bool)
	for _, s := range samples {
		if seen[s.Point.Y] {
			t.Errorf("duplicate sample at row %g", s.Point.Y)
		}
		seen[s.Point.Y] = true
	}
}

func TestSamplePoints_NoZonesFails(t *testing.T) {
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": {{0.1}},
	})
	_, err := SamplePoints(nil, ClusterAssignment{{-1}}, indices, identityGeoref, DefaultConfig())
	assertKind(t, err, NoSamples)
}

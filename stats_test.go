package zoning

import (
	"math"
	"testing"
)

func TestComputeStatistics_MeanAndStdDevIgnoreNonFinite(t *testing.T) {
	assignment := ClusterAssignment{
		{0, 0},
		{0, -1},
	}
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": {{0.2, 0.4}, {0.6, math.NaN()}},
	})
	zones := []Zone{{ZoneID: 0, OriginalLabel: 0}}

	if err := ComputeStatistics(zones, assignment, indices); err != nil {
		t.Fatalf("ComputeStatistics returned error: %v", err)
	}
	want := (0.2 + 0.4 + 0.6) / 3
	if math.Abs(zones[0].IndexMean["NDVI"]-want) > 1e-9 {
		t.Errorf("mean = %g, want %g", zones[0].IndexMean["NDVI"], want)
	}
	if zones[0].IndexStdDev["NDVI"] <= 0 {
		t.Errorf("std dev = %g, want > 0", zones[0].IndexStdDev["NDVI"])
	}
}

func TestComputeStatistics_ZeroPixelZoneReportsNaN(t *testing.T) {
	assignment := ClusterAssignment{{-1}}
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": {{0.5}},
	})
	zones := []Zone{{ZoneID: 0, OriginalLabel: 7}}

	if err := ComputeStatistics(zones, assignment, indices); err != nil {
		t.Fatalf("ComputeStatistics returned error: %v", err)
	}
	if !math.IsNaN(zones[0].IndexMean["NDVI"]) {
		t.Errorf("mean = %g, want NaN for a zone with zero pixels", zones[0].IndexMean["NDVI"])
	}
}

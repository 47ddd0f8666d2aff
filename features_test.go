package zoning

import (
	"math"
	"testing"
)

func allTrueMask(h, w int) ValidMask {
	mask := make(ValidMask, h)
	for r := range mask {
		mask[r] = make([]bool, w)
		for c := range mask[r] {
			mask[r][c] = true
		}
	}
	return mask
}

func TestPrepareFeatures_ImputesColumnMedian(t *testing.T) {
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": {{1}, {2}, {math.NaN()}, {4}},
	})
	mask := allTrueMask(4, 1)
	cfg := DefaultConfig()

	features, scan, err := PrepareFeatures(indices, mask, cfg)
	if err != nil {
		t.Fatalf("PrepareFeatures returned error: %v", err)
	}
	if len(scan) != 4 {
		t.Fatalf("scan length = %d, want 4", len(scan))
	}
	// Median imputation (median of 1,2,4 = 2) gives row 2 the same raw
	// value as row 1, so after standardization the two rows must be equal.
	if features.Rows[2][0] != features.Rows[1][0] {
		t.Errorf("imputed row should match the row carrying the median value: got %g vs %g",
			features.Rows[2][0], features.Rows[1][0])
	}
}

func TestPrepareFeatures_EntirelyNonFiniteColumnFails(t *testing.T) {
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": {{math.NaN()}, {math.NaN()}},
	})
	mask := allTrueMask(2, 1)
	_, _, err := PrepareFeatures(indices, mask, DefaultConfig())
	assertKind(t, err, DegenerateFeature)
}

func TestPrepareFeatures_AllZeroVarianceColumnsFail(t *testing.T) {
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": {{0.5}, {0.5}, {0.5}},
	})
	mask := allTrueMask(3, 1)
	_, _, err := PrepareFeatures(indices, mask, DefaultConfig())
	assertKind(t, err, DegenerateFeature)
}

func TestPrepareFeatures_FewerThanTwoPixelsFails(t *testing.T) {
	indices := mustIndexStack(t, []string{"NDVI"}, map[string][][]float64{
		"NDVI": {{0.5}},
	})
	mask := allTrueMask(1, 1)
	_, _, err := PrepareFeatures(indices, mask, DefaultConfig())
	assertKind(t, err, DegenerateFeature)
}

func TestPrepareFeatures_ZeroVarianceColumnAlongsideUsefulOneSurvives(t *testing.T) {
	indices := mustIndexStack(t, []string{"NDVI", "CONST"}, map[string][][]float64{
		"NDVI":  {{0.1}, {0.5}, {0.9}},
		"CONST": {{1}, {1}, {1}},
	})
	mask := allTrueMask(3, 1)
	features, _, err := PrepareFeatures(indices, mask, DefaultConfig())
	if err != nil {
		t.Fatalf("PrepareFeatures returned error: %v", err)
	}
	if len(features.ZeroVarianceColumns) != 1 || features.ZeroVarianceColumns[0] != "CONST" {
		t.Errorf("ZeroVarianceColumns = %v, want [CONST]", features.ZeroVarianceColumns)
	}
	for i, row := range features.Rows {
		if row[1] != 0 {
			t.Errorf("row %d: zero-variance column = %g, want 0", i, row[1])
		}
	}
}

func TestPrepareFeatures_PCAReducesDimensionality(t *testing.T) {
	indices := mustIndexStack(t, []string{"A", "B"}, map[string][][]float64{
		"A": {{0.1}, {0.2}, {0.3}, {0.9}, {0.8}, {0.7}},
		"B": {{0.11}, {0.19}, {0.31}, {0.89}, {0.81}, {0.69}},
	})
	mask := allTrueMask(6, 1)
	cfg := DefaultConfig()
	cfg.UsePCA = true
	cfg.PCAVariance = 0.9

	features, scan, err := PrepareFeatures(indices, mask, cfg)
	if err != nil {
		t.Fatalf("PrepareFeatures returned error: %v", err)
	}
	// A and B are almost perfectly correlated, so the first component
	// alone explains well over 90% of the variance.
	if features.D() != 1 {
		t.Errorf("PCA output has %d columns, want 1", features.D())
	}
	if len(scan) != 6 {
		t.Errorf("scan length = %d, want 6", len(scan))
	}
}

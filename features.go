package zoning

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PixelCoord is one (row, col) location in the source raster.
type PixelCoord struct {
	Row, Col int
}

// PixelScan is the authoritative row-major order in which valid pixels are
// visited. Every downstream component that needs to translate a feature
// matrix row, or a flattened cluster label, back to a pixel uses this
// same order.
type PixelScan []PixelCoord

// scanValidPixels walks mask in row-major order and records every valid
// pixel's coordinate.
func scanValidPixels(mask ValidMask) PixelScan {
	h := len(mask)
	scan := make(PixelScan, 0, h)
	for r := 0; r < h; r++ {
		row := mask[r]
		for c, ok := range row {
			if ok {
				scan = append(scan, PixelCoord{Row: r, Col: c})
			}
		}
	}
	return scan
}

// PrepareFeatures flattens the masked pixels of indices into a feature
// matrix, imputes missing values column-wise by median, standardizes each
// column, and optionally reduces dimensionality with PCA. It returns the
// matrix together with the pixel scan order its rows correspond to.
func PrepareFeatures(indices *IndexStack, mask ValidMask, cfg Config) (*FeatureMatrix, PixelScan, error) {
	scan := scanValidPixels(mask)
	n := len(scan)
	names := indices.Names()
	d0 := len(names)

	if n < 2 {
		return nil, nil, newError(DegenerateFeature, "need at least 2 valid pixels, got %d", n)
	}

	raw := make([][]float64, n)
	for i, px := range scan {
		row := make([]float64, d0)
		for j, name := range names {
			row[j] = indices.At(name, px.Row, px.Col)
		}
		raw[i] = row
	}

	if err := imputeColumns(raw, names); err != nil {
		return nil, nil, err
	}

	zeroVar, err := standardizeColumns(raw, names)
	if err != nil {
		return nil, nil, err
	}
	if len(zeroVar) == d0 {
		return nil, nil, newError(DegenerateFeature, "all %d feature columns are zero-variance", d0)
	}

	matrix := &FeatureMatrix{Rows: raw, ColumnNames: append([]string(nil), names...), ZeroVarianceColumns: zeroVar}

	if cfg.UsePCA {
		reduced, err := applyPCA(raw, cfg.PCAVariance)
		if err != nil {
			return nil, nil, err
		}
		matrix = reduced
		matrix.ZeroVarianceColumns = zeroVar
	}

	return matrix, scan, nil
}

// imputeColumns replaces non-finite entries with the column median computed
// from the finite values of that column, in place.
func imputeColumns(rows [][]float64, names []string) error {
	n := len(rows)
	d := len(names)
	for j := 0; j < d; j++ {
		finite := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			if isFinite(rows[i][j]) {
				finite = append(finite, rows[i][j])
			}
		}
		if len(finite) == 0 {
			return newError(DegenerateFeature, "column %q is entirely non-finite", names[j])
		}
		if len(finite) == n {
			continue
		}
		sort.Float64s(finite)
		m := len(finite)
		median := finite[m/2]
		if m%2 == 0 {
			median = (finite[m/2-1] + finite[m/2]) / 2
		}
		for i := 0; i < n; i++ {
			if !isFinite(rows[i][j]) {
				rows[i][j] = median
			}
		}
	}
	return nil
}

// standardizeColumns subtracts the column mean and divides by the column
// sample standard deviation, in place. A column whose standard deviation
// is zero is set to exactly zero and its name is returned rather than
// divided by zero; it is retained for dimensional consistency.
func standardizeColumns(rows [][]float64, names []string) ([]string, error) {
	n := len(rows)
	d := len(names)
	var zeroVariance []string

	for j := 0; j < d; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = rows[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			zeroVariance = append(zeroVariance, names[j])
			for i := 0; i < n; i++ {
				rows[i][j] = 0
			}
			continue
		}
		for i := 0; i < n; i++ {
			rows[i][j] = (col[i] - mean) / std
		}
	}
	return zeroVariance, nil
}

// applyPCA computes principal components of the standardized matrix rows
// and retains the smallest prefix whose cumulative explained-variance
// ratio meets minVariance.
func applyPCA(rows [][]float64, minVariance float64) (*FeatureMatrix, error) {
	n := len(rows)
	d := len(rows[0])

	data := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			data.Set(i, j, rows[i][j])
		}
	}

	pc, ok := stat.PrincipalComponents(data, nil)
	if !ok {
		return nil, newError(DegenerateFeature, "principal component decomposition failed")
	}

	var vars mat.VecDense
	pc.VarsTo(&vars)

	total := 0.0
	for i := 0; i < vars.Len(); i++ {
		total += vars.AtVec(i)
	}

	keep := vars.Len()
	if total > 0 {
		cum := 0.0
		for i := 0; i < vars.Len(); i++ {
			cum += vars.AtVec(i)
			if cum/total >= minVariance {
				keep = i + 1
				break
			}
		}
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)

	var scores mat.Dense
	scores.Mul(data, vectors.Slice(0, d, 0, keep))

	out := make([][]float64, n)
	colNames := make([]string, keep)
	for j := 0; j < keep; j++ {
		colNames[j] = pcColumnName(j + 1)
	}
	for i := 0; i < n; i++ {
		row := make([]float64, keep)
		for j := 0; j < keep; j++ {
			row[j] = scores.At(i, j)
		}
		out[i] = row
	}

	return &FeatureMatrix{Rows: out, ColumnNames: colNames}, nil
}

func pcColumnName(i int) string {
	return "PC" + strconv.Itoa(i)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

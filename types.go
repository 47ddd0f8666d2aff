package zoning

import (
	"time"

	"github.com/ctessum/geom"
)

// RasterGeoref is the affine mapping from pixel (row, col) to world (x, y):
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
//
// It is immutable for the lifetime of a run.
type RasterGeoref struct {
	A, B, C float64
	D, E, F float64
}

// Apply maps a pixel-space coordinate (col, row) — which may carry the
// fractional 0.5 offset needed to reach a pixel center — to world
// coordinates.
func (g RasterGeoref) Apply(col, row float64) geom.Point {
	return geom.Point{
		X: g.A*col + g.B*row + g.C,
		Y: g.D*col + g.E*row + g.F,
	}
}

// PixelAreaM2 is the area of one pixel footprint under this georeferencing,
// treated as square meters when the CRS is a projected, meter-based system.
func (g RasterGeoref) PixelAreaM2() float64 {
	area := g.A*g.E - g.B*g.D
	if area < 0 {
		area = -area
	}
	return area
}

// IndexStack is an ordered mapping from uppercase index name to a (H, W)
// array of real values. Insertion order is authoritative for column order
// in the feature matrix and in serialized output.
type IndexStack struct {
	names  []string
	arrays map[string][][]float64
	h, w   int
}

// NewIndexStack builds a stack from an explicit name order and an array for
// each name. All arrays must share the same (H, W) shape.
func NewIndexStack(order []string, arrays map[string][][]float64) (*IndexStack, error) {
	if len(order) == 0 {
		return nil, newError(InvalidInput, "index stack must be non-empty")
	}
	var h, w int
	for i, name := range order {
		arr, ok := arrays[name]
		if !ok {
			return nil, newError(InvalidInput, "missing array for index %q", name)
		}
		if i == 0 {
			h = len(arr)
			if h == 0 {
				return nil, newError(InvalidInput, "index %q has zero rows", name)
			}
			w = len(arr[0])
			if w == 0 {
				return nil, newError(InvalidInput, "index %q has zero columns", name)
			}
		}
		if len(arr) != h {
			return nil, newError(InvalidInput, "index %q has %d rows, want %d", name, len(arr), h)
		}
		for r, row := range arr {
			if len(row) != w {
				return nil, newError(InvalidInput, "index %q row %d has %d columns, want %d", name, r, len(row), w)
			}
		}
	}
	names := make([]string, len(order))
	copy(names, order)
	return &IndexStack{names: names, arrays: arrays, h: h, w: w}, nil
}

// Names returns the index names in insertion (display/serialization) order.
func (s *IndexStack) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// At returns the value of index name at pixel (row, col).
func (s *IndexStack) At(name string, row, col int) float64 {
	return s.arrays[name][row][col]
}

// Dims returns the shared (height, width) of every index array.
func (s *IndexStack) Dims() (h, w int) {
	return s.h, s.w
}

// FieldPolygon is a simple or multi-polygon in the run's coordinate
// reference system, used only for mask rasterization.
type FieldPolygon struct {
	geom.Polygonal
}

// ValidMask is a boolean (H, W) selector: true iff the pixel center falls
// inside FieldPolygon and every index has a finite value there.
type ValidMask [][]bool

// Count returns the number of true entries.
func (m ValidMask) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// FeatureMatrix is a (N, D) real matrix; row i corresponds to the i-th
// valid pixel in row-major scan order over (H, W).
type FeatureMatrix struct {
	Rows [][]float64
	// ColumnNames labels each column: one entry per index when PCA is not
	// applied, or "PC1".."PCk" when it is.
	ColumnNames []string
	// ZeroVarianceColumns records, by original index name, which columns
	// were zero-variance and therefore zeroed rather than standardized.
	ZeroVarianceColumns []string
}

// N returns the row count.
func (f *FeatureMatrix) N() int {
	return len(f.Rows)
}

// D returns the column count, or zero for an empty matrix.
func (f *FeatureMatrix) D() int {
	if len(f.Rows) == 0 {
		return 0
	}
	return len(f.Rows[0])
}

// ClusterAssignment is a (H, W) grid of labels in {-1, 0, ..., K-1}; -1
// marks a pixel outside the valid mask.
type ClusterAssignment [][]int

// ClusterMetrics summarizes the quality of a finished clustering.
type ClusterMetrics struct {
	NClusters        int
	Silhouette       float64
	CalinskiHarabasz float64
	Inertia          float64
	// ClusterSizes maps original label to pixel count.
	ClusterSizes map[int]int
	Timestamp    time.Time
}

// Zone is one surviving management zone after size filtering.
type Zone struct {
	ZoneID        int
	OriginalLabel int
	Geometry      geom.Polygonal
	AreaHa        float64
	PerimeterM    float64
	Compactness   float64
	// IndexMean/IndexStdDev are populated by the Statistician, keyed by
	// index name; as maps they carry no order (IndexStack.Names gives the
	// display order).
	IndexMean   map[string]float64
	IndexStdDev map[string]float64
}

// SamplePoint is one spatially-dispersed sample placed inside a zone.
type SamplePoint struct {
	Point      geom.Point
	ZoneID     int
	IndexValue map[string]float64
}

// ZoningResult aggregates every pipeline output for one run.
type ZoningResult struct {
	Zones   []Zone
	Samples []SamplePoint
	Metrics ClusterMetrics
	CRS     string
}

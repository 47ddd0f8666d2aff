package zoning

import "testing"

func TestPolygonize_OneLabelPerRectangle(t *testing.T) {
	assignment := ClusterAssignment{
		{0, 0, 1},
		{0, 0, 1},
	}
	zones, err := Polygonize(assignment, identityGeoref)
	if err != nil {
		t.Fatalf("Polygonize returned error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("got %d zones, want 2", len(zones))
	}
	if zones[0].label != 0 || zones[1].label != 1 {
		t.Errorf("zones not ordered ascending by label: %d, %d", zones[0].label, zones[1].label)
	}
	if got := zones[0].geometry.Area(); got != 4 {
		t.Errorf("label 0 area = %g, want 4 (2x2 unioned rectangles)", got)
	}
	if got := zones[1].geometry.Area(); got != 2 {
		t.Errorf("label 1 area = %g, want 2 (2x1 unioned rectangles)", got)
	}
}

func TestPolygonize_DisjointPixelsFormSeparateShells(t *testing.T) {
	assignment := ClusterAssignment{
		{0, -1, 0},
	}
	zones, err := Polygonize(assignment, identityGeoref)
	if err != nil {
		t.Fatalf("Polygonize returned error: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(zones))
	}
	if got := zones[0].geometry.Area(); got != 2 {
		t.Errorf("disjoint-pixel label area = %g, want 2", got)
	}
}

func TestPolygonize_AllInvalidFails(t *testing.T) {
	assignment := ClusterAssignment{{-1, -1}}
	_, err := Polygonize(assignment, identityGeoref)
	assertKind(t, err, NoZones)
}

// northUpGeoref has a negative pixel height (E < 0), the conventional
// orientation for a north-up raster. Its determinant (A*E - B*D) is
// negative, which flips dissolvePixels' ring winding relative to
// identityGeoref's positive-determinant rings. assemblePolygonal must
// still recognize a hole-free zone as a shell under this convention.
var northUpGeoref = RasterGeoref{A: 1, B: 0, C: 0, D: 0, E: -1, F: 0}

func TestPolygonize_NegativeDeterminantGeorefStillProducesShells(t *testing.T) {
	assignment := ClusterAssignment{
		{0, 0, 1},
		{0, 0, 1},
	}
	zones, err := Polygonize(assignment, northUpGeoref)
	if err != nil {
		t.Fatalf("Polygonize returned error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("got %d zones, want 2", len(zones))
	}
	if got := zones[0].geometry.Area(); got != 4 {
		t.Errorf("label 0 area = %g, want 4 (2x2 unioned rectangles)", got)
	}
	if got := zones[1].geometry.Area(); got != 2 {
		t.Errorf("label 1 area = %g, want 2 (2x1 unioned rectangles)", got)
	}
}

func TestPolygonize_NegativeDeterminantSinglePixelIsShellNotHole(t *testing.T) {
	assignment := ClusterAssignment{{0}}
	zones, err := Polygonize(assignment, northUpGeoref)
	if err != nil {
		t.Fatalf("Polygonize returned error: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(zones))
	}
	if got := zones[0].geometry.Area(); got != 1 {
		t.Errorf("single-pixel area = %g, want 1", got)
	}
}

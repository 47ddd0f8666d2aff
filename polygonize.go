package zoning

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// initialZone is one pre-filter polygonized cluster: a label and its
// dissolved world-coordinate geometry, before the Zone Filter drops
// undersized ones and reassigns consecutive zone IDs.
type initialZone struct {
	label    int
	geometry geom.Polygonal
}

// Polygonize converts a labeled pixel raster into one dissolved polygon
// per label. Each pixel's rectangular footprint is derived from georef;
// adjacent same-label footprints are unioned by cancelling the shared
// edge between them, the classic rasterize-then-dissolve technique:
// an edge traversed in both directions by two neighboring pixels is
// interior and vanishes, leaving only the boundary of the merged
// region. Output is ordered ascending by label.
func Polygonize(assignment ClusterAssignment, georef RasterGeoref) ([]initialZone, error) {
	pixelsByLabel := make(map[int][]PixelCoord)
	for r, row := range assignment {
		for c, label := range row {
			if label < 0 {
				continue
			}
			pixelsByLabel[label] = append(pixelsByLabel[label], PixelCoord{Row: r, Col: c})
		}
	}

	labels := make([]int, 0, len(pixelsByLabel))
	for label := range pixelsByLabel {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	zones := make([]initialZone, 0, len(labels))
	for _, label := range labels {
		rings := dissolvePixels(pixelsByLabel[label], georef)
		geometry, err := assemblePolygonal(rings)
		if err != nil {
			return nil, err
		}
		zones = append(zones, initialZone{label: label, geometry: geometry})
	}

	if len(zones) == 0 {
		return nil, newError(NoZones, "polygonizer produced zero records from a labeled raster with no valid pixels")
	}
	return zones, nil
}

type directedEdge struct {
	from, to geom.Point
}

// dissolvePixels returns the closed boundary rings of the union of every
// pixel's rectangular footprint, via edge cancellation.
func dissolvePixels(pixels []PixelCoord, georef RasterGeoref) [][]geom.Point {
	survivors := make(map[directedEdge]bool)

	addOrCancel := func(from, to geom.Point) {
		reverse := directedEdge{from: to, to: from}
		if survivors[reverse] {
			delete(survivors, reverse)
			return
		}
		survivors[directedEdge{from: from, to: to}] = true
	}

	for _, px := range pixels {
		col, row := float64(px.Col), float64(px.Row)
		p00 := georef.Apply(col, row)
		p10 := georef.Apply(col+1, row)
		p11 := georef.Apply(col+1, row+1)
		p01 := georef.Apply(col, row+1)

		addOrCancel(p00, p10)
		addOrCancel(p10, p11)
		addOrCancel(p11, p01)
		addOrCancel(p01, p00)
	}

	return traceRings(survivors)
}

// traceRings links surviving directed edges into closed point loops by
// following each edge's endpoint to the next edge starting there.
func traceRings(edges map[directedEdge]bool) [][]geom.Point {
	byStart := make(map[geom.Point][]geom.Point)
	for e := range edges {
		byStart[e.from] = append(byStart[e.from], e.to)
	}

	var rings [][]geom.Point
	for len(edges) > 0 {
		var start directedEdge
		for e := range edges {
			start = e
			break
		}

		ring := []geom.Point{start.from}
		current := start
		for {
			delete(edges, current)
			next := popNext(byStart, current.to)
			ring = append(ring, current.to)
			if current.to == start.from {
				break
			}
			current = directedEdge{from: current.to, to: next}
		}
		rings = append(rings, ring)
	}
	return rings
}

// popNext removes and returns one recorded successor point for from,
// keeping byStart consistent with which directed edges remain.
func popNext(byStart map[geom.Point][]geom.Point, from geom.Point) geom.Point {
	options := byStart[from]
	next := options[0]
	if len(options) == 1 {
		delete(byStart, from)
	} else {
		byStart[from] = options[1:]
	}
	return next
}

// assemblePolygonal classifies each ring as an outer shell or a hole by
// even-odd nesting depth — the count of other rings that contain it —
// rather than by the sign of its shoelace area. Depth-based
// classification is independent of winding direction, which matters
// because dissolvePixels traces rings clockwise or counterclockwise
// depending on the sign of the georef's determinant (A*E - B*D): a
// conventional north-up raster with negative pixel height flips it
// relative to an identity georef, and a sign-based classifier would
// misclassify every hole-free zone as "all holes" under that
// convention. Each hole is assigned to its immediate enclosing shell
// (the one shell whose depth is exactly one less and which contains
// it), breaking ties by smallest area. Returns a single Polygon when
// exactly one shell resulted or a MultiPolygon otherwise.
func assemblePolygonal(rings [][]geom.Point) (geom.Polygonal, error) {
	if len(rings) == 0 {
		return nil, newError(NoZones, "a labeled region produced no boundary rings")
	}

	type ringRec struct {
		ring  []geom.Point
		area  float64
		depth int
		holes [][]geom.Point
	}

	recs := make([]*ringRec, len(rings))
	for i, ring := range rings {
		recs[i] = &ringRec{ring: ring, area: math.Abs(signedArea(ring))}
	}

	for i, r := range recs {
		probe := r.ring[0]
		depth := 0
		for j, other := range recs {
			if i == j {
				continue
			}
			if pointInRing(probe, other.ring) {
				depth++
			}
		}
		r.depth = depth
	}

	var shells []*ringRec
	var holes []*ringRec
	for _, r := range recs {
		if r.depth%2 == 0 {
			shells = append(shells, r)
		} else {
			holes = append(holes, r)
		}
	}
	if len(shells) == 0 {
		return nil, newError(NoZones, "a labeled region produced only hole rings")
	}

	for _, hole := range holes {
		probe := hole.ring[0]
		var owner *ringRec
		for _, s := range shells {
			if s.depth != hole.depth-1 {
				continue
			}
			if !pointInRing(probe, s.ring) {
				continue
			}
			if owner == nil || s.area < owner.area {
				owner = s
			}
		}
		if owner == nil {
			// No immediate parent was found by depth and containment
			// (shouldn't happen for a consistent ray-cast depth count);
			// promote the ring to its own shell rather than drop it.
			shells = append(shells, hole)
			continue
		}
		owner.holes = append(owner.holes, hole.ring)
	}

	polys := make([]geom.Polygon, len(shells))
	for i, s := range shells {
		poly := make(geom.Polygon, 0, 1+len(s.holes))
		poly = append(poly, s.ring)
		poly = append(poly, s.holes...)
		polys[i] = poly
	}

	if len(polys) == 1 {
		return polys[0], nil
	}
	return geom.MultiPolygon(polys), nil
}

func signedArea(ring []geom.Point) float64 {
	sum := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		p0 := ring[i]
		p1 := ring[(i+1)%n]
		sum += p0.X*p1.Y - p1.X*p0.Y
	}
	return sum / 2
}

// pointInRing is a standard ray-casting point-in-polygon test, used both
// to compute each ring's containment depth and to assign holes to their
// owning shell during assembly. Being parity-based, its result does not
// depend on the ring's winding direction.
func pointInRing(p geom.Point, ring []geom.Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := pj.X + (p.Y-pj.Y)/(pi.Y-pj.Y)*(pi.X-pj.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

package zoning

import (
	"math"
	"math/rand/v2"

	"github.com/ctessum/geom"
)

// SamplePoints places spatially-dispersed sample points inside each
// zone by farthest-point (spatial inhibition) selection, then emits
// them ordered by zone_id ascending, selection order within a zone.
func SamplePoints(zones []Zone, assignment ClusterAssignment, indices *IndexStack, georef RasterGeoref, cfg Config) ([]SamplePoint, error) {
	names := indices.Names()
	var samples []SamplePoint

	for _, zone := range zones {
		pixels := pixelsWithLabel(assignment, zone.OriginalLabel)
		chosen := selectZoneSamples(pixels, georef, cfg.PointsPerZone, cfg.Seed, zone.ZoneID)
		for _, px := range chosen {
			values := make(map[string]float64, len(names))
			for _, name := range names {
				values[name] = indices.At(name, px.Row, px.Col)
			}
			samples = append(samples, SamplePoint{
				Point:      georef.Apply(float64(px.Col)+0.5, float64(px.Row)+0.5),
				ZoneID:     zone.ZoneID,
				IndexValue: values,
			})
		}
	}

	if len(samples) == 0 {
		return nil, newError(NoSamples, "no sample point was emitted across %d zones", len(zones))
	}
	return samples, nil
}

// pixelsWithLabel returns, in row-major scan order, every pixel whose
// assignment equals label.
func pixelsWithLabel(assignment ClusterAssignment, label int) []PixelCoord {
	var out []PixelCoord
	for r, row := range assignment {
		for c, l := range row {
			if l == label {
				out = append(out, PixelCoord{Row: r, Col: c})
			}
		}
	}
	return out
}

// selectZoneSamples implements one zone's sampling procedure: take
// every pixel if the zone is small, otherwise run farthest-point
// selection seeded deterministically by (seed, zoneID).
func selectZoneSamples(pixels []PixelCoord, georef RasterGeoref, pointsPerZone int, seed int64, zoneID int) []PixelCoord {
	p := len(pixels)
	if p == 0 {
		return nil
	}

	nTarget := int(math.Floor(math.Sqrt(float64(p))))
	if pointsPerZone > nTarget {
		nTarget = pointsPerZone
	}
	if nTarget >= p {
		return pixels
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(uint32(zoneID))))

	worldPoints := make([]geom.Point, p)
	for i, px := range pixels {
		worldPoints[i] = georef.Apply(float64(px.Col)+0.5, float64(px.Row)+0.5)
	}

	selected := make([]int, 0, nTarget)
	selectedSet := make(map[int]bool, nTarget)

	first := rng.IntN(p)
	selected = append(selected, first)
	selectedSet[first] = true

	minDist := make([]float64, p)
	for i := range minDist {
		minDist[i] = sqDist(worldPoints[i], worldPoints[first])
	}

	for len(selected) < nTarget {
		best := -1
		bestDist := -1.0
		for i := 0; i < p; i++ {
			if selectedSet[i] {
				continue
			}
			if minDist[i] > bestDist {
				bestDist = minDist[i]
				best = i
			}
		}
		selected = append(selected, best)
		selectedSet[best] = true
		for i := 0; i < p; i++ {
			if selectedSet[i] {
				continue
			}
			d := sqDist(worldPoints[i], worldPoints[best])
			if d < minDist[i] {
				minDist[i] = d
			}
		}
	}

	out := make([]PixelCoord, len(selected))
	for i, idx := range selected {
		out[i] = pixels[idx]
	}
	return out
}

func sqDist(a, b geom.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

package zoning

import "math"

// FilterZones computes geometric attributes for each initial zone,
// drops zones smaller than minZoneSizeHa, and reassigns zone_id
// consecutively from 0 in original-label order among survivors. The
// original ClusterAssignment raster is left untouched: downstream
// components translate between original label and zone_id using the
// Zone records returned here.
func FilterZones(initial []initialZone, minZoneSizeHa float64) ([]Zone, error) {
	survivors := make([]Zone, 0, len(initial))

	for _, iz := range initial {
		areaM2 := iz.geometry.Area()
		areaHa := areaM2 / 10000
		if areaHa < minZoneSizeHa {
			continue
		}
		perimeterM := iz.geometry.Length()
		compactness := 0.0
		if perimeterM > 0 {
			compactness = 4 * math.Pi * areaM2 / (perimeterM * perimeterM)
		}
		survivors = append(survivors, Zone{
			OriginalLabel: iz.label,
			Geometry:      iz.geometry,
			AreaHa:        areaHa,
			PerimeterM:    perimeterM,
			Compactness:   compactness,
		})
	}

	if len(survivors) == 0 {
		return nil, newError(AllZonesFiltered, "no zone meets the minimum size of %g ha", minZoneSizeHa)
	}

	for i := range survivors {
		survivors[i].ZoneID = i
	}
	return survivors, nil
}

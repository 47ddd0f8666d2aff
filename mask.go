package zoning

import (
	"math"

	"github.com/ctessum/geom"
)

// BuildMask rasterizes field into a boolean (H, W) mask: true iff the
// pixel center lies inside field (boundary inclusive) and every index in
// indices has a finite value at that pixel.
//
// Pixel-center containment, not pixel-area containment, is the rule: it
// keeps this mask and the Polygonizer's later raster-to-polygon pass in
// agreement about which pixels belong to the field regardless of how
// rough the polygon boundary is.
func BuildMask(field FieldPolygon, georef RasterGeoref, indices *IndexStack) (ValidMask, error) {
	h, w := indices.Dims()
	names := indices.Names()

	mask := make(ValidMask, h)
	for r := 0; r < h; r++ {
		mask[r] = make([]bool, w)
		for c := 0; c < w; c++ {
			center := georef.Apply(float64(c)+0.5, float64(r)+0.5)
			within := center.Within(field.Polygonal)
			if within != geom.Inside && within != geom.OnEdge {
				continue
			}
			if !allFinite(indices, names, r, c) {
				continue
			}
			mask[r][c] = true
		}
	}

	if mask.Count() == 0 {
		return nil, newError(NoValidPixels, "no pixel is both inside the field polygon and fully finite across all indices")
	}
	return mask, nil
}

func allFinite(indices *IndexStack, names []string, row, col int) bool {
	for _, name := range names {
		v := indices.At(name, row, col)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

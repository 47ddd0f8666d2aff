// Package zoning partitions an agricultural field into a small number of
// spectrally homogeneous management zones and places representative
// sampling points inside each one.
//
// A run takes an in-memory stack of per-pixel index arrays (NDVI, NDRE,
// and so on), a field boundary polygon, and an affine georeferencing,
// and produces a ZoningResult: dissolved zone polygons with geometric
// and spectral statistics, spatially-dispersed sample points, and the
// clustering quality metrics behind the chosen zone count.
//
// # Running the pipeline
//
//	cfg, err := zoning.New(zoning.WithMinZoneSizeHa(0.5), zoning.WithPointsPerZone(5))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := zoning.Run(ctx, indices, field, georef, "EPSG:32719", cfg)
//	if err != nil {
//	    if errors.Is(err, zoning.ErrAllZonesFiltered) {
//	        // every candidate zone was smaller than MinZoneSizeHa
//	    }
//	    log.Fatal(err)
//	}
//
// # Pipeline stages
//
// Run walks a strictly linear sequence, each stage consuming the
// previous stage's product: BuildMask, PrepareFeatures,
// SelectClusterCount, Cluster, Polygonize, FilterZones, SamplePoints,
// ComputeStatistics. A WithProgress RunOption can observe the state
// transitions between them; no stage retries or logs internally, and
// every failure returns a typed *Error rather than a partial result.
//
// # Determinism
//
// Every random choice — k-means initialization and per-zone
// farthest-point sampling — is threaded explicitly from Config.Seed.
// Two runs over identical inputs and the same seed produce the same
// zone geometries, sample coordinates, and metrics.
//
// The core performs no I/O. Rendering a ZoningResult to GeoPackage,
// CSV, JSON, or PNG is a collaborator's job; see zoningexport for the
// CSV/JSON schema this package's output is designed to feed.
package zoning

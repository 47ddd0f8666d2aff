// Package zoningexport renders a zoning.ZoningResult into the
// collaborator-facing file formats described by the core's external
// interface: a flat CSV of per-zone geometry and index statistics, and
// a JSON document of clustering metrics. The core itself performs no
// I/O; this package is one of the collaborators the core's output
// contract is written for.
package zoningexport

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/precisionag/zoning"
)

// FormatZoneCSV renders zones to CSV text with columns zone_id,
// area_ha, perimeter_m, compactness, then NAME_mean/NAME_std for every
// index name, in IndexStack display order.
func FormatZoneCSV(zones []zoning.Zone, indexNames []string) (string, error) {
	if len(zones) == 0 {
		return "", fmt.Errorf("zoningexport: no zones to export")
	}

	var b strings.Builder
	b.WriteString("zone_id,area_ha,perimeter_m,compactness")
	for _, name := range indexNames {
		fmt.Fprintf(&b, ",%s_mean,%s_std", name, name)
	}
	b.WriteString("\n")

	for _, z := range zones {
		fmt.Fprintf(&b, "%d,%.6f,%.6f,%.6f", z.ZoneID, z.AreaHa, z.PerimeterM, z.Compactness)
		for _, name := range indexNames {
			fmt.Fprintf(&b, ",%.6f,%.6f", z.IndexMean[name], z.IndexStdDev[name])
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// metricsJSON mirrors the persisted metrics JSON schema expectation:
// n_clusters, silhouette, calinski_harabasz, inertia, cluster_sizes
// (label string to count), timestamp (ISO-8601 UTC).
type metricsJSON struct {
	NClusters        int            `json:"n_clusters"`
	Silhouette       float64        `json:"silhouette"`
	CalinskiHarabasz float64        `json:"calinski_harabasz"`
	Inertia          float64        `json:"inertia"`
	ClusterSizes     map[string]int `json:"cluster_sizes"`
	Timestamp        string         `json:"timestamp"`
}

// FormatMetricsJSON renders ClusterMetrics to the persisted schema.
func FormatMetricsJSON(metrics zoning.ClusterMetrics) ([]byte, error) {
	sizes := make(map[string]int, len(metrics.ClusterSizes))
	for label, count := range metrics.ClusterSizes {
		sizes[fmt.Sprintf("%d", label)] = count
	}

	doc := metricsJSON{
		NClusters:        metrics.NClusters,
		Silhouette:       metrics.Silhouette,
		CalinskiHarabasz: metrics.CalinskiHarabasz,
		Inertia:          metrics.Inertia,
		ClusterSizes:     sizes,
		Timestamp:        metrics.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// IndexSummary is the across-zone summary of one index's zone-level
// mean values: how evenly (or unevenly) a particular index's spectral
// signature varies between management zones.
type IndexSummary struct {
	IndexName  string
	ZoneCount  int
	MeanOfMean float64
	MinOfMean  float64
	MaxOfMean  float64
	TotalArea  float64
}

// SummarizeIndex reports the distribution, across zones, of one
// index's per-zone mean value, along with the zones' combined area.
func SummarizeIndex(zones []zoning.Zone, indexName string) IndexSummary {
	if len(zones) == 0 {
		return IndexSummary{IndexName: indexName}
	}

	values := make([]float64, 0, len(zones))
	totalArea := 0.0
	for _, z := range zones {
		v, ok := z.IndexMean[indexName]
		if !ok {
			continue
		}
		values = append(values, v)
		totalArea += z.AreaHa
	}
	if len(values) == 0 {
		return IndexSummary{IndexName: indexName}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return IndexSummary{
		IndexName:  indexName,
		ZoneCount:  len(values),
		MeanOfMean: sum / float64(len(values)),
		MinOfMean:  sorted[0],
		MaxOfMean:  sorted[len(sorted)-1],
		TotalArea:  totalArea,
	}
}

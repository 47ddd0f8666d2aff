package zoning

import (
	"time"

	"github.com/precisionag/zoning/internal/kmeans"
)

// Cluster fits k-means on features with the given k and seed, then
// scatters the resulting labels back into an (H, W) ClusterAssignment
// using scan — the same pixel order PrepareFeatures produced the
// feature matrix rows in.
func Cluster(features *FeatureMatrix, scan PixelScan, mask ValidMask, k int, seed int64) (ClusterAssignment, ClusterMetrics, error) {
	res, err := kmeans.Run(features.Rows, k, seed)
	if err != nil {
		return nil, ClusterMetrics{}, newError(ClusteringFailure, "%v", err)
	}
	actualClusters := nonEmptyClusters(res.Labels, k)
	if actualClusters < 2 {
		return nil, ClusterMetrics{}, newError(ClusteringFailure, "k=%d produced fewer than 2 non-empty clusters", k)
	}

	h := len(mask)
	w := 0
	if h > 0 {
		w = len(mask[0])
	}
	assignment := make(ClusterAssignment, h)
	for r := range assignment {
		row := make([]int, w)
		for c := range row {
			row[c] = -1
		}
		assignment[r] = row
	}
	for i, px := range scan {
		assignment[px.Row][px.Col] = res.Labels[i]
	}

	sizes := make(map[int]int)
	for _, l := range res.Labels {
		sizes[l]++
	}

	metrics := ClusterMetrics{
		NClusters:        actualClusters,
		Silhouette:       kmeans.Silhouette(features.Rows, res.Labels, k),
		CalinskiHarabasz: kmeans.CalinskiHarabasz(features.Rows, res.Labels, k),
		Inertia:          res.Inertia,
		ClusterSizes:     sizes,
		Timestamp:        time.Now().UTC(),
	}

	return assignment, metrics, nil
}

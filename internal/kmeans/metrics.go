package kmeans

import "math"

// Silhouette returns the mean silhouette coefficient over all rows, in
// [-1, 1]. Rows whose cluster has only one member contribute 0, the
// conventional definition for a singleton cluster.
func Silhouette(rows [][]float64, labels []int, k int) float64 {
	n := len(rows)
	if n < 2 || k < 2 {
		return 0
	}

	members := make([][]int, k)
	for i, c := range labels {
		members[c] = append(members[c], i)
	}

	total := 0.0
	for i, row := range rows {
		own := labels[i]
		a := meanDistTo(row, rows, members[own], i)

		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || len(members[c]) == 0 {
				continue
			}
			d := meanDistTo(row, rows, members[c], -1)
			if d < b {
				b = d
			}
		}

		switch {
		case len(members[own]) <= 1:
			// singleton cluster: silhouette is 0 by definition
		case math.IsInf(b, 1):
			// no other non-empty cluster exists
		case a == 0 && b == 0:
			// coincident point
		default:
			total += (b - a) / math.Max(a, b)
		}
	}
	return total / float64(n)
}

// meanDistTo averages the Euclidean distance from row to every member
// index in group, excluding excludeIdx (the row's own index, when group
// is its own cluster).
func meanDistTo(row []float64, rows [][]float64, group []int, excludeIdx int) float64 {
	sum := 0.0
	count := 0
	for _, idx := range group {
		if idx == excludeIdx {
			continue
		}
		sum += math.Sqrt(sqDist(row, rows[idx]))
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// CalinskiHarabasz returns the variance-ratio criterion: higher is
// better-separated. It is undefined (returns 0) when k == 1 or k == n,
// the two edge cases where between- or within-cluster variance
// degenerates.
func CalinskiHarabasz(rows [][]float64, labels []int, k int) float64 {
	n := len(rows)
	if k < 2 || k >= n {
		return 0
	}
	d := len(rows[0])

	overall := make([]float64, d)
	for _, row := range rows {
		for j, v := range row {
			overall[j] += v
		}
	}
	for j := range overall {
		overall[j] /= float64(n)
	}

	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, d)
	}
	for i, row := range rows {
		c := labels[i]
		counts[c]++
		for j, v := range row {
			sums[c][j] += v
		}
	}

	between := 0.0
	within := 0.0
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		centroid := make([]float64, d)
		for j := range centroid {
			centroid[j] = sums[c][j] / float64(counts[c])
		}
		between += float64(counts[c]) * sqDist(centroid, overall)
	}
	for i, row := range rows {
		c := labels[i]
		centroid := make([]float64, d)
		for j := range centroid {
			centroid[j] = sums[c][j] / float64(counts[c])
		}
		within += sqDist(row, centroid)
	}
	if within == 0 {
		return 0
	}
	return (between / float64(k-1)) / (within / float64(n-k))
}

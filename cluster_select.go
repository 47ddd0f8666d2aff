package zoning

import (
	"context"

	"github.com/precisionag/zoning/internal/kmeans"
	"github.com/precisionag/zoning/internal/parallel"
)

// candidateScore is one evaluated cluster count and the metrics that
// decide whether it wins.
type candidateScore struct {
	k                int
	silhouette       float64
	calinskiHarabasz float64
	ok               bool
}

// SelectClusterCount returns the cluster count the run should fit. If
// cfg.ForceK is set it is validated and returned directly; otherwise
// every admissible k in [2, min(cfg.MaxZones, N-1)] is fit and scored,
// and the best by silhouette (ties broken by Calinski-Harabasz, then by
// smaller k) wins.
func SelectClusterCount(ctx context.Context, features *FeatureMatrix, cfg Config) (int, error) {
	n := features.N()
	upper := cfg.MaxZones
	if n-1 < upper {
		upper = n - 1
	}

	// force_k's bound is checked ahead of the general sample-count guard:
	// per spec §4.3/§8 property 9, a forced run either succeeds or fails
	// with InvalidClusterCount/ClusteringFailure, never InsufficientSamples.
	if cfg.ForceK != nil {
		k := *cfg.ForceK
		if k < 2 || k > upper {
			return 0, newErrorFields(InvalidClusterCount,
				map[string]interface{}{"force_k": k, "max_admissible": upper},
				"force_k=%d is outside the admissible range [2, %d]", k, upper)
		}
		return k, nil
	}

	if n-1 < 2 {
		return 0, newError(InsufficientSamples, "need at least 3 valid pixels to cluster, got %d", n)
	}

	candidates := make([]int, 0, upper-1)
	for k := 2; k <= upper; k++ {
		candidates = append(candidates, k)
	}

	jobs := make([]parallel.Job[candidateScore], len(candidates))
	for i, k := range candidates {
		k := k
		jobs[i] = func(ctx context.Context, index int) (candidateScore, error) {
			res, err := kmeans.Run(features.Rows, k, cfg.Seed)
			if err != nil {
				return candidateScore{k: k}, nil
			}
			if nonEmptyClusters(res.Labels, k) < 2 {
				return candidateScore{k: k}, nil
			}
			return candidateScore{
				k:                k,
				silhouette:       kmeans.Silhouette(features.Rows, res.Labels, k),
				calinskiHarabasz: kmeans.CalinskiHarabasz(features.Rows, res.Labels, k),
				ok:               true,
			}, nil
		}
	}

	concurrency := len(jobs)
	if concurrency > 8 {
		concurrency = 8
	}
	results := parallel.Run(ctx, jobs, concurrency)

	best, found := bestCandidate(results)
	if !found {
		return 0, newError(ClusteringFailure, "no candidate k in [2, %d] produced at least 2 non-empty clusters", upper)
	}
	return best.k, nil
}

func nonEmptyClusters(labels []int, k int) int {
	seen := make([]bool, k)
	count := 0
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			count++
		}
	}
	return count
}

// bestCandidate picks the winning candidate by silhouette, then
// Calinski-Harabasz, then smaller k, skipping any candidate whose job
// errored or whose clustering was degenerate.
func bestCandidate(results []parallel.Result[candidateScore]) (candidateScore, bool) {
	var best candidateScore
	found := false
	for _, r := range results {
		if r.Err != nil || !r.Value.ok {
			continue
		}
		c := r.Value
		if !found {
			best, found = c, true
			continue
		}
		if c.silhouette > best.silhouette {
			best = c
			continue
		}
		if c.silhouette < best.silhouette {
			continue
		}
		if c.calinskiHarabasz > best.calinskiHarabasz {
			best = c
			continue
		}
		if c.calinskiHarabasz < best.calinskiHarabasz {
			continue
		}
		if c.k < best.k {
			best = c
		}
	}
	return best, found
}

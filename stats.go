package zoning

import "math"

// ComputeStatistics fills in each zone's per-index mean and standard
// deviation, computed over the pixels whose ClusterAssignment equals
// the zone's original label, ignoring non-finite values. A zone with
// zero such pixels reports NaN for both, a case the size filter should
// already have prevented.
func ComputeStatistics(zones []Zone, assignment ClusterAssignment, indices *IndexStack) error {
	names := indices.Names()

	for i := range zones {
		zone := &zones[i]
		mean := make(map[string]float64, len(names))
		stddev := make(map[string]float64, len(names))

		for _, name := range names {
			values := collectFiniteValues(assignment, zone.OriginalLabel, indices, name)
			if len(values) == 0 {
				mean[name] = math.NaN()
				stddev[name] = math.NaN()
				continue
			}
			m := meanOf(values)
			mean[name] = m
			stddev[name] = stdDevOf(values, m)
		}

		zone.IndexMean = mean
		zone.IndexStdDev = stddev
	}
	return nil
}

func collectFiniteValues(assignment ClusterAssignment, label int, indices *IndexStack, name string) []float64 {
	var values []float64
	for r, row := range assignment {
		for c, l := range row {
			if l != label {
				continue
			}
			v := indices.At(name, r, c)
			if isFinite(v) {
				values = append(values, v)
			}
		}
	}
	return values
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDevOf(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

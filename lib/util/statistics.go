// Package util provides small helpers shared by the workload runner and the CLI.
// This file implements summary statistics over a set of samples, used to
// describe how denormalized counters (followers, posts, ...) are distributed
// across users after a workload run.
package util

import (
	"math"
	"sort"
)

// ----------------------------------------------------------------------------
// Stats
// ----------------------------------------------------------------------------

type Stats struct {
	Count        int     `json:"count"`
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	MinMaxRatio  float64 `json:"min_max_ratio"`
}

// NewStats computes the standard deviation, minimum, maximum, mean and
// median from an array of float64 values. The input is not modified.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	// initialize min and max with the first value
	min := values[0]
	max := values[0]

	// calculate sum for mean
	var sum float64
	for _, v := range values {
		sum += v

		// update min and max while iterating
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	// calculate mean
	mean := sum / float64(len(values))

	// calculate sum of squared differences from mean
	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}

	// calculate standard deviation (population formula)
	stdDev := math.Sqrt(sumSquaredDiffs / float64(len(values)))

	// calculate min/max ratio
	var minMaxRatio float64 = 1.0
	if max > 0 {
		minMaxRatio = min / max
	}

	return Stats{
		Count:        len(values),
		StdDeviation: stdDev,
		Min:          min,
		Max:          max,
		Mean:         mean,
		Median:       median(values),
		MinMaxRatio:  minMaxRatio,
	}
}

// median returns the middle value of a sorted copy of values
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// ----------------------------------------------------------------------------
// DistributionStats
// ----------------------------------------------------------------------------

type DistributionStats struct {
	Stats
	DistributionQuality float64 `json:"distribution_quality"`
}

// NewDistributionStats computes quality metrics for value distribution.
// A quality of 1 means every sample has the same value.
func NewDistributionStats(values []float64) DistributionStats {
	// get statistics
	stats := NewStats(values)

	// calculate coefficient of variation
	var cv float64
	if stats.Mean > 0 {
		cv = stats.StdDeviation / stats.Mean
	}

	// distribution quality combines CV and min/max ratio
	// -> lower CV and higher min/max ratio indicate better distribution
	distributionQuality := (1.0-math.Min(1.0, cv))*0.5 + stats.MinMaxRatio*0.5

	return DistributionStats{
		Stats:               stats,
		DistributionQuality: distributionQuality,
	}
}

// IntsToFloats converts integer samples for use with NewStats
func IntsToFloats(values []int) []float64 {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}
	return floats
}

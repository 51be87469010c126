package features

import (
	"math"
	"sort"
)

// NearestRankPercentile returns the p-th percentile (0..100) of xs using
// nearest-rank selection, no interpolation. Empty input yields 0.
func NearestRankPercentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return nearestRankSorted(sorted, p)
}

// PercentilesSorted reads several percentiles off an already-sorted slice,
// avoiding repeated sorts in the simulation hot path.
func PercentilesSorted(sorted []float64, ps ...float64) []float64 {
	out := make([]float64, len(ps))
	if len(sorted) == 0 {
		return out
	}
	for i, p := range ps {
		out[i] = nearestRankSorted(sorted, p)
	}
	return out
}

func nearestRankSorted(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	// 1-based nearest rank: ceil(p/100 * n)
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

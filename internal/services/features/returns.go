package features

import (
	"math"

	"github.com/ciphernom/rektcast/internal/domain/models"
	"github.com/ciphernom/rektcast/internal/services/fundamentals"
)

// PrepareHistory fills LogReturn and HalvingEpoch on an ordered daily price
// history. The first point keeps a zero return. Non-positive prices yield a
// zero return rather than NaN.
func PrepareHistory(history []models.PricePoint) []models.PricePoint {
	for i := range history {
		history[i].HalvingEpoch = fundamentals.EpochForDate(history[i].Date)
		if i == 0 {
			history[i].LogReturn = 0
			continue
		}
		prev := history[i-1].Price
		cur := history[i].Price
		if prev <= 0 || cur <= 0 {
			history[i].LogReturn = 0
			continue
		}
		history[i].LogReturn = math.Log(cur / prev)
	}
	return history
}

// LogReturns extracts the daily log returns, excluding the first point's
// placeholder zero. Returns nil if there is not at least one real return.
func LogReturns(history []models.PricePoint) []float64 {
	if len(history) < 2 {
		return nil
	}
	out := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		out = append(out, history[i].LogReturn)
	}
	return out
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the sample standard deviation. Fewer than two observations
// yield 0.
func StdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mean := Mean(xs)
	sum2 := 0.0
	for _, x := range xs {
		d := x - mean
		sum2 += d * d
	}
	variance := sum2 / float64(n-1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// TailStdDev returns the sample standard deviation of the last window
// observations, or of everything when the series is shorter.
func TailStdDev(xs []float64, window int) float64 {
	if window > 0 && len(xs) > window {
		xs = xs[len(xs)-window:]
	}
	return StdDev(xs)
}

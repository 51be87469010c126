package features

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

func dailyHistory(start time.Time, prices []float64) []models.PricePoint {
	out := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Price: p}
	}
	return out
}

func TestPrepareHistoryLogReturns(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := PrepareHistory(dailyHistory(start, []float64{100, 110, 99}))

	require.Len(t, h, 3)
	assert.Zero(t, h[0].LogReturn)
	assert.InDelta(t, math.Log(1.1), h[1].LogReturn, 1e-12)
	assert.InDelta(t, math.Log(99.0/110.0), h[2].LogReturn, 1e-12)
	assert.Equal(t, 4, h[0].HalvingEpoch)
}

func TestPrepareHistoryGuardsBadPrices(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := PrepareHistory(dailyHistory(start, []float64{100, 0, 105}))
	assert.Zero(t, h[1].LogReturn)
	assert.Zero(t, h[2].LogReturn)
}

func TestNearestRankPercentile(t *testing.T) {
	xs := []float64{15, 20, 35, 40, 50}
	assert.Equal(t, 15.0, NearestRankPercentile(xs, 1))
	assert.Equal(t, 20.0, NearestRankPercentile(xs, 30))
	assert.Equal(t, 35.0, NearestRankPercentile(xs, 50))
	assert.Equal(t, 50.0, NearestRankPercentile(xs, 99))
	assert.Equal(t, 50.0, NearestRankPercentile(xs, 100))
	assert.Zero(t, NearestRankPercentile(nil, 50))
}

func TestPercentilesSortedOrdered(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ps := PercentilesSorted(sorted, 5, 25, 50, 75, 95)
	for i := 1; i < len(ps); i++ {
		assert.LessOrEqual(t, ps[i-1], ps[i])
	}
}

func TestStdDev(t *testing.T) {
	assert.Zero(t, StdDev([]float64{1}))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-12)
}

func TestSummarizeTrendEmpty(t *testing.T) {
	s := SummarizeTrend(nil)
	assert.Equal(t, models.TrendNeutral, s.Direction)
	assert.Zero(t, s.Volatility)
	assert.False(t, s.IsAllTimeHigh)
}

func TestSummarizeTrendBullishATH(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]float64, 120)
	for i := range prices {
		prices[i] = 50_000 * (1 + 0.005*float64(i))
	}
	h := PrepareHistory(dailyHistory(start, prices))
	s := SummarizeTrend(h)

	assert.Equal(t, models.TrendBullish, s.Direction)
	assert.True(t, s.IsAllTimeHigh)
	assert.True(t, s.IsLocalHigh)
	assert.False(t, s.IsLocalLow)
	assert.Greater(t, s.LongTermChange, s.ShortTermChange)
}

func TestSummarizeTrendBearish(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]float64, 120)
	for i := range prices {
		prices[i] = 100_000 * (1 - 0.004*float64(i))
	}
	h := PrepareHistory(dailyHistory(start, prices))
	s := SummarizeTrend(h)

	assert.Equal(t, models.TrendBearish, s.Direction)
	assert.False(t, s.IsAllTimeHigh)
	assert.True(t, s.IsLocalLow)
}

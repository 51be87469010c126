package markov

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphernom/rektcast/internal/domain/models"
	"github.com/ciphernom/rektcast/internal/services/features"
)

// alternatingHistory builds n days of +1%/-1% daily moves.
func alternatingHistory(n int) []models.PricePoint {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.PricePoint, n)
	price := 50_000.0
	for i := 0; i < n; i++ {
		if i > 0 {
			if i%2 == 1 {
				price *= 1.01
			} else {
				price *= 0.99
			}
		}
		out[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
	}
	return features.PrepareHistory(out)
}

func noisyHistory(n int, seed int64) []models.PricePoint {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.PricePoint, n)
	price := 40_000.0
	rng := newTestRand(seed)
	for i := 0; i < n; i++ {
		if i > 0 {
			price *= math.Exp(0.0005 + 0.02*rng.NormFloat64())
		}
		out[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
	}
	return features.PrepareHistory(out)
}

func TestClassifyAlternatingNonDegenerate(t *testing.T) {
	h := Classify(alternatingHistory(400), DefaultClassifierConfig())

	counts := map[models.ReturnState]int{}
	for _, p := range h[1:] {
		require.True(t, p.Classified)
		counts[p.ReturnState]++
	}
	assert.Greater(t, counts[models.StateCrash], 0)
	assert.Greater(t, counts[models.StatePump], 0)
	assert.Less(t, counts[models.StateNormal], len(h)-1, "labeling must not collapse to all-normal")
}

func TestClassifyNoisyTailShares(t *testing.T) {
	h := Classify(noisyHistory(2000, 7), DefaultClassifierConfig())

	var crash, pump int
	for _, p := range h[1:] {
		switch p.ReturnState {
		case models.StateCrash:
			crash++
		case models.StatePump:
			pump++
		}
	}
	n := float64(len(h) - 1)
	// inclusive 1st/99th percentile cuts keep the tails near 1% each
	assert.InDelta(t, 0.01, float64(crash)/n, 0.01)
	assert.InDelta(t, 0.01, float64(pump)/n, 0.01)
}

func TestClassifyEmptyHistory(t *testing.T) {
	assert.Empty(t, Classify(nil, DefaultClassifierConfig()))
}

func TestClassifyFirstDayIsNormal(t *testing.T) {
	h := Classify(noisyHistory(100, 3), DefaultClassifierConfig())
	assert.Equal(t, models.StateNormal, h[0].ReturnState)
}

func TestClassifyEpochRelative(t *testing.T) {
	// quiet regime then a wild regime across a halving boundary: the wild
	// epoch's ordinary swings must not all read as extremes
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.PricePoint, 240)
	price := 45_000.0
	rng := newTestRand(11)
	for i := range out {
		if i > 0 {
			sigma := 0.004
			if start.AddDate(0, 0, i).After(time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)) {
				sigma = 0.05
			}
			price *= math.Exp(sigma * rng.NormFloat64())
		}
		out[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
	}
	h := Classify(features.PrepareHistory(out), DefaultClassifierConfig())

	var wildNormal, wildTotal int
	for _, p := range h {
		if p.HalvingEpoch == 4 {
			wildTotal++
			if p.ReturnState == models.StateNormal {
				wildNormal++
			}
		}
	}
	require.Greater(t, wildTotal, 50)
	assert.Greater(t, float64(wildNormal)/float64(wildTotal), 0.9)
}

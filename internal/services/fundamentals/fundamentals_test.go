package fundamentals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

func TestEpochForDate(t *testing.T) {
	assert.Equal(t, 0, EpochForDate(time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, EpochForDate(time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, EpochForDate(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 4, EpochForDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	// the halving day itself belongs to the new epoch
	assert.Equal(t, 4, EpochForDate(time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)))
}

func TestBlockReward(t *testing.T) {
	assert.Equal(t, 50.0, BlockReward(0))
	assert.Equal(t, 25.0, BlockReward(1))
	assert.Equal(t, 3.125, BlockReward(4))
}

func TestComputeWithFallbackSupply(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f := Compute(nil, asOf)

	require.Equal(t, 4, f.CurrentEpoch)
	assert.Equal(t, 3.125, f.CurrentBlockReward)
	assert.InDelta(t, 19_700_000.0, f.CirculatingSupply, 1)
	assert.InDelta(t, 3.125*BlocksPerYear/19_700_000.0, f.InflationRate, 1e-12)
	assert.InDelta(t, 19_700_000.0/21_000_000.0, f.PercentOfMaxIssued, 1e-12)
	assert.Greater(t, f.DaysSinceLastHalving, 365)
}

func TestComputeUsesHistorySupply(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	history := []models.PricePoint{
		{Date: asOf.AddDate(0, 0, -2), Price: 90000, HasOnChain: true, SupplyActive: 19_850_000},
		{Date: asOf.AddDate(0, 0, -1), Price: 91000},
	}
	f := Compute(history, asOf)
	assert.Equal(t, 19_850_000.0, f.CirculatingSupply)
}

package fundamentals

import (
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

const (
	// MaxSupply is the hard cap on BTC issuance.
	MaxSupply = 21_000_000.0
	// InitialBlockReward in BTC, halved each epoch.
	InitialBlockReward = 50.0
	// BlocksPerYear assumes one block per ten minutes.
	BlocksPerYear = 6 * 24 * 365.25

	// fallbackCirculating is used when the history carries no supply data.
	fallbackCirculating = 19_700_000.0
)

// halvings is the fixed schedule of reward halvings (UTC dates).
var halvings = []time.Time{
	time.Date(2012, 11, 28, 0, 0, 0, 0, time.UTC),
	time.Date(2016, 7, 9, 0, 0, 0, 0, time.UTC),
	time.Date(2020, 5, 11, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
	time.Date(2028, 4, 17, 0, 0, 0, 0, time.UTC),
}

// EpochForDate returns the halving epoch containing d: the count of halving
// dates at or before d.
func EpochForDate(d time.Time) int {
	epoch := 0
	for _, h := range halvings {
		if !d.Before(h) {
			epoch++
		}
	}
	return epoch
}

// BlockReward returns the per-block subsidy for an epoch.
func BlockReward(epoch int) float64 {
	reward := InitialBlockReward
	for i := 0; i < epoch; i++ {
		reward /= 2
	}
	return reward
}

// Compute derives the supply-side snapshot for asOf from the price history.
// Circulating supply comes from the most recent on-chain observation at or
// before asOf; a fixed estimate is used when the history has none.
func Compute(history []models.PricePoint, asOf time.Time) models.Fundamentals {
	epoch := EpochForDate(asOf)
	reward := BlockReward(epoch)

	circulating := fallbackCirculating
	for i := len(history) - 1; i >= 0; i-- {
		p := history[i]
		if p.Date.After(asOf) {
			continue
		}
		if p.HasOnChain && p.SupplyActive > 0 {
			circulating = p.SupplyActive
			break
		}
	}

	annualIssuance := reward * BlocksPerYear
	inflation := 0.0
	if circulating > 0 {
		inflation = annualIssuance / circulating
	}

	days := 0
	for i := len(halvings) - 1; i >= 0; i-- {
		if !asOf.Before(halvings[i]) {
			days = int(asOf.Sub(halvings[i]).Hours() / 24)
			break
		}
	}

	return models.Fundamentals{
		AsOf:                 asOf,
		CurrentEpoch:         epoch,
		DaysSinceLastHalving: days,
		CurrentBlockReward:   reward,
		InflationRate:        inflation,
		CirculatingSupply:    circulating,
		PercentOfMaxIssued:   circulating / MaxSupply,
	}
}

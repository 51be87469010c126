package markov

import (
	"github.com/ciphernom/rektcast/internal/domain/models"
	"github.com/ciphernom/rektcast/internal/services/features"
)

// ClassifierConfig holds the quantile cuts and the empty-epoch fallback
// thresholds. The fallbacks are a modeling assumption, not ground truth.
type ClassifierConfig struct {
	CrashQuantile float64 // percentile below which a return is a crash
	PumpQuantile  float64 // percentile above which a return is a pump
	FallbackCrash float64 // threshold when an epoch has no valid returns
	FallbackPump  float64
}

// DefaultClassifierConfig returns the production cuts: extremes are the
// 1st/99th percentile of each halving epoch's own return distribution.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		CrashQuantile: 1,
		PumpQuantile:  99,
		FallbackCrash: -0.05,
		FallbackPump:  0.05,
	}
}

// Classify labels every day of the history as crash/normal/pump relative to
// its halving epoch's return quantiles, so "extreme" is regime-relative
// rather than a fixed global cutoff. The input slice is annotated in place
// and returned.
func Classify(history []models.PricePoint, cfg ClassifierConfig) []models.PricePoint {
	if len(history) == 0 {
		return history
	}

	byEpoch := make(map[int][]float64)
	for i, p := range history {
		if i == 0 {
			continue // first point carries a placeholder return
		}
		byEpoch[p.HalvingEpoch] = append(byEpoch[p.HalvingEpoch], p.LogReturn)
	}

	type cut struct{ crash, pump float64 }
	cuts := make(map[int]cut, len(byEpoch))
	for epoch, rets := range byEpoch {
		if len(rets) == 0 {
			cuts[epoch] = cut{cfg.FallbackCrash, cfg.FallbackPump}
			continue
		}
		cuts[epoch] = cut{
			crash: features.NearestRankPercentile(rets, cfg.CrashQuantile),
			pump:  features.NearestRankPercentile(rets, cfg.PumpQuantile),
		}
	}

	for i := range history {
		c, ok := cuts[history[i].HalvingEpoch]
		if !ok {
			c = cut{cfg.FallbackCrash, cfg.FallbackPump}
		}
		// inclusive cuts: the threshold observation itself counts as
		// extreme, which keeps two-valued return distributions from
		// collapsing to all-normal
		switch {
		case i > 0 && history[i].LogReturn <= c.crash:
			history[i].ReturnState = models.StateCrash
		case i > 0 && history[i].LogReturn >= c.pump:
			history[i].ReturnState = models.StatePump
		default:
			history[i].ReturnState = models.StateNormal
		}
		history[i].Classified = true
	}
	return history
}

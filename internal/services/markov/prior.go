package markov

import (
	"math"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

// Bounds for the contextual prior factors. Each factor is a multiplicative
// risk modifier: above 1 leans crash, below 1 leans pump.
const (
	onChainFactorMin   = 0.5
	onChainFactorMax   = 2.5
	sentimentFactorMin = 0.5
	sentimentFactorMax = 2.0
	cycleFactorMin     = 0.5
	cycleFactorMax     = 2.0
	normalModifierMin  = 0.5
	normalModifierMax  = 1.5
	priorFloor         = 0.01
)

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// volatilityFactor blends the caller-supplied short-term volatility ratio
// with the historical ratio for the month. Missing inputs fall back to 1.
func (s seasonal) volatilityFactor(ctx models.ForecastContext, month int) float64 {
	short := 1.0
	if ctx.HasVolatility && ctx.VolatilityRatio > 0 {
		short = ctx.VolatilityRatio
	}
	blended := 0.5*short + 0.5*s.volRatio(month)
	if blended <= 0 {
		return 1
	}
	return math.Sqrt(blended)
}

// onChainFactor folds the on-chain risk metrics into one multiplicative
// factor. Absent metrics contribute nothing; absent input yields neutral 1.
func onChainFactor(oc *models.OnChainMetrics) float64 {
	if oc == nil {
		return 1
	}
	f := 1.0
	if oc.HasMVRV {
		// stretched valuations raise crash risk
		f *= 1 + 0.1*oc.MVRVZScore
	}
	if oc.HasNVT {
		f *= 1 + 0.05*oc.NVTZScore
	}
	if oc.HasSupplyShock {
		// supply held off exchanges damps downside
		f *= clampF(1/math.Max(oc.SupplyShockRatio, 0.25), 0.7, 1.4)
	}
	if oc.HasWhaleDelta {
		f *= 1 + 0.5*oc.WhaleDelta
	}
	if oc.HasPuell {
		if oc.PuellMultiple > 4 {
			f *= 1.3
		} else if oc.PuellMultiple > 0 && oc.PuellMultiple < 0.5 {
			f *= 0.8
		}
	}
	switch oc.RiskLevel {
	case "extreme":
		f *= 1.5
	case "high":
		f *= 1.3
	case "elevated":
		f *= 1.15
	case "low":
		f *= 0.85
	}
	return clampF(f, onChainFactorMin, onChainFactorMax)
}

// sentimentFactor maps the 0-100 aggregate sentiment into a risk modifier,
// inverted so bullish sentiment lowers crash risk, then combines it with
// the calendar-month sentiment prior.
func sentimentFactor(ctx models.ForecastContext, month int) float64 {
	f := 1.0
	if ctx.HasSentiment {
		v := clampF(ctx.SentimentValue, 0, 100)
		// 0 -> 1.5 (fear, crash-leaning), 100 -> 0.7 (greed, pump-leaning)
		f = 1.5 - 0.8*v/100
	}
	return clampF(f*monthSentimentPrior(month), sentimentFactorMin, sentimentFactorMax)
}

// cycleFactor combines market-cycle position with halving-cycle phase and
// supply fundamentals.
func cycleFactor(ctx models.ForecastContext) float64 {
	f := 1.0
	if ctx.HasCycle {
		// late cycle (near 1) is crash-prone, early cycle pump-prone
		f *= 0.7 + 0.8*clampF(ctx.CyclePosition, 0, 1)
	}
	if fd := ctx.Fundamentals; fd != nil {
		// first year after a halving has historically leaned bullish
		if fd.DaysSinceLastHalving > 0 && fd.DaysSinceLastHalving < 365 {
			f *= 0.9
		}
		// low issuance plus high scarcity damps structural sell pressure
		if fd.InflationRate > 0 && fd.InflationRate < 0.01 && fd.PercentOfMaxIssued > 0.9 {
			f *= 0.95
		}
	}
	return clampF(f, cycleFactorMin, cycleFactorMax)
}

// adjustPrior derives the context-scaled concentration matrix from the
// fixed symmetric prior. Every factor above 1 raises the crash-column
// modifier, every factor below 1 raises the pump-column modifier via its
// reciprocal, and the normal modifier is back-solved so the three target
// weights stay internally consistent.
func (f *Forecaster) adjustPrior(ctx models.ForecastContext) Matrix3 {
	month := ctx.CurrentMonth
	if month < 1 || month > 12 {
		month = f.latestMonth
	}

	factors := []float64{
		f.stats.seasonalFactor(month),
		f.stats.volatilityFactor(ctx, month),
		onChainFactor(ctx.OnChain),
		sentimentFactor(ctx, month),
		cycleFactor(ctx),
	}

	crashMod, pumpMod := 1.0, 1.0
	for _, fac := range factors {
		if fac <= 0 {
			continue
		}
		if fac > 1 {
			crashMod *= fac
		} else if fac < 1 {
			pumpMod *= 1 / fac
		}
	}
	normalMod := clampF(1/math.Sqrt(crashMod*pumpMod), normalModifierMin, normalModifierMax)

	adjusted := f.prior
	for i := range adjusted {
		adjusted[i][models.StateCrash] = math.Max(adjusted[i][models.StateCrash]*crashMod, priorFloor)
		adjusted[i][models.StateNormal] = math.Max(adjusted[i][models.StateNormal]*normalMod, priorFloor)
		adjusted[i][models.StatePump] = math.Max(adjusted[i][models.StatePump]*pumpMod, priorFloor)
	}
	return adjusted
}

package markov

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func trainedForecaster(t *testing.T, seed int64) *Forecaster {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.DefaultPaths = 1000 // keep tests quick
	f := New(cfg)
	require.NoError(t, f.Train(noisyHistory(1500, seed)))
	return f
}

func TestTransitionMatrixRowsSumToOne(t *testing.T) {
	f := trainedForecaster(t, 42)
	m := f.TransitionMatrix()
	for i := range m {
		assert.InDelta(t, 1.0, m[i][0]+m[i][1]+m[i][2], 1e-9)
	}
}

func TestTransitionMatrixPure(t *testing.T) {
	f := trainedForecaster(t, 42)
	f.AdjustPrior(models.ForecastContext{})
	assert.Equal(t, f.TransitionMatrix(), f.TransitionMatrix())
}

func TestPosteriorEqualsPriorWithoutData(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	f := New(cfg)

	// no observations, no contextual adjustment
	f.UpdatePosterior()
	m := f.TransitionMatrix()
	for i := range m {
		for j := range m[i] {
			assert.InDelta(t, 1.0/3, m[i][j], 1e-12)
		}
	}
}

func TestForecastStateDistributionZeroSteps(t *testing.T) {
	f := trainedForecaster(t, 7)
	seq := f.ForecastStateDistribution(0)
	require.Len(t, seq, 1)
	assert.Equal(t, f.CurrentDistribution(), seq[0])
}

func TestForecastStateDistributionConvergesToSteadyState(t *testing.T) {
	f := trainedForecaster(t, 7)
	seq := f.ForecastStateDistribution(400)
	steady := f.SteadyState()
	final := seq[len(seq)-1]
	for i := 0; i < 3; i++ {
		assert.InDelta(t, steady[i], final[i], 1e-6)
	}
}

func TestCumulativeStateProbabilityMonotone(t *testing.T) {
	f := trainedForecaster(t, 9)
	prev := 0.0
	for _, steps := range []int{1, 5, 10, 30, 90} {
		p := f.CumulativeStateProbability(steps, models.StateCrash)
		assert.GreaterOrEqual(t, p, prev, "absorbing probability must not decrease with horizon")
		assert.LessOrEqual(t, p, 1.0)
		prev = p
	}
}

func TestGenerateForecastZeroDays(t *testing.T) {
	f := trainedForecaster(t, 3)
	res, err := f.GenerateForecast(0, 90_000, models.ForecastContext{})
	require.NoError(t, err)
	assert.Equal(t, 90_000.0, res.ForecastPrice)
	assert.Equal(t, 90_000.0, res.LowerBound)
	assert.Equal(t, 90_000.0, res.UpperBound)
	assert.Empty(t, res.Simulation)
}

func TestGenerateForecastThirtyDays(t *testing.T) {
	f := trainedForecaster(t, 5)
	res, err := f.GenerateForecast(30, 90_000, models.ForecastContext{})
	require.NoError(t, err)

	assert.Less(t, res.LowerBound, res.ForecastPrice)
	assert.Greater(t, res.UpperBound, res.ForecastPrice)
	assert.LessOrEqual(t, res.CrashProbability+res.PumpProbability, 1.0)
	assert.GreaterOrEqual(t, res.CrashProbability, 0.0)
	assert.GreaterOrEqual(t, res.PumpProbability, 0.0)
	require.Len(t, res.Simulation, 30)
	assert.NotEmpty(t, res.SamplePaths)

	for _, step := range res.Simulation {
		assert.LessOrEqual(t, step.Lower5, step.Lower25)
		assert.LessOrEqual(t, step.Lower25, step.Median)
		assert.LessOrEqual(t, step.Median, step.Upper75)
		assert.LessOrEqual(t, step.Upper75, step.Upper95)
	}
}

func TestGenerateForecastRejectsBadInput(t *testing.T) {
	f := trainedForecaster(t, 5)
	_, err := f.GenerateForecast(-1, 90_000, models.ForecastContext{})
	assert.Error(t, err)
	_, err = f.GenerateForecast(10, 0, models.ForecastContext{})
	assert.Error(t, err)
}

func TestAdjustPriorKeepsEntriesPositive(t *testing.T) {
	f := trainedForecaster(t, 8)
	ctx := models.ForecastContext{
		CurrentMonth:    10,
		SentimentValue:  5, // extreme fear
		HasSentiment:    true,
		VolatilityRatio: 3,
		HasVolatility:   true,
		CyclePosition:   1,
		HasCycle:        true,
		OnChain:         &models.OnChainMetrics{MVRVZScore: 6, HasMVRV: true, RiskLevel: "extreme"},
	}
	f.AdjustPrior(ctx)
	for i := range f.adjustedPrior {
		for j := range f.adjustedPrior[i] {
			assert.Greater(t, f.adjustedPrior[i][j], 0.0)
		}
	}
	m := f.TransitionMatrix()
	for i := range m {
		assert.InDelta(t, 1.0, m[i][0]+m[i][1]+m[i][2], 1e-9)
	}
}

func TestBearishContextRaisesCrashProbability(t *testing.T) {
	base := trainedForecaster(t, 21)
	base.AdjustPrior(models.ForecastContext{CurrentMonth: 6})
	neutral := base.CumulativeStateProbability(30, models.StateCrash)

	bearish := trainedForecaster(t, 21)
	bearish.AdjustPrior(models.ForecastContext{
		CurrentMonth:    6,
		SentimentValue:  5,
		HasSentiment:    true,
		VolatilityRatio: 3,
		HasVolatility:   true,
		OnChain:         &models.OnChainMetrics{RiskLevel: "extreme"},
	})
	assert.Greater(t, bearish.CumulativeStateProbability(30, models.StateCrash), neutral)
}

func TestTrainSetsOneHotCurrentState(t *testing.T) {
	f := trainedForecaster(t, 13)
	d := f.CurrentDistribution()
	assert.InDelta(t, 1.0, d.Sum(), 1e-12)
	ones := 0
	for _, v := range d {
		if v == 1 {
			ones++
		} else {
			assert.Zero(t, v)
		}
	}
	assert.Equal(t, 1, ones)
}

func TestTrainRequiresHistory(t *testing.T) {
	f := New(DefaultConfig())
	assert.Error(t, f.Train(nil))
}

func TestApplySentimentAdjustmentDerivesCopy(t *testing.T) {
	f := trainedForecaster(t, 17)
	res, err := f.GenerateForecast(30, 90_000, models.ForecastContext{})
	require.NoError(t, err)

	orig := *res
	bullish := ApplySentimentAdjustment(*res, 90)
	bearish := ApplySentimentAdjustment(*res, 10)

	assert.Equal(t, orig.ForecastPrice, res.ForecastPrice, "input must not be mutated")
	assert.Greater(t, bullish.ForecastPrice, res.ForecastPrice)
	assert.Less(t, bearish.ForecastPrice, res.ForecastPrice)
	// neutral sentiment is a no-op
	neutral := ApplySentimentAdjustment(*res, 50)
	assert.InDelta(t, res.ForecastPrice, neutral.ForecastPrice, 1e-9)
}

func TestSimulationDeterministicUnderSeed(t *testing.T) {
	a := trainedForecaster(t, 99)
	b := trainedForecaster(t, 99)

	ra, err := a.GenerateForecast(10, 90_000, models.ForecastContext{})
	require.NoError(t, err)
	rb, err := b.GenerateForecast(10, 90_000, models.ForecastContext{})
	require.NoError(t, err)

	require.Len(t, rb.Simulation, len(ra.Simulation))
	for i := range ra.Simulation {
		assert.Equal(t, ra.Simulation[i].Median, rb.Simulation[i].Median)
	}
}

package markov

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	applogger "github.com/ciphernom/rektcast/pkg/logger"
)

// Config holds the forecaster hyperparameters. Every tunable the model uses
// lives here rather than inline.
type Config struct {
	Classifier         ClassifierConfig
	PriorConcentration float64 // symmetric Dirichlet concentration
	MaxPaths           int     // hard cap on Monte Carlo paths
	DefaultPaths       int
	SamplePathsKept    int // simulated paths included in the result
	Seed               int64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Classifier:         DefaultClassifierConfig(),
		PriorConcentration: 1.0,
		MaxPaths:           10_000,
		DefaultPaths:       5_000,
		SamplePathsKept:    50,
	}
}

// Forecaster is a Bayesian Markov-switching model over the three return
// states. One instance per analysis session; Train and GenerateForecast
// mutate shared matrices, so concurrent calls against the same instance
// must be serialized by the caller.
type Forecaster struct {
	cfg Config
	rng *rand.Rand
	l   *applogger.Logger

	prior         Matrix3 // fixed symmetric Dirichlet prior
	adjustedPrior Matrix3 // recomputed per forecast call
	posterior     Matrix3
	counts        Matrix3 // observed transition counts

	meanReturn [3]float64
	stdReturn  [3]float64

	current     Distribution
	stats       seasonal
	latestMonth int
	trained     bool
}

// New creates a forecaster. A zero Seed draws a time-based one, so tests
// must pass an explicit seed for reproducibility.
func New(cfg Config) *Forecaster {
	if cfg.PriorConcentration <= 0 {
		cfg.PriorConcentration = 1.0
	}
	if cfg.MaxPaths <= 0 {
		cfg.MaxPaths = 10_000
	}
	if cfg.DefaultPaths <= 0 || cfg.DefaultPaths > cfg.MaxPaths {
		cfg.DefaultPaths = 5_000
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	prior := NewSymmetric(cfg.PriorConcentration)
	return &Forecaster{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(seed)),
		prior:         prior,
		adjustedPrior: prior,
		posterior:     prior,
		current:       Distribution{0, 1, 0},
		latestMonth:   int(time.Now().Month()),
	}
}

// SetLogger injects a structured logger.
func (f *Forecaster) SetLogger(l *applogger.Logger) { f.l = l }

// Train classifies the history, refills the transition counts, computes
// per-state return moments and seasonal statistics, and sets the current
// state to a one-hot at the most recent classified day.
func (f *Forecaster) Train(history []models.PricePoint) error {
	if len(history) < 2 {
		return fmt.Errorf("train: need at least 2 price points, got %d", len(history))
	}

	classified := Classify(history, f.cfg.Classifier)

	f.counts = Matrix3{}
	var sums, sums2 [3]float64
	var ns [3]int
	for i := 1; i < len(classified); i++ {
		prev, cur := classified[i-1], classified[i]
		f.counts[prev.ReturnState][cur.ReturnState]++
		r := cur.LogReturn
		sums[cur.ReturnState] += r
		sums2[cur.ReturnState] += r * r
		ns[cur.ReturnState]++
	}
	for s := 0; s < 3; s++ {
		if ns[s] == 0 {
			f.meanReturn[s] = 0
			f.stdReturn[s] = 0
			continue
		}
		mean := sums[s] / float64(ns[s])
		f.meanReturn[s] = mean
		if ns[s] > 1 {
			variance := (sums2[s] - float64(ns[s])*mean*mean) / float64(ns[s]-1)
			f.stdReturn[s] = math.Sqrt(math.Max(variance, 0))
		}
	}

	f.stats = buildSeasonal(classified)
	last := classified[len(classified)-1]
	f.latestMonth = int(last.Date.Month())
	f.SetCurrentState(last.ReturnState)
	f.posterior = f.prior.Add(f.counts)
	f.trained = true

	if f.l != nil {
		f.l.Info("forecaster trained",
			applogger.Int("observations", len(classified)-1),
			applogger.Int("crash_days", ns[models.StateCrash]),
			applogger.Int("pump_days", ns[models.StatePump]),
			applogger.String("current_state", last.ReturnState.String()),
		)
	}
	return nil
}

// SetCurrentState replaces the current belief with a one-hot vector.
func (f *Forecaster) SetCurrentState(s models.ReturnState) {
	f.current = Distribution{}
	f.current[s] = 1
}

// CurrentDistribution returns the current state belief.
func (f *Forecaster) CurrentDistribution() Distribution { return f.current }

// AdjustPrior recomputes the context-scaled prior and refreshes the
// posterior from it plus the observed counts.
func (f *Forecaster) AdjustPrior(ctx models.ForecastContext) {
	f.adjustedPrior = f.adjustPrior(ctx)
	f.UpdatePosterior()
}

// UpdatePosterior sets posterior = adjustedPrior + transition counts.
func (f *Forecaster) UpdatePosterior() {
	f.posterior = f.adjustedPrior.Add(f.counts)
}

// TransitionMatrix row-normalizes the current posterior. Pure: calling it
// twice without an intervening UpdatePosterior returns identical matrices.
func (f *Forecaster) TransitionMatrix() Matrix3 {
	return f.posterior.RowNormalize()
}

// ForecastStateDistribution forward-propagates the current belief steps
// times, returning every intermediate distribution; index 0 is the current
// belief unchanged.
func (f *Forecaster) ForecastStateDistribution(steps int) []Distribution {
	return f.current.Propagate(f.TransitionMatrix(), steps)
}

// ExpectedReturns computes the per-step expected log return under the
// propagated distributions (excluding the initial pre-step position) and
// the cumulative sum.
func (f *Forecaster) ExpectedReturns(steps int) (perStep []float64, cumulative float64) {
	dists := f.ForecastStateDistribution(steps)
	perStep = make([]float64, 0, steps)
	for _, d := range dists[1:] {
		r := d[0]*f.meanReturn[0] + d[1]*f.meanReturn[1] + d[2]*f.meanReturn[2]
		perStep = append(perStep, r)
		cumulative += r
	}
	return perStep, cumulative
}

// CumulativeStateProbability estimates the probability of having visited
// target at least once within steps transitions, by making target absorbing
// in a copy of the transition matrix and reading the final mass there.
func (f *Forecaster) CumulativeStateProbability(steps int, target models.ReturnState) float64 {
	m := f.TransitionMatrix()
	m[target] = [3]float64{}
	m[target][target] = 1
	final := f.current.PropagateN(m, steps)
	return final[target]
}

// SteadyState iterates the chain from a uniform belief until convergence,
// returning the long-run state probabilities.
func (f *Forecaster) SteadyState() Distribution {
	m := f.TransitionMatrix()
	d := Distribution{1.0 / 3, 1.0 / 3, 1.0 / 3}
	for i := 0; i < 500; i++ {
		next := d.Step(m)
		delta := math.Abs(next[0]-d[0]) + math.Abs(next[1]-d[1]) + math.Abs(next[2]-d[2])
		d = next
		if delta < 1e-12 {
			break
		}
	}
	return d
}

// GenerateForecast runs the full pipeline: contextual prior adjustment,
// posterior refresh, point forecast from expected returns, absorbing-state
// risk probabilities, and the Monte Carlo price-path simulation. A zero-day
// horizon returns the current price and belief unchanged.
func (f *Forecaster) GenerateForecast(days int, currentPrice float64, ctx models.ForecastContext) (*models.ForecastResult, error) {
	return f.GenerateForecastPaths(days, currentPrice, ctx, f.cfg.DefaultPaths)
}

// GenerateForecastPaths is GenerateForecast with an explicit Monte Carlo
// path count, still subject to the configured hard cap.
func (f *Forecaster) GenerateForecastPaths(days int, currentPrice float64, ctx models.ForecastContext, paths int) (*models.ForecastResult, error) {
	if days < 0 {
		return nil, fmt.Errorf("generate forecast: negative horizon %d", days)
	}
	if currentPrice <= 0 || math.IsNaN(currentPrice) {
		return nil, fmt.Errorf("generate forecast: invalid current price %v", currentPrice)
	}

	f.AdjustPrior(ctx)
	tm := f.TransitionMatrix()

	res := &models.ForecastResult{
		GeneratedAt:      time.Now().UTC(),
		HorizonDays:      days,
		CurrentPrice:     currentPrice,
		ForecastPrice:    currentPrice,
		LowerBound:       currentPrice,
		UpperBound:       currentPrice,
		TransitionMatrix: [3][3]float64(tm),
		SteadyState:      [3]float64(f.SteadyState()),
	}
	if days == 0 {
		return res, nil
	}

	_, cumulative := f.ExpectedReturns(days)
	res.ExpectedReturn = cumulative
	res.ForecastPrice = currentPrice * math.Exp(cumulative)

	res.CrashProbability = f.CumulativeStateProbability(days, models.StateCrash)
	res.PumpProbability = f.CumulativeStateProbability(days, models.StatePump)
	if sum := res.CrashProbability + res.PumpProbability; sum > 1 {
		res.CrashProbability /= sum
		res.PumpProbability /= sum
	}

	sim := f.simulate(days, currentPrice, paths)
	res.Simulation = sim.steps
	res.SamplePaths = sim.sample
	if n := len(sim.steps); n > 0 {
		res.LowerBound = sim.steps[n-1].Lower5
		res.UpperBound = sim.steps[n-1].Upper95
	}

	if f.l != nil {
		f.l.Debug("forecast generated",
			applogger.Int("days", days),
			applogger.Any("price", res.ForecastPrice),
			applogger.Any("crash_prob", res.CrashProbability),
		)
	}
	return res, nil
}

// ApplySentimentAdjustment derives a copy of a forecast with a post-hoc
// return nudge from the 0-100 sentiment index. The input result is not
// modified.
func ApplySentimentAdjustment(res models.ForecastResult, sentimentValue float64) models.ForecastResult {
	tilt := (clampF(sentimentValue, 0, 100) - 50) / 50 // [-1,1]
	scale := math.Exp(0.02 * tilt * float64(res.HorizonDays) / 30)
	res.ForecastPrice *= scale
	res.LowerBound *= scale
	res.UpperBound *= scale
	res.ExpectedReturn += math.Log(scale)
	return res
}

// StateMoments exposes the trained per-state mean and stddev of log
// returns, mostly for diagnostics and tests.
func (f *Forecaster) StateMoments() (mean, std [3]float64) {
	return f.meanReturn, f.stdReturn
}

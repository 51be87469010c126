package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	domrepo "github.com/ciphernom/rektcast/internal/domain/repository"
	domsvc "github.com/ciphernom/rektcast/internal/domain/service"
	"github.com/ciphernom/rektcast/internal/services/features"
	"github.com/ciphernom/rektcast/internal/services/fundamentals"
	"github.com/ciphernom/rektcast/internal/services/markov"
	"github.com/ciphernom/rektcast/internal/services/sentiment"
	applogger "github.com/ciphernom/rektcast/pkg/logger"
)

// halvingCycleDays approximates one full halving cycle for the cycle
// position estimate.
const halvingCycleDays = 1460.0

// ForecastOrchestrator owns the trained models and fans context gathering
// out before each forecast. The forecaster mutates shared matrices, so all
// model access is serialized behind one mutex.
type ForecastOrchestrator struct {
	prices    domrepo.PriceStore
	headlines domrepo.HeadlineStore
	metrics   domrepo.Metrics
	l         *applogger.Logger

	markovCfg    markov.Config
	sentimentCfg sentiment.Config
	retrainTTL   time.Duration
	lookbackDays int // 0 = full stored history

	mu         sync.Mutex
	forecaster *markov.Forecaster
	scorer     *sentiment.Scorer
	history    []models.PricePoint
	trend      models.PriceTrendSummary
	trainedAt  time.Time
}

func NewForecastOrchestrator(
	prices domrepo.PriceStore,
	headlines domrepo.HeadlineStore,
	metrics domrepo.Metrics,
	markovCfg markov.Config,
	sentimentCfg sentiment.Config,
	retrainTTL time.Duration,
	l *applogger.Logger,
) *ForecastOrchestrator {
	if retrainTTL <= 0 {
		retrainTTL = time.Hour
	}
	return &ForecastOrchestrator{
		prices:       prices,
		headlines:    headlines,
		metrics:      metrics,
		markovCfg:    markovCfg,
		sentimentCfg: sentimentCfg,
		retrainTTL:   retrainTTL,
		l:            l,
	}
}

var (
	_ domsvc.ForecastService     = (*ForecastOrchestrator)(nil)
	_ domsvc.SentimentService    = (*ForecastOrchestrator)(nil)
	_ domsvc.FundamentalsService = (*ForecastOrchestrator)(nil)
	_ domsvc.RegimeService       = (*ForecastOrchestrator)(nil)
)

// SetTrainLookback bounds the training window to the trailing number of
// days. Zero keeps the full stored history.
func (o *ForecastOrchestrator) SetTrainLookback(days int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lookbackDays = days
}

// ensureTrained loads the history and retrains the models when stale.
// Caller must hold o.mu.
func (o *ForecastOrchestrator) ensureTrained(ctx context.Context) error {
	if o.forecaster != nil && time.Since(o.trainedAt) < o.retrainTTL {
		return nil
	}

	var from time.Time
	if o.lookbackDays > 0 {
		from = time.Now().UTC().AddDate(0, 0, -o.lookbackDays)
	}
	raw, err := o.prices.GetDailyHistory(ctx, from, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(raw) < 2 {
		return fmt.Errorf("load history: %d points, need at least 2", len(raw))
	}

	history := features.PrepareHistory(raw)
	f := markov.New(o.markovCfg)
	f.SetLogger(o.l)
	if err := f.Train(history); err != nil {
		return fmt.Errorf("train forecaster: %w", err)
	}

	trend := features.SummarizeTrend(history)
	o.forecaster = f
	o.scorer = sentiment.NewScorer(o.sentimentCfg,
		sentiment.WithTrend(trend),
		sentiment.WithLogger(o.l),
	)
	o.history = history
	o.trend = trend
	o.trainedAt = time.Now()

	if o.l != nil {
		o.l.Info("models retrained",
			applogger.Int("history_days", len(history)),
			applogger.String("trend", string(trend.Direction)),
		)
	}
	return nil
}

// Retrain forces a model rebuild regardless of staleness. Used by the
// background refresh worker.
func (o *ForecastOrchestrator) Retrain(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.trainedAt = time.Time{}
	return o.ensureTrained(ctx)
}

// Forecast gathers context and runs the full forecast pipeline.
func (o *ForecastOrchestrator) Forecast(ctx context.Context, req models.ForecastRequest) (*models.ForecastResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.ensureTrained(ctx); err != nil {
		return nil, err
	}

	fctx := o.buildContext(ctx)

	price := o.history[len(o.history)-1].Price
	if latest, err := o.prices.LatestPrice(ctx); err == nil && latest > 0 {
		price = latest
	}

	res, err := o.forecaster.GenerateForecastPaths(req.Days, price, fctx, req.Paths)
	if err != nil {
		return nil, fmt.Errorf("generate forecast: %w", err)
	}
	o.metrics.RecordForecast(req.Days)
	return res, nil
}

// buildContext assembles the forecast context from whatever inputs are
// available; absent inputs stay absent rather than being fabricated.
// Caller must hold o.mu.
func (o *ForecastOrchestrator) buildContext(ctx context.Context) models.ForecastContext {
	fctx := models.ForecastContext{
		CurrentMonth: int(time.Now().UTC().Month()),
	}

	if o.trend.Volatility > 0 {
		fctx.VolatilityRatio = o.trend.RecentVolatility / o.trend.Volatility
		fctx.HasVolatility = true
	}

	fund := fundamentals.Compute(o.history, time.Now().UTC())
	fctx.Fundamentals = &fund
	if fund.DaysSinceLastHalving > 0 {
		pos := float64(fund.DaysSinceLastHalving) / halvingCycleDays
		if pos > 1 {
			pos = 1
		}
		fctx.CyclePosition = pos
		fctx.HasCycle = true
	}

	if sres, err := o.analyzeLocked(ctx, 0); err == nil {
		fctx.SentimentValue = sres.ScaledValue
		fctx.HasSentiment = true
	} else if o.l != nil {
		o.l.Warn("sentiment unavailable for forecast context", applogger.Error(err))
	}

	if oc := onChainContext(o.history); oc != nil {
		fctx.OnChain = oc
	}
	return fctx
}

// Analyze aggregates the freshest headlines into the sentiment index.
func (o *ForecastOrchestrator) Analyze(ctx context.Context, topN int) (*models.SentimentResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.ensureTrained(ctx); err != nil {
		return nil, err
	}
	return o.analyzeLocked(ctx, topN)
}

func (o *ForecastOrchestrator) analyzeLocked(ctx context.Context, topN int) (*models.SentimentResult, error) {
	limit := topN
	if limit <= 0 {
		limit = o.sentimentCfg.DefaultTopN
	}
	hs, err := o.headlines.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load headlines: %w", err)
	}
	res := o.scorer.AnalyzeHeadlines(hs, topN)
	o.metrics.RecordSentiment(res.ScaledValue)
	return &res, nil
}

// Compute derives supply-side fundamentals as of a date.
func (o *ForecastOrchestrator) Compute(ctx context.Context, asOf time.Time) (*models.Fundamentals, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.ensureTrained(ctx); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	f := fundamentals.Compute(o.history, asOf)
	return &f, nil
}

// Current summarizes the market regime over the trailing lookback window
// (0 = full history).
func (o *ForecastOrchestrator) Current(ctx context.Context, lookbackDays int) (*models.RegimeSummary, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.ensureTrained(ctx); err != nil {
		return nil, err
	}

	window := o.history
	if lookbackDays > 0 && lookbackDays < len(window) {
		window = window[len(window)-lookbackDays:]
	}

	sum := &models.RegimeSummary{
		AsOf:             time.Now().UTC(),
		LookbackDays:     len(window),
		TransitionMatrix: [3][3]float64(o.forecaster.TransitionMatrix()),
		SteadyState:      [3]float64(o.forecaster.SteadyState()),
		CrashProb30d:     o.forecaster.CumulativeStateProbability(30, models.StateCrash),
		PumpProb30d:      o.forecaster.CumulativeStateProbability(30, models.StatePump),
	}
	for _, p := range window {
		if p.Classified {
			sum.StateCounts[p.ReturnState]++
		}
	}

	cur := o.forecaster.CurrentDistribution()
	best := models.StateNormal
	for s := models.ReturnState(0); s < models.NumStates; s++ {
		if cur[s] > cur[best] {
			best = s
		}
	}
	sum.CurrentState = best.String()
	return sum, nil
}

// onChainContext condenses the most recent on-chain observations into the
// optional metrics record; nil when the history carries none.
func onChainContext(history []models.PricePoint) *models.OnChainMetrics {
	const zWindow = 90
	var mvrvs, nvts []float64
	for _, p := range history {
		if p.HasOnChain {
			if p.MVRV > 0 {
				mvrvs = append(mvrvs, p.MVRV)
			}
			if p.NVT > 0 {
				nvts = append(nvts, p.NVT)
			}
		}
	}
	if len(mvrvs) < zWindow && len(nvts) < zWindow {
		return nil
	}

	oc := &models.OnChainMetrics{RiskLevel: "moderate"}
	if z, ok := zScore(mvrvs, zWindow); ok {
		oc.MVRVZScore = z
		oc.HasMVRV = true
	}
	if z, ok := zScore(nvts, zWindow); ok {
		oc.NVTZScore = z
		oc.HasNVT = true
	}
	switch {
	case oc.HasMVRV && oc.MVRVZScore > 4:
		oc.RiskLevel = "extreme"
	case oc.HasMVRV && oc.MVRVZScore > 2:
		oc.RiskLevel = "high"
	case oc.HasMVRV && oc.MVRVZScore < -1:
		oc.RiskLevel = "low"
	}
	return oc
}

// zScore of the last value against the trailing window; needs at least the
// full window of observations.
func zScore(xs []float64, window int) (float64, bool) {
	if len(xs) < window {
		return 0, false
	}
	tail := xs[len(xs)-window:]
	mean := features.Mean(tail)
	sd := features.StdDev(tail)
	if sd <= 0 {
		return 0, false
	}
	return (tail[len(tail)-1] - mean) / sd, true
}

package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphernom/rektcast/internal/domain/models"
	"github.com/ciphernom/rektcast/internal/services/markov"
	"github.com/ciphernom/rektcast/internal/services/sentiment"
	applogger "github.com/ciphernom/rektcast/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return l
}

type fakePriceStore struct {
	points  []models.PricePoint
	loadErr error
	latest  float64
}

func (s *fakePriceStore) GetDailyHistory(ctx context.Context, from, to time.Time) ([]models.PricePoint, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.points, nil
}

func (s *fakePriceStore) GetLatestN(ctx context.Context, n int) ([]models.PricePoint, error) {
	if n > len(s.points) {
		n = len(s.points)
	}
	return s.points[len(s.points)-n:], nil
}

func (s *fakePriceStore) LatestPrice(ctx context.Context) (float64, error) {
	if s.latest <= 0 {
		return 0, fmt.Errorf("no latest price")
	}
	return s.latest, nil
}

func (s *fakePriceStore) StoreDaily(ctx context.Context, points []models.PricePoint) error {
	s.points = append(s.points, points...)
	return nil
}

type fakeHeadlineStore struct {
	headlines []models.Headline
	err       error
	stored    [][]models.Headline
}

func (s *fakeHeadlineStore) Recent(ctx context.Context, limit int) ([]models.Headline, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > 0 && limit < len(s.headlines) {
		return s.headlines[:limit], nil
	}
	return s.headlines, nil
}

func (s *fakeHeadlineStore) Store(ctx context.Context, hs []models.Headline) error {
	s.stored = append(s.stored, hs)
	return nil
}

type fakeMetrics struct {
	forecasts  int
	sentiments int
}

func (m *fakeMetrics) RecordMessageSent(backend, symbol string)  {}
func (m *fakeMetrics) RecordError(kind string)                   {}
func (m *fakeMetrics) RecordLastPrice(symbol string, p float64)  {}
func (m *fakeMetrics) RecordLatency(op string, seconds float64)  {}
func (m *fakeMetrics) RecordForecast(horizonDays int)            { m.forecasts++ }
func (m *fakeMetrics) RecordSentiment(value float64)             { m.sentiments++ }

func syntheticHistory(n int, seed int64) []models.PricePoint {
	rng := rand.New(rand.NewSource(seed))
	points := make([]models.PricePoint, n)
	price := 30000.0
	start := time.Now().UTC().AddDate(0, 0, -n)
	for i := range points {
		price *= math.Exp(rng.NormFloat64() * 0.03)
		points[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
	}
	return points
}

func newTestOrchestrator(t *testing.T, prices *fakePriceStore, headlines *fakeHeadlineStore, m *fakeMetrics) *ForecastOrchestrator {
	t.Helper()
	mcfg := markov.DefaultConfig()
	mcfg.Seed = 7
	mcfg.DefaultPaths = 500
	scfg := sentiment.DefaultConfig()
	scfg.Seed = 7
	return NewForecastOrchestrator(prices, headlines, m, mcfg, scfg, time.Hour, nil)
}

func TestForecastEndToEnd(t *testing.T) {
	prices := &fakePriceStore{points: syntheticHistory(1200, 1), latest: 65000}
	headlines := &fakeHeadlineStore{headlines: []models.Headline{
		{Title: "bitcoin surges past $100K as ETF inflows hit record", Timestamp: time.Now()},
		{Title: "analysts expect consolidation this week", Timestamp: time.Now()},
	}}
	m := &fakeMetrics{}
	o := newTestOrchestrator(t, prices, headlines, m)

	res, err := o.Forecast(context.Background(), models.ForecastRequest{Days: 30, Paths: 500})
	require.NoError(t, err)

	assert.Equal(t, 30, res.HorizonDays)
	assert.Equal(t, 65000.0, res.CurrentPrice)
	assert.Greater(t, res.ForecastPrice, 0.0)
	assert.LessOrEqual(t, res.LowerBound, res.ForecastPrice)
	assert.GreaterOrEqual(t, res.UpperBound, res.ForecastPrice)
	assert.Len(t, res.Simulation, 30)
	assert.Equal(t, 1, m.forecasts)
}

func TestForecastFallsBackToHistoryPrice(t *testing.T) {
	prices := &fakePriceStore{points: syntheticHistory(800, 2)} // no live tick
	headlines := &fakeHeadlineStore{}
	o := newTestOrchestrator(t, prices, headlines, &fakeMetrics{})

	res, err := o.Forecast(context.Background(), models.ForecastRequest{Days: 7, Paths: 500})
	require.NoError(t, err)
	assert.InDelta(t, prices.points[len(prices.points)-1].Price, res.CurrentPrice, 1e-9)
}

func TestForecastSurvivesHeadlineOutage(t *testing.T) {
	prices := &fakePriceStore{points: syntheticHistory(800, 3), latest: 50000}
	headlines := &fakeHeadlineStore{err: fmt.Errorf("clickhouse down")}
	o := newTestOrchestrator(t, prices, headlines, &fakeMetrics{})

	res, err := o.Forecast(context.Background(), models.ForecastRequest{Days: 14, Paths: 500})
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestForecastRequiresHistory(t *testing.T) {
	prices := &fakePriceStore{}
	o := newTestOrchestrator(t, prices, &fakeHeadlineStore{}, &fakeMetrics{})

	_, err := o.Forecast(context.Background(), models.ForecastRequest{Days: 30, Paths: 500})
	require.Error(t, err)
}

func TestAnalyzeRecordsSentiment(t *testing.T) {
	prices := &fakePriceStore{points: syntheticHistory(800, 4)}
	headlines := &fakeHeadlineStore{headlines: []models.Headline{
		{Title: "bitcoin plunges below $85K as liquidations cascade", Timestamp: time.Now()},
	}}
	m := &fakeMetrics{}
	o := newTestOrchestrator(t, prices, headlines, m)

	res, err := o.Analyze(context.Background(), 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.ScaledValue, 0.0)
	assert.LessOrEqual(t, res.ScaledValue, 100.0)
	assert.Equal(t, 1, m.sentiments)
}

func TestRegimeSummaryShape(t *testing.T) {
	prices := &fakePriceStore{points: syntheticHistory(1200, 5)}
	o := newTestOrchestrator(t, prices, &fakeHeadlineStore{}, &fakeMetrics{})

	sum, err := o.Current(context.Background(), 365)
	require.NoError(t, err)

	assert.Equal(t, 365, sum.LookbackDays)
	for i := 0; i < 3; i++ {
		row := 0.0
		for j := 0; j < 3; j++ {
			row += sum.TransitionMatrix[i][j]
		}
		assert.InDelta(t, 1.0, row, 1e-9)
	}
	assert.GreaterOrEqual(t, sum.CrashProb30d, 0.0)
	assert.LessOrEqual(t, sum.CrashProb30d, 1.0)
	assert.Contains(t, []string{"crash", "normal", "pump"}, sum.CurrentState)
}

func TestComputeFundamentals(t *testing.T) {
	prices := &fakePriceStore{points: syntheticHistory(800, 6)}
	o := newTestOrchestrator(t, prices, &fakeHeadlineStore{}, &fakeMetrics{})

	f, err := o.Compute(context.Background(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Greater(t, f.CirculatingSupply, 0.0)
	assert.Less(t, f.CirculatingSupply, 21_000_000.0)
	assert.GreaterOrEqual(t, f.CurrentEpoch, 4)
}

func TestRetrainJobHandlesBadPayload(t *testing.T) {
	prices := &fakePriceStore{points: syntheticHistory(800, 8)}
	o := newTestOrchestrator(t, prices, &fakeHeadlineStore{}, &fakeMetrics{})
	job := NewRetrainJob(o, testLogger(t))

	assert.Equal(t, RetrainMessageType, job.Type())
	require.NoError(t, job.Handle(context.Background(), 42)) // unparseable payload still retrains
}

func TestRetrainJobPropagatesFailure(t *testing.T) {
	prices := &fakePriceStore{loadErr: fmt.Errorf("storage offline")}
	o := newTestOrchestrator(t, prices, &fakeHeadlineStore{}, &fakeMetrics{})
	job := NewRetrainJob(o, testLogger(t))

	payload := RetrainPayload{Reason: "scheduled", RequestedAt: time.Now()}
	require.Error(t, job.Handle(context.Background(), payload))
}

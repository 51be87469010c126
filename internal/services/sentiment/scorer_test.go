package sentiment

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

func newTestScorer(seed int64, opts ...Option) *Scorer {
	opts = append([]Option{WithRand(rand.New(rand.NewSource(seed)))}, opts...)
	return NewScorer(DefaultConfig(), opts...)
}

func TestScoreBounded(t *testing.T) {
	s := newTestScorer(1)
	texts := []string{
		"bitcoin crashes plunges collapses bloodbath rekt panic capitulation",
		"bitcoin surges soars skyrockets moons rallies breakout all-time high",
		"bitcoin exists",
		"",
	}
	for _, text := range texts {
		v := s.Score(text)
		assert.GreaterOrEqual(t, v, -1.0, "text: %s", text)
		assert.LessOrEqual(t, v, 1.0, "text: %s", text)
	}
}

func TestScoreSurgeHeadlinePositive(t *testing.T) {
	s := newTestScorer(1)
	text := "bitcoin surges past $100K"
	assert.Equal(t, "positive", s.Classify(text))
	assert.Greater(t, s.Score(text), 0.2)
}

func TestScorePlungeHeadlineNegative(t *testing.T) {
	s := newTestScorer(1)
	text := "bitcoin plunges below $85K"
	assert.Equal(t, "negative", s.Classify(text))
	assert.Less(t, s.Score(text), -0.2)
}

func TestEtfOutflowHeadlineStronglyNegative(t *testing.T) {
	s := newTestScorer(1)
	h := []models.Headline{{
		Title:     "Bitcoin ETFs Are Hit by a Record $1 Billion Outflow in One Day",
		Timestamp: time.Now(),
	}}
	res := s.AnalyzeHeadlines(h, 25)
	assert.Less(t, res.ScaledValue, 30.0)
	assert.Equal(t, "negative", s.Classify(h[0].Title))
}

func TestScoreEmptyTextNeutral(t *testing.T) {
	s := newTestScorer(1)
	assert.Zero(t, s.Score(""))
	assert.Zero(t, s.Score("   "))
	assert.Equal(t, "neutral", s.Classify(""))
}

func TestScoreDeterministicUnderSeed(t *testing.T) {
	text := "bitcoin whale moves $500M but analysts remain optimistic"
	a := newTestScorer(7).Score(text)
	b := newTestScorer(7).Score(text)
	assert.Equal(t, a, b)
}

func TestNegationFlipsSentiment(t *testing.T) {
	s := newTestScorer(3)
	plain := s.Score("bitcoin rally continues")
	negated := s.Score("bitcoin rally is not continuing, momentum gone")
	assert.Less(t, negated, plain)
}

func TestMixedSignalsDiscounted(t *testing.T) {
	s := newTestScorer(5)
	pure := s.Score("bitcoin surges to new highs on strong inflows")
	mixed := s.Score("bitcoin surges but selloff fears drag on the rally")
	assert.Less(t, mixed, pure)
}

func TestAnalyzeHeadlinesValueRange(t *testing.T) {
	s := newTestScorer(2)
	var hs []models.Headline
	titles := []string{
		"bitcoin crashes below $70K as panic spreads",
		"bitcoin steady ahead of fed meeting",
		"bitcoin rallies 5% on etf inflows",
		"mass liquidation wipes $1.5 billion from market",
		"whales accumulate during the dip",
	}
	now := time.Now()
	for i, title := range titles {
		hs = append(hs, models.Headline{Title: title, Timestamp: now.Add(-time.Duration(i) * time.Hour)})
	}

	res := s.AnalyzeHeadlines(hs, 25)
	assert.GreaterOrEqual(t, res.ScaledValue, 0.0)
	assert.LessOrEqual(t, res.ScaledValue, 100.0)
	assert.GreaterOrEqual(t, res.RawScore, -1.0)
	assert.LessOrEqual(t, res.RawScore, 1.0)
	require.Len(t, res.PerHeadline, len(titles))

	// recency weights decay monotonically
	for i := 1; i < len(res.PerHeadline); i++ {
		assert.Less(t, res.PerHeadline[i].Weight, res.PerHeadline[i-1].Weight)
	}
}

func TestAnalyzeHeadlinesEmptyInput(t *testing.T) {
	s := newTestScorer(2)
	res := s.AnalyzeHeadlines(nil, 25)
	assert.Equal(t, 50.0, res.ScaledValue)
	assert.Equal(t, models.SentimentNeutral, res.Label)
	assert.Empty(t, res.PerHeadline)
}

func TestAnalyzeHeadlinesRealityCheck(t *testing.T) {
	s := newTestScorer(4)
	now := time.Now()
	var hs []models.Headline
	// one euphoric headline buried in a bad tape
	titles := []string{
		"bitcoin skyrockets to all-time high",
		"bitcoin crashes 12% in brutal selloff",
		"exchange hacked, customer funds stolen",
		"bitcoin plunges below key support",
		"liquidations cascade across the market",
	}
	for i, title := range titles {
		hs = append(hs, models.Headline{Title: title, Timestamp: now.Add(-time.Duration(i) * time.Hour)})
	}
	res := s.AnalyzeHeadlines(hs, 25)
	assert.Less(t, res.ScaledValue, 50.0, "negative majority must pull the aggregate down")
}

func TestBullishTrendLiftsScore(t *testing.T) {
	text := "bitcoin trades near $90K as volume picks up"
	neutral := newTestScorer(9).Score(text)
	bullish := newTestScorer(9, WithTrend(models.PriceTrendSummary{
		Direction:        models.TrendBullish,
		ShortTermChange:  8,
		MediumTermChange: 20,
		LongTermChange:   60,
		IsAllTimeHigh:    true,
	})).Score(text)
	assert.Greater(t, bullish, neutral)
}

func TestLabelThresholds(t *testing.T) {
	cases := []struct {
		v    float64
		want models.SentimentLabel
	}{
		{85, models.SentimentVeryPositive},
		{70, models.SentimentVeryPositive},
		{65, models.SentimentPositive},
		{50, models.SentimentNeutral},
		{41, models.SentimentNeutral},
		{35, models.SentimentNegative},
		{30, models.SentimentVeryNegative},
		{10, models.SentimentVeryNegative},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, labelFor(c.v), "value %v", c.v)
	}
}

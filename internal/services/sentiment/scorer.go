package sentiment

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	applogger "github.com/ciphernom/rektcast/pkg/logger"
)

// Scorer is the hybrid lexicon + Naive-Bayes headline scorer. One instance
// per analysis session; the trend summary is captured at construction and
// read-only thereafter. Not safe for concurrent use: the random source is
// shared across calls.
type Scorer struct {
	cfg   Config
	rng   *rand.Rand
	bayes *bayesModel
	trend *models.PriceTrendSummary
	l     *applogger.Logger
}

// Option customizes a Scorer at construction.
type Option func(*Scorer)

// WithRand injects the random source used for stochastic n-gram sampling.
// Required for reproducible tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scorer) { s.rng = rng }
}

// WithTrend supplies the market trend context used to nudge rule scores.
func WithTrend(t models.PriceTrendSummary) Option {
	return func(s *Scorer) { s.trend = &t }
}

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) Option {
	return func(s *Scorer) { s.l = l }
}

// NewScorer builds a scorer and trains the Bayes component on the embedded
// seed corpus.
func NewScorer(cfg Config, opts ...Option) *Scorer {
	s := &Scorer{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}

	s.bayes = newBayesModel(cfg)
	for _, doc := range seedCorpus {
		s.bayes.learn(s.features(doc.text), doc.label)
	}
	return s
}

// features runs normalize, tokenize, negation and n-gram extraction for
// one text.
func (s *Scorer) features(text string) []feature {
	tokens := applyNegation(tokenize(normalizeText(text)))
	return extractFeatures(tokens, s.cfg, s.rng)
}

// Score returns the hybrid sentiment of one text in [-1, 1]. Empty or
// blank input is logged and scored neutral; the method never panics on
// malformed text.
func (s *Scorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		if s.l != nil {
			s.l.Warn("sentiment: empty text, scoring neutral")
		}
		return 0
	}

	raw := strings.ToLower(text)
	tokens := applyNegation(tokenize(normalizeText(text)))
	feats := extractFeatures(tokens, s.cfg, s.rng)

	nb := s.bayes.score(feats)
	rule, matches := scoreRules(raw, tokens)
	rule = adjustForTrend(rule, matches, s.trend)

	final := s.cfg.BayesBlend*nb + s.cfg.RuleBlend*rule
	if s.mixedSignals(raw, tokens) {
		final *= s.cfg.MixedSignalDiscount
	}
	return clamp(final, -1, 1)
}

// mixedSignals reports texts carrying both bullish and bearish vocabulary
// or a contrast conjunction.
func (s *Scorer) mixedSignals(raw string, tokens []string) bool {
	var bull, bear bool
	for _, t := range tokens {
		base := strings.TrimPrefix(t, "NOT_")
		if bullishVocab[base] {
			bull = true
		}
		if bearishVocab[base] {
			bear = true
		}
	}
	return (bull && bear) || containsContrast(raw)
}

// Classify buckets a single text into negative, neutral or positive.
func (s *Scorer) Classify(text string) string {
	v := s.Score(text)
	switch {
	case v > 0.1:
		return "positive"
	case v < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

// AnalyzeHeadlines scores the freshest topN headlines with exponential
// recency weights and aggregates them into one market sentiment index. A
// reality check drags the aggregate down when a large share of headlines
// is outright negative, so a few euphoric outliers cannot mask a bad tape.
func (s *Scorer) AnalyzeHeadlines(headlines []models.Headline, topN int) models.SentimentResult {
	if topN <= 0 {
		topN = s.cfg.DefaultTopN
	}
	if len(headlines) < topN {
		topN = len(headlines)
	}

	res := models.SentimentResult{
		Label:    models.SentimentNeutral,
		ScoredAt: time.Now().UTC(),
	}
	if topN == 0 {
		res.ScaledValue = 50
		return res
	}

	var weightedSum, totalWeight float64
	var negatives int
	res.PerHeadline = make([]models.HeadlineScore, 0, topN)
	for i := 0; i < topN; i++ {
		score := s.Score(headlines[i].Title)
		weight := math.Exp(-s.cfg.RecencyDecay * float64(i))
		weightedSum += score * weight
		totalWeight += weight
		if scaled(score) < 40 {
			negatives++
		}
		res.PerHeadline = append(res.PerHeadline, models.HeadlineScore{
			Headline: headlines[i],
			Score:    score,
			Weight:   weight,
		})
	}

	raw := weightedSum / totalWeight
	negFraction := float64(negatives) / float64(topN)
	if negFraction > s.cfg.NegFractionCut {
		raw *= math.Min(0.7, 0.5+0.5*negFraction)
	}

	res.RawScore = clamp(raw, -1, 1)
	res.ScaledValue = scaled(res.RawScore)
	res.Label = labelFor(res.ScaledValue)

	if s.l != nil {
		s.l.Info("sentiment aggregated",
			applogger.Int("headlines", topN),
			applogger.Any("value", res.ScaledValue),
			applogger.String("label", string(res.Label)),
		)
	}
	return res
}

// scaled maps [-1,1] onto the 0-100 index.
func scaled(raw float64) float64 {
	return (raw + 1) * 50
}

func labelFor(v float64) models.SentimentLabel {
	switch {
	case v >= 70:
		return models.SentimentVeryPositive
	case v >= 60:
		return models.SentimentPositive
	case v > 40:
		return models.SentimentNeutral
	case v > 30:
		return models.SentimentNegative
	default:
		return models.SentimentVeryNegative
	}
}

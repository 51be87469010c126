package sentiment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriceMentions(t *testing.T) {
	s := normalizeText("Bitcoin surges past $100K")
	assert.Contains(t, s, "price_100000")
	assert.NotContains(t, s, "$100k")

	s = normalizeText("Bitcoin falls to $85,500")
	assert.Contains(t, s, "price_85500")
}

func TestNormalizePercentMentions(t *testing.T) {
	assert.Contains(t, normalizeText("bitcoin drops 12%"), "percent_12")
	assert.Contains(t, normalizeText("up 5.5 % today"), "percent_5.5")
}

func TestNormalizeTickers(t *testing.T) {
	s := normalizeText("$BTC leads while $eth lags")
	assert.Contains(t, s, "ticker_btc")
	assert.Contains(t, s, "ticker_eth")
}

func TestNormalizeEmoji(t *testing.T) {
	assert.Contains(t, normalizeText("BTC \U0001F680\U0001F680"), "bullish rocket")
	assert.Contains(t, normalizeText("market \U0001F4C9 today"), "chart falling")
}

func TestTokenizeDropsStopWords(t *testing.T) {
	tokens := tokenize("the price of bitcoin is rising")
	for _, tok := range tokens {
		assert.False(t, stopWords[tok.text], "stop word leaked: %s", tok.text)
	}
}

func TestNegationWindow(t *testing.T) {
	tokens := applyNegation(tokenize("not bullish anymore friends everyone"))
	assert.Equal(t, []string{"not", "NOT_bullish", "NOT_anymore", "NOT_friends", "everyone"}, tokens)
}

func TestNegationStopsAtPunctuation(t *testing.T) {
	tokens := applyNegation(tokenize("not bullish. rally continues"))
	assert.Contains(t, tokens, "NOT_bullish")
	assert.Contains(t, tokens, "rally")
	assert.NotContains(t, tokens, "NOT_rally")
}

func TestSignificantBigramsAlwaysKept(t *testing.T) {
	// zero inclusion probability: only guaranteed n-grams survive
	cfg := DefaultConfig()
	cfg.BigramSampleP = 0
	cfg.SkipgramSampleP = 0
	rng := rand.New(rand.NewSource(1))

	feats := extractFeatures([]string{"bear", "market", "deepens"}, cfg, rng)
	var found bool
	for _, f := range feats {
		if f.text == "bear market" {
			assert.Equal(t, kindSignificantBigram, f.kind)
			found = true
		}
	}
	assert.True(t, found)
}

func TestNumericTokenBigramsAlwaysKept(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BigramSampleP = 0
	rng := rand.New(rand.NewSource(1))

	feats := extractFeatures([]string{"price_100000", "milestone"}, cfg, rng)
	var found bool
	for _, f := range feats {
		if f.text == "price_100000 milestone" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFeatureWeights(t *testing.T) {
	m := newBayesModel(DefaultConfig())
	assert.Equal(t, 1.5, m.featureWeight(feature{text: "bear market", kind: kindSignificantBigram}))
	assert.Equal(t, 1.4, m.featureWeight(feature{text: "NOT_bullish", kind: kindUnigram}))
	assert.Equal(t, 1.4, m.featureWeight(feature{text: "price_100000", kind: kindUnigram}))
	assert.Equal(t, 1.5, m.featureWeight(feature{text: "percent_5", kind: kindUnigram}))
	assert.Equal(t, 1.7, m.featureWeight(feature{text: "percent_15", kind: kindUnigram}))
	assert.Equal(t, 1.3, m.featureWeight(feature{text: "crash", kind: kindUnigram}))
	assert.Equal(t, 1.0, m.featureWeight(feature{text: "sideways", kind: kindUnigram}))
}

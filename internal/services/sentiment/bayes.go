package sentiment

import (
	"math"
	"strings"
)

type class int

const (
	classNegative class = iota
	classNeutral
	classPositive
	numClasses
)

// bayesModel is an add-one-smoothed multinomial Naive Bayes over weighted
// feature counts. Counts are fractional: each occurrence contributes its
// feature-class weight rather than 1.
type bayesModel struct {
	cfg        Config
	wordCounts [numClasses]map[string]float64
	classTotal [numClasses]float64
	docCount   [numClasses]float64
	totalDocs  float64
	vocab      map[string]bool
}

func newBayesModel(cfg Config) *bayesModel {
	m := &bayesModel{cfg: cfg, vocab: make(map[string]bool)}
	for c := range m.wordCounts {
		m.wordCounts[c] = make(map[string]float64)
	}
	return m
}

// learn accumulates one labeled document's features.
func (m *bayesModel) learn(feats []feature, c class) {
	for _, f := range feats {
		w := m.featureWeight(f)
		m.wordCounts[c][f.text] += w
		m.classTotal[c] += w
		m.vocab[f.text] = true
	}
	m.docCount[c]++
	m.totalDocs++
}

// featureWeight maps a feature to its count multiplier. Percent tokens
// above 10 carry the heavier weight: double-digit daily moves are the
// story, not noise.
func (m *bayesModel) featureWeight(f feature) float64 {
	switch f.kind {
	case kindSignificantBigram:
		return m.cfg.SignificantBigramWeight
	case kindSkipgram:
		return m.cfg.SkipgramWeight
	case kindBigram:
		return m.cfg.BigramWeight
	}
	switch {
	case strings.HasPrefix(f.text, "NOT_"):
		return m.cfg.NegatedWeight
	case strings.HasPrefix(f.text, "price_"):
		return m.cfg.PriceTokenWeight
	case strings.HasPrefix(f.text, "percent_"):
		if percentValue(f.text) > 10 {
			return m.cfg.LargePercentWeight
		}
		return m.cfg.PercentTokenWeight
	case isHighValue(f.text):
		return m.cfg.HighValueWeight
	}
	return 1.0
}

// posterior returns P(class|features) for the three classes, normalized
// via log-sum-exp.
func (m *bayesModel) posterior(feats []feature) [numClasses]float64 {
	var logScores [numClasses]float64
	vocabSize := float64(len(m.vocab))

	for c := class(0); c < numClasses; c++ {
		score := math.Log((m.docCount[c] + 1) / (m.totalDocs + float64(numClasses)))
		denom := m.classTotal[c] + vocabSize + 1 // alpha = 1
		for _, f := range feats {
			score += math.Log((m.wordCounts[c][f.text] + 1) / denom)
		}
		logScores[c] = score
	}

	max := logScores[0]
	for _, s := range logScores[1:] {
		if s > max {
			max = s
		}
	}
	var sum float64
	var probs [numClasses]float64
	for c, s := range logScores {
		probs[c] = math.Exp(s - max)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
	return probs
}

// score is P(positive) - P(negative), in [-1, 1].
func (m *bayesModel) score(feats []feature) float64 {
	p := m.posterior(feats)
	return p[classPositive] - p[classNegative]
}

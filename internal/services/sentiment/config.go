package sentiment

// Config holds every tunable the scorer uses. The stochastic n-gram
// inclusion probabilities are hyperparameters, not bugs: under a seeded
// random source the pipeline is fully reproducible.
type Config struct {
	// Stochastic n-gram inclusion.
	BigramSampleP   float64 `yaml:"bigram_sample_p" default:"0.7"`
	SkipgramSampleP float64 `yaml:"skipgram_sample_p" default:"0.5"`

	// Naive-Bayes feature weights by feature class.
	SignificantBigramWeight float64 `yaml:"significant_bigram_weight" default:"1.5"`
	SkipgramWeight          float64 `yaml:"skipgram_weight" default:"1.2"`
	BigramWeight            float64 `yaml:"bigram_weight" default:"1.2"`
	NegatedWeight           float64 `yaml:"negated_weight" default:"1.4"`
	PriceTokenWeight        float64 `yaml:"price_token_weight" default:"1.4"`
	PercentTokenWeight      float64 `yaml:"percent_token_weight" default:"1.5"`
	LargePercentWeight      float64 `yaml:"large_percent_weight" default:"1.7"`
	HighValueWeight         float64 `yaml:"high_value_weight" default:"1.3"`

	// Blend of the two scoring components.
	BayesBlend float64 `yaml:"bayes_blend" default:"0.2"`
	RuleBlend  float64 `yaml:"rule_blend" default:"0.8"`

	// Mixed bullish+bearish vocabulary in one text discounts the score.
	MixedSignalDiscount float64 `yaml:"mixed_signal_discount" default:"0.8"`

	// Aggregation over headline sets.
	RecencyDecay   float64 `yaml:"recency_decay" default:"0.05"`
	DefaultTopN    int     `yaml:"default_top_n" default:"25"`
	NegFractionCut float64 `yaml:"neg_fraction_cut" default:"0.4"`

	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the production hyperparameters.
func DefaultConfig() Config {
	return Config{
		BigramSampleP:           0.7,
		SkipgramSampleP:         0.5,
		SignificantBigramWeight: 1.5,
		SkipgramWeight:          1.2,
		BigramWeight:            1.2,
		NegatedWeight:           1.4,
		PriceTokenWeight:        1.4,
		PercentTokenWeight:      1.5,
		LargePercentWeight:      1.7,
		HighValueWeight:         1.3,
		BayesBlend:              0.2,
		RuleBlend:               0.8,
		MixedSignalDiscount:     0.8,
		RecencyDecay:            0.05,
		DefaultTopN:             25,
		NegFractionCut:          0.4,
	}
}

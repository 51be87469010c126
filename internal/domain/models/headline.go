package models

import "time"

// Headline is one news item, freshest-first in any collection, deduplicated
// by title by the ingestion layer. The scorer never mutates it.
type Headline struct {
	Title     string    `json:"title"`
	Source    string    `json:"source,omitempty"`
	URL       string    `json:"url,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SentimentLabel buckets a 0-100 sentiment index into five bands.
type SentimentLabel string

const (
	SentimentVeryNegative SentimentLabel = "Very Negative"
	SentimentNegative     SentimentLabel = "Negative"
	SentimentNeutral      SentimentLabel = "Neutral"
	SentimentPositive     SentimentLabel = "Positive"
	SentimentVeryPositive SentimentLabel = "Very Positive"
)

// HeadlineScore is the per-headline contribution to an aggregate sentiment
// result.
type HeadlineScore struct {
	Headline Headline `json:"headline"`
	Score    float64  `json:"score"`  // raw, [-1,1]
	Weight   float64  `json:"weight"` // recency weight used in the aggregate
}

// SentimentResult is the aggregate market sentiment over a headline set.
type SentimentResult struct {
	RawScore    float64         `json:"raw_score"`    // [-1,1]
	ScaledValue float64         `json:"scaled_value"` // [0,100]
	Label       SentimentLabel  `json:"label"`
	PerHeadline []HeadlineScore `json:"per_headline"`
	ScoredAt    time.Time       `json:"scored_at"`
}

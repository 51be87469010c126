package models

// Requests for the forecast HTTP endpoints. Defined in domain for
// consistency and reuse.

type ForecastRequest struct {
	Days  int `query:"days" json:"days" default:"30" validate:"gte=0,lte=365"`
	Paths int `query:"paths" json:"paths" default:"5000" validate:"gte=100,lte=10000"`
}

type SentimentRequest struct {
	Top int `query:"top" json:"top" default:"25" validate:"gte=1,lte=200"`
}

type FundamentalsRequest struct {
	Date string `query:"date" json:"date"` // RFC3339 or unix seconds; empty = now
}

type RegimeRequest struct {
	Lookback int `query:"lookback" json:"lookback" default:"0" validate:"gte=0,lte=10000"` // 0 = full history
}

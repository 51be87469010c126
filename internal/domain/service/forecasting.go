package service

import (
	"context"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

// ForecastService produces probabilistic price forecasts from the trained
// regime model and the latest context.
type ForecastService interface {
	Forecast(ctx context.Context, req models.ForecastRequest) (*models.ForecastResult, error)
}

// SentimentService aggregates recent headlines into one market sentiment
// index.
type SentimentService interface {
	Analyze(ctx context.Context, topN int) (*models.SentimentResult, error)
}

// FundamentalsService derives supply-side fundamentals as of a date.
type FundamentalsService interface {
	Compute(ctx context.Context, asOf time.Time) (*models.Fundamentals, error)
}

// RegimeService summarizes the current market regime.
type RegimeService interface {
	Current(ctx context.Context, lookbackDays int) (*models.RegimeSummary, error)
}

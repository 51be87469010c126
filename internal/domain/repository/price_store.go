package repository

import (
	"context"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

// PriceStore provides the daily BTC price history the models train on.
type PriceStore interface {
	GetDailyHistory(ctx context.Context, from, to time.Time) ([]models.PricePoint, error)
	GetLatestN(ctx context.Context, n int) ([]models.PricePoint, error)
	LatestPrice(ctx context.Context) (float64, error)
	StoreDaily(ctx context.Context, points []models.PricePoint) error
}

// HeadlineStore provides recent news headlines, freshest first and
// deduplicated by title.
type HeadlineStore interface {
	Recent(ctx context.Context, limit int) ([]models.Headline, error)
	Store(ctx context.Context, hs []models.Headline) error
}

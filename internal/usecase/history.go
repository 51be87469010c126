package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	domrepo "github.com/ciphernom/rektcast/internal/domain/repository"
	"github.com/ciphernom/rektcast/pkg/util"
)

// HistoryUseCase provides business logic for retrieving the daily price
// history.
type HistoryUseCase struct {
	store domrepo.PriceStore
}

func NewHistoryUseCase(store domrepo.PriceStore) *HistoryUseCase {
	return &HistoryUseCase{store: store}
}

type GetHistoryParams struct {
	From  time.Time
	To    time.Time
	Limit int
}

type GetHistoryResult struct {
	From   time.Time
	To     time.Time
	Count  int
	Points []models.PricePoint
}

func (uc *HistoryUseCase) GetHistory(ctx context.Context, p GetHistoryParams) (*GetHistoryResult, error) {
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = 10000
	}
	if p.Limit > 50000 {
		p.Limit = 50000
	}
	if !p.From.IsZero() {
		p.From, p.To = util.AlignFromTo(p.From, p.To, string(domrepo.TF1d))
	}

	points, err := uc.store.GetDailyHistory(ctx, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	if len(points) > p.Limit {
		points = points[len(points)-p.Limit:]
	}

	return &GetHistoryResult{
		From:   p.From,
		To:     p.To,
		Count:  len(points),
		Points: points,
	}, nil
}

package features

import (
	"github.com/ciphernom/rektcast/internal/domain/models"
)

const (
	shortTermDays  = 7
	mediumTermDays = 30
	longTermDays   = 90
	recentVolDays  = 14
	localWindow    = 30
)

// SummarizeTrend derives the read-only PriceTrendSummary from an ordered
// daily history. Malformed or empty input yields an all-default neutral
// summary.
func SummarizeTrend(history []models.PricePoint) models.PriceTrendSummary {
	s := models.PriceTrendSummary{Direction: models.TrendNeutral}
	if len(history) == 0 {
		return s
	}

	last := history[len(history)-1].Price
	if last <= 0 {
		return s
	}

	s.ShortTermChange = pctChange(history, shortTermDays)
	s.MediumTermChange = pctChange(history, mediumTermDays)
	s.LongTermChange = pctChange(history, longTermDays)

	rets := LogReturns(history)
	s.Volatility = StdDev(rets)
	s.RecentVolatility = TailStdDev(rets, recentVolDays)

	switch {
	case s.ShortTermChange > 2 && s.MediumTermChange > 0:
		s.Direction = models.TrendBullish
	case s.ShortTermChange < -2 && s.MediumTermChange < 0:
		s.Direction = models.TrendBearish
	}

	maxAll, maxLocal, minLocal := last, last, last
	for i, p := range history {
		if p.Price > maxAll {
			maxAll = p.Price
		}
		if i >= len(history)-localWindow {
			if p.Price > maxLocal {
				maxLocal = p.Price
			}
			if p.Price < minLocal {
				minLocal = p.Price
			}
		}
	}
	s.IsAllTimeHigh = last >= maxAll
	s.IsLocalHigh = last >= maxLocal*0.99
	s.IsLocalLow = last <= minLocal*1.01
	return s
}

// pctChange is the percent change of the closing price over the last n days
// (or the whole series when shorter).
func pctChange(history []models.PricePoint, n int) float64 {
	if len(history) < 2 {
		return 0
	}
	i := len(history) - 1 - n
	if i < 0 {
		i = 0
	}
	base := history[i].Price
	if base <= 0 {
		return 0
	}
	return (history[len(history)-1].Price - base) / base * 100
}

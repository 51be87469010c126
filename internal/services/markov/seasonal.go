package markov

import (
	"github.com/ciphernom/rektcast/internal/domain/models"
	"github.com/ciphernom/rektcast/internal/services/features"
)

// monthStats aggregates per-calendar-month behavior of the classified
// history for seasonal prior adjustment.
type monthStats struct {
	stateCounts [3]int
	transitions Matrix3
	volatility  float64 // stddev of the month's log returns, all years pooled
	total       int
}

// seasonal holds global plus per-month statistics computed during training.
type seasonal struct {
	months      [13]monthStats // 1..12
	globalState [3]int
	globalTotal int
	globalVol   float64
}

func buildSeasonal(history []models.PricePoint) seasonal {
	var s seasonal
	byMonth := make(map[int][]float64)
	all := make([]float64, 0, len(history))

	for i, p := range history {
		if !p.Classified {
			continue
		}
		m := int(p.Date.Month())
		s.months[m].stateCounts[p.ReturnState]++
		s.months[m].total++
		s.globalState[p.ReturnState]++
		s.globalTotal++
		if i > 0 {
			byMonth[m] = append(byMonth[m], p.LogReturn)
			all = append(all, p.LogReturn)
			prev := history[i-1]
			if prev.Classified {
				s.months[m].transitions[prev.ReturnState][p.ReturnState]++
			}
		}
	}

	for m := 1; m <= 12; m++ {
		s.months[m].volatility = features.StdDev(byMonth[m])
	}
	s.globalVol = features.StdDev(all)
	return s
}

// extremeRate is the share of crash+pump days in a count triple.
func extremeRate(counts [3]int, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(counts[models.StateCrash]+counts[models.StatePump]) / float64(total)
}

// seasonalFactor is the month's extreme-event rate relative to the global
// rate; 1.0 when either side has no data.
func (s seasonal) seasonalFactor(month int) float64 {
	if month < 1 || month > 12 {
		return 1
	}
	global := extremeRate(s.globalState, s.globalTotal)
	if global <= 0 {
		return 1
	}
	m := extremeRate(s.months[month].stateCounts, s.months[month].total)
	if s.months[month].total == 0 {
		return 1
	}
	return m / global
}

// volRatio is the month's historical volatility relative to the global
// volatility; 1.0 without data.
func (s seasonal) volRatio(month int) float64 {
	if month < 1 || month > 12 || s.globalVol <= 0 {
		return 1
	}
	v := s.months[month].volatility
	if v <= 0 {
		return 1
	}
	return v / s.globalVol
}

// monthSentimentPrior encodes calendar seasonality of crypto sentiment:
// below 1 is bullish-biased, above 1 bearish-biased.
func monthSentimentPrior(month int) float64 {
	switch month {
	case 1, 11, 12:
		return 0.85
	case 5, 9, 10:
		return 1.15
	default:
		return 1
	}
}

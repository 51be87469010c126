package models

import "time"

// RegimeSummary describes the market regime implied by the classified
// history: where we are now, how often each state occurs, and the
// transition structure.
type RegimeSummary struct {
	AsOf             time.Time     `json:"as_of"`
	LookbackDays     int           `json:"lookback_days"`
	CurrentState     string        `json:"current_state"`
	StateCounts      [3]int        `json:"state_counts"` // crash, normal, pump
	TransitionMatrix [3][3]float64 `json:"transition_matrix"`
	SteadyState      [3]float64    `json:"steady_state"`
	CrashProb30d     float64       `json:"crash_prob_30d"`
	PumpProb30d      float64       `json:"pump_prob_30d"`
}

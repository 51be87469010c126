package models

import "time"

// SimulationStep holds cross-path percentile statistics for one forecast
// step of the Monte Carlo simulation.
type SimulationStep struct {
	Step    int     `json:"step"`
	Lower5  float64 `json:"lower5"`
	Lower25 float64 `json:"lower25"`
	Median  float64 `json:"median"`
	Upper75 float64 `json:"upper75"`
	Upper95 float64 `json:"upper95"`
	Mean    float64 `json:"mean"`
}

// ForecastResult is the full output of one forecast run. Created fresh per
// call and never mutated afterward; sentiment post-adjustment produces a
// derived copy.
type ForecastResult struct {
	GeneratedAt      time.Time        `json:"generated_at"`
	HorizonDays      int              `json:"horizon_days"`
	CurrentPrice     float64          `json:"current_price"`
	ForecastPrice    float64          `json:"forecast_price"`
	LowerBound       float64          `json:"lower_bound"`
	UpperBound       float64          `json:"upper_bound"`
	ExpectedReturn   float64          `json:"expected_return"` // cumulative log return
	CrashProbability float64          `json:"crash_probability"`
	PumpProbability  float64          `json:"pump_probability"`
	TransitionMatrix [3][3]float64    `json:"transition_matrix"`
	SteadyState      [3]float64       `json:"steady_state"`
	Simulation       []SimulationStep `json:"simulation"`
	SamplePaths      [][]float64      `json:"sample_paths,omitempty"`
}

// Fundamentals is the supply-side snapshot derived from the halving
// schedule and the price history.
type Fundamentals struct {
	AsOf                 time.Time `json:"as_of"`
	CurrentEpoch         int       `json:"current_epoch"`
	DaysSinceLastHalving int       `json:"days_since_last_halving"`
	CurrentBlockReward   float64   `json:"current_block_reward"`
	InflationRate        float64   `json:"inflation_rate"`
	CirculatingSupply    float64   `json:"circulating_supply"`
	PercentOfMaxIssued   float64   `json:"percent_of_max_issued"`
}

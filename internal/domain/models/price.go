package models

import "time"

// ReturnState labels a daily log-return relative to its halving-epoch
// distribution.
type ReturnState int

const (
	StateCrash ReturnState = iota
	StateNormal
	StatePump

	NumStates = 3
)

func (s ReturnState) String() string {
	switch s {
	case StateCrash:
		return "crash"
	case StateNormal:
		return "normal"
	case StatePump:
		return "pump"
	default:
		return "unknown"
	}
}

// PricePoint is one daily observation of the BTC price history.
// Produced by the ingestion layer; the classifier only fills ReturnState.
type PricePoint struct {
	Date         time.Time
	Price        float64
	LogReturn    float64 // 0 for the first point
	HalvingEpoch int
	ReturnState  ReturnState
	Classified   bool

	// Optional on-chain fields; Has* guards distinguish "absent" from zero.
	MVRV          float64
	NVT           float64
	ActiveAddrs   float64
	SupplyActive  float64
	HasOnChain    bool
}

// TrendDirection summarizes the direction of recent price action.
type TrendDirection string

const (
	TrendBullish TrendDirection = "bullish"
	TrendBearish TrendDirection = "bearish"
	TrendNeutral TrendDirection = "neutral"
)

// PriceTrendSummary is a read-only digest of the price history used by the
// sentiment scorer for market-context adjustment. Derived once, never
// mutated.
type PriceTrendSummary struct {
	ShortTermChange  float64 // 7d, percent
	MediumTermChange float64 // 30d, percent
	LongTermChange   float64 // 90d, percent
	Volatility       float64 // stddev of daily log returns
	RecentVolatility float64 // last 14d
	Direction        TrendDirection
	IsAllTimeHigh    bool
	IsLocalHigh      bool
	IsLocalLow       bool
}

// Tick is a single streamed trade event from the exchange websocket.
type Tick struct {
	Symbol    string
	Timestamp int64 // unix seconds
	Price     float64
	Volume    float64
}

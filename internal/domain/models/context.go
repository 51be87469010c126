package models

// OnChainMetrics carries the optional on-chain risk inputs for prior
// adjustment. Zero-valued fields with the corresponding Has* flag unset are
// treated as absent, never fabricated.
type OnChainMetrics struct {
	MVRVZScore       float64 `json:"mvrv_z_score"`
	HasMVRV          bool    `json:"has_mvrv"`
	NVTZScore        float64 `json:"nvt_z_score"`
	HasNVT           bool    `json:"has_nvt"`
	SupplyShockRatio float64 `json:"supply_shock_ratio"`
	HasSupplyShock   bool    `json:"has_supply_shock"`
	WhaleDelta       float64 `json:"whale_delta"`
	HasWhaleDelta    bool    `json:"has_whale_delta"`
	PuellMultiple    float64 `json:"puell_multiple"`
	HasPuell         bool    `json:"has_puell"`
	RiskLevel        string  `json:"risk_level"` // "low", "moderate", "elevated", "high", "extreme"
}

// ForecastContext is the fully-populated context record passed into prior
// adjustment and forecasting. The model never reads ambient state; every
// input arrives here.
type ForecastContext struct {
	CurrentMonth    int     `json:"current_month"` // 1..12; 0 means "use latest history month"
	SentimentValue  float64 `json:"sentiment_value"` // 0-100 aggregate index
	HasSentiment    bool    `json:"has_sentiment"`
	VolatilityRatio float64 `json:"volatility_ratio"` // short-term vs long-term sigma
	HasVolatility   bool    `json:"has_volatility"`
	CyclePosition   float64 `json:"cycle_position"` // 0=cycle bottom, 1=cycle top
	HasCycle        bool    `json:"has_cycle"`
	OnChain         *OnChainMetrics `json:"on_chain,omitempty"`
	Fundamentals    *Fundamentals   `json:"fundamentals,omitempty"`
}

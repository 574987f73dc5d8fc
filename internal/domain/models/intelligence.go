package models

// Action is the recommendation given to a farmer for a commodity-market
// pair.
type Action string

const (
	ActionSellNow Action = "SELL_NOW"
	ActionHold    Action = "HOLD"
	ActionWait    Action = "WAIT"
	ActionMonitor Action = "MONITOR"
)

// Source tells which path produced a recommendation.
type Source string

const (
	SourceAdvisory  Source = "ADVISORY"
	SourceRuleBased Source = "RULE_BASED"
)

// RiskLabel classifies price volatility.
type RiskLabel string

const (
	RiskLow      RiskLabel = "Low"
	RiskModerate RiskLabel = "Moderate"
	RiskHigh     RiskLabel = "High"
)

// Forecast is the linear trend projection for a price series.
// ExpectedGain is predicted minus last observed price.
type Forecast struct {
	PredictedPrice  float64 `json:"predictedPrice"`
	ExpectedGain    float64 `json:"expectedGain"`
	ExpectedGainPct float64 `json:"expectedGainPct"`
	Slope           float64 `json:"slope"`
	Intercept       float64 `json:"intercept"`
}

// RiskAssessment pairs the volatility measure with its label.
type RiskAssessment struct {
	Volatility float64   `json:"volatility"`
	Label      RiskLabel `json:"label"`
}

// Recommendation is the full advisory output for one query.
type Recommendation struct {
	Action            Action  `json:"action"`
	Rationale         string  `json:"rationale"`
	ConfidencePercent int     `json:"confidencePercent"`
	Source            Source  `json:"source"`
	CurrentPrice      float64 `json:"currentPrice,omitempty"`
	PredictedPrice    float64 `json:"predictedPrice,omitempty"`
	ExpectedGain      float64 `json:"expectedGain,omitempty"`
	RiskLevel         string  `json:"riskLevel,omitempty"`
}

// Intelligence is the per-pair dashboard block: price stats, forecast,
// risk, and recommendation combined.
type Intelligence struct {
	Commodity      string         `json:"commodity"`
	Market         string         `json:"market"`
	CurrentPrice   float64        `json:"currentPrice"`
	AveragePrice   float64        `json:"averagePrice"`
	MinPrice       float64        `json:"minPrice"`
	MaxPrice       float64        `json:"maxPrice"`
	Trend          []PricePoint   `json:"trend"`
	Forecast       *Forecast      `json:"forecast,omitempty"`
	Risk           RiskAssessment `json:"risk"`
	Recommendation Recommendation `json:"recommendation"`
}

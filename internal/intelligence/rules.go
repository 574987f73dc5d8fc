package intelligence

import (
	"fmt"

	"KisanSense/internal/domain/models"
)

// Expected-gain bands in rupees per quintal. A large projected rise or
// a modest projected dip both advise patience; only a large projected
// drop advises selling immediately.
const (
	GainWaitMin = 50.0
	GainHoldMin = 10.0
	LossHoldMax = -10.0
	LossWaitMax = -50.0
)

// RuleBasedRecommendation produces a deterministic recommendation from
// the price series alone. Total: never fails, for any input including
// an empty series.
func RuleBasedRecommendation(prices []float64, commodity, market string) models.Recommendation {
	if len(prices) == 0 {
		return models.Recommendation{
			Action: models.ActionMonitor,
			Rationale: fmt.Sprintf(
				"Not enough price history for %s at %s to make a recommendation. Monitor the market for a few days as data accumulates.",
				commodity, market),
			ConfidencePercent: ConfidenceMin,
			Source:            models.SourceRuleBased,
		}
	}

	current := prices[len(prices)-1]
	fc := ComputeForecast(prices)
	action := actionForGain(fc.ExpectedGain)
	risk := AssessRisk(prices)

	return models.Recommendation{
		Action:            action,
		Rationale:         ruleRationale(action, commodity, market, current, fc),
		ConfidencePercent: Confidence(len(prices)),
		Source:            models.SourceRuleBased,
		CurrentPrice:      current,
		PredictedPrice:    fc.PredictedPrice,
		ExpectedGain:      fc.ExpectedGain,
		RiskLevel:         string(risk.Label),
	}
}

// ComputeForecast builds the forecast for a non-empty series,
// short-circuiting the single-point case.
func ComputeForecast(prices []float64) models.Forecast {
	current := prices[len(prices)-1]
	predicted, slope, intercept, err := ForecastNext(prices)
	if err != nil {
		return models.Forecast{}
	}
	gain := predicted - current
	var gainPct float64
	if current != 0 {
		gainPct = gain / current * 100
	}
	return models.Forecast{
		PredictedPrice:  predicted,
		ExpectedGain:    gain,
		ExpectedGainPct: gainPct,
		Slope:           slope,
		Intercept:       intercept,
	}
}

// Analyze computes the forecast and risk assessment for a non-empty
// series in one pass over both primitives.
func Analyze(prices []float64) (models.Forecast, models.RiskAssessment) {
	return ComputeForecast(prices), AssessRisk(prices)
}

func actionForGain(gain float64) models.Action {
	switch {
	case gain > GainWaitMin:
		return models.ActionWait
	case gain < LossWaitMax:
		return models.ActionSellNow
	case gain < LossHoldMax:
		return models.ActionWait
	default:
		return models.ActionHold
	}
}

func ruleRationale(action models.Action, commodity, market string, current float64, fc models.Forecast) string {
	switch action {
	case models.ActionWait:
		if fc.ExpectedGain > 0 {
			return fmt.Sprintf(
				"%s at %s is trading at ₹%.0f/quintal and projected to reach ₹%.0f (%+.0f, %+.1f%%). Waiting before selling is likely to improve your price.",
				commodity, market, current, fc.PredictedPrice, fc.ExpectedGain, fc.ExpectedGainPct)
		}
		return fmt.Sprintf(
			"%s at %s is trading at ₹%.0f/quintal with a projected dip to ₹%.0f (%+.0f, %+.1f%%). The decline looks temporary; avoid panic-selling and wait for recovery.",
			commodity, market, current, fc.PredictedPrice, fc.ExpectedGain, fc.ExpectedGainPct)
	case models.ActionSellNow:
		return fmt.Sprintf(
			"%s at %s is trading at ₹%.0f/quintal and projected to fall to ₹%.0f (%+.0f, %+.1f%%). Selling now minimizes your loss.",
			commodity, market, current, fc.PredictedPrice, fc.ExpectedGain, fc.ExpectedGainPct)
	default:
		if fc.ExpectedGain > GainHoldMin {
			return fmt.Sprintf(
				"%s at %s is trading at ₹%.0f/quintal with a modest rise expected to ₹%.0f (%+.0f, %+.1f%%). Holding for now is reasonable.",
				commodity, market, current, fc.PredictedPrice, fc.ExpectedGain, fc.ExpectedGainPct)
		}
		return fmt.Sprintf(
			"%s at %s is trading at ₹%.0f/quintal with a stable outlook around ₹%.0f (%+.0f, %+.1f%%). Holding is reasonable; no urgent action needed.",
			commodity, market, current, fc.PredictedPrice, fc.ExpectedGain, fc.ExpectedGainPct)
	}
}

package intelligence

import "KisanSense/internal/domain/models"

// Volatility thresholds in rupees per quintal. Tuned for the modal
// price scale of the AGMARKNET feed; a deployment using a different
// unit must recalibrate both.
const (
	RiskLowMax      = 50.0
	RiskModerateMax = 150.0
)

// ClassifyRisk maps population volatility to a risk label.
func ClassifyRisk(volatility float64) models.RiskLabel {
	switch {
	case volatility > RiskModerateMax:
		return models.RiskHigh
	case volatility > RiskLowMax:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// AssessRisk computes volatility for a series and labels it. An empty
// series gets zero volatility and a Low label.
func AssessRisk(prices []float64) models.RiskAssessment {
	vol, err := Volatility(prices)
	if err != nil {
		return models.RiskAssessment{Label: models.RiskLow}
	}
	return models.RiskAssessment{Volatility: vol, Label: ClassifyRisk(vol)}
}

package service

import (
	"context"

	"KisanSense/internal/domain/models"
)

// AdvisoryQuery carries the market context sent to the advisory model.
type AdvisoryQuery struct {
	Commodity    string
	Market       string
	Prices       []float64
	CurrentPrice float64
	Forecast     *models.Forecast
	Risk         models.RiskAssessment
	Weather      *models.WeatherContext
	Language     string
}

// Advisor produces a free-text recommendation from an external language
// model. Implementations must respect ctx cancellation.
type Advisor interface {
	Advise(ctx context.Context, q AdvisoryQuery) (string, error)
}

// WeatherProvider returns current weather for a location.
type WeatherProvider interface {
	Current(ctx context.Context, location string) (*models.WeatherContext, error)
}

// Translator translates text into a target language. Implementations
// fall back to returning the source text rather than failing.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, bool)
}

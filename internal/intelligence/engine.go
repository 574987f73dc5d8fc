package intelligence

import (
	"context"
	"strings"
	"time"

	"KisanSense/internal/domain/models"
	"KisanSense/internal/domain/repository"
	"KisanSense/internal/domain/service"
	"KisanSense/pkg/logger"
)

// EngineOption configures Engine.
type EngineOption func(*Engine)

// Engine is the recommendation entry point. It prefers the advisory
// path and falls back to the rule-based recommender on any advisory
// failure. GetRecommendation is total: it never returns an error and
// always returns a populated result.
type Engine struct {
	advisor service.Advisor
	timeout time.Duration
	log     *logger.Logger
	metrics repository.Metrics
}

// WithAdvisor sets the external advisory client. Nil means the advisory
// path is not configured and every request uses the rule-based path.
func WithAdvisor(a service.Advisor) EngineOption {
	return func(e *Engine) {
		e.advisor = a
	}
}

// WithAdvisoryTimeout bounds the single advisory attempt.
func WithAdvisoryTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *logger.Logger) EngineOption {
	return func(e *Engine) {
		e.log = log
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m repository.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates a recommendation engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{timeout: 8 * time.Second}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query is one recommendation request.
type Query struct {
	Prices    []float64
	Weather   *models.WeatherContext
	Commodity string
	Market    string
	Language  string
}

// GetRecommendation produces a recommendation for the query. The
// advisory call, when configured, is a single bounded attempt; timeout,
// transport error, or unusable response text all fall back to the
// rule-based path.
func (e *Engine) GetRecommendation(ctx context.Context, q Query) models.Recommendation {
	if e.advisor == nil || len(q.Prices) == 0 {
		return RuleBasedRecommendation(q.Prices, q.Commodity, q.Market)
	}

	current := q.Prices[len(q.Prices)-1]
	fc, risk := Analyze(q.Prices)

	actx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.advisor.Advise(actx, service.AdvisoryQuery{
		Commodity:    q.Commodity,
		Market:       q.Market,
		Prices:       q.Prices,
		CurrentPrice: current,
		Forecast:     &fc,
		Risk:         risk,
		Weather:      q.Weather,
		Language:     q.Language,
	})
	if err != nil {
		e.observeAdvisory("error")
		e.warn("advisory call failed, using rule-based recommendation",
			logger.String("commodity", q.Commodity),
			logger.String("market", q.Market),
			logger.Error(err))
		return RuleBasedRecommendation(q.Prices, q.Commodity, q.Market)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		e.observeAdvisory("fallback")
		return RuleBasedRecommendation(q.Prices, q.Commodity, q.Market)
	}

	e.observeAdvisory("ok")
	return models.Recommendation{
		Action:            ParseAction(text),
		Rationale:         text,
		ConfidencePercent: Confidence(len(q.Prices)),
		Source:            models.SourceAdvisory,
		CurrentPrice:      current,
		PredictedPrice:    fc.PredictedPrice,
		ExpectedGain:      fc.ExpectedGain,
		RiskLevel:         string(risk.Label),
	}
}

// ParseAction derives an action from advisory prose by case-insensitive
// token search in priority order. Text with no recognizable token maps
// to MONITOR, a defined "no strong signal" outcome.
func ParseAction(text string) models.Action {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "SELL"):
		return models.ActionSellNow
	case strings.Contains(upper, "WAIT"):
		return models.ActionWait
	case strings.Contains(upper, "HOLD"):
		return models.ActionHold
	default:
		return models.ActionMonitor
	}
}

func (e *Engine) observeAdvisory(outcome string) {
	if e.metrics != nil {
		e.metrics.RecordAdvisoryCall(outcome)
	}
}

func (e *Engine) warn(msg string, fields ...logger.Field) {
	if e.log != nil {
		e.log.Warn(msg, fields...)
	}
}

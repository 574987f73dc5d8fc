package usecase

import (
	"context"
	"time"

	"KisanSense/internal/domain/models"
	drepo "KisanSense/internal/domain/repository"
	dservice "KisanSense/internal/domain/service"
	"KisanSense/internal/intelligence"
	"KisanSense/pkg/logger"
)

// RecommenderOption configures Recommender.
type RecommenderOption func(*Recommender)

// Recommender serves recommendation requests: loads the price series,
// enriches with weather when available, runs the engine, and renders
// the rationale in the requested language. Total with respect to
// downstream failures other than the price store itself.
type Recommender struct {
	store       drepo.PriceStore
	engine      *intelligence.Engine
	weather     dservice.WeatherProvider
	translator  dservice.Translator
	log         *logger.Logger
	historyDays int
}

// WithRecommenderWeather sets the optional weather provider.
func WithRecommenderWeather(w dservice.WeatherProvider) RecommenderOption {
	return func(r *Recommender) {
		r.weather = w
	}
}

// WithRecommenderTranslator sets the optional translator.
func WithRecommenderTranslator(t dservice.Translator) RecommenderOption {
	return func(r *Recommender) {
		r.translator = t
	}
}

// WithRecommenderHistoryDays sets how far back the series query looks.
func WithRecommenderHistoryDays(days int) RecommenderOption {
	return func(r *Recommender) {
		if days > 0 {
			r.historyDays = days
		}
	}
}

// WithRecommenderLogger sets the structured logger.
func WithRecommenderLogger(log *logger.Logger) RecommenderOption {
	return func(r *Recommender) {
		r.log = log
	}
}

// NewRecommender creates a Recommender.
func NewRecommender(store drepo.PriceStore, engine *intelligence.Engine, opts ...RecommenderOption) *Recommender {
	r := &Recommender{store: store, engine: engine, historyDays: 30}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend produces a recommendation for the request. When the
// request carries no prices the stored series is the only hard
// dependency: weather, advisory, and translation failures degrade,
// they never fail the request.
func (r *Recommender) Recommend(ctx context.Context, req models.RecommendationRequest) (models.Recommendation, error) {
	prices := req.Prices
	if len(prices) == 0 {
		now := time.Now()
		points, err := r.store.Series(ctx, req.Commodity, req.Market, now.AddDate(0, 0, -r.historyDays), now)
		if err != nil {
			return models.Recommendation{}, err
		}
		prices = make([]float64, 0, len(points))
		for _, p := range points {
			prices = append(prices, p.ModalPrice)
		}
	}

	weather := req.Weather
	if weather == nil && r.weather != nil {
		wc, werr := r.weather.Current(ctx, req.Market)
		if werr != nil {
			if r.log != nil {
				r.log.Debug("weather lookup failed",
					logger.String("market", req.Market), logger.Error(werr))
			}
		} else {
			weather = wc
		}
	}

	rec := r.engine.GetRecommendation(ctx, intelligence.Query{
		Prices:    prices,
		Weather:   weather,
		Commodity: req.Commodity,
		Market:    req.Market,
		Language:  req.Language,
	})

	// advisory responses already arrive in the requested language;
	// rule-based templates are English and need translation
	if rec.Source == models.SourceRuleBased && r.translator != nil && req.Language != "" && req.Language != "en" {
		if text, ok := r.translator.Translate(ctx, rec.Rationale, req.Language); ok {
			rec.Rationale = text
		}
	}

	return rec, nil
}

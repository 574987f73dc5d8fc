package usecase

import (
	"context"
	"encoding/json"
	"time"

	"KisanSense/internal/domain/models"
	drepo "KisanSense/internal/domain/repository"
	"KisanSense/internal/intelligence"
	"KisanSense/pkg/cache"
)

// Dashboard serves the read-side market views: commodity and mandi
// listings, per-pair intelligence blocks, and the daily overview.
// Overview and intelligence responses are cached briefly since the
// underlying data changes at most daily.
type Dashboard struct {
	store    drepo.PriceStore
	engine   *intelligence.Engine
	cache    cache.Service
	cacheTTL time.Duration
}

// NewDashboard creates a Dashboard.
func NewDashboard(store drepo.PriceStore, engine *intelligence.Engine, c cache.Service, ttl time.Duration) *Dashboard {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Dashboard{store: store, engine: engine, cache: c, cacheTTL: ttl}
}

// Health reports whether the price store is reachable.
func (d *Dashboard) Health(ctx context.Context) error {
	return d.store.Health(ctx)
}

// Commodities lists all commodities with stored prices.
func (d *Dashboard) Commodities(ctx context.Context) ([]string, error) {
	return d.store.Commodities(ctx)
}

// Markets lists mandis that trade a commodity.
func (d *Dashboard) Markets(ctx context.Context, commodity string) ([]models.Mandi, error) {
	return d.store.Markets(ctx, commodity)
}

// Overview returns the latest-price summary for every pair.
func (d *Dashboard) Overview(ctx context.Context) ([]models.CommoditySummary, error) {
	const key = "dashboard:overview"
	var cached []models.CommoditySummary
	if d.cacheHit(ctx, key, &cached) {
		return cached, nil
	}

	summaries, err := d.store.Summaries(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	d.cachePut(ctx, key, summaries)
	return summaries, nil
}

// Intelligence builds the full analysis block for one pair over the
// given window.
func (d *Dashboard) Intelligence(ctx context.Context, commodity, market string, days int) (*models.Intelligence, error) {
	if days <= 0 {
		days = 30
	}
	key := "dashboard:intel:" + commodity + ":" + market + ":" + time.Now().Format("2006-01-02")
	var cached models.Intelligence
	if d.cacheHit(ctx, key, &cached) {
		return &cached, nil
	}

	now := time.Now()
	points, err := d.store.Series(ctx, commodity, market, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}

	prices := make([]float64, 0, len(points))
	for _, p := range points {
		prices = append(prices, p.ModalPrice)
	}

	intel := &models.Intelligence{
		Commodity: commodity,
		Market:    market,
		Trend:     points,
		Recommendation: d.engine.GetRecommendation(ctx, intelligence.Query{
			Prices: prices, Commodity: commodity, Market: market,
		}),
	}

	if len(prices) > 0 {
		intel.CurrentPrice = prices[len(prices)-1]
		intel.AveragePrice, _ = intelligence.Mean(prices)
		intel.MinPrice, intel.MaxPrice, _ = intelligence.MinMax(prices)
		fc, risk := intelligence.Analyze(prices)
		intel.Forecast = &fc
		intel.Risk = risk
	} else {
		intel.Risk = intelligence.AssessRisk(nil)
	}

	d.cachePut(ctx, key, intel)
	return intel, nil
}

func (d *Dashboard) cacheHit(ctx context.Context, key string, dest any) bool {
	if d.cache == nil {
		return false
	}
	raw, err := d.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	// redis returns JSON bytes; the memory cache returns the stored
	// value, which re-marshals cheaply
	data, ok := raw.([]byte)
	if !ok {
		if data, err = json.Marshal(raw); err != nil {
			return false
		}
	}
	return json.Unmarshal(data, dest) == nil
}

func (d *Dashboard) cachePut(ctx context.Context, key string, value any) {
	if d.cache == nil {
		return
	}
	_ = d.cache.Set(ctx, key, value, d.cacheTTL)
}

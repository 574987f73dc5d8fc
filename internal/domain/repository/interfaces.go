package repository

import (
	"context"
	"time"

	"KisanSense/internal/domain/models"
)

// MarketSource fetches raw price records from the upstream feed.
type MarketSource interface {
	FetchPrices(ctx context.Context, offset, limit int) ([]*models.PriceRecord, error)
}

// Publisher sends normalized price records to the message backend.
type Publisher interface {
	Publish(ctx context.Context, r *models.PriceRecord) error
	PublishBatch(ctx context.Context, records []*models.PriceRecord) error
	Close() error
}

// PriceStore persists price records and serves series queries.
type PriceStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, r *models.PriceRecord) error
	StoreBatch(ctx context.Context, records []*models.PriceRecord) error
	Series(ctx context.Context, commodity, market string, from, to time.Time) ([]models.PricePoint, error)
	Commodities(ctx context.Context) ([]string, error)
	Markets(ctx context.Context, commodity string) ([]models.Mandi, error)
	Summaries(ctx context.Context, day time.Time) ([]models.CommoditySummary, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordIngested(backend, commodity string)
	RecordError(kind string)
	RecordLastPrice(commodity, market string, price float64)
	RecordLatency(op string, seconds float64)
	RecordAdvisoryCall(outcome string)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"KisanSense/internal/domain/models"
	drepo "KisanSense/internal/domain/repository"
)

// PriceProcessor routes normalized price records to the configured
// backend: publish to Kafka for the consumer to persist, or write to
// ClickHouse directly.
type PriceProcessor struct {
	pub     drepo.Publisher
	store   drepo.PriceStore
	metrics drepo.Metrics
	backend string
}

// NewPriceProcessor creates a PriceProcessor.
func NewPriceProcessor(pub drepo.Publisher, store drepo.PriceStore, metrics drepo.Metrics, backend string) *PriceProcessor {
	return &PriceProcessor{pub: pub, store: store, metrics: metrics, backend: backend}
}

// Process routes a single record.
func (p *PriceProcessor) Process(ctx context.Context, r *models.PriceRecord) error {
	if r == nil {
		return fmt.Errorf("record is nil")
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, r)
	case "clickhouse":
		err = p.store.Store(ctx, r)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process record: %w", err)
	}

	p.metrics.RecordIngested(p.backend, r.Commodity)
	p.metrics.RecordLastPrice(r.Commodity, r.Market, r.ModalPrice)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch routes a page of records in one backend call.
func (p *PriceProcessor) ProcessBatch(ctx context.Context, records []*models.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, records)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, records)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, r := range records {
		p.metrics.RecordIngested(p.backend, r.Commodity)
		p.metrics.RecordLastPrice(r.Commodity, r.Market, r.ModalPrice)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

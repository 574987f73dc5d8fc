package usecase

import (
	"context"
	"fmt"
	"time"

	drepo "KisanSense/internal/domain/repository"
	"KisanSense/pkg/logger"
)

// SyncTimeout bounds one full sync pass, scheduled or manual.
const SyncTimeout = 10 * time.Minute

// PriceSync pulls the full AGMARKNET snapshot page by page and hands
// each page to the processor. Runs on a schedule and on demand.
type PriceSync struct {
	source    drepo.MarketSource
	processor *PriceProcessor
	metrics   drepo.Metrics
	log       *logger.Logger
	pageLimit int
}

// NewPriceSync creates a PriceSync.
func NewPriceSync(source drepo.MarketSource, processor *PriceProcessor, metrics drepo.Metrics, log *logger.Logger, pageLimit int) *PriceSync {
	if pageLimit <= 0 {
		pageLimit = 500
	}
	return &PriceSync{
		source:    source,
		processor: processor,
		metrics:   metrics,
		log:       log,
		pageLimit: pageLimit,
	}
}

// Run performs one full sync pass. A failed page aborts the pass;
// already-processed pages stay processed (the store dedupes by day).
func (s *PriceSync) Run(ctx context.Context) error {
	start := time.Now()
	total := 0

	for offset := 0; ; offset += s.pageLimit {
		records, err := s.source.FetchPrices(ctx, offset, s.pageLimit)
		if err != nil {
			s.metrics.RecordError("sync_fetch")
			return fmt.Errorf("sync at offset %d: %w", offset, err)
		}
		if len(records) == 0 {
			break
		}

		if err := s.processor.ProcessBatch(ctx, records); err != nil {
			return fmt.Errorf("sync process at offset %d: %w", offset, err)
		}
		total += len(records)

		if len(records) < s.pageLimit {
			break
		}
	}

	s.metrics.RecordLatency("sync", time.Since(start).Seconds())
	s.log.Info("price sync finished",
		logger.Int("records", total),
		logger.Duration("took", time.Since(start)))
	return nil
}

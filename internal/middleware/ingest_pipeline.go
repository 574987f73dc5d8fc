// Package middleware sits between the market source and the backend
// processor, validating records and absorbing downstream outages.
package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"KisanSense/internal/domain/models"
	domrepo "KisanSense/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, r *models.PriceRecord) error
}

// IngestPipeline validates incoming price records and forwards them to
// the processor, buffering and retrying in the background when the
// backend is unavailable.
type IngestPipeline struct {
	proc    Proc
	metrics domrepo.Metrics
	bufSize int
	bufCh   chan *models.PriceRecord
	stopCh  chan struct{}
	started bool
	mu      sync.Mutex
}

// PipelineOption configures IngestPipeline.
type PipelineOption func(*IngestPipeline)

// WithBufferSize sets the retry buffer capacity.
func WithBufferSize(n int) PipelineOption {
	return func(p *IngestPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewIngestPipeline creates a pipeline in front of proc.
func NewIngestPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *IngestPipeline {
	p := &IngestPipeline{
		proc:    proc,
		metrics: metrics,
		bufSize: 1000,
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan *models.PriceRecord, p.bufSize)
	return p
}

// Start launches background flushing of buffered records.
func (p *IngestPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.flushLoop(ctx)
}

// Stop stops the background flushing.
func (p *IngestPipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.started = false
	close(p.stopCh)
}

func (p *IngestPipeline) flushLoop(ctx context.Context) {
	backoff := 50 * time.Millisecond
	for {
		select {
		case <-p.stopCh:
			return
		case r := <-p.bufCh:
			if r == nil {
				continue
			}
			if err := p.proc.Process(ctx, r); err != nil {
				if backoff < 2*time.Second {
					backoff *= 2
				}
				p.metrics.RecordError("pipeline_flush")
				time.Sleep(backoff)
				// requeue if space; drop otherwise
				select {
				case p.bufCh <- r:
				default:
					p.metrics.RecordError("pipeline_buffer_drop")
				}
			} else {
				backoff = 50 * time.Millisecond
			}
		}
	}
}

// Process validates and forwards a record, buffering it for retry when
// the processor fails.
func (p *IngestPipeline) Process(ctx context.Context, r *models.PriceRecord) error {
	start := time.Now()
	if err := validateRecord(r); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}

	if err := p.proc.Process(ctx, r); err != nil {
		p.metrics.RecordError("pipeline_process")
		select {
		case p.bufCh <- r:
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}

	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateRecord(r *models.PriceRecord) error {
	if r == nil {
		return fmt.Errorf("record nil")
	}
	if r.Commodity == "" || r.Market == "" {
		return fmt.Errorf("commodity or market empty")
	}
	if r.ArrivalDate.IsZero() {
		return fmt.Errorf("arrival date missing")
	}
	if r.ModalPrice <= 0 {
		return fmt.Errorf("modal price must be positive")
	}
	if r.MinPrice < 0 || r.MaxPrice < 0 {
		return fmt.Errorf("negative price bounds")
	}
	if r.ArrivalQty != nil && *r.ArrivalQty < 0 {
		return fmt.Errorf("negative arrival quantity")
	}
	return nil
}

package usecase

import (
	"context"
	"encoding/json"

	"KisanSense/internal/domain/models"
	drepo "KisanSense/internal/domain/repository"
)

// RecordSink consumes one normalized price record.
type RecordSink interface {
	Process(ctx context.Context, r *models.PriceRecord) error
}

// KafkaPricesHandler consumes price records from Kafka and forwards
// them to the sink, normally the ingest pipeline in front of the
// ClickHouse-backed processor.
type KafkaPricesHandler struct {
	topic   string
	sink    RecordSink
	metrics drepo.Metrics
}

// NewKafkaPricesHandler creates a consumer handler for the price topic.
func NewKafkaPricesHandler(topic string, sink RecordSink, metrics drepo.Metrics) *KafkaPricesHandler {
	return &KafkaPricesHandler{topic: topic, sink: sink, metrics: metrics}
}

func (h *KafkaPricesHandler) Topic() string { return h.topic }

func (h *KafkaPricesHandler) Handle(ctx context.Context, b []byte) error {
	var r models.PriceRecord
	if err := json.Unmarshal(b, &r); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	return h.sink.Process(ctx, &r)
}

package repository

import (
	"context"

	"KisanSense/internal/domain/models"
	"KisanSense/internal/domain/repository"
	pkgkafka "KisanSense/pkg/kafka"
)

// KafkaPricePublisher implements Publisher on a Kafka topic. Records
// are keyed by commodity|market so a pair's history stays ordered on
// one partition.
type KafkaPricePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPricePublisher creates a Kafka price publisher.
func NewKafkaPricePublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPricePublisher{producer: producer, topic: topic}
}

func (p *KafkaPricePublisher) Publish(ctx context.Context, r *models.PriceRecord) error {
	return p.producer.Publish(ctx, p.topic, recordKey(r), r)
}

func (p *KafkaPricePublisher) PublishBatch(ctx context.Context, records []*models.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, pkgkafka.Message{Key: recordKey(r), Value: r})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPricePublisher) Close() error {
	return p.producer.Close()
}

func recordKey(r *models.PriceRecord) []byte {
	return []byte(r.Commodity + "|" + r.Market)
}

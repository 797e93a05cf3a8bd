package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"shop_api/internal/config"
	domain "shop_api/internal/domain/order"
	"shop_api/internal/infrastructure/encoding/avro"
	"shop_api/pkg/logger"
)

// OrderEventProducer publishes avro-encoded order lifecycle events.
// The connection is established lazily on the first publish.
type OrderEventProducer struct {
	client  *kgo.Client
	encoder *avro.Encoder
	topic   string
	log     logger.Logger
}

func NewOrderEventProducer(cfg config.KafkaConfig, log logger.Logger) (*OrderEventProducer, error) {
	encoder, err := avro.NewEncoder(avro.OrderEventSchema)
	if err != nil {
		return nil, fmt.Errorf("create event encoder: %w", err)
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.EventTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.DisableIdempotentWrite(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Info("kafka producer ready",
		logger.String("topic", cfg.EventTopic),
		logger.Any("brokers", cfg.Brokers),
	)

	return &OrderEventProducer{
		client:  client,
		encoder: encoder,
		topic:   cfg.EventTopic,
		log:     log,
	}, nil
}

func (p *OrderEventProducer) PublishOrderEvent(ctx context.Context, evt domain.Event) error {
	payload, err := p.encoder.EncodeNative(avro.EventToNative(evt))
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(uuid.NewString()),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}

	// ProduceSync returns a slice of results, one record in so the first
	// error is the only one.
	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	return nil
}

func (p *OrderEventProducer) Close(ctx context.Context) error {
	p.log.Info("closing kafka producer", logger.String("topic", p.topic))
	p.client.Close()
	return nil
}

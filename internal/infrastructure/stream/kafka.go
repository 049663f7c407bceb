package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domoutbox "github.com/AshwiniC929/OrderService/internal/domain/outbox"
	"github.com/AshwiniC929/OrderService/internal/observability"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher ships order lifecycle events to a Kafka topic. Events
// implementing outbox.Keyed are partitioned by their key (the order id), so
// events for one order stay ordered.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    observability.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger observability.Logger) *KafkaPublisher {
	if logger == nil {
		logger = observability.NopLogger()
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{
		writer: writer,
		log:    logger.With(observability.F("component", "kafka_publisher")),
	}
}

type envelope struct {
	Event      string          `json:"event"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    domoutbox.Event `json:"payload"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, e domoutbox.Event) error {
	if e == nil {
		return nil
	}

	value, err := json.Marshal(envelope{
		Event:      e.EventName(),
		OccurredAt: time.Now().UTC(),
		Payload:    e,
	})
	if err != nil {
		return fmt.Errorf("kafka publisher: marshal %s: %w", e.EventName(), err)
	}

	msg := kafka.Message{Value: value}
	if keyed, ok := e.(domoutbox.Keyed); ok {
		msg.Key = []byte(keyed.PartitionKey())
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publisher: write %s: %w", e.EventName(), err)
	}

	p.log.Debug("event_published", observability.F("event", e.EventName()))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

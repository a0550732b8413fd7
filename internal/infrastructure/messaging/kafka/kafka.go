// internal/infrastructure/messaging/kafka/kafka.go
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/infrastructure/messaging"
)

// Broker publishes to and consumes from Kafka
type Broker struct {
	brokers []string
	writer  *kafkaGo.Writer
	logger  logrus.FieldLogger
}

var (
	_ messaging.Publisher  = (*Broker)(nil)
	_ messaging.Subscriber = (*Broker)(nil)
)

// NewBroker creates a new Kafka publisher and subscriber. The writer is
// shared and picks the topic per message.
func NewBroker(brokers []string, logger logrus.FieldLogger) *Broker {
	return &Broker{
		brokers: brokers,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

// PublishEvent JSON-encodes event and writes it under key
func (b *Broker) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return b.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

// Consume reads topic as part of groupID until ctx is done. Handler errors
// are logged and the message is skipped.
func (b *Broker) Consume(ctx context.Context, topic string, groupID string, handler func(ctx context.Context, payload []byte) error) {
	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: b.brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	defer reader.Close()

	log := b.logger.WithField("topic", topic)
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Consumer shutting down")
				return
			}
			log.WithError(err).Error("Error reading message")
			continue
		}

		if err := handler(ctx, msg.Value); err != nil {
			log.WithError(err).Error("Error handling message")
		}
	}
}

// Close flushes pending writes
func (b *Broker) Close() error {
	return b.writer.Close()
}

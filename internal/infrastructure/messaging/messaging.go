// internal/infrastructure/messaging/messaging.go
package messaging

import "context"

// Publisher publishes events to a message broker
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// Subscriber consumes a topic until ctx is done
type Subscriber interface {
	Consume(ctx context.Context, topic string, groupID string, handler func(ctx context.Context, payload []byte) error)
}

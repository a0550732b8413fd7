// internal/infrastructure/messaging/negotiation.go
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/your-org/store-pilot/internal/domain/negotiation"
)

// EventNegotiationRecorded is the type of every negotiation event
const EventNegotiationRecorded = "negotiation.recorded"

// NegotiationEvent is the message published for each negotiation
type NegotiationEvent struct {
	Type   string             `json:"type"`
	Record negotiation.Record `json:"record"`
}

// EventPublisher publishes negotiation records, keyed by session so one
// session's events stay ordered.
type EventPublisher struct {
	publisher Publisher
	topic     string
}

// NewEventPublisher creates a negotiation recorder backed by publisher
func NewEventPublisher(publisher Publisher, topic string) *EventPublisher {
	return &EventPublisher{publisher: publisher, topic: topic}
}

// Record implements negotiation.Recorder
func (p *EventPublisher) Record(ctx context.Context, rec negotiation.Record) error {
	event := NegotiationEvent{Type: EventNegotiationRecorded, Record: rec}
	if err := p.publisher.PublishEvent(ctx, p.topic, rec.SessionID, event); err != nil {
		return fmt.Errorf("failed to publish negotiation event: %w", err)
	}
	return nil
}

// DecodeNegotiationEvent parses a payload written by EventPublisher
func DecodeNegotiationEvent(payload []byte) (NegotiationEvent, error) {
	var event NegotiationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return NegotiationEvent{}, fmt.Errorf("failed to decode negotiation event: %w", err)
	}
	if event.Type != EventNegotiationRecorded {
		return NegotiationEvent{}, fmt.Errorf("unexpected event type %q", event.Type)
	}
	return event, nil
}

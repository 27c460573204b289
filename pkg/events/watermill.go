package events

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-renewal-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Topic is the subject an event is published on, shared by every transport.
func Topic(event Event) string {
	return fmt.Sprintf("events.%s", event.EventType())
}

// WatermillPublisher publishes onto a watermill publisher, in practice the
// in-process gochannel used when NATS is not reachable.
type WatermillPublisher struct {
	pub message.Publisher
}

func NewWatermillPublisher(pub message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{pub: pub}
}

func (p *WatermillPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("event_type", event.EventType())
	msg.SetContext(ctx)

	if err := p.pub.Publish(Topic(event), msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventType(), err)
	}
	return nil
}

// LogConsumer writes every in-process event to the service log so the
// gochannel fallback still leaves a trace of what would have reached NATS.
type LogConsumer struct {
	sub    message.Subscriber
	logger logger.ILogger
}

func NewLogConsumer(sub message.Subscriber, logger logger.ILogger) *LogConsumer {
	return &LogConsumer{sub: sub, logger: logger}
}

// Consume subscribes to the given event types and returns once subscribed.
// Messages are drained until ctx is cancelled.
func (c *LogConsumer) Consume(ctx context.Context, eventTypes ...string) error {
	for _, eventType := range eventTypes {
		topic := Topic(BaseEvent{Type: eventType})
		messages, err := c.sub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}

		go func() {
			for msg := range messages {
				c.handle(topic, msg)
			}
		}()
	}
	return nil
}

func (c *LogConsumer) handle(topic string, msg *message.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Warn("EVENTS", "Dropping undecodable event", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	c.logger.Info("EVENTS", "Event published", map[string]interface{}{
		"topic":   topic,
		"type":    msg.Metadata.Get("event_type"),
		"payload": payload,
	})
	msg.Ack()
}

package events

import "time"

// Event is a domain fact published after the change it describes has committed.
type Event interface {
	// EventType is the stable code consumers route on, e.g. PRODUCT_RENEWAL_RECORDED.
	EventType() string

	// Payload is the JSON-friendly body; dates are formatted, ids are strings.
	Payload() map[string]interface{}

	// Timestamp is when the change happened, not when it was delivered.
	Timestamp() time.Time
}

// BaseEvent is the one Event implementation; constructors in this package fill it.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

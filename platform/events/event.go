// Package events carries domain events between modules without the modules
// importing each other. Platform layer, no business logic.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName identifies the event type for subscription routing.
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent supplies the timestamp common to all events. Embed it and
// implement EventName on the concrete type.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps an event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events it subscribed to.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes published events to subscribed handlers.
type Bus interface {
	// Publish fans the event out asynchronously. Handler errors are logged,
	// not returned.
	Publish(ctx context.Context, event Event)

	// PublishSync runs all handlers in-line and returns the first error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers handler for events whose EventName matches.
	Subscribe(eventName string, handler Handler)
}

// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

// ReloadedEvent announces that a new album generation was loaded or failed
// to load.
const ReloadedEvent EventType = "reloaded"

// Event is a published payload with its type and publication time.
// Seq increases by one for every event a broker publishes.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
	Seq       uint64
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

// Package pubsub provides a generic publish/subscribe event broker used to
// fan editor notifications out to embedders.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// ContentChangedEvent fires after a command mutated the document.
	ContentChangedEvent EventType = "content-changed"
	// SelectionChangedEvent fires after the model selection moved.
	SelectionChangedEvent EventType = "selection-changed"
	// ClipboardWrittenEvent fires after the codec filled a transfer object.
	ClipboardWrittenEvent EventType = "clipboard-written"
	// LogEntryEvent carries one formatted line from the debug logger.
	LogEntryEvent EventType = "log-entry"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

package bus

import "time"

// EventBus is an in-process pub/sub bus used to report simulation milestones
// (bodies added, frames stepped, numerical faults) to collaborators such as
// the snapshot server or a debug overlay.
//
// Key characteristics:
//   - Type-based fan-out: handlers subscribe by Event.Type() string.
//   - Synchronous delivery in subscription order: Publish calls handlers in
//     the caller goroutine, so a handler observes the arena in the state it
//     was published from.
//   - Error aggregation: handler errors are joined and returned from Publish.
//   - All methods are safe for concurrent use.
type EventBus interface {
	// Publish delivers the event to all active subscribers of event.Type().
	Publish(event Event) error
	// Subscribe registers a handler for an event type.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. It is safe to call with nil.
	Unsubscribe(Subscription) error

	// AddObserver registers an observer notified after every delivery.
	AddObserver(obs Observer)
	// GetMetrics returns a snapshot of the delivery counters.
	GetMetrics() Metrics
}

// Event is an immutable message transported by the bus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	// EventHandler is invoked per delivered event.
	EventHandler func(event Event) error
)

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// Observer is notified about every delivery. Implementations should return quickly.
type Observer interface {
	OnDelivered(eventType string, handlers int, err error, duration time.Duration)
}

// Metrics are cumulative delivery counters.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}

package bus

import "time"

// Event types published during a shot.
const (
	// TypeShotDecided carries a shot.Result once chance and outcome are known.
	TypeShotDecided = "shot.decided"
	// TypeShotFrame carries one animation.Frame per tick.
	TypeShotFrame = "shot.frame"
	// TypeShotSettled carries the final shot.Result after the ball lands.
	TypeShotSettled = "shot.settled"
)

// EventBus is an in-process pub/sub bus connecting the shot loop to its
// renderers (websocket feed, logs, tests).
//
// Delivery is synchronous: Publish calls every handler for event.Type() in
// the caller goroutine and joins their errors. All methods are safe for
// concurrent use.
type EventBus interface {
	Publish(event Event) error

	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// SubscribeAll receives every event regardless of type.
	SubscribeAll(handler EventHandler) (Subscription, error)
	Unsubscribe(Subscription) error

	AddObserver(obs Observer)
	// GetMetrics is only updated while at least one observer is registered.
	GetMetrics() Metrics
}

// Event is an immutable message transported by the EventBus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type EventHandler func(event Event) error

// Subscription is a registered handler.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// Observer is notified after every delivery.
type Observer interface {
	OnDelivered(eventType string, handlers int, err error, durationMicros int64)
}

type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}

package ports

import "context"

const (
	// EventGenerationSubmitted is emitted when a submission passes validation and goes in flight.
	EventGenerationSubmitted = "generation.submitted"
	// EventGenerationRejected is emitted when a submission fails input validation.
	EventGenerationRejected = "generation.rejected"
	// EventGenerationSucceeded is emitted when the service returned at least one card.
	EventGenerationSucceeded = "generation.succeeded"
	// EventGenerationEmpty is emitted when the service returned no usable cards.
	EventGenerationEmpty = "generation.empty"
	// EventGenerationFailed is emitted when the remote call failed.
	EventGenerationFailed = "generation.failed"
	// EventThemeChanged is emitted after an accepted SetTheme call.
	EventThemeChanged = "theme.changed"
)

// DomainEvent represents a significant occurrence within the domain or
// application layer. Events carry structured payloads that downstream
// subscribers can use for logging, UI updates, or integrations.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures should be
// surfaced via returned errors so publishers can log diagnostics and continue
// delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events and release resources.
type Subscription interface {
	Unsubscribe()
}

// Event is the plain DomainEvent implementation used by the application layer.
type Event struct {
	Type   string
	Fields map[string]interface{}
}

// EventType implements DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements DomainEvent.
func (e Event) Payload() interface{} { return e.Fields }

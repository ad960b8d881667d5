package adapters

// EventRecord is the event-analytics representation of a tracked event.
type EventRecord struct {
	EventType       string         `json:"event_type"`
	UserID          string         `json:"user_id"`
	EventProperties map[string]any `json:"event_properties"`
	Revenue         *float64       `json:"revenue,omitempty"`
}

// EventAnalyticsBackend builds clients for a behavioral-analytics service.
type EventAnalyticsBackend interface {
	// NewClient constructs a client bound to the given project token.
	NewClient(token string) (EventAnalyticsClient, error)
}

// EventAnalyticsClient records one event per Track call.
// Track must not block on network I/O.
type EventAnalyticsClient interface {
	Track(record EventRecord) error
}

// TrafficAnalyticsBackend models a web-analytics service where events are
// (category, action, label, value) tuples and purchases are transaction/item chains.
type TrafficAnalyticsBackend interface {
	// Activate binds the backend to a tracking id. Called once.
	Activate(token string) error
	// Event builds an event hit. value is optional.
	Event(category, action, label string, value *float64) Dispatchable
	// Transaction starts a transaction chain.
	Transaction(userID string, value float64) TransactionHandle
}

// TransactionHandle is returned by Transaction and carries the chained item call.
type TransactionHandle interface {
	Item(value float64, quantity int, sku, itemName, variation string) Dispatchable
}

// Dispatchable is a built backend call that is sent explicitly.
type Dispatchable interface {
	Send() error
}

// Closer is implemented by backends and clients holding in-flight work.
type Closer interface {
	Close() error
}

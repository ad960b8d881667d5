package beacon

import (
	"errors"

	"github.com/Tap30/beacon-go/adapters"
)

// Re-export adapter types for convenience
type (
	EventRecord             = adapters.EventRecord
	EventAnalyticsBackend   = adapters.EventAnalyticsBackend
	EventAnalyticsClient    = adapters.EventAnalyticsClient
	TrafficAnalyticsBackend = adapters.TrafficAnalyticsBackend
	TransactionHandle       = adapters.TransactionHandle
	Dispatchable            = adapters.Dispatchable
	HTTPAdapter             = adapters.HTTPAdapter
	LoggerAdapter           = adapters.LoggerAdapter
	LogLevel                = adapters.LogLevel
)

// ErrNoOptions is matched by errors.Is against a *ConfigurationError.
var ErrNoOptions = errors.New("No options provided")

// ConfigurationError is returned by New when no backend token is configured.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Message == "" {
		return ErrNoOptions.Error()
	}
	return e.Message
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrNoOptions
}

// Config selects which backends New activates. At least one token is required.
type Config struct {
	EventAnalyticsToken   string
	TrafficAnalyticsToken string

	// EventAnalytics defaults to the Amplitude HTTP backend.
	EventAnalytics EventAnalyticsBackend
	// TrafficAnalytics defaults to the Google Analytics Measurement Protocol backend.
	TrafficAnalytics TrafficAnalyticsBackend
	// HTTPAdapter is used by default backends only.
	HTTPAdapter   HTTPAdapter
	LoggerAdapter LoggerAdapter
	Metrics       *Metrics
}

// EventData describes a generic event. GACategory and GALabel only feed the
// traffic-analytics backend; Properties only feed the event-analytics backend.
type EventData struct {
	UUID       string
	GACategory string
	GALabel    string
	Properties map[string]any
}

// Purchase describes a completed purchase. Quantity is forwarded as given.
type Purchase struct {
	UUID          string
	SKU           string
	PaymentMethod string
	ItemPurchased string
	PurchaseValue float64
	PurchaseType  string
	Quantity      int
	Gift          bool
}

package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultAmplitudeEndpoint is Amplitude's HTTP V2 ingestion endpoint.
const DefaultAmplitudeEndpoint = "https://api2.amplitude.com/2/httpapi"

// AmplitudeConfig configures the Amplitude event-analytics backend.
type AmplitudeConfig struct {
	Endpoint      string
	HTTPAdapter   HTTPAdapter
	LoggerAdapter LoggerAdapter
	// OnResult, when set, observes every delivery outcome.
	OnResult func(err error)
}

// AmplitudeBackend creates Amplitude clients.
type AmplitudeBackend struct {
	config AmplitudeConfig
}

var _ EventAnalyticsBackend = (*AmplitudeBackend)(nil)

// NewAmplitudeBackend fills in defaults for any unset field of config.
func NewAmplitudeBackend(config AmplitudeConfig) *AmplitudeBackend {
	if config.Endpoint == "" {
		config.Endpoint = DefaultAmplitudeEndpoint
	}
	if config.HTTPAdapter == nil {
		config.HTTPAdapter = NewNetHTTPAdapter(10 * time.Second)
	}
	if config.LoggerAdapter == nil {
		config.LoggerAdapter = NewNoOpLoggerAdapter()
	}
	return &AmplitudeBackend{config: config}
}

// NewClient returns a client sending events under the given API key.
func (b *AmplitudeBackend) NewClient(token string) (EventAnalyticsClient, error) {
	if token == "" {
		return nil, errors.New("amplitude API key cannot be empty")
	}

	dispatcher := NewDispatcher("amplitude", b.config.HTTPAdapter, b.config.LoggerAdapter)
	if b.config.OnResult != nil {
		dispatcher.OnResult(b.config.OnResult)
	}

	return &AmplitudeClient{
		apiKey:     token,
		endpoint:   b.config.Endpoint,
		dispatcher: dispatcher,
		now:        time.Now,
	}, nil
}

type amplitudeEvent struct {
	EventType       string         `json:"event_type"`
	UserID          string         `json:"user_id"`
	EventProperties map[string]any `json:"event_properties,omitempty"`
	Revenue         *float64       `json:"revenue,omitempty"`
	InsertID        string         `json:"insert_id"`
	Time            int64          `json:"time"`
}

type amplitudeUpload struct {
	APIKey string           `json:"api_key"`
	Events []amplitudeEvent `json:"events"`
}

// AmplitudeClient uploads one event per Track call.
type AmplitudeClient struct {
	apiKey     string
	endpoint   string
	dispatcher *Dispatcher
	now        func() time.Time
}

var _ EventAnalyticsClient = (*AmplitudeClient)(nil)

// Track encodes record and hands it to the dispatcher.
func (c *AmplitudeClient) Track(record EventRecord) error {
	upload := amplitudeUpload{
		APIKey: c.apiKey,
		Events: []amplitudeEvent{{
			EventType:       record.EventType,
			UserID:          record.UserID,
			EventProperties: record.EventProperties,
			Revenue:         record.Revenue,
			InsertID:        uuid.NewString(),
			Time:            c.now().UnixMilli(),
		}},
	}

	body, err := json.Marshal(upload)
	if err != nil {
		return fmt.Errorf("failed to marshal amplitude event: %w", err)
	}

	return c.dispatcher.Dispatch(&HTTPRequest{
		Method:      http.MethodPost,
		URL:         c.endpoint,
		ContentType: "application/json",
		Body:        body,
		Headers:     map[string]string{"Accept": "*/*"},
	})
}

// Close waits for in-flight uploads.
func (c *AmplitudeClient) Close() error {
	return c.dispatcher.Close()
}

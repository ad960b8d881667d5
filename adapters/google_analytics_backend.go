package adapters

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultGoogleAnalyticsEndpoint is the Measurement Protocol host.
const DefaultGoogleAnalyticsEndpoint = "https://www.google-analytics.com"

var (
	// ErrNotActivated is returned when a hit is sent before Activate.
	ErrNotActivated = errors.New("google analytics backend is not activated")
	// ErrAlreadyActivated is returned by a second Activate call.
	ErrAlreadyActivated = errors.New("google analytics backend is already activated")
)

// GoogleAnalyticsConfig configures the Measurement Protocol backend.
type GoogleAnalyticsConfig struct {
	Endpoint      string
	HTTPAdapter   HTTPAdapter
	LoggerAdapter LoggerAdapter
	// ClientID is the anonymous visitor id sent as cid. A random UUID is used when empty.
	ClientID string
	// OnResult, when set, observes every delivery outcome.
	OnResult func(err error)
}

// GoogleAnalyticsBackend implements TrafficAnalyticsBackend over the
// Measurement Protocol (v1): event hits go to /collect, chained
// transaction+item hits go to /batch in a single request.
type GoogleAnalyticsBackend struct {
	config GoogleAnalyticsConfig

	mu         sync.RWMutex
	trackingID string
	clientID   string
	dispatcher *Dispatcher
}

var _ TrafficAnalyticsBackend = (*GoogleAnalyticsBackend)(nil)

// NewGoogleAnalyticsBackend fills in defaults for any unset field of config.
func NewGoogleAnalyticsBackend(config GoogleAnalyticsConfig) *GoogleAnalyticsBackend {
	if config.Endpoint == "" {
		config.Endpoint = DefaultGoogleAnalyticsEndpoint
	}
	config.Endpoint = strings.TrimRight(config.Endpoint, "/")
	if config.HTTPAdapter == nil {
		config.HTTPAdapter = NewNetHTTPAdapter(10 * time.Second)
	}
	if config.LoggerAdapter == nil {
		config.LoggerAdapter = NewNoOpLoggerAdapter()
	}
	return &GoogleAnalyticsBackend{config: config}
}

// Activate binds the backend to a tracking id (UA-XXXX-Y).
func (b *GoogleAnalyticsBackend) Activate(token string) error {
	if token == "" {
		return errors.New("google analytics tracking id cannot be empty")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dispatcher != nil {
		return ErrAlreadyActivated
	}

	b.trackingID = token
	b.clientID = b.config.ClientID
	if b.clientID == "" {
		b.clientID = uuid.NewString()
	}
	b.dispatcher = NewDispatcher("google-analytics", b.config.HTTPAdapter, b.config.LoggerAdapter)
	if b.config.OnResult != nil {
		b.dispatcher.OnResult(b.config.OnResult)
	}
	return nil
}

// Event builds an event hit with optional value.
func (b *GoogleAnalyticsBackend) Event(category, action, label string, value *float64) Dispatchable {
	hit := url.Values{}
	hit.Set("t", "event")
	hit.Set("ec", category)
	hit.Set("ea", action)
	if label != "" {
		hit.Set("el", label)
	}
	if value != nil {
		hit.Set("ev", formatNumber(*value))
	}
	return &gaHits{backend: b, hits: []url.Values{hit}}
}

// Transaction starts a transaction chain identified by userID.
func (b *GoogleAnalyticsBackend) Transaction(userID string, value float64) TransactionHandle {
	return &gaTransaction{backend: b, id: userID, revenue: value}
}

// Close waits for in-flight hits. Hits sent afterwards fail with ErrDispatcherClosed.
func (b *GoogleAnalyticsBackend) Close() error {
	b.mu.RLock()
	dispatcher := b.dispatcher
	b.mu.RUnlock()

	if dispatcher == nil {
		return nil
	}
	return dispatcher.Close()
}

func (b *GoogleAnalyticsBackend) send(hits []url.Values) error {
	b.mu.RLock()
	trackingID, clientID, dispatcher := b.trackingID, b.clientID, b.dispatcher
	b.mu.RUnlock()

	if dispatcher == nil {
		return ErrNotActivated
	}

	lines := make([]string, 0, len(hits))
	for _, hit := range hits {
		payload := url.Values{}
		for k, v := range hit {
			payload[k] = v
		}
		payload.Set("v", "1")
		payload.Set("tid", trackingID)
		payload.Set("cid", clientID)
		lines = append(lines, payload.Encode())
	}

	path := "/collect"
	if len(lines) > 1 {
		path = "/batch"
	}

	return dispatcher.Dispatch(&HTTPRequest{
		Method:      http.MethodPost,
		URL:         b.config.Endpoint + path,
		ContentType: "application/x-www-form-urlencoded",
		Body:        []byte(strings.Join(lines, "\n")),
	})
}

type gaTransaction struct {
	backend *GoogleAnalyticsBackend
	id      string
	revenue float64
}

// Item chains an item hit onto the transaction; sending it sends both hits.
func (t *gaTransaction) Item(value float64, quantity int, sku, itemName, variation string) Dispatchable {
	transaction := url.Values{}
	transaction.Set("t", "transaction")
	transaction.Set("ti", t.id)
	transaction.Set("tr", formatNumber(t.revenue))

	item := url.Values{}
	item.Set("t", "item")
	item.Set("ti", t.id)
	item.Set("ip", formatNumber(value))
	item.Set("iq", strconv.Itoa(quantity))
	item.Set("ic", sku)
	item.Set("in", itemName)
	item.Set("iv", variation)

	return &gaHits{backend: t.backend, hits: []url.Values{transaction, item}}
}

type gaHits struct {
	backend *GoogleAnalyticsBackend
	hits    []url.Values
}

func (h *gaHits) Send() error {
	return h.backend.send(h.hits)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

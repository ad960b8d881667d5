package beacon

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Tap30/beacon-go/adapters"
)

const (
	backendEvent   = "event-analytics"
	backendTraffic = "traffic-analytics"
)

// Client fans tracking calls out to the backends activated by New.
// The active backend set is fixed at construction.
type Client struct {
	events  EventAnalyticsClient
	traffic TrafficAnalyticsBackend

	closers       []adapters.Closer
	loggerAdapter LoggerAdapter
	metrics       *Metrics

	closeOnce sync.Once
	closeErr  error
}

// New validates config and activates every backend with a token.
// It returns a *ConfigurationError when neither token is set.
func New(config Config) (*Client, error) {
	if config.EventAnalyticsToken == "" && config.TrafficAnalyticsToken == "" {
		return nil, &ConfigurationError{}
	}

	client := &Client{
		loggerAdapter: config.LoggerAdapter,
		metrics:       config.Metrics,
	}

	// Use provided logger or default
	if client.loggerAdapter == nil {
		client.loggerAdapter = adapters.NewZapLoggerAdapter(adapters.LogLevelWarn)
	}

	if config.EventAnalyticsToken != "" {
		backend := config.EventAnalytics
		if backend == nil {
			backend = adapters.NewAmplitudeBackend(adapters.AmplitudeConfig{
				HTTPAdapter:   config.HTTPAdapter,
				LoggerAdapter: client.loggerAdapter,
				OnResult:      config.Metrics.DeliveryObserver(backendEvent),
			})
		}

		events, err := backend.NewClient(config.EventAnalyticsToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create event analytics client: %w", err)
		}
		client.events = events
		if closer, ok := events.(adapters.Closer); ok {
			client.closers = append(client.closers, closer)
		}
	}

	if config.TrafficAnalyticsToken != "" {
		backend := config.TrafficAnalytics
		if backend == nil {
			backend = adapters.NewGoogleAnalyticsBackend(adapters.GoogleAnalyticsConfig{
				HTTPAdapter:   config.HTTPAdapter,
				LoggerAdapter: client.loggerAdapter,
				OnResult:      config.Metrics.DeliveryObserver(backendTraffic),
			})
		}

		if err := backend.Activate(config.TrafficAnalyticsToken); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to activate traffic analytics: %w", err)
		}
		client.traffic = backend
		if closer, ok := backend.(adapters.Closer); ok {
			client.closers = append(client.closers, closer)
		}
	}

	client.loggerAdapter.Info("Client initialized (event analytics: %t, traffic analytics: %t)",
		client.events != nil, client.traffic != nil)
	return client, nil
}

// Track records a generic event on every active backend.
func (c *Client) Track(eventType string, data EventData) {
	if c.events != nil {
		record := eventRecord(eventType, data)
		c.dispatch(backendEvent, "track", func() error {
			return c.events.Track(record)
		})
	}

	if c.traffic != nil {
		c.dispatch(backendTraffic, "event", func() error {
			return c.traffic.Event(data.GACategory, eventType, data.GALabel, nil).Send()
		})
	}
}

// TrackPurchase records a purchase on every active backend. On the traffic
// backend this is a commerce event plus a transaction with one item.
func (c *Client) TrackPurchase(p Purchase) {
	if c.events != nil {
		record := purchaseRecord(p)
		c.dispatch(backendEvent, "track", func() error {
			return c.events.Track(record)
		})
	}

	if c.traffic != nil {
		value := p.PurchaseValue
		c.dispatch(backendTraffic, "event", func() error {
			return c.traffic.Event(commerceCategory, p.PurchaseType, p.PaymentMethod, &value).Send()
		})
		c.dispatch(backendTraffic, "transaction", func() error {
			return c.traffic.Transaction(p.UUID, p.PurchaseValue).
				Item(p.PurchaseValue, p.Quantity, p.SKU, p.ItemPurchased, itemVariation(p)).
				Send()
		})
	}
}

// dispatch runs one backend call. Errors and panics are logged and never
// escape, so one backend cannot prevent dispatch to another.
func (c *Client) dispatch(backend, call string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			c.loggerAdapter.Error("%s %s panicked: %v", backend, call, r)
			c.metrics.recordDispatch(backend, call, outcomePanic)
		}
	}()

	if err := fn(); err != nil {
		c.loggerAdapter.Warn("%s %s failed: %v", backend, call, err)
		c.metrics.recordDispatch(backend, call, outcomeError)
		return
	}
	c.metrics.recordDispatch(backend, call, outcomeOK)
}

// Close waits for in-flight deliveries of backends that hold any.
// Tracking after Close is logged as failed dispatch.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		var errs []error
		for _, closer := range c.closers {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}

package adapters

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/segmentio/analytics-go.v3"
)

// SegmentConfig configures the Segment event-analytics backend.
type SegmentConfig struct {
	// Endpoint overrides the Segment API host. Empty uses the SDK default.
	Endpoint      string
	Interval      time.Duration
	BatchSize     int
	LoggerAdapter LoggerAdapter
}

// SegmentBackend creates clients on top of the Segment Go SDK. The SDK
// buffers messages internally; Close flushes them.
type SegmentBackend struct {
	config SegmentConfig
}

var _ EventAnalyticsBackend = (*SegmentBackend)(nil)

// NewSegmentBackend creates a Segment backend.
func NewSegmentBackend(config SegmentConfig) *SegmentBackend {
	if config.LoggerAdapter == nil {
		config.LoggerAdapter = NewNoOpLoggerAdapter()
	}
	return &SegmentBackend{config: config}
}

// NewClient creates a Segment client for the given write key.
func (b *SegmentBackend) NewClient(token string) (EventAnalyticsClient, error) {
	if token == "" {
		return nil, errors.New("segment write key cannot be empty")
	}

	client, err := analytics.NewWithConfig(token, analytics.Config{
		Endpoint:  b.config.Endpoint,
		Interval:  b.config.Interval,
		BatchSize: b.config.BatchSize,
		Logger:    segmentLogger{b.config.LoggerAdapter},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create segment client: %w", err)
	}

	return &SegmentClient{client: client}, nil
}

// SegmentClient maps event records onto Segment track calls.
type SegmentClient struct {
	client analytics.Client
}

var _ EventAnalyticsClient = (*SegmentClient)(nil)

// Track enqueues record. Revenue travels as the "revenue" property, which is
// where Segment destinations read it from.
func (c *SegmentClient) Track(record EventRecord) error {
	properties := analytics.NewProperties()
	for k, v := range record.EventProperties {
		properties.Set(k, v)
	}
	if record.Revenue != nil {
		properties.SetRevenue(*record.Revenue)
	}

	return c.client.Enqueue(analytics.Track{
		Event:      record.EventType,
		UserId:     record.UserID,
		Properties: properties,
	})
}

// Close flushes buffered messages.
func (c *SegmentClient) Close() error {
	return c.client.Close()
}

type segmentLogger struct {
	logger LoggerAdapter
}

func (l segmentLogger) Logf(format string, args ...any) {
	l.logger.Debug(format, args...)
}

func (l segmentLogger) Errorf(format string, args ...any) {
	l.logger.Error(format, args...)
}

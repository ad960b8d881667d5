package adapters

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type segmentBatch struct {
	Batch []struct {
		Type       string         `json:"type"`
		Event      string         `json:"event"`
		UserID     string         `json:"userId"`
		Properties map[string]any `json:"properties"`
	} `json:"batch"`
}

func TestSegmentBackend_NewClient(t *testing.T) {
	backend := NewSegmentBackend(SegmentConfig{})

	client, err := backend.NewClient("")
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestSegmentClient_Track(t *testing.T) {
	var (
		mu      sync.Mutex
		batches []segmentBatch
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var batch segmentBatch
		if err := json.Unmarshal(body, &batch); err == nil {
			mu.Lock()
			batches = append(batches, batch)
			mu.Unlock()
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	backend := NewSegmentBackend(SegmentConfig{Endpoint: server.URL})
	client, err := backend.NewClient("write-key")
	require.NoError(t, err)

	revenue := 8.0
	require.NoError(t, client.Track(EventRecord{
		EventType:       "purchase",
		UserID:          "user-id",
		EventProperties: map[string]any{"sku": "paypal-checkout", "gift": false},
		Revenue:         &revenue,
	}))

	// Close flushes the SDK buffer
	require.NoError(t, client.(*SegmentClient).Close())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, batches, 1)
	require.Len(t, batches[0].Batch, 1)

	msg := batches[0].Batch[0]
	assert.Equal(t, "track", msg.Type)
	assert.Equal(t, "purchase", msg.Event)
	assert.Equal(t, "user-id", msg.UserID)
	assert.Equal(t, "paypal-checkout", msg.Properties["sku"])
	assert.Equal(t, false, msg.Properties["gift"])
	assert.Equal(t, 8.0, msg.Properties["revenue"])
}

func TestSegmentClient_TrackRequiresUser(t *testing.T) {
	backend := NewSegmentBackend(SegmentConfig{Endpoint: "http://127.0.0.1:1"})
	client, err := backend.NewClient("write-key")
	require.NoError(t, err)
	defer client.(*SegmentClient).Close()

	err = client.Track(EventRecord{EventType: "Cron"})
	assert.Error(t, err)
}

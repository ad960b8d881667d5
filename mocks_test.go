package beacon

import (
	"sync"

	"github.com/Tap30/beacon-go/adapters"
	"github.com/stretchr/testify/mock"
)

type mockEventBackend struct {
	mock.Mock
}

func (m *mockEventBackend) NewClient(token string) (EventAnalyticsClient, error) {
	args := m.Called(token)
	client, _ := args.Get(0).(EventAnalyticsClient)
	return client, args.Error(1)
}

type mockEventClient struct {
	mock.Mock
}

func (m *mockEventClient) Track(record EventRecord) error {
	return m.Called(record).Error(0)
}

type closableEventClient struct {
	mockEventClient
	closed int
}

func (c *closableEventClient) Close() error {
	c.closed++
	return nil
}

type mockTrafficBackend struct {
	mock.Mock
}

func (m *mockTrafficBackend) Activate(token string) error {
	return m.Called(token).Error(0)
}

func (m *mockTrafficBackend) Event(category, action, label string, value *float64) Dispatchable {
	return m.Called(category, action, label, value).Get(0).(Dispatchable)
}

func (m *mockTrafficBackend) Transaction(userID string, value float64) TransactionHandle {
	return m.Called(userID, value).Get(0).(TransactionHandle)
}

type mockTransaction struct {
	mock.Mock
}

func (m *mockTransaction) Item(value float64, quantity int, sku, itemName, variation string) Dispatchable {
	return m.Called(value, quantity, sku, itemName, variation).Get(0).(Dispatchable)
}

type mockDispatchable struct {
	mock.Mock
}

func (m *mockDispatchable) Send() error {
	return m.Called().Error(0)
}

// recordingHTTPAdapter captures requests made by the default backends.
type recordingHTTPAdapter struct {
	mu       sync.Mutex
	requests []*adapters.HTTPRequest
	status   int
}

func (r *recordingHTTPAdapter) Do(req *adapters.HTTPRequest) (*adapters.HTTPResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)

	status := r.status
	if status == 0 {
		status = 200
	}
	return &adapters.HTTPResponse{Status: status, OK: status < 300}, nil
}

func (r *recordingHTTPAdapter) Requests() []*adapters.HTTPRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*adapters.HTTPRequest(nil), r.requests...)
}

func floatPtr(v float64) *float64 {
	return &v
}

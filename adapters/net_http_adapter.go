package adapters

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetHTTPAdapter is the standard HTTP adapter implementation using net/http package.
type NetHTTPAdapter struct {
	client *http.Client
}

// Ensure NetHTTPAdapter implements HTTPAdapter interface
var _ HTTPAdapter = (*NetHTTPAdapter)(nil)

// NewNetHTTPAdapter creates a new NetHTTPAdapter instance.
// A zero timeout means no client-side timeout.
func NewNetHTTPAdapter(timeout time.Duration) HTTPAdapter {
	return &NetHTTPAdapter{
		client: &http.Client{Timeout: timeout},
	}
}

// Do sends the request and reads the response body.
func (h *NetHTTPAdapter) Do(r *HTTPRequest) (*HTTPResponse, error) {
	method := r.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequest(method, r.URL, bytes.NewReader(r.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	return &HTTPResponse{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Data:   body,
	}, nil
}

package adapters

// HTTPRequest is a fully built request for an analytics collection endpoint.
type HTTPRequest struct {
	Method      string
	URL         string
	ContentType string
	Body        []byte
	Headers     map[string]string
}

// HTTPResponse represents the response from an HTTP request.
type HTTPResponse struct {
	OK     bool
	Status int
	Data   []byte
}

// HTTPAdapter is an interface for HTTP communication.
// Implement this interface to use custom HTTP clients.
type HTTPAdapter interface {
	// Do performs the request.
	//
	// Returns the HTTP response, or an error when no response was received.
	Do(req *HTTPRequest) (*HTTPResponse, error)
}

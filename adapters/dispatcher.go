package adapters

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDispatcherClosed is returned by Dispatch after Close.
	ErrDispatcherClosed = errors.New("dispatcher is closed")
)

// DeliveryError describes a request the collection endpoint did not accept.
type DeliveryError struct {
	Target string
	Status int
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s delivery failed: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("%s delivery failed with status %d", e.Target, e.Status)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Dispatcher sends requests in the background and never blocks the caller on
// network I/O. There is no retry, batching or persistence: a request that
// fails is logged and dropped.
type Dispatcher struct {
	target        string
	httpAdapter   HTTPAdapter
	loggerAdapter LoggerAdapter
	onResult      func(err error)

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. target names the backend in logs and errors.
func NewDispatcher(target string, httpAdapter HTTPAdapter, loggerAdapter LoggerAdapter) *Dispatcher {
	if loggerAdapter == nil {
		loggerAdapter = NewNoOpLoggerAdapter()
	}
	return &Dispatcher{
		target:        target,
		httpAdapter:   httpAdapter,
		loggerAdapter: loggerAdapter,
	}
}

// OnResult registers a callback invoked after every delivery attempt with nil
// on success or a *DeliveryError. Must be called before the first Dispatch.
func (d *Dispatcher) OnResult(fn func(err error)) {
	d.onResult = fn
}

// Dispatch schedules req for delivery and returns immediately.
func (d *Dispatcher) Dispatch(req *HTTPRequest) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		err := d.deliver(req)
		if d.onResult != nil {
			d.onResult(err)
		}
	}()
	return nil
}

func (d *Dispatcher) deliver(req *HTTPRequest) error {
	d.loggerAdapter.Debug("Sending %s request to %s", d.target, req.URL)

	resp, err := d.httpAdapter.Do(req)
	if err != nil {
		d.loggerAdapter.Error("Network error sending to %s: %v", d.target, err)
		return &DeliveryError{Target: d.target, Err: err}
	}

	switch {
	case resp.Status >= 200 && resp.Status < 300:
		d.loggerAdapter.Debug("%s accepted request with status %d", d.target, resp.Status)
		return nil
	case resp.Status >= 400 && resp.Status < 500:
		// 4xx: the payload will never be accepted, drop it
		d.loggerAdapter.Warn("%s rejected request with status %d, dropping: %s", d.target, resp.Status, resp.Data)
		return &DeliveryError{Target: d.target, Status: resp.Status}
	default:
		d.loggerAdapter.Error("%s server error with status %d", d.target, resp.Status)
		return &DeliveryError{Target: d.target, Status: resp.Status}
	}
}

// Close stops accepting requests and waits for in-flight deliveries.
// Calling Close more than once is a no-op.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()
	return nil
}

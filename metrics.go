package beacon

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes
const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomePanic = "panic"
)

// Metrics holds the Prometheus collectors updated by the client.
type Metrics struct {
	DispatchTotal *prometheus.CounterVec
	DeliveryTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the client metrics.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		DispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beacon_dispatch_total",
				Help: "Total number of backend calls dispatched by the client",
			},
			[]string{"backend", "call", "outcome"},
		),
		DeliveryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beacon_delivery_total",
				Help: "Total number of HTTP deliveries completed by default backends",
			},
			[]string{"backend", "outcome"},
		),
	}

	registerer.MustRegister(m.DispatchTotal, m.DeliveryTotal)
	return m
}

func (m *Metrics) recordDispatch(backend, call, outcome string) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(backend, call, outcome).Inc()
}

// DeliveryObserver returns an OnResult hook counting deliveries for backend.
// It returns nil when m is nil.
func (m *Metrics) DeliveryObserver(backend string) func(err error) {
	if m == nil {
		return nil
	}
	return func(err error) {
		outcome := outcomeOK
		if err != nil {
			outcome = outcomeError
		}
		m.DeliveryTotal.WithLabelValues(backend, outcome).Inc()
	}
}

package supply

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts supply requests for the life of the process. Counters are
// atomic so raising the consumer's prefetch above 1 stays safe.
type Metrics struct {
	total      atomic.Int64
	successful atomic.Int64
	failed     atomic.Int64

	promTotal      prometheus.Counter
	promSuccessful prometheus.Counter
	promFailed     prometheus.Counter
}

type MetricsSnapshot struct {
	TotalRequests      int64 `json:"total_requests"`
	SuccessfulRequests int64 `json:"successful_requests"`
	FailedRequests     int64 `json:"failed_requests"`
}

// NewMetrics registers prometheus counters on reg; reg may be nil, in
// which case only the in-memory counters are kept.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{}

	if reg != nil {
		m.promTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "supply_requests_total",
			Help: "Supply requests received.",
		})
		m.promSuccessful = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "supply_requests_successful_total",
			Help: "Supply requests replied to.",
		})
		m.promFailed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "supply_requests_failed_total",
			Help: "Supply requests dropped on decode or reply failure.",
		})
		reg.MustRegister(m.promTotal, m.promSuccessful, m.promFailed)
	}

	return m
}

func (m *Metrics) RequestReceived() {
	m.total.Add(1)
	if m.promTotal != nil {
		m.promTotal.Inc()
	}
}

func (m *Metrics) RequestSucceeded() {
	m.successful.Add(1)
	if m.promSuccessful != nil {
		m.promSuccessful.Inc()
	}
}

func (m *Metrics) RequestFailed() {
	m.failed.Add(1)
	if m.promFailed != nil {
		m.promFailed.Inc()
	}
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		TotalRequests:      m.total.Load(),
		SuccessfulRequests: m.successful.Load(),
		FailedRequests:     m.failed.Load(),
	}
}

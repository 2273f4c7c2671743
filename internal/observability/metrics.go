package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for APIRequests.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus collectors for one command run.
type Metrics struct {
	APIRequests *prometheus.CounterVec   // labels: api={nhats,nominatim,ambee}, outcome={success,empty,error}
	APIDuration *prometheus.HistogramVec // labels: api
	Reports     *prometheus.CounterVec   // labels: tool={sky,pollen}, result={rendered,empty}

	// Gatherer exposes the registry the collectors live in, for Push.
	Gatherer prometheus.Gatherer
}

func newCollectors() *Metrics {
	return &Metrics{
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cli_tools",
			Name:      "api_requests_total",
			Help:      "Upstream API requests by API and outcome.",
		}, []string{"api", "outcome"}),
		APIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cli_tools",
			Name:      "api_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"api"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cli_tools",
			Name:      "reports_total",
			Help:      "Reports printed by tool and result.",
		}, []string{"tool", "result"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newCollectors()
	prometheus.MustRegister(m.APIRequests, m.APIDuration, m.Reports)
	m.Gatherer = prometheus.DefaultGatherer
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newCollectors()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.APIRequests, m.APIDuration, m.Reports)
	m.Gatherer = reg
	return m
}

// ObserveRequest records one upstream call.
func (m *Metrics) ObserveRequest(api, outcome string, d time.Duration) {
	m.APIRequests.WithLabelValues(api, outcome).Inc()
	m.APIDuration.WithLabelValues(api).Observe(d.Seconds())
}

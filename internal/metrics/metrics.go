// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	ExpensesCreated *prometheus.CounterVec
	SplitRejections *prometheus.CounterVec
	RPCDuration     *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry creates the collectors on reg, exposing gatherer from Handler.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ExpensesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "splitledger_expenses_created_total",
			Help: "Total number of expenses stored, by split method",
		}, []string{"method"}),
		SplitRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "splitledger_split_rejections_total",
			Help: "Total number of expense requests rejected by split validation, by split method",
		}, []string{"method"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "splitledger_rpc_duration_seconds",
			Help:    "Duration of RPC and REST calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		gatherer: gatherer,
	}
}

// IncExpenseCreated increments the created counter for method.
func (m *Metrics) IncExpenseCreated(method string) {
	if m == nil {
		return
	}
	m.ExpensesCreated.WithLabelValues(method).Inc()
}

// IncSplitRejected increments the rejection counter for method.
func (m *Metrics) IncSplitRejected(method string) {
	if m == nil {
		return
	}
	m.SplitRejections.WithLabelValues(method).Inc()
}

// ObserveRPC records the duration of one call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(procedure, code).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

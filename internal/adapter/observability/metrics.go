package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Advice outcome labels
const (
	AdviceOK          = "ok"
	AdviceCached      = "cached"
	AdviceNotEnough   = "not_enough_data"
	AdviceUnavailable = "unavailable"
)

// Metrics holds all Prometheus metrics for the tracker.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Registry is the private registry backing /metrics
	Registry *prometheus.Registry

	transactionsAdded    prometheus.Counter
	seriesScheduled      prometheus.Counter
	occurrencesScheduled prometheus.Counter
	paymentsReconciled   prometheus.Counter
	adviceRequests       *prometheus.CounterVec
	persistenceFallbacks *prometheus.CounterVec
	persistenceWrites    *prometheus.CounterVec
	rpcDuration          *prometheus.HistogramVec
}

// NewMetrics creates a dedicated registry and registers all metrics in it.
// A private registry keeps repeated construction in tests from colliding.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		transactionsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerflow_transactions_added_total",
			Help: "Transactions recorded directly by the user.",
		}),
		seriesScheduled: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerflow_series_scheduled_total",
			Help: "Scheduled payment series created.",
		}),
		occurrencesScheduled: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerflow_occurrences_scheduled_total",
			Help: "Scheduled payment occurrences created across all series.",
		}),
		paymentsReconciled: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerflow_payments_reconciled_total",
			Help: "Scheduled payments marked paid and turned into transactions.",
		}),
		adviceRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerflow_advice_requests_total",
				Help: "Advice requests by outcome.",
			},
			[]string{"outcome"},
		),
		persistenceFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerflow_persistence_read_fallbacks_total",
				Help: "Persisted collections that failed to decode and were reset to empty.",
			},
			[]string{"key"},
		),
		persistenceWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerflow_persistence_writes_total",
				Help: "Collection writes by key and status.",
			},
			[]string{"key", "status"},
		),
		rpcDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgerflow_rpc_duration_seconds",
				Help:    "Duration of RPCs by method and code.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "code"},
		),
	}
}

// IncrTransactionAdded increments the direct transaction counter.
func (m *Metrics) IncrTransactionAdded() {
	if m == nil {
		return
	}
	m.transactionsAdded.Inc()
}

// RecordSeriesScheduled records one new series of n occurrences.
func (m *Metrics) RecordSeriesScheduled(n int) {
	if m == nil {
		return
	}
	m.seriesScheduled.Inc()
	m.occurrencesScheduled.Add(float64(n))
}

// IncrPaymentReconciled increments the reconciliation counter.
func (m *Metrics) IncrPaymentReconciled() {
	if m == nil {
		return
	}
	m.paymentsReconciled.Inc()
}

// IncrAdviceRequest increments the advice counter for an outcome label.
func (m *Metrics) IncrAdviceRequest(outcome string) {
	if m == nil {
		return
	}
	m.adviceRequests.WithLabelValues(outcome).Inc()
}

// IncrPersistenceFallback counts a collection that was reset to empty on load.
func (m *Metrics) IncrPersistenceFallback(key string) {
	if m == nil {
		return
	}
	m.persistenceFallbacks.WithLabelValues(key).Inc()
}

// IncrPersistenceWrite counts a collection write with status "ok" or "error".
func (m *Metrics) IncrPersistenceWrite(key, status string) {
	if m == nil {
		return
	}
	m.persistenceWrites.WithLabelValues(key, status).Inc()
}

// RecordRPC records the duration of an RPC.
func (m *Metrics) RecordRPC(method, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(method, code).Observe(d.Seconds())
}

// Stats is a point-in-time view of the domain counters.
type Stats struct {
	TransactionsAdded    float64 `json:"transactionsAdded"`
	SeriesScheduled      float64 `json:"seriesScheduled"`
	OccurrencesScheduled float64 `json:"occurrencesScheduled"`
	PaymentsReconciled   float64 `json:"paymentsReconciled"`
	AdviceServed         float64 `json:"adviceServed"`
	AdviceFailed         float64 `json:"adviceFailed"`
}

// Snapshot reads the current counter values.
func (m *Metrics) Snapshot() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		TransactionsAdded:    counterValue(m.transactionsAdded),
		SeriesScheduled:      counterValue(m.seriesScheduled),
		OccurrencesScheduled: counterValue(m.occurrencesScheduled),
		PaymentsReconciled:   counterValue(m.paymentsReconciled),
		AdviceServed: counterValue(m.adviceRequests.WithLabelValues(AdviceOK)) +
			counterValue(m.adviceRequests.WithLabelValues(AdviceCached)),
		AdviceFailed: counterValue(m.adviceRequests.WithLabelValues(AdviceUnavailable)),
	}
}

// PersistenceFallbacks returns the fallback count for one key.
func (m *Metrics) PersistenceFallbacks(key string) float64 {
	if m == nil {
		return 0
	}
	return counterValue(m.persistenceFallbacks.WithLabelValues(key))
}

// counterValue extracts the current float64 value from a counter.
func counterValue(c prometheus.Counter) float64 {
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil {
		return 0
	}
	if metric.Counter != nil && metric.Counter.Value != nil {
		return *metric.Counter.Value
	}
	return 0
}

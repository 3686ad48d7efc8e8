package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	IssuancesTotal     *prometheus.CounterVec
	VerificationsTotal *prometheus.CounterVec
	RevocationsTotal   *prometheus.CounterVec
	LedgerCallDuration *prometheus.HistogramVec
	OracleCacheHits    *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		IssuancesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attestor_issuances_total",
			Help: "Certificate issuance attempts by outcome",
		}, []string{"outcome"}),
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attestor_verifications_total",
			Help: "Certificate verifications by outcome",
		}, []string{"outcome"}),
		RevocationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attestor_revocations_total",
			Help: "Certificate revocations by outcome",
		}, []string{"outcome"}),
		LedgerCallDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attestor_ledger_call_duration_seconds",
			Help:    "Latency of ledger client calls, submission through confirmation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		OracleCacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attestor_oracle_cache_total",
			Help: "Oracle eligibility cache lookups by result",
		}, []string{"result"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attestor_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveLedgerCall records one ledger round trip.
func (m *Metrics) ObserveLedgerCall(operation string, start time.Time) {
	m.LedgerCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

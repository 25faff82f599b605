package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AuditMetrics records reconciliation runs for the audit worker.
type AuditMetrics struct {
	duration   *prometheus.HistogramVec
	success    *prometheus.CounterVec
	failure    *prometheus.CounterVec
	repaired   *prometheus.CounterVec
	unresolved *prometheus.GaugeVec
}

// NewAuditMetrics registers the audit metrics on the provided registerer.
func NewAuditMetrics(reg prometheus.Registerer) *AuditMetrics {
	if reg == nil {
		return &AuditMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "audit_run_duration_seconds",
		Help:    "Duration of reconciliation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pair"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_run_success",
		Help: "Successful reconciliation runs.",
	}, []string{"pair"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_run_failure",
		Help: "Failed reconciliation runs.",
	}, []string{"pair"})
	repaired := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_rows_repaired_total",
		Help: "Child rows whose vendor_id was repaired.",
	}, []string{"pair"})
	unresolved := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "audit_rows_unresolved",
		Help: "Child rows left unresolved after the last run (orphans).",
	}, []string{"pair"})
	reg.MustRegister(duration, success, failure, repaired, unresolved)
	return &AuditMetrics{
		duration:   duration,
		success:    success,
		failure:    failure,
		repaired:   repaired,
		unresolved: unresolved,
	}
}

// ObserveDuration records the duration for the named table pair.
func (m *AuditMetrics) ObserveDuration(pair string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(pair)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named table pair.
func (m *AuditMetrics) IncSuccess(pair string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(pair)).Inc()
}

// IncFailure increments the failure counter for the named table pair.
func (m *AuditMetrics) IncFailure(pair string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(pair)).Inc()
}

// AddRepaired records repaired child rows for the named table pair.
func (m *AuditMetrics) AddRepaired(pair string, count int64) {
	if m == nil || m.repaired == nil || count <= 0 {
		return
	}
	m.repaired.WithLabelValues(normalizeLabel(pair)).Add(float64(count))
}

// SetUnresolved records the residual mismatch count for the named table pair.
func (m *AuditMetrics) SetUnresolved(pair string, count int64) {
	if m == nil || m.unresolved == nil {
		return
	}
	m.unresolved.WithLabelValues(normalizeLabel(pair)).Set(float64(count))
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}

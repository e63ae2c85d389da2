package healthcheck

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HealthMetrics exports check outcomes to Prometheus
type HealthMetrics struct {
	checksTotal   *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	healthStatus  prometheus.Gauge
}

// NewHealthMetrics registers the health metrics with reg
func NewHealthMetrics(reg prometheus.Registerer) *HealthMetrics {
	m := &HealthMetrics{
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "catalog",
				Subsystem: "healthcheck",
				Name:      "checks_total",
				Help:      "Total number of health checks by name and outcome",
			},
			[]string{"check", "status"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "catalog",
				Subsystem: "healthcheck",
				Name:      "check_duration_seconds",
				Help:      "Duration of individual health checks",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"check"},
		),
		healthStatus: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "catalog",
				Subsystem: "healthcheck",
				Name:      "status",
				Help:      "Overall health: 1 healthy, 0.5 degraded, 0 unhealthy",
			},
		),
	}
	reg.MustRegister(m.checksTotal, m.checkDuration, m.healthStatus)
	return m
}

// RecordCheck records one check result. A nil receiver is a no-op.
func (m *HealthMetrics) RecordCheck(check Check) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(check.Name, string(check.Status)).Inc()
	m.checkDuration.WithLabelValues(check.Name).Observe(check.Duration.Seconds())
}

// UpdateHealthStatus sets the overall status gauge
func (m *HealthMetrics) UpdateHealthStatus(status Status) {
	if m == nil {
		return
	}
	m.healthStatus.Set(statusToFloat(status))
}

func statusToFloat(status Status) float64 {
	switch status {
	case StatusHealthy:
		return 1
	case StatusDegraded:
		return 0.5
	default:
		return 0
	}
}

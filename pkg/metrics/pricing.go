package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records quote and reward computation outcomes.
type PricingMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	rewards  prometheus.Counter
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_request_duration_seconds",
		Help:    "Duration of pricing computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_request_success",
		Help: "Successful pricing computations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_request_failure",
		Help: "Failed pricing computations.",
	}, []string{"operation"})
	rewards := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reward_lines_emitted_total",
		Help: "Reward lines emitted by the cart rewards resolver.",
	})
	reg.MustRegister(duration, success, failure, rewards)
	return &PricingMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		rewards:  rewards,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *PricingMetrics) ObserveDuration(operation string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(d.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (m *PricingMetrics) IncSuccess(operation string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *PricingMetrics) IncFailure(operation string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

// AddRewardLines counts reward lines emitted by a resolver call.
func (m *PricingMetrics) AddRewardLines(n int) {
	if m == nil || m.rewards == nil || n <= 0 {
		return
	}
	m.rewards.Add(float64(n))
}

func normalizeLabel(value string) string {
	normalized := strings.TrimSpace(strings.ToLower(value))
	if normalized == "" {
		return "unknown"
	}
	return strings.ReplaceAll(normalized, " ", "_")
}

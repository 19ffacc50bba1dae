package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records the outcomes of checkout hand-offs to Shopify.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	attempts *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout cart-create calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, attempts)
	return &CheckoutMetrics{
		duration: duration,
		attempts: attempts,
	}
}

// ObserveAttempt records one checkout attempt with its outcome and duration.
func (c *CheckoutMetrics) ObserveAttempt(outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	label := normalizeLabel(outcome)
	if c.attempts != nil {
		c.attempts.WithLabelValues(label).Inc()
	}
	if c.duration != nil {
		c.duration.WithLabelValues(label).Observe(duration.Seconds())
	}
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}

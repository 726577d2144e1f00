package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SignupMetrics collects counters for the stub signup service.
type SignupMetrics struct {
	// Requests served, by endpoint and HTTP status.
	RequestsTotal *prometheus.CounterVec

	// Resend calls rejected by the per-email rate limit.
	RateLimitedTotal prometheus.Counter

	// Confirmation codes issued (signup plus resends).
	CodesIssuedTotal prometheus.Counter

	// Accounts that completed OTP verification.
	VerifiedTotal prometheus.Counter
}

// NewSignupMetrics creates the collectors under the given namespace and
// registers them with the registry.
func NewSignupMetrics(namespace string, registry prometheus.Registerer) *SignupMetrics {
	factory := promauto.With(registry)

	return &SignupMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "requests_total",
				Help:      "Signup API requests served, by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "rate_limited_total",
				Help:      "Resend-code requests rejected by the rate limit",
			},
		),
		CodesIssuedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "codes_issued_total",
				Help:      "Confirmation codes issued",
			},
		),
		VerifiedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "verified_total",
				Help:      "Accounts that completed verification",
			},
		),
	}
}

// RecordRequest counts one served request.
func (m *SignupMetrics) RecordRequest(endpoint string, statusCode int) {
	m.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
}

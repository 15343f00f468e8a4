// Package metrics holds Prometheus instruments that are used across the
// site.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FormSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Lead form submissions by form and outcome.",
		},
		[]string{"form", "outcome"}, // outcome: success, invalid, rejected, error
	)

	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Requests sent to the lead backend by operation and status class.",
		},
		[]string{"op", "class"}, // class: 2xx, 4xx, 5xx, network
	)

	BackendRateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backend_rate_limited_total",
			Help: "Cumulative number of 429 responses observed from the backend.",
		})

	SuspiciousInputTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "suspicious_input_total",
			Help: "Cumulative number of submissions that tripped the malicious-input check.",
		})
)

func init() {
	prometheus.MustRegister(
		FormSubmissionsTotal,
		BackendRequestsTotal,
		BackendRateLimitedTotal,
		SuspiciousInputTotal,
	)
}

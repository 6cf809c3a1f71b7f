package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts login / logout calls by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_auth_requests_total",
			Help: "Login and logout requests by action and result",
		},
		[]string{"action", "result"}, // result: success | failure | error
	)

	// authDuration tracks login / logout handling time.
	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_auth_duration_seconds",
			Help:    "Login and logout duration by action",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"action"},
	)

	// tokenChecksTotal counts Authorization header checks by outcome.
	tokenChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_auth_token_checks_total",
			Help: "Token checks by outcome (valid, invalid, malformed, unavailable)",
		},
		[]string{"outcome"},
	)

	// tokenCheckDuration tracks token verification including the revocation lookup.
	tokenCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_auth_token_check_duration_seconds",
			Help:    "Token verification duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)
)

// RecordAuthRequest records a login or logout outcome.
func RecordAuthRequest(action, result string, d time.Duration) {
	authRequestsTotal.WithLabelValues(action, result).Inc()
	authDuration.WithLabelValues(action).Observe(d.Seconds())
}

// RecordAuthCheck records one token verification.
func RecordAuthCheck(outcome string, d time.Duration) {
	tokenChecksTotal.WithLabelValues(outcome).Inc()
	tokenCheckDuration.Observe(d.Seconds())
}

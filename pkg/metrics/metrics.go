package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "apiscamp", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "apiscamp", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "apiscamp", Name: "http_requests_total", Help: "Handled HTTP requests by method, route and status code."},
		[]string{"method", "route", "code"},
	)
	PersonOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "apiscamp", Name: "person_operations_total", Help: "Person data-access operations by outcome (ok|error)."},
		[]string{"op", "outcome"},
	)
)

// RegisterCollectors registers every collector on reg. Registering twice on the
// same registry is tolerated so tests can build several servers.
func RegisterCollectors(reg prometheus.Registerer) {
	for _, c := range []prometheus.Collector{RateLimitAllowed, RateLimitRejected, HTTPRequests, PersonOperations} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			panic(err)
		}
	}
}

// ObservePersonOp records the outcome of a single person operation.
func ObservePersonOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	PersonOperations.WithLabelValues(op, outcome).Inc()
}

package stayfinder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfinder_client",
			Name:      "requests_total",
			Help:      "Backend requests issued, by store and operation.",
		},
		[]string{"store", "op"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfinder_client",
			Name:      "request_failures_total",
			Help:      "Backend requests that settled with an error.",
		},
		[]string{"store", "op"},
	)
)

// track records one issued request and, when err is non-nil, one failure.
// Guard failures (no identity, no token) never reach here; only requests
// actually sent to the backend are counted.
func track(store, op string, err error) {
	requestsTotal.WithLabelValues(store, op).Inc()
	if err != nil {
		requestFailuresTotal.WithLabelValues(store, op).Inc()
	}
}

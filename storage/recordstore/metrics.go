package recordstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spms",
		Subsystem: "recordstore",
		Name:      "requests_total",
		Help:      "Record Store requests by resource, method and status code.",
	}, []string{"resource", "method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spms",
		Subsystem: "recordstore",
		Name:      "request_duration_seconds",
		Help:      "Record Store request latency.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"resource", "method"})
)

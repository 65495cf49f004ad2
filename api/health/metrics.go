package health

import "github.com/prometheus/client_golang/prometheus"

var (
	HttpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "burnshop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "burnshop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route pattern",
		},
		[]string{"method", "path", "status"},
	)
)

// registered once per process; App may build several routers in tests
func init() {
	prometheus.MustRegister(HttpDuration, HttpRequests)
}

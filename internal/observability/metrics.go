package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce          sync.Once
	requestsTotal         *prometheus.CounterVec
	requestLatencySeconds *prometheus.HistogramVec
	unhandledTotal        *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors of the mock server.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockcanvas_requests_total",
			Help: "Total number of requests answered by the mock server.",
		}, []string{"method", "route", "status"})

		requestLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockcanvas_request_latency_seconds",
			Help:    "Latency distribution for mock server requests.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"method", "route"})

		unhandledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockcanvas_unhandled_requests_total",
			Help: "Total number of requests no dispatcher route matched.",
		}, []string{"method"})

		prometheus.MustRegister(requestsTotal, requestLatencySeconds, unhandledTotal)
	})
}

// Requests exposes the request counter.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// RequestLatency exposes the request latency histogram.
func RequestLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return requestLatencySeconds
}

// UnhandledRequests exposes the counter of requests answered with 501.
func UnhandledRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return unhandledTotal
}

// MetricsHandler serves the default registry in the Prometheus text format.
// A failing collector does not hide the others.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}))
}

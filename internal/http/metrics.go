package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exports request-level Prometheus metrics for the API.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by path, method and status",
			},
			[]string{"path", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by path",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}
	c.registry.MustRegister(c.requests, c.duration)
	return c
}

// RecordRequest records one finished request.
func (c *Collector) RecordRequest(path, method string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// Handler exposes the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

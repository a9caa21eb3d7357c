package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics of the application.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	settlements     *prometheus.CounterVec
}

// NewMetrics initialises the registry and the application metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rentmates_http_requests_total",
		Help: "Number of HTTP requests by route, method and status.",
	}, []string{"route", "method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rentmates_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	settlements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rentmates_settlements_total",
		Help: "Number of settlement sheets served, by balance cache outcome.",
	}, []string{"cache"})

	registry.MustRegister(requests, duration, settlements)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		settlements:     settlements,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() gin.HandlerFunc {
	if m == nil {
		return func(gctx *gin.Context) {
			gctx.Status(http.StatusServiceUnavailable)
		}
	}

	return gin.WrapH(m.handler)
}

// Middleware records the metrics of every HTTP request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(gctx *gin.Context) {
		if m == nil {
			gctx.Next()
			return
		}

		start := time.Now()

		gctx.Next()

		route := gctx.FullPath()
		if route == "" {
			route = "unknown"
		}

		method := gctx.Request.Method
		code := strconv.Itoa(gctx.Writer.Status())

		m.requestsTotal.WithLabelValues(route, method, code).Inc()
		m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// ObserveSettlement counts a served settlement sheet.
func (m *Metrics) ObserveSettlement(cacheHit bool) {
	if m == nil {
		return
	}

	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}

	m.settlements.WithLabelValues(outcome).Inc()
}

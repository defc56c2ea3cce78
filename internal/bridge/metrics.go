package bridge

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgecal_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bridgecal_http_request_duration_seconds",
		Help:    "Histogram of latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	envelopeBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bridgecal_envelope_bytes",
		Help: "Size of the most recently stored bridge envelope.",
	}, []string{"bridge"})
)

// metricsMiddleware records request counts and latencies.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		httpRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		httpRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// metricsHandler exposes the Prometheus metrics endpoint.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func observeEnvelopeSize(bridgeID string, size int) {
	envelopeBytes.WithLabelValues(bridgeID).Set(float64(size))
}

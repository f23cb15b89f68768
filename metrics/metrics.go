package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "itinerary"

// unmatchedRoute labels requests no route matched, so junk paths share one series.
const unmatchedRoute = "unmatched"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"method", "route"})

	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Itinerary generations by outcome.",
	}, []string{"result"})

	geocodeLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_lookups_total",
		Help:      "Geocoding lookups by outcome.",
	}, []string{"result"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of calls to upstream APIs.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"upstream", "status"})

	// SlotsQueued is the number of callers waiting for an upstream slot.
	SlotsQueued = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "upstream_slots_queued",
		Help:      "Callers waiting for an upstream concurrency slot.",
	}, []string{"upstream"})

	// SlotsProcessing is the number of in-flight upstream calls holding a slot.
	SlotsProcessing = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "upstream_slots_processing",
		Help:      "Upstream calls currently holding a concurrency slot.",
	}, []string{"upstream"})
)

// ObserveUpstream records the latency of one upstream call.
func ObserveUpstream(upstream, status string, d time.Duration) {
	upstreamDuration.WithLabelValues(upstream, status).Observe(d.Seconds())
}

// CountGeneration records an itinerary generation outcome ("ok" or "error").
func CountGeneration(result string) {
	generationsTotal.WithLabelValues(result).Inc()
}

// CountGeocode records a geocoding outcome ("found", "not_found" or "error").
func CountGeocode(result string) {
	geocodeLookupsTotal.WithLabelValues(result).Inc()
}

// shouldSkip returns true if the path should not be recorded in metrics
func shouldSkip(path string) bool {
	for _, skip := range []string{"/metrics", "/health", "/ping"} {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}
	return false
}

// Middleware records request count and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder is a wrapper to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

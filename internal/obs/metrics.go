package obs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP-level metrics.
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Simulation metrics.
var (
	revenueTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "revenue_total_minor_units",
		Help: "Current simulated revenue total in minor units.",
	})

	simulationLive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_live",
		Help: "1 while the simulation is live, 0 while paused.",
	})

	revenueTicks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "revenue_ticks_total",
		Help: "Per-second revenue ticks applied.",
	})

	transactionsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_generated_total",
			Help: "Synthetic transactions generated, by category.",
		},
		[]string{"category"},
	)
)

// Init registers all collectors in the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight, httpRequestsTotal, httpRequestDuration,
		revenueTotal, simulationLive, revenueTicks, transactionsGenerated,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SetRevenueTotal records the settled total after every mutation.
func SetRevenueTotal(minorUnits int64) {
	revenueTotal.Set(float64(minorUnits))
}

// SetLive reflects LIVE/PAUSED state transitions.
func SetLive(live bool) {
	if live {
		simulationLive.Set(1)
		return
	}
	simulationLive.Set(0)
}

// CountTick increments the applied-tick counter.
func CountTick() {
	revenueTicks.Inc()
}

// CountTransaction increments the per-category generation counter.
func CountTransaction(category string) {
	transactionsGenerated.WithLabelValues(category).Inc()
}

// knownPaths bounds metric label cardinality to the routes the API serves.
var knownPaths = map[string]struct{}{
	"/":                     {},
	"/healthz":              {},
	"/readyz":               {},
	"/metrics":              {},
	"/v1/info":              {},
	"/v1/dashboard":         {},
	"/v1/transactions":      {},
	"/v1/simulation":        {},
	"/v1/simulation/pause":  {},
	"/v1/simulation/resume": {},
	"/v1/auth/token":        {},
	"/v1/stream":            {},
}

// CanonicalPath maps a request path to a bounded label value.
func CanonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if _, ok := knownPaths[path]; ok {
		return path
	}
	return "other"
}

// Instrument wraps a handler with RPS/latency/in-flight accounting.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := CanonicalPath(r.URL.Path)
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// statusWriter records the response code written by downstream handlers.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE responses streaming through the wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

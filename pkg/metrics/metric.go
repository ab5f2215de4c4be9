package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "evacroute"

// Metrics. prometheus collectors for route queries and http traffic.
type Metrics struct {
	routeQueryCount    *prometheus.CounterVec
	routeDuration      prometheus.Histogram
	routeSafetyScore   prometheus.Histogram
	httpDuration       *prometheus.HistogramVec
	responseStatusCode *prometheus.CounterVec
	registry           *prometheus.Registry
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		routeQueryCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_query_count",
			Help:      "The total number of evacuation route queries by outcome",
		}, []string{"outcome"}),
		routeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_computation_duration_seconds",
			Help:      "The duration of route computation including data loading",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		routeSafetyScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_safety_score",
			Help:      "Safety score of computed routes",
			Buckets:   []float64{0, 0.25, 0.5, 0.75, 0.9, 1},
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "path"}),
		responseStatusCode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "response_status_code",
			Help:      "The status code of http response",
		}, []string{"status", "method", "path"}),
		registry: reg,
	}
	reg.MustRegister(m.routeQueryCount, m.routeDuration, m.routeSafetyScore, m.httpDuration, m.responseStatusCode)
	return m
}

// ObserveRoute records one route query. outcome is "ok" or an error class.
func (m *Metrics) ObserveRoute(outcome string, took time.Duration, safetyScore float64) {
	m.routeQueryCount.WithLabelValues(outcome).Inc()
	m.routeDuration.Observe(took.Seconds())
	if outcome == "ok" {
		m.routeSafetyScore.Observe(safetyScore)
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// OtherPath labels requests that match no registered route.
const OtherPath = "other"

// PromeHttpMiddleware records duration and status per method and route. routeLabel maps a
// request to its route template so unmatched paths share the OtherPath series. A nil
// routeLabel labels every request OtherPath.
func (m *Metrics) PromeHttpMiddleware(routeLabel func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := OtherPath
			if routeLabel != nil {
				path = routeLabel(r)
			}
			rw := newResponseWriter(w)
			timer := prometheus.NewTimer(m.httpDuration.With(prometheus.Labels{"method": r.Method, "path": path}))

			next.ServeHTTP(rw, r)

			m.responseStatusCode.With(prometheus.Labels{"status": strconv.Itoa(rw.statusCode), "method": r.Method, "path": path}).Inc()
			timer.ObserveDuration()
		})
	}
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and registry counters of the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RecordsCreated      *prometheus.CounterVec
	RecordsDeleted      *prometheus.CounterVec
	ValidationFailures  *prometheus.CounterVec
}

// New registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		RecordsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vtso_records_created_total",
			Help: "Total number of records created",
		}, []string{"entity"}),
		RecordsDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vtso_records_deleted_total",
			Help: "Total number of records deleted directly (cascaded rows are not counted)",
		}, []string{"entity"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vtso_validation_failures_total",
			Help: "Total number of rejected writes",
		}, []string{"entity"}),
	}
}

func (m *Metrics) RecordCreated(entity string) {
	m.RecordsCreated.WithLabelValues(entity).Inc()
}

func (m *Metrics) RecordDeleted(entity string) {
	m.RecordsDeleted.WithLabelValues(entity).Inc()
}

func (m *Metrics) RecordValidationFailure(entity string) {
	m.ValidationFailures.WithLabelValues(entity).Inc()
}

// Middleware records request count and latency labelled by the chi route
// pattern, so path ids do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{r.Method, route, strconv.Itoa(status)}
		m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

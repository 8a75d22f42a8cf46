package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	followupEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followup_emails_total",
			Help: "Follow-up task evaluation outcomes by status",
		},
		[]string{"status"},
	)

	tasksRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "followup_tasks_removed_total",
			Help: "Tasks removed from the workflow by reconciliation",
		},
	)

	tasksTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "followup_tasks_tracked",
			Help: "Contacts currently holding an open follow-up task",
		},
	)

	contactsSynced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contacts_synced_total",
			Help: "Contact records processed by the synchronizer",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordFollowUpResult(status string) {
	followupEmails.WithLabelValues(status).Inc()
}

func RecordTasksRemoved(count int) {
	tasksRemoved.Add(float64(count))
}

func SetTasksTracked(count int) {
	tasksTracked.Set(float64(count))
}

func RecordContactsSynced(count int) {
	contactsSynced.Add(float64(count))
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookplanner",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bookplanner",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	SessionsRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookplanner",
		Name:      "reading_sessions_recorded_total",
		Help:      "Total number of reading sessions recorded.",
	})

	PagesRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookplanner",
		Name:      "pages_recorded_total",
		Help:      "Total pages reported across recorded sessions.",
	})

	BooksCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookplanner",
		Name:      "books_completed_total",
		Help:      "Total number of books that reached completed status.",
	})

	StaleSnapshotsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookplanner",
		Name:      "stale_snapshots_served_total",
		Help:      "Reads answered from the cached snapshot because the database failed.",
	})

	NotificationsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookplanner",
		Name:      "notifications_sent_total",
		Help:      "Notifications broadcast to connected clients by tag.",
	}, []string{"tag"})

	WSClientsConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bookplanner",
		Name:      "ws_clients_connected",
		Help:      "Number of connected notification websocket clients.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		SessionsRecordedTotal,
		PagesRecordedTotal,
		BooksCompletedTotal,
		StaleSnapshotsServed,
		NotificationsSentTotal,
		WSClientsConnected,
	)
}

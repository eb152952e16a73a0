package vendure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pawluxe/storefront/internal/domain"
)

// Prometheus metrics for shop API calls, labeled per operation so the
// failure-prone paths (adjustLine in particular) are visible on their own.
var (
	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pawluxe",
			Name:      "backend_requests_total",
			Help:      "Total number of shop API calls",
		},
		[]string{"operation", "status"},
	)
	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pawluxe",
			Name:      "backend_request_duration_seconds",
			Help:      "Shop API call duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(backendRequests, backendDuration)
}

func observeBackendCall(op string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = domain.ErrorCode(err)
	}
	backendRequests.WithLabelValues(op, status).Inc()
	backendDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

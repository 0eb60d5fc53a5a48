package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_reservations_created_total",
			Help: "Total number of reservations created, by kind",
		},
		[]string{"kind"},
	)

	ReservationsModifiedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtbook_reservations_modified_total",
			Help: "Total number of reservations moved to another slot",
		},
	)

	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_rejections_total",
			Help: "Total number of rejected booking operations, by operation and reason",
		},
		[]string{"operation", "reason"},
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_cancellations_total",
			Help: "Total number of reservation cancellations, by actor",
		},
		[]string{"actor"},
	)

	SuspensionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtbook_suspensions_total",
			Help: "Total number of reservations suspended by temporary blocks",
		},
	)

	RestorationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_restorations_total",
			Help: "Total number of suspended reservations processed on block removal, by outcome",
		},
		[]string{"outcome"},
	)

	NotificationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_notification_failures_total",
			Help: "Total number of notification events that could not be published",
		},
		[]string{"event"},
	)
)

const (
	ActorMember = "member"
	ActorAdmin  = "admin"
	ActorBlock  = "block"

	OutcomeRestored       = "restored"
	OutcomeStillSuspended = "still_suspended"
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservationCreated(kind string) {
	ReservationsCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordReservationModified() {
	ReservationsModifiedTotal.Inc()
}

// RecordRejection counts a business rejection. Errors without a reason are ignored.
func RecordRejection(operation, reason string) {
	if reason == "" {
		return
	}

	RejectionsTotal.WithLabelValues(operation, reason).Inc()
}

func RecordCancellation(actor string) {
	CancellationsTotal.WithLabelValues(actor).Inc()
}

func RecordSuspensions(count int) {
	SuspensionsTotal.Add(float64(count))
}

func RecordRestoration(outcome string) {
	RestorationsTotal.WithLabelValues(outcome).Inc()
}

func RecordNotificationFailure(event string) {
	NotificationFailuresTotal.WithLabelValues(event).Inc()
}

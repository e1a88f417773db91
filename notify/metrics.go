package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// METRICS - Per-run notification counters
// =============================================================================

var (
	notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "office_cheer",
		Name:      "notifications_sent_total",
		Help:      "Notifications delivered, by event type.",
	}, []string{"event"})

	notificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "office_cheer",
		Name:      "notifications_failed_total",
		Help:      "Notifications that failed at the send step, by event type.",
	}, []string{"event"})

	greetingFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "office_cheer",
		Name:      "greeting_fallbacks_total",
		Help:      "Times the greeting generator failed and the template fallback was used.",
	})
)

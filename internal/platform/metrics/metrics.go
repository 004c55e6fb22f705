// Package metrics holds process-level Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks cross-module counters. Module-specific metrics live next
// to their module (see internal/application/metrics).
type Metrics struct {
	UsersCreated       prometheus.Counter
	LoginAttempts      *prometheus.CounterVec
	NotificationsSent  *prometheus.CounterVec
	NotificationErrors *prometheus.CounterVec
}

// New creates and registers all process-level metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "oscahub_users_created_total",
			Help: "Total number of citizen accounts provisioned",
		}),
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "oscahub_login_attempts_total",
			Help: "Login attempts by resolution tier and outcome",
		}, []string{"tier", "outcome"}),
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "oscahub_notifications_sent_total",
			Help: "Outbox deliveries by channel",
		}, []string{"channel"}),
		NotificationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "oscahub_notification_errors_total",
			Help: "Failed outbox deliveries by channel",
		}, []string{"channel"}),
	}
}

// IncrementUsersCreated records a provisioned citizen account.
func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

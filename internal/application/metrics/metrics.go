package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the application module: lifecycle
// counters plus duration of the approval critical path.
type Metrics struct {
	Submitted            *prometheus.CounterVec
	Approved             prometheus.Counter
	Rejected             prometheus.Counter
	Issued               prometheus.Counter
	UpdateStatusDuration prometheus.Histogram
}

// New creates a Metrics instance with all application module metrics registered.
func New() *Metrics {
	return &Metrics{
		Submitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "oscahub_applications_submitted_total",
			Help: "Total applications submitted, by type",
		}, []string{"type"}),
		Approved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "oscahub_applications_approved_total",
			Help: "Total applications approved",
		}),
		Rejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "oscahub_applications_rejected_total",
			Help: "Total applications rejected",
		}),
		Issued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "oscahub_id_cards_issued_total",
			Help: "Total senior ID cards issued",
		}),
		UpdateStatusDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "oscahub_update_status_duration_seconds",
			Help:    "Duration of status-update operations (approval critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveUpdateStatus records the duration of a status update.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveUpdateStatus(start time.Time) {
	m.UpdateStatusDuration.Observe(time.Since(start).Seconds())
}

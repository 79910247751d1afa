package metricsvc

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReportsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gemportal",
		Name:      "standing_reports_total",
		Help:      "Number of membership standing reports computed.",
	})

	GradeUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gemportal",
		Name:      "grade_upserts_total",
		Help:      "Number of semester grade records created or replaced.",
	})

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gemportal",
		Name:      "reminder_emails_total",
		Help:      "Number of standing reminder emails dispatched.",
	})

	ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gemportal",
		Name:      "standing_report_duration_seconds",
		Help:      "Time spent computing a standing report.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

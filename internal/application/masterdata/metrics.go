package masterdata

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resultados posibles de una importación para la métrica runs_total.
const (
	outcomeCommitted        = "committed"
	outcomeRejected         = "rejected"
	outcomeTemplateRejected = "template_rejected"
	outcomeDryRun           = "dry_run"
	outcomeFailed           = "failed"
	outcomeBusy             = "busy"
)

var (
	importRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "masterdata",
		Subsystem: "import",
		Name:      "runs_total",
		Help:      "Total number of master-data workbook imports broken down by outcome.",
	}, []string{"outcome"})

	importErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "masterdata",
		Subsystem: "import",
		Name:      "errors_total",
		Help:      "Total number of collected import errors broken down by sheet.",
	}, []string{"sheet"})

	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "masterdata",
		Subsystem: "import",
		Name:      "duration_seconds",
		Help:      "Duration of master-data workbook imports.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	importNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "masterdata",
		Subsystem: "import",
		Name:      "notifications_total",
		Help:      "Total number of post-commit welcome notifications broken down by result.",
	}, []string{"result"})
)

func recordImport(outcome string, elapsed time.Duration, errorsBySheet map[string]int) {
	importRuns.WithLabelValues(outcome).Inc()
	importDuration.Observe(elapsed.Seconds())
	for sheet, n := range errorsBySheet {
		importErrors.WithLabelValues(sheet).Add(float64(n))
	}
}

func recordNotification(ok bool) {
	result := "sent"
	if !ok {
		result = "failed"
	}
	importNotifications.WithLabelValues(result).Inc()
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the survey module. Tracks lifecycle
// counts, validation outcomes and critical path durations.
type Metrics struct {
	SurveysCreated     prometheus.Counter
	SurveysSubmitted   prometheus.Counter
	SubmissionsBlocked prometheus.Counter
	SurveysImported    prometheus.Counter
	ImportsRejected    prometheus.Counter
	ValidationRuns     prometheus.Counter
	ValidationFindings *prometheus.CounterVec
	ValidateDuration   prometheus.Histogram
	ProgressDuration   prometheus.Histogram
	ProgressCacheHits  prometheus.Counter
}

// New creates a Metrics instance with all survey module metrics registered.
func New() *Metrics {
	return &Metrics{
		SurveysCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "benesurvey_surveys_created_total",
			Help: "Total number of survey responses created",
		}),
		SurveysSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "benesurvey_surveys_submitted_total",
			Help: "Total number of survey responses submitted",
		}),
		SubmissionsBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "benesurvey_submissions_blocked_total",
			Help: "Total number of submissions rejected by the validation gate",
		}),
		SurveysImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "benesurvey_surveys_imported_total",
			Help: "Total number of survey responses created via import",
		}),
		ImportsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "benesurvey_imports_rejected_total",
			Help: "Total number of imports rejected by the structural check",
		}),
		ValidationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "benesurvey_validation_runs_total",
			Help: "Total number of on-demand validation runs",
		}),
		ValidationFindings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "benesurvey_validation_findings_total",
			Help: "Total validation findings produced, by severity",
		}, []string{"severity"}),
		ValidateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "benesurvey_validate_duration_seconds",
			Help:    "Duration of Validate operations including finding persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ProgressDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "benesurvey_progress_duration_seconds",
			Help:    "Duration of Progress operations including cache lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ProgressCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "benesurvey_progress_cache_hits_total",
			Help: "Total progress reads served from the cache",
		}),
	}
}

// IncrementSurveysCreated records a successful response creation.
func (m *Metrics) IncrementSurveysCreated() {
	if m == nil {
		return
	}
	m.SurveysCreated.Inc()
}

// IncrementSurveysSubmitted records a successful submission.
func (m *Metrics) IncrementSurveysSubmitted() {
	if m == nil {
		return
	}
	m.SurveysSubmitted.Inc()
}

// IncrementSubmissionsBlocked records a submission stopped by error findings.
func (m *Metrics) IncrementSubmissionsBlocked() {
	if m == nil {
		return
	}
	m.SubmissionsBlocked.Inc()
}

// IncrementSurveysImported records a successful import.
func (m *Metrics) IncrementSurveysImported() {
	if m == nil {
		return
	}
	m.SurveysImported.Inc()
}

// IncrementImportsRejected records an import stopped by structural findings.
func (m *Metrics) IncrementImportsRejected() {
	if m == nil {
		return
	}
	m.ImportsRejected.Inc()
}

// RecordValidationRun records one on-demand validation run and its findings.
func (m *Metrics) RecordValidationRun(errors, warnings int) {
	if m == nil {
		return
	}
	m.ValidationRuns.Inc()
	m.ValidationFindings.WithLabelValues("error").Add(float64(errors))
	m.ValidationFindings.WithLabelValues("warning").Add(float64(warnings))
}

// ObserveValidate records the duration of a Validate operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveValidate(start time.Time) {
	if m == nil {
		return
	}
	m.ValidateDuration.Observe(time.Since(start).Seconds())
}

// ObserveProgress records the duration of a Progress operation.
func (m *Metrics) ObserveProgress(start time.Time) {
	if m == nil {
		return
	}
	m.ProgressDuration.Observe(time.Since(start).Seconds())
}

// IncrementProgressCacheHits records a progress read served from cache.
func (m *Metrics) IncrementProgressCacheHits() {
	if m == nil {
		return
	}
	m.ProgressCacheHits.Inc()
}

package emailqueue

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels how a job ended.
type Outcome string

const (
	OutcomeSent            Outcome = "sent"
	OutcomeFailed          Outcome = "failed"
	OutcomeTemplateMissing Outcome = "template_missing"
	OutcomeRejected        Outcome = "rejected"
)

// Metrics receives queue events.
type Metrics interface {
	JobEnqueued(jobType string)
	JobFinished(jobType string, outcome Outcome, took time.Duration)
	QueueLength(n int)
}

type noopMetrics struct{}

func (noopMetrics) JobEnqueued(string) {}
func (noopMetrics) JobFinished(string, Outcome, time.Duration) {}
func (noopMetrics) QueueLength(int) {}

// PrometheusMetrics exports queue metrics to a Prometheus registry.
type PrometheusMetrics struct {
	enqueued *prometheus.CounterVec
	finished *prometheus.CounterVec
	duration *prometheus.HistogramVec
	length   prometheus.Gauge
}

// NewPrometheusMetrics registers the queue collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		enqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "email_jobs_enqueued_total",
				Help: "Total number of email jobs accepted by the queue",
			},
			[]string{"job_type"},
		),
		finished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "email_jobs_processed_total",
				Help: "Total number of email jobs processed, by outcome",
			},
			[]string{"job_type", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "email_job_duration_seconds",
				Help:    "Duration of email job processing in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job_type"},
		),
		length: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "email_queue_length",
				Help: "Number of email jobs waiting to be started",
			},
		),
	}
}

func (m *PrometheusMetrics) JobEnqueued(jobType string) {
	m.enqueued.WithLabelValues(jobType).Inc()
}

func (m *PrometheusMetrics) JobFinished(jobType string, outcome Outcome, took time.Duration) {
	m.finished.WithLabelValues(jobType, string(outcome)).Inc()
	m.duration.WithLabelValues(jobType).Observe(took.Seconds())
}

func (m *PrometheusMetrics) QueueLength(n int) {
	m.length.Set(float64(n))
}

package reactivity

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes scheduler and subscription-manager activity in
// Prometheus format, the way the teacher's monitoring package exposes
// composable/provide-inject counters. All metrics are prefixed with
// "vireo_" to avoid naming collisions with a host application's own
// registrations.
type Metrics struct {
	queueDepth    prometheus.Gauge
	jobsTotal     prometheus.Counter
	flushDuration prometheus.Histogram
	subscribers   *prometheus.GaugeVec
}

// NewMetrics creates and registers the scheduler/subscription collectors
// against reg. Registration failures (e.g. duplicate registration against
// a shared registry) panic, matching the teacher's fail-fast startup
// behavior for metrics wiring.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vireo_scheduler_queue_depth",
		Help: "Number of jobs currently queued across pre/post/sync queues.",
	})
	jobsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vireo_scheduler_jobs_total",
		Help: "Total number of scheduler jobs that ran to completion.",
	})
	flushDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vireo_scheduler_flush_duration_seconds",
		Help:    "Duration of individual scheduler job executions during a flush.",
		Buckets: prometheus.DefBuckets,
	})
	subscribers := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vireo_signal_subscribers",
		Help: "Number of subscribers currently registered on a signal key.",
	}, []string{"key"})

	reg.MustRegister(queueDepth, jobsTotal, flushDuration, subscribers)

	return &Metrics{
		queueDepth:    queueDepth,
		jobsTotal:     jobsTotal,
		flushDuration: flushDuration,
		subscribers:   subscribers,
	}
}

func (m *Metrics) observeQueueDepth(n int) { m.queueDepth.Set(float64(n)) }
func (m *Metrics) incJobsTotal()           { m.jobsTotal.Inc() }
func (m *Metrics) observeJobDuration(d time.Duration) {
	m.flushDuration.Observe(d.Seconds())
}

// ObserveSubscriberCount records the live subscriber count for a signal
// key, labeled by key name (e.g. "value" for ValueRef, a property name for
// a Reactive cell).
func (m *Metrics) ObserveSubscriberCount(key string, n int) {
	m.subscribers.WithLabelValues(key).Set(float64(n))
}

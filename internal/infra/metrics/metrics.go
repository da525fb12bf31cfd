package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ProviderCalendar  = "calendar"
	ProviderScheduler = "scheduler"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// SchedulerMetrics exposes counters/histograms for availability and sync flows.
type SchedulerMetrics struct {
	syncTotal           *prometheus.CounterVec
	providerFailures    *prometheus.CounterVec
	conflictsTotal      *prometheus.CounterVec
	availabilityLatency *prometheus.HistogramVec
}

func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	m := &SchedulerMetrics{
		syncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Subsystem: "integration",
			Name:      "sync_total",
			Help:      "Total external sync attempts per provider and operation",
		}, []string{"provider", "operation", "outcome"}),
		providerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Subsystem: "availability",
			Name:      "provider_failures_total",
			Help:      "Busy-period lookups that failed or timed out and were skipped",
		}, []string{"provider"}),
		conflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Subsystem: "appointment",
			Name:      "conflicts_total",
			Help:      "Appointment writes rejected because of an overlapping booking",
		}, []string{"operation"}),
		availabilityLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salon_scheduler",
			Subsystem: "availability",
			Name:      "calculation_seconds",
			Help:      "Latency of availability resolution",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.syncTotal, m.providerFailures, m.conflictsTotal, m.availabilityLatency)
	return m
}

func (m *SchedulerMetrics) ObserveSync(provider, operation, outcome string) {
	if m == nil {
		return
	}
	m.syncTotal.WithLabelValues(provider, operation, outcome).Inc()
}

func (m *SchedulerMetrics) ObserveProviderFailure(provider string) {
	if m == nil {
		return
	}
	m.providerFailures.WithLabelValues(provider).Inc()
}

func (m *SchedulerMetrics) ObserveConflict(operation string) {
	if m == nil {
		return
	}
	m.conflictsTotal.WithLabelValues(operation).Inc()
}

func (m *SchedulerMetrics) ObserveAvailabilityLatency(path string, seconds float64) {
	if m == nil {
		return
	}
	m.availabilityLatency.WithLabelValues(path).Observe(seconds)
}

// Package metrics exposes frame pipeline telemetry as Prometheus
// collectors. Collection happens only in the scheduler's finalize
// phase, keeping instrumentation off the simulation path
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FrameMetrics bundles the pipeline collectors
type FrameMetrics struct {
	tickDuration prometheus.Histogram
	ticks        prometheus.Counter
	contacts     prometheus.Counter
	mutations    prometheus.Counter
	entities     prometheus.Gauge
}

// NewFrameMetrics creates and registers the collectors. A nil
// registerer uses the default Prometheus registry
func NewFrameMetrics(reg prometheus.Registerer) *FrameMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &FrameMetrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "framecore",
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent per pipeline tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "framecore",
			Name:      "ticks_total",
			Help:      "Completed pipeline ticks.",
		}),
		contacts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "framecore",
			Name:      "contact_dispatches_total",
			Help:      "Contact handler invocations dispatched.",
		}),
		mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "framecore",
			Name:      "mutations_applied_total",
			Help:      "Deferred structural mutations applied.",
		}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "framecore",
			Name:      "entities_live",
			Help:      "Materialized entities in the world.",
		}),
	}

	reg.MustRegister(m.tickDuration, m.ticks, m.contacts, m.mutations, m.entities)
	return m
}

// ObserveTick records one completed tick
func (m *FrameMetrics) ObserveTick(elapsed time.Duration) {
	m.tickDuration.Observe(elapsed.Seconds())
	m.ticks.Inc()
}

// AddContacts records dispatched contact handler invocations
func (m *FrameMetrics) AddContacts(n int) {
	if n > 0 {
		m.contacts.Add(float64(n))
	}
}

// AddMutations records applied deferred mutations
func (m *FrameMetrics) AddMutations(n int) {
	if n > 0 {
		m.mutations.Add(float64(n))
	}
}

// SetEntities records the live entity count
func (m *FrameMetrics) SetEntities(n int) {
	m.entities.Set(float64(n))
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegistryMetrics exposes counters/histograms for clinic registry operations.
type RegistryMetrics struct {
	mutationsTotal *prometheus.CounterVec
	conflictsTotal *prometheus.CounterVec
	persistLatency *prometheus.HistogramVec
}

func NewRegistryMetrics(reg prometheus.Registerer) *RegistryMetrics {
	m := &RegistryMetrics{
		mutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "registry",
			Name:      "mutations_total",
			Help:      "Total upsert/delete operations by entity and outcome",
		}, []string{"entity", "op", "status"}),
		conflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "registry",
			Name:      "conflicts_total",
			Help:      "Total business-rule conflicts by kind",
		}, []string{"kind"}),
		persistLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "registry",
			Name:      "persist_seconds",
			Help:      "Latency of whole-collection writes to the blob store",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.mutationsTotal, m.conflictsTotal, m.persistLatency)
	return m
}

func (m *RegistryMetrics) ObserveMutation(entity, op, status string) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(entity, op, status).Inc()
}

func (m *RegistryMetrics) ObserveConflict(kind string) {
	if m == nil {
		return
	}
	m.conflictsTotal.WithLabelValues(kind).Inc()
}

func (m *RegistryMetrics) ObservePersist(collection string, seconds float64) {
	if m == nil {
		return
	}
	m.persistLatency.WithLabelValues(collection).Observe(seconds)
}

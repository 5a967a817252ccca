package bridge

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/semkg/metric"
)

// bridgeMetrics holds Prometheus counters for bridge operations.
type bridgeMetrics struct {
	searches prometheus.Counter
	synced   prometheus.Counter
}

func newBridgeMetrics(registry *metric.MetricsRegistry) (*bridgeMetrics, error) {
	m := &bridgeMetrics{
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "semkg",
			Subsystem: "bridge",
			Name:      "searches_total",
			Help:      "Total number of uncached semantic searches executed",
		}),
		synced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "semkg",
			Subsystem: "bridge",
			Name:      "insights_synced_total",
			Help:      "Total number of insights written to the graph",
		}),
	}

	if err := registry.RegisterCounter("bridge", "searches", m.searches); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("bridge", "insights_synced", m.synced); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *bridgeMetrics) recordSearch() {
	m.searches.Inc()
}

func (m *bridgeMetrics) recordSynced(count int) {
	m.synced.Add(float64(count))
}

package restart

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus collectors updated by the driver.
type Metrics struct {
	Restarts     prometheus.Counter
	Improvements prometheus.Counter
	HighWater    prometheus.Gauge
	RestartFlow  prometheus.Histogram
	Nodes        prometheus.Counter
	Pruned       prometheus.Counter
	Bounded      prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg (skipped
// when reg is nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valveflow_restarts_total",
			Help: "Completed searches across all workers.",
		}),
		Improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valveflow_highwater_improvements_total",
			Help: "Restarts that raised the high-water mark.",
		}),
		HighWater: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "valveflow_highwater_flow",
			Help: "Best total flow found so far.",
		}),
		RestartFlow: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "valveflow_restart_flow",
			Help:    "Best flow found by individual restarts.",
			Buckets: prometheus.ExponentialBuckets(16, 2, 12),
		}),
		Nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valveflow_search_nodes_total",
			Help: "Search states visited.",
		}),
		Pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valveflow_search_pruned_total",
			Help: "Search states dropped by the best-flow heuristic.",
		}),
		Bounded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valveflow_search_bounded_total",
			Help: "Search states cut by the flow bound.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Restarts, m.Improvements, m.HighWater, m.RestartFlow,
			m.Nodes, m.Pruned, m.Bounded)
	}

	return m
}

// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the small set of counters/gauges the engine updates as graphs
// are created, merged, and walked. It is an interface so an embedding
// service can route these into its own prometheus.Registry (or a no-op
// sink in tests); correctness of the engine never depends on it.
type Metrics interface {
	GraphCreated()
	GraphMerged()
	GraphDestroyedMetric()
	ActiveGraphs(delta float64)
	PropagationStep()
	CycleRejected()
}

// noopMetrics discards every observation. It is the default used by
// NewItem/NewType callers that never opted into a Metrics implementation.
type noopMetrics struct{}

func (noopMetrics) GraphCreated()         {}
func (noopMetrics) GraphMerged()          {}
func (noopMetrics) GraphDestroyedMetric() {}
func (noopMetrics) ActiveGraphs(float64)  {}
func (noopMetrics) PropagationStep()      {}
func (noopMetrics) CycleRejected()        {}

var defaultMetrics Metrics = noopMetrics{}

// SetMetrics installs m as the package-wide Metrics sink. Pass nil to
// revert to the no-op sink. Typically called once at process start-up,
// before any graph is built.
func SetMetrics(m Metrics) {
	if m == nil {
		m = noopMetrics{}
	}
	defaultMetrics = m
}

// PromMetrics is a ready-made Metrics implementation backed by
// client_golang counters/gauges, registered against the given registerer
// (pass prometheus.DefaultRegisterer to use the global registry).
type PromMetrics struct {
	graphsCreated     prometheus.Counter
	graphsMerged      prometheus.Counter
	graphsDestroyed   prometheus.Counter
	activeGraphsGauge prometheus.Gauge
	propagationSteps  prometheus.Counter
	cyclesRejected    prometheus.Counter
}

// NewPromMetrics registers and returns a PromMetrics. It panics if any of
// the underlying collectors fail to register (e.g. on a duplicate
// registration against the same registerer), matching
// prometheus.MustRegister's usual convention.
func NewPromMetrics(reg prometheus.Registerer) *PromMetrics {
	m := &PromMetrics{
		graphsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notifgraph",
			Name:      "graphs_created_total",
			Help:      "Number of Graph instances created.",
		}),
		graphsMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notifgraph",
			Name:      "graphs_merged_total",
			Help:      "Number of cross-graph merges performed.",
		}),
		graphsDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notifgraph",
			Name:      "graphs_destroyed_total",
			Help:      "Number of Graph instances destroyed by a merge.",
		}),
		activeGraphsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "notifgraph",
			Name:      "active_graphs",
			Help:      "Number of Graph instances currently alive.",
		}),
		propagationSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notifgraph",
			Name:      "propagation_steps_total",
			Help:      "Number of interest-dispatched SetAttribute calls.",
		}),
		cyclesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notifgraph",
			Name:      "cycles_rejected_total",
			Help:      "Number of Subscribe calls rejected because they would close a cycle.",
		}),
	}
	reg.MustRegister(
		m.graphsCreated, m.graphsMerged, m.graphsDestroyed,
		m.activeGraphsGauge, m.propagationSteps, m.cyclesRejected,
	)
	return m
}

func (m *PromMetrics) GraphCreated()         { m.graphsCreated.Inc() }
func (m *PromMetrics) GraphMerged()          { m.graphsMerged.Inc() }
func (m *PromMetrics) GraphDestroyedMetric() { m.graphsDestroyed.Inc() }
func (m *PromMetrics) ActiveGraphs(delta float64) {
	m.activeGraphsGauge.Add(delta)
}
func (m *PromMetrics) PropagationStep() { m.propagationSteps.Inc() }
func (m *PromMetrics) CycleRejected()   { m.cyclesRejected.Inc() }

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initOperationMetrics()
	r.initGraphMetrics()
	r.initRoutingMetrics()
	r.initSimulationMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initOperationMetrics() {
	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of engine operations",
		},
		[]string{"operation", "status"},
	)

	r.OperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Engine operation duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0},
		},
		[]string{"operation"},
	)
}

func (r *Registry) initGraphMetrics() {
	r.NodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "nodes_total",
			Help:      "Number of nodes in the graph",
		},
	)

	r.EdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "edges_total",
			Help:      "Number of edges in the graph, sealed or not",
		},
	)

	r.UnsealedEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "unsealed_edges_total",
			Help:      "Number of traversable edges in the graph",
		},
	)
}

func (r *Registry) initRoutingMetrics() {
	r.RoutesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "routes_total",
			Help:      "Route searches by strategy and outcome",
		},
		[]string{"strategy", "result"},
	)

	r.RouteExpanded = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "route_expanded_states",
			Help:      "Search states expanded per route search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"strategy"},
	)

	r.RouteHops = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "route_hops",
			Help:      "Hop count of routes found",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		},
	)
}

func (r *Registry) initSimulationMetrics() {
	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "simulations_total",
			Help:      "Removal simulations by target kind and outcome",
		},
		[]string{"kind", "result"},
	)
}

// RecordOperation records an engine operation
func (r *Registry) RecordOperation(operation, status string, duration time.Duration) {
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
	r.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetGraphSize updates the graph gauges
func (r *Registry) SetGraphSize(nodes, edges, unsealed int) {
	r.NodesTotal.Set(float64(nodes))
	r.EdgesTotal.Set(float64(edges))
	r.UnsealedEdgesTotal.Set(float64(unsealed))
}

// RecordRoute records a finished route search. hops is ignored when the
// search found nothing.
func (r *Registry) RecordRoute(strategy string, found bool, expanded, hops int) {
	result := "not_found"
	if found {
		result = "found"
		r.RouteHops.Observe(float64(hops))
	}
	r.RoutesTotal.WithLabelValues(strategy, result).Inc()
	r.RouteExpanded.WithLabelValues(strategy).Observe(float64(expanded))
}

// RecordSimulation records a node or edge removal simulation
func (r *Registry) RecordSimulation(kind string, critical bool) {
	result := "safe"
	if critical {
		result = "critical"
	}
	r.SimulationsTotal.WithLabelValues(kind, result).Inc()
}

// WriteTextfile writes every gathered metric to path in the Prometheus
// text exposition format.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

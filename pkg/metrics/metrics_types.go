package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "netmatrix"

// Registry holds all metrics for the engine
type Registry struct {
	// Operation Metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Graph Metrics
	NodesTotal         prometheus.Gauge
	EdgesTotal         prometheus.Gauge
	UnsealedEdgesTotal prometheus.Gauge

	// Routing Metrics
	RoutesTotal   *prometheus.CounterVec
	RouteExpanded *prometheus.HistogramVec
	RouteHops     prometheus.Histogram

	// Simulation Metrics
	SimulationsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// Operation status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

package engine

import (
	"github.com/dd0wney/netmatrix/pkg/audit"
	"github.com/dd0wney/netmatrix/pkg/logging"
	"github.com/dd0wney/netmatrix/pkg/metrics"
	"github.com/dd0wney/netmatrix/pkg/storage"
)

// Engine is the single entry point for mutating and querying a graph. It
// validates input, delegates to storage and the algorithms package, and
// records each operation in the log, the metrics registry and the journal.
//
// Engine does no locking. Embedders that call it from several goroutines
// must serialize every call behind one external lock.
type Engine struct {
	id      string
	graph   *storage.GraphStorage
	logger  logging.Logger
	metrics *metrics.Registry
	journal audit.Recorder
}

// EngineConfig holds the collaborators of an Engine. Nil fields are
// disabled: a nil Logger discards output, a nil Metrics records nothing,
// a nil Journal keeps no history.
type EngineConfig struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
	Journal audit.Recorder
}

// Connectivity is the result of a connectivity scan.
type Connectivity struct {
	Connected  bool
	Components int
}

// Report summarizes the graph. Averages are rounded half up to one decimal
// and are 0 when nothing is being averaged.
type Report struct {
	NodeCount     int
	UnsealedEdges int
	Connected     bool
	Components    int
	HasCycle      bool
	AvgBandwidth  float64
	AvgClearance  float64
}

// Vulnerabilities lists every articulation point and bridge of the graph.
type Vulnerabilities struct {
	ArticulationPoints []string
	// Bridges holds endpoint pairs in the order the edges were created from
	// the first endpoint.
	Bridges [][2]string
}

// Operation names used in logs, metrics and errors.
const (
	OpCreateNode   = "create_node"
	OpCreateEdge   = "create_edge"
	OpToggleSealed = "toggle_sealed"
	OpFindRoute    = "find_route"
	OpConnectivity = "connectivity_scan"
	OpNodeRemoval  = "test_node_removal"
	OpEdgeRemoval  = "test_edge_removal"
	OpReport       = "report"
	OpVulnerable   = "vulnerabilities"
)

// Route search strategy labels.
const (
	StrategyUniform      = "uniform"
	StrategyHopPenalized = "hop_penalized"
)

package engine

import (
	"time"

	"github.com/dd0wney/netmatrix/pkg/logging"
	"github.com/dd0wney/netmatrix/pkg/metrics"
	"github.com/dd0wney/netmatrix/pkg/storage"
	"github.com/google/uuid"
)

// NewEngine creates an engine over an empty graph with logging, metrics and
// auditing disabled.
func NewEngine() *Engine {
	return NewEngineWithConfig(EngineConfig{})
}

// NewEngineWithConfig creates an engine over an empty graph.
func NewEngineWithConfig(config EngineConfig) *Engine {
	e := &Engine{
		id:      uuid.New().String(),
		graph:   storage.NewGraphStorage(),
		metrics: config.Metrics,
		journal: config.Journal,
	}

	logger := config.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	e.logger = logger.With(logging.Component("engine"), logging.String("engine_id", e.id))

	e.updateGraphMetrics()
	return e
}

// ID returns the instance identifier attached to every log entry.
func (e *Engine) ID() string {
	return e.id
}

// Statistics returns the running aggregates.
func (e *Engine) Statistics() storage.Statistics {
	return e.graph.GetStatistics()
}

// Nodes returns the node IDs in creation order.
func (e *Engine) Nodes() []string {
	ids := make([]string, 0, e.graph.NodeCount())
	e.graph.EachNode(func(n *storage.Node) {
		ids = append(ids, n.ID())
	})
	return ids
}

func (e *Engine) startTimer(op string, fields ...logging.Field) *logging.TimedOperation {
	return logging.StartTimer(e.logger, op, append([]logging.Field{logging.Operation(op)}, fields...)...)
}

// finish logs the end of an operation and records it in metrics.
func (e *Engine) finish(op string, timer *logging.TimedOperation, err error, extra ...logging.Field) {
	var elapsed time.Duration
	status := metrics.StatusSuccess
	if err != nil {
		elapsed = timer.EndError(err, extra...)
		status = metrics.StatusError
	} else {
		elapsed = timer.End(extra...)
	}

	if e.metrics != nil {
		e.metrics.RecordOperation(op, status, elapsed)
	}
}

func (e *Engine) updateGraphMetrics() {
	if e.metrics == nil {
		return
	}
	s := e.graph.GetStatistics()
	e.metrics.SetGraphSize(s.NodeCount, s.EdgeCount, s.UnsealedEdges)
}

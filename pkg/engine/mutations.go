package engine

import (
	"github.com/dd0wney/netmatrix/pkg/audit"
	"github.com/dd0wney/netmatrix/pkg/logging"
	"github.com/dd0wney/netmatrix/pkg/storage"
	"github.com/dd0wney/netmatrix/pkg/validation"
)

// CreateNode adds a node with the given ID and clearance level.
func (e *Engine) CreateNode(id string, clearance int) (node *storage.Node, err error) {
	timer := e.startTimer(OpCreateNode, logging.NodeID(id))
	defer func() {
		e.finish(OpCreateNode, timer, err)
		e.audit(audit.ActionCreateNode, audit.ResourceNode, id, err, map[string]any{"clearance": clearance})
	}()

	if err := validation.ValidateNodeRequest(&validation.NodeRequest{ID: id, Clearance: clearance}); err != nil {
		return nil, storage.NewError(OpCreateNode).Node(id).Cause(err).Err()
	}

	node, err = e.graph.CreateNode(id, clearance)
	if err != nil {
		return nil, err
	}
	e.updateGraphMetrics()
	return node, nil
}

// CreateEdge links two existing nodes. Shape errors (self-loop, negative
// latency or bandwidth) are reported before referential ones.
func (e *Engine) CreateEdge(a, b string, latency, bandwidth int64, firewall int) (edge *storage.Edge, err error) {
	timer := e.startTimer(OpCreateEdge, logging.Edge(a, b))
	defer func() {
		e.finish(OpCreateEdge, timer, err)
		e.audit(audit.ActionCreateEdge, audit.ResourceEdge, a+" <-> "+b, err, map[string]any{
			"latency":   latency,
			"bandwidth": bandwidth,
			"firewall":  firewall,
		})
	}()

	req := &validation.EdgeRequest{A: a, B: b, Latency: latency, Bandwidth: bandwidth, Firewall: firewall}
	if err := validation.ValidateEdgeRequest(req); err != nil {
		return nil, storage.NewError(OpCreateEdge).Edge(a, b).Cause(err).Err()
	}

	edge, err = e.graph.CreateEdge(a, b, latency, bandwidth, firewall)
	if err != nil {
		return nil, err
	}
	e.updateGraphMetrics()
	return edge, nil
}

// ToggleSealed flips the sealed flag of the edge between a and b and returns
// the new state.
func (e *Engine) ToggleSealed(a, b string) (sealed bool, err error) {
	timer := e.startTimer(OpToggleSealed, logging.Edge(a, b))
	defer func() {
		e.finish(OpToggleSealed, timer, err, logging.Bool("sealed", sealed))
		action := audit.ActionToggle
		if err == nil {
			action = audit.ActionUnseal
			if sealed {
				action = audit.ActionSeal
			}
		}
		e.audit(action, audit.ResourceEdge, a+" <-> "+b, err, nil)
	}()

	if err := validation.ValidatePairRequest(&validation.PairRequest{A: a, B: b}); err != nil {
		return false, storage.NewError(OpToggleSealed).Edge(a, b).Cause(err).Err()
	}

	sealed, err = e.graph.ToggleSealed(a, b)
	if err != nil {
		return false, err
	}
	e.updateGraphMetrics()
	return sealed, nil
}

func (e *Engine) audit(action audit.Action, resource audit.ResourceType, id string, err error, metadata map[string]any) {
	if e.journal == nil {
		return
	}
	var event *audit.Event
	if err != nil {
		event = audit.NewFailedEvent(action, resource, id, err)
	} else {
		event = audit.NewEvent(action, resource, id)
	}
	event.Metadata = metadata
	e.journal.Record(event)
}

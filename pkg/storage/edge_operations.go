package storage

import "fmt"

// CreateEdge links two existing, distinct nodes that are not yet linked.
// Latency and bandwidth must be non-negative. On failure nothing is changed.
func (gs *GraphStorage) CreateEdge(a, b string, latency, bandwidth int64, firewall int) (*Edge, error) {
	first, second, err := gs.resolvePair("create_edge", a, b)
	if err != nil {
		return nil, err
	}
	if latency < 0 || bandwidth < 0 {
		return nil, NewError("create_edge").Edge(a, b).
			Context(fmt.Sprintf("latency=%d bandwidth=%d", latency, bandwidth)).
			Cause(ErrInvalidArgument).Err()
	}
	if first.EdgeTo(b) != nil {
		return nil, NewError("create_edge").Edge(a, b).Cause(ErrDuplicateEdge).Err()
	}

	edge := &Edge{
		latency:   latency,
		bandwidth: bandwidth,
		firewall:  firewall,
		a:         first,
		b:         second,
	}

	// Undirected: the same edge sits in both adjacency lists.
	first.edges = append(first.edges, edge)
	second.edges = append(second.edges, edge)
	gs.recordEdge(edge)

	return edge, nil
}

// ToggleSealed flips the sealed flag of the edge between a and b and returns
// the new state.
func (gs *GraphStorage) ToggleSealed(a, b string) (bool, error) {
	edge, err := gs.lookupEdge("toggle_sealed", a, b)
	if err != nil {
		return false, err
	}

	if edge.sealed {
		edge.sealed = false
		gs.recordUnsealed(edge)
	} else {
		edge.sealed = true
		gs.recordSealed(edge)
	}
	return edge.sealed, nil
}

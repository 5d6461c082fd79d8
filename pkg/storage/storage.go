package storage

// NewGraphStorage creates an empty graph.
func NewGraphStorage() *GraphStorage {
	return &GraphStorage{
		registry: NewNodeRegistry(),
	}
}

// GetNode retrieves a node by ID
func (gs *GraphStorage) GetNode(id string) (*Node, error) {
	node, ok := gs.registry.Get(id)
	if !ok {
		return nil, NodeNotFoundError("get", id)
	}
	return node, nil
}

// HasNode reports whether a node with the given ID exists.
func (gs *GraphStorage) HasNode(id string) bool {
	return gs.registry.Contains(id)
}

// Nodes returns all nodes in creation order.
func (gs *GraphStorage) Nodes() []*Node {
	return gs.registry.All()
}

// EachNode calls fn for every node in creation order.
func (gs *GraphStorage) EachNode(fn func(*Node)) {
	gs.registry.Each(fn)
}

// NodeCount returns the number of nodes.
func (gs *GraphStorage) NodeCount() int {
	return gs.registry.Len()
}

// FindEdge returns the edge between a and b. Both nodes must exist and be
// distinct.
func (gs *GraphStorage) FindEdge(a, b string) (*Edge, error) {
	return gs.lookupEdge("find_edge", a, b)
}

// lookupEdge resolves the endpoints and the edge between them, reporting
// failures under op.
func (gs *GraphStorage) lookupEdge(op, a, b string) (*Edge, error) {
	first, second, err := gs.resolvePair(op, a, b)
	if err != nil {
		return nil, err
	}
	edge := first.EdgeTo(second.id)
	if edge == nil {
		return nil, EdgeNotFoundError(op, a, b)
	}
	return edge, nil
}

// resolvePair looks up two distinct existing nodes.
func (gs *GraphStorage) resolvePair(op, a, b string) (*Node, *Node, error) {
	first, ok := gs.registry.Get(a)
	if !ok {
		return nil, nil, NodeNotFoundError(op, a)
	}
	second, ok := gs.registry.Get(b)
	if !ok {
		return nil, nil, NodeNotFoundError(op, b)
	}
	if a == b {
		return nil, nil, NewError(op).Edge(a, b).Cause(ErrSelfLoop).Err()
	}
	return first, second, nil
}

// SimulateSealed runs fn with edge temporarily sealed and restores the
// edge's previous state before returning, even if fn panics. Aggregates are
// not touched: the change is never visible once SimulateSealed returns.
func (gs *GraphStorage) SimulateSealed(edge *Edge, fn func()) {
	previous := edge.sealed
	edge.sealed = true
	defer func() { edge.sealed = previous }()
	fn()
}

package storage

// CreateNode creates a new node. The ID must be valid and unused; on failure
// nothing is changed.
func (gs *GraphStorage) CreateNode(id string, clearance int) (*Node, error) {
	if !ValidNodeID(id) {
		return nil, NewError("create_node").Node(id).Cause(ErrInvalidID).Err()
	}
	if gs.registry.Contains(id) {
		return nil, NewError("create_node").Node(id).Cause(ErrDuplicateNode).Err()
	}

	node := &Node{
		id:        id,
		clearance: clearance,
		edges:     make([]*Edge, 0),
	}
	gs.registry.Put(node)
	gs.recordNode(node)

	return node, nil
}

package storage

import "fmt"

// NodeRegistry maps node IDs to nodes and remembers insertion order.
// Component discovery and several tie-breaks iterate in that order, so it is
// part of the observable behavior.
type NodeRegistry struct {
	byID  map[string]*Node
	order []*Node
}

// NewNodeRegistry creates an empty registry.
func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{
		byID:  make(map[string]*Node),
		order: make([]*Node, 0),
	}
}

// Put inserts node under its ID. Callers check Contains first; putting an ID
// twice is a programming error.
func (r *NodeRegistry) Put(node *Node) {
	if _, exists := r.byID[node.id]; exists {
		panic(fmt.Sprintf("storage: node %q registered twice", node.id))
	}
	r.byID[node.id] = node
	r.order = append(r.order, node)
}

// Get returns the node registered under id.
func (r *NodeRegistry) Get(id string) (*Node, bool) {
	node, ok := r.byID[id]
	return node, ok
}

// Contains reports whether id is registered.
func (r *NodeRegistry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns every node in insertion order.
func (r *NodeRegistry) All() []*Node {
	out := make([]*Node, len(r.order))
	copy(out, r.order)
	return out
}

// Each calls fn for every node in insertion order without copying.
func (r *NodeRegistry) Each(fn func(*Node)) {
	for _, n := range r.order {
		fn(n)
	}
}

// Len returns the number of registered nodes.
func (r *NodeRegistry) Len() int {
	return len(r.order)
}

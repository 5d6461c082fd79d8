package storage

// Node is a graph vertex. Its ID and clearance never change after creation;
// only its adjacency grows as edges are linked to it.
type Node struct {
	id        string
	clearance int

	edges []*Edge // creation order
}

// ID returns the node identifier.
func (n *Node) ID() string {
	return n.id
}

// Clearance returns the node's clearance level.
func (n *Node) Clearance() int {
	return n.clearance
}

// Edges returns the node's adjacency in creation order.
// The returned slice is owned by the node and must not be modified.
func (n *Node) Edges() []*Edge {
	return n.edges
}

// Degree returns the number of edges attached to the node, sealed or not.
func (n *Node) Degree() int {
	return len(n.edges)
}

// EdgeTo returns the edge linking n to the node with the given ID, or nil.
func (n *Node) EdgeTo(id string) *Edge {
	for _, e := range n.edges {
		if e.Other(n).id == id {
			return e
		}
	}
	return nil
}

// Edge is an undirected link between two nodes.
type Edge struct {
	latency   int64
	bandwidth int64
	firewall  int

	a, b   *Node
	sealed bool
}

// Latency returns the traversal cost of the edge.
func (e *Edge) Latency() int64 {
	return e.latency
}

// Bandwidth returns the edge capacity.
func (e *Edge) Bandwidth() int64 {
	return e.bandwidth
}

// Firewall returns the clearance a walker needs to cross the edge.
func (e *Edge) Firewall() int {
	return e.firewall
}

// Endpoints returns both ends of the edge in creation order.
func (e *Edge) Endpoints() (*Node, *Node) {
	return e.a, e.b
}

// Other returns the endpoint opposite to n.
func (e *Edge) Other(n *Node) *Node {
	if e.a == n {
		return e.b
	}
	return e.a
}

// Connects reports whether the edge joins the two IDs, in either order.
func (e *Edge) Connects(x, y string) bool {
	return (e.a.id == x && e.b.id == y) || (e.a.id == y && e.b.id == x)
}

// Sealed reports whether the edge is currently excluded from traversal.
func (e *Edge) Sealed() bool {
	return e.sealed
}

// Traversable reports whether a walk leaving from may use the edge under the
// given minimum bandwidth: it must be unsealed, wide enough, and from's
// clearance must reach the firewall level.
func (e *Edge) Traversable(from *Node, minBandwidth int64) bool {
	if e.sealed {
		return false
	}
	if e.bandwidth < minBandwidth {
		return false
	}
	return from.clearance >= e.firewall
}

package storage

// GraphStorage is the in-memory graph: the node registry, every edge hanging
// off it, and the running aggregates derived from them.
//
// GraphStorage does no locking. Callers that share one instance between
// goroutines must serialize every call, including read-only queries, behind
// a single external lock.
type GraphStorage struct {
	registry *NodeRegistry

	// Aggregates. Mutated only through the methods in statistics.go so they
	// always match a recomputation from node and edge state.
	stats Statistics
}

// Statistics is a snapshot of the graph-wide aggregates.
type Statistics struct {
	NodeCount         int
	EdgeCount         int // sealed and unsealed
	UnsealedEdges     int
	UnsealedBandwidth int64 // sum of Bandwidth over unsealed edges
	TotalClearance    int64 // sum of Clearance over all nodes
}

package storage

// GetStatistics returns current graph statistics
func (gs *GraphStorage) GetStatistics() Statistics {
	return gs.stats
}

// Recompute derives the aggregates directly from node and edge state,
// ignoring the running counters. Used to check the counters never drift.
func (gs *GraphStorage) Recompute() Statistics {
	var s Statistics
	seen := make(map[*Edge]struct{})
	gs.registry.Each(func(n *Node) {
		s.NodeCount++
		s.TotalClearance += int64(n.clearance)
		for _, e := range n.edges {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			s.EdgeCount++
			if !e.sealed {
				s.UnsealedEdges++
				s.UnsealedBandwidth += e.bandwidth
			}
		}
	})
	return s
}

func (gs *GraphStorage) recordNode(n *Node) {
	gs.stats.NodeCount++
	gs.stats.TotalClearance += int64(n.clearance)
}

func (gs *GraphStorage) recordEdge(e *Edge) {
	gs.stats.EdgeCount++
	if !e.sealed {
		gs.stats.UnsealedEdges++
		gs.stats.UnsealedBandwidth += e.bandwidth
	}
}

func (gs *GraphStorage) recordSealed(e *Edge) {
	gs.stats.UnsealedEdges--
	gs.stats.UnsealedBandwidth -= e.bandwidth
}

func (gs *GraphStorage) recordUnsealed(e *Edge) {
	gs.stats.UnsealedEdges++
	gs.stats.UnsealedBandwidth += e.bandwidth
}

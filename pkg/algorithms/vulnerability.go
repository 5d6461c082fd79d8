package algorithms

import (
	"github.com/dd0wney/netmatrix/pkg/storage"
)

// Impact is the result of a removal simulation.
type Impact struct {
	// Critical is true when the removal strictly increases the number of
	// connected components.
	Critical bool
	// Baseline is the component count before the removal.
	Baseline int
	// Components is the component count with the node or edge removed.
	Components int
}

// NodeRemovalImpact tests whether node is an articulation point by counting
// components with and without it. When at most one other node would remain,
// the node can never be critical.
func NodeRemovalImpact(graph *storage.GraphStorage, node *storage.Node) Impact {
	baseline := CountComponents(graph, nil)
	after := CountComponents(graph, node)

	remaining := graph.NodeCount() - 1
	return Impact{
		Critical:   remaining > 1 && after > baseline,
		Baseline:   baseline,
		Components: after,
	}
}

// EdgeRemovalImpact tests whether an unsealed edge is a bridge by sealing it
// for the duration of a recount. The edge is always restored.
func EdgeRemovalImpact(graph *storage.GraphStorage, edge *storage.Edge) (Impact, error) {
	if edge.Sealed() {
		a, b := edge.Endpoints()
		return Impact{}, storage.NewError("edge_removal").Edge(a.ID(), b.ID()).Cause(storage.ErrEdgeSealed).Err()
	}

	baseline := CountComponents(graph, nil)
	after := CountComponentsWithout(graph, edge)

	return Impact{
		Critical:   after > baseline,
		Baseline:   baseline,
		Components: after,
	}, nil
}

// ArticulationPoints returns every node whose removal increases the
// component count, in creation order.
func ArticulationPoints(graph *storage.GraphStorage) []*storage.Node {
	points := make([]*storage.Node, 0)
	graph.EachNode(func(n *storage.Node) {
		if NodeRemovalImpact(graph, n).Critical {
			points = append(points, n)
		}
	})
	return points
}

// Bridges returns every unsealed edge whose removal increases the component
// count, in the order they are first met walking nodes in creation order.
func Bridges(graph *storage.GraphStorage) []*storage.Edge {
	bridges := make([]*storage.Edge, 0)
	seen := make(map[*storage.Edge]bool)
	graph.EachNode(func(n *storage.Node) {
		for _, e := range n.Edges() {
			if seen[e] || e.Sealed() {
				continue
			}
			seen[e] = true
			if impact, err := EdgeRemovalImpact(graph, e); err == nil && impact.Critical {
				bridges = append(bridges, e)
			}
		}
	})
	return bridges
}

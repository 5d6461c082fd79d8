package algorithms

import (
	"github.com/dd0wney/netmatrix/pkg/storage"
)

// Analysis summarizes the structure of the unsealed graph.
type Analysis struct {
	Components int
	HasCycle   bool
}

// Analyze counts components and detects cycles in a single breadth-first
// pass seeded in node creation order.
//
// A cycle is reported when a node reaches an already visited neighbor that
// is not its BFS parent. With at most one edge per node pair such a
// neighbor can only close a genuine cycle.
func Analyze(graph *storage.GraphStorage) Analysis {
	switch graph.NodeCount() {
	case 0:
		return Analysis{}
	case 1:
		return Analysis{Components: 1}
	}

	var result Analysis
	visited := make(map[*storage.Node]bool, graph.NodeCount())
	parent := make(map[*storage.Node]*storage.Node, graph.NodeCount())

	graph.EachNode(func(start *storage.Node) {
		if visited[start] {
			return
		}
		result.Components++

		queue := []*storage.Node{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			up, hasParent := parent[current]

			for _, edge := range current.Edges() {
				if edge.Sealed() {
					continue
				}
				neighbor := edge.Other(current)
				if !visited[neighbor] {
					visited[neighbor] = true
					parent[neighbor] = current
					queue = append(queue, neighbor)
					continue
				}
				if hasParent && neighbor != up {
					result.HasCycle = true
				}
			}
		}
	})

	return result
}

// HasCycle reports whether the unsealed graph contains a cycle.
func HasCycle(graph *storage.GraphStorage) bool {
	return Analyze(graph).HasCycle
}

package algorithms

import (
	"github.com/dd0wney/netmatrix/pkg/storage"
)

// CountComponents counts connected components over unsealed edges. If
// excluded is non-nil the node is treated as absent: it is never entered and
// does not count towards the total.
//
// Components are discovered by breadth-first search seeded in node creation
// order. With one live node or none, that count is returned directly.
func CountComponents(graph *storage.GraphStorage, excluded *storage.Node) int {
	live := graph.NodeCount()
	if excluded != nil {
		live--
	}
	if live <= 1 {
		return live
	}

	visited := make(map[*storage.Node]bool, graph.NodeCount())
	if excluded != nil {
		visited[excluded] = true
	}

	components := 0
	graph.EachNode(func(start *storage.Node) {
		if visited[start] {
			return
		}
		components++

		queue := []*storage.Node{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, edge := range current.Edges() {
				if edge.Sealed() {
					continue
				}
				neighbor := edge.Other(current)
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
	})

	return components
}

// CountComponentsWithout counts components as if edge were sealed. The
// edge's seal state is restored before returning.
func CountComponentsWithout(graph *storage.GraphStorage, edge *storage.Edge) int {
	var components int
	graph.SimulateSealed(edge, func() {
		components = CountComponents(graph, nil)
	})
	return components
}

// IsConnected checks if every node is reachable from every other over
// unsealed edges. Graphs with at most one node are connected.
func IsConnected(graph *storage.GraphStorage) bool {
	if graph.NodeCount() <= 1 {
		return true
	}
	return CountComponents(graph, nil) == 1
}

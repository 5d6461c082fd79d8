package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildEngine(t *testing.T, nodes []string, edges [][3]any) *Engine {
	t.Helper()
	e := NewEngine()
	for _, id := range nodes {
		_, err := e.CreateNode(id, 1)
		require.NoError(t, err)
	}
	for _, edge := range edges {
		_, err := e.CreateEdge(edge[0].(string), edge[1].(string), int64(edge[2].(int)), 100, 0)
		require.NoError(t, err)
	}
	return e
}

// pathGraph is A-B-C.
func pathGraph(t *testing.T) *Engine {
	return buildEngine(t, []string{"A", "B", "C"}, [][3]any{{"A", "B", 1}, {"B", "C", 1}})
}

// triangle is A-B(5), B-C(5), A-C(20).
func triangle(t *testing.T) *Engine {
	return buildEngine(t, []string{"A", "B", "C"}, [][3]any{{"A", "B", 5}, {"B", "C", 5}, {"A", "C", 20}})
}

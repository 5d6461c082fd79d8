package algorithms

import (
	"fmt"
	"testing"

	"github.com/dd0wney/netmatrix/pkg/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type testEdge struct {
	a, b      string
	latency   int64
	bandwidth int64
	firewall  int
}

// setupTestGraph creates nodes (clearance 0 unless listed in clearance) and
// edges in the given order.
func setupTestGraph(t *testing.T, nodes []string, edges []testEdge, clearance map[string]int) *storage.GraphStorage {
	t.Helper()
	graph := storage.NewGraphStorage()
	for _, id := range nodes {
		if _, err := graph.CreateNode(id, clearance[id]); err != nil {
			t.Fatalf("CreateNode(%s) failed: %v", id, err)
		}
	}
	for _, e := range edges {
		if _, err := graph.CreateEdge(e.a, e.b, e.latency, e.bandwidth, e.firewall); err != nil {
			t.Fatalf("CreateEdge(%s, %s) failed: %v", e.a, e.b, err)
		}
	}
	return graph
}

func link(a, b string, latency int64) testEdge {
	return testEdge{a: a, b: b, latency: latency, bandwidth: 100}
}

func mustNode(t *testing.T, graph *storage.GraphStorage, id string) *storage.Node {
	t.Helper()
	n, err := graph.GetNode(id)
	if err != nil {
		t.Fatalf("GetNode(%s) failed: %v", id, err)
	}
	return n
}

func mustEdge(t *testing.T, graph *storage.GraphStorage, a, b string) *storage.Edge {
	t.Helper()
	e, err := graph.FindEdge(a, b)
	if err != nil {
		t.Fatalf("FindEdge(%s, %s) failed: %v", a, b, err)
	}
	return e
}

func equalHops(got []string, want ...string) bool {
	return cmp.Equal(got, want, cmpopts.EquateEmpty())
}

func nodeName(i int) string {
	return fmt.Sprintf("N%d", i)
}

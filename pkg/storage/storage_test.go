package storage

import (
	"errors"
	"testing"
)

// setupTriangle builds A-B-C-A with distinct weights.
func setupTriangle(t *testing.T) *GraphStorage {
	t.Helper()
	gs := NewGraphStorage()
	for _, id := range []string{"A", "B", "C"} {
		if _, err := gs.CreateNode(id, 1); err != nil {
			t.Fatalf("CreateNode(%s) failed: %v", id, err)
		}
	}
	mustLink(t, gs, "A", "B", 5, 100)
	mustLink(t, gs, "B", "C", 5, 50)
	mustLink(t, gs, "C", "A", 20, 10)
	return gs
}

func mustLink(t *testing.T, gs *GraphStorage, a, b string, latency, bandwidth int64) *Edge {
	t.Helper()
	e, err := gs.CreateEdge(a, b, latency, bandwidth, 0)
	if err != nil {
		t.Fatalf("CreateEdge(%s, %s) failed: %v", a, b, err)
	}
	return e
}

func TestCreateNode(t *testing.T) {
	gs := NewGraphStorage()

	node, err := gs.CreateNode("HOST_1", 7)
	if err != nil {
		t.Fatalf("CreateNode failed: %v", err)
	}
	if node.ID() != "HOST_1" || node.Clearance() != 7 {
		t.Errorf("unexpected node %+v", node)
	}
	if node.Degree() != 0 {
		t.Errorf("new node should have no edges, got %d", node.Degree())
	}

	got, err := gs.GetNode("HOST_1")
	if err != nil || got != node {
		t.Errorf("GetNode returned %v, %v", got, err)
	}
}

func TestCreateNode_InvalidID(t *testing.T) {
	gs := NewGraphStorage()
	for _, id := range []string{"", "lower", "DASH-ID", "SPACE ID", "ÜMLAUT"} {
		if _, err := gs.CreateNode(id, 1); !errors.Is(err, ErrInvalidID) {
			t.Errorf("CreateNode(%q) error = %v, want ErrInvalidID", id, err)
		}
	}
	if gs.NodeCount() != 0 {
		t.Errorf("invalid creates should not register nodes, got %d", gs.NodeCount())
	}
}

func TestCreateNode_DuplicateLeavesAggregates(t *testing.T) {
	gs := NewGraphStorage()
	gs.CreateNode("A", 5)
	before := gs.GetStatistics()

	if _, err := gs.CreateNode("A", 9); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("expected ErrDuplicateNode, got %v", err)
	}
	if after := gs.GetStatistics(); after != before {
		t.Errorf("statistics changed on failed create: %+v -> %+v", before, after)
	}
	if n, _ := gs.GetNode("A"); n.Clearance() != 5 {
		t.Errorf("first node overwritten, clearance %d", n.Clearance())
	}
}

func TestCreateEdge_Symmetric(t *testing.T) {
	gs := NewGraphStorage()
	a, _ := gs.CreateNode("A", 0)
	b, _ := gs.CreateNode("B", 0)

	e := mustLink(t, gs, "A", "B", 3, 10)

	if a.EdgeTo("B") != e || b.EdgeTo("A") != e {
		t.Fatal("edge should be reachable from both endpoints")
	}
	if e.Other(a) != b || e.Other(b) != a {
		t.Error("Other should return the opposite endpoint")
	}
	if !e.Connects("A", "B") || !e.Connects("B", "A") {
		t.Error("Connects should ignore order")
	}
	if e.Sealed() {
		t.Error("new edges start unsealed")
	}
}

func TestCreateEdge_Errors(t *testing.T) {
	gs := NewGraphStorage()
	gs.CreateNode("A", 0)
	gs.CreateNode("B", 0)
	mustLink(t, gs, "A", "B", 1, 1)
	before := gs.GetStatistics()

	tests := []struct {
		name    string
		a, b    string
		lat, bw int64
		want    error
	}{
		{"unknown first", "X", "B", 1, 1, ErrNodeNotFound},
		{"unknown second", "A", "X", 1, 1, ErrNodeNotFound},
		{"self loop", "A", "A", 1, 1, ErrSelfLoop},
		{"duplicate", "A", "B", 1, 1, ErrDuplicateEdge},
		{"reversed duplicate", "B", "A", 1, 1, ErrDuplicateEdge},
		{"negative latency", "A", "B", -1, 1, ErrInvalidArgument},
		{"negative bandwidth", "A", "B", 1, -1, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gs.CreateEdge(tt.a, tt.b, tt.lat, tt.bw, 0); !errors.Is(err, tt.want) {
				t.Errorf("CreateEdge error = %v, want %v", err, tt.want)
			}
		})
	}

	if after := gs.GetStatistics(); after != before {
		t.Errorf("statistics changed on failed creates: %+v -> %+v", before, after)
	}
	a, _ := gs.GetNode("A")
	if a.Degree() != 1 {
		t.Errorf("failed creates changed adjacency: degree %d", a.Degree())
	}
}

func TestToggleSealed_RestoresAggregates(t *testing.T) {
	gs := setupTriangle(t)
	before := gs.GetStatistics()

	sealed, err := gs.ToggleSealed("B", "C")
	if err != nil || !sealed {
		t.Fatalf("ToggleSealed = %v, %v; want sealed", sealed, err)
	}
	mid := gs.GetStatistics()
	if mid.UnsealedEdges != before.UnsealedEdges-1 || mid.UnsealedBandwidth != before.UnsealedBandwidth-50 {
		t.Errorf("sealing did not update aggregates: %+v", mid)
	}
	if mid.EdgeCount != before.EdgeCount {
		t.Error("sealing must not change the edge count")
	}

	sealed, err = gs.ToggleSealed("C", "B")
	if err != nil || sealed {
		t.Fatalf("ToggleSealed = %v, %v; want unsealed", sealed, err)
	}
	if after := gs.GetStatistics(); after != before {
		t.Errorf("seal+unseal did not restore aggregates: %+v -> %+v", before, after)
	}
}

func TestToggleSealed_Errors(t *testing.T) {
	gs := NewGraphStorage()
	gs.CreateNode("A", 0)
	gs.CreateNode("B", 0)

	if _, err := gs.ToggleSealed("A", "Z"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if _, err := gs.ToggleSealed("A", "A"); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("expected ErrSelfLoop, got %v", err)
	}
	if _, err := gs.ToggleSealed("A", "B"); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("expected ErrEdgeNotFound, got %v", err)
	}
}

func TestSimulateSealed_Restores(t *testing.T) {
	gs := setupTriangle(t)
	edge, err := gs.FindEdge("A", "B")
	if err != nil {
		t.Fatalf("FindEdge failed: %v", err)
	}
	before := gs.GetStatistics()

	gs.SimulateSealed(edge, func() {
		if !edge.Sealed() {
			t.Error("edge should be sealed inside the simulation")
		}
	})
	if edge.Sealed() {
		t.Error("edge should be unsealed after the simulation")
	}
	if after := gs.GetStatistics(); after != before {
		t.Errorf("simulation leaked into aggregates: %+v -> %+v", before, after)
	}
}

func TestSimulateSealed_RestoresOnPanic(t *testing.T) {
	gs := setupTriangle(t)
	edge, _ := gs.FindEdge("A", "B")

	func() {
		defer func() { recover() }()
		gs.SimulateSealed(edge, func() { panic("boom") })
	}()

	if edge.Sealed() {
		t.Error("edge should be restored even when the callback panics")
	}
}

func TestSimulateSealed_KeepsSealedEdgeSealed(t *testing.T) {
	gs := setupTriangle(t)
	gs.ToggleSealed("A", "B")
	edge, _ := gs.FindEdge("A", "B")

	gs.SimulateSealed(edge, func() {})
	if !edge.Sealed() {
		t.Error("a sealed edge must stay sealed after simulation")
	}
}

func TestEdgeTraversable(t *testing.T) {
	gs := NewGraphStorage()
	low, _ := gs.CreateNode("LOW", 1)
	high, _ := gs.CreateNode("HIGH", 5)
	e, _ := gs.CreateEdge("LOW", "HIGH", 1, 100, 3)

	if e.Traversable(low, 0) {
		t.Error("clearance 1 must not pass firewall 3")
	}
	if !e.Traversable(high, 0) {
		t.Error("clearance 5 should pass firewall 3")
	}
	if e.Traversable(high, 101) {
		t.Error("bandwidth 100 must not satisfy minimum 101")
	}
	if !e.Traversable(high, 100) {
		t.Error("bandwidth equal to the minimum is allowed")
	}
	gs.ToggleSealed("LOW", "HIGH")
	if e.Traversable(high, 0) {
		t.Error("sealed edges are never traversable")
	}
}

func TestRecomputeMatchesCounters(t *testing.T) {
	gs := setupTriangle(t)
	gs.ToggleSealed("A", "C")

	if got, want := gs.GetStatistics(), gs.Recompute(); got != want {
		t.Errorf("counters %+v disagree with recomputation %+v", got, want)
	}
}

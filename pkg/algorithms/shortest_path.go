package algorithms

import (
	"fmt"
	"math"

	"github.com/dd0wney/netmatrix/pkg/storage"
)

// ErrNegativePenalty is returned when a route is requested with a negative
// hop penalty. It matches storage.ErrInvalidArgument.
var ErrNegativePenalty = fmt.Errorf("%w: hop penalty must be non-negative", storage.ErrInvalidArgument)

const (
	initialQueueCapacity = 64
	initialHopSlots      = 20
)

// RouteConstraints restrict which edges a route search may use and how hops
// are priced.
type RouteConstraints struct {
	// MinBandwidth is the smallest edge bandwidth a route may use.
	MinBandwidth int64
	// HopPenalty is added once per hop already taken before each edge:
	// the k-th edge of a route costs Latency + HopPenalty*(k-1).
	HopPenalty int64
}

// Route is the outcome of a route search.
type Route struct {
	Found bool
	Hops  []string // source to destination, inclusive
	Cost  int64

	// Expanded counts the search states that were popped and not discarded.
	Expanded int
}

// FindRoute finds the cheapest route from sourceID to destID under the given
// constraints. A zero hop penalty runs a uniform-cost search; a positive one
// runs the hop-penalized search. Not finding a route is not an error.
func FindRoute(graph *storage.GraphStorage, sourceID, destID string, c RouteConstraints) (*Route, error) {
	source, err := graph.GetNode(sourceID)
	if err != nil {
		return nil, err
	}
	dest, err := graph.GetNode(destID)
	if err != nil {
		return nil, err
	}
	if c.HopPenalty < 0 {
		return nil, storage.NewError("find_route").Edge(sourceID, destID).Cause(ErrNegativePenalty).Err()
	}

	if source == dest {
		return &Route{Found: true, Hops: []string{source.ID()}}, nil
	}

	if c.HopPenalty == 0 {
		return UniformCostSearch(source, dest, c.MinBandwidth), nil
	}
	return HopPenalizedSearch(source, dest, c.MinBandwidth, c.HopPenalty), nil
}

// UniformCostSearch is Dijkstra's algorithm over traversable edges. A node is
// settled the first time it is popped; later entries for it are stale.
//
// Relaxations that tie the best known cost are still queued so that the
// queue order, not discovery order, decides between equal-cost routes.
func UniformCostSearch(source, dest *storage.Node, minBandwidth int64) *Route {
	if source == dest {
		return &Route{Found: true, Hops: []string{source.ID()}}
	}

	queue := NewPathQueue(initialQueueCapacity)
	queue.Insert(newPath(0, 0, source, nil))

	best := map[*storage.Node]int64{source: 0}
	settled := make(map[*storage.Node]struct{})
	expanded := 0

	for queue.Len() > 0 {
		current := queue.mustExtract()
		node := current.node

		if _, done := settled[node]; done {
			continue
		}
		settled[node] = struct{}{}
		expanded++

		if node == dest {
			return routeFrom(current, expanded)
		}

		for _, edge := range node.Edges() {
			if !edge.Traversable(node, minBandwidth) {
				continue
			}
			next := edge.Other(node)
			if _, done := settled[next]; done {
				continue
			}

			cost := current.cost + edge.Latency()
			if known, ok := best[next]; ok && cost > known {
				continue
			}
			best[next] = cost
			queue.Insert(newPath(cost, current.hops+1, next, current))
		}
	}

	return &Route{Expanded: expanded}
}

// HopPenalizedSearch finds the cheapest route when each edge costs its
// latency plus penalty times the number of hops already taken. Because an
// edge's price depends on the hop count, states are kept per (node, hops):
// a state is dropped when the same node was already reached in no more hops
// for no more cost.
//
// The pruning rule is only known to hold for a penalty linear in the hop
// index; treat it as an approximation if the penalty model changes.
func HopPenalizedSearch(source, dest *storage.Node, minBandwidth, penalty int64) *Route {
	if source == dest {
		return &Route{Found: true, Hops: []string{source.ID()}}
	}

	queue := NewPathQueue(initialQueueCapacity)
	queue.Insert(newPath(0, 0, source, nil))

	states := map[*storage.Node]hopCosts{source: newHopCosts(0)}
	states[source][0] = 0
	expanded := 0

	for queue.Len() > 0 {
		current := queue.mustExtract()
		node := current.node

		if states[node].supersedes(current.hops, current.cost) {
			continue
		}
		expanded++

		if node == dest {
			return routeFrom(current, expanded)
		}

		for _, edge := range node.Edges() {
			if !edge.Traversable(node, minBandwidth) {
				continue
			}
			next := edge.Other(node)
			hops := current.hops + 1
			cost := current.cost + edge.Latency() + penalty*int64(hops-1)

			costs := states[next].grow(hops)
			states[next] = costs
			if costs.dominates(hops, cost) {
				continue
			}
			costs[hops] = cost
			queue.Insert(newPath(cost, hops, next, current))
		}
	}

	return &Route{Expanded: expanded}
}

// hopCosts holds, per hop count, the cheapest cost recorded for one node.
// Unreached hop counts hold math.MaxInt64.
type hopCosts []int64

func newHopCosts(hops int) hopCosts {
	size := initialHopSlots
	if hops+1 > size {
		size = hops + 1
	}
	c := make(hopCosts, size)
	for i := range c {
		c[i] = math.MaxInt64
	}
	return c
}

// grow returns c with room for index hops, doubling as needed.
func (c hopCosts) grow(hops int) hopCosts {
	if c == nil {
		return newHopCosts(hops)
	}
	if hops < len(c) {
		return c
	}
	size := len(c) * 2
	if hops+1 > size {
		size = hops + 1
	}
	grown := make(hopCosts, size)
	copy(grown, c)
	for i := len(c); i < size; i++ {
		grown[i] = math.MaxInt64
	}
	return grown
}

// dominates reports whether a recorded state with at most hops hops costs no
// more than cost. Used before enqueueing a candidate.
func (c hopCosts) dominates(hops int, cost int64) bool {
	for i := 0; i <= hops && i < len(c); i++ {
		if c[i] <= cost {
			return true
		}
	}
	return false
}

// supersedes reports whether a popped state is no longer worth expanding:
// a strictly-fewer-hop state costs no more, or the same hop count was since
// recorded at a strictly lower cost.
func (c hopCosts) supersedes(hops int, cost int64) bool {
	limit := hops
	if limit > len(c) {
		limit = len(c)
	}
	for i := 0; i < limit; i++ {
		if c[i] <= cost {
			return true
		}
	}
	return hops < len(c) && c[hops] < cost
}

func routeFrom(p *Path, expanded int) *Route {
	seq := p.Sequence()
	hops := make([]string, len(seq))
	copy(hops, seq)
	return &Route{
		Found:    true,
		Hops:     hops,
		Cost:     p.cost,
		Expanded: expanded,
	}
}

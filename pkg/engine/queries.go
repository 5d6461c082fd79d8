package engine

import (
	"math"

	"github.com/dd0wney/netmatrix/pkg/algorithms"
	"github.com/dd0wney/netmatrix/pkg/logging"
	"github.com/dd0wney/netmatrix/pkg/storage"
	"github.com/dd0wney/netmatrix/pkg/validation"
)

// FindRoute returns the cheapest route from src to dst using only unsealed
// edges with at least minBandwidth. A zero hop penalty selects uniform-cost
// search; a positive one prices each extra hop. Finding no route is not an
// error: the route comes back with Found set to false.
func (e *Engine) FindRoute(src, dst string, minBandwidth, hopPenalty int64) (route *algorithms.Route, err error) {
	strategy := StrategyUniform
	if hopPenalty > 0 {
		strategy = StrategyHopPenalized
	}

	timer := e.startTimer(OpFindRoute, logging.String("source", src), logging.String("destination", dst),
		logging.String("strategy", strategy))
	defer func() {
		if err != nil {
			e.finish(OpFindRoute, timer, err)
			return
		}
		e.finish(OpFindRoute, timer, nil, logging.Bool("found", route.Found),
			logging.Int64("cost", route.Cost), logging.Count(route.Expanded))
		if e.metrics != nil {
			hops := 0
			if route.Found {
				hops = len(route.Hops) - 1
			}
			e.metrics.RecordRoute(strategy, route.Found, route.Expanded, hops)
		}
	}()

	req := &validation.RouteRequest{Source: src, Destination: dst, MinBandwidth: minBandwidth, HopPenalty: hopPenalty}
	if err := validation.ValidateRouteRequest(req); err != nil {
		return nil, storage.NewError(OpFindRoute).Edge(src, dst).Cause(err).Err()
	}

	return algorithms.FindRoute(e.graph, src, dst, algorithms.RouteConstraints{
		MinBandwidth: minBandwidth,
		HopPenalty:   hopPenalty,
	})
}

// ConnectivityScan counts connected components over unsealed edges. A graph
// with at most one node is connected.
func (e *Engine) ConnectivityScan() Connectivity {
	timer := e.startTimer(OpConnectivity)

	c := Connectivity{Connected: true}
	if e.graph.NodeCount() > 1 {
		c.Components = algorithms.CountComponents(e.graph, nil)
		c.Connected = c.Components == 1
	} else {
		c.Components = e.graph.NodeCount()
	}

	e.finish(OpConnectivity, timer, nil, logging.Count(c.Components))
	return c
}

// TestNodeRemoval reports whether removing the node would split the graph.
// The graph is not modified.
func (e *Engine) TestNodeRemoval(id string) (impact algorithms.Impact, err error) {
	timer := e.startTimer(OpNodeRemoval, logging.NodeID(id))
	defer func() {
		e.finish(OpNodeRemoval, timer, err, logging.Bool("critical", impact.Critical))
		if err == nil && e.metrics != nil {
			e.metrics.RecordSimulation("node", impact.Critical)
		}
	}()

	node, err := e.graph.GetNode(id)
	if err != nil {
		return algorithms.Impact{}, err
	}
	return algorithms.NodeRemovalImpact(e.graph, node), nil
}

// TestEdgeRemoval reports whether removing the unsealed edge between a and b
// would split the graph. Sealed edges are rejected with ErrEdgeSealed. The
// edge is left exactly as it was found.
func (e *Engine) TestEdgeRemoval(a, b string) (impact algorithms.Impact, err error) {
	timer := e.startTimer(OpEdgeRemoval, logging.Edge(a, b))
	defer func() {
		e.finish(OpEdgeRemoval, timer, err, logging.Bool("critical", impact.Critical))
		if err == nil && e.metrics != nil {
			e.metrics.RecordSimulation("edge", impact.Critical)
		}
	}()

	if err := validation.ValidatePairRequest(&validation.PairRequest{A: a, B: b}); err != nil {
		return algorithms.Impact{}, storage.NewError(OpEdgeRemoval).Edge(a, b).Cause(err).Err()
	}

	edge, err := e.graph.FindEdge(a, b)
	if err != nil {
		return algorithms.Impact{}, err
	}
	return algorithms.EdgeRemovalImpact(e.graph, edge)
}

// Vulnerabilities finds every articulation point and bridge. It runs one
// removal simulation per node and per unsealed edge.
func (e *Engine) Vulnerabilities() Vulnerabilities {
	timer := e.startTimer(OpVulnerable)

	var v Vulnerabilities
	for _, n := range algorithms.ArticulationPoints(e.graph) {
		v.ArticulationPoints = append(v.ArticulationPoints, n.ID())
	}
	for _, edge := range algorithms.Bridges(e.graph) {
		x, y := edge.Endpoints()
		v.Bridges = append(v.Bridges, [2]string{x.ID(), y.ID()})
	}

	e.finish(OpVulnerable, timer, nil,
		logging.Int("articulation_points", len(v.ArticulationPoints)),
		logging.Int("bridges", len(v.Bridges)))
	return v
}

// Report summarizes counts, connectivity, cycles and averages.
func (e *Engine) Report() Report {
	timer := e.startTimer(OpReport)

	stats := e.graph.GetStatistics()
	analysis := algorithms.Analyze(e.graph)

	r := Report{
		NodeCount:     stats.NodeCount,
		UnsealedEdges: stats.UnsealedEdges,
		Components:    analysis.Components,
		Connected:     stats.NodeCount <= 1 || analysis.Components == 1,
		HasCycle:      analysis.HasCycle,
	}
	if stats.UnsealedEdges > 0 {
		r.AvgBandwidth = roundTenth(float64(stats.UnsealedBandwidth) / float64(stats.UnsealedEdges))
	}
	if stats.NodeCount > 0 {
		r.AvgClearance = roundTenth(float64(stats.TotalClearance) / float64(stats.NodeCount))
	}

	e.finish(OpReport, timer, nil, logging.Count(r.Components))
	return r
}

// roundTenth rounds half up to one decimal place, so -2.25 becomes -2.2.
func roundTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

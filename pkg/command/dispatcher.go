// Package command parses the line-oriented command language and renders
// engine results as text.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dd0wney/netmatrix/pkg/engine"
)

// Command verbs.
const (
	SpawnHost        = "spawn_host"
	LinkBackdoor     = "link_backdoor"
	SealBackdoor     = "seal_backdoor"
	TraceRoute       = "trace_route"
	ScanConnectivity = "scan_connectivity"
	SimulateBreach   = "simulate_breach"
	OracleReport     = "oracle_report"
)

// errMalformed marks a line whose arguments could not be parsed.
var errMalformed = errors.New("malformed command")

type handler func(d *Dispatcher, args []string) (string, error)

var handlers = map[string]handler{
	SpawnHost:        (*Dispatcher).spawnHost,
	LinkBackdoor:     (*Dispatcher).linkBackdoor,
	SealBackdoor:     (*Dispatcher).sealBackdoor,
	TraceRoute:       (*Dispatcher).traceRoute,
	ScanConnectivity: (*Dispatcher).scanConnectivity,
	SimulateBreach:   (*Dispatcher).simulateBreach,
	OracleReport:     (*Dispatcher).oracleReport,
}

// Dispatcher executes one command line at a time against an engine.
type Dispatcher struct {
	engine *engine.Engine
}

// NewDispatcher creates a dispatcher over e.
func NewDispatcher(e *engine.Engine) *Dispatcher {
	return &Dispatcher{engine: e}
}

// Engine returns the engine commands run against.
func (d *Dispatcher) Engine() *engine.Engine {
	return d.engine
}

// Execute runs a single command line and returns its output, which may span
// several lines. Engine failures and malformed input are reported in the
// output, never as a Go error. Arguments beyond those a verb uses are
// ignored.
func (d *Dispatcher) Execute(line string) string {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "Unknown command: "
	}

	verb := fields[0]
	h, ok := handlers[verb]
	if !ok {
		return "Unknown command: " + verb
	}

	out, err := h(d, fields[1:])
	switch {
	case errors.Is(err, errMalformed):
		return "Error processing command: " + line
	case err != nil:
		return "Some error occurred in " + verb + "."
	}
	return out
}

func (d *Dispatcher) spawnHost(args []string) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	clearance, err := parseInt(args[1])
	if err != nil {
		return "", err
	}

	node, err := d.engine.CreateNode(args[0], int(clearance))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Spawned host %s with clearance level %d.", node.ID(), node.Clearance()), nil
}

func (d *Dispatcher) linkBackdoor(args []string) (string, error) {
	if err := need(args, 5); err != nil {
		return "", err
	}
	nums, err := parseInts(args[2:5])
	if err != nil {
		return "", err
	}
	latency, bandwidth, firewall := nums[0], nums[1], nums[2]

	if _, err := d.engine.CreateEdge(args[0], args[1], latency, bandwidth, int(firewall)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Linked %s <-> %s with latency %dms, bandwidth %dMbps, firewall %d.",
		args[0], args[1], latency, bandwidth, firewall), nil
}

func (d *Dispatcher) sealBackdoor(args []string) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}

	sealed, err := d.engine.ToggleSealed(args[0], args[1])
	if err != nil {
		return "", err
	}
	state := "unsealed"
	if sealed {
		state = "sealed"
	}
	return fmt.Sprintf("Backdoor %s <-> %s %s.", args[0], args[1], state), nil
}

func (d *Dispatcher) traceRoute(args []string) (string, error) {
	if err := need(args, 4); err != nil {
		return "", err
	}
	nums, err := parseInts(args[2:4])
	if err != nil {
		return "", err
	}
	src, dst := args[0], args[1]

	route, err := d.engine.FindRoute(src, dst, nums[0], nums[1])
	if err != nil {
		return "", err
	}
	if !route.Found {
		return fmt.Sprintf("No route found from %s to %s", src, dst), nil
	}
	return fmt.Sprintf("Optimal route %s -> %s: %s (Latency = %dms)",
		src, dst, strings.Join(route.Hops, " -> "), route.Cost), nil
}

func (d *Dispatcher) scanConnectivity([]string) (string, error) {
	c := d.engine.ConnectivityScan()
	if c.Connected {
		return "Network is fully connected.", nil
	}
	return fmt.Sprintf("Network has %d disconnected components.", c.Components), nil
}

// simulateBreach tests a node with one argument and an edge with two or
// more.
func (d *Dispatcher) simulateBreach(args []string) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}

	if len(args) == 1 {
		id := args[0]
		impact, err := d.engine.TestNodeRemoval(id)
		if err != nil {
			return "", err
		}
		if !impact.Critical {
			return fmt.Sprintf("Host %s is NOT an articulation point. Network remains the same.", id), nil
		}
		return fmt.Sprintf("Host %s IS an articulation point.\nFailure results in %d disconnected components.",
			id, impact.Components), nil
	}

	a, b := args[0], args[1]
	impact, err := d.engine.TestEdgeRemoval(a, b)
	if err != nil {
		return "", err
	}
	if !impact.Critical {
		return fmt.Sprintf("Backdoor %s <-> %s is NOT a bridge. Network remains the same.", a, b), nil
	}
	return fmt.Sprintf("Backdoor %s <-> %s IS a bridge.\nFailure results in %d disconnected components.",
		a, b, impact.Components), nil
}

func (d *Dispatcher) oracleReport([]string) (string, error) {
	return FormatReport(d.engine.Report()), nil
}

// FormatReport renders a report as the seven-line network summary, without
// a trailing newline.
func FormatReport(r engine.Report) string {
	connectivity := "Disconnected"
	if r.Connected {
		connectivity = "Connected"
	}
	cycles := "No"
	if r.HasCycle {
		cycles = "Yes"
	}

	var b strings.Builder
	b.WriteString("--- Resistance Network Report ---\n")
	fmt.Fprintf(&b, "Total Hosts: %d\n", r.NodeCount)
	fmt.Fprintf(&b, "Total Unsealed Backdoors: %d\n", r.UnsealedEdges)
	fmt.Fprintf(&b, "Network Connectivity: %s\n", connectivity)
	fmt.Fprintf(&b, "Connected Components: %d\n", r.Components)
	fmt.Fprintf(&b, "Contains Cycles: %s\n", cycles)
	fmt.Fprintf(&b, "Average Bandwidth: %sMbps\n", formatTenth(r.AvgBandwidth))
	fmt.Fprintf(&b, "Average Clearance Level: %s", formatTenth(r.AvgClearance))
	return b.String()
}

func formatTenth(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func need(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: want %d arguments, got %d", errMalformed, n, len(args))
	}
	return nil
}

// parseInt accepts a signed decimal that fits in 32 bits.
func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return v, nil
}

func parseInts(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, s := range args {
		v, err := parseInt(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

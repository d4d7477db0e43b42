package routing

import (
	"errors"
	"fmt"

	"visit-routing-service/internal/domain"
)

// Time dimension configuration. Slack is waiting time permitted before a
// node opens; the horizon is effectively unbounded for day-scale problems.
const (
	SlackMax = 10000
	Horizon  = 200000

	// DefaultPenalty is the objective cost of skipping an optional node,
	// in minute-equivalents.
	DefaultPenalty = 1000
)

// TimeWindow is a hard bound on the cumulative time value at a node,
// in minutes of day. A fixed appointment is the degenerate case
// Earliest == Latest.
type TimeWindow struct {
	Earliest int
	Latest   int
}

// Problem is a fully constrained routing model, ready to hand to a Solver.
//
// Node 0 is the depot. Node indices are scoped to this problem instance
// only; re-plans build a fresh Problem with fresh indices.
type Problem struct {
	// Matrix holds pairwise travel minutes. Square, zero diagonal,
	// not necessarily symmetric.
	Matrix [][]int

	// ServiceTimes is the per-node stay duration in minutes; 0 for the depot.
	// Service time is applied at arc-to-node evaluation, not stored in Matrix.
	ServiceTimes []int

	// TimeWindows bounds arrival at each node.
	TimeWindows []TimeWindow

	// Mandatory marks nodes that must appear in some route. Index 0 (depot)
	// is never subject to skipping regardless of this flag.
	Mandatory []bool

	// Penalty is the cost of dropping an optional node.
	Penalty int

	// VehicleWindows bounds the END of each vehicle's route by its
	// operating day.
	VehicleWindows []domain.DayWindow

	// StartNodes and EndNodes are the per-vehicle terminals, normally the
	// depot for all vehicles.
	StartNodes []int
	EndNodes   []int

	// ForcedStartMinutes pins a vehicle's route start to an exact minute
	// (equality, not a range). Nil entries leave the start free. Used by
	// re-planning to model vehicles already en route.
	ForcedStartMinutes []*int
}

func (p *Problem) NumNodes() int    { return len(p.Matrix) }
func (p *Problem) NumVehicles() int { return len(p.VehicleWindows) }

// ArcCost is the transit value of travelling an arc: travel time plus the
// service time of the destination node.
func (p *Problem) ArcCost(from, to int) int {
	return p.Matrix[from][to] + p.ServiceTimes[to]
}

// Validate checks internal consistency before solving.
func (p *Problem) Validate() error {
	n := p.NumNodes()
	if n == 0 {
		return errors.New("validate problem: empty cost matrix")
	}
	for i, row := range p.Matrix {
		if len(row) != n {
			return fmt.Errorf("validate problem: matrix row %d has %d entries, want %d", i, len(row), n)
		}
		if row[i] != 0 {
			return fmt.Errorf("validate problem: matrix diagonal at %d is %d, want 0", i, row[i])
		}
	}
	if len(p.ServiceTimes) != n {
		return fmt.Errorf("validate problem: %d service times for %d nodes", len(p.ServiceTimes), n)
	}
	if len(p.TimeWindows) != n {
		return fmt.Errorf("validate problem: %d time windows for %d nodes", len(p.TimeWindows), n)
	}
	if len(p.Mandatory) != n {
		return fmt.Errorf("validate problem: %d mandatory flags for %d nodes", len(p.Mandatory), n)
	}
	v := p.NumVehicles()
	if v == 0 {
		return errors.New("validate problem: no vehicles")
	}
	if len(p.StartNodes) != v || len(p.EndNodes) != v {
		return fmt.Errorf("validate problem: terminals for %d/%d vehicles, want %d", len(p.StartNodes), len(p.EndNodes), v)
	}
	if p.ForcedStartMinutes != nil && len(p.ForcedStartMinutes) != v {
		return fmt.Errorf("validate problem: %d forced starts for %d vehicles", len(p.ForcedStartMinutes), v)
	}
	return nil
}

// ForcedStart returns the pinned start minute for a vehicle, if any.
func (p *Problem) ForcedStart(vehicle int) (int, bool) {
	if p.ForcedStartMinutes == nil || p.ForcedStartMinutes[vehicle] == nil {
		return 0, false
	}
	return *p.ForcedStartMinutes[vehicle], true
}

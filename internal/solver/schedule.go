package solver

import "visit-routing-service/internal/routing"

// schedule is the timing of one vehicle's route under the cumulative time
// dimension: the value at each visited node is the predecessor's value plus
// arc travel time plus the destination's service time, with waiting (slack)
// permitted before a node opens.
type schedule struct {
	start    int
	arrivals []int
	end      int
}

// simulate propagates the time dimension along an interior node sequence for
// one vehicle. It returns false when any node's hard window, the vehicle's
// end-of-day window, the slack bound, or the horizon is violated.
func simulate(p *routing.Problem, vehicle int, seq []int) (schedule, bool) {
	startNode := p.StartNodes[vehicle]
	startWin := p.TimeWindows[startNode]

	start := startWin.Earliest
	if forced, ok := p.ForcedStart(vehicle); ok {
		// A pinned start models a vehicle already en route; it still has to
		// respect the terminal node's own window.
		if forced < startWin.Earliest || forced > startWin.Latest {
			return schedule{}, false
		}
		start = forced
	}

	t := start
	prev := startNode
	arrivals := make([]int, 0, len(seq))

	for _, node := range seq {
		arrive := t + p.ArcCost(prev, node)
		win := p.TimeWindows[node]
		if arrive < win.Earliest {
			if win.Earliest-arrive > routing.SlackMax {
				return schedule{}, false
			}
			arrive = win.Earliest
		}
		if arrive > win.Latest || arrive > routing.Horizon {
			return schedule{}, false
		}
		arrivals = append(arrivals, arrive)
		t = arrive
		prev = node
	}

	endNode := p.EndNodes[vehicle]
	end := t + p.ArcCost(prev, endNode)

	day := p.VehicleWindows[vehicle]
	if end < day.StartMinute {
		if day.StartMinute-end > routing.SlackMax {
			return schedule{}, false
		}
		end = day.StartMinute
	}
	if end > day.EndMinute || end > routing.Horizon {
		return schedule{}, false
	}

	return schedule{start: start, arrivals: arrivals, end: end}, true
}

// routeCost is the travel+service cost of one vehicle's route.
func routeCost(p *routing.Problem, vehicle int, seq []int) int {
	if len(seq) == 0 {
		return 0
	}
	cost := 0
	prev := p.StartNodes[vehicle]
	for _, node := range seq {
		cost += p.ArcCost(prev, node)
		prev = node
	}
	cost += p.ArcCost(prev, p.EndNodes[vehicle])
	return cost
}

// solutionCost is the objective value: travel+service over all routes plus
// the skip penalty for every unrouted optional node.
func solutionCost(p *routing.Problem, routes [][]int) int {
	cost := 0
	visited := make(map[int]bool, p.NumNodes())
	for v, seq := range routes {
		cost += routeCost(p, v, seq)
		for _, node := range seq {
			visited[node] = true
		}
	}
	for node := 1; node < p.NumNodes(); node++ {
		if !visited[node] && !p.Mandatory[node] {
			cost += p.Penalty
		}
	}
	return cost
}

// toAssignment materializes per-vehicle sequences into the successor
// relation and cumulative time values of a raw assignment.
func toAssignment(p *routing.Problem, routes [][]int) (*routing.Assignment, bool) {
	m := routing.NewManager(p)
	a := routing.NewAssignment(m)

	for v, seq := range routes {
		sched, ok := simulate(p, v, seq)
		if !ok {
			return nil, false
		}

		index := m.Start(v)
		a.SetArrival(index, sched.start)
		for i, node := range seq {
			a.SetNext(index, node)
			a.SetArrival(node, sched.arrivals[i])
			index = node
		}
		a.SetNext(index, m.End(v))
		a.SetArrival(m.End(v), sched.end)
	}

	return a, true
}

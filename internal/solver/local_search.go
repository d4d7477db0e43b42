package solver

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"visit-routing-service/internal/ports"
	"visit-routing-service/internal/routing"
)

// LocalSearch is an in-process Solver.
//
// Construction is greedy cheapest feasible insertion (mandatory nodes first,
// fixed appointments before free ones); improvement runs relocate, 2-opt,
// skipped-node reinsertion and penalized drops until the wall-clock budget
// expires, escaping local optima with random removal-and-reinsert
// perturbations.
type LocalSearch struct {
	seed  int64
	calls atomic.Int64
}

func New(seed int64) *LocalSearch {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LocalSearch{seed: seed}
}

// Each solve gets its own generator so independent solves can run
// concurrently without shared mutable state.
func (s *LocalSearch) newRand() *rand.Rand {
	return rand.New(rand.NewSource(s.seed + s.calls.Add(1)))
}

func (s *LocalSearch) Solve(ctx context.Context, p *routing.Problem, budget time.Duration) (*routing.Assignment, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	deadline := time.Now().Add(budget)
	rng := s.newRand()

	routes, ok := construct(p)
	if !ok {
		return nil, ports.ErrNoSolution
	}

	routes = improve(ctx, p, routes, rng, deadline)

	a, ok := toAssignment(p, routes)
	if !ok {
		return nil, ports.ErrNoSolution
	}
	return a, nil
}

func (s *LocalSearch) SolveFromRoutes(ctx context.Context, p *routing.Problem, routes [][]int, budget time.Duration) (*routing.Assignment, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("solve from routes: %w", err)
	}

	seed, err := validateWarmStart(p, routes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrWarmStartRejected, err)
	}

	deadline := time.Now().Add(budget)
	rng := s.newRand()

	seed = improve(ctx, p, seed, rng, deadline)

	a, ok := toAssignment(p, seed)
	if !ok {
		return nil, ports.ErrNoSolution
	}
	return a, nil
}

// validateWarmStart checks the supplied per-vehicle node sequences against
// the current model before any search continues from them. Every violation
// is a rejection, not an infeasibility.
func validateWarmStart(p *routing.Problem, routes [][]int) ([][]int, error) {
	if len(routes) != p.NumVehicles() {
		return nil, fmt.Errorf("%d routes for %d vehicles", len(routes), p.NumVehicles())
	}

	seen := make(map[int]int, p.NumNodes())
	seeded := make([][]int, len(routes))
	for v, seq := range routes {
		seeded[v] = append([]int(nil), seq...)
		for _, node := range seq {
			if node <= 0 || node >= p.NumNodes() {
				return nil, fmt.Errorf("vehicle %d references unknown node %d", v, node)
			}
			if prev, ok := seen[node]; ok {
				return nil, fmt.Errorf("node %d assigned to vehicles %d and %d", node, prev, v)
			}
			seen[node] = v
		}
		if _, ok := simulate(p, v, seq); !ok {
			return nil, fmt.Errorf("vehicle %d route violates time constraints", v)
		}
	}

	for node := 1; node < p.NumNodes(); node++ {
		if p.Mandatory[node] {
			if _, ok := seen[node]; !ok {
				return nil, fmt.Errorf("mandatory node %d absent from all routes", node)
			}
		}
	}

	return seeded, nil
}

// construct builds a first solution by cheapest feasible insertion.
// A mandatory node with no feasible slot anywhere fails construction.
func construct(p *routing.Problem) ([][]int, bool) {
	routes := make([][]int, p.NumVehicles())

	order := make([]int, 0, p.NumNodes()-1)
	for node := 1; node < p.NumNodes(); node++ {
		order = append(order, node)
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if p.Mandatory[a] != p.Mandatory[b] {
			return p.Mandatory[a]
		}
		// Tighter windows are harder to place late.
		wa := p.TimeWindows[a].Latest - p.TimeWindows[a].Earliest
		wb := p.TimeWindows[b].Latest - p.TimeWindows[b].Earliest
		return wa < wb
	})

	for _, node := range order {
		v, pos, delta, ok := bestInsertion(p, routes, node)
		if !ok {
			if p.Mandatory[node] {
				return nil, false
			}
			continue
		}
		if !p.Mandatory[node] && delta >= p.Penalty {
			// Cheaper to pay the skip penalty than to detour.
			continue
		}
		routes[v] = insertAt(routes[v], pos, node)
	}

	return routes, true
}

// bestInsertion finds the cheapest feasible (vehicle, position) for a node.
func bestInsertion(p *routing.Problem, routes [][]int, node int) (bestV, bestPos, bestDelta int, ok bool) {
	bestDelta = int(^uint(0) >> 1)
	for v := range routes {
		base := routeCost(p, v, routes[v])
		for pos := 0; pos <= len(routes[v]); pos++ {
			candidate := insertAt(append([]int(nil), routes[v]...), pos, node)
			if _, feasible := simulate(p, v, candidate); !feasible {
				continue
			}
			delta := routeCost(p, v, candidate) - base
			if delta < bestDelta {
				bestV, bestPos, bestDelta, ok = v, pos, delta, true
			}
		}
	}
	return bestV, bestPos, bestDelta, ok
}

func insertAt(seq []int, pos, node int) []int {
	seq = append(seq, 0)
	copy(seq[pos+1:], seq[pos:])
	seq[pos] = node
	return seq
}

func removeAt(seq []int, pos int) []int {
	out := append([]int(nil), seq[:pos]...)
	return append(out, seq[pos+1:]...)
}

package solver

import (
	"context"
	"math/rand"
	"time"

	"visit-routing-service/internal/routing"
)

// improve runs local-search passes until the deadline, keeping the best
// solution seen. When a full sweep yields no improvement, a random
// removal-and-reinsert perturbation restarts the search from a nearby
// solution.
func improve(ctx context.Context, p *routing.Problem, routes [][]int, rng *rand.Rand, deadline time.Time) [][]int {
	best := copyRoutes(routes)
	bestCost := solutionCost(p, best)

	curr := copyRoutes(routes)
	for time.Now().Before(deadline) && ctx.Err() == nil {
		improved := false
		if relocatePass(p, curr) {
			improved = true
		}
		if twoOptPass(p, curr) {
			improved = true
		}
		if reinsertPass(p, curr) {
			improved = true
		}
		if dropPass(p, curr) {
			improved = true
		}

		if c := solutionCost(p, curr); c < bestCost {
			best = copyRoutes(curr)
			bestCost = c
		}

		if !improved {
			if !perturb(p, curr, rng) {
				break
			}
		}
	}

	return best
}

func copyRoutes(routes [][]int) [][]int {
	out := make([][]int, len(routes))
	for i, seq := range routes {
		out[i] = append([]int(nil), seq...)
	}
	return out
}

// relocatePass moves single nodes to their cheapest feasible slot anywhere,
// accepting the first strictly improving move per node.
func relocatePass(p *routing.Problem, routes [][]int) bool {
	improved := false
	for v := range routes {
		for i := 0; i < len(routes[v]); i++ {
			node := routes[v][i]
			removed := removeAt(routes[v], i)
			removalGain := routeCost(p, v, routes[v]) - routeCost(p, v, removed)

			saved := routes[v]
			routes[v] = removed
			v2, pos, delta, ok := bestInsertion(p, routes, node)
			if ok && delta < removalGain {
				routes[v2] = insertAt(routes[v2], pos, node)
				improved = true
				i--
				continue
			}
			routes[v] = saved
		}
	}
	return improved
}

// twoOptPass reverses intra-route segments that shorten the route and stay
// feasible.
func twoOptPass(p *routing.Problem, routes [][]int) bool {
	improved := false
	for v := range routes {
		n := len(routes[v])
		for i := 0; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				candidate := twoOptSwap(routes[v], i, k)
				if _, ok := simulate(p, v, candidate); !ok {
					continue
				}
				if routeCost(p, v, candidate) < routeCost(p, v, routes[v]) {
					routes[v] = candidate
					improved = true
				}
			}
		}
	}
	return improved
}

func twoOptSwap(seq []int, i, k int) []int {
	out := make([]int, len(seq))
	copy(out, seq[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = seq[j]
		pos++
	}
	copy(out[pos:], seq[k+1:])
	return out
}

// reinsertPass brings skipped optional nodes back when insertion now costs
// less than the skip penalty.
func reinsertPass(p *routing.Problem, routes [][]int) bool {
	visited := visitedSet(p, routes)
	improved := false
	for node := 1; node < p.NumNodes(); node++ {
		if visited[node] || p.Mandatory[node] {
			continue
		}
		v, pos, delta, ok := bestInsertion(p, routes, node)
		if ok && delta < p.Penalty {
			routes[v] = insertAt(routes[v], pos, node)
			improved = true
		}
	}
	return improved
}

// dropPass removes routed optional nodes whose detour exceeds the skip
// penalty.
func dropPass(p *routing.Problem, routes [][]int) bool {
	improved := false
	for v := range routes {
		for i := 0; i < len(routes[v]); i++ {
			node := routes[v][i]
			if p.Mandatory[node] {
				continue
			}
			removed := removeAt(routes[v], i)
			saving := routeCost(p, v, routes[v]) - routeCost(p, v, removed)
			if saving > p.Penalty {
				routes[v] = removed
				improved = true
				i--
			}
		}
	}
	return improved
}

// perturb removes a few random nodes and greedily reinserts them, reverting
// when a mandatory node cannot be placed again. Returns false when there is
// nothing to perturb.
func perturb(p *routing.Problem, routes [][]int, rng *rand.Rand) bool {
	type slot struct{ v, i int }
	var slots []slot
	for v := range routes {
		for i := range routes[v] {
			slots = append(slots, slot{v, i})
		}
	}
	if len(slots) == 0 {
		return false
	}

	backup := copyRoutes(routes)
	k := 1 + rng.Intn(3)
	if k > len(slots) {
		k = len(slots)
	}

	removedNodes := make([]int, 0, k)
	rng.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })
	picked := slots[:k]
	// Remove from the highest position first so earlier indices stay valid.
	for i := range picked {
		for j := i + 1; j < len(picked); j++ {
			if picked[j].v == picked[i].v && picked[j].i > picked[i].i ||
				picked[j].v > picked[i].v {
				picked[i], picked[j] = picked[j], picked[i]
			}
		}
	}
	for _, s := range picked {
		removedNodes = append(removedNodes, routes[s.v][s.i])
		routes[s.v] = removeAt(routes[s.v], s.i)
	}

	for _, node := range removedNodes {
		v, pos, delta, ok := bestInsertion(p, routes, node)
		if !ok || (!p.Mandatory[node] && delta >= p.Penalty) {
			if p.Mandatory[node] && !ok {
				copy(routes, backup)
				return true
			}
			continue
		}
		routes[v] = insertAt(routes[v], pos, node)
	}
	return true
}

func visitedSet(p *routing.Problem, routes [][]int) []bool {
	visited := make([]bool, p.NumNodes())
	for _, seq := range routes {
		for _, node := range seq {
			visited[node] = true
		}
	}
	return visited
}
